package controller

import (
	"unicode/utf8"

	"github.com/dshills/viewcore/internal/engine/textpos"
	"github.com/dshills/viewcore/internal/viewmodel"
)

// CompositionState is the input state of a controller.
type CompositionState uint8

const (
	// Idle means typed text is inserted directly.
	Idle CompositionState = iota
	// Composing means an input method is building text; Type feeds the
	// running composition instead of inserting.
	Composing
)

// String returns the state name.
func (s CompositionState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Composing:
		return "composing"
	default:
		return "unknown"
	}
}

// compositionContext turns the running text of a composition into
// replace-previous deltas: every update replaces what the previous update
// inserted.
type compositionContext struct {
	lastTextLength   int
	composedAnything bool
}

// typeData is one composition step handed to CompositionType.
type typeData struct {
	text               string
	replacePrevCharCnt int
	replaceNextCharCnt int
	positionDelta      int
}

func (cc *compositionContext) update(text string) typeData {
	d := typeData{text: text, replacePrevCharCnt: cc.lastTextLength}
	cc.lastTextLength = utf8.RuneCountInString(text)
	if text != "" {
		cc.composedAnything = true
	}
	return d
}

// StartComposition moves the controller to Composing. It is a no-op when a
// composition is already running.
func (c *Controller) StartComposition() {
	if c.state == Composing {
		return
	}
	c.state = Composing
	c.composition = &compositionContext{}
	c.log.Debug("composition started", "cursors", c.cursors.Count())
}

// EndComposition moves the controller back to Idle. For keyboard input
// the composed text gets the auto-format pass it skipped while composing.
func (c *Controller) EndComposition(source string) {
	if c.state != Composing {
		return
	}
	composed := c.composition.composedAnything
	c.state = Idle
	c.composition = nil
	c.log.Debug("composition ended", "source", source, "composed", composed)

	if source != SourceKeyboard || !composed {
		return
	}
	c.executeEdit(func() {
		c.runAutoFormat()
	}, source, viewmodel.ReasonNotSet)
}

// CompositionState returns whether an input method composition is running.
func (c *Controller) CompositionState() CompositionState {
	return c.state
}

// CompositionType replaces replacePrevCharCnt characters before and
// replaceNextCharCnt characters after every caret with text, then moves
// the caret by positionDelta. With nothing to insert or replace it only
// moves the carets.
func (c *Controller) CompositionType(text string, replacePrevCharCnt, replaceNextCharCnt, positionDelta int, source string) {
	if text == "" && replacePrevCharCnt == 0 && replaceNextCharCnt == 0 {
		if positionDelta != 0 {
			sels := c.Selections()
			moved := make([]textpos.Selection, len(sels))
			for i, s := range sels {
				p := s.Position()
				moved[i] = textpos.CollapsedSelection(textpos.NewPosition(p.LineNumber, p.Column+positionDelta))
			}
			c.SetSelections(source, moved, viewmodel.ReasonNotSet)
		}
		return
	}
	c.executeEdit(func() {
		c.executeEditOperation(compositionTypeOperation(c.prevEditOperationType, c.model, c.Selections(), text, replacePrevCharCnt, replaceNextCharCnt, positionDelta))
	}, source, viewmodel.ReasonNotSet)
}
