package controller

import (
	"errors"
	"fmt"

	"github.com/dshills/viewcore/internal/command"
	"github.com/dshills/viewcore/internal/cursor"
	"github.com/dshills/viewcore/internal/engine/textpos"
	"github.com/dshills/viewcore/internal/viewmodel"
)

// executeEdit runs fn with selection tracking suspended and emits the
// resulting cursor change. A panic in fn is reported to the error sink;
// whatever fn already did is kept.
func (c *Controller) executeEdit(fn func(), source string, reason viewmodel.CursorChangeReason) {
	old := c.snapshot()
	c.cursors.StopTrackingSelections()
	c.isHandling = true

	func() {
		defer func() {
			if r := recover(); r != nil {
				c.sink.ReportPanic(r)
			}
		}()
		c.cursors.EnsureValidState()
		fn()
	}()

	c.isHandling = false
	c.cursors.StartTrackingSelections()
	c.validateAutoClosedActions()
	c.emitStateChangedIfNecessary(source, reason, old, false)
}

// executeEditOperation applies one batch of per-cursor commands and
// installs the selections they compute.
func (c *Controller) executeEditOperation(op *editOperationResult) {
	if op == nil || !hasCommands(op.commands) {
		return
	}
	if op.pushBefore {
		c.model.PushStackElement()
	}

	res, err := c.exec.Execute(c.model, c.Selections(), op.commands, c.markerSelection)
	if err != nil {
		c.sink.ReportUnexpected(fmt.Errorf("execute %d commands: %w", len(op.commands), err))
	}
	if res != nil {
		c.interpretCommandResult(res.Selections)
		c.recordAutoClosedActions(op.commands, res.Losers)
	}

	c.prevEditOperationType = op.typ
	if op.typ.isTyping() && c.ctx.Config.MarkdownAutoFormat && c.state == Idle {
		c.runAutoFormat()
	}
	if op.pushAfter {
		c.model.PushStackElement()
	}
}

func hasCommands(cmds []command.Command) bool {
	for _, cmd := range cmds {
		if cmd != nil {
			return true
		}
	}
	return false
}

func (c *Controller) markerSelection(i int) textpos.Selection {
	sels := c.cursors.ReadSelectionFromMarkers()
	if i < len(sels) {
		return sels[i]
	}
	return c.Selection()
}

// interpretCommandResult installs sels, falling back to the tracked
// selections when the executor produced none.
func (c *Controller) interpretCommandResult(sels []textpos.Selection) {
	if len(sels) == 0 {
		sels = c.cursors.ReadSelectionFromMarkers()
	}
	c.cursors.SetSelections(sels)
	c.cursors.Normalize()
}

// ExecuteCommands applies one command per cursor as a single undo step.
// Nil entries leave their cursor alone.
func (c *Controller) ExecuteCommands(commands []command.Command, source string) {
	c.executeEdit(func() {
		if len(commands) > c.cursors.Count() {
			c.sink.ReportUnexpected(fmt.Errorf("%d commands for %d cursors: %w", len(commands), c.cursors.Count(), ErrTooManyCommands))
			commands = commands[:c.cursors.Count()]
		}
		c.executeEditOperation(&editOperationResult{
			typ:        OpOther,
			commands:   commands,
			pushBefore: true,
			pushAfter:  true,
		})
	}, source, viewmodel.ReasonNotSet)
}

// ExecuteCommand collapses to the primary cursor and applies cmd.
func (c *Controller) ExecuteCommand(cmd command.Command, source string) {
	c.executeEdit(func() {
		c.cursors.KillSecondaryCursors()
		c.executeEditOperation(&editOperationResult{
			typ:        OpOther,
			commands:   []command.Command{cmd},
			pushBefore: true,
			pushAfter:  true,
		})
	}, source, viewmodel.ReasonNotSet)
}

// ErrTooManyCommands is reported when more commands than cursors are given.
var ErrTooManyCommands = errors.New("more commands than cursors")

// Type inserts text at every cursor. Keyboard input is typed one
// character at a time through the auto-closing rules; text from other
// sources is inserted as is. During a composition the text replaces what
// the composition inserted so far.
func (c *Controller) Type(text, source string) {
	if c.state == Composing {
		d := c.composition.update(text)
		c.CompositionType(d.text, d.replacePrevCharCnt, d.replaceNextCharCnt, d.positionDelta, source)
		return
	}

	c.executeEdit(func() {
		if source != SourceKeyboard {
			c.executeEditOperation(typeWithoutInterceptors(c.prevEditOperationType, c.Selections(), text))
			return
		}
		for _, r := range text {
			c.executeEditOperation(typeWithInterceptors(c.prevEditOperationType, c.ctx.Config, c.model, c.Selections(), c.autoClosedCharacters(), string(r)))
		}
	}, source, viewmodel.ReasonNotSet)
}

// DeleteLeft deletes the selection or the character before each cursor.
func (c *Controller) DeleteLeft(source string) {
	c.executeEdit(func() {
		c.executeEditOperation(deleteLeftOperation(c.prevEditOperationType, c.ctx.Config, c.model, c.Selections(), c.autoClosedCharacters()))
	}, source, viewmodel.ReasonNotSet)
}

// DeleteRight deletes the selection or the character after each cursor.
func (c *Controller) DeleteRight(source string) {
	c.executeEdit(func() {
		c.executeEditOperation(deleteRightOperation(c.prevEditOperationType, c.model, c.Selections()))
	}, source, viewmodel.ReasonNotSet)
}

// Undo reverts the last undo element and restores the cursors that were
// current before it.
func (c *Controller) Undo(source string) error {
	return c.undoRedo(source, viewmodel.ReasonUndo, c.model.Undo)
}

// Redo reapplies the last undone element.
func (c *Controller) Redo(source string) error {
	return c.undoRedo(source, viewmodel.ReasonRedo, c.model.Redo)
}

func (c *Controller) undoRedo(source string, reason viewmodel.CursorChangeReason, run func() ([]textpos.Selection, error)) error {
	c.isHandling = true
	sels, err := run()
	c.isHandling = false
	c.prevEditOperationType = OpOther
	if err != nil {
		return err
	}
	if len(sels) == 0 {
		sels = c.cursors.ReadSelectionFromMarkers()
	}
	c.SetStates(source, reason, cursor.FromModelSelections(sels))
	return nil
}
