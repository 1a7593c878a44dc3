package controller

import (
	"slices"
	"strings"

	"github.com/dshills/viewcore/internal/command"
	"github.com/dshills/viewcore/internal/engine/textpos"
	"github.com/dshills/viewcore/internal/viewmodel"
)

// ClipboardMetadata describes how the last copied text was produced.
type ClipboardMetadata struct {
	// IsFromEmptySelection is set when whole lines were copied from empty
	// selections; pasting such text inserts it above the cursor line.
	IsFromEmptySelection bool
	// MulticursorText holds the text of each copied selection.
	MulticursorText []string
}

// ClipboardMetadataStore remembers metadata for the text last copied in a
// session. The system clipboard only carries plain text; the metadata is
// valid while the pasted text equals what was stored.
type ClipboardMetadataStore struct {
	text string
	meta ClipboardMetadata
	set  bool
}

// NewClipboardMetadataStore creates an empty store.
func NewClipboardMetadataStore() *ClipboardMetadataStore {
	return &ClipboardMetadataStore{}
}

// Set records metadata for text.
func (s *ClipboardMetadataStore) Set(text string, meta ClipboardMetadata) {
	s.text, s.meta, s.set = text, meta, true
}

// Get returns the metadata stored for text, if text is what was copied.
func (s *ClipboardMetadataStore) Get(text string) (ClipboardMetadata, bool) {
	if !s.set || s.text != text {
		return ClipboardMetadata{}, false
	}
	return s.meta, true
}

// Copy returns the text of every selection in document order and records
// its metadata. Empty selections copy their whole line.
func (c *Controller) Copy() string {
	sels := slices.Clone(c.Selections())
	slices.SortFunc(sels, func(a, b textpos.Selection) int {
		return textpos.CompareRangesUsingStarts(a.Range(), b.Range())
	})

	allEmpty := true
	texts := make([]string, len(sels))
	for i, s := range sels {
		if s.IsEmpty() {
			texts[i] = c.model.LineContent(s.PositionLineNumber) + "\n"
			continue
		}
		allEmpty = false
		texts[i] = c.model.ValueInRange(s.Range())
	}

	var text string
	if allEmpty {
		text = strings.Join(texts, "")
	} else {
		for i, s := range sels {
			if s.IsEmpty() {
				texts[i] = ""
			}
		}
		text = strings.Join(texts, "\n")
	}

	meta := ClipboardMetadata{IsFromEmptySelection: allEmpty}
	if len(sels) > 1 {
		meta.MulticursorText = texts
	}
	c.clipboard.Set(text, meta)
	return text
}

// PasteFromClipboard pastes text using the metadata recorded when it was
// copied, if any.
func (c *Controller) PasteFromClipboard(text, source string) {
	meta, _ := c.clipboard.Get(text)
	c.Paste(text, meta.IsFromEmptySelection, meta.MulticursorText, source)
}

// Paste inserts text at every cursor. With several cursors the text is
// split over them, one piece each, when multicursorText or the lines of
// text match the cursor count. pasteOnNewLine inserts a whole copied line
// above the cursor line.
func (c *Controller) Paste(text string, pasteOnNewLine bool, multicursorText []string, source string) {
	c.executeEdit(func() {
		sels := c.Selections()
		var cmds []command.Command
		if pieces := distributePaste(sels, text, pasteOnNewLine, multicursorText); pieces != nil {
			cmds = distributedPasteCommands(sels, pieces)
		} else {
			cmds = simplePasteCommands(sels, text, pasteOnNewLine)
		}
		c.executeEditOperation(&editOperationResult{
			typ:        OpOther,
			commands:   cmds,
			pushBefore: true,
			pushAfter:  true,
		})
	}, source, viewmodel.ReasonPaste)
}

func distributePaste(sels []textpos.Selection, text string, pasteOnNewLine bool, multicursorText []string) []string {
	if pasteOnNewLine || len(sels) == 1 {
		return nil
	}
	if len(multicursorText) == len(sels) {
		return multicursorText
	}
	text = strings.TrimSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\r")
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) == len(sels) {
		return lines
	}
	return nil
}

// distributedPasteCommands gives the k-th piece to the k-th selection in
// document order.
func distributedPasteCommands(sels []textpos.Selection, pieces []string) []command.Command {
	order := make([]int, len(sels))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return textpos.CompareRangesUsingStarts(sels[a].Range(), sels[b].Range())
	})
	cmds := make([]command.Command, len(sels))
	for k, i := range order {
		cmds[i] = command.NewReplaceCommand(sels[i].Range(), pieces[k])
	}
	return cmds
}

func simplePasteCommands(sels []textpos.Selection, text string, pasteOnNewLine bool) []command.Command {
	wholeLine := pasteOnNewLine && strings.Index(text, "\n") == len(text)-1
	cmds := make([]command.Command, len(sels))
	for i, s := range sels {
		if wholeLine && s.IsEmpty() {
			line := s.PositionLineNumber
			cmds[i] = &command.ReplacePreserveSelectionCommand{
				Range:            textpos.NewRange(line, 1, line, 1),
				Text:             text,
				Selection:        s,
				ForceMoveMarkers: true,
			}
			continue
		}
		cmds[i] = command.NewReplaceCommand(s.Range(), text)
	}
	return cmds
}
