package textmodel

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/viewcore/internal/engine/history"
	"github.com/dshills/viewcore/internal/engine/prefixsum"
	"github.com/dshills/viewcore/internal/engine/textpos"
	"github.com/dshills/viewcore/internal/event"
)

// Model is a document made of lines. It owns the content, the version
// counter, decorations, block types and the undo history.
// It is not safe for concurrent use.
type Model struct {
	lines  []string
	blocks []BlockType

	// lineStarts holds len(line)+1 per line so offsets count one
	// character per line terminator.
	lineStarts *prefixsum.Index

	versionID  int
	lineEnding LineEnding

	decorations      map[string]*decoration
	nextDecorationID int

	history *history.History
	maxUndo int

	// undoRedo is set while history steps run.
	undoRedo undoRedoState
	// resulting holds the selections the running undo or redo restores.
	resulting []textpos.Selection

	contentChanged     *event.Emitter[ContentChangedEvent]
	decorationsChanged *event.Emitter[DecorationsChangedEvent]
	blockTypeChanged   *event.Emitter[BlockTypeChangedEvent]
}

type undoRedoState uint8

const (
	undoRedoNone undoRedoState = iota
	undoRedoUndo
	undoRedoRedo
)

// New creates a model holding text.
func New(text string, opts ...Option) *Model {
	m := &Model{
		versionID:          1,
		decorations:        make(map[string]*decoration),
		contentChanged:     event.NewEmitter[ContentChangedEvent]("textmodel.content"),
		decorationsChanged: event.NewEmitter[DecorationsChangedEvent]("textmodel.decorations"),
		blockTypeChanged:   event.NewEmitter[BlockTypeChangedEvent]("textmodel.blocks"),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.history = history.NewHistory(m.maxUndo)
	m.setLines(splitLines(text))
	return m
}

// NewFromLines creates a model from already split lines.
func NewFromLines(lines []string, opts ...Option) *Model {
	return New(strings.Join(lines, "\n"), opts...)
}

func (m *Model) setLines(lines []string) {
	m.lines = lines
	m.blocks = make([]BlockType, len(lines))
	lengths := make([]int, len(lines))
	for i, l := range lines {
		lengths[i] = utf8.RuneCountInString(l) + 1
	}
	m.lineStarts = prefixsum.New(lengths)
}

// splitLines normalizes line terminators and splits text into lines.
// The result always has at least one element.
func splitLines(text string) []string {
	if strings.IndexByte(text, '\r') >= 0 {
		text = strings.ReplaceAll(text, "\r\n", "\n")
		text = strings.ReplaceAll(text, "\r", "\n")
	}
	return strings.Split(text, "\n")
}

// OnDidChangeContent subscribes to content changes.
func (m *Model) OnDidChangeContent(h event.Handler[ContentChangedEvent], opts ...event.SubscriptionOption) event.Subscription {
	return m.contentChanged.Subscribe(h, opts...)
}

// OnDidChangeDecorations subscribes to mark changes.
func (m *Model) OnDidChangeDecorations(h event.Handler[DecorationsChangedEvent], opts ...event.SubscriptionOption) event.Subscription {
	return m.decorationsChanged.Subscribe(h, opts...)
}

// OnDidChangeBlockType subscribes to block type changes.
func (m *Model) OnDidChangeBlockType(h event.Handler[BlockTypeChangedEvent], opts ...event.SubscriptionOption) event.Subscription {
	return m.blockTypeChanged.Subscribe(h, opts...)
}

// VersionID returns the content version. It increases on every applied
// batch and every flush.
func (m *Model) VersionID() int {
	return m.versionID
}

// LineEnding returns the line ending used by Value.
func (m *Model) LineEnding() LineEnding {
	return m.lineEnding
}

// LineCount returns the number of lines. It is always at least 1.
func (m *Model) LineCount() int {
	return len(m.lines)
}

// LineContent returns the text of a line without its terminator.
// Out-of-range line numbers return "".
func (m *Model) LineContent(lineNumber int) string {
	if lineNumber < 1 || lineNumber > len(m.lines) {
		return ""
	}
	return m.lines[lineNumber-1]
}

// LinesContent returns a copy of all lines.
func (m *Model) LinesContent() []string {
	out := make([]string, len(m.lines))
	copy(out, m.lines)
	return out
}

// LineLength returns the number of code points in a line.
func (m *Model) LineLength(lineNumber int) int {
	return utf8.RuneCountInString(m.LineContent(lineNumber))
}

// LineMinColumn returns the first column of a line. It is always 1.
func (m *Model) LineMinColumn(lineNumber int) int {
	return 1
}

// LineMaxColumn returns the column after the last character of a line.
func (m *Model) LineMaxColumn(lineNumber int) int {
	return m.LineLength(lineNumber) + 1
}

// LineFirstNonWhitespaceColumn returns the column of the first
// non-whitespace character, or 0 if the line is blank.
func (m *Model) LineFirstNonWhitespaceColumn(lineNumber int) int {
	col := 1
	for _, r := range m.LineContent(lineNumber) {
		if r != ' ' && r != '\t' {
			return col
		}
		col++
	}
	return 0
}

// LineLastNonWhitespaceColumn returns the column after the last
// non-whitespace character, or 0 if the line is blank.
func (m *Model) LineLastNonWhitespaceColumn(lineNumber int) int {
	runes := []rune(m.LineContent(lineNumber))
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] != ' ' && runes[i] != '\t' {
			return i + 2
		}
	}
	return 0
}

// Value returns the whole document joined with the model's line ending.
func (m *Model) Value() string {
	return strings.Join(m.lines, m.lineEnding.Sequence())
}

// FullModelRange returns the range covering the whole document.
func (m *Model) FullModelRange() textpos.Range {
	last := len(m.lines)
	return textpos.NewRange(1, 1, last, m.LineMaxColumn(last))
}

// ValidatePosition clamps a position into the document.
func (m *Model) ValidatePosition(pos textpos.Position) textpos.Position {
	line := pos.LineNumber
	if line < 1 {
		return textpos.NewPosition(1, 1)
	}
	if line > len(m.lines) {
		return textpos.NewPosition(len(m.lines), m.LineMaxColumn(len(m.lines)))
	}
	col := max(1, min(pos.Column, m.LineMaxColumn(line)))
	return textpos.NewPosition(line, col)
}

// ValidateRange clamps both ends of a range into the document.
func (m *Model) ValidateRange(r textpos.Range) textpos.Range {
	return textpos.RangeFromPositions(m.ValidatePosition(r.Start()), m.ValidatePosition(r.End()))
}

// ValueInRange returns the text covered by r, lines joined with "\n".
func (m *Model) ValueInRange(r textpos.Range) string {
	r = m.ValidateRange(r)
	if r.IsEmpty() {
		return ""
	}
	if r.IsSingleLine() {
		return runeSlice(m.lines[r.StartLineNumber-1], r.StartColumn, r.EndColumn)
	}
	var b strings.Builder
	b.WriteString(runeSlice(m.lines[r.StartLineNumber-1], r.StartColumn, -1))
	for line := r.StartLineNumber + 1; line < r.EndLineNumber; line++ {
		b.WriteByte('\n')
		b.WriteString(m.lines[line-1])
	}
	b.WriteByte('\n')
	b.WriteString(runeSlice(m.lines[r.EndLineNumber-1], 1, r.EndColumn))
	return b.String()
}

// OffsetAt returns the zero-based character offset of a position.
// Each line terminator counts as one character.
func (m *Model) OffsetAt(pos textpos.Position) int {
	pos = m.ValidatePosition(pos)
	return m.lineStarts.PrefixSum(pos.LineNumber-1) + pos.Column - 1
}

// PositionAt converts a character offset back to a position.
func (m *Model) PositionAt(offset int) textpos.Position {
	res := m.lineStarts.IndexOf(max(0, offset))
	return m.ValidatePosition(textpos.NewPosition(res.Index+1, res.Remainder+1))
}

// CharAt returns the code point starting at column, and false when the
// column is outside the line.
func (m *Model) CharAt(lineNumber, column int) (rune, bool) {
	if column < 1 {
		return 0, false
	}
	i := 1
	for _, r := range m.LineContent(lineNumber) {
		if i == column {
			return r, true
		}
		i++
	}
	return 0, false
}

// IsWhitespaceLine reports whether a line contains only spaces and tabs.
func (m *Model) IsWhitespaceLine(lineNumber int) bool {
	return strings.TrimFunc(m.LineContent(lineNumber), unicode.IsSpace) == ""
}

// runeSlice returns the code points of s between columns start and end
// (1-based, end exclusive). end < 0 means the end of s.
func runeSlice(s string, start, end int) string {
	if start <= 1 && end < 0 {
		return s
	}
	col := 1
	from, to := len(s), len(s)
	for i := range s {
		if col == start {
			from = i
		}
		if col == end {
			to = i
			break
		}
		col++
	}
	if start > col {
		return ""
	}
	if from > to {
		return ""
	}
	return s[from:to]
}
