package cursor

import (
	"github.com/dshills/viewcore/internal/engine/textmodel"
	"github.com/dshills/viewcore/internal/engine/textpos"
	"github.com/dshills/viewcore/internal/viewmodel"
	"github.com/dshills/viewcore/internal/viewmodel/linebreaks"
	"github.com/dshills/viewcore/internal/viewmodel/projection"
)

// DefaultWordSeparators are the characters that end a word.
const DefaultWordSeparators = "`~!@#$%^&*()-=+[{]}\\|;:'\",.<>/?"

// Configuration holds the editor options cursors depend on.
type Configuration struct {
	TabSize                     int
	WordSeparators              string
	MultiCursorMergeOverlapping bool
	MultiCursorLimit            int

	// AutoClosingPairs maps an opening character to its closing character.
	AutoClosingPairs    map[rune]rune
	AutoClosingBrackets bool
	MarkdownAutoFormat  bool

	tabs *linebreaks.TabExpander
}

// DefaultConfiguration returns the default cursor options.
func DefaultConfiguration() Configuration {
	return Configuration{
		TabSize:                     4,
		WordSeparators:              DefaultWordSeparators,
		MultiCursorMergeOverlapping: true,
		MultiCursorLimit:            10000,
		AutoClosingPairs: map[rune]rune{
			'(': ')',
			'[': ']',
			'{': '}',
			'"': '"',
			'\'': '\'',
		},
		AutoClosingBrackets: true,
		MarkdownAutoFormat:  true,
	}
}

func (c *Configuration) tabExpander() *linebreaks.TabExpander {
	if c.tabs == nil || c.tabs.TabWidth() != c.TabSize {
		c.tabs = linebreaks.NewTabExpander(c.TabSize)
	}
	return c.tabs
}

// VisibleColumnFromColumn returns the 0-based visible column of a column
// on lineNumber.
func (c *Configuration) VisibleColumnFromColumn(lines Lines, lineNumber, column int) int {
	return c.tabExpander().VisibleColumnFromColumn(lines.LineContent(lineNumber), column)
}

// ColumnFromVisibleColumn returns the column of lineNumber nearest to
// visibleColumn, clamped to the line's valid columns.
func (c *Configuration) ColumnFromVisibleColumn(lines Lines, lineNumber, visibleColumn int) int {
	col := c.tabExpander().ColumnFromVisibleColumn(lines.LineContent(lineNumber), visibleColumn)
	return max(lines.LineMinColumn(lineNumber), min(col, lines.LineMaxColumn(lineNumber)))
}

// IsAutoClosingOpen reports whether ch opens an auto-closing pair.
func (c *Configuration) IsAutoClosingOpen(ch rune) (rune, bool) {
	closing, ok := c.AutoClosingPairs[ch]
	return closing, ok
}

// IsAutoClosingClose reports whether ch closes an auto-closing pair.
func (c *Configuration) IsAutoClosingClose(ch rune) bool {
	for _, closing := range c.AutoClosingPairs {
		if closing == ch {
			return true
		}
	}
	return false
}

// Lines is the line access cursor moves need. It is served in model
// coordinates by Context.ModelLines and in view coordinates by
// Context.ViewLines.
type Lines interface {
	LineCount() int
	LineContent(lineNumber int) string
	LineMinColumn(lineNumber int) int
	LineMaxColumn(lineNumber int) int
	NormalizePosition(pos textpos.Position, affinity projection.Affinity) textpos.Position
}

type modelLines struct {
	m *textmodel.Model
}

func (l modelLines) LineCount() int                    { return l.m.LineCount() }
func (l modelLines) LineContent(lineNumber int) string { return l.m.LineContent(lineNumber) }
func (l modelLines) LineMinColumn(lineNumber int) int  { return l.m.LineMinColumn(lineNumber) }
func (l modelLines) LineMaxColumn(lineNumber int) int  { return l.m.LineMaxColumn(lineNumber) }

func (l modelLines) NormalizePosition(pos textpos.Position, _ projection.Affinity) textpos.Position {
	return pos
}

type viewLines struct {
	vm *viewmodel.ViewModel
}

func (l viewLines) LineCount() int                    { return l.vm.ViewLineCount() }
func (l viewLines) LineContent(lineNumber int) string { return l.vm.ViewLineContent(lineNumber) }
func (l viewLines) LineMinColumn(lineNumber int) int  { return l.vm.ViewLineMinColumn(lineNumber) }
func (l viewLines) LineMaxColumn(lineNumber int) int  { return l.vm.ViewLineMaxColumn(lineNumber) }

func (l viewLines) NormalizePosition(pos textpos.Position, affinity projection.Affinity) textpos.Position {
	return l.vm.NormalizePosition(pos, affinity)
}

// Context bundles what cursor operations read: the model, the view model
// and the configuration.
type Context struct {
	Model     *textmodel.Model
	ViewModel *viewmodel.ViewModel
	Config    *Configuration
}

// NewContext creates a context. A nil config uses DefaultConfiguration.
func NewContext(vm *viewmodel.ViewModel, config *Configuration) *Context {
	if config == nil {
		c := DefaultConfiguration()
		config = &c
	}
	if config.TabSize == 0 {
		config.TabSize = vm.Lines().Options().TabSize
	}
	return &Context{Model: vm.Model(), ViewModel: vm, Config: config}
}

// ModelLines returns model line access.
func (c *Context) ModelLines() Lines {
	return modelLines{c.Model}
}

// ViewLines returns view line access.
func (c *Context) ViewLines() Lines {
	return viewLines{c.ViewModel}
}

// Converter returns the coordinates converter of the view model.
func (c *Context) Converter() viewmodel.CoordinatesConverter {
	return c.ViewModel.Converter()
}
