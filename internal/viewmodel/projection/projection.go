// Package projection maps one model line onto its view lines.
//
// A Projection is built from the break data of a line and a visibility
// flag. Visible lines produce one view line per segment; hidden lines
// produce none. Projections are immutable: changing the break data or the
// visibility creates a new value.
//
// Continuation view lines start with WrappedTextIndentLength spaces, so
// their first valid column is indent+1.
package projection

import (
	"sort"
	"strings"

	"github.com/dshills/viewcore/internal/engine/textpos"
	"github.com/dshills/viewcore/internal/viewmodel/linebreaks"
)

// Affinity picks a side when a model position maps to a wrap boundary,
// which is both the end of one view line and the start of the next.
type Affinity uint8

const (
	// AffinityNone resolves boundaries to the start of the next view line.
	AffinityNone Affinity = iota
	// AffinityLeft resolves boundaries to the end of the previous view line.
	AffinityLeft
	// AffinityRight resolves boundaries to the start of the next view line.
	AffinityRight
)

// LineSource provides model line content.
type LineSource interface {
	LineContent(lineNumber int) string
}

// Projection is the view layout of one model line.
type Projection struct {
	data    *linebreaks.BreakData
	visible bool
}

// New creates a projection. A nil data produces a single view line.
func New(data *linebreaks.BreakData, visible bool) *Projection {
	return &Projection{data: data, visible: visible}
}

// IsVisible reports whether the line produces view lines.
func (p *Projection) IsVisible() bool {
	return p.visible
}

// SetVisible returns a projection with the same breaks and the given
// visibility.
func (p *Projection) SetVisible(visible bool) *Projection {
	if visible == p.visible {
		return p
	}
	return &Projection{data: p.data, visible: visible}
}

// BreakData returns the break data, nil for unwrapped lines.
func (p *Projection) BreakData() *linebreaks.BreakData {
	return p.data
}

// ViewLineCount returns the number of view lines: 0 when hidden, otherwise
// the number of breaks plus one.
func (p *Projection) ViewLineCount() int {
	if !p.visible {
		return 0
	}
	return p.data.OutputLineCount()
}

func (p *Projection) breaks() []int {
	if p.data == nil {
		return nil
	}
	return p.data.BreakOffsets
}

func (p *Projection) indent(outputLineIndex int) int {
	if p.data == nil || outputLineIndex == 0 {
		return 0
	}
	return p.data.WrappedTextIndentLength
}

func (p *Projection) segmentStart(outputLineIndex int) int {
	if outputLineIndex == 0 {
		return 0
	}
	return p.breaks()[outputLineIndex-1]
}

// segmentEnd returns the end offset of a segment, or -1 for the last
// segment whose end is the line length.
func (p *Projection) segmentEnd(outputLineIndex int) int {
	b := p.breaks()
	if outputLineIndex < len(b) {
		return b[outputLineIndex]
	}
	return -1
}

func (p *Projection) clampIndex(outputLineIndex int) int {
	return max(0, min(outputLineIndex, len(p.breaks())))
}

// ViewLineContent returns the text of one view line including the wrapped
// indent.
func (p *Projection) ViewLineContent(src LineSource, modelLineNumber, outputLineIndex int) string {
	line := src.LineContent(modelLineNumber)
	if p.data == nil {
		return line
	}
	i := p.clampIndex(outputLineIndex)
	runes := []rune(line)
	start := min(p.segmentStart(i), len(runes))
	end := p.segmentEnd(i)
	if end < 0 || end > len(runes) {
		end = len(runes)
	}
	segment := string(runes[start:end])
	if n := p.indent(i); n > 0 {
		return strings.Repeat(" ", n) + segment
	}
	return segment
}

// ViewLineLength returns the length of a view line including the indent.
func (p *Projection) ViewLineLength(src LineSource, modelLineNumber, outputLineIndex int) int {
	return len([]rune(p.ViewLineContent(src, modelLineNumber, outputLineIndex)))
}

// ViewLineMinColumn returns the first valid column of a view line.
func (p *Projection) ViewLineMinColumn(outputLineIndex int) int {
	return p.indent(p.clampIndex(outputLineIndex)) + 1
}

// ViewLineMaxColumn returns the column after the last character of a view
// line.
func (p *Projection) ViewLineMaxColumn(src LineSource, modelLineNumber, outputLineIndex int) int {
	return p.ViewLineLength(src, modelLineNumber, outputLineIndex) + 1
}

// SegmentStartColumn returns the model column where a view line starts.
func (p *Projection) SegmentStartColumn(outputLineIndex int) int {
	return p.segmentStart(p.clampIndex(outputLineIndex)) + 1
}

// ContinuesWithWrappedLine reports whether another view line of the same
// model line follows.
func (p *Projection) ContinuesWithWrappedLine(outputLineIndex int) bool {
	return outputLineIndex < len(p.breaks())
}

// ModelColumnOfViewPosition converts a column on a view line to a model
// column. Columns inside the wrapped indent map to the segment start;
// columns past the end of a non-final segment map to its end.
func (p *Projection) ModelColumnOfViewPosition(outputLineIndex, outputColumn int) int {
	if p.data == nil {
		return outputColumn
	}
	i := p.clampIndex(outputLineIndex)
	offset := max(0, outputColumn-1-p.indent(i))
	start := p.segmentStart(i)
	if end := p.segmentEnd(i); end >= 0 {
		offset = min(offset, end-start)
	}
	return start + offset + 1
}

// ViewPositionOfModelPosition converts a model column to a view position.
// deltaLineNumber is the view line number of the first view line of this
// model line.
func (p *Projection) ViewPositionOfModelPosition(deltaLineNumber, inputColumn int, affinity Affinity) textpos.Position {
	if p.data == nil {
		return textpos.NewPosition(deltaLineNumber, inputColumn)
	}
	offset := inputColumn - 1
	b := p.breaks()
	// Number of breaks at or before offset.
	i := sort.SearchInts(b, offset+1)
	if affinity == AffinityLeft && i > 0 && b[i-1] == offset {
		i--
	}
	col := offset - p.segmentStart(i) + p.indent(i) + 1
	return textpos.NewPosition(deltaLineNumber+i, col)
}

// ViewLineNumberOfModelPosition returns the view line holding a model
// column.
func (p *Projection) ViewLineNumberOfModelPosition(deltaLineNumber, inputColumn int) int {
	return p.ViewPositionOfModelPosition(deltaLineNumber, inputColumn, AffinityNone).LineNumber
}

// NormalizePosition moves a position sitting on a wrap boundary to the side
// requested by affinity. pos must lie on the view line of outputLineIndex.
func (p *Projection) NormalizePosition(outputLineIndex int, pos textpos.Position, affinity Affinity) textpos.Position {
	if p.data == nil {
		return pos
	}
	i := p.clampIndex(outputLineIndex)
	switch affinity {
	case AffinityLeft:
		if i > 0 && pos.Column <= p.ViewLineMinColumn(i) {
			prev := i - 1
			end := p.segmentEnd(prev) - p.segmentStart(prev) + p.indent(prev) + 1
			return textpos.NewPosition(pos.LineNumber-1, end)
		}
	case AffinityRight:
		if end := p.segmentEnd(i); end >= 0 {
			maxCol := end - p.segmentStart(i) + p.indent(i) + 1
			if pos.Column >= maxCol {
				return textpos.NewPosition(pos.LineNumber+1, p.ViewLineMinColumn(i+1))
			}
		}
	}
	return pos
}
