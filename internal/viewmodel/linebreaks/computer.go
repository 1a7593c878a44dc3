package linebreaks

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// BreakData describes where a model line is split into view lines.
type BreakData struct {
	// BreakOffsets are increasing code point offsets where the second and
	// following view lines start. The line length is never included.
	BreakOffsets []int

	// BreakOffsetsVisibleColumn holds the visible column of each break.
	BreakOffsetsVisibleColumn []int

	// WrappedTextIndentLength is the number of cells prepended to every
	// continuation line.
	WrappedTextIndentLength int
}

// OutputLineCount returns the number of view lines.
func (d *BreakData) OutputLineCount() int {
	if d == nil {
		return 1
	}
	return len(d.BreakOffsets) + 1
}

// Computer produces BreakData for lines. Requests can be batched with
// AddRequest and Finalize, or answered one at a time with Compute.
type Computer struct {
	opts     Options
	tabs     *TabExpander
	requests []string
}

// NewComputer creates a computer for the given options.
func NewComputer(opts Options) *Computer {
	return &Computer{opts: opts, tabs: NewTabExpander(opts.TabSize)}
}

// Options returns the options the computer was created with.
func (c *Computer) Options() Options {
	return c.opts
}

// AddRequest queues a line for Finalize.
func (c *Computer) AddRequest(lineText string) {
	c.requests = append(c.requests, lineText)
}

// Finalize computes every queued request in order and clears the queue.
// A nil entry means the line fits on one view line.
func (c *Computer) Finalize() []*BreakData {
	out := make([]*BreakData, len(c.requests))
	for i, text := range c.requests {
		out[i] = c.Compute(text)
	}
	c.requests = nil
	return out
}

type cluster struct {
	offset        int // code points before the cluster
	col           int // visible column where the cluster starts
	width         int
	whitespace    bool
	canBreakAfter bool
}

// Compute returns the break data of one line, or nil if it needs no break.
func (c *Computer) Compute(lineText string) *BreakData {
	limit := c.opts.WrappingColumn
	if limit <= 0 || lineText == "" {
		return nil
	}
	if c.tabs.ExpandedWidth(lineText) <= limit {
		return nil
	}

	clusters := c.segment(lineText)
	indent := c.wrappedIndent(lineText)

	var breaks, breakCols []int
	lineStart := 0
	lineStartCol := 0
	lineIndent := 0
	lastOpportunity := -1

	for i := 0; i < len(clusters); i++ {
		cl := clusters[i]
		used := cl.col + cl.width - lineStartCol + lineIndent
		if used > limit && i > lineStart && !cl.whitespace {
			breakAt := i
			if lastOpportunity >= lineStart && lastOpportunity+1 < i {
				breakAt = lastOpportunity + 1
			}
			breaks = append(breaks, clusters[breakAt].offset)
			breakCols = append(breakCols, clusters[breakAt].col)
			lineStart = breakAt
			lineStartCol = clusters[breakAt].col
			lineIndent = indent
			lastOpportunity = -1
			i = breakAt - 1
			continue
		}
		if cl.canBreakAfter {
			lastOpportunity = i
		}
	}

	if len(breaks) == 0 {
		return nil
	}
	return &BreakData{
		BreakOffsets:              breaks,
		BreakOffsetsVisibleColumn: breakCols,
		WrappedTextIndentLength:   indent,
	}
}

// segment splits a line into grapheme clusters with their line break
// opportunities.
func (c *Computer) segment(text string) []cluster {
	var out []cluster
	offset, col := 0, 0
	state := -1
	var (
		part       string
		boundaries int
	)
	for text != "" {
		part, text, boundaries, state = uniseg.StepString(text, state)
		w := c.tabs.ClusterWidth(part, col)
		out = append(out, cluster{
			offset:        offset,
			col:           col,
			width:         w,
			whitespace:    part == " " || part == "\t",
			canBreakAfter: boundaries&uniseg.MaskLine != uniseg.LineDontBreak,
		})
		offset += utf8.RuneCountInString(part)
		col += w
	}
	return out
}

// wrappedIndent returns the indentation of continuation lines. Indents that
// would leave less than half the wrapping column for text are dropped.
func (c *Computer) wrappedIndent(text string) int {
	if c.opts.WrappingIndent == IndentNone {
		return 0
	}
	leading := 0
	for _, r := range text {
		if r != ' ' && r != '\t' {
			break
		}
		leading++
	}
	// Spaces and tabs are single bytes.
	indent := c.tabs.ExpandedWidth(text[:leading])
	switch c.opts.WrappingIndent {
	case IndentIndent:
		indent += c.tabs.TabWidth()
	case IndentDeep:
		indent += 2 * c.tabs.TabWidth()
	}
	if indent*2 > c.opts.WrappingColumn {
		return 0
	}
	return indent
}
