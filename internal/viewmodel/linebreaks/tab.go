package linebreaks

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// TabExpander converts between code point columns and visible columns.
// Visible columns are 0-based cell offsets: tabs advance to the next tab
// stop and wide characters take two cells.
type TabExpander struct {
	tabWidth int
}

// NewTabExpander creates a tab expander with the given tab width.
func NewTabExpander(tabWidth int) *TabExpander {
	if tabWidth < 1 {
		tabWidth = 4
	}
	return &TabExpander{tabWidth: tabWidth}
}

// TabWidth returns the current tab width.
func (t *TabExpander) TabWidth() int {
	return t.tabWidth
}

// NextTabStop returns the next tab stop column after the given column.
func (t *TabExpander) NextTabStop(col int) int {
	return col + t.tabWidth - (col % t.tabWidth)
}

// ClusterWidth returns how many cells a grapheme cluster occupies when it
// starts at visible column col.
func (t *TabExpander) ClusterWidth(cluster string, col int) int {
	if cluster == "\t" {
		return t.NextTabStop(col) - col
	}
	return runewidth.StringWidth(cluster)
}

// ExpandedWidth calculates the visual width of a string with tab expansion.
func (t *TabExpander) ExpandedWidth(s string) int {
	col := 0
	state := -1
	var cluster string
	for s != "" {
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		col += t.ClusterWidth(cluster, col)
	}
	return col
}

// VisibleColumnFromColumn returns the visible column before the code point
// at the 1-based column of line. Columns past the end extend the line with
// one cell per column.
func (t *TabExpander) VisibleColumnFromColumn(line string, column int) int {
	target := column - 1
	offset, col := 0, 0
	state := -1
	var cluster string
	for line != "" && offset < target {
		cluster, line, _, state = uniseg.FirstGraphemeClusterInString(line, state)
		col += t.ClusterWidth(cluster, col)
		offset += runeCount(cluster)
	}
	if offset < target {
		col += target - offset
	}
	return col
}

// ColumnFromVisibleColumn returns the 1-based column whose visible column
// is closest to visibleColumn. The result never exceeds the line's max
// column.
func (t *TabExpander) ColumnFromVisibleColumn(line string, visibleColumn int) int {
	if visibleColumn <= 0 {
		return 1
	}
	offset, col := 0, 0
	state := -1
	var cluster string
	for line != "" {
		cluster, line, _, state = uniseg.FirstGraphemeClusterInString(line, state)
		before := col
		after := col + t.ClusterWidth(cluster, col)
		n := runeCount(cluster)
		if after >= visibleColumn {
			if visibleColumn-before < after-visibleColumn {
				return offset + 1
			}
			return offset + n + 1
		}
		col = after
		offset += n
	}
	return offset + 1
}

func runeCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
