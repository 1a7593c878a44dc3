package cursor

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// graphemeOffsets returns the code point offsets where grapheme clusters
// start in line, followed by the line length.
func graphemeOffsets(line string) []int {
	offsets := []int{0}
	offset := 0
	state := -1
	var cluster string
	for line != "" {
		cluster, line, _, state = uniseg.FirstGraphemeClusterInString(line, state)
		offset += utf8.RuneCountInString(cluster)
		offsets = append(offsets, offset)
	}
	return offsets
}

// PrevCharLength returns how many code points the cluster ending at
// offset spans, so moving left never splits a cluster.
func PrevCharLength(line string, offset int) int {
	if offset <= 0 {
		return 0
	}
	prev := 0
	for _, o := range graphemeOffsets(line) {
		if o >= offset {
			break
		}
		prev = o
	}
	return offset - prev
}

// NextCharLength returns how many code points the cluster starting at
// offset spans.
func NextCharLength(line string, offset int) int {
	for _, o := range graphemeOffsets(line) {
		if o > offset {
			return o - offset
		}
	}
	return 1
}

// firstNonWhitespaceColumn returns the column of the first character that
// is not a space or tab, or 0 when the line is blank.
func firstNonWhitespaceColumn(line string) int {
	col := 1
	for _, r := range line {
		if r != ' ' && r != '\t' {
			return col
		}
		col++
	}
	return 0
}
