// Package linebreaks decides where model lines wrap into view lines.
//
// Lines are segmented into grapheme clusters with github.com/rivo/uniseg,
// which also reports the Unicode line break opportunities between them.
// Cluster widths come from github.com/mattn/go-runewidth, with tabs
// expanding to the next tab stop. A line wraps at the last opportunity that
// keeps it within the wrapping column; a word longer than the column is cut
// where it overflows. Whitespace may hang past the column.
//
// Continuation lines can be indented according to WrappingIndent. The
// indent is reported as WrappedTextIndentLength and is rendered as spaces
// by the projection.
package linebreaks
