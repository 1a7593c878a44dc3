package linebreaks

import "fmt"

// WrappingIndent controls the indentation of continuation lines.
type WrappingIndent uint8

const (
	// IndentNone starts continuation lines at column 1.
	IndentNone WrappingIndent = iota
	// IndentSame aligns continuation lines with the line's own indentation.
	IndentSame
	// IndentIndent adds one tab stop to the line's indentation.
	IndentIndent
	// IndentDeep adds two tab stops to the line's indentation.
	IndentDeep
)

// String returns the configuration name of the indent mode.
func (w WrappingIndent) String() string {
	switch w {
	case IndentNone:
		return "none"
	case IndentSame:
		return "same"
	case IndentIndent:
		return "indent"
	case IndentDeep:
		return "deepIndent"
	default:
		return "unknown"
	}
}

// ParseWrappingIndent parses a configuration name.
func ParseWrappingIndent(s string) (WrappingIndent, error) {
	switch s {
	case "none", "":
		return IndentNone, nil
	case "same":
		return IndentSame, nil
	case "indent":
		return IndentIndent, nil
	case "deepIndent":
		return IndentDeep, nil
	}
	return IndentNone, fmt.Errorf("unknown wrapping indent %q", s)
}

// Options configures line breaking.
type Options struct {
	// WrappingColumn is the number of cells per view line.
	// Zero or negative disables wrapping.
	WrappingColumn int

	// TabSize is the distance between tab stops.
	TabSize int

	// WrappingIndent controls continuation line indentation.
	WrappingIndent WrappingIndent
}

// DefaultOptions returns options with wrapping disabled.
func DefaultOptions() Options {
	return Options{TabSize: 4, WrappingIndent: IndentSame}
}

// Equals reports whether both option sets produce the same breaks.
func (o Options) Equals(other Options) bool {
	return o == other
}
