package config

import (
	"fmt"
	"strings"

	"github.com/dshills/viewcore/internal/cursor"
	"github.com/dshills/viewcore/internal/logging"
	"github.com/dshills/viewcore/internal/viewmodel/linebreaks"
)

// Options is the complete viewcore configuration.
type Options struct {
	Editor  EditorOptions  `toml:"editor" yaml:"editor"`
	Logging LoggingOptions `toml:"logging" yaml:"logging"`
}

// EditorOptions configures wrapping and cursor behavior.
type EditorOptions struct {
	// WrappingColumn is the number of cells per view line; 0 disables
	// wrapping.
	WrappingColumn int `toml:"wrappingColumn" yaml:"wrappingColumn"`
	TabSize        int `toml:"tabSize" yaml:"tabSize"`
	// WrappingIndent is one of none, same, indent or deepIndent.
	WrappingIndent string `toml:"wrappingIndent" yaml:"wrappingIndent"`
	WordSeparators string `toml:"wordSeparators" yaml:"wordSeparators"`

	MultiCursorLimit            int  `toml:"multiCursorLimit" yaml:"multiCursorLimit"`
	MultiCursorMergeOverlapping bool `toml:"multiCursorMergeOverlapping" yaml:"multiCursorMergeOverlapping"`

	AutoClosingBrackets bool `toml:"autoClosingBrackets" yaml:"autoClosingBrackets"`
	// AutoClosingPairs lists two-character strings, opening then closing.
	AutoClosingPairs   []string `toml:"autoClosingPairs" yaml:"autoClosingPairs"`
	MarkdownAutoFormat bool     `toml:"markdownAutoFormat" yaml:"markdownAutoFormat"`

	// ColumnSelection is reserved and must be false.
	ColumnSelection bool `toml:"columnSelection" yaml:"columnSelection"`
}

// LoggingOptions configures the process logger.
type LoggingOptions struct {
	Level      string `toml:"level" yaml:"level"`
	File       string `toml:"file" yaml:"file"`
	MaxSizeMB  int    `toml:"maxSizeMB" yaml:"maxSizeMB"`
	MaxBackups int    `toml:"maxBackups" yaml:"maxBackups"`
	MaxAgeDays int    `toml:"maxAgeDays" yaml:"maxAgeDays"`
}

// Default returns the built-in configuration.
func Default() Options {
	cur := cursor.DefaultConfiguration()
	wrap := linebreaks.DefaultOptions()
	log := logging.DefaultConfig()
	return Options{
		Editor: EditorOptions{
			WrappingColumn:              wrap.WrappingColumn,
			TabSize:                     wrap.TabSize,
			WrappingIndent:              wrap.WrappingIndent.String(),
			WordSeparators:              cur.WordSeparators,
			MultiCursorLimit:            cur.MultiCursorLimit,
			MultiCursorMergeOverlapping: cur.MultiCursorMergeOverlapping,
			AutoClosingBrackets:         cur.AutoClosingBrackets,
			AutoClosingPairs:            []string{"()", "[]", "{}", `""`, "''"},
			MarkdownAutoFormat:          cur.MarkdownAutoFormat,
		},
		Logging: LoggingOptions{
			Level:      log.Level,
			MaxSizeMB:  log.MaxSizeMB,
			MaxBackups: log.MaxBackups,
			MaxAgeDays: log.MaxAgeDays,
		},
	}
}

// Validate checks every option. All problems are joined into one error
// wrapping ErrInvalidOption.
func (o Options) Validate() error {
	var problems []string
	add := func(path string, format string, args ...any) {
		problems = append(problems, path+": "+fmt.Sprintf(format, args...))
	}

	e := o.Editor
	if e.WrappingColumn < 0 {
		add("editor.wrappingColumn", "must not be negative, got %d", e.WrappingColumn)
	}
	if e.TabSize < 1 || e.TabSize > 32 {
		add("editor.tabSize", "must be between 1 and 32, got %d", e.TabSize)
	}
	if _, err := linebreaks.ParseWrappingIndent(e.WrappingIndent); err != nil {
		add("editor.wrappingIndent", "%v", err)
	}
	if e.MultiCursorLimit < 1 {
		add("editor.multiCursorLimit", "must be positive, got %d", e.MultiCursorLimit)
	}
	for _, p := range e.AutoClosingPairs {
		if len([]rune(p)) != 2 {
			add("editor.autoClosingPairs", "%q is not an opening and a closing character", p)
		}
	}
	if e.ColumnSelection {
		add("editor.columnSelection", "column selection is not supported")
	}
	switch strings.ToLower(o.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		add("logging.level", "unknown level %q", o.Logging.Level)
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidOption, strings.Join(problems, "; "))
}

// WrappingOptions returns the line breaking options. Options must be
// valid.
func (o Options) WrappingOptions() linebreaks.Options {
	indent, _ := linebreaks.ParseWrappingIndent(o.Editor.WrappingIndent)
	return linebreaks.Options{
		WrappingColumn: o.Editor.WrappingColumn,
		TabSize:        o.Editor.TabSize,
		WrappingIndent: indent,
	}
}

// CursorConfiguration returns the cursor options.
func (o Options) CursorConfiguration() cursor.Configuration {
	c := cursor.DefaultConfiguration()
	c.TabSize = o.Editor.TabSize
	if o.Editor.WordSeparators != "" {
		c.WordSeparators = o.Editor.WordSeparators
	}
	c.MultiCursorLimit = o.Editor.MultiCursorLimit
	c.MultiCursorMergeOverlapping = o.Editor.MultiCursorMergeOverlapping
	c.AutoClosingBrackets = o.Editor.AutoClosingBrackets
	c.MarkdownAutoFormat = o.Editor.MarkdownAutoFormat
	c.AutoClosingPairs = make(map[rune]rune, len(o.Editor.AutoClosingPairs))
	for _, p := range o.Editor.AutoClosingPairs {
		if rs := []rune(p); len(rs) == 2 {
			c.AutoClosingPairs[rs[0]] = rs[1]
		}
	}
	return c
}

// LoggingConfig returns the logger configuration.
func (o Options) LoggingConfig() logging.Config {
	c := logging.DefaultConfig()
	c.Level = o.Logging.Level
	c.File = o.Logging.File
	if o.Logging.MaxSizeMB > 0 {
		c.MaxSizeMB = o.Logging.MaxSizeMB
	}
	if o.Logging.MaxBackups > 0 {
		c.MaxBackups = o.Logging.MaxBackups
	}
	if o.Logging.MaxAgeDays > 0 {
		c.MaxAgeDays = o.Logging.MaxAgeDays
	}
	return c
}
