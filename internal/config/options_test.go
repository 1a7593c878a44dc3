package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/viewcore/internal/viewmodel/linebreaks"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		path   string
	}{
		{"negative column", func(o *Options) { o.Editor.WrappingColumn = -1 }, "editor.wrappingColumn"},
		{"zero tab size", func(o *Options) { o.Editor.TabSize = 0 }, "editor.tabSize"},
		{"unknown indent", func(o *Options) { o.Editor.WrappingIndent = "hanging" }, "editor.wrappingIndent"},
		{"zero cursor limit", func(o *Options) { o.Editor.MultiCursorLimit = 0 }, "editor.multiCursorLimit"},
		{"bad pair", func(o *Options) { o.Editor.AutoClosingPairs = []string{"("} }, "editor.autoClosingPairs"},
		{"column selection", func(o *Options) { o.Editor.ColumnSelection = true }, "editor.columnSelection"},
		{"log level", func(o *Options) { o.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Default()
			tt.modify(&o)
			err := o.Validate()
			require.ErrorIs(t, err, ErrInvalidOption)
			require.Contains(t, err.Error(), tt.path)
		})
	}
}

func TestConversions(t *testing.T) {
	o := Default()
	o.Editor.WrappingColumn = 40
	o.Editor.TabSize = 2
	o.Editor.WrappingIndent = "deepIndent"
	o.Editor.AutoClosingPairs = []string{"<>"}
	o.Editor.MarkdownAutoFormat = true
	o.Logging.Level = "debug"
	o.Logging.File = "/tmp/x.log"

	require.Equal(t, linebreaks.Options{WrappingColumn: 40, TabSize: 2, WrappingIndent: linebreaks.IndentDeep}, o.WrappingOptions())

	c := o.CursorConfiguration()
	require.Equal(t, 2, c.TabSize)
	require.True(t, c.MarkdownAutoFormat)
	require.Equal(t, map[rune]rune{'<': '>'}, c.AutoClosingPairs)

	l := o.LoggingConfig()
	require.Equal(t, "debug", l.Level)
	require.Equal(t, "/tmp/x.log", l.File)
	require.Equal(t, o.Logging.MaxBackups, l.MaxBackups)
}
