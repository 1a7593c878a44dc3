package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func envOf(vars ...string) *EnvLoader {
	l := NewEnvLoader(EnvPrefix)
	l.environ = func() []string { return vars }
	return l
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "viewcore.toml", `
[editor]
wrappingColumn = 72
wrappingIndent = "indent"
autoClosingPairs = ["<>"]

[logging]
level = "debug"
`)
	opts, err := load(path, envOf())
	require.NoError(t, err)

	want := Default()
	want.Editor.WrappingColumn = 72
	want.Editor.WrappingIndent = "indent"
	want.Editor.AutoClosingPairs = []string{"<>"}
	want.Logging.Level = "debug"
	require.Equal(t, want, opts)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "viewcore.yml", `
editor:
  tabSize: 2
  markdownAutoFormat: true
`)
	opts, err := load(path, envOf())
	require.NoError(t, err)

	want := Default()
	want.Editor.TabSize = 2
	want.Editor.MarkdownAutoFormat = true
	require.Equal(t, want, opts)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "viewcore.toml", "[editor]\ntabSize = 2\nwrappingColumn = 60\n")
	opts, err := load(path, envOf("VIEWCORE_EDITOR_TAB_SIZE=8", "VIEWCORE_LOGGING_LEVEL=warn"))
	require.NoError(t, err)
	require.Equal(t, 8, opts.Editor.TabSize)
	require.Equal(t, 60, opts.Editor.WrappingColumn)
	require.Equal(t, "warn", opts.Logging.Level)
}

func TestLoadWithoutFile(t *testing.T) {
	opts, err := load("", envOf("VIEWCORE_EDITOR_WRAPPING_COLUMN=30"))
	require.NoError(t, err)
	require.Equal(t, 30, opts.Editor.WrappingColumn)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		path    string
		env     []string
		wantErr error
	}{
		{
			name:    "missing file",
			path:    filepath.Join(dir, "missing.toml"),
			wantErr: ErrFileNotFound,
		},
		{
			name:    "unsupported extension",
			path:    writeConfig(t, "viewcore.json", "{}"),
			wantErr: ErrUnsupportedFormat,
		},
		{
			name:    "invalid value",
			path:    writeConfig(t, "bad.toml", "[editor]\ntabSize = 0\n"),
			wantErr: ErrInvalidOption,
		},
		{
			name:    "unknown key",
			path:    writeConfig(t, "unknown.toml", "[editor]\nfontSize = 12\n"),
			wantErr: ErrInvalidOption,
		},
		{
			name:    "wrong type from env",
			path:    "",
			env:     []string{"VIEWCORE_EDITOR_TAB_SIZE=wide"},
			wantErr: ErrInvalidOption,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(tt.path, envOf(tt.env...))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadParseError(t *testing.T) {
	path := writeConfig(t, "broken.toml", "[editor]\ntabSize = = 4\n")
	_, err := load(path, envOf())

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	require.Equal(t, path, perr.Path)
	require.Equal(t, 2, perr.Line)
	require.Contains(t, err.Error(), "line 2")
}

func TestLoadYAMLParseError(t *testing.T) {
	path := writeConfig(t, "broken.yaml", "editor: [unclosed\n")
	_, err := load(path, envOf())

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, path, perr.Path)
}
