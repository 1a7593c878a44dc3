package main

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseScript(t *testing.T) {
	src := `# comment
type "a\tb"

left 2 select
goto 3 4
paste "x y"
`
	steps, err := parseScript(strings.NewReader(src))
	require.NoError(t, err)

	want := []step{
		{line: 2, verb: "type", args: []string{"a\tb"}},
		{line: 4, verb: "left", args: []string{"2", "select"}},
		{line: 5, verb: "goto", args: []string{"3", "4"}},
		{line: 6, verb: "paste", args: []string{"x y"}},
	}
	if diff := cmp.Diff(want, steps, cmp.AllowUnexported(step{})); diff != "" {
		t.Errorf("parseScript mismatch (-want +got):\n%s", diff)
	}
}

func TestParseScriptBadQuote(t *testing.T) {
	_, err := parseScript(strings.NewReader("type ok\ntype \"open\n"))
	require.ErrorContains(t, err, "script line 2")
}

func TestStepArgs(t *testing.T) {
	st := step{line: 1, verb: "left", args: []string{"select"}}
	require.True(t, st.selecting())
	n, err := st.intArg(0, 1)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	st = step{line: 7, verb: "down", args: []string{"0"}}
	_, err = st.intArg(0, 1)
	require.ErrorContains(t, err, "script line 7 (down)")
}
