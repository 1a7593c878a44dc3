package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// step is one line of a replay script: a verb and its arguments.
type step struct {
	line int
	verb string
	args []string
}

// parseScript reads one step per line. Blank lines and lines starting
// with # are skipped. Arguments are separated by spaces; a double-quoted
// argument is unquoted with Go escape rules, so "a\tb" types a tab.
func parseScript(r io.Reader) ([]step, error) {
	var steps []step
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields, err := splitArgs(text)
		if err != nil {
			return nil, fmt.Errorf("script line %d: %w", n, err)
		}
		steps = append(steps, step{line: n, verb: fields[0], args: fields[1:]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return steps, nil
}

func splitArgs(s string) ([]string, error) {
	var out []string
	for {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			return out, nil
		}
		if s[0] != '"' {
			end := strings.IndexAny(s, " \t")
			if end < 0 {
				end = len(s)
			}
			out = append(out, s[:end])
			s = s[end:]
			continue
		}
		quoted, err := strconv.QuotedPrefix(s)
		if err != nil {
			return nil, fmt.Errorf("bad quoted argument %s", s)
		}
		arg, _ := strconv.Unquote(quoted)
		out = append(out, arg)
		s = s[len(quoted):]
	}
}

// intArg returns args[i] as a positive count, or def when absent.
func (st step) intArg(i, def int) (int, error) {
	if i >= len(st.args) || st.args[i] == "select" {
		return def, nil
	}
	n, err := strconv.Atoi(st.args[i])
	if err != nil || n < 1 {
		return 0, st.errorf("argument %q is not a positive number", st.args[i])
	}
	return n, nil
}

// selecting reports whether the step ends with the "select" keyword.
func (st step) selecting() bool {
	return len(st.args) > 0 && st.args[len(st.args)-1] == "select"
}

func (st step) errorf(format string, args ...any) error {
	return fmt.Errorf("script line %d (%s): %s", st.line, st.verb, fmt.Sprintf(format, args...))
}
