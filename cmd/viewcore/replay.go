package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dshills/viewcore/internal/controller"
	"github.com/dshills/viewcore/internal/cursor"
	"github.com/dshills/viewcore/internal/engine/textmodel"
	"github.com/dshills/viewcore/internal/engine/textpos"
	"github.com/dshills/viewcore/internal/logging"
	"github.com/dshills/viewcore/internal/viewmodel"
)

func newReplayCmd(a *app) *cobra.Command {
	var showView bool
	cmd := &cobra.Command{
		Use:   "replay FILE SCRIPT",
		Short: "Apply an editing script to a file and print the result",
		Long: `Replay loads FILE into a model, runs every step of SCRIPT through the
cursors controller and prints the resulting text and cursors. FILE is
not modified.

Script steps, one per line:
  type TEXT            type at every cursor ("\n" starts a new line)
  compose-start        begin an input method composition
  compose-end          commit the composition
  left|right [N]       move by characters
  up|down [N]          move by view lines
  word-left|word-right move by words
  home|end|top|bottom  line and buffer boundaries
  goto LINE COLUMN     collapse to one cursor at a position
  select-all
  add-cursor-up|add-cursor-down
  backspace|delete [N]
  copy|paste [TEXT]
  undo|redo
  wrap COLUMN          change the wrapping column

Moves accept a trailing "select" to extend the selection.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			script, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("open script: %w", err)
			}
			defer script.Close()
			steps, err := parseScript(script)
			if err != nil {
				return err
			}

			s := newSession(a, string(raw))
			defer s.close()
			for _, st := range steps {
				if err := s.run(st); err != nil {
					return err
				}
			}
			s.print(cmd.OutOrStdout(), showView)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showView, "view", false, "also print the view lines")
	return cmd
}

// session is one replayed editing session.
type session struct {
	sink  *logging.ErrorSink
	model *textmodel.Model
	vm    *viewmodel.ViewModel
	c     *controller.Controller
	clip  string
}

func newSession(a *app, text string) *session {
	model := textmodel.New(text, textmodel.WithDetectedLineEnding(text))
	vm := viewmodel.New(model, a.opts.WrappingOptions())
	sink := logging.NewErrorSink(a.log)
	c := controller.New(vm,
		controller.WithConfiguration(a.opts.CursorConfiguration()),
		controller.WithLogger(logging.WithComponent(a.log, "controller")),
		controller.WithErrorSink(sink),
	)
	return &session{sink: sink, model: model, vm: vm, c: c}
}

func (s *session) close() {
	s.c.Dispose()
	s.vm.Dispose()
}

// move replaces the cursor states with the result of a move command.
func (s *session) move(states []cursor.State) {
	s.c.SetStates(controller.SourceKeyboard, viewmodel.ReasonExplicit, states)
}

func (s *session) run(st step) error {
	ctx := s.c.Context()
	sel := st.selecting()

	switch st.verb {
	case "type":
		if len(st.args) != 1 {
			return st.errorf("want one TEXT argument")
		}
		s.c.Type(st.args[0], controller.SourceKeyboard)
	case "compose-start":
		s.c.StartComposition()
	case "compose-end":
		s.c.EndComposition(controller.SourceKeyboard)

	case "left", "right", "up", "down":
		n, err := st.intArg(0, 1)
		if err != nil {
			return err
		}
		states := s.c.CursorStates()
		switch st.verb {
		case "left":
			s.move(cursor.MoveLeft(ctx, states, sel, n))
		case "right":
			s.move(cursor.MoveRight(ctx, states, sel, n))
		case "up":
			s.move(cursor.MoveUpByViewLines(ctx, states, sel, n))
		case "down":
			s.move(cursor.MoveDownByViewLines(ctx, states, sel, n))
		}
	case "word-left":
		s.move(cursor.MoveWordLeft(ctx, s.c.CursorStates(), sel))
	case "word-right":
		s.move(cursor.MoveWordRight(ctx, s.c.CursorStates(), sel))
	case "home":
		s.move(cursor.MoveToBeginningOfLine(ctx, s.c.CursorStates(), sel))
	case "end":
		s.move(cursor.MoveToEndOfLine(ctx, s.c.CursorStates(), sel))
	case "top":
		s.move(cursor.MoveToBeginningOfBuffer(ctx, s.c.CursorStates(), sel))
	case "bottom":
		s.move(cursor.MoveToEndOfBuffer(ctx, s.c.CursorStates(), sel))
	case "goto":
		if len(st.args) < 2 {
			return st.errorf("want LINE COLUMN")
		}
		line, err := strconv.Atoi(st.args[0])
		if err != nil {
			return st.errorf("bad line %q", st.args[0])
		}
		col, err := strconv.Atoi(st.args[1])
		if err != nil {
			return st.errorf("bad column %q", st.args[1])
		}
		pos := textpos.Position{LineNumber: line, Column: col}
		s.move([]cursor.State{cursor.MoveTo(ctx, s.c.PrimaryCursorState(), sel, pos, nil)})
	case "select-all":
		s.move([]cursor.State{cursor.SelectAll(ctx)})
	case "add-cursor-up":
		s.move(cursor.AddCursorUp(ctx, s.c.CursorStates()))
	case "add-cursor-down":
		s.move(cursor.AddCursorDown(ctx, s.c.CursorStates()))

	case "backspace", "delete":
		n, err := st.intArg(0, 1)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if st.verb == "backspace" {
				s.c.DeleteLeft(controller.SourceKeyboard)
			} else {
				s.c.DeleteRight(controller.SourceKeyboard)
			}
		}
	case "copy":
		s.clip = s.c.Copy()
	case "paste":
		if len(st.args) > 0 {
			s.c.Paste(st.args[0], false, nil, controller.SourceKeyboard)
			break
		}
		s.c.PasteFromClipboard(s.clip, controller.SourceKeyboard)
	case "undo":
		if err := s.c.Undo(controller.SourceKeyboard); err != nil {
			return st.errorf("%v", err)
		}
	case "redo":
		if err := s.c.Redo(controller.SourceKeyboard); err != nil {
			return st.errorf("%v", err)
		}
	case "wrap":
		col, err := strconv.Atoi(firstArg(st.args))
		if err != nil || col < 0 {
			return st.errorf("want a wrapping column")
		}
		opts := s.vm.Lines().Options()
		opts.WrappingColumn = col
		s.vm.SetWrappingOptions(opts)
	default:
		return st.errorf("unknown step")
	}

	if n := s.sink.Count(); n > 0 {
		return st.errorf("%d unexpected error(s), last: %v", n, s.sink.Last())
	}
	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// print writes the document followed by one line per cursor.
func (s *session) print(w io.Writer, showView bool) {
	fmt.Fprint(w, s.model.Value())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "---")
	for i, sel := range s.c.Selections() {
		fmt.Fprintf(w, "cursor %d: %s\n", i+1, sel)
	}
	if showView {
		fmt.Fprintln(w, "---")
		renderView(w, s.vm)
	}
}
