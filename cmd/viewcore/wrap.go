package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/viewcore/internal/config"
	"github.com/dshills/viewcore/internal/engine/textmodel"
	"github.com/dshills/viewcore/internal/viewmodel"
	"github.com/dshills/viewcore/internal/viewmodel/linebreaks"
)

type wrapFlags struct {
	width   int
	tabSize int
	indent  string
	watch   bool
}

func newWrapCmd(a *app) *cobra.Command {
	var f wrapFlags
	cmd := &cobra.Command{
		Use:   "wrap FILE",
		Short: "Print the view lines of a file",
		Long: `Print every view line of FILE. Continuation lines of a wrapped model
line are marked with a blank gutter.

With --watch the output is printed again whenever the --config file
changes, until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			text := string(raw)

			opts, err := f.apply(cmd, a.opts.WrappingOptions())
			if err != nil {
				return err
			}
			model := textmodel.New(text, textmodel.WithDetectedLineEnding(text))
			vm := viewmodel.New(model, opts)
			defer vm.Dispose()

			out := cmd.OutOrStdout()
			renderView(out, vm)
			if !f.watch {
				return nil
			}
			if a.configPath == "" {
				return fmt.Errorf("--watch needs --config")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watchConfig(ctx, func(o config.Options) {
				next, err := f.apply(cmd, o.WrappingOptions())
				if err != nil {
					a.log.Warn("ignoring reloaded options", "error", err)
					return
				}
				if vm.SetWrappingOptions(next) {
					fmt.Fprintln(out)
					renderView(out, vm)
				}
			})
		},
	}
	cmd.Flags().IntVar(&f.width, "width", 0, "wrapping column (overrides editor.wrappingColumn)")
	cmd.Flags().IntVar(&f.tabSize, "tab-size", 0, "tab size (overrides editor.tabSize)")
	cmd.Flags().StringVar(&f.indent, "indent", "", "wrapping indent: none, same, indent or deepIndent")
	cmd.Flags().BoolVar(&f.watch, "watch", false, "re-print when the config file changes")
	return cmd
}

// apply lays explicitly set flags over opts.
func (f *wrapFlags) apply(cmd *cobra.Command, opts linebreaks.Options) (linebreaks.Options, error) {
	if cmd.Flags().Changed("width") {
		if f.width < 0 {
			return opts, fmt.Errorf("%w: --width must not be negative", config.ErrInvalidOption)
		}
		opts.WrappingColumn = f.width
	}
	if cmd.Flags().Changed("tab-size") {
		if f.tabSize < 1 {
			return opts, fmt.Errorf("%w: --tab-size must be positive", config.ErrInvalidOption)
		}
		opts.TabSize = f.tabSize
	}
	if cmd.Flags().Changed("indent") {
		indent, err := linebreaks.ParseWrappingIndent(f.indent)
		if err != nil {
			return opts, fmt.Errorf("%w: %v", config.ErrInvalidOption, err)
		}
		opts.WrappingIndent = indent
	}
	return opts, nil
}

// watchConfig calls apply with every reloaded option set until ctx is done.
func (a *app) watchConfig(ctx context.Context, apply func(config.Options)) error {
	updates, err := config.Watch(ctx, a.configPath, a.log)
	if err != nil {
		return err
	}
	for opts := range updates {
		a.opts = opts
		apply(opts)
	}
	return nil
}

// renderView prints one row per view line. The first view line of a model
// line carries the model line number and, for non-paragraph blocks, the
// block type.
func renderView(w io.Writer, vm *viewmodel.ViewModel) {
	prev := 0
	for _, data := range vm.ViewLinesData(1, vm.ViewLineCount()) {
		if data.ModelLineNumber == prev {
			fmt.Fprintf(w, "%5s | %s\n", "", data.Content)
			continue
		}
		prev = data.ModelLineNumber
		if data.BlockType != textmodel.BlockParagraph {
			fmt.Fprintf(w, "%5d | %s  <%s>\n", data.ModelLineNumber, data.Content, data.BlockType)
			continue
		}
		fmt.Fprintf(w, "%5d | %s\n", data.ModelLineNumber, data.Content)
	}
}
