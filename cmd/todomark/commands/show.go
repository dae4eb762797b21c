package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/oligo/todomark/internal/painter"
	"github.com/oligo/todomark/match"
	"github.com/oligo/todomark/settings"
	"github.com/oligo/todomark/textstyle/term"
	"github.com/oligo/todomark/textview"
	"github.com/spf13/cobra"
)

const watchDebounce = 100 * time.Millisecond

func newShowCmd(opts *options) *cobra.Command {
	var (
		line    int
		lines   int
		numbers bool
		follow  bool
	)

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Print a window of a file with TODO tokens highlighted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			sink := term.NewSink()
			p, store, err := opts.newPlugin(cmd, sink)
			if err != nil {
				return err
			}
			defer p.Teardown()

			view := textview.NewTextView(string(data))
			if lines > 0 {
				view.ScrollTo(max(line-1, 0), lines)
			}

			tp := painter.NewTextPainter()
			tp.LineNumbers = numbers
			paint := func(w io.Writer) error {
				tp.SetStyle(match.MarkClass, sink.Style())
				if lines > 0 {
					return tp.Paint(w, view, view.Decorations(), max(line-1, 0), lines)
				}
				return tp.Paint(w, view, view.Decorations(), 0, view.LineCount())
			}

			if err := paint(cmd.OutOrStdout()); err != nil {
				return err
			}
			if !follow {
				return nil
			}
			return followSettings(cmd, store, p.Watch, paint)
		},
	}

	cmd.Flags().IntVarP(&line, "line", "l", 1, "first line to show (one based)")
	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "number of lines to show (default: all)")
	cmd.Flags().BoolVar(&numbers, "numbers", false, "prefix lines with their number")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "repaint when the highlight colour changes")
	return cmd
}

// followSettings repaints on every change of the settings file until
// interrupted.
func followSettings(cmd *cobra.Command, store *settings.FileStore,
	watch func(context.Context, <-chan struct{}, func(string)), paint func(io.Writer) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if err := os.MkdirAll(filepath.Dir(store.Path()), 0755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	w, err := settings.NewWatcher(store.Path(), watchDebounce)
	if err != nil {
		return err
	}
	changes, err := w.Start()
	if err != nil {
		return err
	}
	defer w.Stop()

	watch(ctx, changes, func(color string) {
		fmt.Fprintf(cmd.ErrOrStderr(), "highlight colour changed to %s\n", color)
		if err := paint(cmd.OutOrStdout()); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
	})
	return nil
}
