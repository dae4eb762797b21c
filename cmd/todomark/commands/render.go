package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/oligo/todomark/render/htmlpost"
	"github.com/oligo/todomark/render/markdown"
	"github.com/oligo/todomark/textstyle/css"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func newRenderCmd(opts *options) *cobra.Command {
	var (
		output   string
		flatten  bool
		skipCode bool
	)

	cmd := &cobra.Command{
		Use:   "render <file.md>",
		Short: "Render Markdown to HTML with TODO tokens highlighted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			page := css.NewDocument()
			p, _, err := opts.newPlugin(cmd, css.NewInjector(page))
			if err != nil {
				return err
			}
			defer p.Teardown()

			post := &htmlpost.Processor{}
			if flatten {
				post.Strategy = htmlpost.Flatten
			}
			if skipCode {
				post.Skip = []atom.Atom{atom.Code, atom.Pre}
			}

			marks, err := markdown.New(post).RenderInto(src, page)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close()
				out = f
			}

			if err := writePage(out, page); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d TODO(s) highlighted in %s\n", marks, p.Color())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the HTML to a file instead of stdout")
	cmd.Flags().BoolVar(&flatten, "flatten", false, "rewrite blocks from their flattened text, dropping inline markup")
	cmd.Flags().BoolVar(&skipCode, "skip-code", false, "leave TODO tokens inside code alone")
	return cmd
}

func writePage(w io.Writer, page *html.Node) error {
	if err := html.Render(w, page); err != nil {
		return fmt.Errorf("writing html: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
