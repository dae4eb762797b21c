package commands

import (
	"github.com/oligo/todomark"
	"github.com/spf13/cobra"
)

func newColorCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "color",
		Short: "Show the highlight colour settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := opts.newPlugin(cmd)
			if err != nil {
				return err
			}
			return todomark.NewSettingTab(p).Render(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "set <color>",
			Short:   "Change the highlight colour",
			Example: "  todomark color set '#FFA500'",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, _, err := opts.newPlugin(cmd)
				if err != nil {
					return err
				}
				tab := todomark.NewSettingTab(p)
				if err := tab.OnColorChange(cmd.Context(), args[0]); err != nil {
					return err
				}
				return tab.Render(cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Restore the default highlight colour",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				p, _, err := opts.newPlugin(cmd)
				if err != nil {
					return err
				}
				tab := todomark.NewSettingTab(p)
				if err := tab.OnReset(cmd.Context()); err != nil {
					return err
				}
				return tab.Render(cmd.OutOrStdout())
			},
		},
	)
	return cmd
}
