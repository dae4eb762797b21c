// Package commands implements the todomark command line host.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/oligo/todomark"
	"github.com/oligo/todomark/render/htmlpost"
	"github.com/oligo/todomark/settings"
	"github.com/oligo/todomark/textstyle"
	"github.com/oligo/todomark/textview"
	"github.com/spf13/cobra"
)

const envPrefix = "TODOMARK_"

// options are the global flags shared by every command.
type options struct {
	configPath string
	debug      bool
}

// NewRootCmd builds the command tree. Each call returns a fresh tree so
// tests can run commands independently.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "todomark",
		Short: "Highlight TODO tokens in documents",
		Long: `todomark highlights every occurrence of the word TODO in a document,
in the terminal or in rendered Markdown, with a configurable colour.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd, opts.debug)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"settings file (default: <user config dir>/todomark/data.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newRenderCmd(opts),
		newShowCmd(opts),
		newColorCmd(opts),
	)
	return rootCmd
}

func setupLogging(cmd *cobra.Command, debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	todomark.SetLogger(log)
	settings.SetLogger(log)
	textview.SetLogger(log)
	htmlpost.SetLogger(log)
}

func (o *options) settingsPath() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "todomark", "data.yaml"), nil
}

// newPlugin creates and loads a plugin writing to sinks.
func (o *options) newPlugin(cmd *cobra.Command, sinks ...textstyle.Sink) (*todomark.Plugin, *settings.FileStore, error) {
	path, err := o.settingsPath()
	if err != nil {
		return nil, nil, err
	}

	store := settings.NewFileStore(path, settings.WithEnvPrefix(envPrefix))
	p := todomark.New(todomark.Options{Store: store, Sinks: sinks})
	if err := p.Init(cmd.Context()); err != nil {
		return nil, nil, err
	}
	return p, store, nil
}
