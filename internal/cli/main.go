// Package cli is the clipfarm command line: without arguments it opens the
// desktop app, the download and trim subcommands run the same services headless.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ytget/clipfarm/internal/config"
	"github.com/ytget/clipfarm/internal/ui"
)

// Main runs the command line and exits with a non-zero status on failure
func Main(version string) {
	if err := config.LoadEnvFile(); err != nil {
		fmt.Fprintln(os.Stderr, "warning: .env:", err)
	}

	root := NewRootCommand(version, func() error {
		ui.Run(version)
		return nil
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

// NewRootCommand builds the command tree; launchGUI runs when no subcommand is given
func NewRootCommand(version string, launchGUI func() error) *cobra.Command {
	root := &cobra.Command{
		Use:          "clipfarm",
		Short:        "Download YouTube videos and cut clips from them",
		Version:      version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return launchGUI()
		},
	}
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.PersistentFlags().String("ffmpeg", "", "Path to the ffmpeg executable")
	root.PersistentFlags().String("ffprobe", "", "Path to the ffprobe executable")

	root.AddCommand(newDownloadCommand(), newTrimCommand())
	return root
}

// settingsFor returns headless settings; flags take precedence over the environment and .env
func settingsFor(cmd *cobra.Command) *config.Settings {
	settings := config.NewSettings(config.NewMemoryPreferences())
	if v, _ := cmd.Flags().GetString("ffmpeg"); v != "" {
		settings.Override(config.KeyFFmpegPath, v)
	}
	if v, _ := cmd.Flags().GetString("ffprobe"); v != "" {
		settings.Override(config.KeyFFprobePath, v)
	}
	return settings
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
