package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/clipfarm/internal/download"
	"github.com/ytget/clipfarm/internal/events"
	"github.com/ytget/clipfarm/internal/model"
	"github.com/ytget/clipfarm/internal/platform"
)

func newDownloadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <url>",
		Short: "Download a YouTube video into the downloads directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd, args[0])
		},
	}

	cmd.Flags().String("resolution", "", "Maximum height such as 1080p, 720p, or best")
	cmd.Flags().String("dir", "", "Download directory")
	cmd.Flags().Bool("list", false, "List the videos of a playlist URL instead of downloading")
	return cmd
}

func runDownload(cmd *cobra.Command, url string) error {
	settings := settingsFor(cmd)
	resolution, _ := cmd.Flags().GetString("resolution")
	if resolution == "" {
		resolution = settings.GetDefaultResolution()
	}
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = settings.GetDownloadDirectory()
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	if list, _ := cmd.Flags().GetBool("list"); list {
		return listPlaylist(ctx, cmd, url)
	}

	bus := events.NewBus()
	out := newPrinter(cmd.OutOrStdout())
	detach := out.attach(bus)
	defer detach()

	service := download.NewService(bus, download.NewYTDLPFetcher(settings.GetYTDLPPath()), dir)
	task, err := service.Run(ctx, model.DownloadRequest{URL: url, Resolution: resolution})
	if err != nil {
		return err
	}
	if task.Status == model.TaskStatusError {
		return errors.New("download failed")
	}
	return nil
}

func listPlaylist(ctx context.Context, cmd *cobra.Command, url string) error {
	if !platform.IsPlaylistURL(url) {
		return fmt.Errorf("not a playlist URL: %s", url)
	}

	playlist, err := platform.NewPlaylistResolver().Resolve(ctx, url)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, infoStyle.Render(playlist.Title))
	for i, v := range playlist.Videos {
		fmt.Fprintf(w, "%3d. %s %s\n", i+1, v.Title, dimStyle.Render(v.URL))
	}
	return nil
}
