package download

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/ytget/clipfarm/internal/model"
)

// ProgressInterval is how often yt-dlp progress is reported
const ProgressInterval = 500 * time.Millisecond

// YTDLPFetcher downloads through the yt-dlp executable
type YTDLPFetcher struct {
	binary string
}

// NewYTDLPFetcher creates a fetcher; an empty binary uses yt-dlp from PATH
func NewYTDLPFetcher(binary string) *YTDLPFetcher {
	return &YTDLPFetcher{binary: binary}
}

func (f *YTDLPFetcher) command() *ytdlp.Command {
	dl := ytdlp.New()
	if f.binary != "" {
		dl.SetExecutable(f.binary)
	}
	return dl
}

// Title fetches metadata only and returns the video title
func (f *YTDLPFetcher) Title(ctx context.Context, url string) (string, error) {
	result, err := f.command().
		SkipDownload().
		NoPlaylist().
		PrintJSON().
		Run(ctx, url)
	if err != nil {
		return "", fmt.Errorf("yt-dlp metadata: %w", err)
	}

	info, err := result.GetExtractedInfo()
	if err != nil {
		return "", fmt.Errorf("yt-dlp metadata: %w", err)
	}
	if len(info) == 0 || info[0].Title == nil || *info[0].Title == "" {
		return "", errors.New("yt-dlp metadata: no title reported")
	}
	return *info[0].Title, nil
}

// Fetch downloads req.URL and returns the final filename reported by yt-dlp
func (f *YTDLPFetcher) Fetch(ctx context.Context, req FetchRequest, progress func(model.DownloadProgress)) (string, error) {
	dl := f.command().
		ForceOverwrites().
		NoPlaylist().
		PrintJSON().
		Format(req.Format).
		Output(req.OutputTemplate)

	if progress != nil {
		dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
			progress(progressFromUpdate(update))
		})
	}

	result, err := dl.Run(ctx, req.URL)
	if err != nil {
		return "", err
	}

	info, err := result.GetExtractedInfo()
	if err != nil || len(info) == 0 || info[0].Filename == nil {
		return "", nil
	}
	return *info[0].Filename, nil
}

func progressFromUpdate(update ytdlp.ProgressUpdate) model.DownloadProgress {
	p := model.DownloadProgress{ETASec: -1}

	if update.TotalBytes > 0 {
		p.Percent = int(float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100)
	}
	if eta := update.ETA(); eta > 0 {
		p.ETASec = int(eta.Seconds())
	}
	if update.Info != nil && update.Info.Title != nil {
		p.Title = *update.Info.Title
	}
	return p
}
