package download

import (
	"context"

	"github.com/ytget/clipfarm/internal/model"
)

// FetchRequest is what a Fetcher needs to download one video
type FetchRequest struct {
	URL string
	// Format is a yt-dlp format selector, see FormatSelector.
	Format string
	// OutputTemplate is a yt-dlp output template, e.g. "videos/downloads/Title.%(ext)s".
	OutputTemplate string
}

// Fetcher is the port to the video downloader tool
type Fetcher interface {
	// Title returns the remote video title without downloading it.
	Title(ctx context.Context, url string) (string, error)
	// Fetch downloads the video and returns the path reported by the tool,
	// which may be empty when the tool does not report one.
	Fetch(ctx context.Context, req FetchRequest, progress func(model.DownloadProgress)) (string, error)
}

// Downloader defines the interface for the download service.
type Downloader interface {
	Start(req model.DownloadRequest) (*model.DownloadTask, error)
	Run(ctx context.Context, req model.DownloadRequest) (*model.DownloadTask, error)
	Busy() bool
	SetDownloadDirectory(dir string)
}
