package download

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ytget/clipfarm/internal/events"
	"github.com/ytget/clipfarm/internal/model"
	"github.com/ytget/clipfarm/internal/platform"
)

// Format selection
const (
	ResolutionBest       = "best"
	FormatBest           = "bestvideo+bestaudio/best"
	FormatHeightTemplate = "bestvideo[height<=%d]+bestaudio/best[height<=%d]"
	FallbackHeight       = 720
)

// Naming
const (
	UnknownTitle      = "unknown_video"
	OutputExtTemplate = ".%(ext)s"
	DefaultVideoExt   = ".mp4"
	invalidTitleChars = `<>:"/\|?*`
)

var (
	// ErrMissingURL is returned when a request carries no URL
	ErrMissingURL = errors.New("no video URL given")
	// ErrBusy is returned when a download is already running
	ErrBusy = errors.New("a download is already in progress")
)

// Service runs one download at a time and publishes its lifecycle on the bus
type Service struct {
	bus     events.Publisher
	fetcher Fetcher

	mu          sync.RWMutex
	downloadDir string
	busy        atomic.Bool
}

// NewService creates a new download service
func NewService(bus events.Publisher, fetcher Fetcher, downloadDir string) *Service {
	return &Service{
		bus:         bus,
		fetcher:     fetcher,
		downloadDir: downloadDir,
	}
}

// SetDownloadDirectory sets the download directory used by later runs
func (s *Service) SetDownloadDirectory(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.downloadDir = dir
}

// DownloadDirectory returns the current download directory
func (s *Service) DownloadDirectory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.downloadDir
}

// Busy reports whether a download is running
func (s *Service) Busy() bool {
	return s.busy.Load()
}

// Start validates req and downloads on a background goroutine
func (s *Service) Start(req model.DownloadRequest) (*model.DownloadTask, error) {
	task, err := s.begin(req)
	if err != nil {
		return nil, err
	}

	go func() {
		defer s.busy.Store(false)
		s.download(context.Background(), task)
	}()

	snapshot := *task
	return &snapshot, nil
}

// Run downloads on the calling goroutine. The returned task carries the
// final status; a failed download is reported through task.LastError.
func (s *Service) Run(ctx context.Context, req model.DownloadRequest) (*model.DownloadTask, error) {
	task, err := s.begin(req)
	if err != nil {
		return nil, err
	}
	defer s.busy.Store(false)

	s.download(ctx, task)
	return task, nil
}

func (s *Service) begin(req model.DownloadRequest) (*model.DownloadTask, error) {
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		return nil, ErrMissingURL
	}
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	return model.NewDownloadTask(req), nil
}

// download performs a single attempt; the task is owned by the calling goroutine
func (s *Service) download(ctx context.Context, task *model.DownloadTask) {
	dir := s.DownloadDirectory()

	task.Status = model.TaskStatusStarting
	s.bus.Publish(events.TopicDownloadStarted, *task)

	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		s.fail(task, fmt.Errorf("failed to create download directory %s: %w", dir, err))
		return
	}

	title, err := s.fetcher.Title(ctx, task.Request.URL)
	if err != nil {
		log.Printf("Error fetching title for %s: %v", task.Request.URL, err)
		title = UnknownTitle
	}
	task.Title = SanitizeFilename(title)
	if task.Title == "" {
		task.Title = UnknownTitle
	}
	task.Format = FormatSelector(task.Request.Resolution)
	task.Status = model.TaskStatusRunning

	reported, err := s.fetcher.Fetch(ctx, FetchRequest{
		URL:            task.Request.URL,
		Format:         task.Format,
		OutputTemplate: OutputTemplate(dir, task.Title),
	}, func(p model.DownloadProgress) {
		p.TaskID = task.ID
		if p.Title == "" {
			p.Title = task.Title
		}
		s.bus.Publish(events.TopicDownloadProgress, p)
	})
	if err != nil {
		s.fail(task, err)
		return
	}

	task.OutputPath = resolveOutputPath(reported, dir, task.Title)
	task.Status = model.TaskStatusCompleted
	task.Progress = 1.0
	task.Percent = 100
	task.FinishedAt = time.Now()

	s.bus.Publish(events.TopicDownloadComplete, task.OutputPath)
	if task.Request.AutoLoad {
		s.bus.Publish(events.TopicAutoLoadVideo, task.OutputPath)
	}
}

func (s *Service) fail(task *model.DownloadTask, err error) {
	log.Printf("Download failed for %s: %v", task.Request.URL, err)
	task.Status = model.TaskStatusError
	task.LastError = err.Error()
	task.FinishedAt = time.Now()
	s.bus.Publish(events.TopicDownloadFailed, err.Error())
}

// FormatSelector maps a resolution choice to a yt-dlp format selector.
// "best" selects the best streams, "<N>p" caps the height at N and anything
// unparseable falls back to 720.
func FormatSelector(resolution string) string {
	resolution = strings.TrimSpace(resolution)
	if resolution == ResolutionBest {
		return FormatBest
	}

	height, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(resolution), "p"))
	if err != nil || height <= 0 {
		height = FallbackHeight
	}
	return fmt.Sprintf(FormatHeightTemplate, height, height)
}

// SanitizeFilename removes characters that are invalid in file names and trims whitespace
func SanitizeFilename(title string) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalidTitleChars, r) {
			return -1
		}
		return r
	}, title)
	return strings.TrimSpace(cleaned)
}

// OutputTemplate returns the yt-dlp output template for a title
func OutputTemplate(dir, title string) string {
	return filepath.Join(dir, title) + OutputExtTemplate
}

// resolveOutputPath prefers the path yt-dlp reported and falls back to
// looking for the file next to where it was expected.
func resolveOutputPath(reported, dir, title string) string {
	candidate := reported
	if candidate == "" {
		candidate = filepath.Join(dir, title+DefaultVideoExt)
	}
	if !filepath.IsAbs(candidate) && !strings.ContainsAny(candidate, `/\`) {
		candidate = "." + string(filepath.Separator) + candidate
	}

	found, err := platform.FindFileWithFallback(candidate)
	if err != nil {
		return candidate
	}
	return found
}
