package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task ID prefixes
const (
	TrimTaskIDPrefix     = "trim-"
	DownloadTaskIDPrefix = "download-"
)

// DownloadRequest describes a single user request to fetch a remote video
type DownloadRequest struct {
	URL        string
	Resolution string // "1080p", "720p", ... or "best"
	AutoLoad   bool   // hand the downloaded file to the trimmer when done
}

// DownloadTask represents a single download run
type DownloadTask struct {
	ID         string
	Request    DownloadRequest
	Status     TaskStatus
	Progress   float64 // 0.0 to 1.0
	Percent    int     // 0 to 100
	ETASec     int     // ETA in seconds, -1 if unknown
	LastError  string
	Title      string // sanitized video title
	Format     string // yt-dlp format selector
	OutputPath string // resolved local file path once completed
	StartedAt  time.Time
	FinishedAt time.Time
}

// DownloadProgress is the payload of download progress events
type DownloadProgress struct {
	TaskID  string
	Title   string
	Percent int
	ETASec  int
}

// TrimTask is a request to extract [Start, End] of Video into a new file.
// It is consumed but never mutated by the queue processor.
type TrimTask struct {
	ID    string `yaml:"-"`
	Video string `yaml:"video"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// TrimReport is the payload of per-task trim events
type TrimReport struct {
	Index      int // 1-based position in the processed queue
	Task       TrimTask
	OutputPath string
	Message    string
	Err        error
}

// TrimSummary is the payload of the queue-complete event
type TrimSummary struct {
	Total     int
	Succeeded int
	Failed    int
}

// NewTrimTask creates a trim task with a fresh ID
func NewTrimTask(video, start, end string) TrimTask {
	return TrimTask{
		ID:    generateID(TrimTaskIDPrefix),
		Video: video,
		Start: start,
		End:   end,
	}
}

// NewDownloadTask creates a pending download task for the request
func NewDownloadTask(req DownloadRequest) *DownloadTask {
	return &DownloadTask{
		ID:        generateID(DownloadTaskIDPrefix),
		Request:   req,
		Status:    TaskStatusPending,
		ETASec:    -1,
		StartedAt: time.Now(),
	}
}

// Label renders the task the way queue rows show it: "clip.mp4 | 00:00:10 - 00:00:20"
func (t TrimTask) Label() string {
	return fmt.Sprintf("%s | %s - %s", filepath.Base(t.Video), t.Start, t.End)
}

// GetETAString returns ETA formatted as mm:ss or hh:mm:ss, or "—" if unknown
func (dt *DownloadTask) GetETAString() string {
	if dt.ETASec <= 0 {
		return "—"
	}

	hours := dt.ETASec / 3600
	minutes := (dt.ETASec % 3600) / 60
	seconds := dt.ETASec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// GetDisplayTitle returns title, filename, or URL in order of preference
func (dt *DownloadTask) GetDisplayTitle() string {
	if dt.Title != "" && !strings.HasPrefix(dt.Title, "http") {
		return dt.Title
	}

	if dt.OutputPath != "" {
		parts := strings.FieldsFunc(dt.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			filename := parts[len(parts)-1]
			if idx := strings.LastIndex(filename, "."); idx > 0 {
				filename = filename[:idx]
			}
			return filename
		}
	}

	return dt.Request.URL
}

// generateID generates a unique, time-ordered ID using UUID v7
func generateID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf("%s%d", prefix, time.Now().UnixNano())
	}
	return prefix + id.String()
}
