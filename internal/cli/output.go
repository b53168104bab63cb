package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/ytget/clipfarm/internal/events"
	"github.com/ytget/clipfarm/internal/model"
)

var (
	accentColor  = lipgloss.Color("#38BDF8")
	successColor = lipgloss.Color("#22C55E")
	errorColor   = lipgloss.Color("#EF4444")
	dimTextColor = lipgloss.Color("#94A3B8")

	infoStyle    = lipgloss.NewStyle().Foreground(accentColor)
	successStyle = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(dimTextColor)
)

// printer renders bus events as styled lines
type printer struct {
	mu           sync.Mutex
	out          io.Writer
	lastProgress int
}

func newPrinter(out io.Writer) *printer {
	return &printer{out: out, lastProgress: -1}
}

// attach subscribes the printer to every topic the commands produce
func (p *printer) attach(bus *events.Bus) func() {
	topics := []events.Topic{
		events.TopicDownloadStarted,
		events.TopicDownloadProgress,
		events.TopicDownloadComplete,
		events.TopicDownloadFailed,
		events.TopicTrimTaskStarted,
		events.TopicTrimTaskComplete,
		events.TopicTrimTaskFailed,
		events.TopicTrimQueueComplete,
	}
	cancels := make([]func(), 0, len(topics))
	for _, topic := range topics {
		cancels = append(cancels, bus.Subscribe(topic, p.handle))
	}
	return func() {
		for _, c := range cancels {
			c()
		}
	}
}

func (p *printer) handle(ev events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch ev.Topic {
	case events.TopicDownloadStarted:
		task, _ := ev.Payload.(model.DownloadTask)
		p.line(infoStyle, "Starting download... %s", task.Request.URL)
	case events.TopicDownloadProgress:
		progress, _ := ev.Payload.(model.DownloadProgress)
		// one line per 10%
		step := progress.Percent / 10 * 10
		if step == p.lastProgress {
			return
		}
		p.lastProgress = step
		p.line(dimStyle, "%3d%%  %s", progress.Percent, progress.Title)
	case events.TopicDownloadComplete:
		p.line(successStyle, "Download complete. Saved as: %v", ev.Payload)
	case events.TopicDownloadFailed:
		p.line(errorStyle, "Download failed: %v", ev.Payload)
	case events.TopicTrimTaskStarted, events.TopicTrimTaskComplete:
		report, _ := ev.Payload.(model.TrimReport)
		style := infoStyle
		if ev.Topic == events.TopicTrimTaskComplete {
			style = successStyle
		}
		p.line(style, "%s", report.Message)
	case events.TopicTrimTaskFailed:
		report, _ := ev.Payload.(model.TrimReport)
		p.line(errorStyle, "%s", report.Message)
	case events.TopicTrimQueueComplete:
		summary, _ := ev.Payload.(model.TrimSummary)
		p.line(infoStyle, "All trimming tasks completed. %d succeeded, %d failed.", summary.Succeeded, summary.Failed)
	}
}

func (p *printer) line(style lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(p.out, style.Render(fmt.Sprintf(format, args...)))
}

func shortName(path string) string {
	return filepath.Base(path)
}
