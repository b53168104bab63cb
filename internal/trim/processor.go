package trim

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/ytget/clipfarm/internal/events"
	"github.com/ytget/clipfarm/internal/ffmpeg"
	"github.com/ytget/clipfarm/internal/model"
	"github.com/ytget/clipfarm/internal/platform"
	"github.com/ytget/clipfarm/internal/timecode"
)

// Output naming
const (
	TrimSuffix = "_trim_"
)

var (
	// ErrEmptyQueue is returned when Start is called without tasks
	ErrEmptyQueue = errors.New("no trim tasks queued")
	// ErrBusy is returned when a queue run is already in progress
	ErrBusy = errors.New("trim queue is already being processed")
)

// Transcoder performs a single stream-copy cut
type Transcoder interface {
	Trim(ctx context.Context, req ffmpeg.TrimRequest) error
}

// Processor trims queued tasks sequentially
type Processor struct {
	bus  events.Publisher
	busy atomic.Bool

	mu        sync.RWMutex
	tc        Transcoder
	outputDir string
}

// NewProcessor creates a processor writing into outputDir
func NewProcessor(bus events.Publisher, tc Transcoder, outputDir string) *Processor {
	return &Processor{
		bus:       bus,
		tc:        tc,
		outputDir: outputDir,
	}
}

// OutputDir returns the directory trimmed clips are written to
func (p *Processor) OutputDir() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.outputDir
}

// SetOutputDir changes the output directory for later runs
func (p *Processor) SetOutputDir(dir string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.outputDir = dir
}

// SetTranscoder replaces the transcoder for later runs
func (p *Processor) SetTranscoder(tc Transcoder) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tc = tc
}

// Busy reports whether a queue run is in progress
func (p *Processor) Busy() bool {
	return p.busy.Load()
}

// Start processes tasks on a background goroutine and returns immediately.
// The caller keeps ownership of its queue: tasks is copied before the run.
func (p *Processor) Start(tasks []model.TrimTask) error {
	if len(tasks) == 0 {
		return ErrEmptyQueue
	}
	if !p.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}

	snapshot := make([]model.TrimTask, len(tasks))
	copy(snapshot, tasks)

	go func() {
		defer p.busy.Store(false)
		p.run(context.Background(), snapshot)
	}()
	return nil
}

// Run processes tasks on the calling goroutine and returns the outcome
func (p *Processor) Run(ctx context.Context, tasks []model.TrimTask) (model.TrimSummary, error) {
	if !p.busy.CompareAndSwap(false, true) {
		return model.TrimSummary{}, ErrBusy
	}
	defer p.busy.Store(false)

	return p.run(ctx, tasks), nil
}

func (p *Processor) run(ctx context.Context, tasks []model.TrimTask) model.TrimSummary {
	p.mu.RLock()
	tc, outputDir := p.tc, p.outputDir
	p.mu.RUnlock()

	summary := model.TrimSummary{Total: len(tasks)}
	defer func() {
		p.bus.Publish(events.TopicTrimQueueComplete, summary)
	}()

	if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
		err = fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		log.Printf("Trim queue aborted: %v", err)
		for i, task := range tasks {
			p.fail(&summary, model.TrimReport{
				Index:   i + 1,
				Task:    task,
				Message: fmt.Sprintf("Error processing task %d: %v", i+1, err),
				Err:     err,
			})
		}
		return summary
	}

	for i, task := range tasks {
		p.process(ctx, tc, outputDir, &summary, i+1, task)
	}
	return summary
}

func (p *Processor) process(ctx context.Context, tc Transcoder, outputDir string, summary *model.TrimSummary, index int, task model.TrimTask) {
	startSec, startErr := timecode.Parse(task.Start)
	endSec, endErr := timecode.Parse(task.End)
	if startErr != nil || endErr != nil || endSec <= startSec {
		err := errors.Join(startErr, endErr)
		if err == nil {
			err = fmt.Errorf("end %q is not after start %q", task.End, task.Start)
		}
		p.fail(summary, model.TrimReport{
			Index:   index,
			Task:    task,
			Message: fmt.Sprintf("Task %d: Invalid time range (start: %s, end: %s). Skipping.", index, task.Start, task.End),
			Err:     err,
		})
		return
	}

	output := OutputPath(outputDir, task.Video, index)
	report := model.TrimReport{
		Index:      index,
		Task:       task,
		OutputPath: output,
		Message: fmt.Sprintf("Processing task %d: %s %s to %s -> %s",
			index, filepath.Base(task.Video), task.Start, task.End, output),
	}
	p.bus.Publish(events.TopicTrimTaskStarted, report)

	err := tc.Trim(ctx, ffmpeg.TrimRequest{
		Input:    task.Video,
		Start:    task.Start,
		Duration: endSec - startSec,
		Output:   output,
	})
	if err != nil {
		log.Printf("Trim task %d failed for %s: %v", index, task.Video, err)
		report.Err = err
		report.Message = fmt.Sprintf("Error processing task %d: %v", index, err)
		p.fail(summary, report)
		return
	}

	summary.Succeeded++
	report.Message = fmt.Sprintf("Saved: %s", output)
	p.bus.Publish(events.TopicTrimTaskComplete, report)
}

func (p *Processor) fail(summary *model.TrimSummary, report model.TrimReport) {
	summary.Failed++
	p.bus.Publish(events.TopicTrimTaskFailed, report)
}

// OutputPath returns <dir>/<base>_trim_<index><ext> for the source video
func OutputPath(dir, video string, index int) string {
	name := filepath.Base(video)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return filepath.Join(dir, fmt.Sprintf("%s%s%d%s", base, TrimSuffix, index, ext))
}
