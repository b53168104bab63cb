package ui

import (
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/clipfarm/internal/config"
	"github.com/ytget/clipfarm/internal/events"
	"github.com/ytget/clipfarm/internal/model"
	"github.com/ytget/clipfarm/internal/trim"
)

type fakeRunner struct {
	runs [][]model.TrimTask
	err  error
}

func (f *fakeRunner) Start(tasks []model.TrimTask) error {
	if f.err != nil {
		return f.err
	}
	f.runs = append(f.runs, tasks)
	return nil
}

func (f *fakeRunner) Busy() bool { return false }

func newTestTrimmerPanel(t *testing.T, runner QueueRunner) *TrimmerPanel {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	settings := config.NewSettings(a.Preferences())
	window := test.NewWindow(nil)
	p := NewTrimmerPanel(window, NewLocalization(), settings, runner, nil)
	window.SetContent(p.Content())
	return p
}

func setFields(f timeFields, h, m, s string) {
	f[0].SetText(h)
	f[1].SetText(m)
	f[2].SetText(s)
}

func addTask(t *testing.T, p *TrimmerPanel, video, startSec, endSec string) {
	t.Helper()
	p.SetCurrentVideo(video)
	setFields(p.startFields, "0", "0", startSec)
	setFields(p.endFields, "0", "0", endSec)
	p.onAddTask()
}

func queueVideos(q *model.Queue) []string {
	var out []string
	for _, task := range q.Tasks() {
		out = append(out, filepath.Base(task.Video))
	}
	return out
}

func TestTrimmerPanel_AddTask(t *testing.T) {
	p := newTestTrimmerPanel(t, &fakeRunner{})

	addTask(t, p, "/videos/clip.mp4", "5", "15")

	if p.Queue().Len() != 1 {
		t.Fatalf("Expected 1 queued task, got %d", p.Queue().Len())
	}
	task, _ := p.Queue().At(0)
	if task.Video != "/videos/clip.mp4" || task.Start != "00:00:05" || task.End != "00:00:15" {
		t.Errorf("Unexpected task %+v", task)
	}
	if task.ID == "" {
		t.Error("Expected task to have an ID")
	}

	if p.CurrentVideo() != "" {
		t.Errorf("Expected selection to be cleared, got %q", p.CurrentVideo())
	}
	if p.currentLabel.Text != "No video selected" {
		t.Errorf("Unexpected label %q", p.currentLabel.Text)
	}
	for _, e := range p.startFields {
		if e.Text != DefaultTimeField {
			t.Errorf("Expected start field reset to %s, got %q", DefaultTimeField, e.Text)
		}
	}
}

func TestTrimmerPanel_AddTaskRequiresVideo(t *testing.T) {
	p := newTestTrimmerPanel(t, &fakeRunner{})

	p.onAddTask()

	if p.Queue().Len() != 0 {
		t.Errorf("Expected no task without a video, got %d", p.Queue().Len())
	}
}

func TestTrimmerPanel_AddTaskRejectsBadField(t *testing.T) {
	p := newTestTrimmerPanel(t, &fakeRunner{})

	p.SetCurrentVideo("/videos/clip.mp4")
	setFields(p.startFields, "0", "x", "0")
	p.onAddTask()

	if p.Queue().Len() != 0 {
		t.Errorf("Expected no task for a malformed field, got %d", p.Queue().Len())
	}
	if len(p.log.Lines()) != 1 {
		t.Errorf("Expected one log line, got %q", p.log.Lines())
	}
	if p.CurrentVideo() == "" {
		t.Error("Expected selection to be kept after a rejected task")
	}
}

func TestTrimmerPanel_Reorder(t *testing.T) {
	p := newTestTrimmerPanel(t, &fakeRunner{})
	addTask(t, p, "/v/a.mp4", "0", "1")
	addTask(t, p, "/v/b.mp4", "0", "1")
	addTask(t, p, "/v/c.mp4", "0", "1")

	p.taskList.Select(2)
	p.onMoveUp()
	if got := queueVideos(p.Queue()); got[1] != "c.mp4" || got[2] != "b.mp4" {
		t.Errorf("Unexpected order after move up: %v", got)
	}
	if p.selected != 1 {
		t.Errorf("Expected selection to follow the task to 1, got %d", p.selected)
	}

	p.onMoveUp()
	p.onMoveUp() // already first
	if got := queueVideos(p.Queue()); got[0] != "c.mp4" {
		t.Errorf("Expected c.mp4 first, got %v", got)
	}

	p.onMoveDown()
	if got := queueVideos(p.Queue()); got[0] != "a.mp4" || got[1] != "c.mp4" {
		t.Errorf("Unexpected order after move down: %v", got)
	}

	p.onRemoveTask()
	if got := queueVideos(p.Queue()); len(got) != 2 || got[0] != "a.mp4" || got[1] != "b.mp4" {
		t.Errorf("Unexpected queue after remove: %v", got)
	}
	if p.selected != -1 {
		t.Errorf("Expected no selection after remove, got %d", p.selected)
	}

	p.onRemoveTask() // nothing selected
	if p.Queue().Len() != 2 {
		t.Errorf("Expected remove without selection to be ignored")
	}
}

func TestTrimmerPanel_StartQueue(t *testing.T) {
	runner := &fakeRunner{}
	p := newTestTrimmerPanel(t, runner)

	p.onStartQueue()
	if len(runner.runs) != 0 {
		t.Fatal("Expected empty queue not to start")
	}

	addTask(t, p, "/v/a.mp4", "0", "10")
	addTask(t, p, "/v/b.mp4", "5", "10")
	p.onStartQueue()

	if len(runner.runs) != 1 || len(runner.runs[0]) != 2 {
		t.Fatalf("Expected one run of 2 tasks, got %v", runner.runs)
	}
	if !p.startBtn.Disabled() {
		t.Error("Expected Start Queue to be disabled while running")
	}

	report := model.TrimReport{Index: 1, Message: "Saved: videos/trimmed/a_trim_1.mp4"}
	p.HandleEvent(events.Event{Topic: events.TopicTrimTaskComplete, Payload: report})
	p.HandleEvent(events.Event{Topic: events.TopicTrimQueueComplete, Payload: model.TrimSummary{Total: 2, Succeeded: 2}})

	lines := p.log.Lines()
	if len(lines) != 2 || lines[0] != report.Message || lines[1] != "Queue processing complete." {
		t.Errorf("Unexpected log lines %q", lines)
	}
	if p.startBtn.Disabled() {
		t.Error("Expected Start Queue to be re-enabled")
	}
	if p.Queue().Len() != 2 {
		t.Error("Expected the queue to be kept after a run")
	}
}

func TestTrimmerPanel_StartQueueBusy(t *testing.T) {
	p := newTestTrimmerPanel(t, &fakeRunner{err: trim.ErrBusy})
	addTask(t, p, "/v/a.mp4", "0", "10")

	p.onStartQueue()

	if got := lastLine(p.log); got != "The queue is already being processed" {
		t.Errorf("Expected busy message, got %q", got)
	}
	if p.startBtn.Disabled() {
		t.Error("Expected Start Queue to stay enabled")
	}
}

func TestTrimmerPanel_QueueFileRoundTrip(t *testing.T) {
	p := newTestTrimmerPanel(t, &fakeRunner{})
	addTask(t, p, "/v/a.mp4", "1", "2")
	addTask(t, p, "/v/b.mp4", "3", "4")

	path := filepath.Join(t.TempDir(), "session.yaml")
	p.saveQueueFile(path)

	other := newTestTrimmerPanel(t, &fakeRunner{})
	other.loadQueueFile(path)

	got := other.Queue().Tasks()
	if len(got) != 2 {
		t.Fatalf("Expected 2 loaded tasks, got %d", len(got))
	}
	if got[1].Video != "/v/b.mp4" || got[1].Start != "00:00:03" || got[1].End != "00:00:04" {
		t.Errorf("Unexpected loaded task %+v", got[1])
	}
}

func TestTrimmerPanel_RecentDownloads(t *testing.T) {
	p := newTestTrimmerPanel(t, &fakeRunner{})

	p.RefreshRecent([]string{"/dl/a.mp4", "/dl/b.webm"})
	if len(p.recentSelect.Options) != 2 || p.recentSelect.Options[1] != "b.webm" {
		t.Fatalf("Unexpected options %v", p.recentSelect.Options)
	}

	p.recentSelect.SetSelectedIndex(1)
	if p.CurrentVideo() != "/dl/b.webm" {
		t.Errorf("Expected /dl/b.webm selected, got %q", p.CurrentVideo())
	}
}

func TestTrimmerPanel_AutoLoadWithoutPreview(t *testing.T) {
	p := newTestTrimmerPanel(t, &fakeRunner{})

	p.HandleEvent(events.Event{Topic: events.TopicAutoLoadVideo, Payload: "/dl/new.mp4"})

	if p.CurrentVideo() != "/dl/new.mp4" {
		t.Errorf("Expected auto-loaded video to be selected, got %q", p.CurrentVideo())
	}
	if p.currentLabel.Text != "new.mp4" {
		t.Errorf("Unexpected label %q", p.currentLabel.Text)
	}
}
