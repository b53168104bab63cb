package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/clipfarm/internal/config"
	"github.com/ytget/clipfarm/internal/download"
	"github.com/ytget/clipfarm/internal/events"
	"github.com/ytget/clipfarm/internal/ffmpeg"
	"github.com/ytget/clipfarm/internal/model"
	"github.com/ytget/clipfarm/internal/trim"
)

// newTestRootUI builds the window without starting the background loops
func newTestRootUI(t *testing.T) *RootUI {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	bus := events.NewBus()
	transcoder := ffmpeg.New("ffmpeg", "ffprobe")
	services := &Services{
		Bus:        bus,
		Transcoder: transcoder,
		Downloader: download.NewService(bus, download.NewYTDLPFetcher(""), t.TempDir()),
		Trimmer:    trim.NewProcessor(bus, transcoder, t.TempDir()),
	}

	ui := &RootUI{
		window:       test.NewWindow(nil),
		settings:     config.NewSettings(config.NewMemoryPreferences()),
		localization: NewLocalization(),
		services:     services,
		mailbox:      events.NewMailbox(),
	}
	ui.setupUI()
	ui.detach = bus.Forward(ui.mailbox, uiTopics...)
	t.Cleanup(ui.Close)
	return ui
}

func (ui *RootUI) drain() {
	for _, ev := range ui.mailbox.Drain() {
		ui.handleEvent(ev)
	}
}

func TestRootUI_RoutesEvents(t *testing.T) {
	ui := newTestRootUI(t)
	bus := ui.services.Bus

	bus.Publish(events.TopicDownloadFailed, "boom")
	bus.Publish(events.TopicTrimTaskFailed, model.TrimReport{Index: 1, Message: "Failed: a.mp4"})
	ui.drain()

	if got := lastLine(ui.downloader.log); got != "Download failed: boom" {
		t.Errorf("Unexpected downloader line %q", got)
	}
	if got := lastLine(ui.trimmer.log); got != "Failed: a.mp4" {
		t.Errorf("Unexpected trimmer line %q", got)
	}
}

func TestRootUI_AutoLoadSwitchesTab(t *testing.T) {
	ui := newTestRootUI(t)

	ui.services.Bus.Publish(events.TopicAutoLoadVideo, "/dl/clip.mp4")
	ui.drain()

	if ui.tabs.SelectedIndex() != 1 {
		t.Errorf("Expected trimmer tab selected, got %d", ui.tabs.SelectedIndex())
	}
	if ui.trimmer.CurrentVideo() != "/dl/clip.mp4" {
		t.Errorf("Expected auto-loaded video, got %q", ui.trimmer.CurrentVideo())
	}
}

func TestRootUI_LanguageChange(t *testing.T) {
	ui := newTestRootUI(t)

	ui.onLanguageChange("ru")

	if ui.settings.GetLanguage() != "ru" {
		t.Errorf("Expected language to be saved, got %s", ui.settings.GetLanguage())
	}
	if got := ui.tabs.Items[1].Text; got != "Нарезка видео" {
		t.Errorf("Expected Russian tab title, got %q", got)
	}
}

func TestRootUI_ApplySettings(t *testing.T) {
	ui := newTestRootUI(t)
	dir := t.TempDir()

	ui.settings.SetTrimmedDirectory(dir)
	ui.settings.SetDownloadDirectory(dir)
	ui.applySettings()

	if ui.services.Transcoder == nil || ui.services.Transcoder.FFmpegPath() != ui.settings.GetFFmpegPath() {
		t.Error("Expected a transcoder built from the saved settings")
	}
	if got := ui.services.Trimmer.OutputDir(); got != dir {
		t.Errorf("Expected trimmer output %s, got %s", dir, got)
	}
	if got := ui.services.Downloader.DownloadDirectory(); got != dir {
		t.Errorf("Expected download dir %s, got %s", dir, got)
	}
}
