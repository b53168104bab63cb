package ui

import (
	"context"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"github.com/ytget/clipfarm/internal/config"
	"github.com/ytget/clipfarm/internal/download"
	"github.com/ytget/clipfarm/internal/events"
	"github.com/ytget/clipfarm/internal/ffmpeg"
	"github.com/ytget/clipfarm/internal/media"
	"github.com/ytget/clipfarm/internal/platform"
	"github.com/ytget/clipfarm/internal/trim"
)

// uiTopics are the bus topics the window renders
var uiTopics = []events.Topic{
	events.TopicDownloadStarted,
	events.TopicDownloadProgress,
	events.TopicDownloadComplete,
	events.TopicDownloadFailed,
	events.TopicAutoLoadVideo,
	events.TopicTrimTaskStarted,
	events.TopicTrimTaskComplete,
	events.TopicTrimTaskFailed,
	events.TopicTrimQueueComplete,
}

// Services are the workers the window drives. They publish on Bus.
type Services struct {
	Bus        *events.Bus
	Transcoder *ffmpeg.Adapter
	Downloader *download.Service
	Trimmer    *trim.Processor
	Playlists  *platform.PlaylistResolver
	Library    *platform.LibraryWatcher
}

// NewServices wires the workers from settings around a fresh bus
func NewServices(settings *config.Settings) *Services {
	bus := events.NewBus()

	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		log.Printf("failed to ensure downloads dir: %v", err)
	}

	playlists := platform.NewPlaylistResolver()
	playlists.SetTimeout(PlaylistResolveTimeout)

	library, err := platform.NewLibraryWatcher(downloadsDir)
	if err != nil {
		// the trimmer still works through the file dialog
		log.Printf("Library watcher disabled: %v", err)
		library = nil
	}

	transcoder := ffmpeg.New(settings.GetFFmpegPath(), settings.GetFFprobePath())

	return &Services{
		Bus:        bus,
		Transcoder: transcoder,
		Downloader: download.NewService(bus, download.NewYTDLPFetcher(settings.GetYTDLPPath()), downloadsDir),
		Trimmer:    trim.NewProcessor(bus, transcoder, settings.GetTrimmedDirectory()),
		Playlists:  playlists,
		Library:    library,
	}
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	services     *Services

	mailbox *events.Mailbox
	detach  func()
	cancel  context.CancelFunc

	tabs       *container.AppTabs
	downloader *DownloaderPanel
	trimmer    *TrimmerPanel
	preview    *PreviewPanel
}

// Run opens the application window and blocks until it is closed
func Run(version string) {
	log.Printf("%s v%s starting...", AppName, version)

	a := app.NewWithID(AppID)
	a.Settings().SetTheme(NewCompactTheme())

	window := a.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettings(a.Preferences())
	ui := NewRootUI(window, settings, NewServices(settings))
	window.SetOnClosed(ui.Close)

	window.ShowAndRun()
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, settings *config.Settings, services *Services) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		services:     services,
		mailbox:      events.NewMailbox(),
	}

	ui.setupUI()
	ui.start()
	return ui
}

func (ui *RootUI) setupUI() {
	ui.preview = NewPreviewPanel(ui.localization, media.NewProbeCache(nil), ui.services.Transcoder)
	ui.downloader = NewDownloaderPanel(ui.window, ui.localization, ui.settings, ui.services.Downloader, ui.services.Playlists)
	ui.trimmer = NewTrimmerPanel(ui.window, ui.localization, ui.settings, ui.services.Trimmer, ui.preview)
	ui.preview.SetOnError(ui.trimmer.log.Append)

	ui.tabs = container.NewAppTabs(
		container.NewTabItem("", ui.downloader.Content()),
		container.NewTabItem("", ui.trimmer.Content()),
	)

	ui.refreshUITexts()
	ui.window.SetContent(ui.tabs)
	ui.createMenu()
}

// start connects the bus to the window and launches the background loops
func (ui *RootUI) start() {
	ctx, cancel := context.WithCancel(context.Background())
	ui.cancel = cancel

	ui.detach = ui.services.Bus.Forward(ui.mailbox, uiTopics...)
	go ui.mailbox.Pump(ctx, fyne.Do, ui.handleEvent)
	go ui.preview.Run(ctx)

	if lib := ui.services.Library; lib != nil {
		ui.refreshLibrary()
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case <-lib.Events():
					fyne.Do(ui.refreshLibrary)
				}
			}
		}()
	}
}

// Close stops the background loops
func (ui *RootUI) Close() {
	if ui.cancel != nil {
		ui.cancel()
	}
	if ui.detach != nil {
		ui.detach()
	}
	if lib := ui.services.Library; lib != nil {
		if err := lib.Close(); err != nil {
			log.Printf("failed to stop library watcher: %v", err)
		}
	}
}

// handleEvent routes a bus event to the panels. It runs on the UI goroutine.
func (ui *RootUI) handleEvent(ev events.Event) {
	switch ev.Topic {
	case events.TopicDownloadStarted, events.TopicDownloadProgress,
		events.TopicDownloadComplete, events.TopicDownloadFailed:
		ui.downloader.HandleEvent(ev)
	case events.TopicAutoLoadVideo:
		ui.trimmer.HandleEvent(ev)
		ui.tabs.SelectIndex(1)
	default:
		ui.trimmer.HandleEvent(ev)
	}
}

func (ui *RootUI) refreshLibrary() {
	videos, err := ui.services.Library.Videos()
	if err != nil {
		log.Printf("failed to list downloads: %v", err)
		return
	}
	ui.trimmer.RefreshRecent(videos)
}

// createMenu builds the main menu with settings and language switching
func (ui *RootUI) createMenu() {
	text := ui.localization.GetText

	settingsItem := fyne.NewMenuItem(IconSettings+" "+text(KeySettings), ui.onShowSettings)

	languageItem := fyne.NewMenuItem(IconLanguage+" "+text(KeyLanguage), nil)
	var languageItems []*fyne.MenuItem
	available := ui.localization.GetAvailableLanguages()
	for _, code := range languageCodes(available) {
		item := fyne.NewMenuItem(available[code], func() { ui.onLanguageChange(code) })
		item.Checked = code == ui.localization.GetCurrentLanguage()
		languageItems = append(languageItems, item)
	}
	languageItem.ChildMenu = fyne.NewMenu("", languageItems...)

	fileMenu := fyne.NewMenu(text(KeyFile), settingsItem, languageItem)
	ui.window.SetMainMenu(fyne.NewMainMenu(fileMenu))
}

// onLanguageChange switches the UI language and remembers it
func (ui *RootUI) onLanguageChange(lang string) {
	ui.settings.SetLanguage(lang)
	ui.localization.SetLanguage(lang)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts re-applies localized strings to every panel
func (ui *RootUI) refreshUITexts() {
	text := ui.localization.GetText
	ui.tabs.Items[0].Text = text(KeyDownloaderTab)
	ui.tabs.Items[1].Text = text(KeyTrimmerTab)
	ui.tabs.Refresh()

	ui.downloader.RefreshTexts()
	ui.trimmer.RefreshTexts()
	ui.preview.RefreshTexts()
}

// onShowSettings shows the settings dialog and applies the saved values
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, ui.applySettings)
}

// applySettings pushes saved settings into the running services
func (ui *RootUI) applySettings() {
	ui.services.Downloader.SetDownloadDirectory(ui.settings.GetDownloadDirectory())
	ui.services.Trimmer.SetOutputDir(ui.settings.GetTrimmedDirectory())
	transcoder := ffmpeg.New(ui.settings.GetFFmpegPath(), ui.settings.GetFFprobePath())
	ui.services.Transcoder = transcoder
	ui.services.Trimmer.SetTranscoder(transcoder)
	ui.preview.SetFrameDecoder(transcoder)
	ui.onLanguageChange(ui.settings.GetLanguage())
}
