package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/clipfarm/internal/config"
	"github.com/ytget/clipfarm/internal/download"
	"github.com/ytget/clipfarm/internal/events"
	"github.com/ytget/clipfarm/internal/model"
	"github.com/ytget/clipfarm/internal/platform"
)

// DownloaderPanel is the "YouTube Downloader" tab
type DownloaderPanel struct {
	window       fyne.Window
	localization *Localization
	settings     *config.Settings
	downloadSvc  download.Downloader
	playlists    *platform.PlaylistResolver
	lastPath     string
	status       model.TaskStatus

	urlLabel         *widget.Label
	urlEntry         *widget.Entry
	resolutionLabel  *widget.Label
	resolutionSelect *widget.Select
	autoLoadCheck    *widget.Check
	downloadBtn      *widget.Button
	openDirBtn       *widget.Button
	progressBar      *widget.ProgressBar
	progressLabel    *widget.Label
	log              *logView

	content fyne.CanvasObject
}

// NewDownloaderPanel builds the downloader tab
func NewDownloaderPanel(window fyne.Window, localization *Localization, settings *config.Settings,
	downloadSvc download.Downloader, playlists *platform.PlaylistResolver) *DownloaderPanel {
	p := &DownloaderPanel{
		window:       window,
		localization: localization,
		settings:     settings,
		downloadSvc:  downloadSvc,
		playlists:    playlists,
	}
	p.createUI()
	return p
}

// Content returns the tab content
func (p *DownloaderPanel) Content() fyne.CanvasObject {
	return p.content
}

func (p *DownloaderPanel) createUI() {
	p.urlLabel = widget.NewLabel("")
	p.urlEntry = widget.NewEntry()
	p.urlEntry.OnSubmitted = func(string) { p.onDownloadClick() }

	p.resolutionLabel = widget.NewLabel("")
	p.resolutionSelect = widget.NewSelect(p.settings.GetResolutionOptions(), nil)
	p.resolutionSelect.SetSelected(p.settings.GetDefaultResolution())

	p.autoLoadCheck = widget.NewCheck("", nil)
	p.autoLoadCheck.SetChecked(p.settings.GetAutoLoad())

	p.downloadBtn = widget.NewButtonWithIcon("", theme.DownloadIcon(), p.onDownloadClick)
	p.downloadBtn.Importance = widget.HighImportance
	p.openDirBtn = widget.NewButtonWithIcon("", theme.FolderOpenIcon(), p.onOpenDownloads)

	p.progressBar = widget.NewProgressBar()
	p.progressBar.Hide()
	p.progressLabel = widget.NewLabel("")
	p.progressLabel.Hide()

	p.log = newLogView()

	form := container.New(layout.NewFormLayout(),
		p.urlLabel, p.urlEntry,
		p.resolutionLabel, p.resolutionSelect,
		widget.NewLabel(""), p.autoLoadCheck,
	)

	top := container.NewVBox(
		form,
		container.NewHBox(p.downloadBtn, p.openDirBtn),
		p.progressLabel,
		p.progressBar,
		widget.NewSeparator(),
	)

	p.content = container.NewBorder(top, nil, nil, nil, p.log.Object())
	p.RefreshTexts()
}

// RefreshTexts re-applies localized strings
func (p *DownloaderPanel) RefreshTexts() {
	text := p.localization.GetText
	p.urlLabel.SetText(text(KeyURL))
	p.urlEntry.SetPlaceHolder(text(KeyEnterURL))
	p.resolutionLabel.SetText(text(KeyResolution))
	p.autoLoadCheck.Text = text(KeyAutoLoad)
	p.autoLoadCheck.Refresh()
	p.downloadBtn.SetText(text(KeyDownload))
	p.openDirBtn.SetText(text(KeyOpenDownloads))
}

// validateURL performs basic URL validation for http/https schemes
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

// DefaultURLScheme is added to URLs typed without one, e.g. "youtube.com/watch?v=..."
const DefaultURLScheme = "https://"

// normalizeURL adds DefaultURLScheme when raw carries no scheme
func normalizeURL(raw string) string {
	if raw == "" || strings.Contains(raw, "://") {
		return raw
	}
	return DefaultURLScheme + raw
}

// cleanURL strips control characters a paste can carry along
func cleanURL(raw string) string {
	cleaned := strings.ReplaceAll(raw, "\n", "")
	cleaned = strings.ReplaceAll(cleaned, "\r", "")
	cleaned = strings.ReplaceAll(cleaned, "\t", " ")
	return strings.TrimSpace(cleaned)
}

// onDownloadClick handles the Download button
func (p *DownloaderPanel) onDownloadClick() {
	text := p.localization.GetText

	rawURL := cleanURL(p.urlEntry.Text)
	if rawURL == "" {
		dialog.ShowInformation(text(KeyMissingURL), text(KeyPleaseEnterURL), p.window)
		return
	}
	rawURL = normalizeURL(rawURL)
	if err := validateURL(rawURL); err != nil {
		p.log.Append(text(KeyInvalidURL) + ": " + err.Error())
		return
	}

	if platform.IsPlaylistURL(rawURL) && p.playlists != nil {
		log.Printf("Detected playlist URL, resolving entries: %s", rawURL)
		p.pickFromPlaylist(rawURL)
		return
	}

	p.startDownload(rawURL)
}

// startDownload hands the URL to the download service
func (p *DownloaderPanel) startDownload(videoURL string) {
	text := p.localization.GetText

	req := model.DownloadRequest{
		URL:        videoURL,
		Resolution: p.resolutionSelect.Selected,
		AutoLoad:   p.autoLoadCheck.Checked,
	}

	task, err := p.downloadSvc.Start(req)
	if err != nil {
		switch {
		case errors.Is(err, download.ErrBusy):
			p.log.Append(text(KeyDownloadBusy))
		case errors.Is(err, download.ErrMissingURL):
			dialog.ShowInformation(text(KeyMissingURL), text(KeyPleaseEnterURL), p.window)
		default:
			p.log.Append(text(KeyDownloadFailed) + ": " + err.Error())
		}
		return
	}

	log.Printf("Download task started: ID=%s, URL=%s, Resolution=%s", task.ID, req.URL, req.Resolution)
	p.setStatus(model.TaskStatusStarting)
	p.log.Append(text(KeyStartingDownload))
}

// pickFromPlaylist resolves the playlist off the UI goroutine and offers its entries
func (p *DownloaderPanel) pickFromPlaylist(playlistURL string) {
	text := p.localization.GetText
	p.downloadBtn.Disable()
	p.log.Append(text(KeyLoadingPlaylist))

	go func() {
		playlist, err := p.playlists.Resolve(context.Background(), playlistURL)
		fyne.Do(func() {
			p.downloadBtn.Enable()
			if err != nil {
				log.Printf("Failed to resolve playlist %s: %v", playlistURL, err)
				p.log.Append(text(KeyDownloadFailed) + ": " + err.Error())
				return
			}
			p.showPlaylistPicker(playlist)
		})
	}()
}

func (p *DownloaderPanel) showPlaylistPicker(playlist *model.Playlist) {
	text := p.localization.GetText

	picker := widget.NewSelect(playlist.Titles(), nil)
	if len(playlist.Videos) > 0 {
		picker.SetSelectedIndex(0)
	}

	dialog.ShowCustomConfirm(playlist.Title, text(KeyDownload), text(KeyCancel),
		container.NewVBox(widget.NewLabel(text(KeyPickFromPlaylist)), picker),
		func(confirmed bool) {
			if !confirmed {
				return
			}
			idx := picker.SelectedIndex()
			if idx < 0 || idx >= len(playlist.Videos) {
				return
			}
			video := playlist.Videos[idx]
			p.urlEntry.SetText(video.URL)
			p.startDownload(video.URL)
		}, p.window)
}

// onOpenDownloads reveals the last download, or opens the downloads folder
func (p *DownloaderPanel) onOpenDownloads() {
	if p.lastPath != "" {
		if err := platform.OpenFileInManager(p.lastPath); err == nil {
			return
		}
	}
	dir := p.settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		p.log.Append(p.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
		return
	}
	if err := platform.OpenFileWithDefaultApp(dir); err != nil {
		p.log.Append(p.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
	}
}

// HandleEvent renders download events. It runs on the UI goroutine.
func (p *DownloaderPanel) HandleEvent(ev events.Event) {
	text := p.localization.GetText

	switch ev.Topic {
	case events.TopicDownloadStarted:
		p.progressBar.SetValue(0)
		p.progressLabel.SetText("")
		status := model.TaskStatusStarting
		if task, ok := ev.Payload.(model.DownloadTask); ok && task.Status.IsActive() {
			status = task.Status
		}
		p.setStatus(status)
	case events.TopicDownloadProgress:
		progress, ok := ev.Payload.(model.DownloadProgress)
		if !ok {
			return
		}
		p.setStatus(model.TaskStatusRunning)
		p.progressBar.SetValue(float64(progress.Percent) / 100)
		eta := model.DownloadTask{ETASec: progress.ETASec}
		p.progressLabel.SetText(fmt.Sprintf(ProgressLabelFormat, text(KeyDownloadingFormat), progress.Percent, eta.GetETAString()))
	case events.TopicDownloadComplete:
		p.log.Append(text(KeyDownloadComplete))
		p.log.Append(fmt.Sprintf("%s: %v", text(KeySavedAs), ev.Payload))
		if path, ok := ev.Payload.(string); ok {
			p.lastPath = path
		}
		p.setStatus(model.TaskStatusCompleted)
	case events.TopicDownloadFailed:
		p.log.Append(fmt.Sprintf("%s: %v", text(KeyDownloadFailed), ev.Payload))
		p.setStatus(model.TaskStatusError)
	}
}

// setStatus drives the Download button and the progress row from the task status
func (p *DownloaderPanel) setStatus(status model.TaskStatus) {
	p.status = status
	if status.IsActive() {
		p.downloadBtn.Disable()
		p.progressBar.Show()
		p.progressLabel.Show()
		return
	}
	p.progressBar.Hide()
	p.progressLabel.Hide()
	if status.IsFinished() {
		p.downloadBtn.Enable()
	}
}
