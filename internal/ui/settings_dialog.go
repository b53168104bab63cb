package ui

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/clipfarm/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	downloadDirEntry *widget.Entry
	trimmedDirEntry  *widget.Entry
	resolutionSelect *widget.Select
	autoLoadCheck    *widget.Check
	ffmpegEntry      *widget.Entry
	ffprobeEntry     *widget.Entry
	languageSelect   *widget.Select
}

// ShowSettingsDialog builds and shows the settings dialog; onSaved runs after a save
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	sd := NewSettingsDialog(settings, localization, window)
	sd.onSaved = onSaved
	sd.Show()
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	text := sd.localization.GetText

	sd.downloadDirEntry = widget.NewEntry()
	sd.trimmedDirEntry = widget.NewEntry()
	downloadDirRow := container.NewBorder(nil, nil, nil,
		widget.NewButton(text(KeyBrowse), func() { sd.browseInto(sd.downloadDirEntry) }), sd.downloadDirEntry)
	trimmedDirRow := container.NewBorder(nil, nil, nil,
		widget.NewButton(text(KeyBrowse), func() { sd.browseInto(sd.trimmedDirEntry) }), sd.trimmedDirEntry)

	sd.resolutionSelect = widget.NewSelect(sd.settings.GetResolutionOptions(), nil)
	sd.autoLoadCheck = widget.NewCheck(text(KeyAutoLoad), nil)

	sd.ffmpegEntry = widget.NewEntry()
	sd.ffmpegEntry.SetPlaceHolder(config.DefaultFFmpegPath)
	sd.ffprobeEntry = widget.NewEntry()
	sd.ffprobeEntry.SetPlaceHolder(config.DefaultFFprobePath)

	sd.languageSelect = widget.NewSelect(languageCodes(sd.settings.GetLanguageOptions()), nil)

	form := container.NewVBox(
		widget.NewLabel(text(KeyDownloadDirectory)),
		downloadDirRow,
		widget.NewLabel(text(KeyTrimmedDirectory)),
		trimmedDirRow,
		widget.NewLabel(text(KeyResolution)),
		sd.resolutionSelect,
		sd.autoLoadCheck,

		widget.NewSeparator(),

		widget.NewLabel(text(KeyFFmpegPath)),
		sd.ffmpegEntry,
		widget.NewLabel(text(KeyFFprobePath)),
		sd.ffprobeEntry,

		widget.NewSeparator(),

		widget.NewLabel(text(KeyLanguage)),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		text(KeySettings),
		text(KeySave),
		text(KeyCancel),
		container.NewVScroll(form),
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(DialogWidth, DialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.trimmedDirEntry.SetText(sd.settings.GetTrimmedDirectory())
	sd.resolutionSelect.SetSelected(sd.settings.GetDefaultResolution())
	sd.autoLoadCheck.SetChecked(sd.settings.GetAutoLoad())
	sd.ffmpegEntry.SetText(sd.settings.GetFFmpegPath())
	sd.ffprobeEntry.SetText(sd.settings.GetFFprobePath())
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

// browseInto fills entry with a folder picked from the OS dialog
func (sd *SettingsDialog) browseInto(entry *widget.Entry) {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		entry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.apply()

	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
	if sd.onSaved != nil {
		sd.onSaved()
	}
}

// apply writes the form values into settings, skipping empty fields
func (sd *SettingsDialog) apply() {
	if dir := sd.downloadDirEntry.Text; dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}
	if dir := sd.trimmedDirEntry.Text; dir != "" {
		sd.settings.SetTrimmedDirectory(dir)
	}
	if sd.resolutionSelect.Selected != "" {
		sd.settings.SetDefaultResolution(sd.resolutionSelect.Selected)
	}
	sd.settings.SetAutoLoad(sd.autoLoadCheck.Checked)
	if path := sd.ffmpegEntry.Text; path != "" {
		sd.settings.SetFFmpegPath(path)
	}
	if path := sd.ffprobeEntry.Text; path != "" {
		sd.settings.SetFFprobePath(path)
	}
	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}
}

func languageCodes(options map[string]string) []string {
	codes := make([]string, 0, len(options))
	for code := range options {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
