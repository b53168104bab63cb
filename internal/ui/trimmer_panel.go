package ui

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/clipfarm/internal/config"
	"github.com/ytget/clipfarm/internal/events"
	"github.com/ytget/clipfarm/internal/model"
	"github.com/ytget/clipfarm/internal/platform"
	"github.com/ytget/clipfarm/internal/queuefile"
	"github.com/ytget/clipfarm/internal/timecode"
	"github.com/ytget/clipfarm/internal/trim"
)

// QueueRunner starts a background run over a snapshot of the trim queue
type QueueRunner interface {
	Start(tasks []model.TrimTask) error
	Busy() bool
}

// timeFields are the hour, minute and second entries of one time code
type timeFields [3]*widget.Entry

func newTimeFields() timeFields {
	var f timeFields
	for i := range f {
		f[i] = widget.NewEntry()
		f[i].SetPlaceHolder(DefaultTimeField)
		f[i].SetText(DefaultTimeField)
	}
	return f
}

// Code composes the zero-padded time code from the three entries
func (f timeFields) Code() (string, error) {
	return timecode.Compose(f[0].Text, f[1].Text, f[2].Text)
}

// Reset puts every entry back to "00"
func (f timeFields) Reset() {
	for _, e := range f {
		e.SetText(DefaultTimeField)
	}
}

func (f timeFields) object() fyne.CanvasObject {
	return container.NewGridWithColumns(5,
		f[0], widget.NewLabel(TimeFieldSeparator),
		f[1], widget.NewLabel(TimeFieldSeparator),
		f[2],
	)
}

// TrimmerPanel is the "Video Trimmer" tab: task form, queue, preview and log
type TrimmerPanel struct {
	window       fyne.Window
	localization *Localization
	settings     *config.Settings
	runner       QueueRunner
	preview      *PreviewPanel

	queue        *model.Queue
	currentVideo string
	selected     int
	recentPaths  []string

	selectVideoBtn *widget.Button
	currentLabel   *widget.Label
	recentSelect   *widget.Select
	startLabel     *widget.Label
	endLabel       *widget.Label
	startFields    timeFields
	endFields      timeFields
	addBtn         *widget.Button
	previewBtn     *widget.Button
	taskList       *widget.List
	removeBtn      *widget.Button
	upBtn          *widget.Button
	downBtn        *widget.Button
	loadQueueBtn   *widget.Button
	saveQueueBtn   *widget.Button
	startBtn       *widget.Button
	openDirBtn     *widget.Button
	log            *logView

	content fyne.CanvasObject
}

// NewTrimmerPanel builds the trimmer tab. preview may be nil, in which case no preview is shown.
func NewTrimmerPanel(window fyne.Window, localization *Localization, settings *config.Settings,
	runner QueueRunner, preview *PreviewPanel) *TrimmerPanel {
	p := &TrimmerPanel{
		window:       window,
		localization: localization,
		settings:     settings,
		runner:       runner,
		preview:      preview,
		queue:        model.NewQueue(),
		selected:     -1,
	}
	p.createUI()
	return p
}

// Content returns the tab content
func (p *TrimmerPanel) Content() fyne.CanvasObject {
	return p.content
}

// Queue returns the task queue shown by the panel
func (p *TrimmerPanel) Queue() *model.Queue {
	return p.queue
}

// CurrentVideo returns the file the next task will cut from
func (p *TrimmerPanel) CurrentVideo() string {
	return p.currentVideo
}

func (p *TrimmerPanel) createUI() {
	p.selectVideoBtn = widget.NewButtonWithIcon("", theme.FolderOpenIcon(), p.onSelectVideo)
	p.currentLabel = widget.NewLabel("")
	p.currentLabel.Truncation = fyne.TextTruncateEllipsis
	p.recentSelect = widget.NewSelect(nil, nil)
	p.recentSelect.OnChanged = p.onRecentSelected

	p.startLabel = widget.NewLabel("")
	p.endLabel = widget.NewLabel("")
	p.startFields = newTimeFields()
	p.endFields = newTimeFields()

	p.addBtn = widget.NewButtonWithIcon("", theme.ContentAddIcon(), p.onAddTask)
	p.previewBtn = widget.NewButtonWithIcon("", theme.VisibilityIcon(), p.onPreviewRange)

	p.taskList = widget.NewList(
		func() int { return p.queue.Len() },
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		p.updateTaskItem,
	)
	p.taskList.OnSelected = func(id widget.ListItemID) { p.selected = id }
	p.taskList.OnUnselected = func(widget.ListItemID) { p.selected = -1 }

	p.removeBtn = widget.NewButtonWithIcon("", theme.DeleteIcon(), p.onRemoveTask)
	p.upBtn = widget.NewButtonWithIcon("", theme.MoveUpIcon(), p.onMoveUp)
	p.downBtn = widget.NewButtonWithIcon("", theme.MoveDownIcon(), p.onMoveDown)
	p.loadQueueBtn = widget.NewButtonWithIcon("", theme.FileIcon(), p.onLoadQueue)
	p.saveQueueBtn = widget.NewButtonWithIcon("", theme.DocumentSaveIcon(), p.onSaveQueue)
	p.startBtn = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), p.onStartQueue)
	p.startBtn.Importance = widget.HighImportance
	p.openDirBtn = widget.NewButtonWithIcon("", theme.FolderOpenIcon(), p.onOpenTrimmed)

	p.log = newLogView()

	form := container.New(layout.NewFormLayout(),
		p.selectVideoBtn, p.currentLabel,
		widget.NewLabel(""), p.recentSelect,
		p.startLabel, p.startFields.object(),
		p.endLabel, p.endFields.object(),
	)
	taskForm := container.NewVBox(form, container.NewHBox(p.addBtn, p.previewBtn))

	queueButtons := container.NewVBox(p.removeBtn, p.upBtn, p.downBtn, widget.NewSeparator(), p.loadQueueBtn, p.saveQueueBtn)
	queueBox := container.NewBorder(nil, container.NewHBox(p.startBtn, p.openDirBtn), nil, queueButtons, p.taskList)

	left := container.NewBorder(taskForm, nil, nil, nil, queueBox)
	var top fyne.CanvasObject = left
	if p.preview != nil {
		split := container.NewHSplit(left, p.preview.Content())
		split.SetOffset(0.45)
		top = split
	}

	body := container.NewVSplit(top, p.log.Object())
	body.SetOffset(0.75)
	p.content = body

	p.RefreshTexts()
	p.RefreshRecent(nil)
}

// RefreshTexts re-applies localized strings
func (p *TrimmerPanel) RefreshTexts() {
	text := p.localization.GetText
	p.selectVideoBtn.SetText(text(KeySelectVideo))
	if p.currentVideo == "" {
		p.currentLabel.SetText(text(KeyNoVideoSelected))
	}
	p.recentSelect.PlaceHolder = text(KeyRecentDownloads)
	p.recentSelect.Refresh()
	p.startLabel.SetText(text(KeyStartTime))
	p.endLabel.SetText(text(KeyEndTime))
	p.addBtn.SetText(text(KeyAddTask))
	p.previewBtn.SetText(text(KeyPreviewRange))
	p.removeBtn.SetText(text(KeyRemove))
	p.upBtn.SetText(text(KeyMoveUp))
	p.downBtn.SetText(text(KeyMoveDown))
	p.loadQueueBtn.SetText(text(KeyLoadQueue))
	p.saveQueueBtn.SetText(text(KeySaveQueue))
	p.startBtn.SetText(text(KeyStartQueue))
	p.openDirBtn.SetText(text(KeyOpenTrimmed))
}

// RefreshRecent replaces the recent downloads offered by the picker
func (p *TrimmerPanel) RefreshRecent(paths []string) {
	p.recentPaths = append([]string(nil), paths...)
	names := make([]string, len(paths))
	for i, path := range paths {
		names[i] = filepath.Base(path)
	}
	p.recentSelect.OnChanged = nil
	p.recentSelect.Options = names
	p.recentSelect.ClearSelected()
	p.recentSelect.OnChanged = p.onRecentSelected
	p.recentSelect.Refresh()
}

func (p *TrimmerPanel) onRecentSelected(string) {
	idx := p.recentSelect.SelectedIndex()
	if idx < 0 || idx >= len(p.recentPaths) {
		return
	}
	p.SetCurrentVideo(p.recentPaths[idx])
}

func (p *TrimmerPanel) updateTaskItem(id widget.ListItemID, item fyne.CanvasObject) {
	task, ok := p.queue.At(id)
	if !ok {
		return
	}
	if label, ok := item.(*widget.Label); ok {
		label.SetText(fmt.Sprintf(QueueRowFormat, id+1, task.Label()))
	}
}

// SetCurrentVideo makes path the source of the next task
func (p *TrimmerPanel) SetCurrentVideo(path string) {
	p.currentVideo = path
	if path == "" {
		p.currentLabel.SetText(p.localization.GetText(KeyNoVideoSelected))
		return
	}
	p.currentLabel.SetText(filepath.Base(path))
}

// LoadVideo selects path and opens it in the preview; used for auto-loaded downloads
func (p *TrimmerPanel) LoadVideo(path string) {
	p.SetCurrentVideo(path)
	if p.preview == nil {
		return
	}
	p.preview.Load(path, func(err error) {
		if err != nil {
			p.log.Append(fmt.Sprintf("%s: %v", p.localization.GetText(KeyPreviewError), err))
		}
	})
}

func (p *TrimmerPanel) onSelectVideo() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		p.SetCurrentVideo(path)
	}, p.window)
	fd.SetFilter(storage.NewExtensionFileFilter(VideoFileExtensions))
	fd.Show()
}

// readRange composes start and end codes from the form
func (p *TrimmerPanel) readRange() (start, end string, err error) {
	start, err = p.startFields.Code()
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", p.localization.GetText(KeyStartTime), err)
	}
	end, err = p.endFields.Code()
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", p.localization.GetText(KeyEndTime), err)
	}
	return start, end, nil
}

// onAddTask appends the form as a task, then clears the selection and fields
func (p *TrimmerPanel) onAddTask() {
	text := p.localization.GetText
	if p.currentVideo == "" {
		dialog.ShowInformation(text(KeyNoVideoTitle), text(KeyNoVideoForTask), p.window)
		return
	}
	start, end, err := p.readRange()
	if err != nil {
		p.log.Append(text(KeyInvalidTime) + ": " + err.Error())
		return
	}

	task := model.NewTrimTask(p.currentVideo, start, end)
	p.queue.Append(task)
	log.Printf("Trim task added: ID=%s, %s", task.ID, task.Label())
	p.taskList.Refresh()

	p.SetCurrentVideo("")
	p.startFields.Reset()
	p.endFields.Reset()
}

func (p *TrimmerPanel) onPreviewRange() {
	text := p.localization.GetText
	if p.currentVideo == "" {
		dialog.ShowInformation(text(KeyNoVideoTitle), text(KeyNoVideoForPreview), p.window)
		return
	}
	if p.preview == nil {
		return
	}
	start, end, err := p.readRange()
	if err != nil {
		p.log.Append(text(KeyInvalidTime) + ": " + err.Error())
		return
	}

	if p.preview.Controller().Path() == p.currentVideo {
		p.playRange(start, end)
		return
	}
	p.preview.Load(p.currentVideo, func(err error) {
		if err != nil {
			p.log.Append(fmt.Sprintf("%s: %v", text(KeyPreviewError), err))
			return
		}
		p.playRange(start, end)
	})
}

func (p *TrimmerPanel) playRange(start, end string) {
	if err := p.preview.SetRange(start, end); err != nil {
		p.log.Append(p.localization.GetText(KeyInvalidTime) + ": " + err.Error())
		return
	}
	p.preview.Play()
}

func (p *TrimmerPanel) onRemoveTask() {
	if err := p.queue.Remove(p.selected); err != nil {
		return
	}
	p.taskList.UnselectAll()
	p.selected = -1
	p.taskList.Refresh()
}

func (p *TrimmerPanel) onMoveUp() {
	p.move(p.queue.MoveUp)
}

func (p *TrimmerPanel) onMoveDown() {
	p.move(p.queue.MoveDown)
}

func (p *TrimmerPanel) move(swap func(int) (int, error)) {
	next, err := swap(p.selected)
	if err != nil {
		return
	}
	p.taskList.Refresh()
	p.taskList.Select(next)
	p.selected = next
}

// onStartQueue hands a snapshot of the queue to the processor
func (p *TrimmerPanel) onStartQueue() {
	text := p.localization.GetText
	if p.queue.Len() == 0 {
		dialog.ShowInformation(text(KeyNoTasksTitle), text(KeyNoTasks), p.window)
		return
	}

	if err := p.runner.Start(p.queue.Tasks()); err != nil {
		switch {
		case errors.Is(err, trim.ErrBusy):
			p.log.Append(text(KeyQueueBusy))
		case errors.Is(err, trim.ErrEmptyQueue):
			dialog.ShowInformation(text(KeyNoTasksTitle), text(KeyNoTasks), p.window)
		default:
			p.log.Append(err.Error())
		}
		return
	}
	p.startBtn.Disable()
}

func (p *TrimmerPanel) onLoadQueue() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		p.loadQueueFile(path)
	}, p.window)
	fd.SetFilter(storage.NewExtensionFileFilter(QueueFileExtensions))
	fd.Show()
}

// loadQueueFile appends the tasks of a queue file
func (p *TrimmerPanel) loadQueueFile(path string) {
	tasks, err := queuefile.Load(path)
	if err != nil {
		p.log.Append(err.Error())
		return
	}
	for _, t := range tasks {
		p.queue.Append(t)
	}
	p.taskList.Refresh()
	p.log.Append(fmt.Sprintf("%s: %s (%d)", p.localization.GetText(KeyQueueLoaded), filepath.Base(path), len(tasks)))
}

func (p *TrimmerPanel) onSaveQueue() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		p.saveQueueFile(path)
	}, p.window)
	fd.SetFileName(DefaultQueueFileName)
	fd.Show()
}

// saveQueueFile writes the queue as YAML
func (p *TrimmerPanel) saveQueueFile(path string) {
	if err := queuefile.Save(path, p.queue.Tasks()); err != nil {
		p.log.Append(err.Error())
		return
	}
	p.log.Append(fmt.Sprintf("%s: %s", p.localization.GetText(KeyQueueSaved), path))
}

func (p *TrimmerPanel) onOpenTrimmed() {
	dir := p.settings.GetTrimmedDirectory()
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		p.log.Append(p.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
		return
	}
	if err := platform.OpenFileWithDefaultApp(dir); err != nil {
		p.log.Append(p.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
	}
}

// HandleEvent renders trim and auto-load events. It runs on the UI goroutine.
func (p *TrimmerPanel) HandleEvent(ev events.Event) {
	switch ev.Topic {
	case events.TopicTrimTaskStarted, events.TopicTrimTaskComplete, events.TopicTrimTaskFailed:
		if report, ok := ev.Payload.(model.TrimReport); ok {
			p.log.Append(report.Message)
		}
	case events.TopicTrimQueueComplete:
		p.log.Append(p.localization.GetText(KeyQueueComplete))
		p.startBtn.Enable()
	case events.TopicAutoLoadVideo:
		if path, ok := ev.Payload.(string); ok && path != "" {
			p.LoadVideo(path)
		}
	}
}
