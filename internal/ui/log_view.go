package ui

import (
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// logView is an append-only, scrolling text log. It must be used from the UI goroutine.
type logView struct {
	lines  []string
	label  *widget.Label
	scroll *container.Scroll
}

func newLogView() *logView {
	label := widget.NewLabel("")
	label.Wrapping = fyne.TextWrapWord
	scroll := container.NewVScroll(label)
	scroll.SetMinSize(fyne.NewSize(0, LogMinHeight))
	return &logView{label: label, scroll: scroll}
}

// Append adds message as a new line and scrolls to it
func (l *logView) Append(message string) {
	log.Printf("ui: %s", message)
	l.lines = append(l.lines, message)
	l.label.SetText(strings.Join(l.lines, LogLineSeparator))
	l.scroll.ScrollToBottom()
}

// Lines returns a copy of the logged lines
func (l *logView) Lines() []string {
	return append([]string(nil), l.lines...)
}

// Object returns the widget to place in a layout
func (l *logView) Object() fyne.CanvasObject {
	return l.scroll
}
