// Package ui contains the Fyne desktop interface: a "YouTube Downloader" tab,
// a "Video Trimmer" tab with its queue and range preview, the settings dialog
// and localization. Workers report through the event bus; the window drains
// those events through a mailbox on the UI goroutine.
package ui
