package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Application identity
const (
	AppID   = "com.ytget.clipfarm"
	AppName = "Clip Farming Tool"
)

// Window sizing
const (
	WindowWidth  float32 = 960
	WindowHeight float32 = 720
)

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconLanguage = "🌐"
	IconFolder   = "📁"
)

// Text fragments
const (
	LogLineSeparator    = "\n"
	ProgressLabelFormat = "%s %d%% · ETA %s"
	QueueRowFormat      = "%d: %s"
	TimeFieldWidth      = 3
	TimeFieldSeparator  = ":"
	DefaultTimeField    = "00"
)

// Layout sizing
const (
	PreviewMinWidth  float32 = 480
	PreviewMinHeight float32 = 270
	LogMinHeight     float32 = 120
	QueueMinHeight   float32 = 160
	TimeEntryWidth   float32 = 52
	DialogWidth      float32 = 520
	DialogHeight     float32 = 440
)

// Playlist resolution
const (
	PlaylistResolveTimeout = 30 * time.Second
)

// File dialogs
var (
	VideoFileExtensions = []string{".mp4", ".mov", ".mkv", ".avi", ".webm"}
	QueueFileExtensions = []string{".yaml", ".yml"}
)

// DefaultQueueFileName is suggested by the Save Queue dialog
const DefaultQueueFileName = "trim-queue.yaml"
