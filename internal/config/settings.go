package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Resolution choices offered by the downloader
const (
	Resolution1080 = "1080p"
	Resolution720  = "720p"
	Resolution480  = "480p"
	Resolution360  = "360p"
	ResolutionBest = "best"
)

// Settings keys for preferences
const (
	KeyDownloadDir       = "download_directory"
	KeyTrimmedDir        = "trimmed_directory"
	KeyDefaultResolution = "default_resolution"
	KeyAutoLoad          = "auto_load_into_trimmer"
	KeyFFmpegPath        = "ffmpeg_path"
	KeyFFprobePath       = "ffprobe_path"
	KeyYTDLPPath         = "ytdlp_path"
	KeyLanguage          = "app_language"
)

// Environment overrides, also read from a .env file
const (
	EnvFFmpeg      = "CLIPFARM_FFMPEG"
	EnvFFprobe     = "CLIPFARM_FFPROBE"
	EnvYTDLP       = "CLIPFARM_YTDLP"
	EnvDownloadDir = "CLIPFARM_DOWNLOAD_DIR"
	EnvTrimmedDir  = "CLIPFARM_TRIMMED_DIR"
)

// Default values
const (
	DefaultDownloadDir = "videos/downloads"
	DefaultTrimmedDir  = "videos/trimmed"
	DefaultResolution  = Resolution1080
	DefaultAutoLoad    = true
	DefaultFFmpegPath  = "ffmpeg"
	DefaultFFprobePath = "ffprobe"
	DefaultLanguage    = "system"
	DefaultEnvFile     = ".env"
)

// Preferences is the subset of fyne.Preferences the settings need
type Preferences interface {
	String(key string) string
	SetString(key string, value string)
	BoolWithFallback(key string, fallback bool) bool
	SetBool(key string, value bool)
}

// Settings manages application configuration. Values come from overrides
// (command line flags) first, then the environment, then preferences, then defaults.
type Settings struct {
	prefs     Preferences
	lookupEnv func(string) (string, bool)
	overrides map[string]string
}

// NewSettings creates a new settings manager
func NewSettings(prefs Preferences) *Settings {
	return &Settings{prefs: prefs, lookupEnv: os.LookupEnv}
}

// LoadEnvFile loads variables from files (default .env) into the process
// environment without overriding variables that are already set.
// Missing files are not an error.
func LoadEnvFile(files ...string) error {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Override pins the value of a preference key above the environment.
// An empty value removes the override.
func (s *Settings) Override(prefKey, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		delete(s.overrides, prefKey)
		return
	}
	if s.overrides == nil {
		s.overrides = make(map[string]string)
	}
	s.overrides[prefKey] = value
}

func (s *Settings) stringValue(envKey, prefKey, fallback string) string {
	if v, ok := s.overrides[prefKey]; ok {
		return v
	}
	if envKey != "" && s.lookupEnv != nil {
		if v, ok := s.lookupEnv(envKey); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	if v := s.prefs.String(prefKey); v != "" {
		return v
	}
	return fallback
}

// GetDownloadDirectory returns the directory downloads are written to
func (s *Settings) GetDownloadDirectory() string {
	return s.stringValue(EnvDownloadDir, KeyDownloadDir, DefaultDownloadDir)
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.prefs.SetString(KeyDownloadDir, dir)
}

// GetTrimmedDirectory returns the directory trimmed clips are written to
func (s *Settings) GetTrimmedDirectory() string {
	return s.stringValue(EnvTrimmedDir, KeyTrimmedDir, DefaultTrimmedDir)
}

// SetTrimmedDirectory sets the trimmed clips directory
func (s *Settings) SetTrimmedDirectory(dir string) {
	s.prefs.SetString(KeyTrimmedDir, dir)
}

// GetDefaultResolution returns the resolution preselected in the downloader
func (s *Settings) GetDefaultResolution() string {
	res := s.prefs.String(KeyDefaultResolution)
	if !isResolutionOption(res) {
		return DefaultResolution
	}
	return res
}

// SetDefaultResolution sets the preselected resolution; unknown values are ignored
func (s *Settings) SetDefaultResolution(res string) {
	if !isResolutionOption(res) {
		return
	}
	s.prefs.SetString(KeyDefaultResolution, res)
}

// GetResolutionOptions returns the resolutions offered in the downloader
func (s *Settings) GetResolutionOptions() []string {
	return []string{Resolution1080, Resolution720, Resolution480, Resolution360, ResolutionBest}
}

func isResolutionOption(res string) bool {
	switch res {
	case Resolution1080, Resolution720, Resolution480, Resolution360, ResolutionBest:
		return true
	}
	return false
}

// GetAutoLoad returns whether finished downloads are loaded into the trimmer
func (s *Settings) GetAutoLoad() bool {
	return s.prefs.BoolWithFallback(KeyAutoLoad, DefaultAutoLoad)
}

// SetAutoLoad sets whether finished downloads are loaded into the trimmer
func (s *Settings) SetAutoLoad(autoLoad bool) {
	s.prefs.SetBool(KeyAutoLoad, autoLoad)
}

// GetFFmpegPath returns the ffmpeg executable
func (s *Settings) GetFFmpegPath() string {
	return s.stringValue(EnvFFmpeg, KeyFFmpegPath, DefaultFFmpegPath)
}

// SetFFmpegPath sets the ffmpeg executable
func (s *Settings) SetFFmpegPath(path string) {
	s.prefs.SetString(KeyFFmpegPath, path)
}

// GetFFprobePath returns the ffprobe executable
func (s *Settings) GetFFprobePath() string {
	return s.stringValue(EnvFFprobe, KeyFFprobePath, DefaultFFprobePath)
}

// SetFFprobePath sets the ffprobe executable
func (s *Settings) SetFFprobePath(path string) {
	s.prefs.SetString(KeyFFprobePath, path)
}

// GetYTDLPPath returns the yt-dlp executable, "" meaning the one on PATH
func (s *Settings) GetYTDLPPath() string {
	return s.stringValue(EnvYTDLP, KeyYTDLPPath, "")
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	return s.stringValue("", KeyLanguage, DefaultLanguage)
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.prefs.SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// MemoryPreferences is an in-process Preferences store for headless runs
type MemoryPreferences struct {
	mu    sync.RWMutex
	strs  map[string]string
	bools map[string]bool
}

// NewMemoryPreferences creates an empty store
func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{strs: map[string]string{}, bools: map[string]bool{}}
}

func (m *MemoryPreferences) String(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.strs[key]
}

func (m *MemoryPreferences) SetString(key string, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.strs[key] = value
}

func (m *MemoryPreferences) BoolWithFallback(key string, fallback bool) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.bools[key]; ok {
		return v
	}
	return fallback
}

func (m *MemoryPreferences) SetBool(key string, value bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bools[key] = value
}
