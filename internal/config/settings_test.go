package config

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
)

func noEnv(string) (string, bool) { return "", false }

func newTestSettings() *Settings {
	s := NewSettings(test.NewApp().Preferences())
	s.lookupEnv = noEnv
	return s
}

func TestDownloadDirectory(t *testing.T) {
	settings := newTestSettings()

	if dir := settings.GetDownloadDirectory(); dir != DefaultDownloadDir {
		t.Errorf("Expected default download directory %s, got %s", DefaultDownloadDir, dir)
	}

	customDir := "/custom/downloads"
	settings.SetDownloadDirectory(customDir)

	if dir := settings.GetDownloadDirectory(); dir != customDir {
		t.Errorf("Expected download directory %s, got %s", customDir, dir)
	}
}

func TestTrimmedDirectory(t *testing.T) {
	settings := newTestSettings()

	if dir := settings.GetTrimmedDirectory(); dir != DefaultTrimmedDir {
		t.Errorf("Expected default trimmed directory %s, got %s", DefaultTrimmedDir, dir)
	}

	settings.SetTrimmedDirectory("/custom/trimmed")
	if dir := settings.GetTrimmedDirectory(); dir != "/custom/trimmed" {
		t.Errorf("Expected /custom/trimmed, got %s", dir)
	}
}

func TestDefaultResolution(t *testing.T) {
	settings := newTestSettings()

	if res := settings.GetDefaultResolution(); res != DefaultResolution {
		t.Errorf("Expected default resolution %s, got %s", DefaultResolution, res)
	}

	settings.SetDefaultResolution(Resolution480)
	if res := settings.GetDefaultResolution(); res != Resolution480 {
		t.Errorf("Expected %s, got %s", Resolution480, res)
	}

	settings.SetDefaultResolution("4320p")
	if res := settings.GetDefaultResolution(); res != Resolution480 {
		t.Errorf("Unknown resolution must be ignored, got %s", res)
	}

	options := settings.GetResolutionOptions()
	if len(options) != 5 || options[0] != Resolution1080 || options[4] != ResolutionBest {
		t.Errorf("Unexpected resolution options %v", options)
	}
}

func TestAutoLoad(t *testing.T) {
	settings := newTestSettings()

	if !settings.GetAutoLoad() {
		t.Error("Auto-load should default to true")
	}

	settings.SetAutoLoad(false)
	if settings.GetAutoLoad() {
		t.Error("Expected auto-load to be disabled")
	}
}

func TestToolPaths(t *testing.T) {
	settings := newTestSettings()

	if settings.GetFFmpegPath() != DefaultFFmpegPath {
		t.Errorf("Expected %s, got %s", DefaultFFmpegPath, settings.GetFFmpegPath())
	}
	if settings.GetFFprobePath() != DefaultFFprobePath {
		t.Errorf("Expected %s, got %s", DefaultFFprobePath, settings.GetFFprobePath())
	}
	if settings.GetYTDLPPath() != "" {
		t.Errorf("Expected empty yt-dlp path, got %s", settings.GetYTDLPPath())
	}

	settings.SetFFmpegPath("/opt/bin/ffmpeg")
	settings.SetFFprobePath("/opt/bin/ffprobe")
	if settings.GetFFmpegPath() != "/opt/bin/ffmpeg" || settings.GetFFprobePath() != "/opt/bin/ffprobe" {
		t.Error("Expected custom tool paths")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	env := map[string]string{
		EnvFFmpeg:      "/env/ffmpeg",
		EnvDownloadDir: " /env/downloads ",
		EnvTrimmedDir:  "",
	}
	settings := NewSettings(NewMemoryPreferences())
	settings.lookupEnv = func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	settings.SetFFmpegPath("/prefs/ffmpeg")
	settings.SetTrimmedDirectory("/prefs/trimmed")

	if got := settings.GetFFmpegPath(); got != "/env/ffmpeg" {
		t.Errorf("Environment should win over preferences, got %s", got)
	}
	if got := settings.GetDownloadDirectory(); got != "/env/downloads" {
		t.Errorf("Expected trimmed env value, got %q", got)
	}
	if got := settings.GetTrimmedDirectory(); got != "/prefs/trimmed" {
		t.Errorf("Empty env value must not override, got %s", got)
	}
}

func TestOverridesWinOverEnvironment(t *testing.T) {
	settings := NewSettings(NewMemoryPreferences())
	settings.lookupEnv = func(k string) (string, bool) {
		if k == EnvFFmpeg {
			return "/env/ffmpeg", true
		}
		return "", false
	}

	settings.Override(KeyFFmpegPath, "/flag/ffmpeg")
	if got := settings.GetFFmpegPath(); got != "/flag/ffmpeg" {
		t.Errorf("Override should win over the environment, got %s", got)
	}

	settings.Override(KeyFFmpegPath, "")
	if got := settings.GetFFmpegPath(); got != "/env/ffmpeg" {
		t.Errorf("Cleared override should fall back to the environment, got %s", got)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte(EnvFFprobe+"=/from/dotenv/ffprobe\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvFFprobe, "")
	os.Unsetenv(EnvFFprobe)

	if err := LoadEnvFile(envFile); err != nil {
		t.Fatalf("LoadEnvFile failed: %v", err)
	}

	settings := NewSettings(NewMemoryPreferences())
	if got := settings.GetFFprobePath(); got != "/from/dotenv/ffprobe" {
		t.Errorf("Expected value from .env, got %s", got)
	}

	if err := LoadEnvFile(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("Missing env file should be ignored, got %v", err)
	}
}

func TestLanguage(t *testing.T) {
	settings := newTestSettings()

	if settings.GetLanguage() != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, settings.GetLanguage())
	}

	settings.SetLanguage("ru")
	if settings.GetLanguage() != "ru" {
		t.Errorf("Expected language ru, got %s", settings.GetLanguage())
	}

	options := settings.GetLanguageOptions()
	for _, lang := range []string{"system", "en", "ru", "pt"} {
		if _, ok := options[lang]; !ok {
			t.Errorf("Language option %s should exist", lang)
		}
	}
}

func TestMemoryPreferences(t *testing.T) {
	prefs := NewMemoryPreferences()

	if prefs.String("missing") != "" {
		t.Error("Missing string should be empty")
	}
	if !prefs.BoolWithFallback("missing", true) {
		t.Error("Missing bool should use fallback")
	}

	prefs.SetString("k", "v")
	prefs.SetBool("b", false)
	if prefs.String("k") != "v" || prefs.BoolWithFallback("b", true) {
		t.Error("Stored values should be returned")
	}
}
