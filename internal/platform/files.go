package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// DefaultDirPermissions is used for the downloads and trimmed directories
const DefaultDirPermissions = 0755

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
	CmdCommand      = "cmd"
	StartCommand    = "start"

	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
	WindowsCmdFlag     = "/c"
)

// LinuxFileManagers are tried in order when xdg-open is missing
var LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}

// VideoExtensions lists the containers the trimmer accepts
var VideoExtensions = []string{".mp4", ".mkv", ".avi", ".mov", ".webm"}

// SkippedExtensions are partial files left behind by yt-dlp
var SkippedExtensions = []string{".part", ".ytdl", ".temp"}

// Name matching thresholds for FindFileWithFallback
const (
	MinFileNameLength    = 10
	MediumFileNameLength = 15
	LongFileNameLength   = 20
	MaxNameDifference    = 10

	ScoreForLongName   = 3
	ScoreForMediumName = 2
	ScoreForShortName  = 1
	ScoreForSpaces     = 2
	ScoreForSeparators = 1
	ScoreForTrimSuffix = -2
)

// IsVideoFile reports whether name has one of VideoExtensions
func IsVideoFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, v := range VideoExtensions {
		if ext == v {
			return true
		}
	}
	return false
}

// CreateDirectoryIfNotExists creates dirPath and its parents if missing
func CreateDirectoryIfNotExists(dirPath string) error {
	info, err := os.Stat(dirPath)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", dirPath)
		}
		return nil
	}
	return os.MkdirAll(dirPath, DefaultDirPermissions)
}

// OpenFileInManager opens the file in the system file manager and highlights it
func OpenFileInManager(filePath string) error {
	absPath, err := resolveExisting(filePath)
	if err != nil {
		return err
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, MacOSSelectFlag, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, WindowsSelectParam, absPath).Run()
	case OSLinux:
		return openDirectoryLinux(filepath.Dir(absPath))
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// OpenFileWithDefaultApp opens the file with the default system application
func OpenFileWithDefaultApp(filePath string) error {
	absPath, err := resolveExisting(filePath)
	if err != nil {
		return err
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, absPath).Run()
	case OSWindows:
		return exec.Command(CmdCommand, WindowsCmdFlag, StartCommand, "", absPath).Run()
	case OSLinux:
		return exec.Command(XDGOpenCommand, absPath).Run()
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

func resolveExisting(filePath string) (string, error) {
	foundPath, err := FindFileWithFallback(filePath)
	if err != nil {
		return "", fmt.Errorf("file does not exist: %w", err)
	}
	absPath, err := filepath.Abs(foundPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return absPath, nil
}

// openDirectoryLinux opens dir; file selection is not standardized on Linux
func openDirectoryLinux(dir string) error {
	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}
	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}
	return fmt.Errorf("no suitable file manager found")
}

// FindFileWithFallback returns filePath if it exists. Otherwise it looks in
// the same directory for a file with a similar name and the same extension,
// which covers yt-dlp adjusting the title it writes, and finally for the most
// descriptive video file with that extension.
func FindFileWithFallback(filePath string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("file path is empty")
	}
	if strings.HasPrefix(filePath, "http") {
		return "", fmt.Errorf("file path appears to be a URL: %s", filePath)
	}
	if !strings.ContainsAny(filePath, `/\`) {
		return "", fmt.Errorf("file path does not contain path separators: %s", filePath)
	}

	if _, err := os.Stat(filePath); err == nil {
		return filePath, nil
	}

	dir := filepath.Dir(filePath)
	originalName := filepath.Base(filePath)
	originalExt := filepath.Ext(originalName)
	baseName := strings.TrimSuffix(originalName, originalExt)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var candidates, fallbackCandidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != originalExt || isSkipped(name) {
			continue
		}

		if isSimilarFileName(strings.TrimSuffix(name, ext), baseName) {
			candidates = append(candidates, filepath.Join(dir, name))
		} else if len(name) >= MinFileNameLength {
			fallbackCandidates = append(fallbackCandidates, filepath.Join(dir, name))
		}
	}

	if len(candidates) > 0 {
		sort.Strings(candidates)
		return candidates[0], nil
	}

	if len(fallbackCandidates) > 0 {
		sort.SliceStable(fallbackCandidates, func(i, j int) bool {
			scoreI := getDescriptiveScore(filepath.Base(fallbackCandidates[i]))
			scoreJ := getDescriptiveScore(filepath.Base(fallbackCandidates[j]))
			if scoreI != scoreJ {
				return scoreI > scoreJ
			}
			infoI, errI := os.Stat(fallbackCandidates[i])
			infoJ, errJ := os.Stat(fallbackCandidates[j])
			if errI != nil || errJ != nil {
				return false
			}
			return infoI.ModTime().After(infoJ.ModTime())
		})
		return fallbackCandidates[0], nil
	}

	return "", fmt.Errorf("file not found: %s", filePath)
}

func isSkipped(name string) bool {
	for _, ext := range SkippedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// isSimilarFileName checks if two base names likely refer to the same download
func isSimilarFileName(name1, name2 string) bool {
	clean1 := strings.TrimSpace(name1)
	clean2 := strings.TrimSpace(name2)
	if clean1 == clean2 {
		return true
	}

	norm1 := normalizeName(clean1)
	norm2 := normalizeName(clean2)
	if norm1 == norm2 {
		return true
	}

	// truncated names
	if strings.Contains(norm1, norm2) || strings.Contains(norm2, norm1) {
		diff := len(norm1) - len(norm2)
		if diff < 0 {
			diff = -diff
		}
		return diff <= MaxNameDifference
	}
	return false
}

// normalizeName folds the separators yt-dlp may substitute for spaces
func normalizeName(name string) string {
	r := strings.NewReplacer("_", " ", "-", " ")
	return strings.Join(strings.Fields(strings.ToLower(r.Replace(name))), " ")
}

// getDescriptiveScore ranks how much a file name looks like a downloaded title
func getDescriptiveScore(filename string) int {
	score := 0
	switch {
	case len(filename) > LongFileNameLength:
		score += ScoreForLongName
	case len(filename) > MediumFileNameLength:
		score += ScoreForMediumName
	case len(filename) > MinFileNameLength:
		score += ScoreForShortName
	}

	if strings.Contains(filename, " ") {
		score += ScoreForSpaces
	}
	if strings.ContainsAny(filename, "_-") {
		score += ScoreForSeparators
	}
	// trimmed clips are outputs, not downloads
	if strings.Contains(filename, "_trim_") {
		score += ScoreForTrimSuffix
	}
	return score
}
