package platform

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// LibraryWatcher tracks the video files in the downloads directory so the
// trimmer can offer recent downloads. Change notifications are coalesced:
// Events carries at most one pending signal.
type LibraryWatcher struct {
	dir string
	fs  *fsnotify.Watcher

	events chan struct{}
	done   chan struct{}
	once   sync.Once
}

// NewLibraryWatcher starts watching dir, creating it if needed
func NewLibraryWatcher(dir string) (*LibraryWatcher, error) {
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		return nil, err
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &LibraryWatcher{
		dir:    dir,
		fs:     fs,
		events: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Dir returns the watched directory
func (w *LibraryWatcher) Dir() string {
	return w.dir
}

// Events signals that the set of videos may have changed
func (w *LibraryWatcher) Events() <-chan struct{} {
	return w.events
}

// Videos lists the video files in the directory sorted by name
func (w *LibraryWatcher) Videos() ([]string, error) {
	return ListVideos(w.dir)
}

// Close stops watching
func (w *LibraryWatcher) Close() error {
	w.once.Do(func() {
		close(w.done)
	})
	return w.fs.Close()
}

func (w *LibraryWatcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case evt, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if IsVideoFile(evt.Name) && (evt.Has(fsnotify.Create) || evt.Has(fsnotify.Remove) || evt.Has(fsnotify.Rename)) {
				w.signal()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("Library watcher error on %s: %v", w.dir, err)
		}
	}
}

func (w *LibraryWatcher) signal() {
	select {
	case w.events <- struct{}{}:
	default:
	}
}

// ListVideos returns the paths of video files directly inside dir, sorted by name
func ListVideos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var videos []string
	for _, entry := range entries {
		if entry.IsDir() || !IsVideoFile(entry.Name()) {
			continue
		}
		videos = append(videos, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(videos)
	return videos, nil
}
