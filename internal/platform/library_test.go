package platform

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestListVideos(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mp4", "a.mkv", "notes.txt", "c.mp4.part"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.mp4"), 0755); err != nil {
		t.Fatal(err)
	}

	videos, err := ListVideos(dir)
	if err != nil {
		t.Fatalf("ListVideos failed: %v", err)
	}

	expected := []string{filepath.Join(dir, "a.mkv"), filepath.Join(dir, "b.mp4")}
	if len(videos) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, videos)
	}
	for i := range expected {
		if videos[i] != expected[i] {
			t.Errorf("Video %d: expected %s, got %s", i, expected[i], videos[i])
		}
	}
}

func TestListVideos_MissingDir(t *testing.T) {
	if _, err := ListVideos(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestLibraryWatcher_SignalsNewVideo(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "downloads")

	w, err := NewLibraryWatcher(dir)
	if err != nil {
		t.Fatalf("NewLibraryWatcher failed: %v", err)
	}
	defer w.Close()

	if w.Dir() != dir {
		t.Errorf("Expected dir %s, got %s", dir, w.Dir())
	}

	if err := os.WriteFile(filepath.Join(dir, "new clip.mp4"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Events():
	case <-time.After(3 * time.Second):
		t.Fatal("Timed out waiting for library event")
	}

	videos, err := w.Videos()
	if err != nil {
		t.Fatal(err)
	}
	if len(videos) != 1 || filepath.Base(videos[0]) != "new clip.mp4" {
		t.Errorf("Unexpected videos %v", videos)
	}
}

func TestLibraryWatcher_CloseTwice(t *testing.T) {
	w, err := NewLibraryWatcher(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	w.Close()
	w.Close()
}
