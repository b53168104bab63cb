package model

import (
	"strings"
	"testing"
)

func TestDownloadTask_GetETAString(t *testing.T) {
	tests := []struct {
		etaSec   int
		expected string
	}{
		{-1, "—"},
		{0, "—"},
		{30, "00:30"},
		{90, "01:30"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
	}

	for _, test := range tests {
		task := &DownloadTask{ETASec: test.etaSec}
		result := task.GetETAString()
		if result != test.expected {
			t.Errorf("GetETAString() with ETASec=%d = %s, expected %s", test.etaSec, result, test.expected)
		}
	}
}

func TestDownloadTask_GetDisplayTitle(t *testing.T) {
	tests := []struct {
		title    string
		output   string
		url      string
		expected string
	}{
		{"Video Title", "", "https://youtube.com/watch?v=123", "Video Title"},
		{"", "videos/downloads/My Clip.mp4", "https://youtube.com/watch?v=123", "My Clip"},
		{"", "", "https://youtube.com/watch?v=456", "https://youtube.com/watch?v=456"},
	}

	for _, test := range tests {
		task := &DownloadTask{
			Title:      test.title,
			OutputPath: test.output,
			Request:    DownloadRequest{URL: test.url},
		}
		result := task.GetDisplayTitle()
		if result != test.expected {
			t.Errorf("GetDisplayTitle() = '%s', expected '%s'", result, test.expected)
		}
	}
}

func TestNewTrimTask(t *testing.T) {
	a := NewTrimTask("/tmp/clip.mp4", "00:00:10", "00:00:20")
	b := NewTrimTask("/tmp/clip.mp4", "00:00:10", "00:00:20")

	if a.ID == b.ID {
		t.Error("Expected different task IDs")
	}
	if !strings.HasPrefix(a.ID, TrimTaskIDPrefix) {
		t.Errorf("Expected ID to start with %q, got %s", TrimTaskIDPrefix, a.ID)
	}
	if a.Label() != "clip.mp4 | 00:00:10 - 00:00:20" {
		t.Errorf("Unexpected label: %s", a.Label())
	}
}

func TestNewDownloadTask(t *testing.T) {
	task := NewDownloadTask(DownloadRequest{URL: "https://youtube.com/watch?v=x", Resolution: "720p"})

	if task.Status != TaskStatusPending {
		t.Errorf("Expected status Pending, got %s", task.Status)
	}
	if task.ETASec != -1 {
		t.Errorf("Expected unknown ETA, got %d", task.ETASec)
	}
	if !strings.HasPrefix(task.ID, DownloadTaskIDPrefix) {
		t.Errorf("Expected ID to start with %q, got %s", DownloadTaskIDPrefix, task.ID)
	}
}
