// Package queuefile imports and exports trim queues as YAML:
//
//	tasks:
//	  - video: videos/downloads/clip.mp4
//	    start: "00:00:10"
//	    end: "00:00:20"
package queuefile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ytget/clipfarm/internal/model"
)

// FilePermissions for saved queue files
const FilePermissions = 0644

// Document is the on-disk layout of a queue file
type Document struct {
	Tasks []model.TrimTask `yaml:"tasks"`
}

// Load reads a queue file. Relative video paths are resolved against the
// queue file's directory. Time codes are validated when the queue runs, not here.
func Load(path string) ([]model.TrimTask, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read queue file: %w", err)
	}
	return Parse(data, filepath.Dir(path))
}

// Parse decodes queue YAML, resolving relative video paths against baseDir
func Parse(data []byte, baseDir string) ([]model.TrimTask, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse queue file: %w", err)
	}

	tasks := make([]model.TrimTask, 0, len(doc.Tasks))
	for i, t := range doc.Tasks {
		video := strings.TrimSpace(t.Video)
		if video == "" {
			return nil, fmt.Errorf("task %d: missing video", i+1)
		}
		if !filepath.IsAbs(video) && baseDir != "" {
			video = filepath.Join(baseDir, video)
		}
		tasks = append(tasks, model.NewTrimTask(video, strings.TrimSpace(t.Start), strings.TrimSpace(t.End)))
	}
	return tasks, nil
}

// Save writes tasks to path, creating parent directories as needed
func Save(path string, tasks []model.TrimTask) error {
	doc := Document{Tasks: tasks}
	if doc.Tasks == nil {
		doc.Tasks = []model.TrimTask{}
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode queue: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, FilePermissions); err != nil {
		return fmt.Errorf("failed to write queue file: %w", err)
	}
	return nil
}
