package pipeline

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Snapshotter writes each stage's raw output as compact JSON files, one
// per entity. The files are debugging artifacts; a failed write is
// logged and never fails the run.
type Snapshotter struct {
	dir string
}

// NewSnapshotter creates a snapshotter rooted at dir. An empty dir
// disables snapshots entirely.
func NewSnapshotter(dir string) *Snapshotter {
	return &Snapshotter{dir: dir}
}

// Reset clears leftover snapshots from a previous run and recreates the
// directory.
func (s *Snapshotter) Reset() error {
	if s.dir == "" {
		return nil
	}
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("clearing snapshot dir: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating snapshot dir: %w", err)
	}
	return nil
}

// Write stores v as <name>.json under the snapshot directory.
func (s *Snapshotter) Write(name string, v any) {
	if s.dir == "" {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("⚠️  Failed to encode snapshot %s: %v", name, err)
		return
	}

	path := filepath.Join(s.dir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Printf("⚠️  Failed to write snapshot %s: %v", path, err)
	}
}
