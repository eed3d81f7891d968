package vignette

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Snapshot queues a labeled frame dump, written as JSON once the current
// Tick has built its frame. Files land in SnapshotDir with a timestamped
// name.
func (d *Director) Snapshot(label string) {
	d.snapshotQueue = append(d.snapshotQueue, label)
}

// flushSnapshots writes the current frame once per queued label. Called at
// the end of Director.Tick.
func (d *Director) flushSnapshots() {
	if len(d.snapshotQueue) == 0 {
		return
	}
	defer func() { d.snapshotQueue = d.snapshotQueue[:0] }()

	if err := os.MkdirAll(d.SnapshotDir, 0o755); err != nil {
		d.warnf("snapshot: mkdir %s: %v", d.SnapshotDir, err)
		return
	}
	data, err := json.MarshalIndent(&d.frame, "", "  ")
	if err != nil {
		d.warnf("snapshot: %v", err)
		return
	}

	stamp := time.Now().Format("20060102_150405")
	for _, label := range d.snapshotQueue {
		name := fmt.Sprintf("%s_%06d_%s.json", stamp, d.frame.Tick, sanitizeLabel(label))
		path := filepath.Join(d.SnapshotDir, name)
		if err := writeSnapshot(path, data); err != nil {
			d.warnf("snapshot: %v", err)
			continue
		}
		d.logf("snapshot %s", path)
	}
}

func writeSnapshot(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
