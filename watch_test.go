package vignette

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// replaceFile writes data next to path and renames it into place, the way
// most editors save.
func replaceFile(t *testing.T, path, data string) {
	t.Helper()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}
}

func TestWatchConfigReloads(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "vignette.yaml")
	replaceFile(t, path, "warp:\n  speed: 10\n")

	w, err := WatchConfig(path)
	if err != nil {
		t.Fatalf("WatchConfig: %v", err)
	}
	defer w.Close()

	replaceFile(t, path, "warp:\n  speed: 42\n")
	select {
	case cfg := <-w.Configs:
		if cfg.Warp.Speed != 42 {
			t.Errorf("speed = %v, want 42", cfg.Warp.Speed)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no config after rewrite")
	}

	time.Sleep(2 * watchDebounce)
	replaceFile(t, path, "animation:\n  defaultDelta: 0\n")
	select {
	case cfg := <-w.Configs:
		t.Fatalf("invalid file produced a config: %+v", cfg.Animation)
	case err := <-w.Errors:
		if err == nil {
			t.Error("nil error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no error after invalid rewrite")
	}
}

func TestWatchConfigIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vignette.yaml")
	replaceFile(t, path, "")

	w, err := WatchConfig(path)
	if err != nil {
		t.Fatalf("WatchConfig: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case cfg := <-w.Configs:
		t.Fatalf("unexpected config: %+v", cfg)
	case err := <-w.Errors:
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchConfigClose(t *testing.T) {
	dir := t.TempDir()
	w, err := WatchConfig(filepath.Join(dir, "vignette.yaml"))
	if err != nil {
		t.Fatalf("WatchConfig: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, ok := <-w.Configs; ok {
		t.Error("Configs still open after Close")
	}
	if _, ok := <-w.Errors; ok {
		t.Error("Errors still open after Close")
	}
}

func TestWatchConfigMissingDir(t *testing.T) {
	_, err := WatchConfig(filepath.Join(t.TempDir(), "missing", "vignette.yaml"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
