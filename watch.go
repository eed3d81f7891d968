package vignette

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce collapses the burst of events editors emit for one save.
const watchDebounce = 100 * time.Millisecond

// ConfigWatcher reloads a config file whenever it changes on disk. Parsed
// configs arrive on Configs; read and parse failures arrive on Errors. The
// host drains both between ticks and passes configs to Director.ApplyConfig.
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	Configs chan Config
	Errors  chan error
	closeCh chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

// WatchConfig starts watching path. The file's directory is watched rather
// than the file so that editors which save by rename are still seen.
func WatchConfig(path string) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch config %s: %w", path, err)
	}

	cw := &ConfigWatcher{
		path:    abs,
		watcher: w,
		Configs: make(chan Config, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go cw.run()
	return cw, nil
}

// Close stops the watcher. Configs and Errors are closed once the watch
// goroutine has exited.
func (w *ConfigWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.doneCh
	})
	return err
}

func (w *ConfigWatcher) run() {
	defer func() {
		close(w.Configs)
		close(w.Errors)
		close(w.doneCh)
	}()

	var last time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			now := time.Now()
			if now.Sub(last) < watchDebounce {
				continue
			}
			last = now

			cfg, err := LoadConfig(w.path)
			if err != nil {
				w.send(nil, err)
				continue
			}
			w.send(&cfg, nil)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(nil, fmt.Errorf("watch config: %w", err))
		case <-w.closeCh:
			return
		}
	}
}

// send delivers a result without blocking past Close. A newer config
// replaces one the host has not picked up yet.
func (w *ConfigWatcher) send(cfg *Config, err error) {
	if cfg != nil {
		select {
		case <-w.Configs:
		default:
		}
		select {
		case w.Configs <- *cfg:
		case <-w.closeCh:
		}
		return
	}
	select {
	case w.Errors <- err:
	case <-w.closeCh:
	}
}
