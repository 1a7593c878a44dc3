package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/viewcore/internal/logging"
)

// reloadDelay coalesces the burst of events an editor produces when it
// saves a file.
const reloadDelay = 100 * time.Millisecond

// Watch reloads the configuration file at path whenever it changes and
// sends each valid result on the returned channel. Invalid files are
// logged and skipped. The channel is closed once ctx is done.
//
// The parent directory is watched rather than the file, so editors that
// save by renaming a temporary file are seen.
func Watch(ctx context.Context, path string, log logging.Logger) (<-chan Options, error) {
	if log == nil {
		log = logging.Discard()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("config: watch %s: %w", filepath.Dir(abs), err)
	}

	out := make(chan Options, 1)
	reloads := make(chan struct{}, 1)
	t := newDebounce(reloadDelay, func() {
		select {
		case reloads <- struct{}{}:
		default:
		}
	})

	go func() {
		defer close(out)
		defer watcher.Close()
		defer t.stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("config watcher error", "path", abs, "error", err)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != abs {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				t.trigger()
			case <-reloads:
				opts, err := Load(abs)
				if err != nil {
					log.Warn("config reload failed", "path", abs, "error", err)
					continue
				}
				log.Info("config reloaded", "path", abs)
				select {
				case out <- opts:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// debounce runs fn once per burst of trigger calls, delay after the first.
type debounce struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
	fn    func()
}

func newDebounce(delay time.Duration, fn func()) *debounce {
	return &debounce{delay: delay, fn: fn}
}

func (d *debounce) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		return
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		d.timer = nil
		d.mu.Unlock()
		d.fn()
	})
}

func (d *debounce) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
