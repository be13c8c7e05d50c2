// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/n3t-labs/n3t-tui/internal/logger"
)

// watchDebounce collapses the burst of events an editor save produces
// into a single reload.
const watchDebounce = 250 * time.Millisecond

// Watcher reloads the global config when the file on disk changes and
// notifies the callback after each successful reload.
type Watcher struct {
	watcher  *fsnotify.Watcher
	onReload func(*Config)
	cancel   context.CancelFunc

	mu      sync.Mutex
	pending time.Time
}

// NewWatcher creates a watcher for the config file. The callback runs on
// the watcher goroutine after every successful reload.
func NewWatcher(onReload func(*Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{watcher: fw, onReload: onReload}, nil
}

// Watch starts watching. It watches the config directory rather than the
// file itself: atomic saves replace the file, which would drop a file-level
// watch on every write.
func (w *Watcher) Watch(ctx context.Context) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := w.watcher.Add(dir); err != nil {
		return err
	}

	ctx, w.cancel = context.WithCancel(ctx)
	go w.processEvents(ctx)
	go w.processPending(ctx)
	return nil
}

func (w *Watcher) processEvents(ctx context.Context) {
	path, err := ConfigPath()
	if err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.mu.Lock()
			w.pending = time.Now()
			w.mu.Unlock()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.L().Warn("config watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) processPending(ctx context.Context) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.mu.Lock()
			due := !w.pending.IsZero() && time.Since(w.pending) >= watchDebounce
			if due {
				w.pending = time.Time{}
			}
			w.mu.Unlock()
			if !due {
				continue
			}

			if err := ReloadGlobal(); err != nil {
				logger.L().Warn("config reload failed", zap.Error(err))
				continue
			}
			logger.L().Info("config reloaded")
			if w.onReload != nil {
				w.onReload(Global())
			}
		}
	}
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	if w.cancel != nil {
		w.cancel()
	}
	return w.watcher.Close()
}
