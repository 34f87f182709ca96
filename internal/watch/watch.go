// SPDX-License-Identifier: MIT

// Package watch observes the daemon's config file for changes made outside
// the dashboard (hand edits, other tools) so operators can see that the text
// in the editor is stale. It never reloads or parses anything.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	xglog "github.com/mofeiss/metacubexd/internal/log"
)

var (
	fileChangesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mcd_config_file_changes_total",
		Help: "Changes observed on the config file, from any writer",
	})

	fileMTimeSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mcd_config_file_mtime_seconds",
		Help: "Modification time of the config file as a Unix timestamp",
	})
)

// Watcher follows one config file. The parent directory is watched rather
// than the file itself: atomic writes replace the inode, which would silently
// detach a file-level watch.
type Watcher struct {
	path string
	fw   *fsnotify.Watcher
}

// New sets up a watcher for the file at path. The parent directory must
// exist.
func New(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	return &Watcher{path: path, fw: fw}, nil
}

// Run blocks until ctx is done, logging and counting every change to the
// watched file. Watch errors are logged and the loop continues; only ctx
// cancellation or watcher closure ends it.
func (w *Watcher) Run(ctx context.Context) error {
	logger := xglog.WithComponent("watch")
	w.touchMTime()

	for {
		select {
		case <-ctx.Done():
			return w.fw.Close()
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if ev.Name != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			fileChangesTotal.Inc()
			w.touchMTime()
			logger.Info().
				Str("event", "config.file_changed").
				Str("path", w.path).
				Str("op", ev.Op.String()).
				Msg("config file changed on disk")
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watch error")
		}
	}
}

func (w *Watcher) touchMTime() {
	if info, err := os.Stat(w.path); err == nil {
		fileMTimeSeconds.Set(float64(info.ModTime().Unix()))
	}
}
