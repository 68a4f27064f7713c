// Package inject watches a scenario file and overrides the live alert
// feed with its contents while the file exists. Operators drop a JSON
// array of alerts into the file to exercise the sign end to end; frames
// driven by injected data carry a TEST stamp.
package inject

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/couchcryptid/matrix-sign/internal/domain"
)

// Watcher tracks a scenario file. The watch is on the containing
// directory, not the file, so injection works when the file does not
// exist yet and clears when it is removed.
type Watcher struct {
	path   string
	logger *slog.Logger

	mu     sync.RWMutex
	alerts []domain.Alert
	active bool
}

// NewWatcher creates a watcher for the given scenario file path and loads
// it once if it already exists.
func NewWatcher(path string, logger *slog.Logger) *Watcher {
	w := &Watcher{path: path, logger: logger}
	if err := w.reload(); err != nil {
		logger.Warn("scenario file unreadable at startup", "path", path, "error", err)
	}
	return w
}

// Run watches the scenario file until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.logger.Info("scenario watcher started", "path", w.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Name != w.path {
				continue
			}
			switch {
			case event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename):
				w.clear()
			case event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write):
				if err := w.reload(); err != nil {
					w.logger.Warn("scenario file unreadable", "path", w.path, "error", err)
				}
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("scenario watcher error", "error", err)
		}
	}
}

// Active returns the injected alert set and whether injection is live.
func (w *Watcher) Active() ([]domain.Alert, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.active {
		return nil, false
	}
	out := make([]domain.Alert, len(w.alerts))
	copy(out, w.alerts)
	return out, true
}

// reload parses the scenario file. A missing file deactivates injection; a
// malformed file leaves the previous state in place and returns the error.
func (w *Watcher) reload() error {
	data, err := os.ReadFile(w.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			w.clear()
			return nil
		}
		return err
	}

	var alerts []domain.Alert
	if err := json.Unmarshal(data, &alerts); err != nil {
		return fmt.Errorf("decode scenario: %w", err)
	}

	w.mu.Lock()
	w.alerts = alerts
	w.active = true
	w.mu.Unlock()
	w.logger.Info("scenario alerts injected", "path", w.path, "alerts", len(alerts))
	return nil
}

func (w *Watcher) clear() {
	w.mu.Lock()
	wasActive := w.active
	w.alerts = nil
	w.active = false
	w.mu.Unlock()
	if wasActive {
		w.logger.Info("scenario alerts cleared", "path", w.path)
	}
}
