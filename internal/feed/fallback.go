package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/matrix-sign/internal/domain"
)

const snapshotFile = "alerts_snapshot.json"

// Fallback wraps a Source with a disk snapshot of the last successful
// fetch. When the inner source fails, the snapshot is served instead so a
// flaky network does not blank an active warning mid-storm. Snapshots
// older than maxAge are not served; a maxAge of zero disables the limit.
type Fallback struct {
	inner  Source
	path   string
	maxAge time.Duration
	clock  clockwork.Clock
	logger *slog.Logger
}

// snapshot is the on-disk format: the alert set plus when it was fetched.
type snapshot struct {
	FetchedAt time.Time      `json:"fetched_at"`
	Alerts    []domain.Alert `json:"alerts"`
}

// NewFallback creates a snapshot decorator storing its file under dir.
func NewFallback(inner Source, dir string, maxAge time.Duration, clock clockwork.Clock, logger *slog.Logger) *Fallback {
	return &Fallback{
		inner:  inner,
		path:   filepath.Join(dir, snapshotFile),
		maxAge: maxAge,
		clock:  clock,
		logger: logger,
	}
}

// Fetch delegates to the inner source, persisting successes and serving
// the last snapshot on failure. Persistence errors are logged, never
// returned: a working fetch must not fail because the disk is full.
func (f *Fallback) Fetch(ctx context.Context) ([]domain.Alert, error) {
	alerts, err := f.inner.Fetch(ctx)
	if err == nil {
		f.persist(alerts)
		return alerts, nil
	}

	snap, loadErr := f.load()
	if loadErr != nil {
		if !errors.Is(loadErr, fs.ErrNotExist) {
			f.logger.Warn("alert snapshot unreadable", "path", f.path, "error", loadErr)
		}
		return nil, err
	}

	age := f.clock.Since(snap.FetchedAt)
	if f.maxAge > 0 && age > f.maxAge {
		f.logger.Warn("alert snapshot too stale to serve",
			"age", age.Round(time.Second), "max_age", f.maxAge, "error", err)
		return nil, err
	}

	f.logger.Warn("fetch failed, serving alert snapshot",
		"age", age.Round(time.Second), "alerts", len(snap.Alerts), "error", err)
	return snap.Alerts, nil
}

func (f *Fallback) persist(alerts []domain.Alert) {
	data, err := json.Marshal(snapshot{FetchedAt: f.clock.Now().UTC(), Alerts: alerts})
	if err != nil {
		f.logger.Warn("alert snapshot encode failed", "error", err)
		return
	}

	// Write-then-rename so a crash mid-write never leaves a torn snapshot.
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".snapshot-*")
	if err != nil {
		f.logger.Warn("alert snapshot write failed", "error", err)
		return
	}
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		os.Remove(tmp.Name())
		f.logger.Warn("alert snapshot write failed", "error", errors.Join(werr, cerr))
		return
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		f.logger.Warn("alert snapshot write failed", "error", err)
	}
}

func (f *Fallback) load() (snapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return snapshot{}, err
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return snapshot{}, fmt.Errorf("decode snapshot %s: %w", f.path, err)
	}
	return snap, nil
}
