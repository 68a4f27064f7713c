// Package display pushes rendered frames to an output device. The real
// LED panel is driven by an external process reading frames; this package
// provides the sink abstraction plus a PNG sink for headless use.
package display

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
)

// Sink receives frames in display order.
type Sink interface {
	Push(frame *image.RGBA) error
	Close() error
}

// FrameSource produces the next frame to show.
type FrameSource interface {
	RenderFrame() *image.RGBA
}

// Loop drives a FrameSource into a Sink at a fixed frame rate.
type Loop struct {
	source   FrameSource
	sink     Sink
	interval time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
}

// NewLoop creates a display loop running at the given frames per second.
func NewLoop(source FrameSource, sink Sink, fps int, clock clockwork.Clock, logger *slog.Logger) *Loop {
	return &Loop{
		source:   source,
		sink:     sink,
		interval: time.Second / time.Duration(fps),
		clock:    clock,
		logger:   logger,
	}
}

// Run pushes frames until the context is cancelled. Sink errors are
// logged and the loop keeps going; a dropped frame is better than a dead
// sign.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info("display loop started", "frame_interval", l.interval)

	ticker := l.clock.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("display loop stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			if err := l.sink.Push(l.source.RenderFrame()); err != nil {
				l.logger.Error("frame push failed", "error", err)
			}
		}
	}
}

// PNGSink writes each pushed frame as a numbered PNG under a directory.
// Used by the offline preview command and in environments without a panel.
type PNGSink struct {
	dir string
	n   int
}

// NewPNGSink creates the output directory if needed.
func NewPNGSink(dir string) (*PNGSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create frame dir: %w", err)
	}
	return &PNGSink{dir: dir}, nil
}

func (s *PNGSink) Push(frame *image.RGBA) error {
	path := filepath.Join(s.dir, fmt.Sprintf("frame_%05d.png", s.n))
	s.n++

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, frame); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func (s *PNGSink) Close() error { return nil }

// DiscardSink drops frames. Useful when only the signal artifact and the
// HTTP surface matter.
type DiscardSink struct{}

func (DiscardSink) Push(*image.RGBA) error { return nil }
func (DiscardSink) Close() error           { return nil }
