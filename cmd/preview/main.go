// Command preview renders a scenario offline to numbered PNG frames, for
// checking the ticker and card layouts without a panel or a live feed.
// Time is driven by a fake clock stepped at the frame interval, so output
// is reproducible.
//
// Usage:
//
//	go run ./cmd/preview -scenario tornado -out /tmp/frames -seconds 10 -fps 25
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/matrix-sign/internal/arbiter"
	"github.com/couchcryptid/matrix-sign/internal/display"
	"github.com/couchcryptid/matrix-sign/internal/domain"
	"github.com/couchcryptid/matrix-sign/internal/engine"
	"github.com/couchcryptid/matrix-sign/internal/feed"
	"github.com/couchcryptid/matrix-sign/internal/observability"
	"github.com/couchcryptid/matrix-sign/internal/render"
	"github.com/couchcryptid/matrix-sign/internal/scenario"
	"github.com/couchcryptid/matrix-sign/internal/signal"
)

var baseTime = time.Date(2024, time.April, 26, 18, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	name := flag.String("scenario", "tornado", fmt.Sprintf("scenario to render: %v", scenario.Names()))
	out := flag.String("out", "frames", "output directory for PNG frames")
	seconds := flag.Float64("seconds", 10, "simulated duration")
	fps := flag.Int("fps", 25, "frames per simulated second")
	width := flag.Int("width", 192, "panel width in pixels")
	height := flag.Int("height", 32, "panel height in pixels")
	flag.Parse()

	alerts, err := scenario.Build(*name, baseTime)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := clockwork.NewFakeClockAt(baseTime)
	arb := arbiter.New(clock, signal.NewMemoryPort(), 1800*time.Second, logger)
	renderer := render.New(render.Config{
		Width:       *width,
		Height:      *height,
		ScrollSpeed: 40,
		LoopGap:     80,
		Region:      "Preview County",
	}, logger)

	eng := engine.New(engine.Options{
		Source: feed.SourceFunc(func(context.Context) ([]domain.Alert, error) {
			return alerts, nil
		}),
		PollInterval:   120 * time.Second,
		UpdateInterval: 2 * time.Second,
	}, arb, renderer, true, clock, observability.NewMetricsForTesting(), logger)

	sink, err := display.NewPNGSink(*out)
	if err != nil {
		return err
	}

	frameStep := time.Second / time.Duration(*fps)
	frames := int(*seconds * float64(*fps))
	ctx := context.Background()

	eng.Tick(ctx)
	for i := 0; i < frames; i++ {
		if err := sink.Push(eng.RenderFrame()); err != nil {
			return err
		}
		clock.Advance(frameStep)
		if i%(*fps*2) == 0 {
			eng.Tick(ctx)
		}
	}

	st := eng.Status()
	fmt.Printf("rendered %d frames of %q to %s (final mode: %s)\n", frames, *name, *out, st.Mode)
	return nil
}
