// Package engine orchestrates the sign: it polls the alert feed on its
// own cadence, re-evaluates display priority on a faster throttle, and
// renders frames at whatever rate the display asks for. Fetching,
// evaluation, and rendering are deliberately decoupled so a slow feed
// never stalls the animation.
package engine

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/matrix-sign/internal/arbiter"
	"github.com/couchcryptid/matrix-sign/internal/domain"
	"github.com/couchcryptid/matrix-sign/internal/feed"
	"github.com/couchcryptid/matrix-sign/internal/observability"
	"github.com/couchcryptid/matrix-sign/internal/render"
)

// Injector reports scenario alerts that override the live feed.
type Injector interface {
	Active() ([]domain.Alert, bool)
}

// noInjector is used when injection is disabled.
type noInjector struct{}

func (noInjector) Active() ([]domain.Alert, bool) { return nil, false }

// Options configures an Engine.
type Options struct {
	Source         feed.Source
	Injector       Injector // nil disables injection
	PollInterval   time.Duration
	UpdateInterval time.Duration
}

// Engine owns the arbiter and renderer and serializes access to them.
// Tick runs on the engine's own loop; RenderFrame runs on the display's.
type Engine struct {
	source         feed.Source
	injector       Injector
	arb            *arbiter.Arbiter
	renderer       *render.Renderer
	clock          clockwork.Clock
	logger         *slog.Logger
	metrics        *observability.Metrics
	pollInterval   time.Duration
	updateInterval time.Duration

	mu        sync.Mutex
	cached    []domain.Alert
	lastFetch time.Time
	injected  bool
	showClear bool

	ready atomic.Bool
}

// New creates an Engine around an already-constructed arbiter and renderer.
func New(opts Options, arb *arbiter.Arbiter, renderer *render.Renderer, showClear bool,
	clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Engine {
	injector := opts.Injector
	if injector == nil {
		injector = noInjector{}
	}
	return &Engine{
		source:         opts.Source,
		injector:       injector,
		arb:            arb,
		renderer:       renderer,
		clock:          clock,
		logger:         logger,
		metrics:        metrics,
		pollInterval:   opts.PollInterval,
		updateInterval: opts.UpdateInterval,
		showClear:      showClear,
	}
}

// CheckReadiness returns nil once the engine has completed at least one
// evaluation, so the sign never reports ready while still dark.
func (e *Engine) CheckReadiness(_ context.Context) error {
	if !e.ready.Load() {
		return errors.New("no alert evaluation completed yet")
	}
	return nil
}

// Run re-evaluates on the update throttle until the context is cancelled.
// The feed itself is only polled once per poll interval; between polls the
// cached alert set is re-evaluated so expirations and cooldown deadlines
// take effect without waiting for the next fetch.
func (e *Engine) Run(ctx context.Context) error {
	e.logger.Info("engine started",
		"poll_interval", e.pollInterval, "update_interval", e.updateInterval)

	ticker := e.clock.NewTicker(e.updateInterval)
	defer ticker.Stop()

	e.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			e.logger.Info("engine stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			e.Tick(ctx)
		}
	}
}

// Tick runs one evaluation pass: refresh the alert set if due, drop
// expired alerts, and hand the classified set to the arbiter.
func (e *Engine) Tick(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	e.refreshAlerts(ctx, now)

	live := dropExpired(e.cached, now)
	classified := domain.ClassifyAll(live)
	e.arb.Evaluate(classified)
	e.updateAlertGauges(classified)
	e.ready.Store(true)
}

// refreshAlerts updates e.cached and e.injected. Injection always wins
// while the scenario file is present; otherwise the feed is polled when
// the poll interval has elapsed.
func (e *Engine) refreshAlerts(ctx context.Context, now time.Time) {
	if alerts, ok := e.injector.Active(); ok {
		e.cached = alerts
		e.injected = true
		e.metrics.InjectedActive.Set(1)
		return
	}
	if e.injected {
		// Injection just ended; force a real poll.
		e.injected = false
		e.cached = nil
		e.lastFetch = time.Time{}
		e.metrics.InjectedActive.Set(0)
	}

	if !e.lastFetch.IsZero() && now.Sub(e.lastFetch) < e.pollInterval {
		return
	}
	e.lastFetch = now

	e.metrics.Polls.Inc()
	start := e.clock.Now()
	alerts, err := e.source.Fetch(ctx)
	e.metrics.FetchDuration.Observe(e.clock.Since(start).Seconds())
	if err != nil {
		e.metrics.FetchErrors.Inc()
		e.logger.Error("alert fetch failed, keeping previous set",
			"error", err, "cached", len(e.cached))
		return
	}
	e.cached = alerts
}

// RenderFrame draws one frame at the display's request. When a one-shot
// cycle completes, the arbiter is notified in the same call so the
// cooldown starts at the visual completion instant, not the next poll.
func (e *Engine) RenderFrame() *image.RGBA {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	driving, hasDriving := e.arb.Driving()
	v := render.View{
		Mode:       e.arb.Mode(),
		Driving:    driving,
		HasDriving: hasDriving,
		ContentKey: e.arb.CurrentKey(),
		Alerts:     e.arb.Alerts(),
		Injected:   e.injected,
		ShowClear:  e.showClear,
	}

	res := e.renderer.Render(v, now)
	e.metrics.FramesRendered.WithLabelValues(v.Mode.String()).Inc()
	if res.CycleComplete {
		e.arb.CompleteOneShot()
		e.metrics.OneShotCycles.Inc()
		// Drop the cached strip so a later cycle for the same alert
		// scrolls in from the right edge instead of inheriting this
		// cycle's scroll clock and finishing on its first frame.
		e.renderer.InvalidateTicker()
	}
	e.metrics.TakeoverActive.Set(boolGauge(e.arb.Mode() == arbiter.ModeTakeover))
	return res.Frame
}

// RotationCards returns the static cards for the normal rotation.
func (e *Engine) RotationCards() []*image.RGBA {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.renderer.RotationCards(e.arb.Alerts(), e.clock.Now())
}

// Status is the /statusz snapshot.
type Status struct {
	Mode          string    `json:"mode"`
	Tier1         bool      `json:"tier1"`
	Tier2         bool      `json:"tier2"`
	Tier3         bool      `json:"tier3"`
	Injected      bool      `json:"injected"`
	CooldownUntil time.Time `json:"cooldown_until,omitzero"`
	AlertKinds    []string  `json:"alert_kinds"`
}

// Status reports the engine's current decision for the /statusz endpoint.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	alerts := e.arb.Alerts()
	kinds := make([]string, 0, len(alerts))
	for _, a := range alerts {
		kinds = append(kinds, a.Kind)
	}
	return Status{
		Mode:          e.arb.Mode().String(),
		Tier1:         e.arb.HasTier1(),
		Tier2:         e.arb.HasTier2(),
		Tier3:         e.arb.HasTier3(),
		Injected:      e.injected,
		CooldownUntil: e.arb.CooldownUntil(),
		AlertKinds:    kinds,
	}
}

// Cleanup returns the sign to a cold state: arbiter reset, signal file
// removed, ticker cache dropped.
func (e *Engine) Cleanup() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.arb.Reset()
	e.renderer.InvalidateTicker()
	e.cached = nil
	e.lastFetch = time.Time{}
	e.metrics.TakeoverActive.Set(0)
	e.logger.Info("engine cleaned up")
}

func (e *Engine) updateAlertGauges(alerts []domain.Classified) {
	counts := map[int]int{}
	for _, a := range alerts {
		counts[a.Tier]++
	}
	for tier := domain.Tier1; tier <= domain.Tier3; tier++ {
		e.metrics.ActiveAlerts.WithLabelValues(strconv.Itoa(tier)).Set(float64(counts[tier]))
	}
}

// dropExpired removes alerts whose hazard window has passed. Alerts
// without an expiry are kept; the feed is the authority on their removal.
func dropExpired(alerts []domain.Alert, now time.Time) []domain.Alert {
	out := alerts[:0:0]
	for _, a := range alerts {
		if !a.Expires.IsZero() && !a.Expires.After(now) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
