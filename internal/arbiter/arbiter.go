// Package arbiter decides what the sign shows: a tier-1 takeover ticker, a
// tier-2 one-shot ticker cycle, a static card, or nothing. It owns the
// cooldown timer that keeps tier-2 watches from monopolizing the display
// and the alert-active side channel other subsystems observe.
package arbiter

import (
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/matrix-sign/internal/domain"
	"github.com/couchcryptid/matrix-sign/internal/signal"
)

// Mode is the display mode the arbiter has selected.
type Mode int

const (
	// ModeIdle shows static cards (or a clear screen) in normal rotation.
	// Cooldown after a one-shot cycle is idle mode with a future
	// cooldown deadline, not a separate mode.
	ModeIdle Mode = iota
	// ModeTakeover runs the looping tier-1 ticker until no tier-1 alert
	// remains.
	ModeTakeover
	// ModeOneShot runs a single enter-scroll-exit tier-2 ticker pass.
	ModeOneShot
)

func (m Mode) String() string {
	switch m {
	case ModeTakeover:
		return "takeover"
	case ModeOneShot:
		return "oneshot"
	default:
		return "idle"
	}
}

// Arbiter is the display-mode state machine. It is evaluated once per poll
// cycle, never per frame, and all mutation happens synchronously inside
// Evaluate, CompleteOneShot, and Reset.
type Arbiter struct {
	clock    clockwork.Clock
	logger   *slog.Logger
	port     signal.Port
	cooldown time.Duration

	mode          Mode
	cycleStart    time.Time
	cooldownUntil time.Time
	currentKey    string

	alerts  []domain.Classified
	driving *domain.Classified

	hasTier1 bool
	hasTier2 bool
	hasTier3 bool
}

// New creates an idle arbiter. The cooldown duration applies between
// tier-2 one-shot cycles.
func New(clock clockwork.Clock, port signal.Port, cooldown time.Duration, logger *slog.Logger) *Arbiter {
	return &Arbiter{
		clock:    clock,
		logger:   logger,
		port:     port,
		cooldown: cooldown,
	}
}

// Evaluate re-arbitrates against the latest classified alerts, already in
// priority order. Calling it twice with identical input is a no-op on the
// second call: no transition fires and no cycle clock resets unless the
// driving alert's identity changed.
//
// An in-flight one-shot cycle whose driving alert vanished from the feed is
// left to finish on its stale content (the visual cycle completes rather
// than jump-cutting); a newly appearing tier-1 alert still preempts it
// immediately.
func (a *Arbiter) Evaluate(alerts []domain.Classified) {
	now := a.clock.Now()

	a.alerts = alerts
	a.hasTier1 = domain.HasTier(alerts, domain.Tier1)
	a.hasTier2 = domain.HasTier(alerts, domain.Tier2)
	a.hasTier3 = domain.HasTier(alerts, domain.Tier3)

	switch {
	case a.hasTier1:
		a.enterTakeover(alerts[0], now)
	case a.mode == ModeTakeover:
		a.logger.Info("takeover ended, no tier-1 alert remains")
		a.mode = ModeIdle
		a.cycleStart = time.Time{}
		a.currentKey = ""
		a.driving = nil
	}

	if a.mode == ModeIdle && a.hasTier2 && !a.hasTier1 && a.cooldownElapsed(now) {
		a.startOneShot(topOfTier(alerts, domain.Tier2), now)
	}

	a.publishSignal()
}

// enterTakeover switches to (or stays in) takeover mode. Re-entering with
// the same driving alert resets nothing; an identity change mid-takeover
// restarts the cycle clock so the new content scrolls from its beginning.
func (a *Arbiter) enterTakeover(top domain.Classified, now time.Time) {
	key := top.Key()
	if a.mode == ModeTakeover && key == a.currentKey {
		return
	}
	if a.mode == ModeOneShot {
		a.logger.Info("one-shot cycle preempted by tier-1 alert", "kind", top.Kind)
	}
	a.mode = ModeTakeover
	a.cycleStart = now
	a.currentKey = key
	a.driving = &top
	a.logger.Warn("takeover started", "kind", top.Kind, "severity", top.Severity, "weight", top.Weight)
}

func (a *Arbiter) startOneShot(top domain.Classified, now time.Time) {
	a.mode = ModeOneShot
	a.cycleStart = now
	a.currentKey = top.Key()
	a.driving = &top
	a.logger.Info("one-shot ticker cycle starting", "kind", top.Kind)
}

// CompleteOneShot transitions out of a one-shot cycle once the renderer has
// observed the content fully exit the screen. The cooldown clock starts at
// the actual visual completion instant, not at cycle start.
func (a *Arbiter) CompleteOneShot() {
	if a.mode != ModeOneShot {
		return
	}
	now := a.clock.Now()
	a.mode = ModeIdle
	a.cycleStart = time.Time{}
	a.currentKey = ""
	a.driving = nil
	a.cooldownUntil = now.Add(a.cooldown)
	a.publishSignal()
	a.logger.Info("one-shot ticker cycle ended", "cooldown_until", a.cooldownUntil)
}

// Reset returns the arbiter to its initial idle state and removes the
// signal artifact. Used by plugin cleanup.
func (a *Arbiter) Reset() {
	a.mode = ModeIdle
	a.cycleStart = time.Time{}
	a.cooldownUntil = time.Time{}
	a.currentKey = ""
	a.alerts = nil
	a.driving = nil
	a.hasTier1 = false
	a.hasTier2 = false
	a.hasTier3 = false
	if err := a.port.Clear(); err != nil {
		a.logger.Warn("clearing alert signal failed", "error", err)
	}
}

func (a *Arbiter) cooldownElapsed(now time.Time) bool {
	return a.cooldownUntil.IsZero() || !now.Before(a.cooldownUntil)
}

// publishSignal maintains the best-effort alert-active side channel:
// present while a takeover or one-shot cycle holds the display, absent
// otherwise. Publish failures are logged and ignored.
func (a *Arbiter) publishSignal() {
	if a.mode != ModeTakeover && a.mode != ModeOneShot {
		if err := a.port.Clear(); err != nil {
			a.logger.Warn("clearing alert signal failed", "error", err)
		}
		return
	}

	tier := domain.Tier1
	if a.mode == ModeOneShot {
		tier = domain.Tier2
	}
	var kinds []string
	for _, alert := range a.alerts {
		if alert.Tier <= domain.Tier2 {
			kinds = append(kinds, alert.Kind)
		}
	}
	if err := a.port.Write(signal.Status{Active: true, Tier: tier, Events: kinds}); err != nil {
		a.logger.Warn("writing alert signal failed", "error", err)
	}
}

// Mode returns the current display mode.
func (a *Arbiter) Mode() Mode { return a.mode }

// Driving returns a copy of the alert driving the current ticker cycle.
// During a one-shot cycle this may be stale relative to the latest poll.
func (a *Arbiter) Driving() (domain.Classified, bool) {
	if a.driving == nil {
		return domain.Classified{}, false
	}
	return *a.driving, true
}

// CurrentKey is the identity key of the driving alert, empty when idle.
// The renderer compares it against its cached ticker content to decide
// when a rebuild is needed.
func (a *Arbiter) CurrentKey() string { return a.currentKey }

// CycleStart is when the current ticker cycle began, zero when idle.
func (a *Arbiter) CycleStart() time.Time { return a.cycleStart }

// CooldownUntil is the instant a new one-shot cycle may start, zero if no
// cycle has completed yet.
func (a *Arbiter) CooldownUntil() time.Time { return a.cooldownUntil }

// InCooldown reports whether one-shot cycles are currently suppressed.
func (a *Arbiter) InCooldown() bool {
	return !a.cooldownUntil.IsZero() && a.clock.Now().Before(a.cooldownUntil)
}

// Alerts returns the latest classified alerts in priority order.
func (a *Arbiter) Alerts() []domain.Classified { return a.alerts }

// HasTier1 reports whether the latest poll contained a tier-1 alert.
func (a *Arbiter) HasTier1() bool { return a.hasTier1 }

// HasTier2 reports whether the latest poll contained a tier-2 alert.
func (a *Arbiter) HasTier2() bool { return a.hasTier2 }

// HasTier3 reports whether the latest poll contained a tier-3 alert. The
// normal-rotation collaborator queries this to build informational cards.
func (a *Arbiter) HasTier3() bool { return a.hasTier3 }

func topOfTier(alerts []domain.Classified, tier int) domain.Classified {
	for _, a := range alerts {
		if a.Tier == tier {
			return a
		}
	}
	return domain.Classified{}
}
