package render

import (
	"image"
	"image/color"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/matrix-sign/internal/arbiter"
	"github.com/couchcryptid/matrix-sign/internal/domain"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	return New(Config{
		Width:       192,
		Height:      32,
		ScrollSpeed: 40,
		LoopGap:     80,
		Region:      "San Saba County",
	}, slog.Default())
}

func classifiedAlert(kind string, severity domain.Severity) domain.Classified {
	tier, weight := domain.Classify(kind)
	return domain.Classified{
		Alert:  domain.Alert{ID: "id-" + kind, Kind: kind, Severity: severity, Areas: "San Saba"},
		Tier:   tier,
		Weight: weight,
	}
}

func TestRender_TakeoverFrame(t *testing.T) {
	r := newTestRenderer(t)
	now := time.Date(2024, 4, 26, 18, 0, 0, 0, time.UTC)
	warning := classifiedAlert("Tornado Warning", domain.SeverityExtreme)

	v := View{
		Mode:       arbiter.ModeTakeover,
		Driving:    warning,
		HasDriving: true,
		ContentKey: warning.Key(),
		Alerts:     []domain.Classified{warning},
	}

	res := r.Render(v, now)

	require.NotNil(t, res.Frame)
	assert.False(t, res.CycleComplete)
	assert.Equal(t, 192, res.Frame.Bounds().Dx())
	assert.Equal(t, 32, res.Frame.Bounds().Dy())

	// Chevron bars carry red pixels somewhere in the top bar.
	assert.True(t, rowHasColor(res.Frame, 4, chevronTier1), "top bar has red chevron pixels")

	// A later frame at the same key reuses the strip and stays in motion.
	res2 := r.Render(v, now.Add(2*time.Second))
	require.NotNil(t, res2.Frame)
	assert.Equal(t, now, r.Scroll().Start, "same key keeps the scroll clock")
	assert.Equal(t, -80, r.Scroll().LoopOffset(now.Add(2*time.Second)), "2s at 40 px/s")
}

func TestRender_TickerRebuildOnIdentityChange(t *testing.T) {
	r := newTestRenderer(t)
	now := time.Date(2024, 4, 26, 18, 0, 0, 0, time.UTC)
	warning := classifiedAlert("Tornado Warning", domain.SeverityExtreme)

	v := View{Mode: arbiter.ModeTakeover, Driving: warning, HasDriving: true, ContentKey: warning.Key()}
	r.Render(v, now)
	firstStart := r.Scroll().Start

	// Same key ten seconds later: no rebuild.
	r.Render(v, now.Add(10*time.Second))
	assert.Equal(t, firstStart, r.Scroll().Start)

	// New identity: strip rebuilds and the scroll clock restarts.
	replacement := warning
	replacement.ID = "id-replacement"
	v.Driving = replacement
	v.ContentKey = replacement.Key()
	r.Render(v, now.Add(20*time.Second))
	assert.Equal(t, now.Add(20*time.Second), r.Scroll().Start)
}

func TestRender_OneShotCompletion(t *testing.T) {
	r := newTestRenderer(t)
	start := time.Date(2024, 4, 26, 18, 0, 0, 0, time.UTC)
	watch := classifiedAlert("Tornado Watch", domain.SeveritySevere)

	v := View{
		Mode:       arbiter.ModeOneShot,
		Driving:    watch,
		HasDriving: true,
		ContentKey: watch.Key(),
		Alerts:     []domain.Classified{watch},
	}

	// First frame builds the strip; not yet complete.
	res := r.Render(v, start)
	require.False(t, res.CycleComplete)
	assert.True(t, rowHasColor(res.Frame, 4, chevronTier2), "top bar has yellow chevron pixels")

	contentWidth := r.Scroll().ContentWidth
	require.Positive(t, contentWidth)

	// Just before full exit: still scrolling.
	almost := start.Add(time.Duration(float64(192+contentWidth)/40*float64(time.Second)) - 100*time.Millisecond)
	res = r.Render(v, almost)
	assert.False(t, res.CycleComplete)

	// After full exit: completion is signaled and the same frame already
	// shows the fallback watch card, never a blank.
	after := start.Add(time.Duration(float64(192+contentWidth)/40*float64(time.Second)) + 100*time.Millisecond)
	res = r.Render(v, after)
	assert.True(t, res.CycleComplete)
	assert.Equal(t, watchBar, res.Frame.RGBAAt(1, 16), "yellow watch bar on the fallback card")
}

func TestRender_IdleStates(t *testing.T) {
	r := newTestRenderer(t)
	now := time.Date(2024, 4, 26, 18, 0, 0, 0, time.UTC)

	t.Run("tier-2 watch card", func(t *testing.T) {
		watch := classifiedAlert("Tornado Watch", domain.SeveritySevere)
		res := r.Render(View{Mode: arbiter.ModeIdle, Alerts: []domain.Classified{watch}}, now)
		assert.Equal(t, watchBar, res.Frame.RGBAAt(1, 16))
	})

	t.Run("tier-3 info card", func(t *testing.T) {
		advisory := classifiedAlert("Wind Advisory", domain.SeverityMinor)
		res := r.Render(View{Mode: arbiter.ModeIdle, Alerts: []domain.Classified{advisory}}, now)
		// Minor severity border.
		assert.Equal(t, color.RGBA{100, 100, 255, 255}, res.Frame.RGBAAt(0, 0))
	})

	t.Run("clear card when configured", func(t *testing.T) {
		res := r.Render(View{Mode: arbiter.ModeIdle, ShowClear: true}, now)
		assert.Equal(t, color.RGBA{0, 80, 0, 255}, res.Frame.RGBAAt(0, 0))
	})

	t.Run("blank frame otherwise", func(t *testing.T) {
		res := r.Render(View{Mode: arbiter.ModeIdle}, now)
		assert.Equal(t, color.RGBA{0, 0, 0, 255}, res.Frame.RGBAAt(0, 0))
		assert.Equal(t, color.RGBA{0, 0, 0, 255}, res.Frame.RGBAAt(96, 16))
	})
}

func TestRender_MalformedAlertNeverPanics(t *testing.T) {
	r := newTestRenderer(t)
	now := time.Unix(1714154400, 0)

	// Zero-value driving alert: missing kind, severity, timestamps.
	v := View{Mode: arbiter.ModeTakeover, HasDriving: false, ContentKey: ""}
	assert.NotPanics(t, func() {
		res := r.Render(v, now)
		require.NotNil(t, res.Frame)
	})

	// Unknown kind still renders a card.
	odd := domain.Classified{Alert: domain.Alert{Kind: "Volcano Warning"}, Tier: 3, Weight: 1}
	assert.NotPanics(t, func() {
		r.Render(View{Mode: arbiter.ModeIdle, Alerts: []domain.Classified{odd}}, now)
	})
}

func TestRender_TestStamp(t *testing.T) {
	r := newTestRenderer(t)
	now := time.Unix(1714154400, 0)

	res := r.Render(View{Mode: arbiter.ModeIdle, ShowClear: true, Injected: true}, now)

	assert.True(t, rowHasColor(res.Frame, 1, testPink), "TEST stamp drawn in injected mode")
}

func TestRotationCards(t *testing.T) {
	r := newTestRenderer(t)
	now := time.Unix(1714154400, 0)

	alerts := []domain.Classified{
		classifiedAlert("Tornado Warning", domain.SeverityExtreme), // tier 1: no rotation card
		classifiedAlert("Tornado Watch", domain.SeveritySevere),
		classifiedAlert("Wind Advisory", domain.SeverityMinor),
		classifiedAlert("Frost Advisory", domain.SeverityMinor),
	}

	cards := r.RotationCards(alerts, now)

	assert.Len(t, cards, 3, "one card per tier-2/tier-3 alert")
}

func TestInvalidateTicker(t *testing.T) {
	r := newTestRenderer(t)
	now := time.Unix(1714154400, 0)
	warning := classifiedAlert("Tornado Warning", domain.SeverityExtreme)

	r.Render(View{Mode: arbiter.ModeTakeover, Driving: warning, HasDriving: true, ContentKey: warning.Key()}, now)
	require.NotZero(t, r.Scroll().ContentWidth)

	r.InvalidateTicker()

	assert.Zero(t, r.Scroll().ContentWidth)
}

// rowHasColor reports whether any pixel in the given row matches c.
func rowHasColor(img *image.RGBA, y int, c color.RGBA) bool {
	b := img.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		if img.RGBAAt(x, y) == c {
			return true
		}
	}
	return false
}
