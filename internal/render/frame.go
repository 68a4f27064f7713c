// Package render turns the arbiter's current decision into bitmap frames
// for the matrix. Rendering is pure with respect to its inputs apart from
// two documented exceptions: the ticker strip cache (rebuilt when the
// driving alert's identity changes or after InvalidateTicker) and the
// one-shot completion signal surfaced through Result.CycleComplete.
//
// Render performs no I/O and never sleeps; it is safe to call at whatever
// rate the display refreshes because all animation derives from the `now`
// argument, not from call counts.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"time"

	"github.com/couchcryptid/matrix-sign/internal/arbiter"
	"github.com/couchcryptid/matrix-sign/internal/domain"
	"github.com/couchcryptid/matrix-sign/internal/ticker"
)

// Ticker band geometry on the 32 px panel: chevron bars top and bottom,
// black text band between.
const (
	bandTop    = 10
	bandBottom = 22
	bandTextY  = 13
)

// View is the read-only snapshot of arbiter state a frame is drawn from.
type View struct {
	Mode       arbiter.Mode
	Driving    domain.Classified
	HasDriving bool
	ContentKey string // identity key of the driving alert, "" when idle
	Alerts     []domain.Classified
	Injected   bool // scenario data; frames get the TEST stamp
	ShowClear  bool // draw the all-clear card instead of a blank frame
}

// Result is one rendered frame plus the one-shot completion signal. When
// CycleComplete is true the frame already shows the post-cycle fallback
// card, so no blank frame is ever handed to the display.
type Result struct {
	Frame         *image.RGBA
	CycleComplete bool
}

// Renderer draws frames for one sign. It owns the pre-rendered ticker
// strip cache; everything else it reads through View.
type Renderer struct {
	width  int
	height int
	face   Face
	speed  float64 // ticker scroll speed, px/s
	gap    int     // gap between looping ticker copies, px
	region string  // label shown on the all-clear card
	logger *slog.Logger

	// Cached ticker content, keyed by mode-qualified alert identity.
	stripKey string
	strip    *image.RGBA
	scroll   ticker.State
}

// Config holds renderer geometry and animation settings.
type Config struct {
	Width       int
	Height      int
	ScrollSpeed float64
	LoopGap     int
	Region      string
}

// New creates a Renderer with the embedded 4x6 face.
func New(cfg Config, logger *slog.Logger) *Renderer {
	return &Renderer{
		width:  cfg.Width,
		height: cfg.Height,
		face:   NewFace4x6(),
		speed:  cfg.ScrollSpeed,
		gap:    cfg.LoopGap,
		region: cfg.Region,
		logger: logger,
	}
}

// Render draws one frame for the given view at the given instant.
func (r *Renderer) Render(v View, now time.Time) Result {
	img := r.blankFrame()
	res := Result{Frame: img}

	switch v.Mode {
	case arbiter.ModeTakeover:
		r.renderLoopTicker(img, v, now)
	case arbiter.ModeOneShot:
		res.CycleComplete = r.renderOneShotTicker(img, v, now)
	default:
		r.renderIdle(img, v, now)
	}

	if v.Injected {
		r.drawTestStamp(img)
	}
	return res
}

// InvalidateTicker drops the cached ticker strip. Used by cleanup.
func (r *Renderer) InvalidateTicker() {
	r.stripKey = ""
	r.strip = nil
	r.scroll = ticker.State{}
}

func (r *Renderer) blankFrame() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	FillRect(img, 0, 0, r.width, r.height, color.RGBA{0, 0, 0, 255})
	return img
}

// renderLoopTicker draws the tier-1 takeover frame: red chevrons plus the
// seamlessly looping ticker. Copies of the strip are tiled from the
// primary offset until the right edge is covered, so even very short
// content never leaves a dark hole.
func (r *Renderer) renderLoopTicker(img *image.RGBA, v View, now time.Time) {
	alert := r.drivingAlert(v)
	r.ensureStrip("loop:"+v.ContentKey, alert, now)

	ChevronStripes(img, now, chevronTier1)
	FillRect(img, 0, bandTop, r.width, bandBottom, color.RGBA{0, 0, 0, 255})

	offset := r.scroll.LoopOffset(now)
	for x := offset; x < r.width; x += r.scroll.LoopWidth() {
		r.blitStrip(img, x)
	}
}

// renderOneShotTicker draws one frame of the tier-2 single-pass ticker.
// Returns true at the instant the content has fully exited the screen; the
// same frame then shows the static watch card so the display never goes
// blank between the cycle and the fallback.
func (r *Renderer) renderOneShotTicker(img *image.RGBA, v View, now time.Time) bool {
	alert := r.drivingAlert(v)
	r.ensureStrip("oneshot:"+v.ContentKey, alert, now)

	if r.scroll.OneShotDone(now, r.width) {
		r.drawWatchCard(img, alert, now)
		return true
	}

	ChevronStripes(img, now, chevronTier2)
	FillRect(img, 0, bandTop, r.width, bandBottom, color.RGBA{0, 0, 0, 255})
	r.blitStrip(img, r.scroll.OneShotOffset(now, r.width))
	return false
}

// renderIdle draws the static state: the top alert's card if any alert is
// active, otherwise the all-clear card or a blank frame.
func (r *Renderer) renderIdle(img *image.RGBA, v View, now time.Time) {
	if len(v.Alerts) > 0 {
		top := v.Alerts[0]
		if top.Tier <= domain.Tier2 {
			r.drawWatchCard(img, top.Alert, now)
		} else {
			r.drawInfoCard(img, top.Alert, now)
		}
		return
	}
	if v.ShowClear {
		r.drawClearCard(img)
	}
}

// RotationCards renders the static cards the normal-rotation collaborator
// cycles through while no ticker holds the display: one watch card per
// tier-2 alert and one info card per tier-3 alert.
func (r *Renderer) RotationCards(alerts []domain.Classified, now time.Time) []*image.RGBA {
	var cards []*image.RGBA
	for _, alert := range alerts {
		switch alert.Tier {
		case domain.Tier2:
			img := r.blankFrame()
			r.drawWatchCard(img, alert.Alert, now)
			cards = append(cards, img)
		case domain.Tier3:
			img := r.blankFrame()
			r.drawInfoCard(img, alert.Alert, now)
			cards = append(cards, img)
		}
	}
	return cards
}

// drivingAlert returns the alert the ticker should show, degrading to the
// top sorted alert and then to a zero alert (which renders placeholder
// text) rather than failing.
func (r *Renderer) drivingAlert(v View) domain.Alert {
	if v.HasDriving {
		return v.Driving.Alert
	}
	if len(v.Alerts) > 0 {
		return v.Alerts[0].Alert
	}
	return domain.Alert{}
}

// ensureStrip rebuilds the pre-rendered ticker strip when the driving
// alert's identity changed or no content exists. The scroll clock restarts
// at `now` on every rebuild.
func (r *Renderer) ensureStrip(key string, alert domain.Alert, now time.Time) {
	if r.strip != nil && r.stripKey == key {
		return
	}

	segments := ticker.Build(alert, now)
	width := 0
	for _, seg := range segments {
		width += TextWidth(r.face, seg.Text)
	}
	if width == 0 {
		width = r.face.Advance()
	}

	strip := image.NewRGBA(image.Rect(0, 0, width, r.face.Height()))
	x := 0
	for _, seg := range segments {
		DrawText(strip, r.face, x, 0, seg.Text, seg.Color)
		x += TextWidth(r.face, seg.Text)
	}

	r.strip = strip
	r.stripKey = key
	r.scroll = ticker.State{
		ContentWidth: width,
		Gap:          r.gap,
		Speed:        r.speed,
		Start:        now,
	}
	r.logger.Debug("ticker strip rebuilt", "key", key, "width_px", width)
}

// blitStrip copies the ticker strip into the text band at the given x
// offset, clipped to the frame.
func (r *Renderer) blitStrip(img *image.RGBA, x int) {
	if r.strip == nil {
		return
	}
	b := r.strip.Bounds()
	dst := image.Rect(x, bandTextY, x+b.Dx(), bandTextY+b.Dy())
	draw.Draw(img, dst, r.strip, b.Min, draw.Over)
}

// Scroll exposes the current scroll state for status reporting and tests.
func (r *Renderer) Scroll() ticker.State { return r.scroll }
