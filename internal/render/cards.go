package render

import (
	"image"
	"image/color"
	"time"
	"unicode/utf8"

	"github.com/couchcryptid/matrix-sign/internal/domain"
)

// Card row baselines for the 3-row layout on a 32 px tall panel.
const (
	cardRow1   = 2
	cardRow2   = 12
	cardRow3   = 22
	cardMargin = 4
)

// palette groups the colors used to draw a card for one severity.
type palette struct {
	bg     color.RGBA
	border color.RGBA
	text   color.RGBA
	accent color.RGBA
}

var severityPalettes = map[domain.Severity]palette{
	domain.SeverityExtreme:  {color.RGBA{180, 0, 0, 255}, color.RGBA{255, 0, 0, 255}, white, color.RGBA{255, 255, 0, 255}},
	domain.SeveritySevere:   {color.RGBA{140, 0, 0, 255}, color.RGBA{255, 50, 0, 255}, white, color.RGBA{255, 200, 0, 255}},
	domain.SeverityModerate: {color.RGBA{100, 60, 0, 255}, color.RGBA{255, 165, 0, 255}, white, color.RGBA{255, 200, 50, 255}},
	domain.SeverityMinor:    {color.RGBA{0, 0, 80, 255}, color.RGBA{100, 100, 255, 255}, white, color.RGBA{200, 200, 255, 255}},
	domain.SeverityUnknown:  {color.RGBA{40, 40, 40, 255}, color.RGBA{200, 200, 200, 255}, white, color.RGBA{200, 200, 200, 255}},
}

var (
	white      = color.RGBA{255, 255, 255, 255}
	gray       = color.RGBA{180, 180, 180, 255}
	dimGray    = color.RGBA{120, 120, 120, 255}
	lightGray  = color.RGBA{200, 200, 200, 255}
	watchBar   = color.RGBA{255, 200, 0, 255}
	clearGreen = color.RGBA{0, 150, 0, 255}
	testPink   = color.RGBA{255, 0, 255, 255}

	// Chevron colors per tier: red for warnings, yellow for watches.
	chevronTier1 = color.RGBA{255, 0, 0, 255}
	chevronTier2 = color.RGBA{255, 200, 0, 255}
)

func paletteFor(severity domain.Severity) palette {
	if p, ok := severityPalettes[severity]; ok {
		return p
	}
	return severityPalettes[domain.SeverityUnknown]
}

// drawWatchCard draws the static tier-2 summary card: yellow left bar,
// short kind, areas, and remaining time.
func (r *Renderer) drawWatchCard(img *image.RGBA, alert domain.Alert, now time.Time) {
	p := paletteFor(alert.Severity)
	FillRect(img, 0, 0, 4, r.height, watchBar)
	DrawBorder(img, watchBar, 1)
	DrawText(img, r.face, 6, cardRow1, domain.ShortKind(alert.Kind), watchBar)
	if alert.Areas != "" {
		DrawText(img, r.face, 6, cardRow2, truncate(alert.Areas, 28), p.text)
	}
	DrawText(img, r.face, 6, cardRow3, "Until "+alert.Remaining(now), gray)
}

// drawInfoCard draws the tier-3 informational card.
func (r *Renderer) drawInfoCard(img *image.RGBA, alert domain.Alert, now time.Time) {
	p := paletteFor(alert.Severity)
	DrawBorder(img, p.border, 1)
	DrawText(img, r.face, cardMargin, cardRow1, domain.ShortKind(alert.Kind), p.accent)
	if alert.Areas != "" {
		DrawText(img, r.face, cardMargin, cardRow2, truncate(alert.Areas, 28), lightGray)
	}
	DrawText(img, r.face, cardMargin, cardRow3, "Until "+alert.Remaining(now), dimGray)
}

// drawClearCard draws the all-clear state.
func (r *Renderer) drawClearCard(img *image.RGBA) {
	DrawBorder(img, color.RGBA{0, 80, 0, 255}, 1)
	DrawText(img, r.face, cardMargin, cardRow1, "NWS WEATHER ALERTS", clearGreen)
	DrawText(img, r.face, cardMargin, cardRow2, "No active alerts", color.RGBA{0, 100, 0, 255})
	DrawText(img, r.face, cardMargin, cardRow3, r.region, color.RGBA{80, 80, 80, 255})
}

// drawTestStamp marks frames driven by injected scenario data.
func (r *Renderer) drawTestStamp(img *image.RGBA) {
	x := r.width - 4*r.face.Advance() - 2
	FillRect(img, x-1, 0, r.width, 9, color.RGBA{0, 0, 0, 255})
	DrawText(img, r.face, x, 1, "TEST", testPink)
}

// truncate caps s at n characters, never splitting a multi-byte rune.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for range n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i]
}
