package ticker

import (
	"image/color"
	"time"

	"github.com/couchcryptid/matrix-sign/internal/domain"
)

// separator between ticker fields, wide enough to read at scroll speed.
const separator = "  +++  "

// fallbackInstruction is shown when an alert carries no instruction text.
const fallbackInstruction = "Monitor conditions. Follow NWS guidance."

// Segment is a run of ticker text drawn in a single color.
type Segment struct {
	Text  string
	Color color.RGBA
}

var (
	accentColor = color.RGBA{255, 255, 0, 255}
	textColor   = color.RGBA{255, 255, 255, 255}
	dimColor    = color.RGBA{180, 180, 180, 255}
)

// Build formats one alert into the colored segments of a scrolling ticker
// line. It is a pure function of the alert and the current time (needed for
// the expiry countdown); missing fields degrade to placeholders rather than
// producing an error.
func Build(alert domain.Alert, now time.Time) []Segment {
	instruction := domain.CleanText(alert.Instruction)
	if instruction == "" {
		instruction = fallbackInstruction
	}

	segments := []Segment{
		{Text: "*** " + domain.ShortKind(alert.Kind) + " ***" + separator, Color: accentColor},
		{Text: "Areas: " + alert.Areas + separator, Color: textColor},
		{Text: "Expires: " + alert.Remaining(now) + separator, Color: dimColor},
	}
	if desc := domain.CleanText(alert.Description); desc != "" {
		segments = append(segments, Segment{Text: desc + separator, Color: textColor})
	}
	segments = append(segments, Segment{Text: "ACTION: " + instruction + separator, Color: accentColor})
	return segments
}

// Text flattens the built segments into a plain string, used for logging
// and width math in tests.
func Text(segments []Segment) string {
	var out string
	for _, seg := range segments {
		out += seg.Text
	}
	return out
}
