package ticker

import (
	"testing"
	"time"

	"github.com/couchcryptid/matrix-sign/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	now := time.Date(2024, 4, 26, 15, 0, 0, 0, time.UTC)

	t.Run("full alert", func(t *testing.T) {
		alert := domain.Alert{
			Kind:        "Tornado Warning",
			Severity:    domain.SeverityExtreme,
			Areas:       "San Saba County",
			Description: "A tornado was located near Chappel...moving northeast at 45 mph.",
			Instruction: "TAKE SHELTER NOW!",
			Expires:     now.Add(45 * time.Minute),
		}

		text := Text(Build(alert, now))

		assert.Contains(t, text, "*** TORNADO WARNING ***")
		assert.Contains(t, text, "Areas: San Saba County")
		assert.Contains(t, text, "Expires: 45min")
		assert.Contains(t, text, "moving northeast at 45 mph")
		assert.Contains(t, text, "ACTION: TAKE SHELTER NOW!")
		assert.NotContains(t, text, "...", "bulletin ellipses are flattened")
	})

	t.Run("missing fields degrade to placeholders", func(t *testing.T) {
		alert := domain.Alert{Kind: "Tornado Warning"}

		text := Text(Build(alert, now))

		assert.Contains(t, text, "Expires: ???")
		assert.Contains(t, text, "ACTION: "+fallbackInstruction)
	})

	t.Run("empty description omitted", func(t *testing.T) {
		alert := domain.Alert{Kind: "Tornado Watch", Instruction: "Stay alert."}

		segments := Build(alert, now)

		require.Len(t, segments, 4)
		assert.Equal(t, "ACTION: Stay alert."+separator, segments[3].Text)
	})
}
