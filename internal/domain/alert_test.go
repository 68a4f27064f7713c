package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAlertKey(t *testing.T) {
	t.Run("prefers NWS alert ID", func(t *testing.T) {
		a := Alert{ID: "urn:oid:2.49.0.1.840.0.abc", Kind: "Tornado Warning", Areas: "San Saba"}
		assert.Equal(t, "urn:oid:2.49.0.1.840.0.abc", a.Key())
	})

	t.Run("falls back to kind and area", func(t *testing.T) {
		a := Alert{Kind: "Tornado Warning", Areas: "San Saba"}
		assert.Equal(t, "Tornado Warning|San Saba", a.Key())
	})
}

func TestAlertRemaining(t *testing.T) {
	now := time.Date(2024, 4, 26, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		expires time.Time
		want    string
	}{
		{"missing expiry", time.Time{}, "???"},
		{"already expired", now.Add(-time.Minute), "EXPIRED"},
		{"expires exactly now", now, "EXPIRED"},
		{"under an hour", now.Add(45 * time.Minute), "45min"},
		{"hours and minutes", now.Add(2*time.Hour + 5*time.Minute), "2h05m"},
		{"exact hour", now.Add(3 * time.Hour), "3h00m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Alert{Expires: tt.expires}
			assert.Equal(t, tt.want, a.Remaining(now))
		})
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"ellipsis separators", "AT 415 PM...A TORNADO...TAKE COVER", "AT 415 PM. A TORNADO. TAKE COVER"},
		{"bullet asterisks", "* WHAT...Heavy snow", "WHAT. Heavy snow"},
		{"newlines collapse", "line one\n\nline two\nline three", "line one line two line three"},
		{"whitespace runs", "too   many    spaces", "too many spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestParseSeverity(t *testing.T) {
	assert.Equal(t, SeverityExtreme, ParseSeverity("Extreme"))
	assert.Equal(t, SeverityUnknown, ParseSeverity(""))
	assert.Equal(t, SeverityUnknown, ParseSeverity("Apocalyptic"))
}

func TestSeverityRank(t *testing.T) {
	assert.Less(t, SeverityExtreme.Rank(), SeveritySevere.Rank())
	assert.Less(t, SeveritySevere.Rank(), SeverityModerate.Rank())
	assert.Less(t, SeverityModerate.Rank(), SeverityMinor.Rank())
	assert.Less(t, SeverityMinor.Rank(), SeverityUnknown.Rank())
	assert.Less(t, SeverityUnknown.Rank(), Severity("bogus").Rank())
}
