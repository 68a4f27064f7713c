package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		kind       string
		wantTier   int
		wantWeight int
	}{
		{"Tornado Warning", 1, 6},
		{"Tsunami Warning", 1, 6},
		{"Flash Flood Warning", 1, 4},
		{"Severe Thunderstorm Warning", 1, 2},
		{"Tornado Watch", 2, 1},
		{"Winter Storm Warning", 2, 1},
		{"Hurricane Warning", 2, 1},
		{"Wind Advisory", 3, 1},
		{"Special Weather Statement", 3, 1},
		{"Volcano Warning", 3, 1}, // unmapped kind defaults to tier 3
		{"", 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			tier, weight := Classify(tt.kind)
			assert.Equal(t, tt.wantTier, tier)
			assert.Equal(t, tt.wantWeight, weight)
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	for kind := range tier1Weights {
		t1, w1 := Classify(kind)
		t2, w2 := Classify(kind)
		assert.Equal(t, t1, t2)
		assert.Equal(t, w1, w2)
	}
}

func TestClassifyAll_PriorityOrder(t *testing.T) {
	alerts := []Alert{
		{ID: "A", Kind: "Tornado Watch"},               // tier 2, weight 1
		{ID: "B", Kind: "Tornado Warning"},             // tier 1, weight 6
		{ID: "C", Kind: "Severe Thunderstorm Warning"}, // tier 1, weight 2
	}

	sorted := ClassifyAll(alerts)

	assert.Equal(t, []string{"B", "C", "A"}, ids(sorted))
}

func TestClassifyAll_StableOnTies(t *testing.T) {
	// Two tier-1 alerts with equal weight and severity keep feed order.
	alerts := []Alert{
		{ID: "first", Kind: "Blizzard Warning", Severity: SeveritySevere},
		{ID: "second", Kind: "Ice Storm Warning", Severity: SeveritySevere},
		{ID: "third", Kind: "Dust Storm Warning", Severity: SeveritySevere},
	}

	sorted := ClassifyAll(alerts)

	assert.Equal(t, []string{"first", "second", "third"}, ids(sorted))
}

func TestClassifyAll_SeverityBreaksWeightTies(t *testing.T) {
	alerts := []Alert{
		{ID: "minor", Kind: "Blizzard Warning", Severity: SeverityMinor},
		{ID: "extreme", Kind: "Ice Storm Warning", Severity: SeverityExtreme},
	}

	sorted := ClassifyAll(alerts)

	assert.Equal(t, []string{"extreme", "minor"}, ids(sorted))
}

func TestShortKind(t *testing.T) {
	assert.Equal(t, "SVR T-STORM WRN", ShortKind("Severe Thunderstorm Warning"))
	assert.Equal(t, "TORNADO WARNING", ShortKind("Tornado Warning"))
	// Unmapped kinds uppercase and truncate.
	assert.Equal(t, "SOME EXTREMELY LONG ", ShortKind("Some extremely long product name"))
}

func TestHasTier(t *testing.T) {
	alerts := ClassifyAll([]Alert{
		{Kind: "Tornado Watch"},
		{Kind: "Wind Advisory"},
	})

	assert.False(t, HasTier(alerts, Tier1))
	assert.True(t, HasTier(alerts, Tier2))
	assert.True(t, HasTier(alerts, Tier3))
}

func ids(alerts []Classified) []string {
	out := make([]string, len(alerts))
	for i, a := range alerts {
		out[i] = a.ID
	}
	return out
}
