package domain

import (
	"sort"
	"strings"
)

// Display tiers. Lower is more urgent.
const (
	Tier1 = 1 // full takeover: looping chevron ticker
	Tier2 = 2 // one-shot ticker cycle, then cooldown + static card
	Tier3 = 3 // informational card in the normal rotation
)

// tier1Weights maps tier-1 alert kinds to their priority weight. Weights
// express relative urgency among simultaneous tier-1 alerts.
var tier1Weights = map[string]int{
	"Tornado Warning":             6,
	"Tsunami Warning":             6,
	"Storm Surge Warning":         5,
	"Extreme Wind Warning":        5,
	"Flash Flood Warning":         4,
	"Blizzard Warning":            3,
	"Ice Storm Warning":           3,
	"Dust Storm Warning":          3,
	"Severe Thunderstorm Warning": 2,
	"Excessive Heat Warning":      2,
}

// tier2Kinds holds watches and significant warnings that trigger a one-shot
// ticker cycle rather than a permanent takeover.
var tier2Kinds = map[string]struct{}{
	"Tornado Watch":             {},
	"Severe Thunderstorm Watch": {},
	"Flash Flood Watch":         {},
	"Winter Storm Warning":      {},
	"Flood Warning":             {},
	"High Wind Warning":         {},
	"Red Flag Warning":          {},
	"Excessive Heat Watch":      {},
	"Blizzard Watch":            {},
	"Hurricane Warning":         {},
	"Hurricane Watch":           {},
	"Tropical Storm Warning":    {},
}

// shortNames compresses alert kinds to fit the sign's character budget.
var shortNames = map[string]string{
	"Tornado Warning":             "TORNADO WARNING",
	"Tornado Watch":               "TORNADO WATCH",
	"Severe Thunderstorm Warning": "SVR T-STORM WRN",
	"Severe Thunderstorm Watch":   "SVR T-STORM WATCH",
	"Flash Flood Warning":         "FLASH FLOOD WRN",
	"Flash Flood Watch":           "FLASH FLOOD WATCH",
	"Flood Warning":               "FLOOD WARNING",
	"Flood Watch":                 "FLOOD WATCH",
	"Winter Storm Warning":        "WINTER STORM WRN",
	"Winter Storm Watch":          "WINTER STORM WATCH",
	"Winter Weather Advisory":     "WINTER WX ADVSRY",
	"Blizzard Warning":            "BLIZZARD WARNING",
	"Ice Storm Warning":           "ICE STORM WARNING",
	"Wind Chill Warning":          "WIND CHILL WRN",
	"Wind Chill Advisory":         "WIND CHILL ADVSRY",
	"Excessive Heat Warning":      "EXTREME HEAT WRN",
	"Heat Advisory":               "HEAT ADVISORY",
	"Dense Fog Advisory":          "DENSE FOG ADVSRY",
	"Wind Advisory":               "WIND ADVISORY",
	"High Wind Warning":           "HIGH WIND WARNING",
	"Fire Weather Watch":          "FIRE WX WATCH",
	"Red Flag Warning":            "RED FLAG WARNING",
	"Special Weather Statement":   "SPECIAL WX STMT",
	"Freeze Warning":              "FREEZE WARNING",
	"Frost Advisory":              "FROST ADVISORY",
	"Dust Storm Warning":          "DUST STORM WRN",
}

// Classify maps an alert kind to its display tier and priority weight.
// Unmapped kinds are tier 3 with weight 1; classification never fails.
func Classify(kind string) (tier, weight int) {
	if w, ok := tier1Weights[kind]; ok {
		return Tier1, w
	}
	if _, ok := tier2Kinds[kind]; ok {
		return Tier2, 1
	}
	return Tier3, 1
}

// ShortKind returns the display-compressed name for an alert kind. Kinds
// without a table entry are uppercased and truncated to 20 characters.
func ShortKind(kind string) string {
	if s, ok := shortNames[kind]; ok {
		return s
	}
	s := strings.ToUpper(kind)
	if len(s) > 20 {
		s = s[:20]
	}
	return s
}

// Classified is an alert paired with its computed tier and weight.
type Classified struct {
	Alert
	Tier   int
	Weight int
}

// ClassifyAll classifies each alert and returns them in priority order:
// tier ascending, weight descending, severity rank ascending. The sort is
// stable so alerts that tie keep their feed order.
func ClassifyAll(alerts []Alert) []Classified {
	out := make([]Classified, len(alerts))
	for i, a := range alerts {
		tier, weight := Classify(a.Kind)
		out[i] = Classified{Alert: a, Tier: tier, Weight: weight}
	}
	SortClassified(out)
	return out
}

// SortClassified orders classified alerts by display priority, stably.
func SortClassified(alerts []Classified) {
	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].Tier != alerts[j].Tier {
			return alerts[i].Tier < alerts[j].Tier
		}
		if alerts[i].Weight != alerts[j].Weight {
			return alerts[i].Weight > alerts[j].Weight
		}
		return alerts[i].Severity.Rank() < alerts[j].Severity.Rank()
	})
}

// HasTier reports whether any classified alert is in the given tier.
func HasTier(alerts []Classified, tier int) bool {
	for _, a := range alerts {
		if a.Tier == tier {
			return true
		}
	}
	return false
}
