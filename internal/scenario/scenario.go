// Package scenario holds the canned alert sets used for test injection
// and offline previews. Each scenario is a complete active alert set as
// the feed would deliver it.
package scenario

import (
	"fmt"
	"sort"
	"time"

	"github.com/couchcryptid/matrix-sign/internal/domain"
)

func makeAlert(kind string, severity domain.Severity, urgency, headline, description, instruction string, hoursLeft int, now time.Time) domain.Alert {
	certainty := "Likely"
	if severity == domain.SeverityExtreme || severity == domain.SeveritySevere {
		certainty = "Observed"
	}
	return domain.Alert{
		Kind:        kind,
		Severity:    severity,
		Urgency:     urgency,
		Certainty:   certainty,
		Headline:    headline,
		Description: description,
		Instruction: instruction,
		Onset:       now.Add(-time.Hour),
		Expires:     now.Add(time.Duration(hoursLeft) * time.Hour),
		Sender:      "NWS St. Louis MO",
		Areas:       "Your County",
	}
}

// Build returns the named scenario with expiry times anchored at now.
func Build(name string, now time.Time) ([]domain.Alert, error) {
	switch name {
	case "tornado":
		return []domain.Alert{
			makeAlert("Tornado Warning", domain.SeverityExtreme, "Immediate",
				"Tornado Warning issued for Your County until 8:00 PM CST",
				"At 4:15 PM CST a severe thunderstorm capable of producing a tornado was located near Your Area moving northeast at 45 mph. Flying debris will be dangerous to those caught without shelter.",
				"TAKE SHELTER NOW! Move to a basement or interior room on the lowest floor of a sturdy building. Avoid windows.",
				1, now),
		}, nil
	case "severe":
		return []domain.Alert{
			makeAlert("Severe Thunderstorm Warning", domain.SeveritySevere, "Immediate",
				"Severe Thunderstorm Warning for Your County until 9:00 PM CST",
				"At 5:30 PM a severe thunderstorm near Weldon Spring moving east at 35 mph. 70 mph wind gusts and ping pong ball size hail.",
				"Move to an interior room on the lowest floor of a building.",
				3, now),
		}, nil
	case "flood":
		return []domain.Alert{
			makeAlert("Flash Flood Warning", domain.SeveritySevere, "Immediate",
				"Flash Flood Warning for Your County until 11:00 PM CST",
				"Flash flooding occurring along Dardenne Creek. Up to 4 inches of rain has fallen with additional heavy rain expected.",
				"Turn around dont drown. Move to higher ground now.",
				5, now),
		}, nil
	case "watch":
		return []domain.Alert{
			makeAlert("Tornado Watch", domain.SeveritySevere, "Expected",
				"Tornado Watch for eastern Missouri until 10:00 PM CST",
				"Conditions are favorable for tornadoes and severe thunderstorms in the watch area.",
				"Be prepared to move to shelter if a warning is issued.",
				6, now),
		}, nil
	case "winter":
		return []domain.Alert{
			makeAlert("Winter Storm Warning", domain.SeverityModerate, "Expected",
				"Winter Storm Warning in effect Friday evening through Saturday",
				"Heavy snow expected. Total accumulations of 5 to 8 inches. Travel could be very difficult to impossible.",
				"If you must travel keep extra supplies in your vehicle.",
				18, now),
		}, nil
	case "advisory":
		return []domain.Alert{
			makeAlert("Wind Advisory", domain.SeverityMinor, "Expected",
				"Wind Advisory in effect until 6 PM CST Saturday",
				"Southwest winds 25 to 35 mph with gusts up to 55 mph.",
				"Secure outdoor objects. Use caution when driving.",
				8, now),
		}, nil
	case "multi":
		return []domain.Alert{
			makeAlert("Tornado Warning", domain.SeverityExtreme, "Immediate",
				"Tornado Warning for Your County",
				"Tornado producing storm near OFallon moving northeast at 40 mph.",
				"TAKE SHELTER NOW!",
				1, now),
			makeAlert("Severe Thunderstorm Watch", domain.SeveritySevere, "Expected",
				"Severe Thunderstorm Watch until 10 PM CST",
				"Conditions favorable for severe storms with large hail.",
				"Monitor conditions and be ready to shelter.",
				6, now),
			makeAlert("Wind Advisory", domain.SeverityMinor, "Expected",
				"Wind Advisory through Saturday morning",
				"Gusts up to 50 mph expected.",
				"Secure loose objects.",
				12, now),
		}, nil
	case "dual":
		return []domain.Alert{
			makeAlert("Tornado Warning", domain.SeverityExtreme, "Immediate",
				"Tornado Warning for Your County until 7:00 PM CST",
				"At 5:15 PM CST a confirmed tornado was located near OFallon moving northeast at 40 mph. This is a particularly dangerous situation. Flying debris will be dangerous to those caught without shelter. Mobile homes will be destroyed.",
				"TAKE SHELTER NOW! Move to a basement or interior room on the lowest floor. If in a mobile home GET OUT and find sturdy shelter.",
				1, now),
			makeAlert("Severe Thunderstorm Warning", domain.SeveritySevere, "Immediate",
				"Severe Thunderstorm Warning for Your County until 8:30 PM",
				"A severe thunderstorm was located near Wentzville moving east at 35 mph. 70 mph wind gusts and golf ball size hail expected.",
				"Move to an interior room on the lowest floor of a building.",
				3, now),
		}, nil
	default:
		return nil, fmt.Errorf("unknown scenario %q (known: %v)", name, Names())
	}
}

// Names lists the known scenario names, sorted.
func Names() []string {
	names := []string{"tornado", "severe", "flood", "watch", "winter", "advisory", "multi", "dual"}
	sort.Strings(names)
	return names
}
