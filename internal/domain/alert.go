package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Alert is a single active NWS alert, flattened from the GeoJSON feature
// properties by a feed adapter. JSON tags match the property names used by
// the feeds and the test-injection scenario files.
type Alert struct {
	ID          string    `json:"id,omitempty"`
	Kind        string    `json:"event"`
	Severity    Severity  `json:"severity"`
	Urgency     string    `json:"urgency,omitempty"`
	Certainty   string    `json:"certainty,omitempty"`
	Headline    string    `json:"headline,omitempty"`
	Description string    `json:"description,omitempty"`
	Instruction string    `json:"instruction,omitempty"`
	Onset       time.Time `json:"onset,omitzero"`
	Expires     time.Time `json:"expires,omitzero"`
	Sender      string    `json:"sender,omitempty"`
	Areas       string    `json:"areas,omitempty"`
}

// Key returns the identity of this alert instance, used to distinguish
// "same event still active" from "new event" across polls. The NWS alert ID
// is preferred; feeds without IDs fall back to kind plus area.
func (a Alert) Key() string {
	if a.ID != "" {
		return a.ID
	}
	return a.Kind + "|" + a.Areas
}

// Remaining formats the time left until the alert expires, e.g. "2h05m" or
// "45min". A zero expiry yields "???" and a past expiry yields "EXPIRED".
func (a Alert) Remaining(now time.Time) string {
	if a.Expires.IsZero() {
		return "???"
	}
	d := a.Expires.Sub(now)
	if d <= 0 {
		return "EXPIRED"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%dmin", m)
}

var (
	ellipsisRe   = regexp.MustCompile(`\.\.\.+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// CleanText flattens NWS bulletin formatting into a single ticker-friendly
// line: "..." separators become sentence breaks, bullet asterisks and line
// breaks are dropped, runs of whitespace collapse.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = ellipsisRe.ReplaceAllString(text, ". ")
	text = strings.ReplaceAll(text, "*", "")
	text = strings.NewReplacer("\n\n", " ", "\n", " ").Replace(text)
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
