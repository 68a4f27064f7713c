package domain

// Severity is the NWS severity label carried on every alert.
type Severity string

const (
	SeverityExtreme  Severity = "Extreme"
	SeveritySevere   Severity = "Severe"
	SeverityModerate Severity = "Moderate"
	SeverityMinor    Severity = "Minor"
	SeverityUnknown  Severity = "Unknown"
)

var severityRanks = map[Severity]int{
	SeverityExtreme:  0,
	SeveritySevere:   1,
	SeverityModerate: 2,
	SeverityMinor:    3,
	SeverityUnknown:  4,
}

// Rank returns the sort rank of the severity, lower is more urgent.
// Labels outside the NWS vocabulary rank below Unknown.
func (s Severity) Rank() int {
	if r, ok := severityRanks[s]; ok {
		return r
	}
	return 5
}

// ParseSeverity normalizes a raw severity string, mapping anything outside
// the NWS vocabulary to Unknown.
func ParseSeverity(raw string) Severity {
	s := Severity(raw)
	if _, ok := severityRanks[s]; ok {
		return s
	}
	return SeverityUnknown
}
