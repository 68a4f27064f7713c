// Package domain models National Weather Service (NWS) alert data and its
// classification into display tiers.
//
// # Data Source
//
// Alerts originate from the NWS alerts API at
// https://api.weather.gov/alerts/active?point=<lat>,<lon>. Each alert is a
// GeoJSON feature whose properties carry the event name, severity, free-text
// headline/description/instruction, the affected area description, and
// onset/expiry timestamps in ISO-8601. The feed adapters flatten those
// properties into [Alert]; this package never performs the fetch itself.
//
// # Tier Classification
//
// Every alert kind maps to exactly one display tier:
//
//	Tier 1: life-threatening warnings (tornado, tsunami, flash flood, ...).
//	        Each tier-1 kind carries a weight >= 2 expressing relative
//	        urgency; a tornado warning (6) outranks a severe thunderstorm
//	        warning (2).
//	Tier 2: watches and significant but non-imminent warnings (tornado
//	        watch, winter storm warning, ...). Weight is always 1.
//	Tier 3: everything else (advisories, statements, unknown kinds).
//	        Weight is always 1.
//
// Unrecognized kinds are not an error; they classify as tier 3 so a new NWS
// product name degrades to an informational card instead of being dropped.
//
// # Priority Ordering
//
// [SortClassified] orders alerts by tier ascending, weight descending, then
// severity rank ascending (Extreme before Severe before Moderate before
// Minor before Unknown). The sort is stable: alerts that tie on all three
// keys keep their feed order.
//
// # Timestamps
//
// Onset and expiry may be absent. A zero [time.Time] means "not provided"
// and formats as "???" remaining time rather than an error; an expiry in
// the past formats as "EXPIRED".
package domain
