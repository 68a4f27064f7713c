// Package nws fetches active alerts from the National Weather Service
// public API (api.weather.gov).
package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/matrix-sign/internal/domain"
)

// The NWS API rejects requests without an identifying User-Agent.
const defaultUserAgent = "matrix-sign (github.com/couchcryptid/matrix-sign)"

// Client implements feed.Source against the NWS active-alerts endpoint.
type Client struct {
	lat        float64
	lon        float64
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *slog.Logger
}

// NewClient creates an NWS alerts client for a fixed point.
func NewClient(lat, lon float64, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		lat: lat,
		lon: lon,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:   "https://api.weather.gov",
		userAgent: defaultUserAgent,
		logger:    logger,
	}
}

// Fetch returns all actual alerts currently active at the client's point.
func (c *Client) Fetch(ctx context.Context) ([]domain.Alert, error) {
	params := url.Values{
		"point":  {fmt.Sprintf("%.4f,%.4f", c.lat, c.lon)},
		"status": {"actual"},
	}
	u := c.baseURL + "/alerts/active?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/geo+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alerts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("nws API error: status %d: %s", resp.StatusCode, body)
	}

	var nwsResp response
	if err := json.NewDecoder(resp.Body).Decode(&nwsResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	alerts := make([]domain.Alert, 0, len(nwsResp.Features))
	for _, f := range nwsResp.Features {
		alerts = append(alerts, f.toAlert())
	}
	c.logger.Debug("alerts fetched", "count", len(alerts))
	return alerts, nil
}

// NWS GeoJSON response types. Only the fields the sign renders.

type response struct {
	Features []feature `json:"features"`
}

type feature struct {
	ID         string     `json:"id"`
	Properties properties `json:"properties"`
}

type properties struct {
	ID          string `json:"id"`
	Event       string `json:"event"`
	Severity    string `json:"severity"`
	Urgency     string `json:"urgency"`
	Certainty   string `json:"certainty"`
	Headline    string `json:"headline"`
	Description string `json:"description"`
	Instruction string `json:"instruction"`
	Onset       string `json:"onset"`
	Expires     string `json:"expires"`
	Ends        string `json:"ends"`
	SenderName  string `json:"senderName"`
	AreaDesc    string `json:"areaDesc"`
}

func (f feature) toAlert() domain.Alert {
	p := f.Properties
	id := p.ID
	if id == "" {
		id = f.ID
	}

	// NWS sets "ends" for the hazard window and "expires" for the message;
	// prefer the hazard window when present.
	expires := parseTime(p.Ends)
	if expires.IsZero() {
		expires = parseTime(p.Expires)
	}

	return domain.Alert{
		ID:          id,
		Kind:        p.Event,
		Severity:    domain.ParseSeverity(p.Severity),
		Urgency:     p.Urgency,
		Certainty:   p.Certainty,
		Headline:    p.Headline,
		Description: p.Description,
		Instruction: p.Instruction,
		Onset:       parseTime(p.Onset),
		Expires:     expires,
		Sender:      p.SenderName,
		Areas:       p.AreaDesc,
	}
}

// parseTime tolerates the absent and malformed timestamps the live API
// produces; the zero time means unknown.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
