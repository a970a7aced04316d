package client

import (
	"context"
	"net/http"
	"net/url"
)

// ResolveRequest is the body of POST /api/v1/resolve.
type ResolveRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// ResolveResult mirrors the resolve response.
type ResolveResult struct {
	Matches  []string `json:"matches"`
	Degraded bool     `json:"degraded"`
}

// Resolve matches free-text input against the service's area universe.
func (c *Client) Resolve(ctx context.Context, query string, limit int) (*ResolveResult, error) {
	var result ResolveResult
	err := c.do(ctx, http.MethodPost, "/api/v1/resolve", ResolveRequest{Query: query, Limit: limit}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Outcome is one conversation turn's result.
type Outcome struct {
	Kind  string `json:"kind"`
	Reply string `json:"reply,omitempty"`
}

// Conversation outcome kinds.
const (
	KindAnswer      = "answer"
	KindNoAnswer    = "no_answer"
	KindComplete    = "complete"
	KindUnavailable = "unavailable"
)

// Converse runs one conversation turn.  An unavailable assistant comes
// back as a KindUnavailable outcome, not an error.
func (c *Client) Converse(ctx context.Context, message string) (*Outcome, error) {
	var outcome Outcome
	err := c.do(ctx, http.MethodPost, "/api/v1/converse", map[string]string{"user": message}, &outcome)
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}

// Clinic is one clinic directory record.
type Clinic struct {
	Area     string `json:"area"`
	Locality string `json:"locality"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Landmark string `json:"landmark,omitempty"`
}

// ClinicsResult mirrors the clinics response.
type ClinicsResult struct {
	Clinics      []Clinic `json:"clinics"`
	ReferralText string   `json:"referral_text"`
	Degraded     bool     `json:"degraded"`
}

// Clinics looks up clinics by exact (area, locality).
func (c *Client) Clinics(ctx context.Context, area, locality string) (*ClinicsResult, error) {
	q := url.Values{}
	q.Set("area", area)
	q.Set("locality", locality)

	var result ClinicsResult
	if err := c.do(ctx, http.MethodGet, "/api/v1/clinics?"+q.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// LocalitiesResult mirrors the localities response.
type LocalitiesResult struct {
	Localities     []string `json:"localities"`
	LocalitiesText string   `json:"localities_text"`
	Degraded       bool     `json:"degraded"`
}

// Localities lists the distinct localities for an area.
func (c *Client) Localities(ctx context.Context, area string) (*LocalitiesResult, error) {
	q := url.Values{}
	q.Set("area", area)

	var result LocalitiesResult
	if err := c.do(ctx, http.MethodGet, "/api/v1/localities?"+q.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health reports the service's health endpoint response.
type Health struct {
	Status     string            `json:"status"`
	Version    string            `json:"version"`
	Components map[string]string `json:"components"`
}

// CheckHealth fetches /health.
func (c *Client) CheckHealth(ctx context.Context) (*Health, error) {
	var health Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}
