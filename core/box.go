package core

import (
	"context"
	"net/http"

	"github.com/tidwall/gjson"
)

// Box is the capability set shared by every box client. Domain operations
// (checking text, predicting, teaching faces) live on the concrete box types;
// only identity and the service endpoints every box exposes are shared.
type Box interface {
	// ID returns the box identifier (e.g., "textbox", "suggestionbox").
	ID() string

	// BaseURL returns where the box is reachable.
	BaseURL() string

	// Info describes the box build and plan.
	Info(ctx context.Context) (*BoxInfo, error)

	// Health reports the box health checks.
	Health(ctx context.Context) (*Health, error)

	// IsLive reports whether the box process is up.
	IsLive(ctx context.Context) (bool, error)

	// IsReady reports whether the box can serve requests. Some boxes take a
	// while to load their models after starting.
	IsReady(ctx context.Context) (bool, error)
}

// BoxInfo describes a running box. Every box answers GET /info.
type BoxInfo struct {
	Success bool   `json:"success"`
	Name    string `json:"name" validate:"required"`
	Version int    `json:"version"`
	Build   string `json:"build"`
	Status  string `json:"status"`
	Plan    string `json:"plan"`
	Error   string `json:"error,omitempty"`
}

// BoxMetadata identifies the box that answered a health check.
type BoxMetadata struct {
	Boxname string `json:"boxname"`
	Build   string `json:"build"`
}

// HealthError is one failed health check.
type HealthError struct {
	Error       string `json:"error"`
	Description string `json:"description"`
}

// Health is the body of GET /healthz.
type Health struct {
	Success  bool          `json:"success"`
	Hostname string        `json:"hostname"`
	Metadata BoxMetadata   `json:"metadata"`
	Errors   []HealthError `json:"errors"`
}

// Info calls GET /info.
func (c *Client) Info(ctx context.Context) (*BoxInfo, error) {
	return Call[BoxInfo](ctx, c, Get("info", "/info"), nil)
}

// Health calls GET /healthz. An unhealthy box answers with Success false and
// a list of Errors, often with a 503; that is returned as a result, not as an
// error. A non-2xx body that is not a health report is classified as usual.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	err := c.roundTrip(ctx, Get("health", "/healthz"), nil, func(x *exchange) error {
		if !x.ok() {
			if !gjson.GetBytes(x.body, "success").Exists() || c.config.Codec.Unmarshal(x.body, &out) != nil {
				return x.failure(c.config.Codec)
			}
			return nil
		}
		if err := c.config.Codec.Unmarshal(x.body, &out); err != nil {
			return x.decodeError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// IsLive calls GET /liveness and reports whether it answered 200.
func (c *Client) IsLive(ctx context.Context) (bool, error) {
	status, err := c.statusOf(ctx, Get("liveness", "/liveness"))
	if err != nil {
		return false, err
	}
	return status == http.StatusOK, nil
}

// IsReady calls GET /readyz and reports whether it answered 200.
func (c *Client) IsReady(ctx context.Context) (bool, error) {
	status, err := c.statusOf(ctx, Get("readiness", "/readyz"))
	if err != nil {
		return false, err
	}
	return status == http.StatusOK, nil
}

// Compile-time check that Client implements Box.
var _ Box = (*Client)(nil)
