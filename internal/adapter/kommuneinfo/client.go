// Package kommuneinfo fetches the official Norwegian municipality registry
// from the public Geonorge kommuneinfo API. The registry is optional
// enrichment: nothing in the rendered output depends on it, so every
// failure degrades to an empty result instead of surfacing to users.
package kommuneinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/piggdekk-dashboard/internal/observability"
)

// Municipality is one registry entry.
type Municipality struct {
	Number string `json:"kommunenummer"`
	Name   string `json:"kommunenavnNorsk"`
}

// Source provides the municipality registry.
type Source interface {
	Municipalities(ctx context.Context) ([]Municipality, error)
}

// Client implements Source against the Geonorge kommuneinfo API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a registry client with a bounded request timeout.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// Municipalities fetches the full registry.
func (c *Client) Municipalities(ctx context.Context) ([]Municipality, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RegistryRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("registry request: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.RegistryDuration.Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		c.metrics.RegistryRequests.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("registry API error: status %d: %s", resp.StatusCode, body)
	}

	var municipalities []Municipality
	if err := json.NewDecoder(resp.Body).Decode(&municipalities); err != nil {
		c.metrics.RegistryRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decode registry response: %w", err)
	}

	if len(municipalities) == 0 {
		c.metrics.RegistryRequests.WithLabelValues("empty").Inc()
		return nil, nil
	}
	c.metrics.RegistryRequests.WithLabelValues("success").Inc()
	c.logger.Debug("municipality registry fetched", "count", len(municipalities))
	return municipalities, nil
}

// MunicipalitiesOrEmpty returns the registry contents, degrading to an
// empty slice on any failure. The failure is logged, never propagated.
func MunicipalitiesOrEmpty(ctx context.Context, src Source, logger *slog.Logger) []Municipality {
	if src == nil {
		return nil
	}
	municipalities, err := src.Municipalities(ctx)
	if err != nil {
		logger.Warn("municipality registry fetch failed", "error", err)
		return nil
	}
	return municipalities
}
