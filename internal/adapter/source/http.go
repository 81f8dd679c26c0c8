// Package source implements the places the temperature dataset is loaded
// from: the upstream HTTP endpoint, a local file, and a Redis-backed payload
// cache that decorates either.
package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

// maxPayloadBytes bounds the upstream document; the published file is ~130 KiB.
const maxPayloadBytes = 16 << 20

// HTTPSource fetches the dataset document over HTTP.
type HTTPSource struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPSource creates a source for url with a per-request timeout.
func NewHTTPSource(url string, timeout time.Duration, logger *slog.Logger) *HTTPSource {
	return &HTTPSource{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Name implements domain.DatasetSource.
func (s *HTTPSource) Name() string { return "http" }

// Fetch issues a single GET. Transport errors and non-200 responses are
// reported as domain.ErrDataUnavailable; there is no retry.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch dataset: %w", domain.ErrDataUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, domain.Unavailable("fetch dataset: status %d: %s", resp.StatusCode, body)
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read dataset: %w", domain.ErrDataUnavailable, err)
	}
	if len(payload) > maxPayloadBytes {
		return nil, domain.Unavailable("dataset exceeds %d bytes", maxPayloadBytes)
	}

	s.logger.Debug("dataset fetched",
		"url", s.url,
		"bytes", len(payload),
		"duration", time.Since(start),
	)
	return payload, nil
}
