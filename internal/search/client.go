package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"eventscout/internal/domain"
)

// maxBodyBytes caps how much of a response body is read
const maxBodyBytes = 4 << 20

// Client searches the remote endpoint for events
type Client interface {
	Search(ctx context.Context, params domain.SearchParams) ([]domain.Event, error)
}

// HTTPClient posts searches to a single configured endpoint. It performs
// exactly one request per call: no retries, caching or deduplication.
type HTTPClient struct {
	endpoint string
	timeout  time.Duration
	http     *http.Client
	logger   *zap.Logger
	newID    func() string
}

// Option configures an HTTPClient
type Option func(*HTTPClient)

// WithTimeout bounds each request. Zero leaves requests bounded only by the
// caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithLogger sets the logger used for request logging
func WithLogger(l *zap.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// NewHTTPClient creates a client for endpoint
func NewHTTPClient(endpoint string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		endpoint: endpoint,
		http:     &http.Client{},
		logger:   zap.NewNop(),
		newID:    func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("search")
	return c
}

// Endpoint returns the URL searches are posted to
func (c *HTTPClient) Endpoint() string {
	return c.endpoint
}

// Search posts params and decodes the returned event list. Invalid params
// return the domain validation error without a request; every other failure
// is a *FetchError.
func (c *HTTPClient) Search(ctx context.Context, params domain.SearchParams) ([]domain.Event, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search params: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, networkError(0, err)
	}

	requestID := c.newID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	logger := c.logger.With(
		zap.String("request_id", requestID),
		zap.String("city", params.City),
		zap.Int("max_events", params.MaxEvents),
	)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("search request failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, networkError(0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		logger.Warn("search endpoint returned error status",
			zap.Int("status", resp.StatusCode), zap.Duration("duration", time.Since(start)))
		return nil, networkError(resp.StatusCode, fmt.Errorf("unexpected status %s", resp.Status))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		logger.Warn("reading search response failed", zap.Error(err))
		return nil, networkError(resp.StatusCode, err)
	}
	if len(data) > maxBodyBytes {
		return nil, parseError(fmt.Errorf("response exceeds %d bytes", maxBodyBytes))
	}

	events, err := decodeEvents(data)
	if err != nil {
		logger.Warn("search response is not an event list", zap.Error(err))
		return nil, err
	}

	logger.Info("search completed",
		zap.Int("status", resp.StatusCode),
		zap.Int("events", len(events)),
		zap.Duration("duration", time.Since(start)))
	return events, nil
}

// decodeEvents parses a JSON array of events. Missing optional fields decode
// to empty strings; a null body is an empty list.
func decodeEvents(data []byte) ([]domain.Event, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return []domain.Event{}, nil
	}
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, parseError(fmt.Errorf("expected a JSON array"))
	}

	var events []domain.Event
	if err := json.Unmarshal(trimmed, &events); err != nil {
		return nil, parseError(err)
	}
	if events == nil {
		events = []domain.Event{}
	}
	return events, nil
}
