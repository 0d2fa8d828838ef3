// Package api implements the read-only HTTP client for the XDR gateway.
package api

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/carverauto/xdr-console/pkg/logger"
	"github.com/carverauto/xdr-console/pkg/models"
)

const (
	eventsPath   = "/api/v1/events"
	statsPath    = "/api/v1/events/stats"
	timelinePath = "/api/v1/events/timeline"

	defaultHTTPTimeout   = 15 * time.Second
	defaultEventLimit    = 200
	defaultTimelineHours = 24

	// The gateway buckets the timeline with a Postgres interval expression.
	timelineInterval = "1 hour"
)

// Fetch operation names, carried by FetchError so callers can tell which
// source failed without string matching.
const (
	OpFetchEvents   = "fetch_events"
	OpFetchStats    = "fetch_stats"
	OpFetchTimeline = "fetch_timeline"
)

var errBaseURLRequired = errors.New("api base url is required")

// FetchError wraps any failure of a single fetch operation: network error,
// non-2xx status, or an unparseable body.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ClientConfig controls how the gateway client behaves.
type ClientConfig struct {
	BaseURL       string
	APIKey        string
	Timeout       time.Duration
	EventLimit    int
	TimelineHours int
	TLSSkipVerify bool
	Logger        logger.Logger
	HTTP          *http.Client
}

// Client issues the three read-only gateway requests. It performs no retries;
// the poller simply tries again on the next tick.
type Client struct {
	baseURL       *url.URL
	apiKey        string
	eventLimit    int
	timelineHours int
	client        *http.Client
	logger        logger.Logger
}

// NewClient constructs a gateway client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errBaseURLRequired
	}

	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = newHTTPClient(timeout, cfg.TLSSkipVerify)
	}

	eventLimit := cfg.EventLimit
	if eventLimit <= 0 {
		eventLimit = defaultEventLimit
	}

	timelineHours := cfg.TimelineHours
	if timelineHours <= 0 {
		timelineHours = defaultTimelineHours
	}

	return &Client{
		baseURL:       parsed,
		apiKey:        cfg.APIKey,
		eventLimit:    eventLimit,
		timelineHours: timelineHours,
		client:        httpClient,
		logger:        cfg.Logger,
	}, nil
}

func newHTTPClient(timeout time.Duration, skipVerify bool) *http.Client {
	client := &http.Client{Timeout: timeout}

	if skipVerify {
		if transport, ok := http.DefaultTransport.(*http.Transport); ok {
			clone := transport.Clone()
			if clone.TLSClientConfig == nil {
				clone.TLSClientConfig = &tls.Config{}
			}

			clone.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec // intentional for lab gateways
			client.Transport = clone
		}
	}

	return client
}

// FetchEvents returns the most recent events, newest first, as the gateway
// orders them. A missing events field decodes to an empty list.
func (c *Client) FetchEvents(ctx context.Context) ([]models.Event, error) {
	query := url.Values{"limit": {strconv.Itoa(c.eventLimit)}}

	var payload struct {
		Events []models.Event `json:"events"`
	}

	if err := c.get(ctx, OpFetchEvents, eventsPath, query, &payload); err != nil {
		return nil, err
	}

	if payload.Events == nil {
		payload.Events = []models.Event{}
	}

	return payload.Events, nil
}

// FetchStats returns the gateway-wide event statistics.
func (c *Client) FetchStats(ctx context.Context) (*models.StatsSnapshot, error) {
	var payload struct {
		Stats models.StatsSnapshot `json:"stats"`
	}

	if err := c.get(ctx, OpFetchStats, statsPath, nil, &payload); err != nil {
		return nil, err
	}

	return &payload.Stats, nil
}

// FetchTimeline returns the pre-aggregated severity buckets for the query
// window.
func (c *Client) FetchTimeline(ctx context.Context) ([]models.TimelineBucket, error) {
	query := url.Values{
		"interval": {timelineInterval},
		"hours":    {strconv.Itoa(c.timelineHours)},
	}

	var payload struct {
		Data []models.TimelineBucket `json:"data"`
	}

	if err := c.get(ctx, OpFetchTimeline, timelinePath, query, &payload); err != nil {
		return nil, err
	}

	if payload.Data == nil {
		payload.Data = []models.TimelineBucket{}
	}

	return payload.Data, nil
}

// get performs one GET and decodes the body into dst. Every failure mode is
// translated into a FetchError carrying the operation name.
func (c *Client) get(ctx context.Context, op, reqPath string, query url.Values, dst interface{}) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, reqPath)

	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), http.NoBody)
	if err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Accept", "application/json")

	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))

		return &FetchError{
			Op:  op,
			Err: fmt.Errorf("response status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("op", op).
			Str("path", reqPath).
			Msg("Gateway request completed")
	}

	return nil
}
