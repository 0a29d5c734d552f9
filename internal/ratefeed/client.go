// Package ratefeed fetches spot exchange rates from an exchangerate-api style HTTP endpoint.
package ratefeed

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/guttosm/fxpulse/internal/domain/models"
	"github.com/guttosm/fxpulse/internal/logger"
)

const defaultUserAgent = "fxpulse/1.0"

// DefaultBaseURL is the public latest-rates endpoint; the base currency is appended as a path segment.
const DefaultBaseURL = "https://api.exchangerate-api.com/v4/latest"

// NetworkError wraps every failure to obtain a usable snapshot: transport errors,
// non-2xx statuses and undecodable bodies.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("rate feed %s: http status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("rate feed %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ErrStatusCode is wrapped by NetworkError when the feed answers with a non-2xx status.
var ErrStatusCode = errors.New("unexpected http status")

// latestResponse is the subset of the feed payload we read.
type latestResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Client fetches one snapshot per call. It does not retry and has no timeout of
// its own; callers bound it through the context.
type Client struct {
	baseURL string
	client  *http.Client
}

// DefaultHTTPClient returns a transport tuned for a single upstream host.
func DefaultHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			DisableCompression:    true,
			IdleConnTimeout:       5 * time.Minute,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

// NewClient builds a Client; an empty baseURL falls back to DefaultBaseURL and a nil
// httpClient to DefaultHTTPClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = DefaultHTTPClient()
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), client: httpClient}
}

// Latest returns the current rates quoted against base.
func (c *Client) Latest(ctx context.Context, base string) (models.RateSnapshot, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	u := c.baseURL + "/" + url.PathEscape(base)

	start := time.Now()
	body, status, err := c.fetch(ctx, u)
	if err != nil {
		logger.L().Warn().Str("url", u).Int("status", status).Err(err).Msg("rate feed request failed")
		return models.RateSnapshot{}, &NetworkError{URL: u, StatusCode: status, Err: err}
	}

	var payload latestResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.RateSnapshot{}, &NetworkError{URL: u, StatusCode: status, Err: fmt.Errorf("decode body: %w", err)}
	}
	if payload.Rates == nil {
		return models.RateSnapshot{}, &NetworkError{URL: u, StatusCode: status, Err: errors.New("decode body: missing rates")}
	}
	if payload.Base == "" {
		payload.Base = base
	}

	logger.L().Debug().Str("base", payload.Base).Int("rates", len(payload.Rates)).Dur("elapsed", time.Since(start)).Msg("rate feed snapshot")
	return models.RateSnapshot{Base: payload.Base, Rates: payload.Rates}, nil
}

func (c *Client) fetch(ctx context.Context, u string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build HTTP request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("make HTTP request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, fmt.Errorf("%s: %w", resp.Status, ErrStatusCode)
	}

	var reader io.Reader = resp.Body
	if strings.Contains(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, resp.StatusCode, fmt.Errorf("gzip reader: %w", err)
		}
		defer func() { _ = gz.Close() }()
		reader = gz
	}

	b, err := io.ReadAll(reader)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return b, resp.StatusCode, nil
}
