// Package swms is the shared client for the SWMS REST API. Every page goes
// through one Client so credential injection and 401 handling live in a
// single place.
package swms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Recorder receives one observation per backend call.
type Recorder interface {
	ObserveAPI(method, endpoint string, status int, elapsed time.Duration)
}

// Options configure a Client.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	Credentials CredentialsFunc
	Transport   http.RoundTripper
	Logger      *slog.Logger
	Recorder    Recorder
}

// Client calls the SWMS REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	recorder   Recorder
}

// NewClient constructs a Client. The request context of each call bounds its
// lifetime, so an abandoned page cancels its backend calls.
func NewClient(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, errors.New("swms: base url required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("swms: base url: %w", err)
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: &bearerTransport{base: transport, credentials: opts.Credentials},
		},
		logger:   logger,
		recorder: opts.Recorder,
	}, nil
}

// call describes one backend request. endpoint is the route template used
// for metrics and logs; path is the concrete URL path.
type call struct {
	method   string
	endpoint string
	path     string
	query    url.Values
	in       any
	out      any
}

func (c *Client) do(ctx context.Context, rc call) error {
	var body io.Reader
	if rc.in != nil {
		payload, err := json.Marshal(rc.in)
		if err != nil {
			return fmt.Errorf("swms: encode %s: %w", rc.endpoint, err)
		}
		body = bytes.NewReader(payload)
	}
	target := c.baseURL + rc.path
	if len(rc.query) > 0 {
		target += "?" + rc.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, rc.method, target, body)
	if err != nil {
		return fmt.Errorf("swms: build %s %s: %w", rc.method, rc.endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if rc.in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(rc, 0, start)
		c.logger.Warn("swms request failed", slog.String("method", rc.method), slog.String("endpoint", rc.endpoint), slog.Any("error", err))
		return fmt.Errorf("swms: %s %s: %w", rc.method, rc.endpoint, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	c.observe(rc, resp.StatusCode, start)

	if resp.StatusCode == http.StatusUnauthorized && !isPublic(ctx) {
		c.logger.Info("swms credential rejected", slog.String("method", rc.method), slog.String("endpoint", rc.endpoint))
		return fmt.Errorf("swms: %s %s: %w", rc.method, rc.endpoint, ErrUnauthorized)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := decodeError(resp)
		level := slog.LevelDebug
		if resp.StatusCode >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		c.logger.Log(ctx, level, "swms request rejected", slog.String("method", rc.method), slog.String("endpoint", rc.endpoint), slog.Int("status", resp.StatusCode))
		return apiErr
	}
	if rc.out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(rc.out); err != nil {
		return fmt.Errorf("swms: decode %s: %w", rc.endpoint, err)
	}
	return nil
}

func (c *Client) observe(rc call, status int, start time.Time) {
	if c.recorder == nil {
		return
	}
	c.recorder.ObserveAPI(rc.method, rc.endpoint, status, time.Since(start))
}

func idPath(prefix string, id int64) string {
	return fmt.Sprintf("%s/%d", prefix, id)
}
