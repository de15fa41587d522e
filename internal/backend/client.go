// Package backend is the HTTP client for the llama.cpp server the facade fronts.
// Only the native /health and /completion endpoints are used.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Defaults applied when corresponding Config fields are unset.
const (
	DefaultBaseURL           = "http://127.0.0.1:8080"
	DefaultHealthTimeout     = 5 * time.Second
	DefaultCompletionTimeout = 300 * time.Second
	defaultConnectTimeout    = 5 * time.Second
)

// Config holds the client tunables.
type Config struct {
	BaseURL           string
	HealthTimeout     time.Duration
	CompletionTimeout time.Duration
	ConnectTimeout    time.Duration
}

// Client talks to a running llama.cpp server over its native HTTP endpoints.
type Client struct {
	baseURL           string
	healthTimeout     time.Duration
	completionTimeout time.Duration
	httpClient        *http.Client
}

// New constructs a Client, applying defaults for zero values.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HealthTimeout <= 0 {
		cfg.HealthTimeout = DefaultHealthTimeout
	}
	if cfg.CompletionTimeout <= 0 {
		cfg.CompletionTimeout = DefaultCompletionTimeout
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = defaultConnectTimeout
	}
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.ConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	// Timeout stays 0: every call carries its own deadline via context.
	return &Client{
		baseURL:           strings.TrimRight(cfg.BaseURL, "/"),
		healthTimeout:     cfg.HealthTimeout,
		completionTimeout: cfg.CompletionTimeout,
		httpClient:        &http.Client{Transport: tr, Timeout: 0},
	}
}

// BaseURL returns the normalized backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// ProbeResult is the outcome of a health probe. Err carries the failure cause,
// if any, so callers can log it without treating it as fatal.
type ProbeResult struct {
	Reachable  bool
	StatusCode int
	Err        error
}

// Ready reports whether the backend answered its health check with 200.
func (p ProbeResult) Ready() bool { return p.Reachable && p.StatusCode == http.StatusOK }

// Health probes GET /health on the backend within the health timeout.
func (c *Client) Health(ctx context.Context) ProbeResult {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	res := c.health(ctx)
	outcome := "ok"
	switch {
	case res.Err != nil:
		outcome = "error"
	case !res.Ready():
		outcome = "not_ready"
	}
	observe(opHealth, outcome, time.Since(start))
	return res
}

func (c *Client) health(ctx context.Context) ProbeResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return ProbeResult{Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ProbeResult{Err: fmt.Errorf("%w: %v", ErrTimeout, ctx.Err())}
		}
		return ProbeResult{Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	res := ProbeResult{Reachable: true, StatusCode: resp.StatusCode}
	if resp.StatusCode != http.StatusOK {
		res.Err = &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
	return res
}

// CompletionRequest is the payload for POST /completion.
type CompletionRequest struct {
	Prompt      string   `json:"prompt"`
	NPredict    int      `json:"n_predict"`
	Temperature float64  `json:"temperature"`
	Stop        []string `json:"stop"`
}

// CompletionResponse is the subset of the /completion reply the facade reads.
type CompletionResponse struct {
	Content string `json:"content"`
	Stop    bool   `json:"stop,omitempty"`
	Model   string `json:"model,omitempty"`
}

// Complete performs exactly one POST /completion call. No retries are made.
func (c *Client) Complete(ctx context.Context, in CompletionRequest) (CompletionResponse, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.completionTimeout)
	defer cancel()

	out, err := c.complete(ctx, in)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		if IsTimeout(err) {
			outcome = "timeout"
		}
	}
	observe(opCompletion, outcome, time.Since(start))
	return out, err
}

func (c *Client) complete(ctx context.Context, in CompletionRequest) (CompletionResponse, error) {
	var out CompletionResponse
	body, err := json.Marshal(in)
	if err != nil {
		return out, fmt.Errorf("encode completion request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/completion", bytes.NewReader(body))
	if err != nil {
		return out, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return out, fmt.Errorf("%w after %s", ErrTimeout, c.completionTimeout)
		}
		return out, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return out, &StatusError{Code: resp.StatusCode, Status: resp.Status, Body: string(b)}
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return out, fmt.Errorf("%w after %s", ErrTimeout, c.completionTimeout)
		}
		return out, fmt.Errorf("decode completion response: %w", err)
	}
	return out, nil
}
