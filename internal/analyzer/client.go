// Package analyzer is the HTTP client for the upstream code-analysis service.
//
// The service accepts {"code": "..."} as JSON and answers with a plain-text
// report. Transport failures and non-2xx answers are returned as errors;
// nothing is inferred from the report body itself.
package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JonMunkholm/reportviewer/internal/logging"
	"github.com/JonMunkholm/reportviewer/internal/textio"
)

var (
	// ErrEmptyCode is returned when there is no source code to send.
	ErrEmptyCode = errors.New("no code to analyze")

	// ErrUpstream is wrapped by every non-2xx answer from the service.
	ErrUpstream = errors.New("analyzer returned an error")
)

// MaxReportSize caps how much of a response body is read.
const MaxReportSize = 8 << 20

// maxErrorBody caps how much of an error body is kept on UpstreamError.
const maxErrorBody = 512

// UpstreamError describes a non-2xx answer from the analyzer.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("analyzer returned status %d", e.Status)
	}
	return fmt.Sprintf("analyzer returned status %d: %s", e.Status, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}

// Options configures a Client.
type Options struct {
	// URL is the full endpoint, e.g. http://localhost:8080/analyze.
	URL string

	// APIKey is sent as X-API-Key when set.
	APIKey string

	// Timeout bounds a single request (default: 30s).
	Timeout time.Duration

	// MaxConcurrent and MaxWait configure the Limiter.
	MaxConcurrent int
	MaxWait       time.Duration

	// HTTPClient overrides the default client; Timeout is ignored then.
	HTTPClient *http.Client
}

// Client sends source code to the analyzer.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	limiter  *Limiter
}

type analyzeRequest struct {
	Code string `json:"code"`
}

// New validates opts and returns a ready Client.
func New(opts Options) (*Client, error) {
	u, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid analyzer URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid analyzer URL %q: scheme must be http or https", opts.URL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid analyzer URL %q: missing host", opts.URL)
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		endpoint: u.String(),
		apiKey:   opts.APIKey,
		http:     hc,
		limiter:  NewLimiter(opts.MaxConcurrent, opts.MaxWait),
	}, nil
}

// Limiter exposes the client's concurrency limiter for status and draining.
func (c *Client) Limiter() *Limiter {
	return c.limiter
}

// Analyze sends code to the analyzer and returns the normalized report text.
func (c *Client) Analyze(ctx context.Context, code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", ErrEmptyCode
	}

	if err := c.limiter.Acquire(ctx); err != nil {
		return "", err
	}
	defer c.limiter.Release()

	body, err := json.Marshal(analyzeRequest{Code: code})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/plain")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	logger := logging.WithFields(ctx, "endpoint", c.endpoint, "code_bytes", len(code))
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("analyzer request failed", "error", err)
		return "", fmt.Errorf("analyzer unavailable: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxReportSize))
	if err != nil {
		return "", fmt.Errorf("read analyzer response: %w", err)
	}

	logger.Debug("analyzer responded",
		"status", resp.StatusCode,
		"report_bytes", len(data),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(data))
		if len(msg) > maxErrorBody {
			msg = strings.ToValidUTF8(msg[:maxErrorBody], "")
		}
		return "", &UpstreamError{Status: resp.StatusCode, Body: msg}
	}

	return textio.Normalize(string(data)), nil
}
