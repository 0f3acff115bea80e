// Package detect is the client for the remote video-classification service.
// It exposes exactly the two calls the service supports: a multipart upload
// to /detect and a reachability probe of the base URL.
package detect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"
)

// Result is the service's JSON response body for a detection call.
type Result struct {
	// Predictions is the ordered probability vector, one value in [0,1]
	// per category. Length validation is the caller's concern (classify).
	Predictions []float64 `json:"predictions"`
}

// Client is a high-level client for the detection service.
// It allows one in-flight upload at a time; concurrent callers block until
// the previous call finishes or their context is cancelled.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	inflight   *semaphore.Weighted
}

// Option configures the Client during construction.
type Option func(*clientConfig) error

type clientConfig struct {
	httpClient *http.Client
	logger     *slog.Logger
	timeout    time.Duration
}

// New creates a Client for the detection service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("detect: baseURL is required")
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	cfg := &clientConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.timeout > 0 {
		httpClient.Timeout = cfg.timeout
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
		inflight:   semaphore.NewWeighted(1),
	}, nil
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) error {
		cfg.httpClient = c
		return nil
	}
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *clientConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithTimeout sets a timeout on the HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) error {
		cfg.timeout = d
		return nil
	}
}

// Detect uploads the video and returns the service's prediction vector.
// It issues a single blocking POST {base}/detect with a multipart field
// named "file". There is no retry; every failure is terminal for the call.
func (c *Client) Detect(ctx context.Context, name, mediaType string, video io.Reader) (*Result, error) {
	if err := c.inflight.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("detect: acquire upload slot: %w", err)
	}
	defer c.inflight.Release(1)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	hdr.Set("Content-Type", mediaType)

	// The video streams through a pipe into the request body, so uploads
	// never buffer the whole file in memory. Write errors surface through
	// the transport as the pipe's close error.
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreatePart(hdr)
		if err != nil {
			pw.CloseWithError(fmt.Errorf("create form part: %w", err))
			return
		}
		if _, err := io.Copy(part, video); err != nil {
			pw.CloseWithError(fmt.Errorf("read video: %w", err))
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	url := c.baseURL + "/detect"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, pr)
	if err != nil {
		return nil, fmt.Errorf("detect: create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	c.logger.InfoContext(ctx, "detection request", "url", url, "file", name)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detect: do request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "detection response", "status", resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		msg := strings.TrimSpace(string(respBody))
		if msg == "" {
			msg = resp.Status
		}
		return nil, newAPIError("detect", resp.StatusCode, msg)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("detect: decode response: %w", err)
	}
	return &result, nil
}

// Ping checks that the service base URL is reachable. Any HTTP response,
// whatever the status, counts as reachable; only transport failures do not.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("ping: create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ping: do request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
	c.logger.InfoContext(ctx, "service reachable", "status", resp.StatusCode)
	return nil
}
