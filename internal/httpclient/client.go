// Package httpclient implements the HTTP plumbing shared by every
// FlexStack facade: JSON requests, query-parameterized GETs, multipart
// uploads and line-delimited streaming. Facades own the payload shapes;
// this package owns transport, header merging and error mapping.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/FlexStackAI/flexstackai/internal/metrics"
	"github.com/FlexStackAI/flexstackai/internal/tlsutil"
	"github.com/FlexStackAI/flexstackai/types"
)

// Config holds the shared transport configuration.
type Config struct {
	BaseURL string
	// Headers are sent with every request. The map is copied at
	// construction so later caller mutation never leaks into the client.
	Headers    map[string]string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
	Metrics    *metrics.Collector
}

// Client performs HTTP requests against the platform base URL.
type Client struct {
	baseURL string
	headers map[string]string
	http    *http.Client
	logger  *zap.Logger
	metrics *metrics.Collector
}

// New creates a transport client. A nil HTTPClient gets the hardened
// default transport; a nil Logger gets a nop logger.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = tlsutil.SecureHTTPClient(timeout)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	headers := make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers[k] = v
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		headers: headers,
		http:    hc,
		logger:  logger,
		metrics: cfg.Metrics,
	}
}

// BaseURL returns the configured base URL with any trailing slash trimmed.
func (c *Client) BaseURL() string { return c.baseURL }

// FormField is one part of a multipart request body. When File is set the
// part is written as a file upload whose filename is the field name, which
// is how the trainer endpoint expects its "files" entries; otherwise it is
// a plain form field.
type FormField struct {
	Name  string
	Value string
	File  bool
}

// DoJSON performs a request with an optional JSON body and decodes the
// JSON response. query values are appended to the URL; empty values are
// kept (the platform treats a present-but-empty parameter as "any").
func (c *Client) DoJSON(ctx context.Context, method, path string, query url.Values, body any, headers map[string]string) (types.Response, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, query, reqBody, headers)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, path)
}

// Get performs a GET request and decodes the JSON response.
func (c *Client) Get(ctx context.Context, path string, query url.Values, headers map[string]string) (types.Response, error) {
	return c.DoJSON(ctx, http.MethodGet, path, query, nil, headers)
}

// PostMultipart posts a multipart form body and decodes the JSON response.
func (c *Client) PostMultipart(ctx context.Context, path string, fields []FormField, headers map[string]string) (types.Response, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		if f.File {
			part, err := w.CreateFormFile(f.Name, f.Name)
			if err != nil {
				return nil, fmt.Errorf("failed to create file part %q: %w", f.Name, err)
			}
			if _, err := io.WriteString(part, f.Value); err != nil {
				return nil, fmt.Errorf("failed to write file part %q: %w", f.Name, err)
			}
			continue
		}
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, fmt.Errorf("failed to write form field %q: %w", f.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf, headers)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req, path)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, headers map[string]string) (*http.Request, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	// Default headers first, per-call headers win.
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if req.Header.Get("X-Request-ID") == "" {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}
	return req, nil
}

func (c *Client) do(req *http.Request, path string) (types.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(req.Method, path, 0, start)
		return nil, types.NewError(types.ErrUpstreamError, err.Error()).
			WithCause(err).
			WithEndpoint(path)
	}
	defer resp.Body.Close()
	c.observe(req.Method, path, resp.StatusCode, start)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, mapHTTPError(resp.StatusCode, string(respBody), path)
	}

	var decoded types.Response
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return decoded, nil
}

func (c *Client) observe(method, path string, status int, start time.Time) {
	duration := time.Since(start)
	c.metrics.ObserveRequest(method, path, status, duration)
	c.logger.Debug("platform request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("duration", duration),
	)
}

// mapHTTPError maps an HTTP status to a structured transport error.
func mapHTTPError(status int, msg, path string) *types.Error {
	code := types.ErrUpstreamError
	switch status {
	case http.StatusUnauthorized:
		code = types.ErrUnauthorized
	case http.StatusForbidden:
		code = types.ErrForbidden
	case http.StatusTooManyRequests:
		code = types.ErrRateLimited
	case http.StatusBadRequest:
		code = types.ErrInvalidRequest
	}
	return types.NewError(code, msg).
		WithHTTPStatus(status).
		WithEndpoint(path)
}
