// Package api provides the HTTP client for the storefront API.
//
// Every call returns a Response envelope; failures of any kind (HTTP error
// status, transport error, malformed body) are reported through the envelope
// and never as a Go error or panic. The envelope is the only error channel.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrCodeNetwork is the envelope error code for transport or parse failures
// where no usable HTTP response was obtained.
const ErrCodeNetwork = "NETWORK_ERROR"

// Error is the error half of a response envelope.
type Error struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MetaPagination describes server-side pagination metadata.
type MetaPagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Meta carries response metadata alongside the payload.
type Meta struct {
	Pagination *MetaPagination `json:"pagination,omitempty"`
	Timestamp  int64           `json:"timestamp,omitempty"`
}

// Response is the uniform result envelope for every API call.
type Response[T any] struct {
	Data    T      `json:"data"`
	Success bool   `json:"success"`
	Error   *Error `json:"error,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
}

// Options holds per-request options.
type Options struct {
	// Headers are merged over the client's default headers.
	Headers map[string]string
	// Params are encoded as the query string for GET requests.
	// Keys with a nil value are omitted; all other values are stringified.
	Params map[string]any
	// Timeout bounds this request via a context deadline. Zero means the
	// client default applies.
	Timeout time.Duration
}

// Client executes requests against the storefront API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	headers    map[string]string
	logger     *zap.Logger
}

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Headers map[string]string
	Logger  *zap.Logger
}

// NewClient creates a new API client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	headers := map[string]string{
		"Content-Type": "application/json",
	}
	for k, v := range cfg.Headers {
		headers[k] = v
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		headers:    headers,
		logger:     logger,
	}
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request.
func Get[T any](c *Client, ctx context.Context, endpoint string, opts *Options) *Response[T] {
	return Request[T](c, ctx, http.MethodGet, endpoint, nil, opts)
}

// Post performs a POST request with a JSON body.
func Post[T any](c *Client, ctx context.Context, endpoint string, body any, opts *Options) *Response[T] {
	return Request[T](c, ctx, http.MethodPost, endpoint, body, opts)
}

// Put performs a PUT request with a JSON body.
func Put[T any](c *Client, ctx context.Context, endpoint string, body any, opts *Options) *Response[T] {
	return Request[T](c, ctx, http.MethodPut, endpoint, body, opts)
}

// Delete performs a DELETE request.
func Delete[T any](c *Client, ctx context.Context, endpoint string, opts *Options) *Response[T] {
	return Request[T](c, ctx, http.MethodDelete, endpoint, nil, opts)
}

// Request executes a single HTTP request and maps the result into the
// envelope. It never returns a Go error; see networkError.
func Request[T any](c *Client, ctx context.Context, method, endpoint string, body any, opts *Options) *Response[T] {
	if opts == nil {
		opts = &Options{}
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	target := c.buildURL(endpoint)
	if method == http.MethodGet && len(opts.Params) > 0 {
		target = target + "?" + encodeParams(opts.Params)
	}

	var bodyReader io.Reader
	if method != http.MethodGet && body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return networkError[T](fmt.Errorf("marshal request body: %w", err))
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return networkError[T](err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("url", target),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return networkError[T](err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkError[T](err)
	}

	return decodeEnvelope[T](resp, payload)
}

// buildURL resolves an endpoint against the base URL. Absolute endpoints are
// used as-is.
func (c *Client) buildURL(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return c.baseURL + endpoint
}

// encodeParams builds a deterministic query string. Nil values are omitted.
func encodeParams(params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == nil {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, k := range keys {
		values.Set(k, fmt.Sprint(params[k]))
	}
	return values.Encode()
}

// envelopeBody is the loosely-typed server body used for envelope parsing.
// The same shape carries both the wrapped success form ({data, meta}) and the
// error form ({code, message, details}).
type envelopeBody struct {
	Data    json.RawMessage `json:"data"`
	Meta    *Meta           `json:"meta"`
	Code    any             `json:"code"`
	Message string          `json:"message"`
	Details map[string]any  `json:"details"`
}

// decodeEnvelope maps an HTTP response into the envelope. The server may
// wrap the payload as {"data": ...} or send it bare; both are accepted. This
// is a deliberate compatibility shim, not a type error.
func decodeEnvelope[T any](resp *http.Response, payload []byte) *Response[T] {
	if !json.Valid(payload) {
		return networkError[T](fmt.Errorf("invalid JSON in response (status %d)", resp.StatusCode))
	}

	var body envelopeBody
	if isJSONObject(payload) {
		// Best effort; a shape mismatch just leaves fields zero and the
		// bare-body path below takes over.
		_ = json.Unmarshal(payload, &body)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		code := formatErrorCode(body.Code, resp.StatusCode)
		message := body.Message
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return &Response[T]{
			Success: false,
			Error: &Error{
				Code:    code,
				Message: message,
				Details: body.Details,
			},
		}
	}

	data := body.Data
	if len(data) == 0 || string(data) == "null" {
		data = payload
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return networkError[T](fmt.Errorf("decode response: %w", err))
	}

	return &Response[T]{
		Data:    out,
		Success: true,
		Meta:    body.Meta,
	}
}

func isJSONObject(payload []byte) bool {
	trimmed := bytes.TrimLeft(payload, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// formatErrorCode stringifies a server-supplied code, falling back to the
// HTTP status.
func formatErrorCode(code any, status int) string {
	switch v := code.(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%d", status)
}

// networkError wraps a transport or parse failure into the envelope.
func networkError[T any](err error) *Response[T] {
	message := "network error"
	if err != nil {
		message = err.Error()
	}
	return &Response[T]{
		Success: false,
		Error: &Error{
			Code:    ErrCodeNetwork,
			Message: message,
		},
	}
}
