package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"daily-energy/pkg/logger"
)

const (
	DefaultBaseURL       = "http://localhost:8080/api"
	DefaultTimeout       = 30 * time.Second
	DefaultUploadTimeout = 60 * time.Second
)

// TokenSource provides the bearer token for endpoints that need auth.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

type ClientConfig struct {
	BaseURL       string
	Timeout       time.Duration
	UploadTimeout time.Duration
	// DeviceID is sent as X-Device-Id when set.
	DeviceID string
	// HTTPClient and UploadHTTPClient override the clients built from the
	// timeouts above. Tests point them at httptest servers.
	HTTPClient       *http.Client
	UploadHTTPClient *http.Client
}

// Client executes exactly one HTTP request per call and classifies the result.
// It holds no per-call state and is safe for concurrent use.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	uploadClient *http.Client
	tokens       TokenSource
	deviceID     string
	logger       *logger.Logger
}

func NewClient(cfg ClientConfig, tokens TokenSource, l *logger.Logger) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	uploadTimeout := cfg.UploadTimeout
	if uploadTimeout <= 0 {
		uploadTimeout = DefaultUploadTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	uploadClient := cfg.UploadHTTPClient
	if uploadClient == nil {
		uploadClient = &http.Client{Timeout: uploadTimeout}
	}
	if l == nil {
		l = logger.NewNop()
	}

	return &Client{
		baseURL:      baseURL,
		httpClient:   httpClient,
		uploadClient: uploadClient,
		tokens:       tokens,
		deviceID:     cfg.DeviceID,
		logger:       l,
	}
}

// WithTokens returns a copy of c that authenticates with tokens.
// The underlying HTTP clients are shared.
func (c *Client) WithTokens(tokens TokenSource) *Client {
	cp := *c
	cp.tokens = tokens
	return &cp
}

// BaseURL is the prefix every endpoint path is appended to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends e and unwraps the envelope data into T.
func Do[T any](ctx context.Context, c *Client, e Endpoint) (T, error) {
	var zero T
	route := Resolve(e)

	body, err := encodeBody(route.Params)
	if err != nil {
		return zero, err
	}
	status, raw, err := c.send(ctx, c.httpClient, route, body, "application/json")
	if err != nil {
		return zero, err
	}
	return decodeEnvelope[T](status, raw)
}

// DoArray sends e and parses the response as a bare JSON array of T.
// Elements that are null or fail to parse are dropped.
func DoArray[T any](ctx context.Context, c *Client, e Endpoint) ([]T, error) {
	route := Resolve(e)

	body, err := encodeBody(route.Params)
	if err != nil {
		return nil, err
	}
	status, raw, err := c.send(ctx, c.httpClient, route, body, "application/json")
	if err != nil {
		return nil, err
	}
	return decodeArray[T](status, raw)
}

// Upload sends data as the multipart part "file", with every endpoint
// parameter added as a string field, and unwraps the envelope like Do.
func Upload[T any](ctx context.Context, c *Client, e Endpoint, data []byte, filename, mimeType string) (T, error) {
	var zero T
	route := Resolve(e)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(filename)))
	header.Set("Content-Type", mimeType)
	part, err := w.CreatePart(header)
	if err != nil {
		return zero, EncodingError(err)
	}
	if _, err := part.Write(data); err != nil {
		return zero, EncodingError(err)
	}
	for _, p := range route.Params {
		if err := w.WriteField(p.Key, formValue(p.Value)); err != nil {
			return zero, EncodingError(err)
		}
	}
	if err := w.Close(); err != nil {
		return zero, EncodingError(err)
	}

	status, raw, err := c.send(ctx, c.uploadClient, route, &buf, w.FormDataContentType())
	if err != nil {
		return zero, err
	}
	return decodeEnvelope[T](status, raw)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func encodeBody(p Params) (io.Reader, error) {
	if p == nil {
		return nil, nil
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, EncodingError(err)
	}
	return bytes.NewReader(raw), nil
}

func (c *Client) send(ctx context.Context, hc *http.Client, route Route, body io.Reader, contentType string) (int, []byte, error) {
	target := c.baseURL + route.Path
	if u, err := url.Parse(target); err != nil || u.Scheme == "" || u.Host == "" {
		return 0, nil, newError(KindInvalidURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, route.Method, target, body)
	if err != nil {
		return 0, nil, newError(KindInvalidURL, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if route.NeedsAuth && c.tokens != nil {
		if token, ok := c.tokens.Token(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if c.deviceID != "" {
		req.Header.Set("X-Device-Id", c.deviceID)
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		apiErr := classifyTransport(err)
		c.logger.Warnw("API request failed",
			"method", route.Method, "path", route.Path,
			"kind", apiErr.Kind.String(), "error", err)
		return 0, nil, apiErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr := classifyTransport(err)
		c.logger.Warnw("Failed to read API response",
			"method", route.Method, "path", route.Path,
			"kind", apiErr.Kind.String(), "error", err)
		return 0, nil, apiErr
	}

	c.logger.Debugw("API request completed",
		"method", route.Method,
		"path", route.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	return resp.StatusCode, raw, nil
}
