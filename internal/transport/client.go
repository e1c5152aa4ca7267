// Package transport issues REST calls against the booking API: it attaches
// the bearer token from durable storage, classifies failures into a small
// error taxonomy, and hooks 401 responses for global session teardown.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/AbdulAhadaa/stayfinder-client/internal/metrics"
)

const defaultTimeout = 10 * time.Second

// TokenSource yields the access token attached to outgoing requests.
// Implemented by the durable session storage.
type TokenSource interface {
	Token() (string, bool)
}

// Upload is one file in a multipart upload.
type Upload struct {
	Filename string
	Content  []byte
}

// Response is the raw outcome of a successful request.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// HealthStatus is the result of the backend health probe.
type HealthStatus struct {
	Status       string    `json:"status"`
	ResponseTime string    `json:"responseTime"`
	CheckedAt    time.Time `json:"timestamp"`
}

// Config carries the settings for building a Client.
type Config struct {
	BaseURL string
	// Timeout bounds every request; defaults to 10s when zero.
	Timeout time.Duration
	Tokens  TokenSource
	Logger  zerolog.Logger
}

// Client is the HTTP wrapper all domain services call through.
type Client struct {
	baseURL      string
	http         *http.Client
	tokens       TokenSource
	unauthorized func()
	log          zerolog.Logger
}

// New builds a Client from cfg.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  cfg.Tokens,
		log:     cfg.Logger,
	}
}

// OnUnauthorized registers the hook invoked whenever any request comes back
// 401. Register during composition, before the first request is issued.
func (c *Client) OnUnauthorized(fn func()) {
	c.unauthorized = fn
}

// Do issues a request with an optional JSON body and returns the raw
// response. Failures are always *APIError values.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	var reader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.send(ctx, method, path, reader, contentType)
}

// JSON issues a request and decodes the response body into out (when out is
// non-nil and a body is present).
func (c *Client) JSON(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.Do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(resp.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// PostMultipart uploads files under the given form field and decodes the
// response into out.
func (c *Client) PostMultipart(ctx context.Context, path, field string, files []Upload, out any) error {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for _, f := range files {
		part, err := w.CreateFormFile(field, f.Filename)
		if err != nil {
			return fmt.Errorf("multipart %s: %w", f.Filename, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return fmt.Errorf("multipart %s: %w", f.Filename, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("multipart: %w", err)
	}

	resp, err := c.send(ctx, http.MethodPost, path, buf, w.FormDataContentType())
	if err != nil {
		return err
	}
	if out == nil || len(resp.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("decode POST %s: %w", path, err)
	}
	return nil
}

// Health probes GET /health with a 5s budget.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resp, err := c.Do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, fmt.Errorf("backend health check failed: %w", err)
	}

	rt := resp.Header.Get("X-Response-Time")
	if rt == "" {
		rt = "unknown"
	}
	return &HealthStatus{
		Status:       "healthy",
		ResponseTime: rt,
		CheckedAt:    time.Now().UTC(),
	}, nil
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string) (*Response, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.log.Debug().Str("method", method).Str("url", req.URL.String()).Msg("api request")

	resp, err := c.http.Do(req)
	metrics.RequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		apiErr := classifyTransport(err)
		metrics.RequestsTotal.WithLabelValues(method, string(apiErr.Kind)).Inc()
		metrics.RequestErrorsTotal.WithLabelValues(string(apiErr.Kind)).Inc()
		c.log.Debug().Err(err).Str("method", method).Str("path", path).
			Str("kind", string(apiErr.Kind)).Msg("api request failed")
		return nil, apiErr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(method, string(KindUnreachable)).Inc()
		metrics.RequestErrorsTotal.WithLabelValues(string(KindUnreachable)).Inc()
		return nil, &APIError{Kind: KindUnreachable, Message: "Network error. Cannot reach the server."}
	}

	c.log.Debug().Str("method", method).Str("path", path).
		Int("status", resp.StatusCode).Int("bytes", len(data)).
		Dur("elapsed", time.Since(start)).Msg("api response")

	if resp.StatusCode >= 400 {
		apiErr := classifyStatus(resp.StatusCode, data)
		metrics.RequestsTotal.WithLabelValues(method, string(apiErr.Kind)).Inc()
		metrics.RequestErrorsTotal.WithLabelValues(string(apiErr.Kind)).Inc()
		if apiErr.Kind == KindUnauthorized && c.unauthorized != nil {
			c.unauthorized()
		}
		return nil, apiErr
	}

	metrics.RequestsTotal.WithLabelValues(method, "ok").Inc()
	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: data}, nil
}
