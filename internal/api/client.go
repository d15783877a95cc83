package api

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

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/config"
)

const RequestIDHeader = "X-Request-ID"

type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
	retries    int
	backoff    time.Duration
	log        logrus.FieldLogger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) { c.log = l }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

// WithRetries sets how many extra attempts idempotent reads get.
func WithRetries(n int, backoff time.Duration) Option {
	return func(c *Client) {
		if n < 0 {
			n = 0
		}
		c.retries = n
		c.backoff = backoff
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL: %q", baseURL)
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewFromConfig builds a client from the api section of cfg.
func NewFromConfig(cfg *config.Config, log logrus.FieldLogger) (*Client, error) {
	return New(cfg.API.BaseURL,
		WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		WithRetries(cfg.API.Retries, cfg.API.RetryBackoff),
		WithToken(cfg.APIToken()),
		WithLogger(log),
	)
}

func (c *Client) BaseURL() string { return c.baseURL.String() }

// GetJSON issues a GET and decodes the body into out. Transient failures are
// retried up to the configured count.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = c.doJSON(ctx, http.MethodGet, path, query, nil, out)
		if err == nil || attempt >= c.retries || !shouldRetry(ctx, err) {
			return err
		}

		wait := c.backoff * time.Duration(attempt+1)
		c.log.WithFields(logrus.Fields{
			"path":    path,
			"attempt": attempt + 1,
			"wait":    wait.String(),
		}).Debugf("retrying request: %v", err)

		select {
		case <-ctx.Done():
			return &NetworkError{Method: http.MethodGet, Path: path, Err: ctx.Err()}
		case <-time.After(wait):
		}
	}
}

func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) PutJSON(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

func shouldRetry(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var se *ServerError
	if errors.As(err, &se) {
		return se.retryable()
	}
	return IsNetwork(err)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, reqBody, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("json marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	entry := c.log.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"request_id": requestID,
		"latency_ms": float64(time.Since(start).Microseconds()) / 1000.0,
	})
	if err != nil {
		entry.Debugf("request failed: %v", err)
		return &NetworkError{Method: method, Path: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	entry.WithField("status", resp.StatusCode).Debug("request completed")

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Method: method, Path: path, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ServerError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Detail: parseDetail(respBody),
			Body:   strings.TrimSpace(string(respBody)),
		}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("json unmarshal response from %s: %w", path, err)
	}
	return nil
}
