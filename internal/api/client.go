package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Environment selects a deployment of the marketplace API
type Environment string

const (
	EnvLocal       Environment = "local"
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// BaseURL returns the API root of an environment
func (e Environment) BaseURL() (string, error) {
	switch e {
	case EnvLocal:
		return "http://localhost:8001", nil
	case EnvDevelopment, "":
		return "https://dev-api.caro.lk", nil
	case EnvStaging:
		return "https://staging-api.caro.lk", nil
	case EnvProduction:
		return "https://api.caro.lk", nil
	}
	return "", fmt.Errorf("unknown environment %q", string(e))
}

const (
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5
	DefaultBurst     = 10
)

// StatusError is a non-2xx response
type StatusError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Status, http.StatusText(e.Status))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// ErrNotFound matches a StatusError with status 404
var ErrNotFound = errors.New("not found")

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Options configure a Client. BaseURL wins over Environment.
type Options struct {
	BaseURL     string
	Environment Environment
	Token       string
	Timeout     time.Duration
	// RateLimit is the sustained number of requests per second; zero uses
	// the default, a negative value disables limiting
	RateLimit  float64
	Burst      int
	HTTPClient *http.Client
}

// Client talks to the marketplace REST API
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	limiter *rate.Limiter
}

// New creates a client from opts
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		var err error
		if base, err = opts.Environment.BaseURL(); err != nil {
			return nil, err
		}
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("failed to parse base url: %w", err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	limit, burst := rate.Limit(opts.RateLimit), opts.Burst
	switch {
	case opts.RateLimit < 0:
		limit = rate.Inf
	case opts.RateLimit == 0:
		limit = DefaultRateLimit
	}
	if burst <= 0 {
		burst = DefaultBurst
	}

	return &Client{
		baseURL: base,
		token:   opts.Token,
		client:  httpClient,
		limiter: rate.NewLimiter(limit, burst),
	}, nil
}

// BaseURL is the API root requests are sent to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// getJSON performs a GET and decodes the body into response
func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, response any) error {
	body, err := c.doRequest(ctx, http.MethodGet, endpoint, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, response); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, method, endpoint string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("request was cancelled: %w", err)
	}

	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("request was cancelled: %w", ctx.Err())
		default:
			return nil, fmt.Errorf("failed to execute request: %w", err)
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	log.Printf("api: %s %s -> %d in %s [%s]", method, endpoint, resp.StatusCode, time.Since(start).Round(time.Millisecond), requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Method: method,
			URL:    endpoint,
			Status: resp.StatusCode,
			Body:   errorDetail(body),
		}
	}
	return body, nil
}

// errorDetail extracts the API's "detail" message, falling back to the
// trimmed body
func errorDetail(body []byte) string {
	var payload struct {
		Detail  any    `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if s, ok := payload.Detail.(string); ok && s != "" {
			return s
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	body = bytes.TrimSpace(body)
	if len(body) > 200 {
		body = body[:200]
	}
	return string(body)
}
