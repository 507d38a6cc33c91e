// Package api is the HTTP client for the remote student progress
// service. Request outcomes are fed to the connectivity observer so the
// rest of the client learns about offline/online transitions.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dentaltrack/student-progress/internal/client/connectivity"
	"github.com/dentaltrack/student-progress/internal/models"
	"github.com/rs/zerolog"
)

// ErrOffline wraps transport-level failures: the service never saw the
// request (as far as the client knows), so the write is safe to queue.
var ErrOffline = errors.New("service unreachable")

// IsOffline reports whether the error is a transport failure rather
// than a service-side rejection.
func IsOffline(err error) bool {
	return errors.Is(err, ErrOffline)
}

// StatusError is a non-2xx response decoded from the service.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("service returned status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	token      string
	retryCount int
	retryDelay time.Duration
	client     *http.Client
	observer   *connectivity.Observer
	logger     zerolog.Logger
}

func New(baseURL string, timeout time.Duration, retryCount int, retryDelay time.Duration, observer *connectivity.Observer, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		retryCount: retryCount,
		retryDelay: retryDelay,
		client: &http.Client{
			Timeout: timeout,
		},
		observer: observer,
		logger:   logger,
	}
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Login(ctx context.Context, email string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", models.LoginRequest{Email: email}, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

func (c *Client) CreateCase(ctx context.Context, req *models.CreateCaseRequest) (*models.CreateCaseResponse, error) {
	var resp models.CreateCaseResponse
	if err := c.do(ctx, http.MethodPost, "/cases", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteCase(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/cases/"+id, nil, nil)
}

func (c *Client) CreateResearch(ctx context.Context, req *models.CreateResearchRequest) (*models.CreateResearchResponse, error) {
	var resp models.CreateResearchResponse
	if err := c.do(ctx, http.MethodPost, "/research", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var resp models.Dashboard
	if err := c.do(ctx, http.MethodGet, "/dashboard", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Validate(ctx context.Context, itemType, id string) error {
	return c.do(ctx, http.MethodPost, "/validate/"+itemType+"/"+id, struct{}{}, nil)
}

// Ping probes the health endpoint, feeding the result to the observer.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// do runs one request with retries on transport failure. Any response
// from the service, success or not, counts as being online; only
// transport failures after every retry are reported offline and wrapped
// in ErrOffline.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		payload = raw
	}

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.retryCount; attempt++ {
		if attempt > 0 {
			c.logger.Warn().Int("attempt", attempt).Str("path", path).Msg("Retrying request")
			select {
			case <-time.After(c.retryDelay * time.Duration(attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, lastErr = c.client.Do(req)
		if lastErr == nil {
			break
		}
	}

	if lastErr != nil {
		c.report(false)
		return fmt.Errorf("%w: %v", ErrOffline, lastErr)
	}
	defer resp.Body.Close()

	c.report(true)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(raw, &errBody); err != nil || errBody.Error == "" {
			errBody.Error = string(raw)
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: errBody.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) report(online bool) {
	if c.observer != nil {
		c.observer.Report(online)
	}
}
