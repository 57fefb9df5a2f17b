package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/muurk/devicepanel/internal/logging"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// DefaultMaxRetries is the default number of retry attempts for failed requests
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the default delay between retry attempts
	DefaultRetryDelay = 1 * time.Second

	// DefaultMaxRetryDelay is the maximum delay for exponential backoff
	DefaultMaxRetryDelay = 30 * time.Second

	// requestIDHeader carries a per-request correlation ID so failures can
	// be matched against console-side logs.
	requestIDHeader = "X-Request-Id"
)

// Client is an HTTP client for the account console's device endpoints.
type Client struct {
	// BaseURL is the console API base URL (e.g., "https://console.example.com/api")
	BaseURL string

	// AccessToken is the bearer token for the account
	AccessToken string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// MaxRetries is the maximum number of retry attempts for failed requests
	MaxRetries int

	// RetryDelay is the initial delay between retry attempts
	RetryDelay time.Duration

	// MaxRetryDelay is the maximum delay for exponential backoff
	MaxRetryDelay time.Duration

	// UseExponentialBackoff enables exponential backoff for retries
	UseExponentialBackoff bool
}

// NewClient creates a new console API client.
// baseURL: Console API base URL (e.g., "https://console.example.com/api")
// accessToken: Bearer token for the account
func NewClient(baseURL, accessToken string) *Client {
	return &Client{
		BaseURL:               strings.TrimRight(baseURL, "/"),
		AccessToken:           accessToken,
		HTTPClient:            &http.Client{Timeout: DefaultTimeout},
		MaxRetries:            DefaultMaxRetries,
		RetryDelay:            DefaultRetryDelay,
		MaxRetryDelay:         DefaultMaxRetryDelay,
		UseExponentialBackoff: true,
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// SetRetry configures retry behavior
func (c *Client) SetRetry(maxRetries int, retryDelay time.Duration) {
	c.MaxRetries = maxRetries
	c.RetryDelay = retryDelay
}

// GetDevices retrieves the account's device collection, keyed by MAC address.
// An empty account yields an empty (non-nil) collection.
func (c *Client) GetDevices(ctx context.Context) (DeviceCollection, error) {
	var devices DeviceCollection

	err := c.withRetry(ctx, OpFetch, func() error {
		body, err := c.do(ctx, OpFetch, http.MethodGet, "/devices", nil)
		if err != nil {
			return err
		}

		var envelope devicesResponse
		if err := json.Unmarshal(body, &envelope); err != nil {
			return newParseError(OpFetch, "failed to parse device list", err)
		}

		devices = envelope.Devices
		if devices == nil {
			devices = DeviceCollection{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return devices, nil
}

// UpdateDevice persists the editable fields of one device. The result is
// not surfaced to the panel beyond success or failure; coordinates are not
// part of the payload.
func (c *Client) UpdateDevice(ctx context.Context, update DeviceUpdate) error {
	payload, err := json.Marshal(update)
	if err != nil {
		return newParseError(OpPersist, "failed to encode device update", err)
	}

	return c.withRetry(ctx, OpPersist, func() error {
		_, err := c.do(ctx, OpPersist, http.MethodPut, "/devices/"+update.MACID, payload)
		return err
	})
}

// RemoveDevice deletes the device with the given MAC address from the account.
func (c *Client) RemoveDevice(ctx context.Context, macID string) error {
	return c.withRetry(ctx, OpRemoval, func() error {
		_, err := c.do(ctx, OpRemoval, http.MethodDelete, "/devices/"+macID, nil)
		return err
	})
}

// withRetry runs fn with the client's retry policy. Non-retryable errors
// abort immediately; context cancellation stops the loop between attempts.
func (c *Client) withRetry(ctx context.Context, op Operation, fn func() error) error {
	var lastErr error
	currentDelay := c.RetryDelay

	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return newNetworkError(op, "request cancelled", ctx.Err())
			case <-time.After(currentDelay):
			}

			// Exponential backoff
			if c.UseExponentialBackoff {
				currentDelay *= 2
				if currentDelay > c.MaxRetryDelay {
					currentDelay = c.MaxRetryDelay
				}
			}
		}

		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err

		if !IsRetryable(err) {
			return err
		}
	}

	return lastErr
}

// do performs a single HTTP request and returns the response body.
func (c *Client) do(ctx context.Context, op Operation, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, newNetworkError(op, "failed to create request", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logging.LogAPIRequest(requestID, method, path)
	start := time.Now()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, newNetworkError(op, fmt.Sprintf("%s %s failed", method, path), err)
	}
	defer func() { _ = resp.Body.Close() }()

	logging.LogAPIResponse(requestID, resp.StatusCode, time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, newAuthError(op, "authentication failed (check access token)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, newHTTPError(op, resp.StatusCode,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError(op, "failed to read response body", err)
	}

	return body, nil
}
