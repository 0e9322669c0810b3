package transport

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
	"go.uber.org/zap"
)

// Error is a network or HTTP-level failure. Callers receive it as a value;
// nothing at this boundary panics or retries.
type Error struct {
	Message    string
	StatusCode int // 0 for network-level failures
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport: HTTP %d: %s", e.StatusCode, e.Message)
	}
	return "transport: " + e.Message
}

// Client performs authenticated JSON requests against the backend.
// One call is one network attempt.
type Client struct {
	baseURL  string
	initData string
	http     *http.Client
	logger   *zap.Logger
}

// New creates a transport client for the given backend root URL.
// initData is the identity credential attached to every request; an empty
// credential is sent as-is (the identity provider owns that decision).
func New(baseURL, initData string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		initData: initData,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Do sends a single request to baseURL/endpoint and returns the raw response
// body. body (if non-nil) is JSON-encoded. On network failure or a non-2xx
// status it returns a *Error; if the failure body carries a backend error
// string, that string is used as the message.
func (c *Client) Do(ctx context.Context, method, endpoint string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Message: "encode request: " + err.Error()}
		}
		reader = bytes.NewReader(encoded)
	}

	url := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, &Error{Message: "build request: " + err.Error()}
	}

	requestID := uuid.New().String()
	req.Header.Set("initData", c.initData)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, &Error{Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Message: "read response: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("non-2xx response",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode))
		return nil, &Error{Message: failureMessage(raw, resp.StatusCode), StatusCode: resp.StatusCode}
	}

	return raw, nil
}

// failureMessage extracts the backend-provided error string from a failure
// body, falling back to the HTTP status text.
func failureMessage(raw []byte, status int) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return http.StatusText(status)
}
