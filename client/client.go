// Package client is a typed consumer of the ordering REST contract. It holds
// no derived state: every call returns the server's authoritative view and
// callers recompute whatever they need from it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// GenericFailureMessage is shown when the server supplies no detail text.
const GenericFailureMessage = "Something went wrong. Please try again."

// APIError carries the HTTP status and the server-supplied detail text.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// UserMessage returns the server detail when present, else a generic fallback.
func (e *APIError) UserMessage() string {
	if e.Detail != "" {
		return e.Detail
	}
	return GenericFailureMessage
}

// ErrorMessage extracts a user-facing message from any error returned by this
// package, preferring server-supplied detail.
func ErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	if err != nil {
		return GenericFailureMessage
	}
	return ""
}

// Client talks to the ordering backend with a bearer credential attached to
// every call. Mutating calls are never retried; reads may be safely re-issued
// by callers.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: http.DefaultClient,
	}
}

// SetToken attaches the bearer credential used on subsequent calls.
func (c *Client) SetToken(token string) {
	c.Token = token
}

// do issues one request and decodes the response into out (when non-nil).
// Non-2xx responses become *APIError with the server's detail text.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	var req *http.Request
	var err error
	if reqBody != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.BaseURL+path, nil)
	}
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Detail string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return &APIError{StatusCode: resp.StatusCode, Detail: errBody.Detail}
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
