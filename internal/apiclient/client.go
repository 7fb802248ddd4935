package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"codeberg.org/capworks/portal/internal/presenter"
)

// upper bound on error bodies kept for presentation
const maxErrorBody = 1 << 20

// supplies the bearer token for outgoing requests
type TokenSource interface {
	Token() string
}

// manages HTTP requests to the cap REST API
type Client struct {
	endpoint   string
	httpClient *http.Client
	tokens     TokenSource
}

// creates a new REST client. tokens may be nil for anonymous use.
func New(endpoint string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokens: tokens,
	}
}

// a non-2xx response. it carries the status and the raw body so the
// presentation layer can derive messages from it.
type ResponseError struct {
	Method string
	Path   string
	Status int
	Body   []byte
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

func (e *ResponseError) StatusCode() int {
	return e.Status
}

func (e *ResponseError) Payload() (presenter.ErrorPayload, error) {
	return presenter.ParsePayload(e.Body)
}

var _ presenter.Response = (*ResponseError)(nil)

// sends a request with an optional JSON body and decodes the JSON response
// into out when out is non-nil
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader

	if body != nil {
		payloadBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payloadBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if err != nil {
			return fmt.Errorf("failed to read error response: %w", err)
		}

		return &ResponseError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   errBody,
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
