// Package client is the single HTTP dispatch point for the DevExp API.
// Every outgoing request reads the bearer token from the session store,
// and a 401 response invalidates that store exactly once before the
// error reaches the caller. No retries happen here; retry policy, if
// any, belongs to the caller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/devexp-dev/devexp/internal/cli/session"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
)

// Client talks to the DevExp API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      session.Store
}

// New creates an API client against baseURL, reading credentials from
// the given session store.
func New(baseURL string, store session.Store) *Client {
	return &Client{
		baseURL: baseURL,
		store:   store,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetHTTPClient sets a custom HTTP client.
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// do dispatches one request. body is JSON-marshaled when non-nil. A 2xx
// response is decoded into out (raw text when out is *string); any
// other outcome comes back as an *APIError.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token := c.store.Current().Token
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	requestID := ulid.Make().String()
	req.Header.Set("X-Request-Id", requestID)

	log.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Bool("authenticated", token != "").
		Msg("dispatching API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Kind: KindNetwork, Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(respBody) == 0 {
			return nil
		}
		if s, ok := out.(*string); ok {
			*s = string(respBody)
			return nil
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	apiErr := &APIError{
		Kind:    kindForStatus(resp.StatusCode),
		Status:  resp.StatusCode,
		Message: messageFromBody(respBody),
		Body:    respBody,
	}

	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		// The credential the request carried is no longer honored.
		// Invalidate the session once; navigation is the caller's job.
		if clearErr := c.store.Clear(); clearErr != nil {
			log.Warn().Err(clearErr).Msg("failed to clear invalidated session")
		}
	}

	log.Debug().
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Str("kind", apiErr.Kind.String()).
		Msg("API request failed")

	return apiErr
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindUnknown
	}
}

// messageFromBody extracts the API's {"message": ...} field, falling
// back to the raw body.
func messageFromBody(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return string(body)
}
