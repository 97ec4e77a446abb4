// Package api talks to the remote matchup REST API. It owns the HTTP client,
// one gateway per entity family (venues, challenges, profiles), and the error
// classifier the UI layer uses to render failures.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/matchup-app/matchup/internal/wire"
)

// Error is a remote failure: the server was reached and answered non-2xx, or
// could not be reached at all. Status 0 is reserved for "no connection".
type Error struct {
	Status  int
	Message string
	Details map[string]string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// ValidationError is a caller-input failure raised before any network call.
// It never reaches the shared error slot; forms handle it directly.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Client issues requests against the API base URL. It holds no entity state;
// the store owns the canonical copies.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	dec        wire.Decoder
}

type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("BaseURL is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
		dec:        wire.Decoder{Logger: logger},
	}, nil
}

// do sends one JSON request and returns the raw 2xx body. Any transport
// failure becomes *Error with status 0; any non-2xx response becomes *Error
// with the server's message when the body carries one.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Status: 0, Message: "could not reach server: " + err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Status: 0, Message: "reading response: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
		// Error bodies carry {message, details} when the server can manage
		// it; anything unparseable keeps the generic message.
		var parsed struct {
			Message string            `json:"message"`
			Details map[string]string `json:"details"`
		}
		if err := json.Unmarshal(data, &parsed); err == nil && parsed.Message != "" {
			apiErr.Message = parsed.Message
			apiErr.Details = parsed.Details
		}
		c.logger.Warn("api request failed",
			"method", method, "path", path, "status", resp.StatusCode)
		return nil, apiErr
	}

	return data, nil
}
