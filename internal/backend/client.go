// Package backend is the HTTP client for the remote platform API that
// now owns all user data. Every request carries the service bearer
// credential; user-scoped requests additionally carry the caller's
// identity in the X-User-ID header.
package backend

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

	"golang.org/x/oauth2"

	"github.com/voyalab/backplane/internal/logging"
	"github.com/voyalab/backplane/internal/util"
)

// ErrNotFound marks a 404 (or other non-success icon fetch) from the
// backend so callers can map it without string matching.
var ErrNotFound = errors.New("backend: not found")

// Client talks to the remote backend API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the backend at baseURL authenticating
// with the given service API key.
func NewClient(baseURL, apiKey string) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey})
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = 30 * time.Second
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// doJSON performs one API request under /api/v1. userID, when
// non-empty, is injected as the X-User-ID header. out, when non-nil,
// receives the decoded JSON response body.
func (c *Client) doJSON(ctx context.Context, userID, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + "/api/v1" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	if requestID := logging.GetRequestID(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logging.Debugf("backend %s %s -> %d: %s", method, path, resp.StatusCode, util.TruncateBytes(respBody))
		return apiError(method, path, resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}
	return nil
}

// apiError extracts the backend's error message from a non-2xx
// response body. The backend answers either {"error": {"message": …}},
// {"error": "…"} or {"detail": "…"}.
func apiError(method, path string, status int, body []byte) error {
	msg := extractErrorMessage(body)
	base := fmt.Errorf("backend %s %s: status %d: %s", method, path, status, msg)
	if status == http.StatusNotFound {
		return fmt.Errorf("%w: %v", ErrNotFound, base)
	}
	return base
}

func extractErrorMessage(body []byte) string {
	var nested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &nested) == nil && nested.Error.Message != "" {
		return nested.Error.Message
	}

	var flat struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &flat) == nil {
		if flat.Error != "" {
			return flat.Error
		}
		if flat.Detail != "" {
			return flat.Detail
		}
	}

	s := strings.TrimSpace(string(body))
	if s == "" {
		return "(empty body)"
	}
	return util.TruncateLog(s, 200)
}
