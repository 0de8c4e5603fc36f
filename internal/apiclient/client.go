// Package apiclient talks to a running photo-prefs server.
package apiclient

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/kozaktomas/photo-prefs/internal/constants"
	"github.com/kozaktomas/photo-prefs/internal/faceprogress"
	"github.com/kozaktomas/photo-prefs/internal/preferences"
)

const apiPrefix = "/api/v1/"

// Client is an HTTP client for the photo-prefs API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// New creates a client for the server at baseURL (e.g. http://localhost:8080).
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid server URL %q: scheme must be http or https", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: parsed, httpClient: httpClient}, nil
}

func (c *Client) resolveURL(endpoint string) string {
	return c.baseURL.String() + apiPrefix + strings.TrimLeft(endpoint, "/")
}

// GetPreferences returns the resolved preferences of a user.
func (c *Client) GetPreferences(ctx context.Context, userID string) (*preferences.Response, error) {
	return doRequestJSON[preferences.Response](ctx, c, http.MethodGet, "users/"+url.PathEscape(userID)+"/preferences", nil, http.StatusOK)
}

// UpdatePreferences sends a partial update and returns the resolved result.
// The payload is sent as-is so the server performs validation.
func (c *Client) UpdatePreferences(ctx context.Context, userID string, payload json.RawMessage) (*preferences.Response, error) {
	return doRequestJSON[preferences.Response](ctx, c, http.MethodPut, "users/"+url.PathEscape(userID)+"/preferences", payload, http.StatusOK)
}

// ResetPreferences drops the stored overrides of a user and returns the defaults.
func (c *Client) ResetPreferences(ctx context.Context, userID string) (*preferences.Response, error) {
	return doRequestJSON[preferences.Response](ctx, c, http.MethodDelete, "users/"+url.PathEscape(userID)+"/preferences", nil, http.StatusOK)
}

// GetFaceProgress returns the active face progress, nil when idle.
func (c *Client) GetFaceProgress(ctx context.Context) (*faceprogress.Progress, error) {
	p, err := doRequestJSON[*faceprogress.Progress](ctx, c, http.MethodGet, "faces/video-progress", nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return *p, nil
}

// ReportFaceProgress reports the progress of a video face detection job.
func (c *Client) ReportFaceProgress(ctx context.Context, p faceprogress.Progress) error {
	_, err := doRequestJSON[json.RawMessage](ctx, c, http.MethodPut, "faces/video-progress", p, http.StatusOK)
	return err
}

// ResetFaceProgress clears the server's face progress.
func (c *Client) ResetFaceProgress(ctx context.Context) error {
	_, err := doRequestJSON[json.RawMessage](ctx, c, http.MethodDelete, "faces/video-progress", nil, http.StatusOK)
	return err
}

// FollowFaceProgress streams face progress events from the server into store
// until ctx is cancelled or the server closes the stream.
func (c *Client) FollowFaceProgress(ctx context.Context, store *faceprogress.Store) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolveURL("faces/video-progress/events"), nil)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	err = readEvents(resp.Body, func(eventType string, data []byte) error {
		if eventType != constants.SSEEventProgress {
			return nil
		}
		var p *faceprogress.Progress
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("could not decode progress event: %w", err)
		}
		if p == nil {
			store.Reset()
			return nil
		}
		store.SetProgress(p.AssetID, p.Processed, p.Total)
		return nil
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// readEvents parses a text/event-stream body and calls fn for every event.
func readEvents(r io.Reader, fn func(eventType string, data []byte) error) error {
	scanner := bufio.NewScanner(r)
	eventType := "message"
	var data []byte

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if data != nil {
				if err := fn(eventType, data); err != nil {
					return err
				}
			}
			eventType = "message"
			data = nil
		case strings.HasPrefix(line, ":"):
			// comment
		case strings.HasPrefix(line, "event:"):
			eventType = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			chunk := strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " ")
			if data != nil {
				data = append(data, '\n')
			}
			data = append(data, chunk...)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading event stream: %w", err)
	}
	return nil
}

// doRequestJSON performs a request with an optional JSON body and decodes the JSON response.
func doRequestJSON[T any](ctx context.Context, c *Client, method, endpoint string, requestBody any, expectedStatuses ...int) (*T, error) {
	var bodyReader io.Reader
	if requestBody != nil {
		jsonBody, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("could not marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolveURL(endpoint), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	if requestBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	if !slices.Contains(expectedStatuses, resp.StatusCode) {
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	var result T
	if len(body) == 0 {
		return &result, nil
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("could not unmarshal response: %w", err)
	}
	return &result, nil
}

// readErrorBody reads a bounded error body for inclusion in error messages.
func readErrorBody(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return "(could not read body)"
	}
	return strings.TrimSpace(string(body))
}
