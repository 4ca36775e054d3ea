// Package apiclient talks to the remote burger API. The API performs
// signature verification and authorization; this client only attaches the
// bearer token when a live session exists.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/daburgger/daburgger/internal/session"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   *session.Store
}

func New(baseURL string, sessions *session.Store) *Client {
	return &Client{
		baseURL:  baseURL,
		sessions: sessions,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// RequestError carries the HTTP status and whatever structured or
// unstructured payload the backend returned with a non-2xx response.
type RequestError struct {
	Status  int
	Payload any
}

func (e *RequestError) Error() string {
	if m, ok := e.Payload.(map[string]any); ok {
		for _, k := range []string{"message", "error"} {
			if s, ok := m[k].(string); ok && s != "" {
				return s
			}
		}
	}
	return fmt.Sprintf("Request failed (%d)", e.Status)
}

// Request issues method against baseURL+path with an optional JSON body.
// The response body is read as text and JSON-parsed with a raw-text
// fallback, since the backend sometimes double-encodes JSON inside a string
// envelope.
func (c *Client) Request(ctx context.Context, method, path string, body any) (any, error) {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if c.sessions != nil {
		if s, err := c.sessions.Load(ctx); err == nil && !s.Expired(time.Now()) && s.AccessToken != "" {
			req.Header.Set("Authorization", "Bearer "+s.AccessToken)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var data any
	if err := json.Unmarshal(text, &data); err != nil {
		data = string(text)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{Status: resp.StatusCode, Payload: data}
	}
	return data, nil
}
