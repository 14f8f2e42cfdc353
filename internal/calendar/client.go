package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// StatusError reports a non-success HTTP status from the calendar backend,
// carrying whatever error text the backend included.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("calendar backend returned %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("calendar backend returned %d", e.Code)
}

// Client talks to the calendar backend's two JSON endpoints.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// ListEvents fetches every event the backend knows about. No filters; range
// queries are filtered client-side by the caller.
func (c *Client) ListEvents(ctx context.Context) ([]Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/get_eventList", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var body listResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode event list: %w", err)
	}
	return body.Data, nil
}

// CreateEvent submits a draft to the backend. Success is HTTP 201; any other
// status comes back as a *StatusError with the backend's error text. No retry,
// no idempotency key: at-most-once.
func (c *Client) CreateEvent(ctx context.Context, draft EventDraft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal event draft: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/create_event", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		var e errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		msg := e.Error
		if msg == "" {
			msg = "No error message"
		}
		return &StatusError{Code: resp.StatusCode, Message: msg}
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
