package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client submits the contact form to a running server the way the site's
// form does: store first, then email.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient returns a client for the server at baseURL.
func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: hc}
}

// Submit validates m, posts it to /api/contact and, only if that
// succeeded, to /api/send-email. It succeeds only when both calls do. When
// the server reports it already sent the notification, the second call is
// skipped. The
// returned error is a *ValidationError or wraps ErrInsertFailed or
// ErrEmailFailed; UserMessage turns it into the text shown to the visitor.
func (c *Client) Submit(ctx context.Context, m Message) error {
	m = m.Normalize()
	if err := m.Validate(); err != nil {
		return err
	}
	stored, err := c.post(ctx, "/api/contact", m)
	if err != nil {
		if stored.Error == TextEmailFailed {
			// Stored, but the server-side notification failed.
			return fmt.Errorf("%w: %v", ErrEmailFailed, err)
		}
		return fmt.Errorf("%w: %v", ErrInsertFailed, err)
	}
	if stored.Notified {
		return nil
	}
	if _, err := c.post(ctx, "/api/send-email", m); err != nil {
		return fmt.Errorf("%w: %v", ErrEmailFailed, err)
	}
	return nil
}

// Response is the JSON envelope returned by the contact endpoints.
type Response struct {
	Success  bool         `json:"success,omitempty"`
	Data     any          `json:"data,omitempty"`
	Notified bool         `json:"notified,omitempty"`
	Error    string       `json:"error,omitempty"`
	Fields   []FieldError `json:"fields,omitempty"`
}

func (c *Client) post(ctx context.Context, path string, m Message) (Response, error) {
	var env Response

	body, err := json.Marshal(m)
	if err != nil {
		return env, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return env, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return env, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode/100 != 2 {
		if decodeErr == nil && env.Error != "" {
			return env, fmt.Errorf("%s: %s", resp.Status, env.Error)
		}
		return env, fmt.Errorf("%s", resp.Status)
	}
	return env, nil
}
