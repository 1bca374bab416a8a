// Package client talks to an onboard server over its JSON API, satisfying
// the same collaborator contracts as the local stores.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"onboard-project/internal/domain"
)

// TransportError is a non-success response from the server. The message is
// taken from the body's "message" or "error" field when present, else it
// falls back to the HTTP status.
type TransportError struct {
	Status  int
	Message string
}

func (e *TransportError) Error() string {
	return e.Message
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) FetchConfig(ctx context.Context) (domain.Pages, error) {
	var pages domain.Pages
	if err := c.do(ctx, http.MethodGet, "/api/config", nil, &pages); err != nil {
		return domain.Pages{}, err
	}
	return pages, nil
}

func (c *Client) PersistConfig(ctx context.Context, candidate []domain.PageConfig) (domain.Pages, error) {
	// The server returns the normalized configuration, not an echo of the
	// input; callers refresh their caches from it.
	var pages domain.Pages
	body := domain.Pages{Pages: candidate}
	if err := c.do(ctx, http.MethodPut, "/api/config", body, &pages); err != nil {
		return domain.Pages{}, err
	}
	return pages, nil
}

func (c *Client) PersistSubmission(ctx context.Context, record domain.Submission) (string, error) {
	var res struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/onboarding", record, &res); err != nil {
		return "", err
	}
	return res.ID, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &TransportError{Status: res.StatusCode, Message: extractMessage(res)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func extractMessage(res *http.Response) string {
	var detail struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	if err := json.NewDecoder(res.Body).Decode(&detail); err == nil {
		if detail.Message != "" {
			return detail.Message
		}
		if detail.Err != "" {
			return detail.Err
		}
	}
	return fmt.Sprintf("HTTP %d", res.StatusCode)
}
