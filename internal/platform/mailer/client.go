package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the transactional mail provider's HTTP API.
type Client struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
	from       string
}

// Message is one outbound transactional email.
type Message struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type apiResponse struct {
	OK    bool   `json:"ok"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

func NewClient(apiURL, apiKey, from string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		apiURL: apiURL,
		apiKey: apiKey,
		from:   from,
	}
}

// Send submits one email. The provider enforces a rate limit around
// 10 requests per second; callers are expected to throttle.
func (c *Client) Send(ctx context.Context, to, subject, html string) error {
	msg := Message{To: to, From: c.from, Subject: subject, HTML: html}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal mail message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fmt.Errorf("failed to read mail response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("mail provider returned %d: %s", resp.StatusCode, string(data))
	}

	var parsed apiResponse
	if err := json.Unmarshal(data, &parsed); err == nil && parsed.Error != "" {
		return fmt.Errorf("mail provider error: %s", parsed.Error)
	}
	return nil
}
