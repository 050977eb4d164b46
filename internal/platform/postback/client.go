package postback

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client notifies the affiliate network when a tracked click converts. The
// endpoint template carries a {click_id} placeholder.
type Client struct {
	httpClient  *http.Client
	urlTemplate string
}

func NewClient(urlTemplate string) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		urlTemplate: urlTemplate,
	}
}

// Enabled reports whether a postback endpoint is configured.
func (c *Client) Enabled() bool {
	return c.urlTemplate != ""
}

// Fire issues the conversion postback for one click id. Failures are
// reported to the caller for logging only; conversions are never retried.
func (c *Client) Fire(ctx context.Context, clickID string) error {
	if !c.Enabled() {
		return nil
	}

	target := strings.ReplaceAll(c.urlTemplate, "{click_id}", url.QueryEscape(clickID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build postback request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("postback request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("postback endpoint returned %d", resp.StatusCode)
	}
	return nil
}
