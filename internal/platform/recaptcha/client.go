package recaptcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const verifyURL = "https://www.google.com/recaptcha/api/siteverify"

// Client verifies reCAPTCHA tokens submitted with user content.
type Client struct {
	httpClient *http.Client
	secret     string
	endpoint   string
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score,omitempty"`
	ErrorCodes []string `json:"error-codes,omitempty"`
}

func NewClient(secret string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		secret:     secret,
		endpoint:   verifyURL,
	}
}

// Verify checks one token. With no secret configured (local development)
// every token passes.
func (c *Client) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	if c.secret == "" {
		return true, nil
	}
	if token == "" {
		return false, nil
	}

	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("failed to build recaptcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("recaptcha request failed: %w", err)
	}
	defer resp.Body.Close()

	var parsed verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return false, fmt.Errorf("failed to decode recaptcha response: %w", err)
	}
	return parsed.Success, nil
}
