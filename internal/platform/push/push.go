package push

import (
	"context"
	"encoding/json"
	"fmt"

	webpush "github.com/SherClockHolmes/webpush-go"

	usermodels "slotbot-backend/internal/features/user/models"
)

// Client sends web push notifications signed with the site's VAPID key pair.
type Client struct {
	publicKey  string
	privateKey string
	subject    string
}

// Notification is the payload shown by the service worker.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

func NewClient(publicKey, privateKey, subject string) *Client {
	return &Client{publicKey: publicKey, privateKey: privateKey, subject: subject}
}

// Enabled reports whether VAPID keys are configured.
func (c *Client) Enabled() bool {
	return c.publicKey != "" && c.privateKey != ""
}

// Send delivers one notification to one stored subscription.
func (c *Client) Send(ctx context.Context, sub *usermodels.PushSubscription, n *Notification) error {
	if !c.Enabled() {
		return nil
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	target := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, target, &webpush.Options{
		Subscriber:      c.subject,
		VAPIDPublicKey:  c.publicKey,
		VAPIDPrivateKey: c.privateKey,
		TTL:             3600,
	})
	if err != nil {
		return fmt.Errorf("push send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("push endpoint returned %d", resp.StatusCode)
	}
	return nil
}
