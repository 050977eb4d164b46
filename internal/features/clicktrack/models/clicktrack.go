package models

import "time"

// ClickTrack is an append-only inbound traffic record, independent of alerts.
// Converted flips when the affiliate network posts back the matching click id.
type ClickTrack struct {
	ID        string    `json:"id"`
	Referrer  string    `json:"referrer,omitempty"`
	ClickID   string    `json:"click_id,omitempty"`
	Offer     string    `json:"offer,omitempty"`
	Geo       string    `json:"geo,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	IP        string    `json:"ip,omitempty"`
	Converted bool      `json:"converted"`
	CreatedAt time.Time `json:"created_at"`
}
