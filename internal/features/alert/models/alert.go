package models

import (
	"errors"
	"time"
)

var (
	ErrNotRecipient    = errors.New("no recipient record for this alert and user")
	ErrInvalidDuration = errors.New("duration must be greater than 0 minutes")
	ErrEmptyMessage    = errors.New("alert message is required")
)

// Alert is a promotional broadcast. It is immutable after creation; expiry is
// a computed view of EndTime against the clock, never a state transition.
type Alert struct {
	ID            string    `json:"id"`
	Message       string    `json:"message"`
	GeoTargets    []string  `json:"geo_targets"`
	ReferralCodes []string  `json:"referral_codes"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`

	CasinoID   *string `json:"casino_id,omitempty"`
	CasinoName string  `json:"casino_name,omitempty"`
	Slot       string  `json:"slot,omitempty"`
	SlotImage  string  `json:"slot_image,omitempty"`
	CustomURL  string  `json:"custom_url,omitempty"`

	MaxPotential   *float64 `json:"max_potential,omitempty"`
	RecommendedBet *float64 `json:"recommended_bet,omitempty"`
	StopLimit      *float64 `json:"stop_limit,omitempty"`
	TargetWin      *float64 `json:"target_win,omitempty"`
	MaxWin         *float64 `json:"max_win,omitempty"`
	RTP            *float64 `json:"rtp,omitempty"`

	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Targeting parses the stored target lists into their tagged form.
func (a *Alert) Targeting() Targeting {
	return NewTargeting(a.GeoTargets, a.ReferralCodes)
}

// Expired reports whether the alert's window has passed.
func (a *Alert) Expired(now time.Time) bool {
	return a.EndTime.Before(now)
}

// AlertStatus is the wall-clock classification of an alert.
type AlertStatus string

const (
	StatusUpcoming AlertStatus = "upcoming"
	StatusActive   AlertStatus = "active"
	StatusExpired  AlertStatus = "expired"
	// StatusHidden covers alerts starting more than 24h out. They are
	// shown in neither the upcoming nor the active list; a display-only
	// dead zone, not a data gap.
	StatusHidden AlertStatus = "hidden"
)

// upcomingWindow bounds how far ahead an alert is surfaced as "upcoming".
const upcomingWindow = 24 * time.Hour

// StatusAt classifies the alert at the given instant. The four statuses are
// mutually exclusive and collectively exhaustive.
func (a *Alert) StatusAt(now time.Time) AlertStatus {
	switch {
	case a.EndTime.Before(now):
		return StatusExpired
	case a.StartTime.After(now):
		if a.StartTime.Sub(now) <= upcomingWindow {
			return StatusUpcoming
		}
		return StatusHidden
	default:
		return StatusActive
	}
}

// AlertRecipient materializes which users were eligible for an alert at
// creation time. Unique per (alert, user); only the read flag ever changes.
type AlertRecipient struct {
	AlertID   string    `json:"alert_id"`
	UserID    string    `json:"user_id"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// AlertClick is an append-only record of one outbound click. Username, email
// and geo are denormalized at click time so the history survives later user
// edits. For direct-casino traffic AlertID holds a synthetic composite id.
type AlertClick struct {
	ID        string    `json:"id"`
	AlertID   string    `json:"alert_id"`
	UserID    *string   `json:"user_id,omitempty"`
	Username  string    `json:"username,omitempty"`
	Email     string    `json:"email,omitempty"`
	Geo       string    `json:"geo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
