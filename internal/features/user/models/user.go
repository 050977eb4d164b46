package models

import "time"

// User is a registered site member. Access to gated content is derived, not
// stored: a user has access while they are paid or their trial has not lapsed.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Geo          string     `json:"geo"`
	ReferralCode string     `json:"referral_code"`
	Paid         bool       `json:"paid"`
	TrialUntil   *time.Time `json:"trial_until,omitempty"`
	// EmailOptIn is a tri-state column: NULL counts as enabled, only an
	// explicit false disables alert emails.
	EmailOptIn *bool     `json:"email_opt_in,omitempty"`
	ClickID    string    `json:"click_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// HasAccess reports whether the user is paid or inside a valid trial window.
func (u *User) HasAccess(now time.Time) bool {
	if u.Paid {
		return true
	}
	return u.TrialUntil != nil && u.TrialUntil.After(now)
}

// EmailEnabled implements the default-enabled opt-in semantics: absence of
// the preference, or true, both count as enabled.
func (u *User) EmailEnabled() bool {
	return u.EmailOptIn == nil || *u.EmailOptIn
}

// SettingsUpdate carries the user-editable profile fields. Nil means
// "leave unchanged".
type SettingsUpdate struct {
	Geo        *string `json:"geo,omitempty"`
	EmailOptIn *bool   `json:"email_opt_in,omitempty"`
}

// PushSubscription is a stored browser push subscription for one user.
type PushSubscription struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Endpoint  string    `json:"endpoint"`
	P256dh    string    `json:"p256dh"`
	Auth      string    `json:"auth"`
	CreatedAt time.Time `json:"created_at"`
}
