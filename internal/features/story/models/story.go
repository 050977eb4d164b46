package models

import "time"

type StoryStatus string

const (
	StatusPending  StoryStatus = "pending"
	StatusApproved StoryStatus = "approved"
	StatusRejected StoryStatus = "rejected"
)

// ValidStatus reports whether s is one of the three moderation states.
func ValidStatus(s StoryStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Story is a user-submitted win story. Only approved stories are public.
type Story struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Slot      string      `json:"slot"`
	WinAmount float64     `json:"win_amount"`
	Text      string      `json:"text"`
	Status    StoryStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type StorySubmitRequest struct {
	Slot      string  `json:"slot" binding:"required"`
	WinAmount float64 `json:"win_amount" binding:"required"`
	Text      string  `json:"text" binding:"required"`
	// RecaptchaToken is the client-side challenge response.
	RecaptchaToken string `json:"recaptcha_token"`
}

type StoryStatusRequest struct {
	Status StoryStatus `json:"status" binding:"required"`
}
