package models

import "time"

// Session binds a bearer token to a user id for its TTL.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Geo      string `json:"geo"`
	// Referral is the affiliate code the user signed up through, if any.
	Referral string `json:"referral"`
}
