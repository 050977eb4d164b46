package models

import "time"

// AlertCreateRequest is the admin payload for creating an alert. Empty target
// lists are normalized to ["all"]; EndTime is always computed from Duration,
// never supplied directly.
type AlertCreateRequest struct {
	Message       string   `json:"message" binding:"required"`
	GeoTargets    []string `json:"geo_targets"`
	ReferralCodes []string `json:"referral_codes"`
	// Duration of the alert window in minutes.
	Duration int `json:"duration" binding:"required"`

	CasinoID   string `json:"casino_id,omitempty"`
	CasinoName string `json:"casino_name,omitempty"`
	Slot       string `json:"slot,omitempty"`
	SlotImage  string `json:"slot_image,omitempty"`
	CustomURL  string `json:"custom_url,omitempty"`

	MaxPotential   *float64 `json:"max_potential,omitempty"`
	RecommendedBet *float64 `json:"recommended_bet,omitempty"`
	StopLimit      *float64 `json:"stop_limit,omitempty"`
	TargetWin      *float64 `json:"target_win,omitempty"`
	MaxWin         *float64 `json:"max_win,omitempty"`
	RTP            *float64 `json:"rtp,omitempty"`
}

// AlertResponse is an alert as seen by one user: the alert itself plus that
// user's read flag and the current wall-clock status.
type AlertResponse struct {
	Alert
	Read   bool        `json:"read"`
	Status AlertStatus `json:"status"`
}

// DispatchResult aggregates one email fanout run.
type DispatchResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// RecipientUser is a recipient row joined to its user, as needed by the
// email dispatcher.
type RecipientUser struct {
	AlertID    string `json:"alert_id"`
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	EmailOptIn *bool  `json:"email_opt_in,omitempty"`
	Geo        string `json:"geo"`
	Read       bool   `json:"read"`
}

// EmailEnabled mirrors the user model's default-enabled semantics.
func (r *RecipientUser) EmailEnabled() bool {
	return r.EmailOptIn == nil || *r.EmailOptIn
}

// RecipientAlert is a recipient row joined to its alert, as returned to the
// owning user.
type RecipientAlert struct {
	Alert Alert `json:"alert"`
	Read  bool  `json:"read"`
}

// ClickReportRow is one row of the admin click report: click, alert and user
// joined together.
type ClickReportRow struct {
	ClickID    string    `json:"click_id"`
	AlertID    string    `json:"alert_id"`
	Message    string    `json:"message,omitempty"`
	CasinoName string    `json:"casino_name,omitempty"`
	Username   string    `json:"username,omitempty"`
	Email      string    `json:"email,omitempty"`
	Geo        string    `json:"geo,omitempty"`
	ClickedAt  time.Time `json:"clicked_at"`
}
