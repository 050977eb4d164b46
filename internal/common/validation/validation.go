package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MaxMessageLength = 2000
	// MaxAlertDuration caps the alert window at 30 days of minutes.
	MaxAlertDuration = 30 * 24 * 60
	MaxTargetValues  = 100
)

// AlertMessage validates the alert body text.
func AlertMessage(message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return fmt.Errorf("message is required")
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return fmt.Errorf("message must not exceed %d characters", MaxMessageLength)
	}
	return nil
}

// AlertDuration validates the alert window length in minutes.
func AlertDuration(minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("duration must be greater than 0 minutes")
	}
	if minutes > MaxAlertDuration {
		return fmt.Errorf("duration must not exceed %d minutes", MaxAlertDuration)
	}
	return nil
}

// TargetList validates a geo or referral target list.
func TargetList(values []string) error {
	if len(values) > MaxTargetValues {
		return fmt.Errorf("target list must not exceed %d values", MaxTargetValues)
	}
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("target values must not be blank")
		}
	}
	return nil
}
