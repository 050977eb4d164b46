package models

import (
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// Casino is an affiliate casino listing. CleanName is the URL slug used for
// direct play links (/play/{cleanName}).
type Casino struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CleanName string    `json:"clean_name"`
	URL       string    `json:"url"`
	Logo      string    `json:"logo,omitempty"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}

// MakeCleanName derives the URL slug from a display name.
func MakeCleanName(name string) string {
	return slug.Make(name)
}

// PlayURL returns the casino's destination URL with an https scheme
// prepended when the stored value has none.
func (c *Casino) PlayURL() string {
	return EnsureScheme(c.URL)
}

// EnsureScheme prefixes https:// onto URLs stored without a scheme.
func EnsureScheme(rawURL string) string {
	if rawURL == "" {
		return rawURL
	}
	if strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://") {
		return rawURL
	}
	return "https://" + rawURL
}

// CasinoCreateRequest is the admin payload for adding a casino.
type CasinoCreateRequest struct {
	Name     string `json:"name" binding:"required"`
	URL      string `json:"url" binding:"required"`
	Logo     string `json:"logo,omitempty"`
	Approved bool   `json:"approved"`
}
