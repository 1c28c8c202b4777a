package models

import (
	"time"
)

// UnlimitedUses marks a record that is never consumed by resolving it.
const UnlimitedUses = -1

// URL is a stored short-link mapping. ExpiresDate and ExpiresTime are kept as
// zero-padded "YYYY-MM-DD" / "HH:MM" strings so that lexicographic comparison
// matches chronological order.
type URL struct {
	ID            int       `json:"id"`
	Original      string    `json:"original"`
	ShortCode     string    `json:"shortCode"`
	RemainingUses int       `json:"remainingUses"`
	ExpiresDate   string    `json:"expiresDate"`
	ExpiresTime   string    `json:"expiresTime"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Unlimited reports whether the record survives any number of resolves.
func (u *URL) Unlimited() bool {
	return u.RemainingUses == UnlimitedUses
}
