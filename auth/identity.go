package auth

import "time"

// Identity is the caller a validated token speaks for.
type Identity struct {
	// Principal is the token subject.
	Principal string

	// Issuer is the iss claim.
	Issuer string

	// Audience is the aud claim.
	Audience []string

	// ExpiresAt is when the token stops being valid.
	ExpiresAt time.Time

	// IssuedAt is when the token was minted.
	IssuedAt time.Time
}

// Expired reports whether the identity has expired at now.
func (id *Identity) Expired(now time.Time) bool {
	return !id.ExpiresAt.IsZero() && !now.Before(id.ExpiresAt)
}
