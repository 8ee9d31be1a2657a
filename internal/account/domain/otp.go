package domain

import "time"

// OTPChallenge is the single pending passcode for an email identity, stored
// in the otp_codes collection keyed by email. Issuing a new challenge for the
// same email overwrites the previous one (last write wins) and resets the
// attempt counter.
type OTPChallenge struct {
	Email     string // key
	Code      string // 6-digit numeric string
	Attempts  int    // failed verification attempts so far
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the challenge is past its time-to-live at now.
func (c OTPChallenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
