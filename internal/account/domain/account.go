package domain

import "time"

// Account is the application-level account record kept in the document store.
// The identity provider owns credentials and email uniqueness; this record
// only carries what the app itself needs. It is written exactly once, after
// the OTP challenge for the email has been verified.
type Account struct {
	UserID    string // opaque identifier issued by the identity provider
	Email     string
	CreatedAt time.Time
}

// Credentials are the transient sign-in/sign-up inputs. They are handed to
// the identity provider and never persisted by this service.
type Credentials struct {
	Email    string
	Password string
}
