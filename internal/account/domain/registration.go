package domain

import "time"

// RegistrationState is the explicit state of one registration attempt. The
// live client tracked this implicitly through window visibility flags; here
// the orchestrator owns it and the presentation layer is a pure renderer.
type RegistrationState int

const (
	RegistrationIdle RegistrationState = iota
	RegistrationFieldsValid
	RegistrationProviderAccountCreated
	RegistrationOtpIssued
	RegistrationOtpDelivered
	RegistrationAwaitingVerification
	RegistrationVerified
	RegistrationRecordFinalized
	RegistrationActivated
	RegistrationFailed
)

func (s RegistrationState) String() string {
	switch s {
	case RegistrationIdle:
		return "idle"
	case RegistrationFieldsValid:
		return "fields_valid"
	case RegistrationProviderAccountCreated:
		return "provider_account_created"
	case RegistrationOtpIssued:
		return "otp_issued"
	case RegistrationOtpDelivered:
		return "otp_delivered"
	case RegistrationAwaitingVerification:
		return "awaiting_verification"
	case RegistrationVerified:
		return "verified"
	case RegistrationRecordFinalized:
		return "record_finalized"
	case RegistrationActivated:
		return "activated"
	case RegistrationFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the flow is finished, successfully or not.
func (s RegistrationState) Terminal() bool {
	return s == RegistrationActivated || s == RegistrationFailed
}

// RegistrationSession is the in-memory record of one registration attempt.
// It exists from credential submission until activation, failure, or expiry,
// and does not survive a restart; an in-flight challenge can always be
// replaced through resend. Token identifies this particular attempt so that
// a completion arriving for a superseded attempt is discarded.
type RegistrationSession struct {
	Token     string // flow-validity token (ULID)
	Email     string
	UserID    string // provider-issued id, held until the record is finalized
	State     RegistrationState
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RegistrationResult is what one UI submission produces: the state the flow
// landed in, an optional dialog for the user, and whether the client should
// offer a resend action.
type RegistrationResult struct {
	State     RegistrationState
	Dialog    *Dialog
	CanResend bool
}
