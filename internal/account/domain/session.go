package domain

// SessionState is the state of one sign-in attempt. Much simpler than
// registration: validate, authenticate, done.
type SessionState int

const (
	SessionIdle SessionState = iota
	SessionActivated
	SessionFailed
)

func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "idle"
	case SessionActivated:
		return "activated"
	case SessionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SessionResult is the outcome of a sign-in attempt. UserID and IDToken are
// only set on activation; the token is the provider's and is treated as
// opaque here.
type SessionResult struct {
	State   SessionState
	Dialog  *Dialog
	UserID  string
	IDToken string
}
