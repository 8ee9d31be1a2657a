package accountsdk

// RegisterRequest starts a registration flow.
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// VerifyRequest submits the emailed passcode for a pending flow.
type VerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// ResendRequest asks for a fresh passcode for a pending flow.
type ResendRequest struct {
	Email string `json:"email"`
}

// LoginRequest is a sign-in attempt.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Dialog is a user-facing message the client should display. Context tells
// the client which window to return to after dismissal.
type Dialog struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Context string `json:"context"`
}

// RegistrationResponse reports where the flow landed after one submission.
type RegistrationResponse struct {
	State     string  `json:"state"`
	Dialog    *Dialog `json:"dialog,omitempty"`
	CanResend bool    `json:"can_resend"`
}

// LoginResponse reports the outcome of a sign-in attempt. UserID and IDToken
// are only present on success.
type LoginResponse struct {
	State   string  `json:"state"`
	Dialog  *Dialog `json:"dialog,omitempty"`
	UserID  string  `json:"user_id,omitempty"`
	IDToken string  `json:"id_token,omitempty"`
}

// HealthResponse is returned by the livez and readyz endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
}

// ErrorResponse is returned for malformed requests.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}
