package domain

// Dialog context values. The client uses the context to decide which window
// to return to after the user acknowledges the dialog: registration form for
// signup errors, login form for login errors and signup success.
const (
	DialogContextSignupError   = "signup_error"
	DialogContextSignupSuccess = "signup_success"
	DialogContextLoginError    = "login_error"
)

// Dialog titles shown by the client, kept verbatim from the shipped app.
const (
	DialogTitleSignupFailed  = "SIGN UP FAILED"
	DialogTitleSignupSuccess = "SIGN UP SUCCESS"
	DialogTitleLoginFailed   = "Login Failed"
)

// Dialog is the single user-facing shape every orchestrator error collapses
// into. No error propagates past the orchestrator boundary in any other form.
type Dialog struct {
	Title   string
	Message string
	Context string
}

func SignupErrorDialog(message string) *Dialog {
	return &Dialog{Title: DialogTitleSignupFailed, Message: message, Context: DialogContextSignupError}
}

func SignupSuccessDialog(message string) *Dialog {
	return &Dialog{Title: DialogTitleSignupSuccess, Message: message, Context: DialogContextSignupSuccess}
}

func LoginErrorDialog(message string) *Dialog {
	return &Dialog{Title: DialogTitleLoginFailed, Message: message, Context: DialogContextLoginError}
}
