// Package validate holds the pure field checks performed before any external
// call is made. Every rejection carries the exact message shown to the user.
package validate

import (
	"regexp"
	"unicode"
)

// User-facing validation messages, verbatim from the shipped client.
const (
	MsgAllFieldsRequired     = "All fields are required."
	MsgInvalidEmailFormat    = "Invalid email format."
	MsgEmailStartsWithNumber = "Email cannot start with a number."
	MsgPasswordTooShort      = "Password must be at least 6 characters."
	MsgPasswordsDoNotMatch   = "Passwords do not match."
	MsgLoginFieldsRequired   = "Email and password are required."
)

// Reason codes for programmatic handling; the Message is what the user sees.
const (
	ReasonFieldsMissing     = "fields_missing"
	ReasonEmailFormat       = "email_format"
	ReasonEmailLeadingDigit = "email_leading_digit"
	ReasonPasswordTooShort  = "password_too_short"
	ReasonPasswordMismatch  = "password_mismatch"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Error is a single failed field check. Checks run in a fixed order and only
// the first failure is reported.
type Error struct {
	Reason  string
	Message string
}

func (e *Error) Error() string { return e.Message }

// IsValidEmail reports whether s has the local@domain.tld shape. It is
// deliberately loose; the identity provider is the real authority on
// deliverable addresses.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// StartsWithDigit reports whether the first rune of s is a decimal digit.
func StartsWithDigit(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r)
	}
	return false
}

// Registration checks the sign-up form fields in order: presence, email
// shape, leading digit, password length, password match. Returns nil when
// every check passes.
func Registration(email, password, confirm string) *Error {
	if email == "" || password == "" || confirm == "" {
		return &Error{Reason: ReasonFieldsMissing, Message: MsgAllFieldsRequired}
	}
	if !IsValidEmail(email) {
		return &Error{Reason: ReasonEmailFormat, Message: MsgInvalidEmailFormat}
	}
	if StartsWithDigit(email) {
		return &Error{Reason: ReasonEmailLeadingDigit, Message: MsgEmailStartsWithNumber}
	}
	if len(password) < minPasswordLength {
		return &Error{Reason: ReasonPasswordTooShort, Message: MsgPasswordTooShort}
	}
	if password != confirm {
		return &Error{Reason: ReasonPasswordMismatch, Message: MsgPasswordsDoNotMatch}
	}
	return nil
}

// Login checks the sign-in form fields: presence and email shape. The
// leading-digit rule applies to registration alone, so an account created
// before that rule existed can still sign in.
func Login(email, password string) *Error {
	if email == "" || password == "" {
		return &Error{Reason: ReasonFieldsMissing, Message: MsgLoginFieldsRequired}
	}
	if !IsValidEmail(email) {
		return &Error{Reason: ReasonEmailFormat, Message: MsgInvalidEmailFormat}
	}
	return nil
}
