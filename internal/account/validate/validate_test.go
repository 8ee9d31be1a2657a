package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistration_Valid(t *testing.T) {
	require.Nil(t, Registration("alice@example.com", "hunter22", "hunter22"))
}

func TestRegistration_Order(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		confirm  string
		reason   string
		message  string
	}{
		{"missing email", "", "hunter22", "hunter22", ReasonFieldsMissing, MsgAllFieldsRequired},
		{"missing password", "alice@example.com", "", "hunter22", ReasonFieldsMissing, MsgAllFieldsRequired},
		{"missing confirm", "alice@example.com", "hunter22", "", ReasonFieldsMissing, MsgAllFieldsRequired},
		{"bad email shape", "not-an-email", "hunter22", "hunter22", ReasonEmailFormat, MsgInvalidEmailFormat},
		{"no tld", "alice@example", "hunter22", "hunter22", ReasonEmailFormat, MsgInvalidEmailFormat},
		{"leading digit", "1alice@example.com", "hunter22", "hunter22", ReasonEmailLeadingDigit, MsgEmailStartsWithNumber},
		{"short password", "alice@example.com", "ab12", "ab12", ReasonPasswordTooShort, MsgPasswordTooShort},
		{"mismatch", "alice@example.com", "hunter22", "hunter23", ReasonPasswordMismatch, MsgPasswordsDoNotMatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Registration(tc.email, tc.password, tc.confirm)
			require.NotNil(t, err)
			require.Equal(t, tc.reason, err.Reason)
			require.Equal(t, tc.message, err.Message)
		})
	}
}

func TestRegistration_FormatBeforeLeadingDigit(t *testing.T) {
	// A malformed address that also starts with a digit reports the format
	// problem, not the leading-digit rule.
	err := Registration("1notanemail", "hunter22", "hunter22")
	require.NotNil(t, err)
	require.Equal(t, ReasonEmailFormat, err.Reason)
}

func TestLogin(t *testing.T) {
	require.Nil(t, Login("alice@example.com", "hunter22"))

	err := Login("", "hunter22")
	require.NotNil(t, err)
	require.Equal(t, MsgLoginFieldsRequired, err.Message)

	err = Login("alice@example.com", "")
	require.NotNil(t, err)
	require.Equal(t, ReasonFieldsMissing, err.Reason)
}

func TestLogin_EmailFormat(t *testing.T) {
	for _, email := range []string{"not-an-email", "alice@example", "@example.com", "alice@.com"} {
		err := Login(email, "hunter22")
		require.NotNil(t, err, "email %q", email)
		require.Equal(t, ReasonEmailFormat, err.Reason)
		require.Equal(t, MsgInvalidEmailFormat, err.Message)
	}

	// Presence is checked before shape.
	err := Login("", "")
	require.NotNil(t, err)
	require.Equal(t, ReasonFieldsMissing, err.Reason)
}

func TestLogin_NoLeadingDigitRule(t *testing.T) {
	require.Nil(t, Login("1alice@example.com", "hunter22"))
}

func TestStartsWithDigit(t *testing.T) {
	require.True(t, StartsWithDigit("9lives@example.com"))
	require.False(t, StartsWithDigit("alice@example.com"))
	require.False(t, StartsWithDigit(""))
}
