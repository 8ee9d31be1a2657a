// Package mailer delivers OTP emails. Two senders exist: an HTTP API sender
// for hosted delivery services and an SMTP sender for self-hosted relays.
package mailer

import (
	"context"
	"errors"
	"fmt"
)

// Message is a plain-text email.
type Message struct {
	To      string
	Subject string
	Text    string
}

// Sender delivers a message. A nil return means the delivery service accepted
// the message, not that it reached the inbox.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SendError is a delivery failure. Retryable reports whether handing the same
// message back to the sender could plausibly succeed.
type SendError struct {
	Reason    string
	Retryable bool
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send mail: %s", e.Reason)
}

// IsRetryable reports whether err is a delivery failure worth retrying.
func IsRetryable(err error) bool {
	var serr *SendError
	if errors.As(err, &serr) {
		return serr.Retryable
	}
	return false
}

// OTPMessage renders the verification email for a code.
func OTPMessage(to, code string) Message {
	return Message{
		To:      to,
		Subject: "Your OTP Code",
		Text:    fmt.Sprintf("Your OTP code is: %s", code),
	}
}
