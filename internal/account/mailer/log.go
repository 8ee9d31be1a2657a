package mailer

import (
	"context"
	"log/slog"
)

// LogSender writes messages to the log instead of delivering them. Dev mode
// only; the passcode appears in plain text.
type LogSender struct {
	Logger *slog.Logger
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.Logger.Info("mail delivery (log mode)",
		"to", msg.To,
		"subject", msg.Subject,
		"text", msg.Text,
	)
	return nil
}
