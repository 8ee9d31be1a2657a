package mailer

import (
	"context"

	"github.com/caarlos0/env/v11"
	"gopkg.in/gomail.v2"
)

// SMTPConfig is read from the environment with env.ParseAs.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST" envDefault:"localhost"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM" envDefault:"no-reply@localhost"`
}

func SMTPConfigFromEnv() (SMTPConfig, error) {
	return env.ParseAs[SMTPConfig]()
}

// SMTPSender delivers messages through an SMTP relay. Every send dials a
// fresh connection; registration traffic is far too light to justify
// keeping one open.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)

	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(m) }()

	select {
	case err := <-done:
		if err != nil {
			return &SendError{Reason: err.Error(), Retryable: true}
		}
		return nil
	case <-ctx.Done():
		return &SendError{Reason: ctx.Err().Error(), Retryable: true}
	}
}
