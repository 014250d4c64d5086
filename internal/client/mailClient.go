package client

import (
	"context"
	"fmt"

	"fashion-cart/internal/config"
	"fashion-cart/internal/model"

	"gopkg.in/gomail.v2"
)

type Mail struct {
	To      []string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, mail *Mail) error
}

type smtpMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

// NewMailer returns an SMTP mailer, or one that reports ErrNotConfigured when
// no SMTP credentials are set.
func NewMailer(cfg *config.SMTP) Mailer {
	if !cfg.Enabled() {
		return disabledMailer{}
	}

	return &smtpMailer{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:     cfg.User,
		fromName: cfg.FromName,
	}
}

func (m *smtpMailer) Send(ctx context.Context, mail *Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", mail.To...)
	msg.SetHeader("Subject", mail.Subject)
	msg.SetBody("text/html", mail.HTML)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send %q: %w", mail.Subject, err)
	}

	return nil
}

type disabledMailer struct{}

func (disabledMailer) Send(context.Context, *Mail) error {
	return model.NewError(model.ErrNotConfigured, "SMTP is not configured")
}
