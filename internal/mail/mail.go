// Package mail sends the best-effort welcome email. Sends are dispatched
// off the request path; a broken mail provider must never stall or fail a
// login or registration response.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"time"
)

type Mailer interface {
	SendWelcome(ctx context.Context, email string) error
}

// SMTPMailer sends over plain SMTP with optional auth.
type SMTPMailer struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

func (m *SMTPMailer) SendWelcome(ctx context.Context, email string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Welcome to Our Website\r\n\r\nYou have successfully registered.\r\n",
		m.From, email)

	var auth smtp.Auth
	if m.User != "" {
		auth = smtp.PlainAuth("", m.User, m.Pass, m.Host)
	}
	if err := smtp.SendMail(m.Host+":"+m.Port, auth, m.From, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("mail: send welcome to %s: %w", email, err)
	}
	return nil
}

// NopMailer is used when SMTP is not configured.
type NopMailer struct{}

func (NopMailer) SendWelcome(ctx context.Context, email string) error { return nil }

// Notifier dispatches welcome mails fire-and-forget: the caller returns
// immediately and failures are only logged.
type Notifier struct {
	mailer  Mailer
	log     *slog.Logger
	timeout time.Duration
}

func NewNotifier(mailer Mailer, log *slog.Logger) *Notifier {
	return &Notifier{mailer: mailer, log: log, timeout: 30 * time.Second}
}

func (n *Notifier) Welcome(email string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		if err := n.mailer.SendWelcome(ctx, email); err != nil {
			n.log.Error("welcome mail failed", "email", email, "err", err)
		}
	}()
}
