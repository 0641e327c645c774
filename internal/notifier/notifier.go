// Package notifier sends the reminder email — the app's single outbound
// network call.
//
// DELIVERY CONTRACT:
// One best-effort attempt per call. No retry, no backoff, no queue. A
// failure is reported in the Result, the detail is logged, and nothing
// else happens — the surrounding interaction carries on.
package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"
)

// Result is the explicit outcome of a send attempt. Callers get a value,
// not a swallowed error: Sent is false with a Reason when delivery failed,
// and the caller decides what to show the user.
type Result struct {
	Sent   bool   `json:"sent"`
	Reason string `json:"reason,omitempty"`
}

// Sender is what the service layer depends on. Tests inject a fake; the
// production implementation is *SMTP below.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) Result
}

// SMTP sends mail over SMTPS (implicit TLS, port 465 style) through a
// single relay account — the same account is both the authenticated user
// and the From address.
type SMTP struct {
	client *mail.Client
	from   string
	logger *slog.Logger
}

var _ Sender = (*SMTP)(nil)

// NewSMTP builds the mail client. It does not dial: connection happens per
// send, so a dead relay shows up as a failed Result rather than a startup
// error.
func NewSMTP(host string, port int, username, password string, logger *slog.Logger) (*SMTP, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
	)
	if err != nil {
		return nil, fmt.Errorf("notifier: creating mail client: %w", err)
	}

	return &SMTP{
		client: client,
		from:   username,
		logger: logger,
	}, nil
}

// Send makes one delivery attempt and reports the outcome.
//
// The send blocks for the duration of the SMTP conversation; there is no
// retry on any failure class. The Reason string is safe to surface — it
// names the failing step, not credentials or message content.
func (s *SMTP) Send(ctx context.Context, to, subject, body string) Result {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return s.failed("invalid sender address", err)
	}
	if err := msg.To(to); err != nil {
		return s.failed("invalid recipient address", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return s.failed("mail relay rejected the message", err)
	}

	s.logger.Info("reminder sent", slog.String("to", to))
	return Result{Sent: true}
}

func (s *SMTP) failed(reason string, err error) Result {
	s.logger.Warn("reminder send failed",
		slog.String("reason", reason),
		slog.String("error", err.Error()),
	)
	return Result{Sent: false, Reason: reason}
}
