package contact

import (
	"context"
	"fmt"
	"html"
	"sync/atomic"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Mailer sends the notification for a new message and returns the
// provider's message id.
type Mailer interface {
	Send(ctx context.Context, m Message) (string, error)
}

// emailSender is the part of the Resend client the mailer uses.
type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendMailer delivers notifications through Resend.
type ResendMailer struct {
	emails emailSender
	from   string
	to     []string
}

// NewResendMailer creates a mailer for the given API key.
func NewResendMailer(apiKey, from string, to []string) *ResendMailer {
	return &ResendMailer{
		emails: resend.NewClient(apiKey).Emails,
		from:   from,
		to:     to,
	}
}

// Send emails the site owner about m.
func (r *ResendMailer) Send(ctx context.Context, m Message) (string, error) {
	sent, err := r.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    r.from,
		To:      r.to,
		Subject: Subject(m),
		Html:    Body(m),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEmailFailed, err)
	}
	return sent.Id, nil
}

// Subject is the notification subject line.
func Subject(m Message) string {
	return "New Contact from " + m.Name
}

// Body renders the notification HTML. Fields are escaped.
func Body(m Message) string {
	return fmt.Sprintf(`
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Message:</strong> %s</p>
`, html.EscapeString(m.Name), html.EscapeString(m.Email), html.EscapeString(m.Message))
}

// LogMailer writes notifications to the log instead of sending them.
type LogMailer struct {
	log  *zap.Logger
	sent atomic.Int64
}

// NewLogMailer returns a mailer that logs through l.
func NewLogMailer(l *zap.Logger) *LogMailer {
	return &LogMailer{log: l}
}

// Send logs m.
func (l *LogMailer) Send(ctx context.Context, m Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEmailFailed, err)
	}
	n := l.sent.Add(1)
	l.log.Info("contact notification",
		zap.String("subject", Subject(m)),
		zap.String("email", m.Email),
		zap.Int("length", len(m.Message)))
	return fmt.Sprintf("log-%d", n), nil
}

// Sent returns how many notifications were logged.
func (l *LogMailer) Sent() int64 {
	return l.sent.Load()
}
