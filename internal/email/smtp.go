package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"smartsuite/internal/config"
)

// SMTPSender sends reminder mails over plain SMTP with PLAIN auth.
type SMTPSender struct {
	cfg config.SMTPConfig
}

// NewSMTPSender creates a Sender backed by the configured SMTP relay.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

var _ Sender = (*SMTPSender)(nil)

func (s *SMTPSender) Send(_ context.Context, r Reminder) error {
	subject := fmt.Sprintf("Reminder: %q expires in %d day(s)", r.DocumentTitle, r.DaysUntilExpiry)
	if r.DaysUntilExpiry == 1 {
		subject = fmt.Sprintf("Final reminder: %q expires tomorrow", r.DocumentTitle)
	}

	headers := map[string]string{
		"From":         s.cfg.From,
		"To":           r.To,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=\"UTF-8\"",
	}

	var msg strings.Builder
	for k, v := range headers {
		fmt.Fprintf(&msg, "%s: %s\r\n", k, v)
	}
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody(r))

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	return smtp.SendMail(addr, auth, s.cfg.From, []string{r.To}, []byte(msg.String()))
}

func htmlBody(r Reminder) string {
	return fmt.Sprintf(
		`<p>Hello %s,</p>
<p>The document <strong>%s</strong> on <strong>%s</strong> expires on %s (%d day(s) from now).</p>
<p><a href="%s">Open the document</a> to review or upload a new version.</p>
<p>You can change these reminders in your notification settings.</p>`,
		r.RecipientName,
		r.DocumentTitle,
		r.ParentName,
		r.ExpiryDate.Format("02 Jan 2006"),
		r.DaysUntilExpiry,
		r.DocumentURL,
	)
}
