package mailer

import (
	"fmt"
	"net/smtp"
)

// Mailer delivers outbound mail. Delivery runs on the email worker, never on
// a request path.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends HTML mail through a plain SMTP relay.
type SMTPMailer struct {
	addr string
	host string
	user string
	pass string
	from string
}

// NewSMTPMailer creates a new SMTPMailer. An empty user disables
// authentication (local relays such as MailHog).
func NewSMTPMailer(addr, host, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{addr: addr, host: host, user: user, pass: pass, from: from}
}

// Send delivers one message.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.from, to, subject, body,
	)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	if err := smtp.SendMail(m.addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
