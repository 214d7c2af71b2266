package mailer

import (
	"fmt"
	"net/smtp"
)

// Mailer sends plain-text notification emails.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	host   string
	port   int
	sender string
	auth   smtp.Auth
}

// NewSMTP builds an SMTPMailer. Auth is skipped when no username is set,
// which is the common case for local relays.
func NewSMTP(host string, port int, username, password, sender string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{
		host:   host,
		port:   port,
		sender: sender,
		auth:   auth,
	}
}

// Send delivers a single message.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.sender, to, subject, body)
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	if err := smtp.SendMail(addr, m.auth, m.sender, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
