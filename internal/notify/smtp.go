package notify

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"vrindavan/society-portal/internal/config"
	"vrindavan/society-portal/internal/domain"
)

// smtpMailer implements the Mailer interface over a configured SMTP relay.
type smtpMailer struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
}

// NewSMTPMailer creates a mailer backed by the configured SMTP relay.
// baseURL is the public portal address referenced in email bodies.
func NewSMTPMailer(cfg config.SMTPConfig, baseURL string) Mailer {
	return &smtpMailer{
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:    cfg.From,
		baseURL: baseURL,
	}
}

// Send delivers a single plain-text message through the relay.
func (m *smtpMailer) Send(recipient, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		// Dial, auth and delivery failures are all transient from the
		// portal's point of view; the operator retries, the system does not.
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return nil
}

// SendConfirmation notifies an applicant that their submission was received.
func (m *smtpMailer) SendConfirmation(sub *domain.Submission) error {
	return m.Send(sub.Email, confirmationSubject(sub), confirmationBody(sub, m.baseURL))
}

// SendStatusUpdate notifies an applicant of a status change.
func (m *smtpMailer) SendStatusUpdate(sub *domain.Submission) error {
	return m.Send(sub.Email, statusUpdateSubject(sub), statusUpdateBody(sub, m.baseURL))
}
