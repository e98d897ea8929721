package notify

import (
	"errors"
	"fmt"

	"vrindavan/society-portal/internal/domain"
)

// ErrTransient marks SMTP connection/auth failures: retryable by the
// operator, never retried automatically by the system.
var ErrTransient = errors.New("notification relay unavailable")

// Mailer defines the interface for sending transactional email.
type Mailer interface {
	// Send delivers a single message. Returns ErrTransient (wrapped) when
	// the relay cannot be reached or refuses authentication.
	Send(recipient, subject, body string) error

	// SendConfirmation notifies an applicant that their submission was
	// received, quoting the acknowledgement number.
	SendConfirmation(sub *domain.Submission) error

	// SendStatusUpdate notifies an applicant that an administrator changed
	// their submission's status.
	SendStatusUpdate(sub *domain.Submission) error
}

// Human-readable labels for email subjects and bodies.
var typeLabels = map[domain.SubmissionType]string{
	domain.TypeShareCertificate: "Share Certificate Application",
	domain.TypeNomination:       "Nomination Form",
	domain.TypeNOCRequest:       "NOC Request",
}

func confirmationSubject(sub *domain.Submission) string {
	return fmt.Sprintf("%s received — %s", typeLabels[sub.Type], sub.AcknowledgementNumber)
}

func confirmationBody(sub *domain.Submission, baseURL string) string {
	return fmt.Sprintf(
		"Dear %s,\r\n\r\n"+
			"Your %s for flat %s has been received by the society office.\r\n\r\n"+
			"Acknowledgement number: %s\r\n\r\n"+
			"You can track the status of your application at any time using this "+
			"number on the portal: %s\r\n\r\n"+
			"Regards,\r\nSociety Office",
		sub.FullName, typeLabels[sub.Type], sub.FlatNumber, sub.AcknowledgementNumber, baseURL,
	)
}

func statusUpdateSubject(sub *domain.Submission) string {
	return fmt.Sprintf("%s %s — status: %s", typeLabels[sub.Type], sub.AcknowledgementNumber, sub.Status)
}

func statusUpdateBody(sub *domain.Submission, baseURL string) string {
	body := fmt.Sprintf(
		"Dear %s,\r\n\r\n"+
			"The status of your %s (acknowledgement number %s) has been updated to: %s.\r\n",
		sub.FullName, typeLabels[sub.Type], sub.AcknowledgementNumber, sub.Status,
	)
	if sub.Remarks != "" {
		body += fmt.Sprintf("\r\nRemarks from the society office: %s\r\n", sub.Remarks)
	}
	body += fmt.Sprintf("\r\nTrack your application: %s\r\n\r\nRegards,\r\nSociety Office", baseURL)
	return body
}
