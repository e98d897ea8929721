package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vrindavan/society-portal/internal/domain"
)

func sampleSubmission() *domain.Submission {
	return &domain.Submission{
		AcknowledgementNumber: "NOC-260828-4F7A2C",
		Type:                  domain.TypeNOCRequest,
		FlatNumber:            "B-204",
		FullName:              "Ravi Kulkarni",
		Email:                 "ravi@example.com",
		Status:                domain.StatusUnderReview,
	}
}

func TestConfirmationTemplate(t *testing.T) {
	sub := sampleSubmission()

	subject := confirmationSubject(sub)
	body := confirmationBody(sub, "https://portal.example")

	assert.Contains(t, subject, "NOC Request")
	assert.Contains(t, subject, "NOC-260828-4F7A2C")
	assert.Contains(t, body, "Ravi Kulkarni")
	assert.Contains(t, body, "B-204")
	assert.Contains(t, body, "NOC-260828-4F7A2C")
	assert.Contains(t, body, "https://portal.example")
}

func TestStatusUpdateTemplate(t *testing.T) {
	sub := sampleSubmission()
	sub.Status = domain.StatusDocumentRequired
	sub.Remarks = "maintenance receipt missing for June"

	subject := statusUpdateSubject(sub)
	body := statusUpdateBody(sub, "https://portal.example")

	assert.Contains(t, subject, "document-required")
	assert.Contains(t, body, "document-required")
	assert.Contains(t, body, "maintenance receipt missing for June")
}

func TestStatusUpdateTemplate_NoRemarks(t *testing.T) {
	sub := sampleSubmission()

	body := statusUpdateBody(sub, "https://portal.example")

	assert.NotContains(t, body, "Remarks from the society office")
}
