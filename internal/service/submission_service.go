package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vrindavan/society-portal/internal/domain"
	"vrindavan/society-portal/internal/notify"
	"vrindavan/society-portal/internal/repository"
	"vrindavan/society-portal/internal/storage"
)

// Max attempts to find a free acknowledgement number before giving up.
// Collisions are vanishingly rare (24 bits of entropy per day per type), so
// hitting this limit means something is wrong with the store.
const maxAckAttempts = 5

// SubmissionInput is the validated payload for creating a submission.
// Exactly one of the variant payloads must be set, matching Type.
type SubmissionInput struct {
	Type       domain.SubmissionType
	FlatNumber string
	FullName   string
	Email      string
	Phone      string
	Documents  map[string]domain.DocumentMeta

	ShareCertificate *domain.ShareCertificateDetails
	Nomination       *domain.NominationDetails
	NOC              *domain.NOCDetails
}

// SubmissionService handles the applicant-facing submission lifecycle and the
// admin-facing record operations on it.
type SubmissionService interface {
	Submit(ctx context.Context, input SubmissionInput) (*domain.Submission, error)
	GetByAcknowledgement(ctx context.Context, t domain.SubmissionType, ackNo string) (*domain.Submission, error)
	GetByID(ctx context.Context, t domain.SubmissionType, id string) (*domain.Submission, error)
	List(ctx context.Context, t domain.SubmissionType, filter repository.SubmissionFilter) ([]domain.Submission, error)
	UpdateStatus(ctx context.Context, t domain.SubmissionType, id string, status domain.Status, remarks string) (*domain.Submission, error)
	Delete(ctx context.Context, t domain.SubmissionType, id string) error
}

// submissionService implements the SubmissionService interface.
type submissionService struct {
	subRepo     repository.SubmissionRepository
	fileStorage storage.FileStorage
	mailer      notify.Mailer
}

// NewSubmissionService creates a new instance of submissionService.
func NewSubmissionService(subRepo repository.SubmissionRepository, fileStorage storage.FileStorage, mailer notify.Mailer) SubmissionService {
	return &submissionService{
		subRepo:     subRepo,
		fileStorage: fileStorage,
		mailer:      mailer,
	}
}

// Submit validates the payload, assigns a collision-free acknowledgement
// number, persists the record and sends a confirmation email. The email is
// fire-and-forget: a notification failure is logged and never rolls back or
// fails the created record.
func (s *submissionService) Submit(ctx context.Context, input SubmissionInput) (*domain.Submission, error) {
	if err := validateSubmissionInput(input); err != nil {
		return nil, err
	}

	sub := &domain.Submission{
		Type:             input.Type,
		FlatNumber:       strings.TrimSpace(input.FlatNumber),
		FullName:         strings.TrimSpace(input.FullName),
		Email:            strings.TrimSpace(input.Email),
		Phone:            strings.TrimSpace(input.Phone),
		Documents:        input.Documents,
		Status:           domain.StatusSubmitted,
		ShareCertificate: input.ShareCertificate,
		Nomination:       input.Nomination,
		NOC:              input.NOC,
	}

	// The unique index on acknowledgementNumber is the authority on
	// collisions; we regenerate and retry on duplicate-key failures rather
	// than pre-checking, so concurrent submissions stay safe.
	var lastErr error
	for attempt := 0; attempt < maxAckAttempts; attempt++ {
		ackNo, err := domain.NewAcknowledgementNumber(input.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		sub.AcknowledgementNumber = ackNo

		id, err := s.subRepo.Create(ctx, sub)
		if err == nil {
			sub.ID = id
			go s.sendConfirmation(sub)
			return sub, nil
		}
		if !errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w: could not allocate acknowledgement number: %v", ErrPersistence, lastErr)
}

// sendConfirmation runs outside the request path. Failures are logged only.
func (s *submissionService) sendConfirmation(sub *domain.Submission) {
	if err := s.mailer.SendConfirmation(sub); err != nil {
		log.Printf("WARN: confirmation email for %s failed: %v", sub.AcknowledgementNumber, err)
	}
}

// GetByAcknowledgement returns the submission for an acknowledgement number.
// Exact match only; there is no enumeration path for applicants.
func (s *submissionService) GetByAcknowledgement(ctx context.Context, t domain.SubmissionType, ackNo string) (*domain.Submission, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown submission type %q", ErrValidation, t)
	}
	ackNo = strings.TrimSpace(ackNo)
	if ackNo == "" {
		return nil, fmt.Errorf("%w: acknowledgement number is required", ErrValidation)
	}

	sub, err := s.subRepo.GetByAcknowledgement(ctx, t, ackNo)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no submission for acknowledgement number %s", ErrNotFound, ackNo)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return sub, nil
}

// GetByID returns a submission by record id (admin paths).
func (s *submissionService) GetByID(ctx context.Context, t domain.SubmissionType, id string) (*domain.Submission, error) {
	objectID, err := parseSubmissionRef(t, id)
	if err != nil {
		return nil, err
	}

	sub, err := s.subRepo.GetByID(ctx, t, objectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: submission %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return sub, nil
}

// List returns all submissions of a type matching the filter, newest first.
func (s *submissionService) List(ctx context.Context, t domain.SubmissionType, filter repository.SubmissionFilter) ([]domain.Submission, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown submission type %q", ErrValidation, t)
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, filter.Status)
	}

	subs, err := s.subRepo.List(ctx, t, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return subs, nil
}

// UpdateStatus overwrites a submission's status and remarks. Any status may
// follow any other status; this mirrors how the office actually works and is
// a deliberate simplification, not a gap. A status-change email goes out
// fire-and-forget.
func (s *submissionService) UpdateStatus(ctx context.Context, t domain.SubmissionType, id string, status domain.Status, remarks string) (*domain.Submission, error) {
	objectID, err := parseSubmissionRef(t, id)
	if err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	sub, err := s.subRepo.UpdateStatus(ctx, t, objectID, status, remarks)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: submission %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	go s.sendStatusUpdate(sub)
	return sub, nil
}

func (s *submissionService) sendStatusUpdate(sub *domain.Submission) {
	if err := s.mailer.SendStatusUpdate(sub); err != nil {
		log.Printf("WARN: status email for %s failed: %v", sub.AcknowledgementNumber, err)
	}
}

// Delete removes a submission record and releases its storage objects.
// Object deletion is best-effort: a storage failure is logged but does not
// resurrect the record.
func (s *submissionService) Delete(ctx context.Context, t domain.SubmissionType, id string) error {
	objectID, err := parseSubmissionRef(t, id)
	if err != nil {
		return err
	}

	sub, err := s.subRepo.GetByID(ctx, t, objectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: submission %s", ErrNotFound, id)
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := s.subRepo.Delete(ctx, t, objectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: submission %s", ErrNotFound, id)
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	for label, doc := range sub.Documents {
		if doc.StorageKey == "" {
			continue
		}
		if err := s.fileStorage.DeleteObject(ctx, doc.StorageKey); err != nil {
			log.Printf("WARN: could not delete %s object %s for %s: %v",
				label, doc.StorageKey, sub.AcknowledgementNumber, err)
		}
	}

	return nil
}

// parseSubmissionRef validates the type and parses the hex record id.
func parseSubmissionRef(t domain.SubmissionType, id string) (primitive.ObjectID, error) {
	if !t.Valid() {
		return primitive.NilObjectID, fmt.Errorf("%w: unknown submission type %q", ErrValidation, t)
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid submission id %q", ErrValidation, id)
	}
	return objectID, nil
}

// validateSubmissionInput enforces the submit-time contract: common fields,
// a variant payload matching the type, and every required document present.
// Everything is checked before any side effect.
func validateSubmissionInput(input SubmissionInput) error {
	if !input.Type.Valid() {
		return fmt.Errorf("%w: unknown submission type %q", ErrValidation, input.Type)
	}
	if strings.TrimSpace(input.FlatNumber) == "" {
		return fmt.Errorf("%w: flatNumber is required", ErrValidation)
	}
	if strings.TrimSpace(input.FullName) == "" {
		return fmt.Errorf("%w: fullName is required", ErrValidation)
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: email %q is malformed", ErrValidation, email)
	}

	switch input.Type {
	case domain.TypeShareCertificate:
		if input.ShareCertificate == nil {
			return fmt.Errorf("%w: shareCertificate details are required", ErrValidation)
		}
		if strings.TrimSpace(input.ShareCertificate.MemberName) == "" {
			return fmt.Errorf("%w: shareCertificate.memberName is required", ErrValidation)
		}
		if input.ShareCertificate.ShareCount <= 0 {
			return fmt.Errorf("%w: shareCertificate.shareCount must be positive", ErrValidation)
		}
	case domain.TypeNomination:
		if input.Nomination == nil {
			return fmt.Errorf("%w: nomination details are required", ErrValidation)
		}
		if strings.TrimSpace(input.Nomination.NomineeName) == "" {
			return fmt.Errorf("%w: nomination.nomineeName is required", ErrValidation)
		}
		if strings.TrimSpace(input.Nomination.NomineeRelation) == "" {
			return fmt.Errorf("%w: nomination.nomineeRelation is required", ErrValidation)
		}
		if input.Nomination.NomineeShare <= 0 || input.Nomination.NomineeShare > 100 {
			return fmt.Errorf("%w: nomination.nomineeShare must be between 1 and 100", ErrValidation)
		}
	case domain.TypeNOCRequest:
		if input.NOC == nil {
			return fmt.Errorf("%w: noc details are required", ErrValidation)
		}
		if strings.TrimSpace(input.NOC.Purpose) == "" {
			return fmt.Errorf("%w: noc.purpose is required", ErrValidation)
		}
	}

	for _, label := range domain.RequiredDocuments(input.Type) {
		doc, ok := input.Documents[label]
		if !ok || doc.StorageKey == "" {
			return fmt.Errorf("%w: required document %q is missing", ErrValidation, label)
		}
	}

	return nil
}
