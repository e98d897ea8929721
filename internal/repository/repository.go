package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vrindavan/society-portal/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicateKey = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors from driver errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// SubmissionFilter narrows List results. Zero values mean "no constraint".
type SubmissionFilter struct {
	Status     domain.Status
	FlatNumber string
}

// SubmissionRepository defines the interface for interacting with submission
// records. Every method takes the submission type, which selects the backing
// collection; the record shape is shared across all three types.
type SubmissionRepository interface {
	Create(ctx context.Context, sub *domain.Submission) (primitive.ObjectID, error)
	GetByID(ctx context.Context, t domain.SubmissionType, id primitive.ObjectID) (*domain.Submission, error)
	GetByAcknowledgement(ctx context.Context, t domain.SubmissionType, ackNo string) (*domain.Submission, error)
	List(ctx context.Context, t domain.SubmissionType, filter SubmissionFilter) ([]domain.Submission, error)
	UpdateStatus(ctx context.Context, t domain.SubmissionType, id primitive.ObjectID, status domain.Status, remarks string) (*domain.Submission, error)
	Delete(ctx context.Context, t domain.SubmissionType, id primitive.ObjectID) error
	CountByStatus(ctx context.Context, t domain.SubmissionType) (map[domain.Status]int64, error)
}

// AdminRepository defines the interface for interacting with the admin
// credential record.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) (primitive.ObjectID, error)
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
}
