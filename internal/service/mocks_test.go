package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vrindavan/society-portal/internal/domain"
	"vrindavan/society-portal/internal/repository"
)

// MockSubmissionRepository is a testify mock for repository.SubmissionRepository.
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Create(ctx context.Context, sub *domain.Submission) (primitive.ObjectID, error) {
	args := m.Called(ctx, sub)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockSubmissionRepository) GetByID(ctx context.Context, t domain.SubmissionType, id primitive.ObjectID) (*domain.Submission, error) {
	args := m.Called(ctx, t, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) GetByAcknowledgement(ctx context.Context, t domain.SubmissionType, ackNo string) (*domain.Submission, error) {
	args := m.Called(ctx, t, ackNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) List(ctx context.Context, t domain.SubmissionType, filter repository.SubmissionFilter) ([]domain.Submission, error) {
	args := m.Called(ctx, t, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) UpdateStatus(ctx context.Context, t domain.SubmissionType, id primitive.ObjectID, status domain.Status, remarks string) (*domain.Submission, error) {
	args := m.Called(ctx, t, id, status, remarks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) Delete(ctx context.Context, t domain.SubmissionType, id primitive.ObjectID) error {
	args := m.Called(ctx, t, id)
	return args.Error(0)
}

func (m *MockSubmissionRepository) CountByStatus(ctx context.Context, t domain.SubmissionType) (map[domain.Status]int64, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Status]int64), args.Error(1)
}

// MockAdminRepository is a testify mock for repository.AdminRepository.
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Create(ctx context.Context, admin *domain.Admin) (primitive.ObjectID, error) {
	args := m.Called(ctx, admin)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockAdminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}

// MockFileStorage is a testify mock for storage.FileStorage.
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) PutObject(ctx context.Context, objectKey string, contentType string, body io.Reader, size int64) error {
	args := m.Called(ctx, objectKey, contentType, body, size)
	return args.Error(0)
}

func (m *MockFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	args := m.Called(ctx, objectKey)
	return args.Error(0)
}

func (m *MockFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, expires)
	return args.String(0), args.Error(1)
}

// MockMailer is a testify mock for notify.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(recipient, subject, body string) error {
	args := m.Called(recipient, subject, body)
	return args.Error(0)
}

func (m *MockMailer) SendConfirmation(sub *domain.Submission) error {
	args := m.Called(sub)
	return args.Error(0)
}

func (m *MockMailer) SendStatusUpdate(sub *domain.Submission) error {
	args := m.Called(sub)
	return args.Error(0)
}
