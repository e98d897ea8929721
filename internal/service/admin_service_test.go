package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"vrindavan/society-portal/internal/domain"
	"vrindavan/society-portal/internal/repository"
	"vrindavan/society-portal/internal/storage"
)

const testJWTSecret = "unit-test-secret"

func newTestAdminService() (AdminService, *MockAdminRepository, *MockSubmissionRepository, *MockFileStorage, *MockMailer) {
	adminRepo := new(MockAdminRepository)
	subRepo := new(MockSubmissionRepository)
	store := new(MockFileStorage)
	mailer := new(MockMailer)
	subService := NewSubmissionService(subRepo, store, mailer)
	svc := NewAdminService(adminRepo, subRepo, subService, store, mailer, testJWTSecret, time.Hour)
	return svc, adminRepo, subRepo, store, mailer
}

func storedAdmin(t *testing.T, username, password string) *domain.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.Admin{
		ID:           primitive.NewObjectID(),
		Username:     username,
		PasswordHash: string(hash),
	}
}

func TestLogin_Success(t *testing.T) {
	svc, adminRepo, _, _, _ := newTestAdminService()

	adminRepo.On("GetByUsername", mock.Anything, "admin").
		Return(storedAdmin(t, "admin", "s3cret"), nil).Once()

	token, err := svc.Login(context.Background(), "admin", "s3cret")

	require.NoError(t, err)
	require.NotEmpty(t, token)

	// The issued token must carry the username claim and verify against the
	// same secret the middleware uses.
	claims := struct {
		Username string `json:"username"`
		jwt.RegisteredClaims
	}{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(tok *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "admin", claims.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, adminRepo, _, _, _ := newTestAdminService()

	adminRepo.On("GetByUsername", mock.Anything, "admin").
		Return(storedAdmin(t, "admin", "s3cret"), nil).Once()

	token, err := svc.Login(context.Background(), "admin", "wrong")

	assert.Empty(t, token)
	assert.True(t, errors.Is(err, ErrAuth))
}

func TestLogin_NoUserEnumerationSignal(t *testing.T) {
	svc, adminRepo, _, _, _ := newTestAdminService()

	adminRepo.On("GetByUsername", mock.Anything, "admin").
		Return(storedAdmin(t, "admin", "s3cret"), nil).Once()
	adminRepo.On("GetByUsername", mock.Anything, "ghost").
		Return(nil, repository.ErrNotFound).Once()

	_, errWrongPassword := svc.Login(context.Background(), "admin", "wrong")
	_, errUnknownUser := svc.Login(context.Background(), "ghost", "wrong")

	require.Error(t, errWrongPassword)
	require.Error(t, errUnknownUser)
	// Identical error text regardless of whether the username exists.
	assert.Equal(t, errWrongPassword.Error(), errUnknownUser.Error())
}

func TestSeed_CreatesWhenMissing(t *testing.T) {
	svc, adminRepo, _, _, _ := newTestAdminService()

	adminRepo.On("GetByUsername", mock.Anything, "admin").
		Return(nil, repository.ErrNotFound).Once()
	adminRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Admin) bool {
		return a.Username == "admin" &&
			bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("s3cret")) == nil
	})).Return(primitive.NewObjectID(), nil).Once()

	err := svc.Seed(context.Background(), "admin", "s3cret")

	require.NoError(t, err)
	adminRepo.AssertExpectations(t)
}

func TestSeed_SkipsWhenPresent(t *testing.T) {
	svc, adminRepo, _, _, _ := newTestAdminService()

	adminRepo.On("GetByUsername", mock.Anything, "admin").
		Return(storedAdmin(t, "admin", "s3cret"), nil).Once()

	err := svc.Seed(context.Background(), "admin", "s3cret")

	require.NoError(t, err)
	adminRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestStats_AggregatesAcrossTypes(t *testing.T) {
	svc, _, subRepo, _, _ := newTestAdminService()

	subRepo.On("CountByStatus", mock.Anything, domain.TypeShareCertificate).
		Return(map[domain.Status]int64{domain.StatusSubmitted: 3, domain.StatusApproved: 1}, nil).Once()
	subRepo.On("CountByStatus", mock.Anything, domain.TypeNomination).
		Return(map[domain.Status]int64{domain.StatusUnderReview: 2}, nil).Once()
	subRepo.On("CountByStatus", mock.Anything, domain.TypeNOCRequest).
		Return(map[domain.Status]int64{}, nil).Once()

	stats, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(6), stats.Total)
	assert.Equal(t, int64(4), stats.ByType[domain.TypeShareCertificate])
	assert.Equal(t, int64(2), stats.ByType[domain.TypeNomination])
	assert.Equal(t, int64(0), stats.ByType[domain.TypeNOCRequest])
}

func TestExport_ProducesWorkbook(t *testing.T) {
	svc, _, subRepo, _, _ := newTestAdminService()

	subRepo.On("List", mock.Anything, domain.TypeShareCertificate, repository.SubmissionFilter{}).
		Return([]domain.Submission{
			{
				AcknowledgementNumber: "SC-260828-1A2B3C",
				FlatNumber:            "A-101",
				FullName:              "Asha Rao",
				Email:                 "asha@example.com",
				Status:                domain.StatusSubmitted,
				ShareCertificate:      &domain.ShareCertificateDetails{MemberName: "Asha Rao", ShareCount: 5},
			},
		}, nil).Once()

	data, err := svc.Export(context.Background(), domain.TypeShareCertificate)

	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Acknowledgement No", header)

	ackCell, err := f.GetCellValue("Sheet1", "A2")
	require.NoError(t, err)
	assert.Equal(t, "SC-260828-1A2B3C", ackCell)
}

func TestExport_UnknownType(t *testing.T) {
	svc, _, _, _, _ := newTestAdminService()

	_, err := svc.Export(context.Background(), domain.SubmissionType("parking-pass"))
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestBroadcast_CountsAndDeduplicates(t *testing.T) {
	svc, _, subRepo, _, mailer := newTestAdminService()

	subRepo.On("List", mock.Anything, domain.TypeNomination, repository.SubmissionFilter{Status: domain.StatusSubmitted}).
		Return([]domain.Submission{
			{Email: "one@example.com"},
			{Email: "two@example.com"},
			{Email: "one@example.com"}, // duplicate applicant, one message only
			{Email: ""},                // no contact, skipped
		}, nil).Once()

	mailer.On("Send", "one@example.com", "Notice", "AGM on Saturday").Return(nil).Once()
	mailer.On("Send", "two@example.com", "Notice", "AGM on Saturday").
		Return(errors.New("mailbox full")).Once()

	result, err := svc.Broadcast(context.Background(), BroadcastInput{
		Type:    domain.TypeNomination,
		Status:  domain.StatusSubmitted,
		Subject: "Notice",
		Message: "AGM on Saturday",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Failed)
	mailer.AssertExpectations(t)
}

func TestBroadcast_RequiresSubjectAndMessage(t *testing.T) {
	svc, _, subRepo, _, _ := newTestAdminService()

	_, err := svc.Broadcast(context.Background(), BroadcastInput{Type: domain.TypeNomination})

	assert.True(t, errors.Is(err, ErrValidation))
	subRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentURL_Success(t *testing.T) {
	svc, _, subRepo, store, _ := newTestAdminService()

	id := primitive.NewObjectID()
	sub := &domain.Submission{
		ID: id,
		Documents: map[string]domain.DocumentMeta{
			"identity-proof": {StorageKey: "uploads/a-101/asha-rao/identity-proof/x.pdf"},
		},
	}

	subRepo.On("GetByID", mock.Anything, domain.TypeShareCertificate, id).Return(sub, nil).Once()
	store.On("GeneratePresignedDownloadURL", mock.Anything, "uploads/a-101/asha-rao/identity-proof/x.pdf", storage.DefaultPresignedURLExpiry).
		Return("https://bucket.example/signed", nil).Once()

	url, err := svc.DocumentURL(context.Background(), domain.TypeShareCertificate, id.Hex(), "identity-proof")

	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example/signed", url)
}

func TestDocumentURL_UnknownDocument(t *testing.T) {
	svc, _, subRepo, _, _ := newTestAdminService()

	id := primitive.NewObjectID()
	subRepo.On("GetByID", mock.Anything, domain.TypeShareCertificate, id).
		Return(&domain.Submission{ID: id}, nil).Once()

	_, err := svc.DocumentURL(context.Background(), domain.TypeShareCertificate, id.Hex(), "identity-proof")

	assert.True(t, errors.Is(err, ErrNotFound))
}
