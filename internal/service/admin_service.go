package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"

	"vrindavan/society-portal/internal/domain"
	"vrindavan/society-portal/internal/notify"
	"vrindavan/society-portal/internal/repository"
	"vrindavan/society-portal/internal/storage"
)

// DashboardStats aggregates submission counts for the admin dashboard.
type DashboardStats struct {
	Total    int64                                             `json:"total"`
	ByType   map[domain.SubmissionType]int64                   `json:"byType"`
	ByStatus map[domain.SubmissionType]map[domain.Status]int64 `json:"byStatus"`
}

// BroadcastInput selects recipients from stored submissions and carries the
// message to send them.
type BroadcastInput struct {
	Type    domain.SubmissionType // Required: which submission set to draw recipients from
	Status  domain.Status         // Optional: narrow to one status
	Subject string
	Message string
}

// BroadcastResult reports per-recipient delivery outcomes synchronously;
// the admin sees the counts instead of a retry mechanism.
type BroadcastResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// AdminService handles administrator authentication and the review-side
// operations: dashboard stats, spreadsheet export, notification broadcast
// and document review URLs.
type AdminService interface {
	Login(ctx context.Context, username, password string) (token string, err error)
	Profile(ctx context.Context, username string) (*domain.Admin, error)
	Seed(ctx context.Context, username, password string) error
	Stats(ctx context.Context) (*DashboardStats, error)
	Export(ctx context.Context, t domain.SubmissionType) ([]byte, error)
	Broadcast(ctx context.Context, input BroadcastInput) (*BroadcastResult, error)
	DocumentURL(ctx context.Context, t domain.SubmissionType, id, docType string) (string, error)
	GetJWTSecret() string
}

// adminService implements the AdminService interface.
type adminService struct {
	adminRepo     repository.AdminRepository
	subRepo       repository.SubmissionRepository
	subService    SubmissionService
	fileStorage   storage.FileStorage
	mailer        notify.Mailer
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAdminService creates a new instance of adminService.
func NewAdminService(
	adminRepo repository.AdminRepository,
	subRepo repository.SubmissionRepository,
	subService SubmissionService,
	fileStorage storage.FileStorage,
	mailer notify.Mailer,
	jwtSecret string,
	jwtExpiration time.Duration,
) AdminService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 12 * time.Hour
	}
	return &adminService{
		adminRepo:     adminRepo,
		subRepo:       subRepo,
		subService:    subService,
		fileStorage:   fileStorage,
		mailer:        mailer,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Seed creates the configured admin account if it does not exist yet.
// Safe to call on every startup.
func (s *adminService) Seed(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return errors.New("admin seed requires username and password")
	}

	_, err := s.adminRepo.GetByUsername(ctx, username)
	if err == nil {
		return nil // Already present
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.adminRepo.Create(ctx, &domain.Admin{
		Username:     username,
		PasswordHash: string(hash),
	})
	if errors.Is(err, repository.ErrDuplicateKey) {
		// Concurrent seed from another instance; the account exists, done.
		return nil
	}
	return err
}

// Login authenticates the administrator and issues a bearer token. Unknown
// username and wrong password produce the identical error so the response
// carries no user-enumeration signal.
func (s *adminService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username and password are required", ErrAuth)
	}

	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("%w: invalid username or password", ErrAuth)
		}
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("%w: invalid username or password", ErrAuth)
	}

	token, err := s.generateJWT(admin)
	if err != nil {
		return "", fmt.Errorf("%w: could not issue token", ErrAuth)
	}
	return token, nil
}

// Profile returns the admin record for the authenticated username.
func (s *adminService) Profile(ctx context.Context, username string) (*domain.Admin, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: admin %s", ErrNotFound, username)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	admin.PasswordHash = ""
	return admin, nil
}

// Stats aggregates counts per type and status across all three collections.
func (s *adminService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{
		ByType:   make(map[domain.SubmissionType]int64),
		ByStatus: make(map[domain.SubmissionType]map[domain.Status]int64),
	}

	for _, t := range domain.AllSubmissionTypes {
		counts, err := s.subRepo.CountByStatus(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		stats.ByStatus[t] = counts
		for _, n := range counts {
			stats.ByType[t] += n
			stats.Total += n
		}
	}
	return stats, nil
}

// Export renders every submission of a type into an XLSX workbook.
func (s *adminService) Export(ctx context.Context, t domain.SubmissionType) ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown submission type %q", ErrValidation, t)
	}

	subs, err := s.subRepo.List(ctx, t, repository.SubmissionFilter{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("WARN: closing export workbook: %v", err)
		}
	}()

	const sheet = "Sheet1"
	headers := exportHeaders(t)
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, sub := range subs {
		for col, val := range exportRow(t, &sub) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportHeaders(t domain.SubmissionType) []string {
	common := []string{"Acknowledgement No", "Flat", "Full Name", "Email", "Phone", "Status", "Remarks", "Submitted At"}
	switch t {
	case domain.TypeShareCertificate:
		return append(common, "Member Name", "Folio No", "Share Count", "Transfer Reason")
	case domain.TypeNomination:
		return append(common, "Nominee Name", "Relation", "Nominee Share %", "Witness")
	case domain.TypeNOCRequest:
		return append(common, "Purpose", "Transferee")
	}
	return common
}

func exportRow(t domain.SubmissionType, sub *domain.Submission) []interface{} {
	row := []interface{}{
		sub.AcknowledgementNumber,
		sub.FlatNumber,
		sub.FullName,
		sub.Email,
		sub.Phone,
		string(sub.Status),
		sub.Remarks,
		sub.CreatedAt.Format(time.RFC3339),
	}
	switch t {
	case domain.TypeShareCertificate:
		if d := sub.ShareCertificate; d != nil {
			row = append(row, d.MemberName, d.FolioNumber, strconv.Itoa(d.ShareCount), d.TransferReason)
		}
	case domain.TypeNomination:
		if d := sub.Nomination; d != nil {
			row = append(row, d.NomineeName, d.NomineeRelation, strconv.Itoa(d.NomineeShare), d.WitnessName)
		}
	case domain.TypeNOCRequest:
		if d := sub.NOC; d != nil {
			row = append(row, d.Purpose, d.TransfereeName)
		}
	}
	return row
}

// Broadcast sends the message to every applicant email in the selected
// submission set. Failures are counted and returned, not retried; duplicate
// emails (several submissions by one resident) receive one message.
func (s *adminService) Broadcast(ctx context.Context, input BroadcastInput) (*BroadcastResult, error) {
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown submission type %q", ErrValidation, input.Type)
	}
	if input.Status != "" && !input.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, input.Status)
	}
	if input.Subject == "" || input.Message == "" {
		return nil, fmt.Errorf("%w: subject and message are required", ErrValidation)
	}

	subs, err := s.subRepo.List(ctx, input.Type, repository.SubmissionFilter{Status: input.Status})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	seen := make(map[string]bool)
	result := &BroadcastResult{}
	for _, sub := range subs {
		if sub.Email == "" || seen[sub.Email] {
			continue
		}
		seen[sub.Email] = true

		if err := s.mailer.Send(sub.Email, input.Subject, input.Message); err != nil {
			log.Printf("WARN: broadcast to %s failed: %v", sub.Email, err)
			result.Failed++
			continue
		}
		result.Sent++
	}
	return result, nil
}

// DocumentURL returns a short-lived presigned URL for reviewing one of a
// submission's documents.
func (s *adminService) DocumentURL(ctx context.Context, t domain.SubmissionType, id, docType string) (string, error) {
	sub, err := s.subService.GetByID(ctx, t, id)
	if err != nil {
		return "", err
	}

	doc, ok := sub.Documents[docType]
	if !ok || doc.StorageKey == "" {
		return "", fmt.Errorf("%w: document %q on submission %s", ErrNotFound, docType, id)
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, doc.StorageKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return url, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload for admin sessions.
type jwtClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// generateJWT creates a new HS256 token for the given admin.
func (s *adminService) generateJWT(admin *domain.Admin) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		Username: admin.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "society-portal",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// GetJWTSecret returns the JWT secret for middleware authentication.
func (s *adminService) GetJWTSecret() string {
	return s.jwtSecret
}
