package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"vrindavan/society-portal/internal/config"
	"vrindavan/society-portal/internal/domain"
	"vrindavan/society-portal/internal/storage"
)

// Extensions used for stored object keys, per allowed content type.
var extensionsByContentType = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
}

// UploadInput carries one applicant file plus the context used for
// storage-key namespacing. FlatNumber and FullName are preconditions the
// client enforces first; the service enforces them again.
type UploadInput struct {
	FileName     string
	ContentType  string
	Size         int64
	Body         io.Reader
	FlatNumber   string
	FullName     string
	DocumentType string
}

// UploadService validates and stores applicant files ahead of submission.
type UploadService interface {
	Upload(ctx context.Context, input UploadInput) (*domain.DocumentMeta, error)
	Delete(ctx context.Context, storageKey string) error
}

// uploadService implements the UploadService interface.
type uploadService struct {
	fileStorage storage.FileStorage
	maxSize     int64
	allowed     map[string]bool
}

// NewUploadService creates a new instance of uploadService.
func NewUploadService(fileStorage storage.FileStorage, cfg config.UploadConfig) UploadService {
	allowed := make(map[string]bool, len(cfg.AllowedTypes))
	for _, t := range cfg.AllowedTypes {
		allowed[strings.ToLower(t)] = true
	}
	return &uploadService{
		fileStorage: fileStorage,
		maxSize:     cfg.MaxSizeBytes,
		allowed:     allowed,
	}
}

// Upload validates size, content type and namespacing context, then streams
// the file to object storage. An invalid file never reaches storage.
func (s *uploadService) Upload(ctx context.Context, input UploadInput) (*domain.DocumentMeta, error) {
	if strings.TrimSpace(input.FlatNumber) == "" {
		return nil, fmt.Errorf("%w: flatNumber is required", ErrValidation)
	}
	if strings.TrimSpace(input.FullName) == "" {
		return nil, fmt.Errorf("%w: fullName is required", ErrValidation)
	}
	if strings.TrimSpace(input.DocumentType) == "" {
		return nil, fmt.Errorf("%w: documentType is required", ErrValidation)
	}
	if input.Size <= 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrValidation)
	}
	if input.Size > s.maxSize {
		return nil, fmt.Errorf("%w: file size %d exceeds the %dMB limit",
			ErrValidation, input.Size, s.maxSize/(1024*1024))
	}

	contentType := normalizeContentType(input.ContentType)
	if !s.allowed[contentType] {
		return nil, fmt.Errorf("%w: content type %q is not allowed (PDF and JPEG only)",
			ErrValidation, input.ContentType)
	}

	key := buildStorageKey(input.FlatNumber, input.FullName, input.DocumentType, input.FileName, contentType)

	if err := s.fileStorage.PutObject(ctx, key, contentType, input.Body, input.Size); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return &domain.DocumentMeta{
		FileName:    input.FileName,
		FileSize:    input.Size,
		ContentType: contentType,
		StorageKey:  key,
	}, nil
}

// Delete removes a stored object. Idempotent: deleting a missing key is fine.
func (s *uploadService) Delete(ctx context.Context, storageKey string) error {
	if strings.TrimSpace(storageKey) == "" {
		return fmt.Errorf("%w: storage key is required", ErrValidation)
	}
	if err := s.fileStorage.DeleteObject(ctx, storageKey); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// normalizeContentType lowers the type and strips any parameters
// (e.g. "image/jpeg; charset=binary" -> "image/jpeg").
func normalizeContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}

// buildStorageKey namespaces objects by flat and applicant so the bucket
// stays browsable: uploads/<flat>/<name>/<documentType>/<uuid><ext>.
func buildStorageKey(flatNumber, fullName, documentType, fileName, contentType string) string {
	ext := extensionsByContentType[contentType]
	if ext == "" {
		ext = strings.ToLower(path.Ext(fileName))
	}
	return fmt.Sprintf("uploads/%s/%s/%s/%s%s",
		slugify(flatNumber), slugify(fullName), slugify(documentType), uuid.New().String(), ext)
}

// slugify reduces free text to a safe key segment.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
