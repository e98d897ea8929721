package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vrindavan/society-portal/internal/config"
)

func newTestUploadService(store *MockFileStorage) UploadService {
	return NewUploadService(store, config.UploadConfig{
		MaxSizeBytes: 2 * 1024 * 1024,
		AllowedTypes: []string{"application/pdf", "image/jpeg"},
	})
}

func validUploadInput() UploadInput {
	return UploadInput{
		FileName:     "aadhaar.pdf",
		ContentType:  "application/pdf",
		Size:         500 * 1024,
		Body:         strings.NewReader("%PDF-1.4 test"),
		FlatNumber:   "A-101",
		FullName:     "Asha Rao",
		DocumentType: "identity-proof",
	}
}

func TestUpload_Success(t *testing.T) {
	store := new(MockFileStorage)
	svc := newTestUploadService(store)

	store.On("PutObject", mock.Anything, mock.AnythingOfType("string"), "application/pdf", mock.Anything, int64(500*1024)).
		Return(nil).Once()

	meta, err := svc.Upload(context.Background(), validUploadInput())

	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, "aadhaar.pdf", meta.FileName)
	assert.Equal(t, int64(500*1024), meta.FileSize)
	assert.Equal(t, "application/pdf", meta.ContentType)
	assert.True(t, strings.HasPrefix(meta.StorageKey, "uploads/a-101/asha-rao/identity-proof/"))
	assert.True(t, strings.HasSuffix(meta.StorageKey, ".pdf"))
	store.AssertExpectations(t)
}

func TestUpload_OversizeFileNeverReachesStorage(t *testing.T) {
	store := new(MockFileStorage)
	svc := newTestUploadService(store)

	input := validUploadInput()
	input.FileName = "photo.jpg"
	input.ContentType = "image/jpeg"
	input.Size = 3 * 1024 * 1024 // 3MB JPEG

	meta, err := svc.Upload(context.Background(), input)

	assert.Nil(t, meta)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "2MB")
	store.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpload_DisallowedContentType(t *testing.T) {
	store := new(MockFileStorage)
	svc := newTestUploadService(store)

	input := validUploadInput()
	input.FileName = "scan.png"
	input.ContentType = "image/png"

	meta, err := svc.Upload(context.Background(), input)

	assert.Nil(t, meta)
	assert.True(t, errors.Is(err, ErrValidation))
	store.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpload_ContentTypeParametersStripped(t *testing.T) {
	store := new(MockFileStorage)
	svc := newTestUploadService(store)

	input := validUploadInput()
	input.FileName = "photo.jpg"
	input.ContentType = "image/jpeg; charset=binary"

	store.On("PutObject", mock.Anything, mock.Anything, "image/jpeg", mock.Anything, input.Size).
		Return(nil).Once()

	meta, err := svc.Upload(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", meta.ContentType)
	assert.True(t, strings.HasSuffix(meta.StorageKey, ".jpg"))
}

func TestUpload_MissingNamespacingContext(t *testing.T) {
	store := new(MockFileStorage)
	svc := newTestUploadService(store)

	for _, mutate := range []func(*UploadInput){
		func(in *UploadInput) { in.FlatNumber = "" },
		func(in *UploadInput) { in.FullName = "  " },
		func(in *UploadInput) { in.DocumentType = "" },
	} {
		input := validUploadInput()
		mutate(&input)

		_, err := svc.Upload(context.Background(), input)
		assert.True(t, errors.Is(err, ErrValidation))
	}
	store.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpload_StorageFailure(t *testing.T) {
	store := new(MockFileStorage)
	svc := newTestUploadService(store)

	store.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("connection refused")).Once()

	meta, err := svc.Upload(context.Background(), validUploadInput())

	assert.Nil(t, meta)
	assert.True(t, errors.Is(err, ErrStorage))
}

func TestDeleteUpload_PassesThrough(t *testing.T) {
	store := new(MockFileStorage)
	svc := newTestUploadService(store)

	store.On("DeleteObject", mock.Anything, "uploads/a-101/asha-rao/identity-proof/x.pdf").
		Return(nil).Once()

	err := svc.Delete(context.Background(), "uploads/a-101/asha-rao/identity-proof/x.pdf")

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestDeleteUpload_EmptyKey(t *testing.T) {
	store := new(MockFileStorage)
	svc := newTestUploadService(store)

	err := svc.Delete(context.Background(), " ")

	assert.True(t, errors.Is(err, ErrValidation))
	store.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "a-101", slugify("A-101"))
	assert.Equal(t, "asha-rao", slugify("  Asha Rao "))
	assert.Equal(t, "flat-12-b", slugify("Flat 12/B"))
}
