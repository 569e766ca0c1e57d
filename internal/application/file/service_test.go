package file

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/event-ops-api/internal/domain"
)

type mockObjectStore struct{ mock.Mock }

func (m *mockObjectStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	// Drain the reader so the tee populates the hash, like S3 would.
	io.Copy(io.Discard, r)
	args := m.Called(ctx, key, contentType)
	return args.String(0), args.Error(1)
}
func (m *mockObjectStore) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}
func (m *mockObjectStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type mockMetaStore struct{ mock.Mock }

func (m *mockMetaStore) Put(ctx context.Context, f *domain.File) error {
	return m.Called(ctx, f).Error(0)
}
func (m *mockMetaStore) Get(ctx context.Context, fileID string) (*domain.File, error) {
	args := m.Called(ctx, fileID)
	if f, _ := args.Get(0).(*domain.File); f != nil {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMetaStore) SoftDelete(ctx context.Context, fileID string) error {
	return m.Called(ctx, fileID).Error(0)
}

func TestUpload_HashesAndStoresMetadata(t *testing.T) {
	objects := &mockObjectStore{}
	objects.On("Upload", mock.Anything, mock.AnythingOfType("string"), "text/plain").Return("", nil)
	meta := &mockMetaStore{}
	meta.On("Put", mock.Anything, mock.AnythingOfType("*domain.File")).Return(nil)

	content := "hello festival"
	svc := NewService(objects, meta)
	f, err := svc.Upload(context.Background(), UploadInput{
		Reader:      strings.NewReader(content),
		Filename:    "notes.txt",
		ContentType: "text/plain",
		Size:        int64(len(content)),
		UploaderID:  "u1",
	})

	require.NoError(t, err)
	sum := sha256.Sum256([]byte(content))
	assert.Equal(t, hex.EncodeToString(sum[:]), f.Hash)
	assert.Contains(t, f.Key, "files/u1/")
	assert.True(t, strings.HasSuffix(f.Key, "-notes.txt"))
	assert.True(t, f.Enable)
	meta.AssertExpectations(t)
}

func TestUpload_SanitizesFilename(t *testing.T) {
	objects := &mockObjectStore{}
	objects.On("Upload", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return("", nil)
	meta := &mockMetaStore{}
	meta.On("Put", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(objects, meta)
	f, err := svc.Upload(context.Background(), UploadInput{
		Reader:     strings.NewReader("x"),
		Filename:   "../../etc/pass wd$.png",
		Size:       1,
		UploaderID: "u1",
	})

	require.NoError(t, err)
	assert.Equal(t, "pass_wd.png", f.Name)
	assert.NotContains(t, f.Key, "..")
}

func TestUploadBase64_StripsDataURIPrefix(t *testing.T) {
	objects := &mockObjectStore{}
	objects.On("Upload", mock.Anything, mock.AnythingOfType("string"), "image/png").Return("", nil)
	meta := &mockMetaStore{}
	meta.On("Put", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(objects, meta)
	f, err := svc.UploadBase64(context.Background(), "cap.png", "data:image/png;base64,aGVsbG8=", "u1")

	require.NoError(t, err)
	assert.Equal(t, int64(5), f.Size) // "hello"
	assert.Equal(t, "image/png", f.ContentType)
}

func TestUploadBase64_InvalidEncoding(t *testing.T) {
	svc := NewService(&mockObjectStore{}, &mockMetaStore{})
	_, err := svc.UploadBase64(context.Background(), "cap.png", "not-base64!!!", "u1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestURL_DeletedFileIsNotFound(t *testing.T) {
	meta := &mockMetaStore{}
	meta.On("Get", mock.Anything, "f1").Return(&domain.File{FileID: "f1", Key: "k", Enable: false}, nil)

	svc := NewService(&mockObjectStore{}, meta)
	_, err := svc.URL(context.Background(), "f1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestURL_Presigns(t *testing.T) {
	meta := &mockMetaStore{}
	meta.On("Get", mock.Anything, "f1").Return(&domain.File{FileID: "f1", Key: "files/u1/x.png", Enable: true}, nil)
	objects := &mockObjectStore{}
	objects.On("PresignedURL", mock.Anything, "files/u1/x.png", 15*time.Minute).Return("https://bucket/signed", nil)

	svc := NewService(objects, meta)
	url, err := svc.URL(context.Background(), "f1")

	require.NoError(t, err)
	assert.Equal(t, "https://bucket/signed", url)
}

func TestDelete_RequiresUploaderOrAdmin(t *testing.T) {
	meta := &mockMetaStore{}
	meta.On("Get", mock.Anything, "f1").Return(&domain.File{FileID: "f1", Key: "k", UploadedByUserID: "u1"}, nil)

	svc := NewService(&mockObjectStore{}, meta)
	err := svc.Delete(context.Background(), "f1", "u2", false)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestDelete_AdminOverrides(t *testing.T) {
	meta := &mockMetaStore{}
	meta.On("Get", mock.Anything, "f1").Return(&domain.File{FileID: "f1", Key: "k", UploadedByUserID: "u1"}, nil)
	meta.On("SoftDelete", mock.Anything, "f1").Return(nil)
	objects := &mockObjectStore{}
	objects.On("Delete", mock.Anything, "k").Return(nil)

	svc := NewService(objects, meta)
	require.NoError(t, svc.Delete(context.Background(), "f1", "u2", true))

	objects.AssertExpectations(t)
	meta.AssertExpectations(t)
}
