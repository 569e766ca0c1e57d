package file

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/event-ops-api/internal/domain"
	"github.com/event-ops-api/internal/pkg/id"
)

// ObjectStore is the blob backend; S3 in production.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type MetaStore interface {
	Put(ctx context.Context, f *domain.File) error
	Get(ctx context.Context, fileID string) (*domain.File, error)
	SoftDelete(ctx context.Context, fileID string) error
}

type UploadInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
	UploaderID  string
}

type Service interface {
	Upload(ctx context.Context, input UploadInput) (*domain.File, error)
	UploadBase64(ctx context.Context, filename, base64Data, uploaderID string) (*domain.File, error)
	URL(ctx context.Context, fileID string) (string, error)
	Delete(ctx context.Context, fileID, requesterID string, isAdmin bool) error
}

type service struct {
	objects ObjectStore
	meta    MetaStore
}

func NewService(objects ObjectStore, meta MetaStore) Service {
	return &service{objects: objects, meta: meta}
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*domain.File, error) {
	safeName := sanitizeFilename(input.Filename)
	key := fmt.Sprintf("files/%s/%s-%s", input.UploaderID, id.New(), safeName)
	hasher := sha256.New()
	tee := io.TeeReader(input.Reader, hasher)
	if _, err := s.objects.Upload(ctx, key, tee, input.ContentType); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	f := &domain.File{
		FileID:           id.New(),
		Key:              key,
		Size:             input.Size,
		ContentType:      input.ContentType,
		Name:             safeName,
		Hash:             hex.EncodeToString(hasher.Sum(nil)),
		UploadedByUserID: input.UploaderID,
		Enable:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.meta.Put(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) UploadBase64(ctx context.Context, filename, base64Data, uploaderID string) (*domain.File, error) {
	// Data-URI prefixes ("data:image/png;base64,") are tolerated since
	// the dashboard sends camera captures that way.
	if idx := strings.Index(base64Data, ","); idx != -1 && strings.HasPrefix(base64Data, "data:") {
		base64Data = base64Data[idx+1:]
	}
	decoded, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", domain.ErrBadRequest)
	}
	return s.Upload(ctx, UploadInput{
		Reader:      bytes.NewReader(decoded),
		Filename:    filename,
		ContentType: detectContentType(filename),
		Size:        int64(len(decoded)),
		UploaderID:  uploaderID,
	})
}

func (s *service) URL(ctx context.Context, fileID string) (string, error) {
	f, err := s.meta.Get(ctx, fileID)
	if err != nil {
		return "", err
	}
	if !f.Enable {
		return "", fmt.Errorf("file deleted: %w", domain.ErrNotFound)
	}
	return s.objects.PresignedURL(ctx, f.Key, 15*time.Minute)
}

func (s *service) Delete(ctx context.Context, fileID, requesterID string, isAdmin bool) error {
	f, err := s.meta.Get(ctx, fileID)
	if err != nil {
		return err
	}
	if f.UploadedByUserID != requesterID && !isAdmin {
		return fmt.Errorf("not the uploader: %w", domain.ErrForbidden)
	}
	if err := s.objects.Delete(ctx, f.Key); err != nil {
		return err
	}
	return s.meta.SoftDelete(ctx, fileID)
}

func sanitizeFilename(name string) string {
	base := path.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}

func detectContentType(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".jpg") || strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".pdf"):
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
