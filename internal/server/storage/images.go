package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/petcare/internal/common"
	"github.com/google/uuid"
)

const (
	keyPrefix     = "images"
	defaultURLTTL = 15 * time.Minute
)

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

type ImageStore struct {
	backend Backend
	maxSize int64
	urlTTL  time.Duration
	now     func() time.Time
	newID   func() string
}

func NewImageStore(backend Backend, maxSize int64) *ImageStore {
	if maxSize <= 0 {
		maxSize = common.MaxUploadSize
	}
	return &ImageStore{
		backend: backend,
		maxSize: maxSize,
		urlTTL:  defaultURLTTL,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// validate checks the extension and the declared size, then buffers the body
// so the actual size is known and the backend gets a seekable reader.
func (s *ImageStore) validate(f *File) (ext string, data []byte, err error) {
	ext = strings.ToLower(filepath.Ext(f.Name))
	if _, ok := contentTypes[ext]; !ok {
		return "", nil, fmt.Errorf("%w: %q", common.ErrUnsupportedFileType, f.Name)
	}
	if f.Size >= s.maxSize {
		return "", nil, common.ErrFileTooLarge
	}
	if f.Body == nil {
		return ext, nil, nil
	}

	data, err = io.ReadAll(io.LimitReader(f.Body, s.maxSize))
	if err != nil {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) >= s.maxSize {
		return "", nil, common.ErrFileTooLarge
	}
	return ext, data, nil
}

func (s *ImageStore) key(ext string) string {
	return fmt.Sprintf("%s/%s/%s%s", keyPrefix, s.now().UTC().Format("2006/01/02"), s.newID(), ext)
}

func (s *ImageStore) put(ctx context.Context, f *File, ext string, data []byte) (string, error) {
	contentType := f.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = contentTypes[ext]
	}
	key := s.key(ext)
	if err := s.backend.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return key, nil
}

func (s *ImageStore) Upload(ctx context.Context, f *File) (string, error) {
	if f == nil {
		return "", nil
	}
	ext, data, err := s.validate(f)
	if err != nil {
		return "", err
	}
	return s.put(ctx, f, ext, data)
}

func (s *ImageStore) Replace(ctx context.Context, oldKey string, f *File) (string, error) {
	if f == nil {
		return oldKey, nil
	}
	ext, data, err := s.validate(f)
	if err != nil {
		return "", err
	}
	if err := s.Delete(ctx, oldKey); err != nil {
		return "", err
	}
	return s.put(ctx, f, ext, data)
}

func (s *ImageStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	found, err := s.backend.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("stat %s: %w", key, err)
	}
	if !found {
		return nil
	}
	if err := s.backend.Remove(ctx, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func (s *ImageStore) URL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	u, err := s.backend.PresignGet(ctx, key, s.urlTTL)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return u, nil
}
