// Package storage keeps uploaded images in an S3-compatible object store.
//
// ImageStore validates uploads and assigns object keys; the Backend
// implementations (S3Backend over aws-sdk-go-v2, MinioBackend over
// minio-go) only move bytes. Store operations are not transactional with the
// database: Replace removes the old object before writing the new one.
package storage

import (
	"context"
	"io"
	"time"
)

// File is an upload as received from a client.
type File struct {
	Name        string
	Size        int64
	ContentType string
	Body        io.Reader
}

// FileStore is what the HTTP layer needs to manage entity images.
type FileStore interface {
	// Upload stores f and returns its key. A nil file yields an empty key.
	Upload(ctx context.Context, f *File) (string, error)
	// Replace validates f, deletes oldKey when it exists and stores f.
	Replace(ctx context.Context, oldKey string, f *File) (string, error)
	// Delete removes key if present. An empty key is a no-op.
	Delete(ctx context.Context, key string) error
	// URL returns a time-limited download link for key, or "" for an empty key.
	URL(ctx context.Context, key string) (string, error)
}

// Backend is a bucket-scoped object store.
type Backend interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, body io.ReadSeeker, size int64, contentType string) error
	Exists(ctx context.Context, key string) (bool, error)
	Remove(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}
