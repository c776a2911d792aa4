// Package storage is a small filesystem abstraction with two drivers:
//
//   - "local": files under STORAGE_LOCAL_ROOT, served from STORAGE_URL
//   - "s3": any S3-compatible bucket (AWS, MinIO, R2, Spaces)
//
// Boot it once with Connect, then write through the default disk or a
// named one:
//
//	storage.Put(ctx, "placeholders/tee.svg", svg)
//	url := storage.URL("placeholders/tee.svg")
//	storage.Use("s3").Put(ctx, "placeholders/tee.svg", svg)
package storage

import (
	"context"
	"errors"
)

// ErrNotExist is returned by Get when the path is missing on the disk.
var ErrNotExist = errors.New("storage: file does not exist")

// Disk is implemented by every driver.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(ctx context.Context, path string, content []byte) error
	Get(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) bool
	Delete(ctx context.Context, path string) error
	// Files lists the files directly under directory, as disk-relative paths.
	Files(ctx context.Context, directory string) ([]string, error)
	// URL returns the public URL of path. It does not check existence.
	URL(path string) string
}
