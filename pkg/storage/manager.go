package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

var (
	mu          sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk = "local"
)

// Connect boots the local disk and, when S3_BUCKET is set, the s3 disk.
// A misconfigured s3 disk is logged and skipped; the default disk must exist.
func Connect(ctx context.Context) error {
	local, err := NewLocalDisk(config.StorageLocalRoot(), config.StorageURL())
	if err != nil {
		return err
	}
	RegisterDisk("local", local)

	if bucket := config.StorageS3Bucket(); bucket != "" {
		d, err := NewS3Disk(ctx, S3Options{
			Bucket:   bucket,
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
			URL:      config.StorageS3URL(),
		})
		if err != nil {
			logger.Warn("s3 disk disabled", "error", err)
		} else {
			RegisterDisk("s3", d)
		}
	}

	name := config.StorageDefault()
	if _, ok := lookup(name); !ok {
		return fmt.Errorf("storage: default disk %q is not configured", name)
	}
	mu.Lock()
	defaultDisk = name
	mu.Unlock()
	return nil
}

// RegisterDisk installs d under name, replacing any previous disk.
func RegisterDisk(name string, d Disk) {
	mu.Lock()
	disks[name] = d
	mu.Unlock()
}

// SetDefault switches the disk used by the package-level helpers.
func SetDefault(name string) {
	mu.Lock()
	defaultDisk = name
	mu.Unlock()
}

func lookup(name string) (Disk, bool) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := disks[name]
	return d, ok
}

// Use returns the named disk and panics when it was never registered.
func Use(name string) Disk {
	d, ok := lookup(name)
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// Default returns the default disk.
func Default() Disk {
	mu.RLock()
	name := defaultDisk
	mu.RUnlock()
	return Use(name)
}

func Put(ctx context.Context, path string, content []byte) error {
	return Default().Put(ctx, path, content)
}

func Get(ctx context.Context, path string) ([]byte, error) { return Default().Get(ctx, path) }

func Exists(ctx context.Context, path string) bool { return Default().Exists(ctx, path) }

func URL(path string) string { return Default().URL(path) }
