package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDiskRoundTrip(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	d, err := NewLocalDisk(root, "http://cdn.test/storage/")
	require.NoError(t, err)

	require.NoError(t, d.Put(ctx, "placeholders/tee.svg", []byte("<svg/>")))
	assert.FileExists(t, filepath.Join(root, "placeholders", "tee.svg"))
	assert.True(t, d.Exists(ctx, "placeholders/tee.svg"))
	assert.False(t, d.Exists(ctx, "placeholders"), "directories are not files")

	data, err := d.Get(ctx, "/placeholders/tee.svg")
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))

	files, err := d.Files(ctx, "placeholders")
	require.NoError(t, err)
	assert.Equal(t, []string{"placeholders/tee.svg"}, files)

	assert.Equal(t, "http://cdn.test/storage/placeholders/tee.svg", d.URL("/placeholders/tee.svg"))

	require.NoError(t, d.Delete(ctx, "placeholders/tee.svg"))
	require.NoError(t, d.Delete(ctx, "placeholders/tee.svg"), "deleting twice is fine")
	_, err = d.Get(ctx, "placeholders/tee.svg")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestLocalDiskStaysInsideRoot(t *testing.T) {
	ctx := context.Background()
	parent := t.TempDir()
	root := filepath.Join(parent, "root")
	d, err := NewLocalDisk(root, "")
	require.NoError(t, err)

	require.NoError(t, d.Put(ctx, "../escape.txt", []byte("x")))
	_, err = os.Stat(filepath.Join(parent, "escape.txt"))
	assert.True(t, os.IsNotExist(err))
	assert.FileExists(t, filepath.Join(root, "escape.txt"))
}

func TestFilesOnMissingDirectory(t *testing.T) {
	d, err := NewLocalDisk(t.TempDir(), "")
	require.NoError(t, err)

	files, err := d.Files(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDefaultDiskHelpers(t *testing.T) {
	ctx := context.Background()
	d, err := NewLocalDisk(t.TempDir(), "/storage")
	require.NoError(t, err)
	RegisterDisk("test", d)
	SetDefault("test")
	t.Cleanup(func() { SetDefault("local") })

	require.NoError(t, Put(ctx, "a.txt", []byte("a")))
	assert.True(t, Exists(ctx, "a.txt"))
	assert.Equal(t, "/storage/a.txt", URL("a.txt"))

	assert.Panics(t, func() { Use("missing") })
}

func TestNewS3DiskRequiresBucket(t *testing.T) {
	_, err := NewS3Disk(context.Background(), S3Options{})
	assert.Error(t, err)
}

func TestS3DiskURL(t *testing.T) {
	d, err := NewS3Disk(context.Background(), S3Options{
		Bucket: "assets", Region: "eu-west-1", Key: "k", Secret: "s",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://assets.s3.eu-west-1.amazonaws.com/placeholders/a.svg", d.URL("/placeholders/a.svg"))

	d, err = NewS3Disk(context.Background(), S3Options{
		Bucket: "assets", Key: "k", Secret: "s",
		Endpoint: "http://minio:9000", URL: "http://minio:9000/assets/",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000/assets/a.svg", d.URL("a.svg"))
}
