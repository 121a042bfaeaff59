package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURI(t *testing.T) {
	testCases := []struct {
		name     string
		uri      string
		expected Location
		wantErr  bool
	}{
		{"Relative Path", "data.bin", Location{Backend: BackendPOSIX, Path: "data.bin"}, false},
		{"Absolute Path", "/tmp/out.dd", Location{Backend: BackendPOSIX, Path: "/tmp/out.dd"}, false},
		{"S3 Object", "s3://backups/2025/disk.img", Location{Backend: BackendS3, Bucket: "backups", Key: "2025/disk.img"}, false},
		{"Empty", "", Location{}, true},
		{"S3 Missing Key", "s3://backups", Location{}, true},
		{"S3 Empty Key", "s3://backups/", Location{}, true},
		{"S3 Missing Bucket", "s3:///key", Location{}, true},
		{"S3 Prefix Only", "s3://backups/dir/", Location{}, true},
		{"Unknown Scheme", "gs://bucket/key", Location{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			loc, err := ParseURI(tc.uri)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidURI)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, loc)
			assert.Equal(t, tc.uri, loc.String())
		})
	}
}

func TestPOSIXRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "blob")
	content := []byte("block-aligned payload for the posix backend")

	sink, err := Create(ctx, path, Options{})
	require.NoError(t, err)
	_, err = sink.Write(content)
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	src, err := Open(ctx, path, Options{})
	require.NoError(t, err)
	defer src.Close()
	assert.Equal(t, int64(len(content)), src.Size())

	got, err := io.ReadAll(src)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	// Sources must be rewindable for the multi-pass encoder.
	_, err = src.Seek(6, io.SeekStart)
	require.NoError(t, err)
	got, err = io.ReadAll(src)
	require.NoError(t, err)
	assert.Equal(t, content[6:], got)
}

func TestCreateTruncates(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "blob")
	require.NoError(t, os.WriteFile(path, []byte("a much longer previous content"), 0644))

	sink, err := Create(ctx, path, Options{})
	require.NoError(t, err)
	_, err = sink.Write([]byte("short"))
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("short"), got)
}

func TestOpenErrors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	_, err := Open(ctx, filepath.Join(dir, "missing"), Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Open(ctx, dir, Options{})
	assert.Error(t, err)

	_, err = Open(ctx, "s3://bucket/key", Options{})
	assert.ErrorIs(t, err, ErrNoEndpoint)

	_, err = Create(ctx, "s3://bucket/key", Options{})
	assert.ErrorIs(t, err, ErrNoEndpoint)
}

func TestAbortRemovesOutput(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "partial")

	sink, err := Create(ctx, path, Options{})
	require.NoError(t, err)
	_, err = sink.Write([]byte("half a container"))
	require.NoError(t, err)
	require.NoError(t, sink.Abort())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "aborted output should be removed")
}
