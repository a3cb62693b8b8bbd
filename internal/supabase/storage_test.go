package supabase

import (
	"context"
	"errors"
	"io"
	"testing"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flyerhub-backend/internal/storage"
)

type fakeBucket struct {
	uploads map[string]string
	removed []string
	err     error
}

func newTestStorage() (*StorageClient, *fakeBucket) {
	bucket := &fakeBucket{uploads: map[string]string{}}
	s := NewStorageClient(nil, "https://proj.supabase.co/", "uploads")
	s.upload = func(path string, data io.Reader, contentType string) error {
		if bucket.err != nil {
			return bucket.err
		}
		bucket.uploads[path] = contentType
		return nil
	}
	s.remove = func(paths []string) error {
		if bucket.err != nil {
			return bucket.err
		}
		bucket.removed = append(bucket.removed, paths...)
		return nil
	}
	return s, bucket
}

func TestStorageClient_PutReturnsPublicURL(t *testing.T) {
	s, bucket := newTestStorage()

	url, err := s.Put(context.Background(), "djs/dj_1_4.png", []byte("x"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://proj.supabase.co/storage/v1/object/public/uploads/djs/dj_1_4.png", url)
	assert.Equal(t, "image/png", bucket.uploads["djs/dj_1_4.png"])
}

func TestStorageClient_DeleteRoundTripsURL(t *testing.T) {
	s, bucket := newTestStorage()

	require.NoError(t, s.Delete(context.Background(), s.PublicURL("host/host_2.jpg")))
	assert.Equal(t, []string{"host/host_2.jpg"}, bucket.removed)
}

func TestStorageClient_DeleteForeignURL(t *testing.T) {
	s, bucket := newTestStorage()

	err := s.Delete(context.Background(), "https://library.example/logo.png")
	assert.ErrorIs(t, err, storage.ErrNotManaged)
	assert.Empty(t, bucket.removed)
}

func TestStorageClient_BreakerOpensAfterFailures(t *testing.T) {
	s, bucket := newTestStorage()
	bucket.err = errors.New("503")

	cfg := DefaultBreakerConfig()
	for i := uint32(0); i < cfg.FailureThreshold; i++ {
		_, err := s.Put(context.Background(), "k.png", nil, "image/png")
		require.Error(t, err)
	}

	bucket.err = nil
	_, err := s.Put(context.Background(), "k.png", nil, "image/png")
	require.Error(t, err)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Empty(t, bucket.uploads)
}
