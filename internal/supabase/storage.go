package supabase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	gobreaker "github.com/sony/gobreaker/v2"
	storage_go "github.com/supabase-community/storage-go"

	"flyerhub-backend/internal/metrics"
	"flyerhub-backend/internal/storage"
)

const backendName = "supabase"

// StorageClient stores assets in a public Supabase bucket. Calls go through
// a circuit breaker so a failing bucket degrades asset slots quickly instead
// of stalling every submission.
type StorageClient struct {
	bucket  string
	baseURL string
	breaker *gobreaker.CircuitBreaker[interface{}]

	upload func(path string, data io.Reader, contentType string) error
	remove func(paths []string) error
}

var _ storage.Backend = (*StorageClient)(nil)

func NewStorageClient(client *storage_go.Client, supabaseURL, bucket string) *StorageClient {
	s := &StorageClient{
		bucket:  bucket,
		baseURL: strings.TrimRight(supabaseURL, "/"),
		breaker: newBreaker(DefaultBreakerConfig()),
	}
	s.upload = func(path string, data io.Reader, contentType string) error {
		upsert := true
		_, err := client.UploadFile(bucket, path, data, storage_go.FileOptions{
			ContentType: &contentType,
			Upsert:      &upsert,
		})
		return err
	}
	s.remove = func(paths []string) error {
		_, err := client.RemoveFile(bucket, paths)
		return err
	}
	return s
}

func (s *StorageClient) Name() string { return backendName }

// Put uploads data under key, replacing any existing object, and returns
// its public URL.
func (s *StorageClient) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.upload(key, bytes.NewReader(data), contentType)
	})
	if err != nil {
		metrics.StorageOperations.WithLabelValues(backendName, "put", "error").Inc()
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	metrics.StorageOperations.WithLabelValues(backendName, "put", "ok").Inc()
	return s.PublicURL(key), nil
}

// Delete removes the object behind a public URL from this bucket. URLs
// from elsewhere return storage.ErrNotManaged.
func (s *StorageClient) Delete(ctx context.Context, url string) error {
	path, ok := s.PathFromURL(url)
	if !ok {
		return storage.ErrNotManaged
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.remove([]string{path})
	})
	if err != nil {
		metrics.StorageOperations.WithLabelValues(backendName, "delete", "error").Inc()
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	metrics.StorageOperations.WithLabelValues(backendName, "delete", "ok").Inc()
	return nil
}

func (s *StorageClient) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, path)
}

// PathFromURL reverses PublicURL.
func (s *StorageClient) PathFromURL(url string) (string, bool) {
	prefix := s.PublicURL("")
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	path := strings.TrimPrefix(url, prefix)
	if path == "" {
		return "", false
	}
	return path, true
}
