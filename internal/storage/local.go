package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"flyerhub-backend/internal/metrics"
)

// LocalStorage keeps objects on disk under root and serves them under urlPrefix.
type LocalStorage struct {
	root      string
	urlPrefix string
}

func NewLocalStorage(root, urlPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStorage{
		root:      root,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
	}, nil
}

func (l *LocalStorage) Name() string { return "local" }

func (l *LocalStorage) Root() string { return l.root }

func (l *LocalStorage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	full, rel, err := l.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		metrics.StorageOperations.WithLabelValues(l.Name(), "put", "error").Inc()
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	// Write to a temp file first so readers never see a partial object.
	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		metrics.StorageOperations.WithLabelValues(l.Name(), "put", "error").Inc()
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		metrics.StorageOperations.WithLabelValues(l.Name(), "put", "error").Inc()
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		os.Remove(tmp.Name())
		metrics.StorageOperations.WithLabelValues(l.Name(), "put", "error").Inc()
		return "", fmt.Errorf("failed to move file into place: %w", err)
	}

	metrics.StorageOperations.WithLabelValues(l.Name(), "put", "ok").Inc()
	return l.urlPrefix + "/" + rel, nil
}

func (l *LocalStorage) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !strings.HasPrefix(url, l.urlPrefix+"/") {
		return ErrNotManaged
	}

	full, _, err := l.resolve(strings.TrimPrefix(url, l.urlPrefix+"/"))
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		metrics.StorageOperations.WithLabelValues(l.Name(), "delete", "error").Inc()
		return fmt.Errorf("failed to delete file: %w", err)
	}
	metrics.StorageOperations.WithLabelValues(l.Name(), "delete", "ok").Inc()
	return nil
}

// resolve confines key to root and returns the file path and the
// slash-separated key relative to root.
func (l *LocalStorage) resolve(key string) (string, string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(key))
	if clean == string(filepath.Separator) {
		return "", "", fmt.Errorf("empty storage key")
	}
	rel := strings.TrimPrefix(filepath.ToSlash(clean), "/")
	return filepath.Join(l.root, clean), rel, nil
}
