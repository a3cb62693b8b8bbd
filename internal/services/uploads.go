package services

import (
	"context"
	"encoding/base64"
	"errors"
	"regexp"
	"strings"

	"flyerhub-backend/internal/logging"
	"flyerhub-backend/internal/storage"
)

// Uploader stores standalone uploads (catalog images, order files, user
// media) under unique names. Unlike asset slots, failures are returned.
type Uploader struct {
	backend storage.Backend
}

func NewUploader(backend storage.Backend) *Uploader {
	return &Uploader{backend: backend}
}

// Store writes f under namespace with a unique "<prefix>_..." name.
func (u *Uploader) Store(ctx context.Context, namespace, prefix string, f *UploadedFile) (string, error) {
	data, err := f.ReadAll()
	if err != nil {
		return "", &StorageError{Op: "read", Key: f.Filename, Err: err}
	}
	return u.StoreBytes(ctx, namespace, prefix, f.Ext(), storage.DetectContentType(f.ContentType, f.Filename), data)
}

func (u *Uploader) StoreBytes(ctx context.Context, namespace, prefix, ext, contentType string, data []byte) (string, error) {
	key := storage.Key(namespace, storage.UniqueName(prefix, ext))
	url, err := u.backend.Put(ctx, key, data, contentType)
	if err != nil {
		return "", &StorageError{Op: "put", Key: key, Err: err}
	}
	return url, nil
}

var dataURLPattern = regexp.MustCompile(`^data:([A-Za-z0-9.+/-]+);base64,(.+)$`)

// IsImageDataURL reports whether s is an inline base64 image.
func IsImageDataURL(s string) bool {
	return strings.HasPrefix(s, "data:image/")
}

// StoreDataURL decodes a base64 image data URL and stores it. PNG payloads
// keep .png; everything else is stored as .jpg.
func (u *Uploader) StoreDataURL(ctx context.Context, namespace, prefix, dataURL string) (string, error) {
	m := dataURLPattern.FindStringSubmatch(dataURL)
	if m == nil || !IsImageDataURL(dataURL) {
		return "", NewValidationError("image must be a base64 image data URL")
	}
	data, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return "", NewValidationError("image data URL is not valid base64")
	}
	ext, contentType := ".jpg", "image/jpeg"
	if strings.Contains(m[1], "png") {
		ext, contentType = ".png", "image/png"
	}
	return u.StoreBytes(ctx, namespace, prefix, ext, contentType, data)
}

// Remove deletes a previously stored object. Foreign URLs and failures are
// logged and otherwise ignored; the row change that triggered the removal
// has already committed.
func (u *Uploader) Remove(ctx context.Context, url string) {
	if url == "" {
		return
	}
	err := u.backend.Delete(ctx, url)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotManaged):
		logging.Ctx(ctx).Debug().Str("url", url).Msg("skipping delete of unmanaged url")
	default:
		logging.Ctx(ctx).Warn().Err(err).Str("url", url).Msg("failed to delete stored object")
	}
}
