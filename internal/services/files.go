package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"flyerhub-backend/internal/models"
)

// FilePolicy restricts an upload endpoint to a size and set of types. A
// file passes when either its declared content type or its extension is
// allowed.
type FilePolicy struct {
	MaxBytes int64
	Mimes    []string
	Exts     []string
	Label    string
}

var (
	OrderFilePolicy = FilePolicy{
		MaxBytes: 50 << 20,
		Mimes: []string{
			"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp",
			"application/zip", "application/x-zip", "application/x-zip-compressed",
			"application/pdf",
		},
		Exts:  []string{".zip", ".jpg", ".jpeg", ".png", ".gif", ".webp", ".pdf"},
		Label: "images, ZIP and PDF files",
	}

	UserMediaPolicy = FilePolicy{
		MaxBytes: 20 << 20,
		Mimes: []string{
			"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp", "image/svg+xml",
			"application/pdf",
		},
		Exts:  []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".pdf"},
		Label: "images (JPG, PNG, GIF, WEBP, SVG) and PDF files",
	}

	ImagePolicy = FilePolicy{
		MaxBytes: 5 << 20,
		Mimes:    []string{"image/"},
		Exts:     []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg"},
		Label:    "images",
	}
)

// Check returns a ValidationError describing why f is rejected.
func (p FilePolicy) Check(f *UploadedFile) error {
	if f == nil {
		return NewValidationError("file is required")
	}
	if p.MaxBytes > 0 && f.Size > p.MaxBytes {
		return NewValidationError(fmt.Sprintf("file exceeds %d MB limit", p.MaxBytes>>20))
	}
	if !p.allowed(f) {
		return NewValidationError(fmt.Sprintf("only %s are allowed", p.Label))
	}
	return nil
}

func (p FilePolicy) allowed(f *UploadedFile) bool {
	ct := strings.ToLower(f.ContentType)
	for _, m := range p.Mimes {
		if ct == m || (strings.HasSuffix(m, "/") && strings.HasPrefix(ct, m)) {
			return true
		}
	}
	ext := strings.ToLower(filepath.Ext(f.Filename))
	for _, e := range p.Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// ClassifyFile maps a content type, falling back to the extension, onto the
// stored file_type.
func ClassifyFile(contentType, filename string) string {
	ct := strings.ToLower(contentType)
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case strings.Contains(ct, "zip") || ext == ".zip":
		return models.FileTypeZip
	case ct == "application/pdf" || ext == ".pdf":
		return models.FileTypePDF
	case strings.HasPrefix(ct, "image/"):
		return models.FileTypeImage
	}
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg":
		return models.FileTypeImage
	}
	return models.FileTypeOther
}
