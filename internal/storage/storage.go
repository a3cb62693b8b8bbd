// Package storage defines where uploaded assets live. Backends return the
// URL a client should use to fetch the object.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotManaged = errors.New("url is not managed by this backend")

// Backend stores and removes objects by key.
type Backend interface {
	// Put writes data under key and returns its public URL.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Delete removes the object behind a URL previously returned by Put.
	Delete(ctx context.Context, url string) error
	Name() string
}

// Asset namespaces.
const (
	NamespaceVenueLogo  = "venue_logo"
	NamespaceDJs        = "djs"
	NamespaceHost       = "host"
	NamespaceSponsors   = "sponsors"
	NamespaceFlyers     = "flyers"
	NamespaceBanners    = "banners"
	NamespaceOrderFiles = "order-files"
	NamespaceUserMedia  = "user-media"
)

// Key joins a namespace and file name into an object key.
func Key(namespace, name string) string {
	return path.Join(namespace, name)
}

// UniqueName returns "<prefix>_<unix-millis>_<short-uuid><ext>" for uploads
// that have no natural identifier.
func UniqueName(prefix, ext string) string {
	if ext == "" {
		ext = ".jpg"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return fmt.Sprintf("%s_%d_%s%s", prefix, time.Now().UnixMilli(), uuid.New().String()[:8], ext)
}

// DetectContentType falls back to an extension lookup when the client sent none.
func DetectContentType(declared, filename string) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	switch strings.ToLower(path.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	case ".pdf":
		return "application/pdf"
	case ".zip":
		return "application/zip"
	default:
		if declared != "" {
			return declared
		}
		return "application/octet-stream"
	}
}
