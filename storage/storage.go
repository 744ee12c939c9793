// Package storage holds the backends recipe images are written to.
package storage

import (
	"context"
	"io"
	"strings"
)

// ImageStore saves and removes uploaded files addressed by a slash separated key
type ImageStore interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Delete removes key; a missing key is not an error
	Delete(ctx context.Context, key string) error
	// URL returns the public location of key
	URL(key string) string
}

func joinURL(base, key string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(key, "/")
}
