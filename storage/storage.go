// Package storage persists uploaded attachment blobs and hands back the
// relative paths recorded on article and robot rows.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

// Kinds partition the uploads namespace per record type.
const (
	KindArticles = "articles"
	KindRobots   = "robots"
)

// Store is the attachment blob store. Put returns a path of the form
// /uploads/{kind}/{epochMillis}-{originalName}, usable directly as a
// public URL. Remove of a path whose blob is already gone is not an
// error.
type Store interface {
	Put(ctx context.Context, kind, originalName string, r io.Reader) (string, error)
	Remove(ctx context.Context, relativePath string) error
}

// blobName prefixes the sanitized original name with a millisecond
// timestamp, matching the recorded path format.
func blobName(originalName string) string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitize(originalName))
}

// sanitize strips any path components and characters that could break
// out of the uploads directory or the URL.
func sanitize(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "/" || name == "." {
		return "file"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}

// objectKey converts a recorded /uploads/... path back to the
// kind/name key used by the backends.
func objectKey(relativePath string) string {
	return strings.TrimPrefix(strings.TrimPrefix(relativePath, "/"), "uploads/")
}
