package ports

import (
	"context"
	"io"
)

// ImageStore abstracts recipe image storage. Given the uploaded bytes and the
// client's filename (for its extension), it stores the file under a
// server-generated name and returns that name. Orphaned files from failed
// recipe saves are never cleaned up.
type ImageStore interface {
	Store(ctx context.Context, originalName string, r io.Reader) (string, error)
}
