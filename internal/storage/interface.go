package storage

import (
	"context"
	"io"
)

// ObjectStorage is the read side of an S3-compatible bucket.
type ObjectStorage interface {
	// Download opens the object at key. The caller closes the reader.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether an object is stored at key.
	Exists(ctx context.Context, key string) (bool, error)
}
