package files

import (
	"context"
	"io"
)

// Object is one file on its way to the object store.
type Object struct {
	Key         string
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ObjectStore port (interface untuk penyimpanan file ke object storage)
type ObjectStore interface {
	// Upload stores the object and returns its public URL.
	Upload(ctx context.Context, obj Object) (string, error)
	Ping(ctx context.Context) error
}

// TextExtractor port for PDF documents
type TextExtractor interface {
	ExtractText(ctx context.Context, r io.ReaderAt, size int64) (string, error)
}
