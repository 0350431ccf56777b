//go:generate mockgen -package mocks -destination mocks/interface.go -source=interface.go
package s3

import (
	"context"
	"io"
)

// BasicClient stages files in a single bucket under an optional prefix.
type BasicClient interface {
	BufferPutter
	Deleter
	URLer
}

// BufferPutter can be used to put a file to S3 since File implements Read and Seek.
type BufferPutter interface {
	BufferPut(ctx context.Context, key string, buf io.ReadSeeker) (err error)
}

type Deleter interface {
	Delete(ctx context.Context, key string) error
}

// URLer returns the full s3:// URL of a key, including the client's prefix.
type URLer interface {
	URL(key string) string
}
