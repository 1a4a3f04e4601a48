package ports

import (
	"context"
	"io"
)

type ObjectStorage interface {
	Upload(ctx context.Context, bucket, objectKey, contentType string, reader io.Reader, size int64) (string, error)
	Remove(ctx context.Context, bucket, objectKey string) error
}
