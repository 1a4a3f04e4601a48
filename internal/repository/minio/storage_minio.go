package minio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/qaztour/qaztour-api/internal/repository/ports"
)

func NewClient(endpoint, key, secret string, useSSL bool) (*minio.Client, error) {
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(key, secret, ""),
		Secure: useSSL,
	})
}

// Storage implements ports.ObjectStorage on a MinIO (or S3-compatible)
// endpoint. PublicBaseURL, when set, overrides the URL returned by Upload.
type Storage struct {
	client        *minio.Client
	publicBaseURL string
	useSSL        bool
}

func NewStorage(client *minio.Client, publicBaseURL string, useSSL bool) *Storage {
	return &Storage{
		client:        client,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		useSSL:        useSSL,
	}
}

func (s *Storage) Upload(ctx context.Context, bucket, objectKey, contentType string, reader io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, bucket, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}

	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + strings.TrimLeft(objectKey, "/"), nil
	}
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.client.EndpointURL().Host, bucket, objectKey), nil
}

func (s *Storage) Remove(ctx context.Context, bucket, objectKey string) error {
	return s.client.RemoveObject(ctx, bucket, objectKey, minio.RemoveObjectOptions{})
}

var _ ports.ObjectStorage = (*Storage)(nil)
