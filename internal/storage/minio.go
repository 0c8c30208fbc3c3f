package storage

import (
	"bytes"
	"context"
	"fmt"

	"microblog/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ExportStore keeps export artifacts in object storage.
type ExportStore struct {
	client *minio.Client
	bucket string
}

// NewExportStore connects to the object storage endpoint.
func NewExportStore(cfg *config.StorageConfig) (*ExportStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect object storage: %w", err)
	}

	return &ExportStore{client: client, bucket: cfg.Bucket}, nil
}

// EnsureBucket creates the export bucket if it does not exist.
func (s *ExportStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket: %w", err)
	}
	return nil
}

// Put uploads an artifact and returns its object name.
func (s *ExportStore) Put(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("upload artifact: %w", err)
	}
	return objectName, nil
}
