package filestorage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/skillvento/skillvento/internal/config"
	"github.com/skillvento/skillvento/internal/util"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// MinioStorage uploads certificate blobs under a per-owner namespace
// and hands out stable public URLs for them. The bucket is expected to
// carry a public-read policy; URLs are constructed, not presigned.
type MinioStorage struct {
	client *minio.Client
	cfg    *config.MinioConfig
	logger *zap.SugaredLogger
}

func NewMinioStorage(client *minio.Client, cfg *config.MinioConfig, logger *zap.SugaredLogger) *MinioStorage {
	return &MinioStorage{client: client, cfg: cfg, logger: logger}
}

func (m *MinioStorage) createBucketIfNotExists(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.cfg.BUCKET)
	if err != nil {
		return err
	}

	if !exists {
		if err := m.client.MakeBucket(ctx, m.cfg.BUCKET, minio.MakeBucketOptions{}); err != nil {
			return err
		}
	}

	return nil
}

// Upload stores the blob under certificates/<ownerId>/ with a unique
// prefix and the given suffix, returning the object key.
func (m *MinioStorage) Upload(ctx context.Context, data []byte, contentType, ownerId, suffix string) (string, error) {
	if err := m.createBucketIfNotExists(ctx); err != nil {
		return "", fmt.Errorf("failed to create bucket: %w", err)
	}

	key := fmt.Sprintf("certificates/%s/%s", ownerId, util.AddUniquePrefixToFileName(suffix))

	_, err := m.client.PutObject(
		ctx,
		m.cfg.BUCKET,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	return key, nil
}

// PublicURL always returns a URL string, even for keys that may not
// exist; existence is the caller's concern.
func (m *MinioStorage) PublicURL(key string) string {
	scheme := "http"
	if m.cfg.USE_SSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, m.cfg.PUBLIC_ENDPOINT, m.cfg.BUCKET, key)
}

func (m *MinioStorage) Remove(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	if err := m.client.RemoveObject(ctx, m.cfg.BUCKET, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s: %w", key, err)
	}

	return nil
}
