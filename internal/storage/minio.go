package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const objectPrefix = "candidates/"

// MinIOStore keeps images in an S3 compatible bucket.
type MinIOStore struct {
	client *minio.Client
	bucket string
	secure bool
}

// NewMinIOStore connects to MinIO and creates the bucket when missing.
func NewMinIOStore(ctx context.Context, endpoint, accessKey, secretKey, bucket string, secure bool) (*MinIOStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	slog.Info("Successfully connected to MinIO", "endpoint", endpoint, "bucket", bucket)
	return &MinIOStore{client: client, bucket: bucket, secure: secure}, nil
}

func (m *MinIOStore) Save(ctx context.Context, img *Image) (string, error) {
	objectName := objectPrefix + uuid.NewString() + img.Ext
	_, err := m.client.PutObject(ctx, m.bucket, objectName, img.Reader(), img.Size, minio.PutObjectOptions{
		ContentType: img.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return m.url(objectName), nil
}

// Remove deletes an object previously returned by Save. Foreign references are ignored.
func (m *MinIOStore) Remove(ctx context.Context, ref string) error {
	objectName, ok := m.objectName(ref)
	if !ok {
		return nil
	}
	if err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

func (m *MinIOStore) url(objectName string) string {
	scheme := "http"
	if m.secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, m.client.EndpointURL().Host, m.bucket, objectName)
}

func (m *MinIOStore) objectName(ref string) (string, bool) {
	prefix := m.url("")
	if !strings.HasPrefix(ref, prefix) {
		return "", false
	}
	return strings.TrimPrefix(ref, prefix), true
}
