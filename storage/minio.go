package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rpupo63/portfolio-admin-backend/config"
	"github.com/rs/zerolog/log"
)

type minioAPI interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
}

type Minio struct {
	client minioAPI
	bucket string
}

// NewMinio connects with static credentials and makes sure the bucket exists.
func NewMinio(ctx context.Context, cfg config.StorageConfig) (*Minio, error) {
	if cfg.MinioEndpoint == "" {
		return nil, errors.New("MinIO endpoint is not configured")
	}
	if cfg.MinioAccessKey == "" || cfg.MinioSecretKey == "" {
		return nil, errors.New("MinIO credentials are not configured")
	}

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	m := newMinio(client, cfg.MinioBucket)
	if err := m.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func newMinio(client minioAPI, bucket string) *Minio {
	return &Minio{client: client, bucket: bucket}
}

// EnsureBucket creates the bucket when it is missing.
func (m *Minio) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", m.bucket, err)
	}
	if exists {
		return nil
	}

	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", m.bucket, err)
	}
	log.Info().Str("bucket", m.bucket).Msg("created MinIO bucket")
	return nil
}

func (m *Minio) Put(ctx context.Context, directory string, data []byte, contentType string) (string, error) {
	key := NewKey(directory, contentType)

	_, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", key, err)
	}

	log.Debug().Str("driver", "minio").Str("bucket", m.bucket).Str("key", key).Msg("blob stored")
	return key, nil
}

func (m *Minio) Delete(ctx context.Context, key string) error {
	err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
	if err != nil && minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return fmt.Errorf("failed to remove object %s: %w", key, err)
	}
	return nil
}
