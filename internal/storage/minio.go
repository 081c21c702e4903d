package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/filemanager/backend/internal/config"
	"github.com/filemanager/backend/pkg/logger"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinIOStore struct {
	client *minio.Client
}

func NewMinIOStore(cfg config.MinIOConfig) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	return &MinIOStore{client: client}, nil
}

func (m *MinIOStore) Put(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		logger.Error("minio_put_failed", err, map[string]interface{}{
			"bucket":       bucket,
			"key":          key,
			"size":         size,
			"content_type": contentType,
		})
		return err
	}
	logger.Info("minio_put_success", map[string]interface{}{
		"bucket": bucket,
		"key":    key,
		"size":   size,
	})
	return nil
}

func (m *MinIOStore) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	obj, err := m.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		logger.Error("minio_get_failed", err, map[string]interface{}{
			"bucket": bucket,
			"key":    key,
		})
		return nil, err
	}

	// GetObject is lazy; Stat forces the first round trip so absence is
	// reported here instead of on the first read.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrObjectNotFound
		}
		logger.Error("minio_get_stat_failed", err, map[string]interface{}{
			"bucket": bucket,
			"key":    key,
		})
		return nil, err
	}

	return obj, nil
}

func (m *MinIOStore) Delete(ctx context.Context, bucket, key string) (bool, error) {
	_, err := m.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}

	if err := m.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		logger.Error("minio_delete_failed", err, map[string]interface{}{
			"bucket": bucket,
			"key":    key,
		})
		return true, err
	}

	logger.Info("minio_delete_success", map[string]interface{}{
		"bucket": bucket,
		"key":    key,
	})
	return true, nil
}

// EnsureBucket creates the configured bucket if it does not already exist.
func (m *MinIOStore) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := m.client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if err := m.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed creating bucket %s: %w", bucket, err)
	}
	return nil
}
