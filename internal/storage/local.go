package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/filemanager/backend/pkg/logger"
)

// LocalStore keeps blobs on the local filesystem under
// rootDir/<bucket>/<key>. It is a development stand-in for MinIO and honors
// the same bucket+key contract.
type LocalStore struct {
	rootDir string
}

// NewLocalStore creates the root storage directory once. Creation failure is
// logged and not fatal: the store is a development fallback, and the first
// Put will surface the real error.
func NewLocalStore(rootDir string) *LocalStore {
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		logger.Error("local_storage_root_create_failed", err, map[string]interface{}{
			"root_dir": rootDir,
		})
	} else {
		logger.Info("local_storage_root_ready", map[string]interface{}{
			"root_dir": rootDir,
		})
	}
	return &LocalStore{rootDir: rootDir}
}

func (l *LocalStore) objectPath(bucket, key string) string {
	return filepath.Join(l.rootDir, bucket, filepath.FromSlash(key))
}

func (l *LocalStore) Put(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) error {
	path := l.objectPath(bucket, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Error("local_put_mkdir_failed", err, map[string]interface{}{
			"bucket": bucket,
			"key":    key,
		})
		return err
	}

	target, err := os.Create(path)
	if err != nil {
		logger.Error("local_put_failed", err, map[string]interface{}{
			"bucket": bucket,
			"key":    key,
		})
		return err
	}

	if _, err := io.Copy(target, reader); err != nil {
		_ = target.Close()
		_ = os.Remove(path)
		logger.Error("local_put_write_failed", err, map[string]interface{}{
			"bucket": bucket,
			"key":    key,
		})
		return err
	}

	if err := target.Close(); err != nil {
		return err
	}

	logger.Info("local_put_success", map[string]interface{}{
		"bucket": bucket,
		"key":    key,
		"size":   size,
	})
	return nil
}

func (l *LocalStore) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	file, err := os.Open(l.objectPath(bucket, key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrObjectNotFound
		}
		logger.Error("local_get_failed", err, map[string]interface{}{
			"bucket": bucket,
			"key":    key,
		})
		return nil, err
	}
	return file, nil
}

func (l *LocalStore) Delete(ctx context.Context, bucket, key string) (bool, error) {
	path := l.objectPath(bucket, key)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		logger.Error("local_delete_failed", err, map[string]interface{}{
			"bucket": bucket,
			"key":    key,
		})
		return true, err
	}

	logger.Info("local_delete_success", map[string]interface{}{
		"bucket": bucket,
		"key":    key,
	})
	return true, nil
}
