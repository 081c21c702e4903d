// Package storage defines the object-storage capability used by the file
// service and its two interchangeable implementations: a MinIO/S3 client for
// real deployments and a local-filesystem store for development.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned by Get when no object exists at the given
// bucket and key.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStorage is the uniform put/get/delete contract over bucket+key
// addressed blobs. Put overwrites silently and creates intermediate
// containers as needed. Delete of an absent key is not an error; the returned
// bool tells the caller whether the object existed.
type ObjectStorage interface {
	Put(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) error
	Get(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, bucket, key string) (bool, error)
}
