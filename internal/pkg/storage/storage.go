// Package storage stores media objects (application videos) in an S3
// compatible bucket.
//
// Drivers: AWS S3 (aws-sdk-go-v2), MinIO (minio-go) and an in-memory driver
// for local runs and tests. A Storage value is bound to one bucket.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrObjectNotFound is returned when the key does not exist.
	ErrObjectNotFound = errors.New("storage: object not found")
	// ErrInvalidRange is returned when a byte range cannot be satisfied.
	ErrInvalidRange = errors.New("storage: invalid range")
	// ErrBucketRequired is returned when a driver has no bucket configured.
	ErrBucketRequired = errors.New("storage: bucket is required")
)

// Storage defines object storage operations on a single bucket.
type Storage interface {
	io.Closer

	// PutObject uploads r under key. Size may be -1 when unknown.
	PutObject(ctx context.Context, key string, r io.Reader, opts PutOptions) (ObjectInfo, error)
	// GetObject opens the object, or the requested byte range of it.
	GetObject(ctx context.Context, key string, rng *ByteRange) (io.ReadCloser, ObjectInfo, error)
	// StatObject returns metadata without reading the content.
	StatObject(ctx context.Context, key string) (ObjectInfo, error)
	// DeleteObject removes the object. Missing objects are not an error.
	DeleteObject(ctx context.Context, key string) error
	// PresignGet returns a time-limited download URL.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// PutOptions configures an upload.
type PutOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ByteRange is an inclusive byte range.
type ByteRange struct {
	Start int64
	End   int64
}

// Length returns the number of bytes in the range.
func (r ByteRange) Length() int64 {
	return r.End - r.Start + 1
}

// ObjectInfo describes a stored object. For ranged reads Size is the length
// of the range and TotalSize the length of the whole object.
type ObjectInfo struct {
	Key         string
	Size        int64
	TotalSize   int64
	ETag        string
	ContentType string
	Metadata    map[string]string
	UpdatedAt   time.Time
}
