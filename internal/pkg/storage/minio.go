package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOOptions configures the MinIO driver.
type MinIOOptions struct {
	Bucket    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool
}

// MinIO implements Storage with minio-go.
type MinIO struct {
	bucket string
	client *minio.Client
}

// NewMinIO constructs a MinIO driver.
func NewMinIO(opts MinIOOptions) (*MinIO, error) {
	if opts.Bucket == "" {
		return nil, ErrBucketRequired
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: minio client: %w", err)
	}

	return &MinIO{bucket: opts.Bucket, client: client}, nil
}

// PutObject implements Storage.
func (m *MinIO) PutObject(ctx context.Context, key string, r io.Reader, opts PutOptions) (ObjectInfo, error) {
	info, err := m.client.PutObject(ctx, m.bucket, key, r, opts.Size, minio.PutObjectOptions{
		ContentType:  opts.ContentType,
		UserMetadata: opts.Metadata,
	})
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("storage: minio put %s: %w", key, err)
	}

	return ObjectInfo{
		Key:         key,
		Size:        info.Size,
		TotalSize:   info.Size,
		ETag:        info.ETag,
		ContentType: opts.ContentType,
		Metadata:    opts.Metadata,
	}, nil
}

// GetObject implements Storage.
func (m *MinIO) GetObject(ctx context.Context, key string, rng *ByteRange) (io.ReadCloser, ObjectInfo, error) {
	stat, err := m.StatObject(ctx, key)
	if err != nil {
		return nil, ObjectInfo{}, err
	}

	var opts minio.GetObjectOptions
	if rng != nil {
		if err := opts.SetRange(rng.Start, rng.End); err != nil {
			return nil, ObjectInfo{}, ErrInvalidRange
		}
		stat.Size = rng.Length()
	}

	obj, err := m.client.GetObject(ctx, m.bucket, key, opts)
	if err != nil {
		return nil, ObjectInfo{}, m.mapError(key, err)
	}

	return obj, stat, nil
}

// StatObject implements Storage.
func (m *MinIO) StatObject(ctx context.Context, key string) (ObjectInfo, error) {
	st, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return ObjectInfo{}, m.mapError(key, err)
	}

	return ObjectInfo{
		Key:         key,
		Size:        st.Size,
		TotalSize:   st.Size,
		ETag:        st.ETag,
		ContentType: st.ContentType,
		Metadata:    st.UserMetadata,
		UpdatedAt:   st.LastModified,
	}, nil
}

// DeleteObject implements Storage.
func (m *MinIO) DeleteObject(ctx context.Context, key string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("storage: minio delete %s: %w", key, err)
	}
	return nil
}

// PresignGet implements Storage.
func (m *MinIO) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("storage: minio presign %s: %w", key, err)
	}
	return u.String(), nil
}

// Close implements io.Closer.
func (m *MinIO) Close() error {
	return nil
}

func (m *MinIO) mapError(key string, err error) error {
	if resp := minio.ToErrorResponse(err); resp.StatusCode == http.StatusNotFound || resp.Code == "NoSuchKey" {
		return ErrObjectNotFound
	}
	return fmt.Errorf("storage: minio %s: %w", key, err)
}
