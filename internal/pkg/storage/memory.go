package storage

import (
	"bytes"
	"context"
	"crypto/md5" //nolint:gosec // etag only
	"encoding/hex"
	"fmt"
	"io"
	"maps"
	"sync"
	"time"
)

type memoryObject struct {
	data        []byte
	contentType string
	metadata    map[string]string
	updatedAt   time.Time
}

// Memory keeps objects in process memory.
type Memory struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string]memoryObject)}
}

// PutObject implements Storage.
func (m *Memory) PutObject(ctx context.Context, key string, r io.Reader, opts PutOptions) (ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("storage: memory put %s: %w", key, err)
	}

	obj := memoryObject{
		data:        data,
		contentType: opts.ContentType,
		metadata:    maps.Clone(opts.Metadata),
		updatedAt:   time.Now(),
	}

	m.mu.Lock()
	m.objects[key] = obj
	m.mu.Unlock()

	return info(key, obj), nil
}

// GetObject implements Storage.
func (m *Memory) GetObject(ctx context.Context, key string, rng *ByteRange) (io.ReadCloser, ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, ObjectInfo{}, err
	}

	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ObjectInfo{}, ErrObjectNotFound
	}

	oi := info(key, obj)
	data := obj.data
	if rng != nil {
		if rng.Start < 0 || rng.End >= int64(len(data)) || rng.End < rng.Start {
			return nil, ObjectInfo{}, ErrInvalidRange
		}
		data = data[rng.Start : rng.End+1]
		oi.Size = rng.Length()
	}

	return io.NopCloser(bytes.NewReader(data)), oi, nil
}

// StatObject implements Storage.
func (m *Memory) StatObject(_ context.Context, key string) (ObjectInfo, error) {
	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return ObjectInfo{}, ErrObjectNotFound
	}
	return info(key, obj), nil
}

// DeleteObject implements Storage.
func (m *Memory) DeleteObject(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

// PresignGet implements Storage. The URL is only meaningful in-process.
func (m *Memory) PresignGet(_ context.Context, key string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("memory://%s?expires=%d", key, time.Now().Add(expiry).Unix()), nil
}

// Close implements io.Closer.
func (m *Memory) Close() error {
	return nil
}

func info(key string, obj memoryObject) ObjectInfo {
	sum := md5.Sum(obj.data) //nolint:gosec // etag only
	size := int64(len(obj.data))

	return ObjectInfo{
		Key:         key,
		Size:        size,
		TotalSize:   size,
		ETag:        hex.EncodeToString(sum[:]),
		ContentType: obj.contentType,
		Metadata:    maps.Clone(obj.metadata),
		UpdatedAt:   obj.updatedAt,
	}
}
