package summary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"country-exchange/core/storage"

	"github.com/minio/minio-go/v7"
)

// ErrNotFound is returned by Get when no summary has been stored yet.
var ErrNotFound = errors.New("summary image not found")

// ArtifactStore holds the single summary blob.
type ArtifactStore interface {
	Put(ctx context.Context, data []byte, contentType string) error
	Exists(ctx context.Context) (bool, error)
	Get(ctx context.Context) ([]byte, error)
}

// BucketStore keeps the summary under a fixed object name in object storage.
type BucketStore struct {
	client storage.Client
	bucket string
	object string
}

// NewBucketStore creates a BucketStore.
func NewBucketStore(client storage.Client, bucket, object string) *BucketStore {
	return &BucketStore{client: client, bucket: bucket, object: object}
}

// Put overwrites the stored summary.
func (s *BucketStore) Put(ctx context.Context, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", s.object, err)
	}
	return nil
}

// Exists reports whether a summary has been stored.
func (s *BucketStore) Exists(ctx context.Context) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, s.object, minio.StatObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", s.object, err)
	}
	return true, nil
}

// Get downloads the stored summary.
func (s *BucketStore) Get(ctx context.Context) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", s.object, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.object, err)
	}
	return data, nil
}

// MemoryStore keeps the summary in process memory. It backs local runs
// without object storage.
type MemoryStore struct {
	mu          sync.RWMutex
	data        []byte
	contentType string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Put implements ArtifactStore.
func (m *MemoryStore) Put(_ context.Context, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.contentType = contentType
	return nil
}

// Exists implements ArtifactStore.
func (m *MemoryStore) Exists(_ context.Context) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data != nil, nil
}

// Get implements ArtifactStore.
func (m *MemoryStore) Get(_ context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.data == nil {
		return nil, ErrNotFound
	}
	return append([]byte(nil), m.data...), nil
}
