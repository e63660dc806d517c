package storage

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// MemoryBucket keeps objects in process memory. It backs local development when no
// object storage credentials are configured.
type MemoryBucket struct {
	mu         sync.RWMutex
	bucket     string
	publicBase string
	objects    map[string][]byte
}

func NewMemoryBucket(bucket, publicBase string) *MemoryBucket {
	return &MemoryBucket{
		bucket:     bucket,
		publicBase: publicBase,
		objects:    make(map[string][]byte),
	}
}

func (b *MemoryBucket) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if key == "" {
		return ErrEmptyKey
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	b.mu.Lock()
	b.objects[key] = buf.Bytes()
	b.mu.Unlock()
	return nil
}

func (b *MemoryBucket) Delete(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	b.mu.Lock()
	delete(b.objects, key)
	b.mu.Unlock()
	return nil
}

// Get returns the stored bytes for key.
func (b *MemoryBucket) Get(key string) ([]byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.objects[key]
	return data, ok
}

// Keys lists every stored key in no particular order.
func (b *MemoryBucket) Keys() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	keys := make([]string, 0, len(b.objects))
	for k := range b.objects {
		keys = append(keys, k)
	}
	return keys
}

func (b *MemoryBucket) PublicURL(key string) string {
	return publicURL(b.publicBase, b.bucket, key)
}

func (b *MemoryBucket) KeyFromURL(rawURL string) (string, bool) {
	return keyFromURL(b.bucket, rawURL)
}
