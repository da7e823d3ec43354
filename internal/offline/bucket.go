// Package offline implements the installable-app cache controller: a
// request-interception proxy over versioned cache buckets with an
// install/activate/fetch lifecycle and configurable resolution policy.
package offline

import (
	"context"
	"errors"
	"net/http"
	"sync"
)

// ErrMiss is returned by Bucket.Get when the path is not cached.
var ErrMiss = errors.New("offline: cache miss")

// Response is a stored copy of an origin response. Body is a fully
// materialized byte slice: origin bodies are single-use streams, so
// they are read once and duplicated from here on.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Clone returns an independent copy safe to hand to a caller while a
// second copy goes to the cache.
func (r *Response) Clone() *Response {
	if r == nil {
		return nil
	}
	out := &Response{Status: r.Status, Header: r.Header.Clone()}
	out.Body = make([]byte, len(r.Body))
	copy(out.Body, r.Body)
	return out
}

// Bucket maps request paths to stored responses inside one named,
// versioned cache. Puts on the same path are last-write-wins.
type Bucket interface {
	Get(ctx context.Context, path string) (*Response, error)
	Put(ctx context.Context, path string, resp *Response) error
}

// BucketStore manages named buckets as eviction units: when the cache
// version changes, whole buckets are destroyed.
type BucketStore interface {
	Open(ctx context.Context, name string) (Bucket, error)
	Names(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
}

// MemoryBuckets is the in-process BucketStore used in tests and for
// the "memory" cache backend.
type MemoryBuckets struct {
	mu      sync.Mutex
	buckets map[string]*memoryBucket
}

func NewMemoryBuckets() *MemoryBuckets {
	return &MemoryBuckets{buckets: make(map[string]*memoryBucket)}
}

func (s *MemoryBuckets) Open(_ context.Context, name string) (Bucket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buckets[name]
	if !ok {
		b = &memoryBucket{entries: make(map[string]*Response)}
		s.buckets[name] = b
	}
	return b, nil
}

func (s *MemoryBuckets) Names(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.buckets))
	for name := range s.buckets {
		names = append(names, name)
	}
	return names, nil
}

func (s *MemoryBuckets) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, name)
	return nil
}

type memoryBucket struct {
	mu      sync.Mutex
	entries map[string]*Response
}

func (b *memoryBucket) Get(_ context.Context, path string) (*Response, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.entries[path]
	if !ok {
		return nil, ErrMiss
	}
	return r.Clone(), nil
}

func (b *memoryBucket) Put(_ context.Context, path string, resp *Response) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[path] = resp.Clone()
	return nil
}
