package writepolicy_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/krisalay/lru-cache/writepolicy"
)

type memStore struct {
	mu   sync.Mutex
	data map[string]int
	fail error
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]int)}
}

func (s *memStore) Load(ctx context.Context, key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *memStore) Put(ctx context.Context, key string, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.data[key] = value
	return nil
}

func (s *memStore) get(key string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

func TestWriteThroughPersistsImmediately(t *testing.T) {
	store := newMemStore()
	p := writepolicy.NewWriteThroughPolicy[string, int](store)

	p.OnEvict(context.Background(), "a", 1)

	v, ok := store.get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
	require.NoError(t, p.Close())
}

func TestWriteBackFlushesOnClose(t *testing.T) {
	store := newMemStore()
	p := writepolicy.NewWriteBackPolicy[string, int](store, 64)

	ctx := context.Background()
	for i := 0; i < 50; i++ {
		p.OnEvict(ctx, "key", i)
	}

	require.NoError(t, p.Close())

	// Every queued write was processed before Close returned.
	v, ok := store.get("key")
	require.True(t, ok)
	require.Equal(t, 49, v)
}

func TestWriteBackReportsStoreErrors(t *testing.T) {
	store := newMemStore()
	store.fail = errors.New("store down")
	p := writepolicy.NewWriteBackPolicy[string, int](store, 8)

	p.OnEvict(context.Background(), "a", 1)
	p.OnEvict(context.Background(), "b", 2)

	err := p.Close()
	require.Error(t, err)
	require.ErrorContains(t, err, "store down")
}

func TestWriteBackDropsWhenQueueFull(t *testing.T) {
	store := newMemStore()
	store.fail = errors.New("blocked") // keep nothing draining successfully

	// Tiny buffer: overflow must drop, never block the caller.
	p := writepolicy.NewWriteBackPolicy[string, int](store, 1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			p.OnEvict(context.Background(), "k", i)
		}
	}()

	<-done // would hang here if OnEvict blocked
	_ = p.Close()
}
