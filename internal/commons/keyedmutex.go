package commons

import (
	"context"
	"sort"
	"sync"
)

// KeyedMutex provides mutual exclusion per string key with context-bounded
// acquisition. Operations on distinct keys proceed in parallel; operations
// on the same key are serialized.
type KeyedMutex struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{slots: make(map[string]chan struct{})}
}

func (m *KeyedMutex) slot(key string) chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch, ok := m.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		m.slots[key] = ch
	}
	return ch
}

// Lock blocks until the key's lock is held or ctx is done. On success the
// returned function releases the lock.
func (m *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	ch := m.slot(key)
	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// LockOrdered acquires the locks for all keys in a fixed global order
// (sorted, deduplicated) so concurrent holders of overlapping key sets
// cannot deadlock. Either every lock is held or none is.
func (m *KeyedMutex) LockOrdered(ctx context.Context, keys ...string) (func(), error) {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	releases := make([]func(), 0, len(sorted))
	releaseAll := func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}

	for i, key := range sorted {
		if i > 0 && key == sorted[i-1] {
			continue
		}
		release, err := m.Lock(ctx, key)
		if err != nil {
			releaseAll()
			return nil, err
		}
		releases = append(releases, release)
	}

	return releaseAll, nil
}
