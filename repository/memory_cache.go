package repository

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// DefaultMaxEntries bounds a MemoryCache built with a non-positive size.
const DefaultMaxEntries = 1000

type memoryEntry struct {
	key       string
	value     string
	expiresAt time.Time
}

// MemoryCache is an in-process CacheRepository holding at most maxSize
// entries; the least recently used entry goes first. A zero ttl keeps
// entries until they are evicted.
type MemoryCache struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
	now     func() time.Time
}

func NewMemoryCache(maxSize int, ttl time.Duration) *MemoryCache {
	if maxSize <= 0 {
		maxSize = DefaultMaxEntries
	}
	return &MemoryCache{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
		now:     time.Now,
	}
}

func (m *MemoryCache) expired(e *memoryEntry, now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		return "", false
	}
	e := elem.Value.(*memoryEntry)
	if m.expired(e, m.now()) {
		m.removeElement(elem)
		return "", false
	}
	m.lru.MoveToFront(elem)
	return e.value, true
}

func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := &memoryEntry{key: key, value: value}
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}

	if elem, ok := m.items[key]; ok {
		elem.Value = e
		m.lru.MoveToFront(elem)
		return nil
	}

	m.items[key] = m.lru.PushFront(e)
	for m.lru.Len() > m.maxSize {
		m.removeElement(m.lru.Back())
	}
	return nil
}

func (m *MemoryCache) removeElement(elem *list.Element) {
	delete(m.items, elem.Value.(*memoryEntry).key)
	m.lru.Remove(elem)
}

// CleanExpired removes every expired entry and returns how many went.
func (m *MemoryCache) CleanExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for elem := m.lru.Front(); elem != nil; {
		next := elem.Next()
		if m.expired(elem.Value.(*memoryEntry), now) {
			m.removeElement(elem)
			removed++
		}
		elem = next
	}
	return removed
}

// RunCleanup calls CleanExpired every interval until ctx is done.
func (m *MemoryCache) RunCleanup(ctx context.Context, interval time.Duration, onClean func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := m.CleanExpired(); removed > 0 && onClean != nil {
				onClean(removed)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Len counts stored entries, expired ones not yet cleaned included.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lru.Len()
}
