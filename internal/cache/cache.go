package cache

import "sync"

// Cache is a thread-safe LRU cache holding at most Capacity entries.
// Adding to a full cache evicts the least recently used entry.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*node[K, V]
	order    list[K, V]
	capacity int

	hits, misses, evictions uint64
}

// New creates a cache that holds at most capacity entries.
// A capacity of 0 or less means unlimited.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:  make(map[K]*node[K, V]),
		capacity: capacity,
	}
}

// Get returns the cached value for key and marks it most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.order.moveToFront(n)
	return n.value, true
}

// Set stores value under key, evicting the least recently used entry if
// the cache is full.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.entries[key]; ok {
		n.value = value
		c.order.moveToFront(n)
		return
	}
	n := &node[K, V]{key: key, value: value}
	c.entries[key] = n
	c.order.pushFront(n)

	for c.capacity > 0 && len(c.entries) > c.capacity {
		old := c.order.tail
		c.order.unlink(old)
		delete(c.entries, old.key)
		c.evictions++
	}
}

// Clear removes all entries. Statistics are kept.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*node[K, V])
	c.order = list[K, V]{}
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Capacity returns the entry limit; 0 means unlimited.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Len:       len(c.entries),
		Capacity:  c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// Stats contains cache statistics.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	HitRate   float64 // 0.0 to 1.0
	Evictions uint64
}

// node is an entry in the recency list.
type node[K comparable, V any] struct {
	key        K
	value      V
	prev, next *node[K, V]
}

// list is a doubly-linked recency list: head is the most recently used,
// tail the least. Callers hold the cache lock.
type list[K comparable, V any] struct {
	head, tail *node[K, V]
}

func (l *list[K, V]) pushFront(n *node[K, V]) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
}

func (l *list[K, V]) moveToFront(n *node[K, V]) {
	if n == l.head {
		return
	}
	l.unlink(n)
	l.pushFront(n)
}

func (l *list[K, V]) unlink(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
}
