package querycache

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// ProjectsKey identifies the project collection.
const ProjectsKey = "projects"

// ProjectKey identifies a single project by id.
func ProjectKey(id string) string {
	return ProjectsKey + "/" + id
}

// InvalidatedMsg is a tea.Msg sent when a key has been marked stale.
// Views holding that key refetch on receipt.
type InvalidatedMsg struct {
	Key string
}

type entry struct {
	value any
	stale bool
}

// Cache is a keyed store of fetched results shared by every view.
// Invalidate marks entries stale and notifies subscribers without
// blocking the caller. Undelivered notifications are coalesced per key,
// so a burst of invalidations never drops a key.
type Cache struct {
	mu            sync.Mutex
	entries       map[string]*entry
	invalidations map[string]int
	queue         []string
	queued        map[string]bool
	notify        chan struct{}
	done          chan struct{}
	closed        bool
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries:       make(map[string]*entry),
		invalidations: make(map[string]int),
		queued:        make(map[string]bool),
		notify:        make(chan struct{}, 1),
		done:          make(chan struct{}),
	}
}

// Set stores value under key and marks it fresh.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &entry{value: value}
}

// Get returns the value stored under key and whether it is still fresh.
// ok is false when nothing was ever stored.
func (c *Cache) Get(key string) (value any, fresh bool, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, false
	}
	return e.value, !e.stale, true
}

// Lookup is a typed Get.
func Lookup[T any](c *Cache, key string) (value T, fresh bool, ok bool) {
	raw, fresh, ok := c.Get(key)
	if !ok {
		return value, false, false
	}
	value, ok = raw.(T)
	return value, fresh, ok
}

// Invalidate marks each key stale and queues a notification for it.
// Stale values stay readable until replaced. Keys never stored are still
// announced so that views waiting on them refetch. A key already waiting
// for delivery is not queued twice.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		if e, ok := c.entries[key]; ok {
			e.stale = true
		}
		c.invalidations[key]++
		if c.closed || c.queued[key] {
			continue
		}
		c.queued[key] = true
		c.queue = append(c.queue, key)
	}
	if len(c.queue) > 0 {
		c.signal()
	}
}

// signal wakes one waiter. Must be called with mu held.
func (c *Cache) signal() {
	select {
	case c.notify <- struct{}{}:
	default:
	}
}

// next pops the oldest queued key.
func (c *Cache) next() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || len(c.queue) == 0 {
		return "", false
	}
	key := c.queue[0]
	c.queue = c.queue[1:]
	delete(c.queued, key)
	if len(c.queue) > 0 {
		c.signal()
	}
	return key, true
}

// InvalidationCount reports how many times key has been invalidated.
func (c *Cache) InvalidationCount(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalidations[key]
}

// WaitForInvalidation returns a tea.Cmd that blocks until the next key is
// invalidated. Call it again after handling each InvalidatedMsg to keep
// listening.
func (c *Cache) WaitForInvalidation() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case <-c.notify:
			case <-c.done:
				return nil
			}
			if key, ok := c.next(); ok {
				return InvalidatedMsg{Key: key}
			}
		}
	}
}

// Close stops notifications. Pending WaitForInvalidation commands return nil.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.queue = nil
	close(c.done)
}
