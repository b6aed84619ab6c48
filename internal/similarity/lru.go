package similarity

import "container/list"

// lruCache is a small fixed-capacity least-recently-used cache for
// inbound(h) lookups, amortizing the shared store's cost across the
// candidates of a single query (spec §4.7).
type lruCache struct {
	capacity int
	entries  map[uint64]*list.Element
	order    *list.List
}

type lruEntry struct {
	key   uint64
	value BitSet
}

func newLRUCache(capacity int) *lruCache {
	return &lruCache{
		capacity: capacity,
		entries:  make(map[uint64]*list.Element, capacity),
		order:    list.New(),
	}
}

func (c *lruCache) get(key uint64) (BitSet, bool) {
	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*lruEntry).value, true
}

func (c *lruCache) put(key uint64, value BitSet) {
	if el, ok := c.entries[key]; ok {
		el.Value.(*lruEntry).value = value
		c.order.MoveToFront(el)
		return
	}
	el := c.order.PushFront(&lruEntry{key: key, value: value})
	c.entries[key] = el
	if c.capacity > 0 && c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*lruEntry).key)
		}
	}
}
