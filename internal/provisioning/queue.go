package provisioning

import (
	"strings"
	"sync"
)

// Queue is the in-memory, insertion-ordered collection of queue items. It is
// the single source of truth shared by the processor loop, the retry path and
// the API handlers; all access goes through its methods, callers never hold a
// reference into its internals.
type Queue struct {
	mu    sync.Mutex
	order []string
	items map[string]*QueueItem
}

func NewQueue() *Queue {
	return &Queue{items: make(map[string]*QueueItem)}
}

// Append inserts the given items at the tail, skipping any whose domain is
// already present regardless of that item's current status. In-flight items
// are left untouched.
func (q *Queue) Append(items []QueueItem) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, it := range items {
		domain := strings.ToLower(strings.TrimSpace(it.Domain))
		if domain == "" {
			continue
		}
		if _, exists := q.items[domain]; exists {
			continue
		}
		it.Domain = domain
		cp := it.clone()
		q.items[domain] = &cp
		q.order = append(q.order, domain)
	}
}

// Snapshot returns deep copies of all items in insertion order.
func (q *Queue) Snapshot() []QueueItem {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]QueueItem, 0, len(q.order))
	for _, domain := range q.order {
		out = append(out, q.items[domain].clone())
	}
	return out
}

// Get returns a copy of the item for the given domain.
func (q *Queue) Get(domain string) (QueueItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	it, ok := q.items[domain]
	if !ok {
		return QueueItem{}, false
	}
	return it.clone(), true
}

// Update applies fn to exactly the item matching domain while holding the
// queue lock. fn must not block; network calls happen outside, only their
// results are folded in here. Returns false when the domain is not queued.
func (q *Queue) Update(domain string, fn func(*QueueItem)) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	it, ok := q.items[domain]
	if !ok {
		return false
	}
	fn(it)
	return true
}

// NextPending returns the domain of the first Pending item in queue order.
func (q *Queue) NextPending() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, domain := range q.order {
		if q.items[domain].Status == StatusPending {
			return domain, true
		}
	}
	return "", false
}

// Len reports the number of queued items.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.order)
}

// Reset drops every item. Completed items are never auto-evicted, this is the
// only way entries leave the queue.
func (q *Queue) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.order = nil
	q.items = make(map[string]*QueueItem)
}
