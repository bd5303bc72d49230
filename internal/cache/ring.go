package cache

// Ring is a bounded, newest-first buffer. When full, pushing drops the oldest
// item. Ring is not safe for concurrent use; the owner serialises access.
type Ring[T any] struct {
	items []T
	max   int
}

// NewRing creates a ring holding at most max items.
func NewRing[T any](max int) *Ring[T] {
	if max < 1 {
		max = 1
	}
	return &Ring[T]{items: make([]T, 0, max), max: max}
}

// Push adds item as the newest entry.
func (r *Ring[T]) Push(item T) {
	if len(r.items) == r.max {
		r.items = r.items[:r.max-1]
	}
	r.items = append(r.items, item)
	copy(r.items[1:], r.items[:len(r.items)-1])
	r.items[0] = item
}

// Newest returns the most recently pushed item.
func (r *Ring[T]) Newest() (T, bool) {
	if len(r.items) == 0 {
		var zero T
		return zero, false
	}
	return r.items[0], true
}

// Items returns a copy of the contents, newest first.
func (r *Ring[T]) Items() []T {
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}

// Head returns a copy of at most n items, newest first.
func (r *Ring[T]) Head(n int) []T {
	if n > len(r.items) {
		n = len(r.items)
	}
	out := make([]T, n)
	copy(out, r.items[:n])
	return out
}

// Len returns the number of items held.
func (r *Ring[T]) Len() int {
	return len(r.items)
}

// Clear removes all items.
func (r *Ring[T]) Clear() {
	r.items = r.items[:0]
}
