// Package queue implements generic FIFO ring buffer.
package queue

const minSize = 3

// Queue is a ring buffer, size is always 2^n - 1.
type Queue[T any] struct {
	items      []T
	size       int
	head, tail int
}

func New[T any](items ...T) *Queue[T] {
	l := len(items)
	result := &Queue[T]{tail: l, size: computeSize(l)}
	result.items = make([]T, result.size+1)
	copy(result.items, items)
	return result
}

func (q *Queue[T]) IsEmpty() bool {
	return q.head == q.tail
}

func (q *Queue[T]) Append(item T) *Queue[T] {
	q.items[q.tail] = item
	q.tail = (q.tail + 1) & q.size
	if q.tail == q.head {
		q.grow()
	}
	return q
}

// First removes and returns the oldest item.
func (q *Queue[T]) First() (T, bool) {
	var zero T
	if q.head == q.tail {
		return zero, false
	}

	result := q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) & q.size
	return result, true
}

// Reset removes all items keeping allocated buffer.
func (q *Queue[T]) Reset() {
	var zero T
	for !q.IsEmpty() {
		q.items[q.head] = zero
		q.head = (q.head + 1) & q.size
	}
	q.head = 0
	q.tail = 0
}

func computeSize(length int) int {
	size := minSize
	for size < length {
		size = size<<1 | 1
	}
	return size
}

func (q *Queue[T]) grow() {
	items := make([]T, (q.size+1)<<1)
	n := copy(items, q.items[q.head:])
	copy(items[n:], q.items[:q.head])
	q.head = 0
	q.tail = q.size + 1
	q.size = q.size<<1 | 1
	q.items = items
}
