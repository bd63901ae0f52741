package lru

// node is an element of the recency queue.
type node[T any] struct {
	next  *node[T]
	prev  *node[T]
	value T
}

func newNode[T any](value T) *node[T] {
	return &node[T]{value: value}
}

// queue keeps track of the least and most recently used items.
// head is the least recently used node, tail the most recently used.
// A node is linked at most once, so the queue never holds a key twice.
type queue[T any] struct {
	head *node[T]
	tail *node[T]
	size int
}

func newQueue[T any]() *queue[T] {
	return &queue[T]{}
}

func (q *queue[T]) linked(n *node[T]) bool {
	return n.prev != nil || n.next != nil || q.head == n
}

// touch moves n to the tail, appending it if it is not linked yet.
func (q *queue[T]) touch(n *node[T]) {
	if n == nil || q.tail == n {
		return
	}
	if q.linked(n) {
		q.unlink(n)
	} else {
		q.size++
	}

	n.prev = q.tail
	n.next = nil
	if q.tail != nil {
		q.tail.next = n
	}
	q.tail = n
	if q.head == nil {
		q.head = n
	}
}

func (q *queue[T]) remove(n *node[T]) {
	if n == nil || !q.linked(n) {
		return
	}
	q.unlink(n)
	q.size--
}

func (q *queue[T]) unlink(n *node[T]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		q.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		q.tail = n.prev
	}

	n.next = nil
	n.prev = nil
}

// front returns the least recently used node, or nil if the queue is empty.
func (q *queue[T]) front() *node[T] {
	return q.head
}

func (q *queue[T]) len() int {
	return q.size
}

// clear empties the queue. Nodes are unlinked one by one so none of them
// still reports itself as linked afterwards.
func (q *queue[T]) clear() {
	for n := q.head; n != nil; {
		next := n.next
		n.next = nil
		n.prev = nil
		n = next
	}
	q.head = nil
	q.tail = nil
	q.size = 0
}

// each walks the queue from least to most recently used until fn returns false.
func (q *queue[T]) each(fn func(value T) bool) {
	for n := q.head; n != nil; n = n.next {
		if !fn(n.value) {
			return
		}
	}
}
