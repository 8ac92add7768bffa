package cache

import "fmt"

// A RecencyQueue maintains a strict least- to most-recently-used order over
// the way indices of one cache set. The order is always a permutation of the
// ways: every way appears exactly once, from the next eviction candidate at
// the front to the most recently used way at the back.
//
// The queue is an intrusive doubly linked ring over a fixed index arena, so
// both Touch and EvictCandidate run in constant time and the queue never
// allocates after construction.
type RecencyQueue struct {
	next []int
	prev []int
}

// NewRecencyQueue creates a RecencyQueue over numWays ways in identity
// order, with way 0 as the first eviction candidate.
func NewRecencyQueue(numWays int) *RecencyQueue {
	if numWays < 1 {
		panic("a recency queue needs at least one way")
	}

	q := &RecencyQueue{
		next: make([]int, numWays+1),
		prev: make([]int, numWays+1),
	}
	q.Reset()

	return q
}

// Len returns the number of ways the queue tracks.
func (q *RecencyQueue) Len() int {
	return len(q.next) - 1
}

// Reset restores the identity order, way 0 least recently used.
func (q *RecencyQueue) Reset() {
	n := len(q.next)
	for i := 0; i < n; i++ {
		q.next[i] = (i + 1) % n
		q.prev[i] = (i - 1 + n) % n
	}
}

// Touch promotes a way to the most-recently-used position. Touching the way
// that is already most recently used is a no-op.
func (q *RecencyQueue) Touch(way int) {
	if way < 0 || way >= q.Len() {
		panic(fmt.Sprintf("way %d out of range [0, %d)", way, q.Len()))
	}

	if q.prev[q.sentinel()] == way {
		return
	}

	q.unlink(way)
	q.pushBack(way)
}

// EvictCandidate returns the least-recently-used way and promotes it to the
// most-recently-used position, since the caller is about to rewrite it. Ways
// that have never been touched come out in ascending index order.
func (q *RecencyQueue) EvictCandidate() int {
	way := q.next[q.sentinel()]
	q.unlink(way)
	q.pushBack(way)

	return way
}

// Front returns the current eviction candidate without promoting it.
func (q *RecencyQueue) Front() int {
	return q.next[q.sentinel()]
}

// Order returns the ways from least- to most-recently-used.
func (q *RecencyQueue) Order() []int {
	order := make([]int, 0, q.Len())
	for i := q.next[q.sentinel()]; i != q.sentinel(); i = q.next[i] {
		order = append(order, i)
	}

	return order
}

func (q *RecencyQueue) sentinel() int {
	return len(q.next) - 1
}

func (q *RecencyQueue) unlink(way int) {
	q.next[q.prev[way]] = q.next[way]
	q.prev[q.next[way]] = q.prev[way]
}

func (q *RecencyQueue) pushBack(way int) {
	last := q.prev[q.sentinel()]
	q.next[last] = way
	q.prev[way] = last
	q.next[way] = q.sentinel()
	q.prev[q.sentinel()] = way
}
