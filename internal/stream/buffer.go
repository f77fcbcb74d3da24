package stream

import "github.com/oxhq/xpathlang/internal/xhost"

// Buffer is a fixed-capacity ring buffer of xhost.Node, the node window a
// streaming evaluator keeps materialized while a Consuming-posture
// subexpression accumulates candidates (spec.md §4.7). Pushing past
// capacity silently evicts the oldest entry rather than growing: the
// buffer's whole purpose is to bound memory, not to queue indefinitely.
type Buffer struct {
	data  []xhost.Node
	cap   int
	start int
	count int
}

// NewBuffer builds a ring buffer holding at most capacity nodes. A
// non-positive capacity is treated as 1: a zero-capacity buffer that can
// never hold anything would make every add an eviction-of-nothing no-op,
// which is never what a caller configuring streaming actually wants.
func NewBuffer(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{data: make([]xhost.Node, capacity), cap: capacity}
}

// Add appends node, evicting the oldest entry first if the buffer is full.
func (b *Buffer) Add(node xhost.Node) {
	idx := (b.start + b.count) % b.cap
	b.data[idx] = node
	if b.count < b.cap {
		b.count++
	} else {
		b.start = (b.start + 1) % b.cap
	}
}

// Size returns the number of nodes currently held.
func (b *Buffer) Size() int { return b.count }

// IsFull reports whether the buffer is at capacity.
func (b *Buffer) IsFull() bool { return b.count == b.cap }

// Contains reports whether node is currently held in the buffer.
func (b *Buffer) Contains(node xhost.Node) bool {
	for i := 0; i < b.count; i++ {
		if b.data[(b.start+i)%b.cap] == node {
			return true
		}
	}
	return false
}

// GetLast returns up to the n most recently added nodes, oldest first.
func (b *Buffer) GetLast(n int) []xhost.Node {
	if n > b.count {
		n = b.count
	}
	if n <= 0 {
		return nil
	}
	out := make([]xhost.Node, n)
	for i := 0; i < n; i++ {
		out[i] = b.data[(b.start+b.count-n+i)%b.cap]
	}
	return out
}

// Clear empties the buffer without releasing its backing array.
func (b *Buffer) Clear() {
	b.start, b.count = 0, 0
}
