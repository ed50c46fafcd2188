// Package heap implements the min-heap that drives the
// insertion engine's k-way merge: a priority queue of (key, streamID)
// pairs ordered ascending by key, ties broken arbitrarily.
//
// Reference: original cola (giannitedesco/cola) include/minheap.h and
// minheap.c hand-roll a 1-indexed array with recursive sift_up/down.
// This package keeps that semantics but realizes it the way
// rockyardkv itself drives its own k-way merge:
// internal/iterator/merging_iterator.go's iterHeap, a
// container/heap.Interface over a typed slice.
package heap

import "container/heap"

// Item is one entry in the merge heap: the current head key of some
// input stream, tagged with that stream's index.
type Item struct {
	Key      uint64
	StreamID int
}

// items is the container/heap.Interface realization: a 0-indexed
// slice ordered ascending by Key.
type items []Item

func (h items) Len() int            { return len(h) }
func (h items) Less(i, j int) bool  { return h[i].Key < h[j].Key }
func (h items) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *items) Push(x any)         { *h = append(*h, x.(Item)) }
func (h *items) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Merge is a min-heap of Items ordered ascending by Key, used to drive
// the k-way merge of one new key plus levels 0..L-1 into level L.
type Merge struct {
	h items
}

// NewMerge builds a heap from the given initial items, heapifying in
// O(n). Matches minheap_init's role in the original source.
func NewMerge(initial []Item) *Merge {
	m := &Merge{h: items(initial)}
	heap.Init(&m.h)
	return m
}

// Len reports the number of items currently in the heap.
func (m *Merge) Len() int { return m.h.Len() }

// Pop removes and returns the smallest item.
func (m *Merge) Pop() Item {
	return heap.Pop(&m.h).(Item)
}

// Push inserts a new item, restoring heap order.
func (m *Merge) Push(item Item) {
	heap.Push(&m.h, item)
}
