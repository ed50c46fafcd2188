// Package merge drives the k-way merge that realizes one insertion: the
// new key, plus every level below the destination, streamed together
// in ascending order into the destination level.
//
// Reference: original cola (giannitedesco/cola) coladb.c's cola_insert,
// restructured around a container/heap-backed min-heap (internal/heap)
// instead of the original's custom binary heap (minheap.c), the way
// rockyardkv's internal/compaction job merges multiple input iterators
// into one output run (pkg/compaction/job.go's processEntries/mergeIterators
// shape, generalized here from SSTable iterators to stream.Input/Output).
package merge

import (
	"fmt"

	"github.com/coladb/cola/internal/format"
	"github.com/coladb/cola/internal/heap"
	"github.com/coladb/cola/internal/stream"
)

// Run performs one k-way merge: newKey plus the k-1 existing levels
// backing inputs (already opened in ascending level order, level 0
// first) are merged into out, which must be sized for exactly
// 2^len(inputs) elements: input level i holds 2^i elements, and the
// new key adds one more.
//
// Run does not know or care whether any given input/output is mapped
// or buffered; it only calls the stream.Input/stream.Output interface.
func Run(newKey uint64, inputs []stream.Input, out stream.Output) error {
	k := len(inputs) + 1
	streams := make([]stream.Input, k)
	streams[0] = stream.NewSingletonInput(newKey)
	copy(streams[1:], inputs)

	initial := make([]heap.Item, 0, k)
	for id, in := range streams {
		key, ok, err := in.Pop()
		if err != nil {
			return fmt.Errorf("merge: prime stream %d: %w", id, err)
		}
		if !ok {
			return fmt.Errorf("merge: stream %d empty at start", id)
		}
		initial = append(initial, heap.Item{Key: key, StreamID: id})
	}

	m := heap.NewMerge(initial)
	for m.Len() > 0 {
		top := m.Pop()
		if err := out.Push(format.Elem{Key: top.Key}); err != nil {
			return fmt.Errorf("merge: write output: %w", err)
		}

		next, ok, err := streams[top.StreamID].Pop()
		if err != nil {
			return fmt.Errorf("merge: read stream %d: %w", top.StreamID, err)
		}
		if ok {
			m.Push(heap.Item{Key: next, StreamID: top.StreamID})
		}
	}

	return out.Flush()
}

// DestLevel returns the level a k-way merge writes to after inserting
// the newcnt'th element, and the number of input levels (0..DestLevel-1)
// that must be merged alongside the new key. This is the carry-level
// computation, named cola_insert's outlvl in the original source.
func DestLevel(nelem uint64) (dest uint, inputLevels uint) {
	dest = format.CarryLevel(nelem)
	return dest, dest
}
