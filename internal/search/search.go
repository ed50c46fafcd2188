// Package search implements the per-level binary search cola_query
// performs on every occupied level, from level 0 upward, until a hit
// or the levels are exhausted.
//
// Reference: original cola (giannitedesco/cola) coladb.c's
// query_level/cola_query. The original always widens the next level's
// search window back out to [0, 2^(lvlno+1)) on a miss — it never
// exploits the fp field it otherwise carries — so that is this
// package's default, exposed as Query. The fractional-cascading
// narrowing the fp field makes possible is implemented as an opt-in
// alternative, QueryCascading. Insert writes fp=0 for every element,
// on which QueryCascading searches each level's full window, the same
// as Query.
package search

import (
	"fmt"

	"github.com/coladb/cola/internal/format"
)

// Source provides random access to the raw element bytes of a single
// cola level, whether that level lives in the shared mapping or must
// be read from disk.
type Source interface {
	// ReadLevel returns the ElemSize*(hi-lo) bytes of level lvlno
	// covering elements [lo, hi).
	ReadLevel(lvlno uint, lo, hi uint64) ([]byte, error)
}

// Result reports the outcome of a Query.
type Result struct {
	Found bool
	Level uint
	Index uint64
}

// Query searches every occupied level of a cola holding nelem elements
// for key, level 0 first, stopping at the first hit. It matches
// cola_query's behavior: each level's search window always starts as
// the full level, since the original's fp field is write-only on this
// path.
func Query(src Source, nelem uint64, key uint64) (Result, error) {
	for lvl := uint(0); nelem >= (uint64(1) << lvl); lvl++ {
		if !format.Occupied(nelem, lvl) {
			continue
		}
		found, idx, err := binarySearchLevel(src, lvl, key)
		if err != nil {
			return Result{}, err
		}
		if found {
			return Result{Found: true, Level: lvl, Index: idx}, nil
		}
	}
	return Result{}, nil
}

// binarySearchLevel performs one level's strict binary search over
// its full [0, 2^lvl) window, the "no narrowing" shape query_level
// falls back to when no cascading hint is available.
func binarySearchLevel(src Source, lvl uint, key uint64) (bool, uint64, error) {
	n := format.LevelCount(lvl)
	data, err := src.ReadLevel(lvl, 0, n)
	if err != nil {
		return false, 0, fmt.Errorf("search: read level %d: %w", lvl, err)
	}

	lo, hi := uint64(0), n
	for lo < hi {
		mid := lo + (hi-lo)/2
		k := format.KeyAt(data, mid)
		switch {
		case key < k:
			hi = mid
		case key > k:
			lo = mid + 1
		default:
			return true, mid, nil
		}
	}
	return false, 0, nil
}

// QueryCascading searches with fractional cascading: once a level's
// binary search narrows to the last-compared position, the stored fp
// pointer at that position bounds the next level's window instead of
// scanning it whole. fp for element i of level L is defined as the
// count of level L+1 keys strictly less than level L's key i. It sets
// only the lower bound of the next level's window; the upper bound is
// always the end of that level, so an fp of 0 leaves the window at the
// full level.
func QueryCascading(src Source, nelem uint64, key uint64) (Result, error) {
	lo, hi := uint64(0), uint64(1)
	for lvl := uint(0); nelem >= (uint64(1) << lvl); lvl++ {
		if !format.Occupied(nelem, lvl) {
			lo, hi = 0, format.LevelCount(lvl+1)
			continue
		}

		found, idx, nextLo, nextHi, err := cascadingSearchLevel(src, lvl, key, lo, hi)
		if err != nil {
			return Result{}, err
		}
		if found {
			return Result{Found: true, Level: lvl, Index: idx}, nil
		}
		lo, hi = nextLo, nextHi
	}
	return Result{}, nil
}

func cascadingSearchLevel(src Source, lvl uint, key uint64, lo, hi uint64) (found bool, idx, nextLo, nextHi uint64, err error) {
	n := format.LevelCount(lvl)
	if hi > n {
		hi = n
	}
	data, err := src.ReadLevel(lvl, lo, hi)
	if err != nil {
		return false, 0, 0, 0, fmt.Errorf("search: read level %d [%d,%d): %w", lvl, lo, hi, err)
	}

	width := hi - lo
	l, h := uint64(0), width
	var lastFP uint64
	haveFP := false
	for l < h {
		mid := l + (h-l)/2
		e := format.DecodeElem(data[mid*format.ElemSize:])
		switch {
		case key < e.Key:
			h = mid
		case key > e.Key:
			l = mid + 1
			lastFP, haveFP = e.FP, true
		default:
			return true, lo + mid, 0, 0, nil
		}
	}

	next := format.LevelCount(lvl + 1)
	if !haveFP {
		return false, 0, 0, next, nil
	}
	return false, 0, lastFP, next, nil
}
