package cola

// insert.go implements key insertion.
//
// Reference: coladb.c's cola_insert: compute the carry level, grow the
// file and mapping if the destination level has never been allocated,
// then k-way merge the new key with every level below it into the
// destination level. internal/merge owns the merge loop itself; this
// file owns the per-insert bookkeeping (level allocation, stream
// construction, source/destination selection) that cola_insert does
// inline.

import (
	"fmt"

	"github.com/coladb/cola/internal/format"
	"github.com/coladb/cola/internal/fsio"
	"github.com/coladb/cola/internal/merge"
	"github.com/coladb/cola/internal/search"
	"github.com/coladb/cola/internal/stream"
)

// Insert adds key to the database. It returns ErrDuplicateKey if the
// key is already present, leaving the database unchanged — duplicate
// inserts are rejected rather than merged or silently ignored.
func (db *DB) Insert(key uint64) error {
	if db.closed {
		return ErrClosed
	}
	if db.readOnly {
		return ErrReadOnly
	}

	if res, err := db.query(key); err != nil {
		return err
	} else if res.Found {
		return ErrDuplicateKey
	}

	destLevel, inputLevels := merge.DestLevel(db.nelem)

	if err := db.ensureLevelAllocated(destLevel); err != nil {
		return err
	}

	// Reclaim every block handed out by the previous merge before
	// carving fresh ones for this one: each unmapped input stream
	// below needs its own disjoint region of the read arena.
	db.pool.Reset()

	inputs := make([]stream.Input, inputLevels)
	for lvl := uint(0); lvl < inputLevels; lvl++ {
		in, err := db.levelInput(lvl)
		if err != nil {
			return fmt.Errorf("cola: open input level %d: %w", lvl, err)
		}
		inputs[lvl] = in
	}

	out, err := db.levelOutput(destLevel)
	if err != nil {
		return fmt.Errorf("cola: open output level %d: %w", destLevel, err)
	}

	if err := merge.Run(key, inputs, out); err != nil {
		return fmt.Errorf("cola: insert %d: %w", key, err)
	}

	db.nelem++
	db.log.Debugf("inserted %d (dest level %d, %d-way merge)", key, destLevel, inputLevels+1)
	return nil
}

// ensureLevelAllocated grows the file (and, if within the mapping
// budget, the shared mapping) to cover level, if it isn't already.
func (db *DB) ensureLevelAllocated(level uint) error {
	if level < db.allocatedLevels {
		return nil
	}

	off := format.LevelOffset(level)
	size := int64(format.LevelCount(level)) * format.ElemSize
	if err := fsio.Fallocate(db.f, off, size); err != nil {
		db.log.Warnf("fallocate level %d: %v", level, err)
	}
	db.allocatedLevels = level + 1

	if level < db.maxMapLevels {
		if err := db.mm.Grow(level + 1); err != nil {
			return fmt.Errorf("grow mapping to level %d: %w", level, err)
		}
	}
	return nil
}

// levelInput builds a stream.Input over level's current contents: a
// MappedInput if the level lies within the shared mapping, otherwise a
// BufferedInput backed by its own disjoint block of the read buffer
// pool — each unmapped input stream in a merge must not share a
// scratch region with any other concurrently-active stream in that
// same merge.
func (db *DB) levelInput(level uint) (stream.Input, error) {
	if level < db.mm.Depth() {
		lo := format.LevelOffset(level)
		hi := lo + int64(format.LevelCount(level))*format.ElemSize
		return stream.NewMappedInput(db.mm.Bytes()[lo:hi]), nil
	}
	levelSize := int64(format.LevelCount(level)) * format.ElemSize
	buf, err := db.pool.ReadBlock(levelSize)
	if err != nil {
		return nil, err
	}
	return stream.NewBufferedInput(db.f, buf, format.LevelOffset(level), format.LevelCount(level)), nil
}

// levelOutput builds a stream.Output over level's destination range.
// Unlike levelInput, this never chunks the pool: a merge has exactly
// one destination level, so there is no second output stream to clobber.
func (db *DB) levelOutput(level uint) (stream.Output, error) {
	if level < db.mm.Depth() {
		lo := format.LevelOffset(level)
		hi := lo + int64(format.LevelCount(level))*format.ElemSize
		return stream.NewMappedOutput(db.mm.Bytes()[lo:hi]), nil
	}
	buf, err := db.pool.Write()
	if err != nil {
		return nil, err
	}
	return stream.NewBufferedOutput(db.f, buf, format.LevelOffset(level)), nil
}

// searchSource adapts DB's mapped/buffered level access to
// internal/search.Source.
type searchSource struct{ db *DB }

func (s searchSource) ReadLevel(lvl uint, lo, hi uint64) ([]byte, error) {
	if lvl < s.db.mm.Depth() {
		base := format.LevelOffset(lvl)
		return s.db.mm.Bytes()[base+int64(lo)*format.ElemSize : base+int64(hi)*format.ElemSize], nil
	}
	buf := make([]byte, (hi-lo)*format.ElemSize)
	off := format.LevelOffset(lvl) + int64(lo)*format.ElemSize
	if err := fsio.PreadFull(s.db.f, buf, off); err != nil {
		return nil, err
	}
	return buf, nil
}

func (db *DB) query(key uint64) (search.Result, error) {
	return search.Query(searchSource{db: db}, db.nelem, key)
}
