// Package bufpool provides the two fixed-size anonymous-memory buffer
// pools the insertion engine's unmapped stream adapters read and write
// through: one for input (refilled by positioned reads), one for
// output (flushed by positioned writes).
//
// Reference: original cola (giannitedesco/cola) coladb.c's
// alloc_buffers(): mmap(MAP_PRIVATE|MAP_ANONYMOUS) with a best-effort
// MAP_HUGETLB/MADV_HUGEPAGE retry, sized RDBUF_SIZE/WRBUF_SIZE (4 MiB
// each). Deliberately not rockyardkv's internal/mempool (sync.Pool
// buckets): a GC-reclaimed buffer mid-merge would corrupt an in-flight
// k-way merge, so these pools are plain anonymous mappings with a
// lifetime tied to one DB handle, not to individual allocations.
package bufpool

import "fmt"

const (
	// BlockSize is the size in bytes of one unmapped input stream's
	// scratch region: coladb.c's BLOCK_SIZE (1 << BLOCK_SHIFT).
	BlockSize = 1 << 16

	// ReadSize is the size in bytes of the read buffer arena: large
	// enough to carve out BlockSize-sized, non-overlapping chunks for
	// every unmapped input stream a single merge can need. Matches
	// coladb.c's RDBUF_SIZE.
	ReadSize = 4 << 20

	// WriteSize is the size in bytes of the write buffer pool. Only
	// one output stream is ever active per merge, so it is handed the
	// whole arena, unchunked. Matches coladb.c's WRBUF_SIZE.
	WriteSize = 4 << 20
)

// Pool holds the read and write buffer regions for one open database
// handle. Each region is allocated the first time it is requested (the
// read region by ReadBlock, the write region by Write); Close releases
// both together.
type Pool struct {
	read  []byte
	write []byte

	// readNext is the byte offset of the next unclaimed block within
	// read. It advances once per ReadBlock call and is rewound to 0 by
	// Reset, matching coladb.c's init_bufs resetting c_bufptr at the
	// start of every insert's merge.
	readNext int64
}

// Reset reclaims every block handed out by ReadBlock, so the next
// merge can carve blocks from the start of the arena again. Callers
// must call Reset once per merge, before requesting any ReadBlocks for
// that merge.
func (p *Pool) Reset() { p.readNext = 0 }

// ReadBlock returns the next sequential, disjoint scratch region for
// one unmapped input stream, sized to min(BlockSize, levelSize) —
// coladb.c's inbuf_init caps a level smaller than one block to the
// level's own size. Each call within a merge returns bytes that do not
// overlap any block already handed out since the last Reset, so
// concurrently-active streams in a k-way merge never clobber one
// another's in-flight refill.
func (p *Pool) ReadBlock(levelSize int64) ([]byte, error) {
	if p.read == nil {
		buf, err := allocAnon(ReadSize)
		if err != nil {
			return nil, err
		}
		p.read = buf
	}

	size := levelSize
	if size > BlockSize {
		size = BlockSize
	}
	if p.readNext+size > int64(len(p.read)) {
		return nil, fmt.Errorf("bufpool: read arena exhausted (%d bytes already claimed, %d more requested, %d total)",
			p.readNext, size, len(p.read))
	}

	blk := p.read[p.readNext : p.readNext+size]
	p.readNext += size
	return blk, nil
}

// Write returns the write buffer pool, allocating it on first use.
func (p *Pool) Write() ([]byte, error) {
	if p.write == nil {
		buf, err := allocAnon(WriteSize)
		if err != nil {
			return nil, err
		}
		p.write = buf
	}
	return p.write, nil
}

// Allocated reports whether either pool has been allocated.
func (p *Pool) Allocated() bool { return p.read != nil || p.write != nil }

// Close releases both buffer regions, if allocated.
func (p *Pool) Close() error {
	var err error
	if p.read != nil {
		if e := freeAnon(p.read); e != nil && err == nil {
			err = e
		}
		p.read = nil
		p.readNext = 0
	}
	if p.write != nil {
		if e := freeAnon(p.write); e != nil && err == nil {
			err = e
		}
		p.write = nil
	}
	return err
}
