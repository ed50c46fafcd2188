package cola

// db.go implements database open/create/close.
//
// Reference: original cola (giannitedesco/cola) coladb.c's do_open/
// cola_open/cola_creat/cola_close. Level pre-allocation here is driven
// by the file's actual on-disk size rather than the original's c_nxtlvl
// counter: do_open recomputes c_nxtlvl from cfls(nelem) on reopen, which
// under-counts once nelem's highest occupied level exceeds
// INITIAL_LEVELS (the counter needs to be one past the highest
// already-allocated level, not equal to it), silently stopping further
// lazy pre-allocation after a reopen past that point. Recomputing from
// the file's real size is immune to that class of bug and needs no
// extra persisted state; see DESIGN.md.
import (
	"fmt"
	"os"

	"github.com/coladb/cola/internal/bufpool"
	"github.com/coladb/cola/internal/fsio"
	"github.com/coladb/cola/internal/format"
	"github.com/coladb/cola/internal/mmap"
	"go.uber.org/multierr"
)

// DB is an open cola database. It is not safe for concurrent use.
type DB struct {
	f    *os.File
	opts *Options
	log  Logger

	mm   *mmap.Manager
	pool bufpool.Pool

	nelem           uint64
	allocatedLevels uint // levels [0, allocatedLevels) have disk space reserved
	maxMapLevels    uint

	readOnly bool
	closed   bool
}

// Create creates a new database file at path. If the file exists,
// Create fails with ErrExists unless opts.ErrorIfExists is false, in
// which case it is truncated and reinitialized.
func Create(path string, opts *Options) (*DB, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	_, statErr := os.Stat(path)
	exists := statErr == nil
	if exists && opts.ErrorIfExists {
		return nil, ErrExists
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cola: create %s: %w", path, err)
	}

	db := &DB{
		f:            f,
		opts:         opts,
		log:          opts.logger(),
		maxMapLevels: opts.maxMapLevels(),
	}

	hdr := format.Header{NElements: 0, Magic: format.Magic, Version: format.Version}
	if err := fsio.PwriteFull(f, hdr.Encode(), 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("cola: write header: %w", err)
	}

	initial := opts.initialMapLevels()
	if err := fsio.Fallocate(f, 0, format.FileSize(initial-1)); err != nil {
		db.log.Warnf("fallocate initial levels: %v", err)
	}
	db.allocatedLevels = initial

	db.mm = mmap.New(f, true)
	mapLevels := initial
	if mapLevels > db.maxMapLevels {
		mapLevels = db.maxMapLevels
	}
	if err := db.mm.Install(mapLevels); err != nil {
		f.Close()
		return nil, fmt.Errorf("cola: install mapping: %w", err)
	}

	db.log.Infof("created %s", path)
	return db, nil
}

// Open opens an existing database file at path. If the file does not
// exist and opts.CreateIfMissing is set, it behaves like Create.
func Open(path string, opts *Options) (*DB, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	f, err := os.OpenFile(path, openFlags(opts), 0o644)
	if err != nil {
		if os.IsNotExist(err) {
			if opts.CreateIfMissing {
				return Create(path, opts)
			}
			return nil, ErrNotExists
		}
		return nil, fmt.Errorf("cola: open %s: %w", path, err)
	}

	hdrBuf := make([]byte, format.HeaderSize)
	if err := fsio.PreadFull(f, hdrBuf, 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrTruncatedHeader, err)
	}
	hdr := format.DecodeHeader(hdrBuf)
	if hdr.Magic != format.Magic {
		f.Close()
		return nil, ErrBadMagic
	}
	if hdr.Version != format.Version {
		f.Close()
		return nil, ErrUnsupportedVersion
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("cola: stat: %w", err)
	}

	db := &DB{
		f:            f,
		opts:         opts,
		log:          opts.logger(),
		nelem:        hdr.NElements,
		maxMapLevels: opts.maxMapLevels(),
		readOnly:     opts.ReadOnly,
	}
	db.allocatedLevels = coveredLevels(info.Size())
	if min := opts.initialMapLevels(); db.allocatedLevels < min {
		db.allocatedLevels = min
		if err := fsio.Fallocate(f, 0, format.FileSize(min-1)); err != nil {
			db.log.Warnf("fallocate initial levels: %v", err)
		}
	}

	db.mm = mmap.New(f, !opts.ReadOnly)
	mapLevels := db.allocatedLevels
	if mapLevels > db.maxMapLevels {
		mapLevels = db.maxMapLevels
	}
	if err := db.mm.Install(mapLevels); err != nil {
		f.Close()
		return nil, fmt.Errorf("cola: install mapping: %w", err)
	}

	db.log.Infof("opened %s (%d elements)", path, db.nelem)
	return db, nil
}

func openFlags(opts *Options) int {
	if opts.ReadOnly {
		return os.O_RDONLY
	}
	return os.O_RDWR
}

// coveredLevels returns the number of whole levels (0..n) whose byte
// range fits within a file of the given size.
func coveredLevels(size int64) uint {
	var n uint
	for format.FileSize(n) <= size {
		n++
	}
	return n
}

// Len returns the number of elements currently stored.
func (db *DB) Len() uint64 { return db.nelem }

// Close writes the final header, flushes the mapping, and releases all
// resources. It is safe to call Close more than once.
func (db *DB) Close() error {
	if db.closed {
		return nil
	}
	db.closed = true

	var err error
	if !db.readOnly {
		hdr := format.Header{NElements: db.nelem, Magic: format.Magic, Version: format.Version}
		if werr := fsio.PwriteFull(db.f, hdr.Encode(), 0); werr != nil {
			err = multierr.Append(err, fmt.Errorf("write header: %w", werr))
		}
		if serr := db.mm.Sync(); serr != nil {
			err = multierr.Append(err, fmt.Errorf("msync: %w", serr))
		}
	}
	if cerr := db.mm.Close(); cerr != nil {
		err = multierr.Append(err, fmt.Errorf("munmap: %w", cerr))
	}
	if perr := db.pool.Close(); perr != nil {
		err = multierr.Append(err, fmt.Errorf("release buffers: %w", perr))
	}
	if ferr := db.f.Close(); ferr != nil {
		err = multierr.Append(err, fmt.Errorf("close: %w", ferr))
	}
	return err
}
