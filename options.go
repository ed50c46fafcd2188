package cola

// options.go implements database configuration options.
//
// Reference: options.go's Options/DefaultOptions shape, trimmed to the
// knobs this engine actually has (mapping depth, growth policy, create/
// open semantics, logging) instead of RocksDB's full surface.

import "github.com/coladb/cola/internal/mmap"

// Options configures Open and Create.
type Options struct {
	// CreateIfMissing causes Open to create the database if its file
	// does not exist.
	// Default: false
	CreateIfMissing bool

	// ErrorIfExists causes Create to fail if the file already exists.
	// Default: false
	ErrorIfExists bool

	// ReadOnly opens the database without write access: Insert returns
	// ErrReadOnly, and the file is mapped PROT_READ only.
	// Default: false
	ReadOnly bool

	// InitialMapLevels is the number of levels reserved on disk and
	// mapped into memory when the database is created. Open reserves
	// and maps at least this many, or every level the file already
	// covers if that is more. Matches the original's INITIAL constant.
	// Default: 17
	InitialMapLevels uint

	// MaxMapLevels caps how many levels may ever be added to the
	// shared mapping; levels beyond this are always serviced through
	// buffered positioned I/O. Zero means use the platform default
	// (unbounded on 64-bit, 24 levels, 0..23, on 32-bit).
	// Default: 0 (platform default)
	MaxMapLevels uint

	// Logger receives diagnostic output from database operations.
	// If nil, a zap-backed production logger is used.
	Logger Logger
}

// DefaultOptions returns an Options with the package's defaults.
func DefaultOptions() *Options {
	return &Options{
		CreateIfMissing:  false,
		ErrorIfExists:    false,
		ReadOnly:         false,
		InitialMapLevels: 17,
		MaxMapLevels:     0,
		Logger:           nil,
	}
}

func (o *Options) logger() Logger {
	if o == nil || o.Logger == nil {
		return defaultLogger()
	}
	return o.Logger
}

func (o *Options) initialMapLevels() uint {
	if o == nil || o.InitialMapLevels == 0 {
		return 17
	}
	return o.InitialMapLevels
}

func (o *Options) maxMapLevels() uint {
	if o == nil || o.MaxMapLevels == 0 {
		return mmap.MaxMappedLevel()
	}
	return o.MaxMapLevels
}
