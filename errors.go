package cola

import "errors"

// Sentinel errors returned by DB operations. Wrap with fmt.Errorf's
// %w and unwrap with errors.Is, following db/db.go's sentinel style.
var (
	// ErrBadMagic is returned when a file's header magic does not
	// match the expected cola magic value.
	ErrBadMagic = errors.New("cola: bad magic")

	// ErrUnsupportedVersion is returned when a file's header version
	// is not the one version this package understands.
	ErrUnsupportedVersion = errors.New("cola: unsupported version")

	// ErrTruncatedHeader is returned when a file is too short to hold
	// even the fixed header.
	ErrTruncatedHeader = errors.New("cola: truncated header")

	// ErrReadOnly is returned by mutating operations on a database
	// opened with Options.ReadOnly set.
	ErrReadOnly = errors.New("cola: database is read-only")

	// ErrClosed is returned by any operation on a database after Close
	// has been called.
	ErrClosed = errors.New("cola: database is closed")

	// ErrDuplicateKey is returned by Insert when the key already
	// exists; duplicates are rejected, not merged.
	ErrDuplicateKey = errors.New("cola: duplicate key")

	// ErrExists is returned by Create when the file already exists and
	// Options.ErrorIfExists is set.
	ErrExists = errors.New("cola: file already exists")

	// ErrNotExists is returned by Open when the file does not exist
	// and Options.CreateIfMissing is not set.
	ErrNotExists = errors.New("cola: file does not exist")
)
