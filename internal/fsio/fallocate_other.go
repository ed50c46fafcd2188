//go:build !linux

package fsio

import "os"

// Fallocate falls back to Truncate on platforms without a fast
// reservation syscall (posix_fallocate is Linux/glibc-specific in the
// original source). Truncate only grows the apparent file size, which
// is sufficient for correctness (the file is sparse instead of fully
// reserved) but loses the "reserve ahead of writes" performance intent.
func Fallocate(f *os.File, off, length int64) error {
	want := off + length
	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() >= want {
		return nil
	}
	return f.Truncate(want)
}
