//go:build linux

package fsio

import (
	"os"

	"golang.org/x/sys/unix"
)

// Fallocate reserves [off, off+length) bytes of backing store for f.
// Mirrors posix_fallocate's role in coladb.c's do_open/cola_insert:
// space reservation is best-effort, its failure is reported but must
// not abort the caller (later positioned writes will extend the file).
func Fallocate(f *os.File, off, length int64) error {
	return unix.Fallocate(int(f.Fd()), 0, off, length)
}
