//go:build linux || darwin

package bufpool

import "golang.org/x/sys/unix"

// allocAnon maps a private, zero-filled anonymous region of the given
// size. On Linux it also asks for transparent huge pages via
// MADV_HUGEPAGE, mirroring coladb.c's alloc_buffers() MAP_HUGETLB
// retry-on-failure dance; the advise is best-effort and its result is
// deliberately ignored.
func allocAnon(size int) ([]byte, error) {
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, err
	}
	adviseHuge(data)
	return data, nil
}

func freeAnon(data []byte) error {
	return unix.Munmap(data)
}
