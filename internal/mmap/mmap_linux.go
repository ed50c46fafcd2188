//go:build linux

package mmap

import "golang.org/x/sys/unix"

func (m *Manager) mmapAt(size int64) ([]byte, error) {
	prot := unix.PROT_READ
	if m.rw {
		prot |= unix.PROT_WRITE
	}
	data, err := unix.Mmap(int(m.f.Fd()), 0, int(size), prot, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	_ = unix.Madvise(data, unix.MADV_RANDOM)
	return data, nil
}

// remapTo grows the mapping in place when the kernel allows it,
// falling back to move (MREMAP_MAYMOVE), matching coladb.c's remap().
func (m *Manager) remapTo(size int64) ([]byte, error) {
	data, err := unix.Mremap(m.data, int(size), unix.MREMAP_MAYMOVE)
	if err != nil {
		return nil, err
	}
	_ = unix.Madvise(data, unix.MADV_RANDOM)
	return data, nil
}

func (m *Manager) munmap(data []byte) error {
	return unix.Munmap(data)
}

// Sync schedules an asynchronous flush of dirty mapped pages. Matches
// cola_close()'s msync(..., MS_ASYNC): the kernel writes pages back in
// the background, so this returns without blocking on disk I/O.
func (m *Manager) Sync() error {
	if m.data == nil {
		return nil
	}
	return unix.Msync(m.data, unix.MS_ASYNC)
}
