//go:build darwin

package mmap

import "golang.org/x/sys/unix"

func (m *Manager) mmapAt(size int64) ([]byte, error) {
	prot := unix.PROT_READ
	if m.rw {
		prot |= unix.PROT_WRITE
	}
	return unix.Mmap(int(m.f.Fd()), 0, int(size), prot, unix.MAP_SHARED)
}

// remapTo has no mremap(2) equivalent on Darwin, so growth is done by
// unmapping and remapping at the new size. This is a platform
// divergence from coladb.c's MREMAP_MAYMOVE in-place-or-moved growth:
// the mapping may always move here, which is a legal outcome of that
// same "grown in place if possible, else moved" contract.
func (m *Manager) remapTo(size int64) ([]byte, error) {
	if err := m.munmap(m.data); err != nil {
		return nil, err
	}
	return m.mmapAt(size)
}

func (m *Manager) munmap(data []byte) error {
	return unix.Munmap(data)
}

// Sync schedules an asynchronous flush of dirty mapped pages.
func (m *Manager) Sync() error {
	if m.data == nil {
		return nil
	}
	return unix.Msync(m.data, unix.MS_ASYNC)
}
