// Package mmap manages the one shared memory mapping a cola database
// keeps over its own file: which levels it covers, and the policy for
// growing it as new levels are allocated.
//
// Reference: original cola (giannitedesco/cola) coladb.c's map()/
// remap()/cola_close() mmap/mremap/munmap/msync sequence. Realized in
// Go via golang.org/x/sys/unix the way the example pack's
// marmos91-dittofs (pkg/wal/mmap.go) and calvinalkan-agent-task
// (pkg/slotcache) drive the same syscalls for the same single-file,
// mmap'd, lookup-structure shape. golang.org/x/sys is itself grounded
// in hanwen-go-fuse's dependency graph; rockyardkv's own vfs package
// abstracts mmap behind flags that are never backed by a real
// implementation, so the actual syscalls are drawn from the other two.
package mmap

import (
	"fmt"
	"math"
	"os"
	"runtime"

	"github.com/coladb/cola/internal/format"
)

// MaxMappedLevel is the MAP_MAX ceiling on how deep the shared mapping
// may grow, as a number of levels: on 64-bit hosts, effectively
// unbounded; on 32-bit hosts, 24 levels (0..23, at most 8 Mi elements
// per level).
func MaxMappedLevel() uint {
	if is32Bit() {
		return 24
	}
	return math.MaxUint32
}

func is32Bit() bool {
	switch runtime.GOARCH {
	case "386", "arm", "mips", "mipsle":
		return true
	default:
		return false
	}
}

// Manager owns the single shared mapping over a cola file: it always
// begins at file offset 0 and covers the header plus levels
// [0, Depth()).
type Manager struct {
	f     *os.File
	rw    bool
	data  []byte
	depth uint // number of levels currently mapped (exclusive upper bound)
}

// New creates a Manager for the given file; no mapping is installed
// until Install is called.
func New(f *os.File, rw bool) *Manager {
	return &Manager{f: f, rw: rw}
}

// Depth returns the number of levels currently covered by the mapping
// (levels 0..Depth()-1).
func (m *Manager) Depth() uint { return m.depth }

// Bytes returns the currently mapped region, or nil if none is installed.
func (m *Manager) Bytes() []byte { return m.data }

// Installed reports whether a mapping is currently held.
func (m *Manager) Installed() bool { return m.data != nil }

// Install maps levels [0, levels) (plus the header) for the first
// time. levels == 0 means "install nothing," matching the original
// source's DEBUG_PIO escape hatch (an initial map depth of 0 is legal).
func (m *Manager) Install(levels uint) error {
	if m.data != nil {
		return fmt.Errorf("mmap: already installed")
	}
	if levels == 0 {
		return nil
	}
	sz := format.FileSize(levels - 1)
	data, err := m.mmapAt(sz)
	if err != nil {
		return fmt.Errorf("mmap: %w", err)
	}
	m.data = data
	m.depth = levels
	return nil
}

// Grow extends the mapping to cover levels [0, levels). It is a no-op
// if the mapping already covers at least that many levels.
func (m *Manager) Grow(levels uint) error {
	if levels <= m.depth {
		return nil
	}
	sz := format.FileSize(levels - 1)
	data, err := m.remapTo(sz)
	if err != nil {
		return fmt.Errorf("mremap: %w", err)
	}
	m.data = data
	m.depth = levels
	return nil
}

// Close unmaps the region, if any.
func (m *Manager) Close() error {
	if m.data == nil {
		return nil
	}
	err := m.munmap(m.data)
	m.data = nil
	m.depth = 0
	return err
}
