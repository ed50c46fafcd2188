package fsio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestPwriteFullPreadFullRoundtrip(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "data"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	payload := bytes.Repeat([]byte{0xAB}, 1<<20) // larger than a single syscall typically buffers
	if err := PwriteFull(f, payload, 1024); err != nil {
		t.Fatalf("PwriteFull: %v", err)
	}

	got := make([]byte, len(payload))
	if err := PreadFull(f, got, 1024); err != nil {
		t.Fatalf("PreadFull: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("roundtrip mismatch")
	}
}

func TestPreadFullShortFile(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "short"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := PwriteFull(f, []byte("hello"), 0); err != nil {
		t.Fatal(err)
	}

	buf := make([]byte, 100)
	if err := PreadFull(f, buf, 0); err == nil {
		t.Fatal("expected error reading past EOF")
	}
}

func TestFallocateGrowsFile(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "alloc"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := Fallocate(f, 0, 4096); err != nil {
		t.Fatalf("Fallocate: %v", err)
	}
	info, err := f.Stat()
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() < 4096 {
		t.Fatalf("file size = %d, want >= 4096", info.Size())
	}
}
