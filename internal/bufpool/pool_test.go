package bufpool

import "testing"

func TestPoolLazyAllocation(t *testing.T) {
	var p Pool
	if p.Allocated() {
		t.Fatal("Allocated() true before first use")
	}

	rd, err := p.ReadBlock(BlockSize)
	if err != nil {
		t.Fatalf("ReadBlock: %v", err)
	}
	if len(rd) != BlockSize {
		t.Fatalf("len(rd) = %d, want %d", len(rd), BlockSize)
	}
	if !p.Allocated() {
		t.Fatal("Allocated() false after ReadBlock()")
	}

	wr, err := p.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(wr) != WriteSize {
		t.Fatalf("len(wr) = %d, want %d", len(wr), WriteSize)
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if p.Allocated() {
		t.Fatal("Allocated() true after Close")
	}
}

func TestPoolReadWriteIndependent(t *testing.T) {
	var p Pool
	rd, err := p.ReadBlock(BlockSize)
	if err != nil {
		t.Fatal(err)
	}
	rd[0] = 0xAB

	wr, err := p.Write()
	if err != nil {
		t.Fatal(err)
	}
	wr[0] = 0xCD

	if rd[0] != 0xAB {
		t.Fatal("read buffer corrupted")
	}
	if wr[0] != 0xCD {
		t.Fatal("write buffer corrupted")
	}

	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestPoolCloseIdempotentWhenUnused(t *testing.T) {
	var p Pool
	if err := p.Close(); err != nil {
		t.Fatalf("Close on unused pool: %v", err)
	}
}

func TestReadBlockCarvesDisjointRegions(t *testing.T) {
	var p Pool
	defer p.Close()

	a, err := p.ReadBlock(BlockSize)
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.ReadBlock(BlockSize)
	if err != nil {
		t.Fatal(err)
	}

	a[0] = 0x11
	b[0] = 0x22
	if a[0] != 0x11 {
		t.Fatal("writing to the second block clobbered the first")
	}
	if b[0] != 0x22 {
		t.Fatal("second block did not retain its own write")
	}
}

func TestReadBlockCapsToBlockSize(t *testing.T) {
	var p Pool
	defer p.Close()

	rd, err := p.ReadBlock(BlockSize * 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(rd) != BlockSize {
		t.Fatalf("len(rd) = %d, want %d (capped to BlockSize)", len(rd), BlockSize)
	}
}

func TestReadBlockSmallerThanBlockSizeForSmallLevels(t *testing.T) {
	var p Pool
	defer p.Close()

	rd, err := p.ReadBlock(32)
	if err != nil {
		t.Fatal(err)
	}
	if len(rd) != 32 {
		t.Fatalf("len(rd) = %d, want 32", len(rd))
	}
}

func TestResetReclaimsArena(t *testing.T) {
	var p Pool
	defer p.Close()

	for i := 0; i < ReadSize/BlockSize; i++ {
		if _, err := p.ReadBlock(BlockSize); err != nil {
			t.Fatalf("ReadBlock %d: %v", i, err)
		}
	}
	if _, err := p.ReadBlock(BlockSize); err == nil {
		t.Fatal("expected arena exhaustion before Reset")
	}

	p.Reset()
	if _, err := p.ReadBlock(BlockSize); err != nil {
		t.Fatalf("ReadBlock after Reset: %v", err)
	}
}
