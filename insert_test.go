package cola

import (
	"path/filepath"
	"testing"
)

func TestInsertAfterCloseReturnsErrClosed(t *testing.T) {
	dir := t.TempDir()
	db := mustCreate(t, dir)
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}
	if err := db.Insert(1); err != ErrClosed {
		t.Fatalf("Insert after Close = %v, want ErrClosed", err)
	}
}

func TestEnsureLevelAllocatedGrowsMappingWithinBudget(t *testing.T) {
	dir := t.TempDir()
	opts := testOptions()
	opts.InitialMapLevels = 1
	db, err := Create(filepath.Join(dir, "grow.cola"), opts)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	for i := uint64(0); i < 16; i++ {
		if err := db.Insert(i); err != nil {
			t.Fatalf("Insert(%d): %v", i, err)
		}
	}
	if db.allocatedLevels < 5 {
		t.Fatalf("allocatedLevels = %d, want at least 5 after 16 inserts", db.allocatedLevels)
	}
	for i := uint64(0); i < 16; i++ {
		found, err := db.Query(i)
		if err != nil || !found {
			t.Fatalf("Query(%d) = %v, %v, want true, nil", i, found, err)
		}
	}
}

// TestInsertWithMultipleSimultaneouslyBufferedLevels forces a merge that
// needs two or more unmapped input levels at once (MaxMapLevels small
// enough that levels 2 and 3 are both buffered by the time the 16th key
// is inserted), the scenario internal/bufpool's per-stream ReadBlock
// chunking exists to keep from corrupting.
func TestInsertWithMultipleSimultaneouslyBufferedLevels(t *testing.T) {
	dir := t.TempDir()
	opts := testOptions()
	opts.InitialMapLevels = 2
	opts.MaxMapLevels = 2
	db, err := Create(filepath.Join(dir, "buffered.cola"), opts)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	const n = 16
	for i := uint64(0); i < n; i++ {
		if err := db.Insert(i); err != nil {
			t.Fatalf("Insert(%d): %v", i, err)
		}
	}
	for i := uint64(0); i < n; i++ {
		found, err := db.Query(i)
		if err != nil {
			t.Fatalf("Query(%d): %v", i, err)
		}
		if !found {
			t.Fatalf("Query(%d) = false after insert, want true (merge corrupted a buffered level)", i)
		}
	}
	for i := uint64(n); i < n+8; i++ {
		found, err := db.Query(i)
		if err != nil {
			t.Fatalf("Query(%d): %v", i, err)
		}
		if found {
			t.Fatalf("Query(%d) = true, want false (never inserted)", i)
		}
	}
}

func TestInsertMonotonicNelem(t *testing.T) {
	dir := t.TempDir()
	db := mustCreate(t, dir)
	defer db.Close()

	for i := uint64(0); i < 10; i++ {
		before := db.Len()
		if err := db.Insert(i * 2); err != nil {
			t.Fatalf("Insert(%d): %v", i*2, err)
		}
		if db.Len() != before+1 {
			t.Fatalf("Len() after insert = %d, want %d", db.Len(), before+1)
		}
	}
}
