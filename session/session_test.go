package session

import "testing"

func TestAllocateDistinctUntilRelease(t *testing.T) {
	a := New()
	ids := make(map[uint16]struct{})
	for i := 0; i < 10; i++ {
		id, err := a.Allocate()
		if err != nil {
			t.Fatalf("Allocate: %v", err)
		}
		if _, dup := ids[id]; dup {
			t.Fatalf("duplicate id %d", id)
		}
		ids[id] = struct{}{}
	}
}

func TestAllocateFirstIsZero(t *testing.T) {
	a := New()
	id, err := a.Allocate()
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if id != 0 {
		t.Fatalf("first id = %d, want 0", id)
	}
}

func TestReleaseMakesIDReusable(t *testing.T) {
	a := New()
	id, err := a.Allocate()
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	a.Release(id)
	if a.InUse(id) {
		t.Fatalf("id %d still marked in use after release", id)
	}
}

func TestReleaseDoubleReleaseTolerated(t *testing.T) {
	a := New()
	id, err := a.Allocate()
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	a.Release(id)
	a.Release(id) // must not panic
}

func TestAllocateSaturationScansForFreeID(t *testing.T) {
	a := New()
	// Fill the registry completely, then free a single mid-range id and
	// check allocation falls back to a scan once max(used)+1 wraps back
	// onto an id that is still taken.
	for i := 0; i < 1<<16; i++ {
		if _, err := a.Allocate(); err != nil {
			t.Fatalf("Allocate at %d: %v", i, err)
		}
	}
	_, err := a.Allocate()
	if err != ErrNoSessionIDAvailable {
		t.Fatalf("err = %v, want ErrNoSessionIDAvailable", err)
	}

	a.Release(42)
	id, err := a.Allocate()
	if err != nil {
		t.Fatalf("Allocate after release: %v", err)
	}
	if id != 42 {
		t.Fatalf("id = %d, want 42 (the only free slot)", id)
	}
}
