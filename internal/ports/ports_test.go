package ports

import (
	"errors"
	"testing"

	"github.com/constellos/agenthooks/internal/store"
)

func newTestAllocator(t *testing.T, min, max int, busy map[int]bool) *Allocator {
	t.Helper()
	db, err := store.OpenInMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	a := NewAllocator(db, min, max)
	a.probe = func(port int) bool { return !busy[port] }
	return a
}

func TestAllocate_SkipsLeasedAndBusyPorts(t *testing.T) {
	a := newTestAllocator(t, 3000, 3005, map[int]bool{3001: true})

	first, err := a.Allocate("vite", "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Port != 3000 {
		t.Errorf("first port = %d, want 3000", first.Port)
	}
	if first.LeaseID == "" {
		t.Error("expected a lease id")
	}

	// 3000 leased, 3001 busy on the host: next allocation lands on 3002.
	second, err := a.Allocate("storybook", "sess-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Port != 3002 {
		t.Errorf("second port = %d, want 3002", second.Port)
	}
}

func TestAllocate_RangeExhausted(t *testing.T) {
	a := newTestAllocator(t, 3000, 3000, nil)

	if _, err := a.Allocate("vite", "sess-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := a.Allocate("next", "sess-2")
	if !errors.Is(err, ErrRangeExhausted) {
		t.Fatalf("expected ErrRangeExhausted, got %v", err)
	}
}

func TestReleaseSession(t *testing.T) {
	a := newTestAllocator(t, 3000, 3010, nil)

	if _, err := a.Allocate("vite", "sess-1"); err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if _, err := a.Allocate("api", "sess-1"); err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if _, err := a.Allocate("docs", "sess-2"); err != nil {
		t.Fatalf("allocate: %v", err)
	}

	n, err := a.ReleaseSession("sess-1")
	if err != nil {
		t.Fatalf("release session: %v", err)
	}
	if n != 2 {
		t.Errorf("released %d leases, want 2", n)
	}

	leases, err := a.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(leases) != 1 || leases[0].SessionID != "sess-2" {
		t.Errorf("leases = %+v, want only sess-2's", leases)
	}
}

func TestHolder(t *testing.T) {
	a := newTestAllocator(t, 3000, 3010, nil)

	lease, err := a.Allocate("vite", "sess-1")
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}

	holder, err := a.Holder(lease.Port)
	if err != nil {
		t.Fatalf("holder: %v", err)
	}
	if holder == nil || holder.SessionID != "sess-1" {
		t.Errorf("holder = %+v, want sess-1's lease", holder)
	}

	if err := a.Release(lease.Port); err != nil {
		t.Fatalf("release: %v", err)
	}
	holder, err = a.Holder(lease.Port)
	if err != nil {
		t.Fatalf("holder: %v", err)
	}
	if holder != nil {
		t.Errorf("holder = %+v, want nil after release", holder)
	}
}
