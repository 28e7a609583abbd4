// Package ports allocates development-service ports across hook processes.
// Leases live in the shared store so concurrent sessions cannot hand the
// same port to two dev servers.
package ports

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/constellos/agenthooks/internal/store"
)

// ErrRangeExhausted is returned when no port in the configured range is both
// unleased and free on the host.
var ErrRangeExhausted = errors.New("no free port in range")

// Allocator leases ports from a bounded range.
type Allocator struct {
	db  *store.DB
	min int
	max int

	// probe reports whether a port is actually bindable on the host.
	// Overridable in tests.
	probe func(port int) bool
}

// NewAllocator returns an allocator over [min, max].
func NewAllocator(db *store.DB, min, max int) *Allocator {
	return &Allocator{db: db, min: min, max: max, probe: probePort}
}

// Allocate leases the first port in range that is neither leased in the
// store nor bound on the host.
func (a *Allocator) Allocate(service, sessionID string) (*store.PortLease, error) {
	for port := a.min; port <= a.max; port++ {
		existing, err := a.db.GetLease(port)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			continue
		}
		if !a.probe(port) {
			continue
		}

		lease := store.PortLease{
			Port:      port,
			LeaseID:   uuid.NewString(),
			Service:   service,
			SessionID: sessionID,
			LeasedAt:  time.Now().UTC(),
		}
		if err := a.db.InsertLease(lease); err != nil {
			// Another process won the port between our check and insert.
			continue
		}
		return &lease, nil
	}
	return nil, fmt.Errorf("%w: %d-%d", ErrRangeExhausted, a.min, a.max)
}

// Holder returns the lease on a port, nil when the port is unleased.
func (a *Allocator) Holder(port int) (*store.PortLease, error) {
	return a.db.GetLease(port)
}

// Release frees a leased port.
func (a *Allocator) Release(port int) error {
	return a.db.ReleasePort(port)
}

// ReleaseSession frees every port a session holds and reports how many.
func (a *Allocator) ReleaseSession(sessionID string) (int64, error) {
	return a.db.ReleaseSessionPorts(sessionID)
}

// List returns all current leases.
func (a *Allocator) List() ([]store.PortLease, error) {
	return a.db.ListLeases()
}

// probePort reports whether the port can be bound on localhost right now.
func probePort(port int) bool {
	l, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return false
	}
	_ = l.Close()
	return true
}
