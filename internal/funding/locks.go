package funding

import (
	"sync"

	"github.com/google/uuid"
)

// propertyLocks serializes allocation per property so two receipts for the
// same property can never interleave their read-count-create sequence.
// Properties are independent; there is no cross-property ordering.
type propertyLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newPropertyLocks() *propertyLocks {
	return &propertyLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// Acquire blocks until the lock for propertyID is held and returns the
// release function.
func (p *propertyLocks) Acquire(propertyID uuid.UUID) func() {
	p.mu.Lock()
	lock, ok := p.locks[propertyID]
	if !ok {
		lock = &sync.Mutex{}
		p.locks[propertyID] = lock
	}
	p.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
