package testutil

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ID returns the n-th deterministic test id:
//
//	ID(1) == 00000000-0000-7000-8000-000000000001
//
// The ids carry version 7 and RFC 4122 variant bits so they look like the
// ids the production generator hands out, and they sort by n.
func ID(n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("00000000-0000-7000-8000-%012x", n))
}

// SequentialIDs hands out ID(1), ID(2), ... in order.
//
// Unlike entity.FixedGenerator, which panics once its list is used up,
// SequentialIDs never runs out. Use it when a test cares that ids are
// deterministic but not what each one is.
//
// Thread-safety: safe for concurrent use.
type SequentialIDs struct {
	mu   sync.Mutex
	next int
}

// NewSequentialIDs creates a generator whose first id is ID(1).
func NewSequentialIDs() *SequentialIDs {
	return &SequentialIDs{next: 1}
}

// Generate returns the next id.
//
// Implements entity.IDGenerator.
func (g *SequentialIDs) Generate() uuid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := ID(g.next)
	g.next++
	return id
}
