package graph

import (
	"strconv"

	"github.com/google/uuid"
)

// IDGen mints identifiers for nodes, ports, edges, frames and comments.
// Implementations must never return an ID already present in the same store.
type IDGen interface {
	NewID() string
}

// UUIDGen mints random UUIDv4 strings. It is the default generator.
type UUIDGen struct{}

// NewID returns a fresh UUIDv4 string.
func (UUIDGen) NewID() string { return uuid.NewString() }

// SequentialGen mints "<prefix><n>" IDs from a monotonically increasing
// counter. Deterministic and seedable; intended for tests and golden files.
type SequentialGen struct {
	prefix string
	next   uint64
}

// NewSequentialGen returns a SequentialGen starting at <prefix>1.
func NewSequentialGen(prefix string) *SequentialGen {
	return &SequentialGen{prefix: prefix}
}

// NewID returns the next ID in the sequence.
func (s *SequentialGen) NewID() string {
	s.next++
	return s.prefix + strconv.FormatUint(s.next, 10)
}
