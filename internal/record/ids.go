package record

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces record identifiers.
//
// Generate is called while the store holds its lock, so implementations must
// not block for long. Implementations used by more than one store must be
// safe for concurrent use.
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator generates random (version 4) UUIDs: 122 random bits, so
// collisions are negligible. It is the store's default.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDGenerator struct{}

// Generate returns a new hyphenated lowercase UUID.
//
// Panics if the system random source fails.
func (UUIDGenerator) Generate() string {
	return uuid.Must(uuid.NewRandom()).String()
}

// UUIDv7Generator generates time-sortable UUIDv7 identifiers.
//
// The embedded timestamp is for humans reading IDs; the store never orders by
// it. Seq is the only ordering key.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7 as a hyphenated string.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// SequenceGenerator hands out "<prefix><n>" with n counting from 1.
// IDs are unique per generator, so give each store its own.
type SequenceGenerator struct {
	prefix string
	n      atomic.Uint64
}

// NewSequenceGenerator creates a counter-based generator.
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

// Generate returns the next identifier.
func (g *SequenceGenerator) Generate() string {
	return g.prefix + strconv.FormatUint(g.n.Add(1), 10)
}
