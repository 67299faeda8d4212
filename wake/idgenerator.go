package wake

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/xid"
)

// IDGenerator can generate vessel IDs.
type IDGenerator interface {
	// Generate an ID.
	Generate() string
}

// NewSequentialIDGenerator returns a generator that produces IDs in
// sequential order. Runs that use it together with a seeded random source are
// fully reproducible.
func NewSequentialIDGenerator() IDGenerator {
	return &sequentialIDGenerator{}
}

type sequentialIDGenerator struct {
	nextID uint64
}

func (g *sequentialIDGenerator) Generate() string {
	id := atomic.AddUint64(&g.nextID, 1)
	return strconv.FormatUint(id, 10)
}

// NewXIDGenerator returns a generator producing globally unique IDs. The IDs
// are not deterministic across runs.
func NewXIDGenerator() IDGenerator {
	return xidGenerator{}
}

type xidGenerator struct{}

func (xidGenerator) Generate() string {
	return xid.New().String()
}
