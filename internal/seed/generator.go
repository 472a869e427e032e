// internal/seed/generator.go
// Package seed fills the benchmark collections with synthetic timestamps.
package seed

import (
	"fmt"
	"math/rand/v2"
	"time"
)

var (
	// DefaultFrom is the lower bound of generated timestamps.
	DefaultFrom = time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC)
	// DefaultTo is the upper bound of generated timestamps.
	DefaultTo = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// Generator produces uniformly distributed UTC timestamps with millisecond
// precision in [from, to].
type Generator struct {
	rng  *rand.Rand
	from time.Time
	span int64
	seed int64
}

// NewGenerator returns a generator for the range. A zero seed uses the
// current time.
func NewGenerator(seed int64, from, to time.Time) (*Generator, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("invalid range: %s is before %s", to.Format(time.RFC3339), from.Format(time.RFC3339))
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	// round the lower bound up so no timestamp falls before it
	start := from.UTC().Truncate(time.Millisecond)
	if start.Before(from) {
		start = start.Add(time.Millisecond)
	}
	span := to.Sub(start).Milliseconds()
	if span < 0 {
		return nil, fmt.Errorf("invalid range: no whole millisecond between %s and %s", from.Format(time.RFC3339Nano), to.Format(time.RFC3339Nano))
	}
	return &Generator{
		rng:  rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1)),
		from: start,
		span: span,
		seed: seed,
	}, nil
}

// Seed returns the effective seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Next returns the next timestamp. It is not safe for concurrent use.
func (g *Generator) Next() time.Time {
	offset := g.rng.Int64N(g.span + 1)
	return g.from.Add(time.Duration(offset) * time.Millisecond)
}
