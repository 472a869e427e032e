// internal/benchmark/trial.go
// Package benchmark executes trial batteries against a storage representation
// and records their planner-reported timings.
package benchmark

import (
	"context"

	"github.com/mwiater/datebench/internal/metrics"
)

// Representation identifies the storage encoding under test.
type Representation struct {
	Tag   string `json:"tag"`
	Label string `json:"label"`
}

// Trial is a named query plus whether the supporting index must be present.
type Trial struct {
	// ID is the stable join key of the logical query.
	ID string
	// Name is the display label.
	Name      string
	Predicate any
	UseIndex  bool
}

// Key returns the recorder key of the trial.
func (t Trial) Key() metrics.Key {
	return metrics.Key{ID: t.ID, Indexed: t.UseIndex}
}

// Measurement is what a backend reports for one executed query.
type Measurement struct {
	Millis       float64 `json:"millis"`
	Returned     int64   `json:"returned"`
	KeysExamined int64   `json:"keys_examined"`
	DocsExamined int64   `json:"docs_examined"`
	Plan         string  `json:"plan,omitempty"`
}

// Adapter binds trials to a concrete storage representation.
type Adapter interface {
	// SetIndexed makes the supporting index present or absent. It must be
	// idempotent.
	SetIndexed(ctx context.Context, indexed bool) error
	// Measure executes the predicate and returns the planner timing.
	Measure(ctx context.Context, predicate any) (Measurement, error)
}
