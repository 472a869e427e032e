// internal/store/collection.go
package store

import (
	"context"

	"github.com/mwiater/datebench/internal/benchmark"
	"github.com/mwiater/datebench/internal/schema"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection adapts one MongoDB collection to benchmark trials and seeding.
type Collection struct {
	name  string
	coll  *mongo.Collection
	cmd   Commander
	index *IndexState
}

var _ benchmark.Adapter = (*Collection)(nil)

// NewCollection builds an adapter from its parts. coll may be nil when only
// benchmarking is needed.
func NewCollection(name string, coll *mongo.Collection, cmd Commander, view IndexView) *Collection {
	var index *IndexState
	if view != nil {
		index = NewIndexState(view, schema.DateField)
	}
	return &Collection{name: name, coll: coll, cmd: cmd, index: index}
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.name
}

// Index exposes the collection's index state.
func (c *Collection) Index() *IndexState {
	return c.index
}

// SetIndexed implements benchmark.Adapter.
func (c *Collection) SetIndexed(ctx context.Context, indexed bool) error {
	return c.index.SetIndexed(ctx, indexed)
}

// Measure implements benchmark.Adapter.
func (c *Collection) Measure(ctx context.Context, predicate any) (benchmark.Measurement, error) {
	return explainFind(ctx, c.cmd, c.name, predicate)
}

// EstimatedDocumentCount returns the collection's metadata document count.
func (c *Collection) EstimatedDocumentCount(ctx context.Context) (int64, error) {
	if c.coll == nil {
		return 0, ErrNotBound
	}
	return c.coll.EstimatedDocumentCount(ctx)
}

// InsertMany inserts docs without ordering guarantees.
func (c *Collection) InsertMany(ctx context.Context, docs []any) (int, error) {
	if c.coll == nil {
		return 0, ErrNotBound
	}
	res, err := c.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if res == nil {
		return 0, err
	}
	return len(res.InsertedIDs), err
}
