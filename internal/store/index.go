// internal/store/index.go
package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexView is the subset of mongo.IndexView used to manage the date index.
type IndexView interface {
	CreateOne(ctx context.Context, model mongo.IndexModel, opts ...*options.CreateIndexesOptions) (string, error)
	DropOne(ctx context.Context, name string, opts ...*options.DropIndexesOptions) (bson.Raw, error)
	ListSpecifications(ctx context.Context, opts ...*options.ListIndexesOptions) ([]*mongo.IndexSpecification, error)
}

// IndexState owns the presence of a single ascending index on one
// collection. Index presence is shared server state, so each collection
// should have exactly one IndexState.
type IndexState struct {
	view  IndexView
	field string
	name  string

	known   bool
	present bool
	changes int
}

// NewIndexState tracks the ascending index on field.
func NewIndexState(view IndexView, field string) *IndexState {
	return &IndexState{view: view, field: field, name: field + "_1"}
}

// Name returns the server-side index name.
func (s *IndexState) Name() string {
	return s.name
}

// Indexed reports the last observed presence and whether it is known.
func (s *IndexState) Indexed() (present, known bool) {
	return s.present, s.known
}

// Changes reports how many create or drop calls were issued.
func (s *IndexState) Changes() int {
	return s.changes
}

// SetIndexed creates or drops the index so its presence equals want. The
// current state is read from the server on first use and after a failed
// transition; otherwise a call matching the known state is a no-op.
func (s *IndexState) SetIndexed(ctx context.Context, want bool) error {
	if s == nil || s.view == nil {
		return ErrNotBound
	}

	if !s.known {
		present, err := s.probe(ctx)
		if err != nil {
			return err
		}
		s.present, s.known = present, true
	}
	if s.present == want {
		return nil
	}

	var err error
	if want {
		model := mongo.IndexModel{
			Keys:    bson.D{{Key: s.field, Value: 1}},
			Options: options.Index().SetName(s.name),
		}
		_, err = s.view.CreateOne(ctx, model)
	} else {
		_, err = s.view.DropOne(ctx, s.name)
	}
	s.changes++
	if err != nil {
		s.known = false
		return fmt.Errorf("set index %s present=%t: %w", s.name, want, err)
	}

	s.present = want
	return nil
}

func (s *IndexState) probe(ctx context.Context) (bool, error) {
	specs, err := s.view.ListSpecifications(ctx)
	if err != nil {
		return false, fmt.Errorf("list indexes: %w", err)
	}
	for _, spec := range specs {
		if spec != nil && spec.Name == s.name {
			return true, nil
		}
	}
	return false, nil
}
