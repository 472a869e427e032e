package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type fakeIndexView struct {
	names     map[string]bool
	creates   int
	drops     int
	lists     int
	createErr error
}

func newFakeIndexView(names ...string) *fakeIndexView {
	v := &fakeIndexView{names: map[string]bool{"_id_": true}}
	for _, n := range names {
		v.names[n] = true
	}
	return v
}

func (v *fakeIndexView) CreateOne(ctx context.Context, model mongo.IndexModel, opts ...*options.CreateIndexesOptions) (string, error) {
	v.creates++
	if v.createErr != nil {
		return "", v.createErr
	}
	name := *model.Options.Name
	v.names[name] = true
	return name, nil
}

func (v *fakeIndexView) DropOne(ctx context.Context, name string, opts ...*options.DropIndexesOptions) (bson.Raw, error) {
	v.drops++
	delete(v.names, name)
	return bson.Raw{}, nil
}

func (v *fakeIndexView) ListSpecifications(ctx context.Context, opts ...*options.ListIndexesOptions) ([]*mongo.IndexSpecification, error) {
	v.lists++
	var specs []*mongo.IndexSpecification
	for name := range v.names {
		specs = append(specs, &mongo.IndexSpecification{Name: name})
	}
	return specs, nil
}

func TestIndexStateTransitionsAreIdempotent(t *testing.T) {
	view := newFakeIndexView()
	state := NewIndexState(view, "date")
	ctx := context.Background()

	require.NoError(t, state.SetIndexed(ctx, false))
	assert.Equal(t, 0, view.creates+view.drops, "absent index should not be dropped")

	require.NoError(t, state.SetIndexed(ctx, true))
	require.NoError(t, state.SetIndexed(ctx, true))
	assert.Equal(t, 1, view.creates)
	assert.True(t, view.names["date_1"])

	present, known := state.Indexed()
	assert.True(t, present)
	assert.True(t, known)

	require.NoError(t, state.SetIndexed(ctx, false))
	require.NoError(t, state.SetIndexed(ctx, false))
	assert.Equal(t, 1, view.drops)
	assert.False(t, view.names["date_1"])

	assert.Equal(t, 1, view.lists, "server state should only be probed once")
	assert.Equal(t, 2, state.Changes())
}

func TestIndexStateProbesExistingIndex(t *testing.T) {
	view := newFakeIndexView("date_1")
	state := NewIndexState(view, "date")

	require.NoError(t, state.SetIndexed(context.Background(), true))
	assert.Equal(t, 0, view.creates)

	require.NoError(t, state.SetIndexed(context.Background(), false))
	assert.Equal(t, 1, view.drops)
}

func TestIndexStateReprobesAfterFailure(t *testing.T) {
	view := newFakeIndexView()
	view.createErr = errors.New("build aborted")
	state := NewIndexState(view, "date")

	err := state.SetIndexed(context.Background(), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, view.createErr)

	_, known := state.Indexed()
	assert.False(t, known)

	view.createErr = nil
	require.NoError(t, state.SetIndexed(context.Background(), true))
	assert.Equal(t, 2, view.lists)
}

func TestIndexStateNotBound(t *testing.T) {
	var state *IndexState
	assert.ErrorIs(t, state.SetIndexed(context.Background(), true), ErrNotBound)

	c := NewCollection("plaindates", nil, nil, nil)
	assert.ErrorIs(t, c.SetIndexed(context.Background(), false), ErrNotBound)
	_, err := c.InsertMany(context.Background(), []any{bson.D{}})
	assert.ErrorIs(t, err, ErrNotBound)
}
