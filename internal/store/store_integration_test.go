package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mwiater/datebench/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Set DATEBENCH_TEST_URI (e.g. mongodb://127.0.0.1:27017) to run against a
// live server.
func TestCollectionAgainstServer(t *testing.T) {
	uri := os.Getenv("DATEBENCH_TEST_URI")
	if uri == "" {
		t.Skip("DATEBENCH_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	database := "datebench_test_" + uuid.NewString()[:8]
	client, err := Connect(ctx, uri, database)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.db.Drop(context.Background())
		_ = client.Close(context.Background())
	})

	coll := client.Collection(schema.PlainDate.Collection)
	base := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	docs := make([]any, 0, 50)
	for i := 0; i < 50; i++ {
		docs = append(docs, schema.PlainDate.Encode(base.Add(time.Duration(i)*time.Hour)))
	}
	inserted, err := coll.InsertMany(ctx, docs)
	require.NoError(t, err)
	assert.Equal(t, 50, inserted)

	for _, trial := range schema.PlainDate.Battery() {
		require.NoError(t, coll.SetIndexed(ctx, trial.UseIndex))
		m, err := coll.Measure(ctx, trial.Predicate)
		require.NoError(t, err, trial.Name)
		assert.GreaterOrEqual(t, m.Millis, 0.0)
		if trial.UseIndex {
			assert.Contains(t, m.Plan, "IXSCAN", trial.Name)
		}
	}

	present, known := coll.Index().Indexed()
	assert.True(t, known)
	assert.True(t, present)
}
