// internal/cli/backend.go
package datebench

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwiater/datebench/internal/appconfig"
	"github.com/mwiater/datebench/internal/benchmark"
	"github.com/mwiater/datebench/internal/schema"
	"github.com/mwiater/datebench/internal/seed"
	"github.com/mwiater/datebench/internal/store"
)

// backend hands out per-schema collections. Commands depend on it rather than
// on the store so tests can run without a server.
type backend interface {
	Adapter(s schema.Schema) benchmark.Adapter
	Target(s schema.Schema) seed.Target
	Close(ctx context.Context) error
}

type mongoBackend struct {
	client *store.Client
}

func (b *mongoBackend) Adapter(s schema.Schema) benchmark.Adapter {
	return b.client.Collection(s.Collection)
}

func (b *mongoBackend) Target(s schema.Schema) seed.Target {
	return b.client.Collection(s.Collection)
}

func (b *mongoBackend) Close(ctx context.Context) error {
	return b.client.Close(ctx)
}

// openBackend is swapped in tests.
var openBackend = func(ctx context.Context, cfg *appconfig.Config) (backend, error) {
	client, err := store.Connect(ctx, cfg.MongoURI(), cfg.DatabaseName())
	if err != nil {
		return nil, err
	}
	return &mongoBackend{client: client}, nil
}

// selectSchemas resolves the --only filter, keeping benchmark order.
func selectSchemas(only []string) ([]schema.Schema, error) {
	if len(only) == 0 {
		return schema.All(), nil
	}

	wanted := make(map[string]bool, len(only))
	for _, name := range only {
		if strings.TrimSpace(name) == "" {
			continue
		}
		s, ok := schema.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown representation %q (want plain or native)", name)
		}
		wanted[s.Representation.Tag] = true
	}

	var selected []schema.Schema
	for _, s := range schema.All() {
		if wanted[s.Representation.Tag] {
			selected = append(selected, s)
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no representations selected")
	}
	return selected, nil
}
