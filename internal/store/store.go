// internal/store/store.go
// Package store binds benchmark trials and seeding to MongoDB collections.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultConnectTimeout = 10 * time.Second

var (
	// ErrNotBound is returned when an operation needs a collection handle
	// that was never attached.
	ErrNotBound = errors.New("store: collection not bound")
	// ErrMalformedExplain is returned when explain output lacks usable
	// execution statistics.
	ErrMalformedExplain = errors.New("store: malformed explain output")
)

// Client wraps a connected MongoDB client and the benchmark database.
type Client struct {
	client *mongo.Client
	db     *mongo.Database

	mu          sync.Mutex
	collections map[string]*Collection
}

// Connect dials uri and verifies the server with a ping. No retries are
// attempted.
func Connect(ctx context.Context, uri, database string) (*Client, error) {
	if uri == "" {
		return nil, fmt.Errorf("connect: empty connection string")
	}
	if database == "" {
		return nil, fmt.Errorf("connect: empty database name")
	}

	connectCtx, cancel := context.WithTimeout(ctx, defaultConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(defaultConnectTimeout).
		SetAppName("datebench")

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", uri, err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping %s: %w", uri, err)
	}

	return &Client{
		client:      client,
		db:          client.Database(database),
		collections: make(map[string]*Collection),
	}, nil
}

// Collection returns the adapter for the named collection. Repeated calls
// return the same adapter so a collection has a single index state.
func (c *Client) Collection(name string) *Collection {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.collections[name]; ok {
		return existing
	}
	coll := c.db.Collection(name)
	adapter := NewCollection(name, coll, c.db, coll.Indexes())
	c.collections[name] = adapter
	return adapter
}

// Close disconnects the client.
func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Disconnect(ctx)
}
