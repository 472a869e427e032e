// internal/seed/seeder.go
package seed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mwiater/datebench/internal/logging"
	"golang.org/x/sync/errgroup"
)

const (
	defaultBatchSize = 1000
	defaultWorkers   = 4
)

// Target is a collection that can be counted and bulk-inserted into.
type Target interface {
	EstimatedDocumentCount(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, docs []any) (int, error)
}

// Config controls one seeding pass.
type Config struct {
	Count     int64
	BatchSize int
	Workers   int
}

// Summary describes the outcome of seeding one collection.
type Summary struct {
	Label    string
	Existing int64
	Inserted int64
	Skipped  bool
	Elapsed  time.Duration
}

// Seeder inserts generated documents in concurrent batches.
type Seeder struct {
	cfg Config
	gen *Generator
	// OnProgress, when set, is called after every completed batch. Calls are
	// serialized.
	OnProgress func(label string, done, total int64)

	mu sync.Mutex
}

// NewSeeder applies defaults to cfg.
func NewSeeder(cfg Config, gen *Generator) *Seeder {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	return &Seeder{cfg: cfg, gen: gen}
}

// Seed tops target up to the configured count, encoding each generated
// timestamp with encode. A collection already at or above the count is left
// untouched.
func (s *Seeder) Seed(ctx context.Context, label string, target Target, encode func(time.Time) any) (Summary, error) {
	start := time.Now()
	summary := Summary{Label: label}

	existing, err := target.EstimatedDocumentCount(ctx)
	if err != nil {
		return summary, fmt.Errorf("count %s documents: %w", label, err)
	}
	summary.Existing = existing

	if existing >= s.cfg.Count {
		summary.Skipped = true
		logging.LogEvent("%s already seeded (%d documents)", label, existing)
		return summary, nil
	}

	total := s.cfg.Count - existing
	logging.LogEvent("Seeding %d %s documents (batch=%d, workers=%d, seed=%d)", total, label, s.cfg.BatchSize, s.cfg.Workers, s.gen.Seed())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	var done int64
	for remaining := total; remaining > 0; {
		if gctx.Err() != nil {
			break
		}

		n := int64(s.cfg.BatchSize)
		if remaining < n {
			n = remaining
		}
		remaining -= n

		docs := make([]any, 0, n)
		for i := int64(0); i < n; i++ {
			docs = append(docs, encode(s.gen.Next()))
		}

		g.Go(func() error {
			inserted, err := target.InsertMany(gctx, docs)
			if err != nil {
				return fmt.Errorf("insert %s batch: %w", label, err)
			}
			s.mu.Lock()
			done += int64(inserted)
			if s.OnProgress != nil {
				s.OnProgress(label, done, total)
			}
			s.mu.Unlock()
			return nil
		})
	}

	err = g.Wait()
	summary.Inserted = done
	summary.Elapsed = time.Since(start)
	if err != nil {
		return summary, err
	}
	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("seed %s: %w", label, err)
	}

	logging.LogEvent("%s seeded: %d documents in %s", label, done, summary.Elapsed.Round(time.Millisecond))
	return summary, nil
}
