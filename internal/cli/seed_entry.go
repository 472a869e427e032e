// internal/cli/seed_entry.go
package datebench

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/mwiater/datebench/internal/appconfig"
	"github.com/mwiater/datebench/internal/logging"
	"github.com/mwiater/datebench/internal/seed"
)

// progressLogStep is how often, in documents, non-interactive runs log progress.
const progressLogStep = 100_000

// runSeed connects to MongoDB and seeds the selected collections.
func runSeed(ctx context.Context, out io.Writer, cfg *appconfig.Config) error {
	if cfg == nil {
		defaults := appconfig.Defaults()
		cfg = &defaults
	}

	b, err := openBackend(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() {
		if err := b.Close(context.Background()); err != nil {
			logging.LogEvent("disconnect failed: %v", err)
		}
	}()

	_, err = executeSeed(ctx, out, cfg, b)
	return err
}

// executeSeed seeds each selected schema from its own generator. Every
// generator shares one resolved seed so the collections hold the same
// timestamps.
func executeSeed(ctx context.Context, out io.Writer, cfg *appconfig.Config, b backend) ([]seed.Summary, error) {
	schemas, err := selectSchemas(cfg.Only)
	if err != nil {
		return nil, err
	}
	from, to, err := cfg.SeedRange()
	if err != nil {
		return nil, err
	}

	randomSeed := cfg.RandomSeed
	reporter := newSeedProgress(out, writerIsTerminal(out))

	var summaries []seed.Summary
	for _, s := range schemas {
		gen, err := seed.NewGenerator(randomSeed, from, to)
		if err != nil {
			return summaries, err
		}
		randomSeed = gen.Seed()

		seeder := seed.NewSeeder(seed.Config{
			Count:     cfg.SeedCount,
			BatchSize: cfg.SeedBatchSize,
			Workers:   cfg.SeedWorkers,
		}, gen)
		seeder.OnProgress = reporter.update

		summary, err := seeder.Seed(ctx, s.Representation.Label, b.Target(s), s.Encode)
		reporter.finish()
		summaries = append(summaries, summary)
		if err != nil {
			return summaries, err
		}

		if summary.Skipped {
			fmt.Fprintf(out, "%s: already holds %d documents\n", s.Representation.Label, summary.Existing)
		} else {
			fmt.Fprintf(out, "%s: inserted %d documents in %s (seed %d)\n", s.Representation.Label, summary.Inserted, summary.Elapsed.Round(time.Millisecond), randomSeed)
		}
	}
	return summaries, nil
}

// seedProgress renders a static progress bar on terminals and periodic log
// lines elsewhere.
type seedProgress struct {
	out        io.Writer
	bar        *progress.Model
	lastLogged int64
	drawn      bool
}

func newSeedProgress(out io.Writer, interactive bool) *seedProgress {
	p := &seedProgress{out: out}
	if interactive {
		bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
		p.bar = &bar
	}
	return p
}

func (p *seedProgress) update(label string, done, total int64) {
	if total <= 0 {
		return
	}
	if p.bar != nil {
		fmt.Fprintf(p.out, "\r%-12s %s %d/%d", label, p.bar.ViewAs(float64(done)/float64(total)), done, total)
		p.drawn = true
		return
	}
	if done == total || done-p.lastLogged >= progressLogStep {
		p.lastLogged = done
		logging.LogEvent("Seeded %d/%d %s records", done, total, label)
	}
}

func (p *seedProgress) finish() {
	if p.drawn {
		fmt.Fprintln(p.out)
	}
	p.drawn = false
	p.lastLogged = 0
}
