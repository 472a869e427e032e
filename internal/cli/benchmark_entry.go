// internal/cli/benchmark_entry.go
package datebench

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/mwiater/datebench/internal/appconfig"
	"github.com/mwiater/datebench/internal/benchmark"
	"github.com/mwiater/datebench/internal/logging"
	"github.com/mwiater/datebench/internal/metrics"
	"github.com/mwiater/datebench/internal/report"
)

// runBenchmark connects to MongoDB and runs the benchmark.
func runBenchmark(ctx context.Context, out, errOut io.Writer, cfg *appconfig.Config) error {
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

	return executeBenchmark(ctx, out, errOut, cfg, b)
}

// executeBenchmark runs each selected battery in order, prints one listing per
// run and then the comparison of all runs. Listings go to errOut when the
// report is machine-readable so stdout stays parseable.
func executeBenchmark(ctx context.Context, out, errOut io.Writer, cfg *appconfig.Config, b backend) error {
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	schemas, err := selectSchemas(cfg.Only)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logging.LogEvent("Benchmark run %s (%d representation(s), timeout=%s)", runID, len(schemas), cfg.TrialTimeoutDuration())

	useColor := writerIsTerminal(out)
	listingOut := out
	if format != report.FormatTable {
		listingOut = errOut
		useColor = writerIsTerminal(errOut)
	}
	listing := report.NewEmitter(listingOut, format, useColor)

	recorder := metrics.NewRecorder()
	runner := benchmark.NewRunner(recorder, cfg.TrialTimeoutDuration())
	runner.Debug = cfg.Debug

	for _, s := range schemas {
		run := runner.RunBattery(ctx, s.Representation, b.Adapter(s), s.Battery())
		if err := listing.Listing(run); err != nil {
			return fmt.Errorf("write listing: %w", err)
		}
	}

	rows := metrics.Compare(recorder.Runs())
	if err := report.NewEmitter(out, format, writerIsTerminal(out)).Emit(rows); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if cfg.MetricsFile != "" {
		exporter := metrics.NewExporter(runID)
		exporter.Observe(rows)
		if err := exporter.WriteFile(cfg.MetricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		logging.LogEvent("Metrics written to %s", cfg.MetricsFile)
	}

	if ctx.Err() != nil {
		return fmt.Errorf("benchmark interrupted: %w", ctx.Err())
	}
	return nil
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}
