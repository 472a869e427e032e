// internal/benchmark/runner.go
package benchmark

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/k0kubun/pp"
	"github.com/mwiater/datebench/internal/logging"
	"github.com/mwiater/datebench/internal/metrics"
)

// ErrSkipped marks trials that never ran because the battery was cancelled.
var ErrSkipped = errors.New("trial skipped: battery cancelled")

// Runner executes trials one at a time into a Recorder.
type Runner struct {
	Recorder *metrics.Recorder
	// Timeout bounds each trial; zero disables it.
	Timeout time.Duration
	Debug   bool
}

// NewRunner creates a Runner writing into recorder.
func NewRunner(recorder *metrics.Recorder, timeout time.Duration) *Runner {
	if recorder == nil {
		recorder = metrics.NewRecorder()
	}
	return &Runner{Recorder: recorder, Timeout: timeout}
}

// RunTrial applies the trial's index state, measures its predicate and
// records the result. Failures are recorded as metrics.Unavailable and
// returned for logging only; callers continue with the next trial.
func (r *Runner) RunTrial(ctx context.Context, rep Representation, adapter Adapter, trial Trial) (float64, error) {
	duration, measurement, err := r.measure(ctx, adapter, trial)
	r.Recorder.Record(trial.Key(), trial.Name, duration)

	if err != nil {
		logging.LogTrial(rep.Label, trial.Name, trial.UseIndex, duration, err)
		return duration, err
	}

	logging.LogTrial(rep.Label, trial.Name, trial.UseIndex, duration, measurement)
	if r.Debug {
		logging.LogEvent("[DEBUG] %s", pp.Sprint(measurement))
	}
	return duration, nil
}

func (r *Runner) measure(ctx context.Context, adapter Adapter, trial Trial) (float64, Measurement, error) {
	if err := ctx.Err(); err != nil {
		return metrics.Unavailable, Measurement{}, fmt.Errorf("%w: %v", ErrSkipped, err)
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	if err := adapter.SetIndexed(ctx, trial.UseIndex); err != nil {
		return metrics.Unavailable, Measurement{}, fmt.Errorf("set index state to %t: %w", trial.UseIndex, err)
	}

	measurement, err := adapter.Measure(ctx, trial.Predicate)
	if err != nil {
		return metrics.Unavailable, Measurement{}, fmt.Errorf("measure %q: %w", trial.Name, err)
	}
	if err := ctx.Err(); err != nil {
		return metrics.Unavailable, Measurement{}, fmt.Errorf("measure %q: %w", trial.Name, err)
	}
	if measurement.Millis < 0 {
		return metrics.Unavailable, measurement, fmt.Errorf("measure %q: negative execution time %v", trial.Name, measurement.Millis)
	}

	return measurement.Millis, measurement, nil
}

// RunBattery runs trials strictly in order and finalizes the recorder under
// the representation's label. Every trial is recorded, so the returned run
// always has one entry per distinct trial key.
func (r *Runner) RunBattery(ctx context.Context, rep Representation, adapter Adapter, trials []Trial) metrics.Run {
	logging.LogEvent("Running %d trials for %s", len(trials), rep.Label)

	failed := 0
	for _, trial := range trials {
		if _, err := r.RunTrial(ctx, rep, adapter, trial); err != nil {
			failed++
		}
	}

	if failed > 0 {
		logging.LogEvent("%s finished with %d unavailable measurement(s)", rep.Label, failed)
	}
	return r.Recorder.Finalize(rep.Label)
}
