// internal/metrics/export.go
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Exporter publishes comparison rows as Prometheus gauges in a private
// registry that can be written out for the node-exporter textfile collector.
type Exporter struct {
	Registry   *prometheus.Registry
	Duration   *prometheus.GaugeVec
	Difference *prometheus.GaugeVec
	Failures   *prometheus.CounterVec
	runID      string
}

var exportLabels = []string{"run_id", "representation", "trial", "indexed"}

// NewExporter creates an Exporter whose series carry runID.
func NewExporter(runID string) *Exporter {
	reg := prometheus.NewRegistry()

	duration := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "datebench_trial_duration_milliseconds",
		Help: "Planner-reported execution time of a trial; -1 when unavailable.",
	}, exportLabels)

	difference := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "datebench_trial_difference_milliseconds",
		Help: "Trial duration minus the counterpart representation's duration.",
	}, exportLabels)

	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "datebench_trial_unavailable_total",
		Help: "Trials whose timing could not be measured.",
	}, []string{"run_id", "representation"})

	reg.MustRegister(duration, difference, failures)

	return &Exporter{
		Registry:   reg,
		Duration:   duration,
		Difference: difference,
		Failures:   failures,
		runID:      runID,
	}
}

// Observe sets one gauge sample per row.
func (e *Exporter) Observe(rows []ComparisonRow) {
	for _, row := range rows {
		labels := prometheus.Labels{
			"run_id":         e.runID,
			"representation": row.Representation,
			"trial":          row.TrialID,
			"indexed":        strconv.FormatBool(row.Indexed),
		}
		e.Duration.With(labels).Set(row.Duration)
		if row.Counterpart != nil {
			e.Difference.With(labels).Set(row.Difference)
		}
		if row.Duration == Unavailable {
			e.Failures.WithLabelValues(e.runID, row.Representation).Inc()
		}
	}
}

// WriteFile writes the registry in the text exposition format.
func (e *Exporter) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create metrics directory: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, e.Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
