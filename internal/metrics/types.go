// internal/metrics/types.go
package metrics

// Unavailable is recorded when a trial could not produce a planner timing.
const Unavailable = -1.0

// Key identifies one measurement within a run: a logical query and whether
// the supporting index was present when it ran.
type Key struct {
	ID      string `json:"id" yaml:"id"`
	Indexed bool   `json:"indexed" yaml:"indexed"`
}

// Entry is a single recorded duration.
type Entry struct {
	Key
	Name     string  `json:"name" yaml:"name"`
	Duration float64 `json:"duration_ms" yaml:"duration_ms"`
}

// Run is the finalized set of entries for one representation, in record order.
type Run struct {
	Label   string  `json:"label" yaml:"label"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// ComparisonRow is one representation's measurement joined against the
// first matching measurement of another representation.
type ComparisonRow struct {
	Representation string   `json:"representation" yaml:"representation"`
	TrialID        string   `json:"trial_id" yaml:"trial_id"`
	Trial          string   `json:"trial" yaml:"trial"`
	Indexed        bool     `json:"indexed" yaml:"indexed"`
	Duration       float64  `json:"duration_ms" yaml:"duration_ms"`
	Counterpart    *float64 `json:"counterpart_ms" yaml:"counterpart_ms"`
	Difference     float64  `json:"difference_ms" yaml:"difference_ms"`
	Percentage     string   `json:"percentage" yaml:"percentage"`
}
