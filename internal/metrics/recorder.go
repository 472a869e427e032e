// internal/metrics/recorder.go
package metrics

// Recorder accumulates trial durations for one representation at a time and
// keeps every finalized run.
//
// A Recorder is owned by the sequential benchmark loop; it is not safe for
// concurrent use.
type Recorder struct {
	entries []Entry
	index   map[Key]int
	dirty   bool

	runs     []Run
	runIndex map[string]int
	last     *Run
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		index:    make(map[Key]int),
		runIndex: make(map[string]int),
	}
}

// Record inserts or overwrites the duration for key. An overwrite keeps the
// entry's original position.
func (r *Recorder) Record(key Key, name string, duration float64) {
	r.dirty = true
	entry := Entry{Key: key, Name: name, Duration: duration}
	if i, ok := r.index[key]; ok {
		r.entries[i] = entry
		return
	}
	r.index[key] = len(r.entries)
	r.entries = append(r.entries, entry)
}

// Len reports the number of entries recorded since the last Finalize.
func (r *Recorder) Len() int {
	return len(r.entries)
}

// Finalize stores the current entries under label, clears them, and returns
// the stored run. Finalizing the same label again with nothing recorded in
// between re-emits the previous snapshot; any other label gets the current,
// possibly empty, entries. Finalizing under a label that already exists
// replaces that run in place.
func (r *Recorder) Finalize(label string) Run {
	var entries []Entry
	if !r.dirty && r.last != nil && r.last.Label == label {
		entries = append([]Entry(nil), r.last.Entries...)
	} else {
		entries = append([]Entry(nil), r.entries...)
	}

	run := Run{Label: label, Entries: entries}
	if i, ok := r.runIndex[label]; ok {
		r.runs[i] = run
	} else {
		r.runIndex[label] = len(r.runs)
		r.runs = append(r.runs, run)
	}

	r.last = &run
	r.entries = nil
	r.index = make(map[Key]int)
	r.dirty = false

	return cloneRun(run)
}

// Runs returns copies of all finalized runs in the order they were first
// finalized.
func (r *Recorder) Runs() []Run {
	out := make([]Run, 0, len(r.runs))
	for _, run := range r.runs {
		out = append(out, cloneRun(run))
	}
	return out
}

func cloneRun(run Run) Run {
	return Run{Label: run.Label, Entries: append([]Entry(nil), run.Entries...)}
}
