// internal/metrics/compare.go
package metrics

import "fmt"

// NotAvailable is the percentage shown for rows without a counterpart.
const NotAvailable = "N/A"

type flatRow struct {
	representation string
	entry          Entry
}

// Compare flattens runs (run order, then entry order) and joins every row
// with the first row of a different representation sharing its key.
//
// The percentage is relative to the row's own duration, so the two rows of a
// pair are not symmetric. A zero duration divides by zero and the resulting
// Inf or NaN is reported as is.
func Compare(runs []Run) []ComparisonRow {
	var flat []flatRow
	for _, run := range runs {
		for _, entry := range run.Entries {
			flat = append(flat, flatRow{representation: run.Label, entry: entry})
		}
	}

	rows := make([]ComparisonRow, 0, len(flat))
	for _, current := range flat {
		row := ComparisonRow{
			Representation: current.representation,
			TrialID:        current.entry.ID,
			Trial:          current.entry.Name,
			Indexed:        current.entry.Indexed,
			Duration:       current.entry.Duration,
			Percentage:     NotAvailable,
		}

		if other, ok := counterpart(flat, current); ok {
			counter := other.entry.Duration
			row.Counterpart = &counter
			row.Difference = current.entry.Duration - counter
			row.Percentage = Percentage(row.Difference, current.entry.Duration)
		}

		rows = append(rows, row)
	}
	return rows
}

func counterpart(flat []flatRow, current flatRow) (flatRow, bool) {
	for _, candidate := range flat {
		if candidate.entry.Key == current.entry.Key && candidate.representation != current.representation {
			return candidate, true
		}
	}
	return flatRow{}, false
}

// Percentage formats difference relative to base with two decimals.
func Percentage(difference, base float64) string {
	return fmt.Sprintf("%.2f%%", difference/base*100)
}
