// internal/report/report.go
// Package report renders benchmark runs and comparison rows.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"github.com/mwiater/datebench/internal/metrics"
	"github.com/mwiater/datebench/internal/util"
	"gopkg.in/yaml.v3"
)

// Format selects the comparison output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format name. An empty name selects the table.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want table, json or yaml)", name)
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	slowerStyle = numberStyle.Foreground(lipgloss.Color("160"))
	fasterStyle = numberStyle.Foreground(lipgloss.Color("34"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

const maxLabelWidth = 48

var tableHeaders = []string{"(index)", "schema", "query", "indexed", "duration", "diff", "percentage"}

// Emitter writes per-run listings and comparison reports.
type Emitter struct {
	w      io.Writer
	format Format
	color  bool
}

// NewEmitter returns an Emitter writing to w. Colour is only applied when
// useColor is set.
func NewEmitter(w io.Writer, format Format, useColor bool) *Emitter {
	if format == "" {
		format = FormatTable
	}
	return &Emitter{w: w, format: format, color: useColor}
}

// Listing prints the durations of one finalized run.
func (e *Emitter) Listing(run metrics.Run) error {
	title := color.New(color.FgCyan, color.Bold)
	failed := color.New(color.FgRed)
	if !e.color {
		title.DisableColor()
		failed.DisableColor()
	}

	if _, err := fmt.Fprintf(e.w, "%s\n\n", title.Sprintf("Results %s:", run.Label)); err != nil {
		return err
	}
	for _, entry := range run.Entries {
		duration := util.FormatMillis(entry.Duration)
		if entry.Duration == metrics.Unavailable {
			duration = failed.Sprint(duration)
		}
		name := entry.Name
		if entry.Indexed {
			name += " (with date index)"
		}
		if _, err := fmt.Fprintf(e.w, "Query: %s, Duration: %s\n", name, duration); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(e.w)
	return err
}

// Emit renders rows in the emitter's format without reordering or
// filtering them.
func (e *Emitter) Emit(rows []metrics.ComparisonRow) error {
	switch e.format {
	case FormatJSON:
		return e.emitJSON(rows)
	case FormatYAML:
		return e.emitYAML(rows)
	default:
		return e.emitTable(rows)
	}
}

func (e *Emitter) emitJSON(rows []metrics.ComparisonRow) error {
	enc := json.NewEncoder(e.w)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("encode row %s/%s: %w", row.Representation, row.TrialID, err)
		}
	}
	return nil
}

func (e *Emitter) emitYAML(rows []metrics.ComparisonRow) error {
	if rows == nil {
		rows = []metrics.ComparisonRow{}
	}
	enc := yaml.NewEncoder(e.w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encode rows: %w", err)
	}
	return enc.Close()
}

func (e *Emitter) emitTable(rows []metrics.ComparisonRow) error {
	if _, err := fmt.Fprint(e.w, "\n-----------\nAll metrics:\n\n"); err != nil {
		return err
	}

	body := make([][]string, 0, len(rows))
	for i, row := range rows {
		body = append(body, []string{
			strconv.Itoa(i),
			row.Representation,
			util.TruncateRunes(row.Trial, maxLabelWidth),
			strconv.FormatBool(row.Indexed),
			util.FormatNumber(row.Duration),
			util.FormatNumber(row.Difference),
			row.Percentage,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(tableHeaders...).
		Rows(body...).
		StyleFunc(func(r, c int) lipgloss.Style {
			if r == table.HeaderRow {
				return headerStyle
			}
			if c < 4 {
				return cellStyle
			}
			if c == 6 && e.color && r < len(rows) {
				return percentageStyle(rows[r])
			}
			return numberStyle
		})

	_, err := fmt.Fprintln(e.w, t.Render())
	return err
}

func percentageStyle(row metrics.ComparisonRow) lipgloss.Style {
	switch {
	case row.Counterpart == nil:
		return numberStyle
	case row.Difference > 0:
		return slowerStyle
	case row.Difference < 0:
		return fasterStyle
	default:
		return numberStyle
	}
}
