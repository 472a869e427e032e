package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mwiater/datebench/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleRows() []metrics.ComparisonRow {
	return metrics.Compare([]metrics.Run{
		{Label: "Plain Date", Entries: []metrics.Entry{
			{Key: metrics.Key{ID: "year"}, Name: "querying specific year", Duration: 100},
			{Key: metrics.Key{ID: "only-plain"}, Name: "plain only", Duration: 3},
		}},
		{Label: "Normal Date", Entries: []metrics.Entry{
			{Key: metrics.Key{ID: "year"}, Name: "querying specific year", Duration: 80},
		}},
	})
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatTable, "TABLE": FormatTable, " json ": FormatJSON, "yaml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestEmitTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewEmitter(&buf, FormatTable, false).Emit(sampleRows()))

	out := buf.String()
	assert.Contains(t, out, "All metrics:")
	for _, h := range tableHeaders {
		assert.Contains(t, out, h)
	}
	assert.Contains(t, out, "20.00%")
	assert.Contains(t, out, "-25.00%")
	assert.Contains(t, out, "N/A")

	plain := strings.Index(out, "plain only")
	normal := strings.Index(out, "Normal Date")
	require.NotEqual(t, -1, plain)
	require.NotEqual(t, -1, normal)
	assert.Less(t, plain, normal, "rows must keep flattening order")
}

func TestEmitJSONLines(t *testing.T) {
	var buf bytes.Buffer
	rows := sampleRows()
	require.NoError(t, NewEmitter(&buf, FormatJSON, false).Emit(rows))

	scanner := bufio.NewScanner(&buf)
	var decoded []metrics.ComparisonRow
	for scanner.Scan() {
		var row metrics.ComparisonRow
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &row))
		decoded = append(decoded, row)
	}
	require.Len(t, decoded, len(rows))
	for i := range rows {
		assert.Equal(t, rows[i].Representation, decoded[i].Representation)
		assert.Equal(t, rows[i].Percentage, decoded[i].Percentage)
	}
	assert.Nil(t, decoded[1].Counterpart)
}

func TestEmitYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewEmitter(&buf, FormatYAML, false).Emit(sampleRows()))

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, "Plain Date", decoded[0]["representation"])
	assert.Equal(t, "N/A", decoded[1]["percentage"])
	assert.Equal(t, "Normal Date", decoded[2]["representation"])
}

func TestListing(t *testing.T) {
	var buf bytes.Buffer
	run := metrics.Run{Label: "Plain Date", Entries: []metrics.Entry{
		{Key: metrics.Key{ID: "year"}, Name: "querying specific year", Duration: 12},
		{Key: metrics.Key{ID: "year", Indexed: true}, Name: "querying specific year", Duration: metrics.Unavailable},
	}}
	require.NoError(t, NewEmitter(&buf, FormatTable, false).Listing(run))

	want := "Results Plain Date:\n\n" +
		"Query: querying specific year, Duration: 12ms\n" +
		"Query: querying specific year (with date index), Duration: -1ms\n\n"
	assert.Equal(t, want, buf.String())
}
