// internal/schema/schema.go
// Package schema defines the two date representations under test, how their
// documents are encoded, and the query battery run against each.
package schema

import (
	"strings"
	"time"

	"github.com/mwiater/datebench/internal/benchmark"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	// DateField is the document field holding the temporal value.
	DateField = "date"
	// PlainLayout is an ISO-8601 UTC timestamp without the zone designator.
	PlainLayout = "2006-01-02T15:04:05.000"
)

// Schema couples a representation with its collection, document encoding
// and trial battery.
type Schema struct {
	Representation benchmark.Representation
	Collection     string
	Encode         func(t time.Time) any
	Battery        func() []benchmark.Trial
}

var (
	// PlainDate stores dates as strings.
	PlainDate = Schema{
		Representation: benchmark.Representation{Tag: "plain", Label: "Plain Date"},
		Collection:     "plaindates",
		Encode:         encodePlain,
		Battery:        plainBattery,
	}

	// NormalDate stores dates as BSON datetimes.
	NormalDate = Schema{
		Representation: benchmark.Representation{Tag: "native", Label: "Normal Date"},
		Collection:     "normaldates",
		Encode:         encodeNative,
		Battery:        nativeBattery,
	}
)

// All returns the schemas in benchmark order.
func All() []Schema {
	return []Schema{PlainDate, NormalDate}
}

// Lookup finds a schema by tag or label, case-insensitively.
func Lookup(name string) (Schema, bool) {
	name = strings.TrimSpace(name)
	for _, s := range All() {
		if strings.EqualFold(s.Representation.Tag, name) || strings.EqualFold(s.Representation.Label, name) {
			return s, true
		}
	}
	return Schema{}, false
}

// FormatPlain renders t the way the plain representation stores it.
func FormatPlain(t time.Time) string {
	return t.UTC().Format(PlainLayout)
}

func encodePlain(t time.Time) any {
	return bson.D{{Key: DateField, Value: FormatPlain(t)}}
}

func encodeNative(t time.Time) any {
	return bson.D{{Key: DateField, Value: t.UTC()}}
}
