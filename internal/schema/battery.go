// internal/schema/battery.go
package schema

import (
	"time"

	"github.com/mwiater/datebench/internal/benchmark"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Logical query ids shared by both batteries.
const (
	SpecificYear     = "specific-year"
	SpecificMonth    = "specific-month"
	SpecificDay      = "specific-day"
	SpecificDateTime = "specific-datetime"
	DateTimeRange    = "datetime-range"
)

var trialNames = map[string]string{
	SpecificYear:     "querying specific year",
	SpecificMonth:    "querying specific year, month",
	SpecificDay:      "querying specific year, month, date",
	SpecificDateTime: "querying specific date time",
	DateTimeRange:    "querying date time range",
}

// pair returns the unindexed and indexed trials of one query, in that order.
func pair(id string, filter bson.D) []benchmark.Trial {
	return []benchmark.Trial{
		{ID: id, Name: trialNames[id], Predicate: filter},
		{ID: id, Name: trialNames[id], Predicate: filter, UseIndex: true},
	}
}

func prefix(pattern string) bson.D {
	return bson.D{{Key: DateField, Value: primitive.Regex{Pattern: pattern}}}
}

func between(op string, from, to any) bson.D {
	return bson.D{{Key: DateField, Value: bson.D{
		{Key: "$gte", Value: from},
		{Key: op, Value: to},
	}}}
}

func utc(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func plainBattery() []benchmark.Trial {
	var trials []benchmark.Trial
	trials = append(trials, pair(SpecificYear, prefix(`^2021.*`))...)
	trials = append(trials, pair(SpecificMonth, prefix(`^2021-01.*`))...)
	trials = append(trials, pair(SpecificDay, prefix(`^2021-01-01.*`))...)
	trials = append(trials, pair(SpecificDateTime, prefix(`^2021-01-01T00:00:00*`))...)
	trials = append(trials, pair(DateTimeRange, between("$lte", "2024-01-01T00:00:00", "2024-02-01T00:00:00"))...)
	return trials
}

// nativeBattery mirrors plainBattery with time bounds. The date-time range
// uses the same 2024-01-01 .. 2024-02-01 window and inclusive upper bound as
// the plain battery so both representations select the same rows.
func nativeBattery() []benchmark.Trial {
	var trials []benchmark.Trial
	trials = append(trials, pair(SpecificYear, between("$lt", utc(2021, time.January, 1), utc(2022, time.January, 1)))...)
	trials = append(trials, pair(SpecificMonth, between("$lt", utc(2021, time.January, 1), utc(2021, time.February, 1)))...)
	trials = append(trials, pair(SpecificDay, between("$lt", utc(2021, time.January, 1), utc(2021, time.January, 2)))...)
	trials = append(trials, pair(SpecificDateTime, bson.D{{Key: DateField, Value: utc(2021, time.January, 1)}})...)
	trials = append(trials, pair(DateTimeRange, between("$lte", utc(2024, time.January, 1), utc(2024, time.February, 1)))...)
	return trials
}
