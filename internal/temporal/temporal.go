// Package temporal classifies note timestamps into time groups relative to now.
package temporal

import (
	"time"

	"github.com/gravity-note/gravity-note/internal/model"
)

// Epoch is the timestamp substituted for missing or unparseable values.
var Epoch = time.Unix(0, 0).UTC()

// Boundaries holds the inclusive lower bound of each recent time group.
type Boundaries struct {
	Yesterday time.Time
	LastWeek  time.Time
	LastMonth time.Time
}

// ComputeBoundaries returns the group boundaries for now. Each boundary is the
// start of day in now's location, 1, 7 and 30 calendar days back.
func ComputeBoundaries(now time.Time) Boundaries {
	return Boundaries{
		Yesterday: startOfDay(now.AddDate(0, 0, -1)),
		LastWeek:  startOfDay(now.AddDate(0, 0, -7)),
		LastMonth: startOfDay(now.AddDate(0, 0, -30)),
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Classify assigns updatedAt to a time group. The first matching boundary
// wins; a zero timestamp is treated as Epoch.
func Classify(updatedAt time.Time, b Boundaries) model.TimeGroup {
	if updatedAt.IsZero() {
		updatedAt = Epoch
	}
	switch {
	case !updatedAt.Before(b.Yesterday):
		return model.TimeGroupYesterday
	case !updatedAt.Before(b.LastWeek):
		return model.TimeGroupLastWeek
	case !updatedAt.Before(b.LastMonth):
		return model.TimeGroupLastMonth
	default:
		return model.TimeGroupEarlier
	}
}

var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses s in any of the formats written by SQLite, Postgres
// and Go. Empty or unparseable input yields Epoch rather than an error.
func ParseTimestamp(s string) time.Time {
	if s == "" {
		return Epoch
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return Epoch
}

// OrEpoch returns t, or Epoch when t is the zero time.
func OrEpoch(t time.Time) time.Time {
	if t.IsZero() {
		return Epoch
	}
	return t
}
