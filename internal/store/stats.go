package store

import (
	"context"
	"os"
	"time"

	"github.com/gravity-note/gravity-note/internal/model"
	"github.com/gravity-note/gravity-note/internal/temporal"
)

// Stats holds per-user note statistics.
type Stats struct {
	DBPath        string                  `json:"db_path,omitempty"`
	DBSizeBytes   int64                   `json:"db_size_bytes,omitempty"`
	UserID        string                  `json:"user_id"`
	TotalNotes    int                     `json:"total_notes"`
	RescuedNotes  int                     `json:"rescued_notes"`
	TimeGroups    map[model.TimeGroup]int `json:"time_groups"`
	LastUpdatedAt *time.Time              `json:"last_updated_at,omitempty"`
}

// Stats returns statistics for one user's notes, bucketed relative to now.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath, userID string, now time.Time) (*Stats, error) {
	if userID == "" {
		return nil, ErrNoUser
	}
	st := &Stats{DBPath: dbPath, UserID: userID, TimeGroups: emptyGroupCounts()}

	if dbPath != "" && dbPath != MemoryPath {
		if info, err := os.Stat(dbPath); err == nil {
			st.DBSizeBytes = info.Size()
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT updated_at, is_rescued FROM notes WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	b := temporal.ComputeBoundaries(now)
	for rows.Next() {
		var updated string
		var rescued bool
		if err := rows.Scan(&updated, &rescued); err != nil {
			return nil, err
		}
		st.add(temporal.ParseTimestamp(updated), rescued, b)
	}
	return st, rows.Err()
}

func (st *Stats) add(updatedAt time.Time, rescued bool, b temporal.Boundaries) {
	st.TotalNotes++
	if rescued {
		st.RescuedNotes++
	}
	st.TimeGroups[temporal.Classify(updatedAt, b)]++
	if st.LastUpdatedAt == nil || updatedAt.After(*st.LastUpdatedAt) {
		t := updatedAt
		st.LastUpdatedAt = &t
	}
}

func emptyGroupCounts() map[model.TimeGroup]int {
	counts := make(map[model.TimeGroup]int, len(model.TemporalGroups))
	for _, g := range model.TemporalGroups {
		counts[g] = 0
	}
	return counts
}
