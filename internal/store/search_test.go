package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestMatchNormalized(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Append(ctx, AppendParams{UserID: "u1", Title: "Project Alpha", Content: "kickoff"})
	s.Append(ctx, AppendParams{UserID: "u1", Title: "project plan", Content: "milestones"})
	s.Append(ctx, AppendParams{UserID: "u1", Content: "unrelated"})
	s.Append(ctx, AppendParams{UserID: "u2", Title: "Project Secret", Content: "not yours"})

	notes, err := s.MatchNormalized(ctx, "u1", Contains("PROJ"), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 results, got %d", len(notes))
	}
	if notes[0].Title != "project plan" {
		t.Errorf("expected most recent first, got %q", notes[0].Title)
	}
	for _, n := range notes {
		if n.UserID != "u1" {
			t.Fatalf("cross-user leak: %+v", n)
		}
	}
}

func TestMatchNormalizedIgnoresInvisibleCharacters(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Append(ctx, AppendParams{UserID: "u1", Content: "meet\u200bing notes"})

	raw, _ := s.MatchRaw(ctx, "u1", Contains("meeting"), 10)
	if len(raw) != 0 {
		t.Errorf("raw columns should not match through a zero-width space, got %d", len(raw))
	}
	norm, _ := s.MatchNormalized(ctx, "u1", Contains("meeting"), 10)
	if len(norm) != 1 {
		t.Errorf("expected normalized match, got %d", len(norm))
	}
}

func TestMatchEscapesLikeWildcards(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Append(ctx, AppendParams{UserID: "u1", Content: "100% done"})
	s.Append(ctx, AppendParams{UserID: "u1", Content: "1000 items"})
	s.Append(ctx, AppendParams{UserID: "u1", Content: "snake_case"})
	s.Append(ctx, AppendParams{UserID: "u1", Content: "snakeXcase"})

	tests := []struct {
		q    string
		want int
	}{
		{"100%", 1},
		{"snake_case", 1},
		{`\`, 0},
		{"%", 1},
		{"_", 1},
	}
	for _, tt := range tests {
		notes, err := s.MatchRaw(ctx, "u1", Contains(tt.q), 10)
		if err != nil {
			t.Fatalf("MatchRaw(%q): %v", tt.q, err)
		}
		if len(notes) != tt.want {
			t.Errorf("MatchRaw(%q): expected %d, got %d", tt.q, tt.want, len(notes))
		}
	}
}

func TestMatchLoosePattern(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Append(ctx, AppendParams{UserID: "u1", Content: "a-b-c separated"})
	s.Append(ctx, AppendParams{UserID: "u1", Content: "cba reversed"})

	notes, err := s.MatchRaw(ctx, "u1", Loose("abc"), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 1 || notes[0].Content != "a-b-c separated" {
		t.Fatalf("expected only the in-order match, got %+v", notes)
	}
}

func TestMatchRawFindsRowsWithoutNormalizedColumns(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.db.Exec(`INSERT INTO notes (id, user_id, title, content, created_at, updated_at, is_rescued)
		VALUES ('legacy', 'u1', 'Legacy', 'written before normalization', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z', 0)`)
	if err != nil {
		t.Fatal(err)
	}

	if notes, _ := s.MatchNormalized(ctx, "u1", Contains("legacy"), 10); len(notes) != 0 {
		t.Fatalf("expected no normalized match before backfill, got %d", len(notes))
	}
	if notes, _ := s.MatchRaw(ctx, "u1", Contains("legacy"), 10); len(notes) != 1 {
		t.Fatalf("expected raw match, got %d", len(notes))
	}

	n, err := s.Normalize(ctx, "u1")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 row backfilled, got %d", n)
	}
	if notes, _ := s.MatchNormalized(ctx, "u1", Contains("legacy"), 10); len(notes) != 1 {
		t.Errorf("expected normalized match after backfill, got %d", len(notes))
	}
}

func TestNormalizeScopedToUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, user := range []string{"u1", "u2"} {
		_, err := s.db.Exec(`INSERT INTO notes (id, user_id, title, content, created_at, updated_at, is_rescued)
			VALUES (?, ?, 'Legacy', 'written before normalization', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z', 0)`,
			"legacy-"+user, user)
		if err != nil {
			t.Fatal(err)
		}
	}

	if _, err := s.Normalize(ctx, ""); !errors.Is(err, ErrNoUser) {
		t.Errorf("expected ErrNoUser, got %v", err)
	}

	n, err := s.Normalize(ctx, "u1")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 row backfilled, got %d", n)
	}

	var pending int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM notes WHERE user_id = 'u2' AND content_normalized IS NULL`).Scan(&pending); err != nil {
		t.Fatal(err)
	}
	if pending != 1 {
		t.Errorf("expected u2 row untouched, got %d pending", pending)
	}
	if notes, _ := s.MatchNormalized(ctx, "u2", Contains("legacy"), 10); len(notes) != 0 {
		t.Errorf("expected no normalized match for u2, got %d", len(notes))
	}

	if n, _ := s.Normalize(ctx, "u1"); n != 0 {
		t.Errorf("expected second run to be a no-op, got %d", n)
	}
}

func TestMatchEmptyPattern(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.Append(ctx, AppendParams{UserID: "u1", Content: "anything"})

	notes, err := s.MatchRaw(ctx, "u1", nil, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 0 {
		t.Errorf("expected empty pattern to match nothing, got %d", len(notes))
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath, WithClock(testClock(testStart)))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	a, _ := s.Append(ctx, AppendParams{UserID: "u1", Content: "hello"})
	s.Append(ctx, AppendParams{UserID: "u1", Content: "world"})
	s.Rescue(ctx, "u1", a.ID)
	s.Append(ctx, AppendParams{UserID: "u2", Content: "other"})

	st, err := s.Stats(ctx, dbPath, "u1", testStart.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if st.TotalNotes != 3 {
		t.Fatalf("expected 3 notes, got %d", st.TotalNotes)
	}
	if st.RescuedNotes != 1 {
		t.Errorf("expected 1 rescued, got %d", st.RescuedNotes)
	}
	if st.TimeGroups["yesterday"] != 3 {
		t.Errorf("expected all notes in yesterday bucket, got %v", st.TimeGroups)
	}
	if st.DBSizeBytes == 0 {
		t.Error("expected non-zero db size")
	}

	later, _ := s.Stats(ctx, dbPath, "u1", testStart.AddDate(0, 2, 0))
	if later.TimeGroups["earlier"] != 3 {
		t.Errorf("expected notes to age into earlier, got %v", later.TimeGroups)
	}
}

func TestExportImport(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	s1, _ := NewSQLiteStore(filepath.Join(dir, "src.db"), WithClock(testClock(testStart)))
	defer s1.Close()

	a, _ := s1.Append(ctx, AppendParams{UserID: "u1", Title: "A", Content: "alpha"})
	s1.Append(ctx, AppendParams{UserID: "u1", Content: "beta"})
	s1.Rescue(ctx, "u1", a.ID)
	s1.Append(ctx, AppendParams{UserID: "u2", Content: "gamma"})

	exported, err := s1.ExportAll(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(exported) != 3 {
		t.Fatalf("expected 3 exported, got %d", len(exported))
	}

	s2, _ := NewSQLiteStore(filepath.Join(dir, "dst.db"))
	defer s2.Close()

	n, err := s2.Import(ctx, "u9", exported)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("expected 3 imported, got %d", n)
	}
	again, _ := s2.Import(ctx, "u9", exported)
	if again != 0 {
		t.Errorf("expected duplicates skipped, got %d", again)
	}

	notes, _ := s2.FetchRecent(ctx, "u9", 10)
	if len(notes) != 3 {
		t.Fatalf("expected 3 notes after import, got %d", len(notes))
	}
	for i := range notes {
		if notes[i].ID != exported[i].ID || !notes[i].UpdatedAt.Equal(exported[i].UpdatedAt) {
			t.Errorf("note %d not preserved: %+v vs %+v", i, notes[i], exported[i])
		}
		if notes[i].IsRescued != exported[i].IsRescued || notes[i].OriginalNoteID != exported[i].OriginalNoteID {
			t.Errorf("lineage not preserved for %s", notes[i].ID)
		}
	}
}
