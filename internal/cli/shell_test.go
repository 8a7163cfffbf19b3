package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/gravity-note/gravity-note/internal/auth"
	"github.com/gravity-note/gravity-note/internal/model"
	"github.com/gravity-note/gravity-note/internal/search"
	"github.com/gravity-note/gravity-note/internal/searchstate"
	"github.com/gravity-note/gravity-note/internal/store"
)

var shellNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestShell(t *testing.T, text bool, notes ...model.Note) (*shell, *bytes.Buffer) {
	t.Helper()
	m := store.NewMemoryStore(func() time.Time { return shellNow })
	m.Seed(notes...)
	var out bytes.Buffer
	opts := model.DefaultOptions()
	return &shell{
		svc:  search.NewService(m, search.WithClock(func() time.Time { return shellNow })),
		opts: &opts,
		out:  &out,
		text: text,
	}, &out
}

func shellNote(id, title, content string, age time.Duration) model.Note {
	ts := shellNow.Add(-age)
	return model.Note{ID: id, UserID: "u1", Title: title, Content: content, CreatedAt: ts, UpdatedAt: ts}
}

func TestShellTextSearch(t *testing.T) {
	sh, out := newTestShell(t, true,
		shellNote("n1", "Project Alpha", "kickoff", time.Hour),
		shellNote("n2", "Groceries", "milk", 40*24*time.Hour),
	)
	ctx := auth.WithUser(context.Background(), "u1")

	if err := sh.run(ctx, strings.NewReader("proj\n\n:q\nignored\n")); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{"Yesterday (1)", "Project Alpha", "1 notes", "Earlier (1)", "2 notes"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "ignored") {
		t.Error("input after :q should not be read")
	}
	if s := sh.tracker.Snapshot(); s.Status != searchstate.StatusSuccess || s.Query != "" {
		t.Errorf("expected last browse to be tracked, got %+v", s)
	}
}

func TestShellJSON(t *testing.T) {
	sh, out := newTestShell(t, false, shellNote("n1", "", "budget review", time.Minute))
	ctx := auth.WithUser(context.Background(), "u1")

	if err := sh.run(ctx, strings.NewReader("budget")); err != nil {
		t.Fatal(err)
	}
	body := out.String()
	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")
	if start < 0 || end < start {
		t.Fatalf("no JSON in output: %q", body)
	}
	var resp model.UnifiedNotesResponse
	if err := json.Unmarshal([]byte(body[start:end+1]), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TotalNotes != 1 || resp.Metadata.Mode != model.ModeSearch {
		t.Errorf("unexpected response %+v", resp)
	}
	if got := resp.Sections[0].Notes[0].HighlightedContent; got != "<mark>budget</mark> review" {
		t.Errorf("unexpected highlight %q", got)
	}
}

func TestShellReportsErrors(t *testing.T) {
	sh, out := newTestShell(t, true)
	if err := sh.run(context.Background(), strings.NewReader("anything\n")); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "error: "+auth.ErrAuthRequired.Error()) {
		t.Errorf("expected auth error in output, got %q", out.String())
	}
	if s := sh.tracker.Snapshot(); s.Status != searchstate.StatusError {
		t.Errorf("expected error state, got %s", s.Status)
	}
}
