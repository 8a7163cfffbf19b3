package search

import (
	"context"
	"sync"
	"time"

	"github.com/gravity-note/gravity-note/internal/auth"
	"github.com/gravity-note/gravity-note/internal/model"
	"github.com/gravity-note/gravity-note/internal/store"
)

var fixedNow = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func userCtx(id string) context.Context {
	return auth.WithUser(context.Background(), id)
}

type call struct {
	method  string
	userID  string
	pattern store.Pattern
	limit   int
}

// fakeClient is a store.Client whose answers are scripted per method and
// which records every call.
type fakeClient struct {
	mu         sync.Mutex
	calls      []call
	normalized func(p store.Pattern) []model.Note
	raw        func(p store.Pattern) []model.Note
	recent     []model.Note
	err        error
}

func (f *fakeClient) record(c call) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
}

func (f *fakeClient) MatchNormalized(ctx context.Context, userID string, p store.Pattern, limit int) ([]model.Note, error) {
	f.record(call{"normalized", userID, p, limit})
	if f.err != nil {
		return nil, f.err
	}
	if f.normalized == nil {
		return nil, nil
	}
	return f.normalized(p), nil
}

func (f *fakeClient) MatchRaw(ctx context.Context, userID string, p store.Pattern, limit int) ([]model.Note, error) {
	f.record(call{"raw", userID, p, limit})
	if f.err != nil {
		return nil, f.err
	}
	if f.raw == nil {
		return nil, nil
	}
	return f.raw(p), nil
}

func (f *fakeClient) FetchRecent(ctx context.Context, userID string, limit int) ([]model.Note, error) {
	f.record(call{"recent", userID, nil, limit})
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.recent) {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func (f *fakeClient) methods() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.calls {
		out = append(out, c.method)
	}
	return out
}

func note(id, title, content string, updated time.Time) model.Note {
	return model.Note{
		ID:        id,
		UserID:    "u1",
		Title:     title,
		Content:   content,
		CreatedAt: updated,
		UpdatedAt: updated,
	}
}

// spread returns notes updated at increasing ages relative to fixedNow,
// covering every temporal group.
func spread() []model.Note {
	return []model.Note{
		note("n1", "", "an hour ago", fixedNow.Add(-time.Hour)),
		note("n2", "", "yesterday morning", time.Date(2024, 3, 14, 8, 0, 0, 0, time.UTC)),
		note("n3", "", "three days ago", fixedNow.AddDate(0, 0, -3)),
		note("n4", "", "two weeks ago", fixedNow.AddDate(0, 0, -14)),
		note("n5", "", "last year", fixedNow.AddDate(-1, 0, 0)),
	}
}
