package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/gravity-note/gravity-note/internal/model"
	"github.com/gravity-note/gravity-note/internal/textnorm"
)

// MemoryStore implements Store in process memory. It is used by tests and as
// a scratch backend.
type MemoryStore struct {
	mu    sync.RWMutex
	notes map[string]memoryRow
	now   func() time.Time
}

type memoryRow struct {
	note              model.Note
	titleNormalized   string
	contentNormalized string
}

// NewMemoryStore returns an empty MemoryStore. A nil clock uses time.Now.
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{notes: make(map[string]memoryRow), now: now}
}

// Seed stores notes verbatim, keeping their ids and timestamps.
func (m *MemoryStore) Seed(notes ...model.Note) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range notes {
		m.put(n)
	}
}

func (m *MemoryStore) put(n model.Note) {
	m.notes[n.ID] = memoryRow{
		note:              n,
		titleNormalized:   textnorm.Normalize(n.Title),
		contentNormalized: textnorm.Normalize(n.Content),
	}
}

func (m *MemoryStore) Append(ctx context.Context, p AppendParams) (*model.Note, error) {
	if p.UserID == "" {
		return nil, ErrNoUser
	}
	content := strings.TrimSpace(p.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	now := m.now().UTC()
	n := model.Note{
		ID:        ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		UserID:    p.UserID,
		Title:     strings.TrimSpace(p.Title),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.mu.Lock()
	m.put(n)
	m.mu.Unlock()
	return &n, nil
}

func (m *MemoryStore) Get(ctx context.Context, userID, id string) (*model.Note, error) {
	if userID == "" {
		return nil, ErrNoUser
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getLocked(userID, id)
}

// getLocked returns a copy of the user's note. Callers hold m.mu.
func (m *MemoryStore) getLocked(userID, id string) (*model.Note, error) {
	r, ok := m.notes[id]
	if !ok || r.note.UserID != userID {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	n := r.note
	return &n, nil
}

func (m *MemoryStore) Update(ctx context.Context, p UpdateParams) (*model.Note, error) {
	if p.UserID == "" {
		return nil, ErrNoUser
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n, err := m.getLocked(p.UserID, p.ID)
	if err != nil {
		return nil, err
	}
	if p.Title != nil {
		n.Title = strings.TrimSpace(*p.Title)
	}
	if p.Content != nil {
		c := strings.TrimSpace(*p.Content)
		if c == "" {
			return nil, ErrEmptyContent
		}
		n.Content = c
	}
	n.UpdatedAt = m.now().UTC()
	m.put(*n)
	return n, nil
}

func (m *MemoryStore) Rescue(ctx context.Context, userID, id string) (*model.Note, error) {
	if userID == "" {
		return nil, ErrNoUser
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	src, err := m.getLocked(userID, id)
	if err != nil {
		return nil, err
	}
	now := m.now().UTC()
	n := model.Note{
		ID:             ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		UserID:         userID,
		Title:          src.Title,
		Content:        src.Content,
		CreatedAt:      now,
		UpdatedAt:      now,
		IsRescued:      true,
		OriginalNoteID: src.ID,
	}
	m.put(n)
	return &n, nil
}

func (m *MemoryStore) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrNoUser
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.getLocked(userID, id); err != nil {
		return err
	}
	delete(m.notes, id)
	return nil
}

func (m *MemoryStore) MatchNormalized(ctx context.Context, userID string, p Pattern, limit int) ([]model.Note, error) {
	return m.filter(userID, limit, func(r memoryRow) bool {
		return p.Matches(r.titleNormalized) || p.Matches(r.contentNormalized)
	})
}

func (m *MemoryStore) MatchRaw(ctx context.Context, userID string, p Pattern, limit int) ([]model.Note, error) {
	return m.filter(userID, limit, func(r memoryRow) bool {
		return p.Matches(r.note.Title) || p.Matches(r.note.Content)
	})
}

func (m *MemoryStore) FetchRecent(ctx context.Context, userID string, limit int) ([]model.Note, error) {
	return m.filter(userID, limit, func(memoryRow) bool { return true })
}

func (m *MemoryStore) filter(userID string, limit int, keep func(memoryRow) bool) ([]model.Note, error) {
	if userID == "" {
		return nil, ErrNoUser
	}
	m.mu.RLock()
	var out []model.Note
	for _, r := range m.notes {
		if r.note.UserID == userID && keep(r) {
			out = append(out, r.note)
		}
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit = limitOrDefault(limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }
