package store

import (
	"context"
	"errors"

	"github.com/gravity-note/gravity-note/internal/model"
)

// maxLineageDepth bounds the ancestor walk.
const maxLineageDepth = 64

// Lineage is the rescue history around one note.
type Lineage struct {
	Note model.Note `json:"note"`
	// Ancestors runs from the note's direct source back towards the first
	// note, stopping at the first one that no longer exists.
	Ancestors []model.Note `json:"ancestors"`
	// Rescues are the direct rescued copies of Note, newest first.
	Rescues []model.Note `json:"rescues"`
}

// Lineage returns the rescue history of a note.
func (s *SQLiteStore) Lineage(ctx context.Context, userID, id string) (*Lineage, error) {
	n, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	l := &Lineage{Note: *n, Ancestors: []model.Note{}}

	seen := map[string]bool{n.ID: true}
	next := n.OriginalNoteID
	for next != "" && !seen[next] && len(l.Ancestors) < maxLineageDepth {
		a, err := s.Get(ctx, userID, next)
		if errors.Is(err, ErrNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}
		seen[a.ID] = true
		l.Ancestors = append(l.Ancestors, *a)
		next = a.OriginalNoteID
	}

	l.Rescues, err = s.queryNotes(ctx,
		`SELECT `+noteColumns+` FROM notes
		 WHERE user_id = ? AND original_note_id = ?
		 ORDER BY updated_at DESC, id DESC`,
		userID, n.ID)
	if err != nil {
		return nil, err
	}
	if l.Rescues == nil {
		l.Rescues = []model.Note{}
	}
	return l, nil
}
