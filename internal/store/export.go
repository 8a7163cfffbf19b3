package store

import (
	"context"
	"strings"

	"github.com/gravity-note/gravity-note/internal/model"
)

// ExportAll returns every note owned by userID, most recently updated first.
func (s *SQLiteStore) ExportAll(ctx context.Context, userID string) ([]model.Note, error) {
	if userID == "" {
		return nil, ErrNoUser
	}
	return s.queryNotes(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE user_id = ? ORDER BY updated_at DESC, id DESC`,
		userID)
}

// Import stores notes from an export under userID, keeping timestamps and
// lineage. Notes whose id already exists are skipped. Returns the number of
// notes inserted.
func (s *SQLiteStore) Import(ctx context.Context, userID string, notes []model.Note) (int, error) {
	if userID == "" {
		return 0, ErrNoUser
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	imported := 0
	for _, n := range notes {
		n.UserID = userID
		n.Content = strings.TrimSpace(n.Content)
		if n.Content == "" {
			continue
		}
		if n.ID == "" {
			n.ID = s.newID(s.now())
		}
		if n.CreatedAt.IsZero() {
			n.CreatedAt = s.now().UTC()
		}
		if n.UpdatedAt.IsZero() {
			n.UpdatedAt = n.CreatedAt
		}

		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes WHERE id = ?`, n.ID).Scan(&exists); err != nil {
			return imported, err
		}
		if exists > 0 {
			continue
		}
		if err := s.insert(ctx, tx, n); err != nil {
			return imported, err
		}
		imported++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return imported, nil
}
