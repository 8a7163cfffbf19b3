// Package store provides the note storage interface with SQLite and in-memory
// implementations.
package store

import (
	"context"
	"errors"

	"github.com/gravity-note/gravity-note/internal/model"
)

var (
	// ErrNotFound is returned when a note does not exist for the requesting user.
	ErrNotFound = errors.New("note not found")
	// ErrEmptyContent is returned when a note would be stored without content.
	ErrEmptyContent = errors.New("note content is required")
	// ErrNoUser is returned when an operation is attempted without a user id.
	ErrNoUser = errors.New("user id is required")
)

// AppendParams holds parameters for appending a note to a user's stream.
type AppendParams struct {
	UserID  string
	Title   string
	Content string
}

// UpdateParams holds parameters for editing a note. Nil fields are left as is.
type UpdateParams struct {
	UserID  string
	ID      string
	Title   *string
	Content *string
}

// Client is the read side used by search and browse. Every call is scoped to
// exactly one user and returns rows ordered by updated_at descending.
type Client interface {
	// MatchNormalized matches p against the normalized title/content columns.
	MatchNormalized(ctx context.Context, userID string, p Pattern, limit int) ([]model.Note, error)

	// MatchRaw matches p against the raw title/content columns.
	MatchRaw(ctx context.Context, userID string, p Pattern, limit int) ([]model.Note, error)

	// FetchRecent returns the most recently updated notes.
	FetchRecent(ctx context.Context, userID string, limit int) ([]model.Note, error)
}

// Store defines the note storage interface.
type Store interface {
	Client

	// Append stores a new note at the top of the user's stream.
	Append(ctx context.Context, p AppendParams) (*model.Note, error)

	// Get retrieves a note by id.
	Get(ctx context.Context, userID, id string) (*model.Note, error)

	// Update edits a note and moves it to the top of the stream.
	Update(ctx context.Context, p UpdateParams) (*model.Note, error)

	// Rescue copies an older note back to the top of the stream.
	Rescue(ctx context.Context, userID, id string) (*model.Note, error)

	// Delete permanently removes a note.
	Delete(ctx context.Context, userID, id string) error

	// Close closes the store.
	Close() error
}

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
