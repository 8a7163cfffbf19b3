package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/gravity-note/gravity-note/internal/model"
	"github.com/gravity-note/gravity-note/internal/temporal"
	"github.com/gravity-note/gravity-note/internal/textnorm"
)

// timeLayout is fixed width so that text ordering equals time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	now    func() time.Time
	logger zerolog.Logger
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithClock overrides the time source used for note timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *SQLiteStore) {
		s.logger = logger
	}
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string, opts ...Option) (*SQLiteStore, error) {
	dsn := MemoryPath
	if dbPath != MemoryPath {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		dsn = dbPath + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if dbPath == MemoryPath {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	s := &SQLiteStore{
		db:     db,
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), ulid.DefaultEntropy()).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS notes (
		id                 TEXT PRIMARY KEY,
		user_id            TEXT NOT NULL,
		title              TEXT,
		content            TEXT NOT NULL,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL,
		is_rescued         INTEGER NOT NULL DEFAULT 0,
		original_note_id   TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_notes_user_updated ON notes(user_id, updated_at DESC);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Normalized columns arrived after the first schema; existing rows keep
	// NULLs until Normalize backfills them.
	have, err := s.columns("notes")
	if err != nil {
		return err
	}
	for _, col := range []string{"title_normalized", "content_normalized"} {
		if have[col] {
			continue
		}
		if _, err := s.db.Exec(`ALTER TABLE notes ADD COLUMN ` + col + ` TEXT`); err != nil {
			return fmt.Errorf("add column %s: %w", col, err)
		}
		s.logger.Info().Str("column", col).Msg("added column")
	}
	return nil
}

func (s *SQLiteStore) columns(table string) (map[string]bool, error) {
	rows, err := s.db.Query(`SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return nil, fmt.Errorf("table info %s: %w", table, err)
	}
	defer rows.Close()
	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}

const noteColumns = `id, user_id, title, content, created_at, updated_at, is_rescued, original_note_id`

func (s *SQLiteStore) Append(ctx context.Context, p AppendParams) (*model.Note, error) {
	if p.UserID == "" {
		return nil, ErrNoUser
	}
	content := strings.TrimSpace(p.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	now := s.now().UTC()
	n := model.Note{
		ID:        s.newID(now),
		UserID:    p.UserID,
		Title:     strings.TrimSpace(p.Title),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.insert(ctx, s.db, n); err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return &n, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func (s *SQLiteStore) insert(ctx context.Context, db execer, n model.Note) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO notes (`+noteColumns+`, title_normalized, content_normalized)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, nullable(n.Title), n.Content,
		formatTime(n.CreatedAt), formatTime(n.UpdatedAt), n.IsRescued, nullable(n.OriginalNoteID),
		textnorm.Normalize(n.Title), textnorm.Normalize(n.Content))
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, userID, id string) (*model.Note, error) {
	if userID == "" {
		return nil, ErrNoUser
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE user_id = ? AND id = ?`, userID, id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *SQLiteStore) Update(ctx context.Context, p UpdateParams) (*model.Note, error) {
	n, err := s.Get(ctx, p.UserID, p.ID)
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
	n.UpdatedAt = s.now().UTC()

	_, err = s.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, updated_at = ?,
		        title_normalized = ?, content_normalized = ?
		 WHERE user_id = ? AND id = ?`,
		nullable(n.Title), n.Content, formatTime(n.UpdatedAt),
		textnorm.Normalize(n.Title), textnorm.Normalize(n.Content),
		p.UserID, p.ID)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) Rescue(ctx context.Context, userID, id string) (*model.Note, error) {
	src, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	n := model.Note{
		ID:             s.newID(now),
		UserID:         userID,
		Title:          src.Title,
		Content:        src.Content,
		CreatedAt:      now,
		UpdatedAt:      now,
		IsRescued:      true,
		OriginalNoteID: src.ID,
	}
	if err := s.insert(ctx, s.db, n); err != nil {
		return nil, fmt.Errorf("insert rescued note: %w", err)
	}
	return &n, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrNoUser
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *SQLiteStore) MatchNormalized(ctx context.Context, userID string, p Pattern, limit int) ([]model.Note, error) {
	return s.match(ctx, "title_normalized", "content_normalized", userID, p, limit)
}

func (s *SQLiteStore) MatchRaw(ctx context.Context, userID string, p Pattern, limit int) ([]model.Note, error) {
	return s.match(ctx, "title", "content", userID, p, limit)
}

func (s *SQLiteStore) match(ctx context.Context, titleCol, contentCol, userID string, p Pattern, limit int) ([]model.Note, error) {
	if userID == "" {
		return nil, ErrNoUser
	}
	if len(p) == 0 {
		return nil, nil
	}
	like := p.Like()
	query := fmt.Sprintf(`
		SELECT %s FROM notes
		WHERE user_id = ? AND (%s LIKE ? ESCAPE '\' OR %s LIKE ? ESCAPE '\')
		ORDER BY updated_at DESC, id DESC
		LIMIT ?`, noteColumns, titleCol, contentCol)
	return s.queryNotes(ctx, query, userID, like, like, limitOrDefault(limit))
}

func (s *SQLiteStore) FetchRecent(ctx context.Context, userID string, limit int) ([]model.Note, error) {
	if userID == "" {
		return nil, ErrNoUser
	}
	return s.queryNotes(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE user_id = ?
		 ORDER BY updated_at DESC, id DESC LIMIT ?`,
		userID, limitOrDefault(limit))
}

// Normalize fills the normalized columns of the user's rows written before
// they existed. It returns the number of rows updated.
func (s *SQLiteStore) Normalize(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, ErrNoUser
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content FROM notes
		 WHERE user_id = ? AND (title_normalized IS NULL OR content_normalized IS NULL)`,
		userID)
	if err != nil {
		return 0, err
	}
	type pending struct {
		id, title, content string
	}
	var todo []pending
	for rows.Next() {
		var p pending
		var title, content sql.NullString
		if err := rows.Scan(&p.id, &title, &content); err != nil {
			rows.Close()
			return 0, err
		}
		p.title, p.content = title.String, content.String
		todo = append(todo, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()
	for _, p := range todo {
		_, err := tx.ExecContext(ctx,
			`UPDATE notes SET title_normalized = ?, content_normalized = ? WHERE id = ? AND user_id = ?`,
			textnorm.Normalize(p.title), textnorm.Normalize(p.content), p.id, userID)
		if err != nil {
			return 0, fmt.Errorf("normalize %s: %w", p.id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(todo), nil
}

func (s *SQLiteStore) queryNotes(ctx context.Context, query string, args ...interface{}) ([]model.Note, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Warn().Err(err).Msg("note query failed")
		return nil, err
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanNote reads a row selected with noteColumns. Unparseable timestamps
// become the epoch.
func scanNote(row scanner) (model.Note, error) {
	var n model.Note
	var title, content, original sql.NullString
	var createdAt, updatedAt sql.NullString

	err := row.Scan(&n.ID, &n.UserID, &title, &content,
		&createdAt, &updatedAt, &n.IsRescued, &original)
	if err != nil {
		return n, err
	}

	n.Title = title.String
	n.Content = content.String
	n.OriginalNoteID = original.String
	n.CreatedAt = temporal.ParseTimestamp(createdAt.String)
	n.UpdatedAt = temporal.ParseTimestamp(updatedAt.String)
	return n, nil
}

func formatTime(t time.Time) string {
	return temporal.OrEpoch(t).UTC().Format(timeLayout)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return model.DefaultMaxResults
	}
	return limit
}
