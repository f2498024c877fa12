// Package store provides SQLite-backed persistence for the note tree.
// Uses ncruces/go-sqlite3/driver which provides a database/sql interface.
//
// Mutations accumulate in a pending transaction; Commit is the durability
// boundary the repository's save() maps onto. The repository keeps the
// in-memory tree authoritative, so reads from here only happen at hydration.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/waynote/waynote/internal/graph"
)

// SQLiteStore is the SQLite-backed persistence backend.
type SQLiteStore struct {
	mu sync.Mutex
	db *sql.DB
	tx *sql.Tx
}

// schema defines the note tables. The partial unique index on parent_id
// enforces at most one root at the storage level.
const schema = `
CREATE TABLE IF NOT EXISTS notes (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL DEFAULT '',
    parent_id TEXT,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_parent ON notes(parent_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_notes_single_root ON notes(parent_id IS NULL) WHERE parent_id IS NULL;

CREATE TABLE IF NOT EXISTS note_contents (
    note_id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    body TEXT,
    file_name TEXT,
    duration REAL NOT NULL DEFAULT 0
);
`

// Open opens (or creates) the store at the given path.
// Use ":memory:" for an in-memory database in tests.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close rolls back any pending transaction and closes the database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tx != nil {
		s.tx.Rollback()
		s.tx = nil
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
}

// pending returns the open transaction, beginning one if needed.
// Callers must hold s.mu.
func (s *SQLiteStore) pending() (*sql.Tx, error) {
	if s.tx == nil {
		tx, err := s.db.Begin()
		if err != nil {
			return nil, fmt.Errorf("failed to begin transaction: %w", err)
		}
		s.tx = tx
	}
	return s.tx, nil
}

// reader returns the pending transaction when one is open so reads observe
// uncommitted writes, otherwise the database itself.
func (s *SQLiteStore) reader() execer {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

// Commit commits the pending transaction, if any.
func (s *SQLiteStore) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tx == nil {
		return nil
	}
	err := s.tx.Commit()
	s.tx = nil
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// InsertNote stages a note record and, when the note carries content,
// its content record.
func (s *SQLiteStore) InsertNote(n *graph.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.pending()
	if err != nil {
		return err
	}
	_, err = tx.Exec(`
		INSERT INTO notes (id, title, parent_id, created_at)
		VALUES (?, ?, ?, ?)
	`, n.ID.String(), n.Title, parentArg(n), n.CreatedAt.UnixMilli())
	if err != nil {
		return err
	}
	if n.Content.Kind != graph.KindNone {
		return s.upsertContent(tx, n)
	}
	return nil
}

// UpdateNote stages the mutable note fields (title) and the content record.
func (s *SQLiteStore) UpdateNote(n *graph.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.pending()
	if err != nil {
		return err
	}
	_, err = tx.Exec(`UPDATE notes SET title = ? WHERE id = ?`, n.Title, n.ID.String())
	if err != nil {
		return err
	}
	if n.Content.Kind != graph.KindNone {
		return s.upsertContent(tx, n)
	}
	return nil
}

func (s *SQLiteStore) upsertContent(tx *sql.Tx, n *graph.Note) error {
	_, err := tx.Exec(`
		INSERT INTO note_contents (note_id, kind, body, file_name, duration)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(note_id) DO UPDATE SET
			kind = excluded.kind,
			body = excluded.body,
			file_name = excluded.file_name,
			duration = excluded.duration
	`, n.ID.String(), n.Content.Kind.String(), n.Content.Text, n.Content.FileName, n.Content.Duration)
	return err
}

// DeleteContent stages removal of a note's content record.
func (s *SQLiteStore) DeleteContent(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.pending()
	if err != nil {
		return err
	}
	_, err = tx.Exec(`DELETE FROM note_contents WHERE note_id = ?`, id.String())
	return err
}

// DeleteNote stages removal of the note record itself.
func (s *SQLiteStore) DeleteNote(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.pending()
	if err != nil {
		return err
	}
	_, err = tx.Exec(`DELETE FROM notes WHERE id = ?`, id.String())
	return err
}

const selectNote = `
	SELECT n.id, n.title, n.parent_id, n.created_at,
	       c.kind, c.body, c.file_name, c.duration
	FROM notes n
	LEFT JOIN note_contents c ON c.note_id = n.id
`

// GetNote retrieves a note by ID. Returns (nil, nil) when absent.
func (s *SQLiteStore) GetNote(id uuid.UUID) (*graph.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.reader().QueryRow(selectNote+`WHERE n.id = ?`, id.String())
	return scanNote(row)
}

// GetRoot retrieves the parentless note. Returns (nil, nil) when absent.
func (s *SQLiteStore) GetRoot() (*graph.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.reader().QueryRow(selectNote + `WHERE n.parent_id IS NULL LIMIT 1`)
	return scanNote(row)
}

// ListAll returns every persisted note, for arena hydration. No ordering is
// guaranteed; the tree links parents before children itself.
func (s *SQLiteStore) ListAll() ([]*graph.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.reader().Query(selectNote)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*graph.Note
	for rows.Next() {
		n, err := scanNoteRow(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func parentArg(n *graph.Note) any {
	if n.IsRoot() {
		return nil
	}
	return n.ParentID.String()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row *sql.Row) (*graph.Note, error) {
	n, err := scanNoteRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return n, err
}

func scanNoteRow(row rowScanner) (*graph.Note, error) {
	var (
		id, title           string
		parentID            sql.NullString
		createdAt           int64
		kind, body, fileRef sql.NullString
		duration            sql.NullFloat64
	)
	if err := row.Scan(&id, &title, &parentID, &createdAt, &kind, &body, &fileRef, &duration); err != nil {
		return nil, err
	}

	nid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid note id %q: %w", id, err)
	}
	n := &graph.Note{
		ID:        nid,
		Title:     title,
		CreatedAt: time.UnixMilli(createdAt),
	}
	if parentID.Valid {
		pid, err := uuid.Parse(parentID.String)
		if err != nil {
			return nil, fmt.Errorf("invalid parent id %q: %w", parentID.String, err)
		}
		n.ParentID = pid
	}
	if kind.Valid {
		n.Content = graph.Content{
			Kind:     graph.KindFromString(kind.String),
			Text:     body.String,
			FileName: fileRef.String,
			Duration: duration.Float64,
		}
	}
	return n, nil
}
