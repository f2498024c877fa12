package index

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/orsinium-labs/stopwords"
)

// Backend is the search index collaborator consumed by the Projector.
type Backend interface {
	Submit(ctx context.Context, rec Record) error
	Remove(ctx context.Context, id string) error
}

// Hit is a single ranked search result.
type Hit struct {
	ID      string
	Title   string
	Snippet string
}

// FTSIndex is a SQLite FTS5-backed search index. It lives in its own database
// file: the index is a projection, and dropping the file only costs a rebuild.
type FTSIndex struct {
	db    *sql.DB
	stops *stopwords.Stopwords
}

const ftsSchema = `
CREATE VIRTUAL TABLE IF NOT EXISTS notes_fts USING fts5(
    id UNINDEXED,
    title,
    breadcrumb,
    summary,
    body,
    created_at UNINDEXED
);
`

// OpenFTS opens (or creates) the search index at the given path.
// Use ":memory:" in tests.
func OpenFTS(path string) (*FTSIndex, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index database: %w", err)
	}
	if _, err := db.Exec(ftsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index schema: %w", err)
	}
	return &FTSIndex{db: db, stops: stopwords.MustGet("en")}, nil
}

// Close closes the index database.
func (f *FTSIndex) Close() error {
	return f.db.Close()
}

// Submit upserts the record for a note: any previous projection of the same
// note is replaced wholesale.
func (f *FTSIndex) Submit(ctx context.Context, rec Record) error {
	if _, err := f.db.ExecContext(ctx, `DELETE FROM notes_fts WHERE id = ?`, rec.ID); err != nil {
		return fmt.Errorf("failed to replace index record %s: %w", rec.ID, err)
	}
	_, err := f.db.ExecContext(ctx, `
		INSERT INTO notes_fts (id, title, breadcrumb, summary, body, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Title, rec.Breadcrumb, rec.Summary, rec.Body, rec.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to index record %s: %w", rec.ID, err)
	}
	return nil
}

// Remove deletes the record for the given note identifier.
func (f *FTSIndex) Remove(ctx context.Context, id string) error {
	if _, err := f.db.ExecContext(ctx, `DELETE FROM notes_fts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to remove index record %s: %w", id, err)
	}
	return nil
}

// Query runs a ranked full-text search. The context cancels an in-flight
// query; callers own supersession. An empty or all-stopword query returns nil.
func (f *FTSIndex) Query(ctx context.Context, text string, limit int) ([]Hit, error) {
	match := f.buildMatch(text)
	if match == "" {
		return nil, nil
	}
	rows, err := f.db.QueryContext(ctx, `
		SELECT id, title, snippet(notes_fts, 3, '', '', '…', 16)
		FROM notes_fts
		WHERE notes_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, match, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query index: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.ID, &h.Title, &h.Snippet); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// buildMatch turns free-form user input into a safe FTS5 MATCH expression:
// tokens are lowercased, stripped of stopwords, double-quoted so FTS5
// operators in user input cannot change query semantics, and AND-joined.
// When every token is a stopword the raw tokens are kept, otherwise common
// words would make a query unanswerable.
func (f *FTSIndex) buildMatch(text string) string {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return ""
	}
	kept := tokens[:0:0]
	for _, tok := range tokens {
		if f.stops != nil && f.stops.Contains(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	if len(kept) == 0 {
		kept = tokens
	}
	quoted := make([]string, len(kept))
	for i, tok := range kept {
		quoted[i] = `"` + strings.ReplaceAll(tok, `"`, `""`) + `"`
	}
	return strings.Join(quoted, " AND ")
}

// tokenize lowercases and splits on anything that is not a letter or digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
