// Package index keeps a full-text search index synchronized with note
// mutations. The index is a derived, disposable projection: every record is
// rebuildable from current tree state and the index is never a source of
// truth.
package index

import (
	"strings"
	"time"

	"github.com/waynote/waynote/internal/graph"
)

// Separator joins ancestor display titles into a breadcrumb.
const Separator = " › "

// summaryLimit caps how much note text lands in the record summary.
const summaryLimit = 256

// Record is one searchable projection of a note.
type Record struct {
	ID         string
	Title      string
	Breadcrumb string
	Summary    string
	Body       string
	CreatedAt  time.Time
}

// DisplayTitle returns the note's own title when set, otherwise a
// content-variant-specific default.
func DisplayTitle(n *graph.Note) string {
	if n.Title != "" {
		return n.Title
	}
	switch n.Content.Kind {
	case graph.KindNone:
		return graph.DefaultTitle
	case graph.KindText:
		return "Text Note"
	case graph.KindAudio:
		return "Audio Note"
	default:
		return "Unknown Note"
	}
}

// BuildRecord derives the searchable record for a note from current tree
// state. The breadcrumb walks the parent chain, so callers run this on the
// mutating goroutine before handing the record to the async worker.
func BuildRecord(t *graph.Tree, n *graph.Note) (Record, error) {
	chain, err := t.PathToRoot(n.ID)
	if err != nil {
		return Record{}, err
	}
	titles := make([]string, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		titles = append(titles, DisplayTitle(chain[i]))
	}

	rec := Record{
		ID:         n.ID.String(),
		Title:      DisplayTitle(n),
		Breadcrumb: strings.Join(titles, Separator),
		CreatedAt:  n.CreatedAt,
	}
	switch n.Content.Kind {
	case graph.KindText:
		rec.Summary = summarize(n.Content.Text)
		rec.Body = n.Content.Text
	case graph.KindAudio:
		rec.Summary = "Audio Recording"
	}
	return rec, nil
}

// summarize trims the first summaryLimit characters of text.
func summarize(text string) string {
	runes := []rune(text)
	if len(runes) > summaryLimit {
		runes = runes[:summaryLimit]
	}
	return strings.TrimSpace(string(runes))
}
