// Package nav resolves stored identifiers back to navigable positions in the
// note tree: breadcrumb paths for deep links and ranked note lookups for
// search results.
package nav

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/waynote/waynote/internal/graph"
	"github.com/waynote/waynote/internal/notes"
)

// Router materializes navigation paths from note identifiers.
type Router struct {
	store  *notes.Store
	logger *slog.Logger
}

// NewRouter creates a router over the repository.
func NewRouter(store *notes.Store, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{store: store, logger: logger}
}

// ResolvePath returns the navigation stack for a note: every ancestor below
// the root in root-first order, ending with the note itself. The root is
// omitted because it is implicitly already displayed. An unknown identifier
// logs and returns nil; a broken parent chain is a data-integrity error and
// is returned, never truncated.
func (r *Router) ResolvePath(id uuid.UUID) ([]*graph.Note, error) {
	n := r.store.FetchNote(id)
	if n == nil {
		r.logger.Error("failed to navigate to note: note not found", "note", id)
		return nil, nil
	}
	chain, err := r.store.Tree().PathToRoot(n.ID)
	if err != nil {
		return nil, err
	}
	// Drop the root, then reverse to root-first order.
	chain = chain[:len(chain)-1]
	path := make([]*graph.Note, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		path = append(path, chain[i])
	}
	return path, nil
}
