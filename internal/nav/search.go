package nav

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/waynote/waynote/internal/graph"
	"github.com/waynote/waynote/internal/index"
	"github.com/waynote/waynote/internal/notes"
)

// Querier is the search backend surface a session needs.
type Querier interface {
	Query(ctx context.Context, text string, limit int) ([]index.Hit, error)
}

// queryLimit caps results per search.
const queryLimit = 50

// SearchSession runs full-text searches and resolves hits back to live notes.
// At most one query is outstanding per session: starting a new search cancels
// the in-flight one, and Close cancels whatever remains.
type SearchSession struct {
	backend Querier
	store   *notes.Store
	logger  *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewSearchSession creates a session over the given backend and repository.
func NewSearchSession(backend Querier, store *notes.Store, logger *slog.Logger) *SearchSession {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchSession{backend: backend, store: store, logger: logger}
}

// Search cancels any in-flight query and runs a new one. Whitespace-only
// input clears the session and returns nothing. Hits that no longer resolve
// to a live note are logged and skipped; duplicates are collapsed.
func (s *SearchSession) Search(ctx context.Context, text string) ([]*graph.Note, error) {
	trimmed := strings.TrimSpace(text)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if trimmed == "" {
		s.mu.Unlock()
		return nil, nil
	}
	qctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	hits, err := s.backend.Query(qctx, trimmed, queryLimit)
	if err != nil {
		s.logger.Error("failed to fetch query responses", "error", err)
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(hits))
	var results []*graph.Note
	for _, hit := range hits {
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			s.logger.Error("failed to parse note id from index hit", "id", hit.ID, "error", err)
			continue
		}
		note := s.store.FetchNote(id)
		if note == nil {
			s.logger.Error("indexed note no longer exists", "note", id)
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		results = append(results, note)
	}
	return results, nil
}

// Close cancels any outstanding query.
func (s *SearchSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
