package nav

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waynote/waynote/internal/index"
)

// fakeQuerier returns canned hits and remembers the context of the last query.
type fakeQuerier struct {
	mu      sync.Mutex
	hits    []index.Hit
	lastCtx context.Context
}

func (f *fakeQuerier) Query(ctx context.Context, text string, limit int) ([]index.Hit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCtx = ctx
	return f.hits, nil
}

func TestSearchResolvesHits(t *testing.T) {
	repo := openTestRepo(t)
	root := repo.FetchRoot()
	note, err := repo.CreateTextNote(root)
	require.NoError(t, err)

	q := &fakeQuerier{hits: []index.Hit{
		{ID: note.ID.String(), Title: "Text Note"},
		{ID: note.ID.String(), Title: "Text Note"}, // duplicate collapses
	}}
	s := NewSearchSession(q, repo, nil)
	defer s.Close()

	results, err := s.Search(context.Background(), "milk")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, note.ID, results[0].ID)
}

func TestSearchSkipsStaleAndMalformedHits(t *testing.T) {
	repo := openTestRepo(t)
	root := repo.FetchRoot()
	live, err := repo.CreateTextNote(root)
	require.NoError(t, err)
	dead, err := repo.CreateTextNote(root)
	require.NoError(t, err)
	repo.DeleteNote(dead)

	q := &fakeQuerier{hits: []index.Hit{
		{ID: "not-a-uuid"},
		{ID: dead.ID.String()}, // index lag: note already gone
		{ID: live.ID.String()},
	}}
	s := NewSearchSession(q, repo, nil)
	defer s.Close()

	results, err := s.Search(context.Background(), "anything")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, live.ID, results[0].ID)
}

func TestSearchEmptyQueryClears(t *testing.T) {
	repo := openTestRepo(t)
	repo.FetchRoot()

	q := &fakeQuerier{hits: []index.Hit{{ID: "unused"}}}
	s := NewSearchSession(q, repo, nil)
	defer s.Close()

	results, err := s.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Nil(t, results)
	assert.Nil(t, q.lastCtx, "backend must not be queried for blank input")
}

func TestSearchSupersedesInFlightQuery(t *testing.T) {
	repo := openTestRepo(t)
	repo.FetchRoot()

	q := &fakeQuerier{}
	s := NewSearchSession(q, repo, nil)
	defer s.Close()

	_, err := s.Search(context.Background(), "first")
	require.NoError(t, err)
	firstCtx := q.lastCtx
	require.NotNil(t, firstCtx)

	_, err = s.Search(context.Background(), "second")
	require.NoError(t, err)
	assert.ErrorIs(t, firstCtx.Err(), context.Canceled, "a new search must cancel the previous query")
	assert.NoError(t, q.lastCtx.Err())
}

func TestCloseCancelsOutstandingQuery(t *testing.T) {
	repo := openTestRepo(t)
	repo.FetchRoot()

	q := &fakeQuerier{}
	s := NewSearchSession(q, repo, nil)

	_, err := s.Search(context.Background(), "pending")
	require.NoError(t, err)
	s.Close()
	assert.ErrorIs(t, q.lastCtx.Err(), context.Canceled)
}
