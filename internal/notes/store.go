// Package notes is the note repository: it orchestrates tree mutations with
// persistence, audio blob cleanup, and search index projection. This is the
// consumer-facing contract; UI-level callers never touch the store or the
// index directly.
//
// Persistence failures here are logged and swallowed: the in-memory tree
// stays authoritative for the session and no mutation is ever rejected back
// to the caller. Save exposes the last commit status so strict callers can
// observe the policy instead of relying on logs.
package notes

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/waynote/waynote/internal/blob"
	"github.com/waynote/waynote/internal/graph"
	"github.com/waynote/waynote/internal/index"
	"github.com/waynote/waynote/internal/store"
)

// SaveStatus reports the outcome of a commit attempt. Committed false with a
// non-nil Err means the session is running on in-memory state ahead of disk.
type SaveStatus struct {
	Committed bool
	Err       error
}

// Store is the note repository.
type Store struct {
	tree      *graph.Tree
	db        *store.SQLiteStore
	blobs     *blob.AudioFiles
	projector *index.Projector
	logger    *slog.Logger
	lastSave  SaveStatus
}

// Open hydrates the repository from persisted state. The projector may be nil
// when no search index is wired.
func Open(db *store.SQLiteStore, blobs *blob.AudioFiles, projector *index.Projector, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	records, err := db.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}
	tree := graph.NewTree()
	if err := tree.Hydrate(records); err != nil {
		return nil, fmt.Errorf("failed to hydrate note tree: %w", err)
	}
	return &Store{
		tree:      tree,
		db:        db,
		blobs:     blobs,
		projector: projector,
		logger:    logger,
		lastSave:  SaveStatus{Committed: true},
	}, nil
}

// Tree exposes the in-memory tree for read-only traversal (navigation,
// children listings). Mutations go through the repository.
func (s *Store) Tree() *graph.Tree {
	return s.tree
}

// Save commits pending persistence changes and reports the outcome.
func (s *Store) Save() SaveStatus {
	return s.save()
}

func (s *Store) save() SaveStatus {
	err := s.db.Commit()
	if err != nil {
		s.logger.Error("failed to save context", "error", err)
		s.lastSave = SaveStatus{Err: err}
		return s.lastSave
	}
	s.logger.Info("context saved")
	s.lastSave = SaveStatus{Committed: true}
	return s.lastSave
}

// FetchRoot returns the unique parentless note, synthesizing one on first
// access. Calling it twice returns the same identity.
func (s *Store) FetchRoot() *graph.Note {
	if root := s.tree.Root(); root != nil {
		return root
	}
	root := &graph.Note{
		ID:        uuid.New(),
		Title:     graph.DefaultTitle,
		CreatedAt: time.Now(),
	}
	if err := s.tree.Insert(root); err != nil {
		// Unreachable: the tree was just observed to be empty.
		s.logger.Error("failed to insert root note", "error", err)
		return root
	}
	if err := s.db.InsertNote(root); err != nil {
		s.logger.Error("failed to persist root note", "note", root.ID, "error", err)
	}
	s.save()
	s.index(root)
	s.logger.Info("created new root note", "note", root.ID)
	return root
}

// FetchNote returns the note with the given ID, or nil when absent.
// Absence is a normal outcome, not an error.
func (s *Store) FetchNote(id uuid.UUID) *graph.Note {
	return s.tree.Get(id)
}

// Children returns a note's children ordered by creation time ascending.
func (s *Store) Children(id uuid.UUID) []*graph.Note {
	return s.tree.Children(id)
}

// CreateTextNote creates a note with empty text content under parent and
// persists it immediately.
func (s *Store) CreateTextNote(parent *graph.Note) (*graph.Note, error) {
	n := &graph.Note{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		ParentID:  parent.ID,
		Content:   graph.TextContent(""),
	}
	if err := s.insert(n); err != nil {
		return nil, err
	}
	s.logger.Info("created new text note", "note", n.ID)
	return n, nil
}

// CreateAudioNote creates a note with audio content under parent. The file
// name is derived from the note's own identity so the path is always
// re-derivable; the physical file does not exist until recording starts and
// duration stays 0 until it finishes.
func (s *Store) CreateAudioNote(parent *graph.Note) (*graph.Note, error) {
	id := uuid.New()
	n := &graph.Note{
		ID:        id,
		CreatedAt: time.Now(),
		ParentID:  parent.ID,
		Content:   graph.AudioContent(id.String() + ".m4a"),
	}
	if err := s.insert(n); err != nil {
		return nil, err
	}
	s.logger.Info("created new audio note", "note", n.ID)
	return n, nil
}

func (s *Store) insert(n *graph.Note) error {
	if err := s.tree.Insert(n); err != nil {
		return err
	}
	if err := s.db.InsertNote(n); err != nil {
		s.logger.Error("failed to persist note", "note", n.ID, "error", err)
	}
	s.save()
	s.index(n)
	return nil
}

// RenameNote sets the note's title with surrounding whitespace trimmed.
func (s *Store) RenameNote(n *graph.Note, title string) {
	n.Title = strings.TrimSpace(title)
	s.persistUpdate(n)
}

// SetText replaces the text of a text note.
func (s *Store) SetText(n *graph.Note, text string) error {
	if n.Content.Kind != graph.KindText {
		return fmt.Errorf("notes: note %s has no text content", n.ID)
	}
	n.Content.Text = text
	s.persistUpdate(n)
	return nil
}

// UpdateRecordedDuration sets the audio duration after a recording completes.
func (s *Store) UpdateRecordedDuration(n *graph.Note, seconds float64) error {
	if n.Content.Kind != graph.KindAudio {
		return fmt.Errorf("notes: note %s has no audio content", n.ID)
	}
	n.Content.Duration = seconds
	s.persistUpdate(n)
	return nil
}

func (s *Store) persistUpdate(n *graph.Note) {
	if err := s.db.UpdateNote(n); err != nil {
		s.logger.Error("failed to persist note update", "note", n.ID, "error", err)
	}
	s.save()
	s.index(n)
}

// AudioLocation derives the on-disk location for an audio note's backing
// file. The file may legitimately not exist yet.
func (s *Store) AudioLocation(n *graph.Note) (string, error) {
	if n.Content.Kind != graph.KindAudio {
		return "", fmt.Errorf("notes: note %s has no audio content", n.ID)
	}
	return s.blobs.LocationFor(n.Content.FileName), nil
}

// DeleteNote removes a note and every descendant. Children drain depth-first,
// most recent first, before the note itself. Record deletion commits before
// any filesystem cleanup, and a failed file delete never rolls it back.
func (s *Store) DeleteNote(n *graph.Note) {
	for {
		children := s.tree.Children(n.ID)
		if len(children) == 0 {
			break
		}
		s.DeleteNote(children[len(children)-1])
	}

	var audioLocation string
	if n.Content.Kind == graph.KindAudio {
		audioLocation = s.blobs.LocationFor(n.Content.FileName)
	}
	if n.Content.Kind != graph.KindNone {
		if err := s.db.DeleteContent(n.ID); err != nil {
			s.logger.Error("failed to delete content record", "note", n.ID, "error", err)
		}
		s.save()
	}
	if err := s.db.DeleteNote(n.ID); err != nil {
		s.logger.Error("failed to delete note record", "note", n.ID, "error", err)
	}
	s.tree.Remove(n.ID)
	s.save()

	if audioLocation != "" {
		s.blobs.Delete(audioLocation)
	}
	if s.projector != nil {
		s.projector.Remove(n.ID)
	}
	s.logger.Info("deleted note", "note", n.ID, "title", n.Title)
}

func (s *Store) index(n *graph.Note) {
	if s.projector != nil {
		s.projector.Index(s.tree, n)
	}
}
