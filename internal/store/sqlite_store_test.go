package store

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/waynote/waynote/internal/graph"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertAndGet(t *testing.T) {
	s := openTestStore(t)

	root := &graph.Note{ID: uuid.New(), Title: "Waynote", CreatedAt: time.Now()}
	if err := s.InsertNote(root); err != nil {
		t.Fatalf("InsertNote failed: %v", err)
	}

	child := &graph.Note{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		ParentID:  root.ID,
		Content:   graph.TextContent("shopping"),
	}
	if err := s.InsertNote(child); err != nil {
		t.Fatalf("InsertNote failed: %v", err)
	}
	if err := s.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	got, err := s.GetNote(child.ID)
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetNote returned nil for existing note")
	}
	if got.ParentID != root.ID {
		t.Errorf("Expected parent %s, got %s", root.ID, got.ParentID)
	}
	if got.Content.Kind != graph.KindText || got.Content.Text != "shopping" {
		t.Errorf("Content mismatch: %+v", got.Content)
	}
}

func TestGetNoteMissing(t *testing.T) {
	s := openTestStore(t)

	got, err := s.GetNote(uuid.New())
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing note, got %+v", got)
	}
}

func TestGetRoot(t *testing.T) {
	s := openTestStore(t)

	got, err := s.GetRoot()
	if err != nil {
		t.Fatalf("GetRoot failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil root on empty store, got %+v", got)
	}

	root := &graph.Note{ID: uuid.New(), Title: "Waynote", CreatedAt: time.Now()}
	if err := s.InsertNote(root); err != nil {
		t.Fatalf("InsertNote failed: %v", err)
	}
	if err := s.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	got, err = s.GetRoot()
	if err != nil {
		t.Fatalf("GetRoot failed: %v", err)
	}
	if got == nil || got.ID != root.ID {
		t.Errorf("Root mismatch: %+v", got)
	}
}

func TestSingleRootConstraint(t *testing.T) {
	s := openTestStore(t)

	if err := s.InsertNote(&graph.Note{ID: uuid.New(), CreatedAt: time.Now()}); err != nil {
		t.Fatalf("InsertNote failed: %v", err)
	}
	if err := s.InsertNote(&graph.Note{ID: uuid.New(), CreatedAt: time.Now()}); err == nil {
		if err := s.Commit(); err == nil {
			t.Errorf("Expected second parentless insert to violate unique index")
		}
	}
}

func TestPendingReadsSeeUncommitted(t *testing.T) {
	s := openTestStore(t)

	root := &graph.Note{ID: uuid.New(), CreatedAt: time.Now()}
	if err := s.InsertNote(root); err != nil {
		t.Fatalf("InsertNote failed: %v", err)
	}

	// No commit yet; the read must still observe the staged row.
	got, err := s.GetNote(root.ID)
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if got == nil {
		t.Error("Staged note invisible to reads before commit")
	}
}

func TestUpdateNote(t *testing.T) {
	s := openTestStore(t)

	root := &graph.Note{ID: uuid.New(), CreatedAt: time.Now()}
	audio := &graph.Note{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		ParentID:  root.ID,
		Content:   graph.AudioContent("a.m4a"),
	}
	if err := s.InsertNote(root); err != nil {
		t.Fatalf("InsertNote failed: %v", err)
	}
	if err := s.InsertNote(audio); err != nil {
		t.Fatalf("InsertNote failed: %v", err)
	}

	audio.Title = "Voice memo"
	audio.Content.Duration = 12.5
	if err := s.UpdateNote(audio); err != nil {
		t.Fatalf("UpdateNote failed: %v", err)
	}
	if err := s.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	got, err := s.GetNote(audio.ID)
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if got.Title != "Voice memo" {
		t.Errorf("Title not updated: %q", got.Title)
	}
	if got.Content.Duration != 12.5 {
		t.Errorf("Duration not updated: %v", got.Content.Duration)
	}
}

func TestDeleteNoteAndContent(t *testing.T) {
	s := openTestStore(t)

	root := &graph.Note{ID: uuid.New(), CreatedAt: time.Now()}
	note := &graph.Note{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		ParentID:  root.ID,
		Content:   graph.TextContent("bye"),
	}
	if err := s.InsertNote(root); err != nil {
		t.Fatalf("InsertNote failed: %v", err)
	}
	if err := s.InsertNote(note); err != nil {
		t.Fatalf("InsertNote failed: %v", err)
	}
	if err := s.DeleteContent(note.ID); err != nil {
		t.Fatalf("DeleteContent failed: %v", err)
	}
	if err := s.DeleteNote(note.ID); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}
	if err := s.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	got, err := s.GetNote(note.ID)
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if got != nil {
		t.Errorf("Note survived deletion: %+v", got)
	}
}

func TestListAll(t *testing.T) {
	s := openTestStore(t)

	root := &graph.Note{ID: uuid.New(), Title: "Waynote", CreatedAt: time.Now()}
	child := &graph.Note{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		ParentID:  root.ID,
		Content:   graph.AudioContent("c.m4a"),
	}
	if err := s.InsertNote(root); err != nil {
		t.Fatalf("InsertNote failed: %v", err)
	}
	if err := s.InsertNote(child); err != nil {
		t.Fatalf("InsertNote failed: %v", err)
	}
	if err := s.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	all, err := s.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 notes, got %d", len(all))
	}
}
