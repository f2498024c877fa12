package graph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

var (
	// ErrUnknownParent means an insert referenced a parent not in the tree.
	ErrUnknownParent = errors.New("graph: parent note does not exist")
	// ErrRootExists means a second parentless note was inserted.
	ErrRootExists = errors.New("graph: a root note already exists")
	// ErrContentExists means a note already holds a content variant.
	ErrContentExists = errors.New("graph: note already has content")
	// ErrCycle means the parent chain loops back on itself. This is a broken
	// invariant, never a transient condition; callers should treat it as fatal.
	ErrCycle = errors.New("graph: cycle in parent chain")
)

// Tree is an arena of notes keyed by ID with a derived children index.
// Parent and child relations are ID links, not pointers, so deletion is an
// explicit removal from the arena rather than a storage-engine cascade.
type Tree struct {
	notes    map[uuid.UUID]*Note
	children map[uuid.UUID][]uuid.UUID
	root     uuid.UUID
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{
		notes:    make(map[uuid.UUID]*Note),
		children: make(map[uuid.UUID][]uuid.UUID),
	}
}

// Len returns the number of notes in the arena.
func (t *Tree) Len() int {
	return len(t.notes)
}

// Insert adds a note to the arena and links it under its parent.
// A parentless note becomes the root; only one root may exist.
func (t *Tree) Insert(n *Note) error {
	if _, ok := t.notes[n.ID]; ok {
		return fmt.Errorf("graph: note %s already exists", n.ID)
	}
	if n.IsRoot() {
		if t.root != uuid.Nil {
			return ErrRootExists
		}
		t.root = n.ID
	} else if _, ok := t.notes[n.ParentID]; !ok {
		return ErrUnknownParent
	}
	t.notes[n.ID] = n
	if !n.IsRoot() {
		t.children[n.ParentID] = append(t.children[n.ParentID], n.ID)
		t.sortChildren(n.ParentID)
	}
	return nil
}

// Get returns the note with the given ID, or nil if absent.
func (t *Tree) Get(id uuid.UUID) *Note {
	return t.notes[id]
}

// Root returns the root note, or nil if the tree is empty.
func (t *Tree) Root() *Note {
	if t.root == uuid.Nil {
		return nil
	}
	return t.notes[t.root]
}

// Children returns the children of a note ordered by creation time ascending.
func (t *Tree) Children(id uuid.UUID) []*Note {
	ids := t.children[id]
	out := make([]*Note, 0, len(ids))
	for _, cid := range ids {
		out = append(out, t.notes[cid])
	}
	return out
}

// AttachContent sets the content of a note that has none.
func (t *Tree) AttachContent(id uuid.UUID, c Content) error {
	n := t.notes[id]
	if n == nil {
		return fmt.Errorf("graph: note %s does not exist", id)
	}
	if n.Content.Kind != KindNone {
		return ErrContentExists
	}
	n.Content = c
	return nil
}

// Remove unlinks a single note from the arena. Its children, if any, are left
// dangling; callers are expected to drain descendants first.
func (t *Tree) Remove(id uuid.UUID) {
	n := t.notes[id]
	if n == nil {
		return
	}
	delete(t.notes, id)
	delete(t.children, id)
	if n.IsRoot() {
		t.root = uuid.Nil
		return
	}
	siblings := t.children[n.ParentID]
	for i, sid := range siblings {
		if sid == id {
			t.children[n.ParentID] = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
}

// PathToRoot walks parent links from the note to the root, inclusive, and
// returns the chain note-first. A chain longer than the arena means the parent
// links loop; that returns ErrCycle rather than a truncated path.
func (t *Tree) PathToRoot(id uuid.UUID) ([]*Note, error) {
	n := t.notes[id]
	if n == nil {
		return nil, fmt.Errorf("graph: note %s does not exist", id)
	}
	chain := []*Note{n}
	for !n.IsRoot() {
		if len(chain) > len(t.notes) {
			return nil, ErrCycle
		}
		n = t.notes[n.ParentID]
		if n == nil {
			return nil, fmt.Errorf("graph: dangling parent link on %s", chain[len(chain)-1].ID)
		}
		chain = append(chain, n)
	}
	return chain, nil
}

// Hydrate bulk-loads notes into an empty tree. The input may arrive in any
// order; inserts are retried until the parent of every note is present.
// Notes whose parent never materializes are rejected as dangling.
func (t *Tree) Hydrate(notes []*Note) error {
	pending := notes
	for len(pending) > 0 {
		var next []*Note
		progress := false
		for _, n := range pending {
			if !n.IsRoot() {
				if _, ok := t.notes[n.ParentID]; !ok {
					next = append(next, n)
					continue
				}
			}
			if err := t.Insert(n); err != nil {
				return err
			}
			progress = true
		}
		if !progress {
			return fmt.Errorf("graph: %d notes with dangling parent links", len(next))
		}
		pending = next
	}
	return nil
}

// sortChildren keeps a children slice in display order: creation time
// ascending, ID as a deterministic tie-break.
func (t *Tree) sortChildren(parent uuid.UUID) {
	ids := t.children[parent]
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := t.notes[ids[i]], t.notes[ids[j]]
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID.String() < b.ID.String()
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}
