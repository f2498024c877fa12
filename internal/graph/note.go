// Package graph defines the in-memory note tree: note records, the tagged
// content variant, and the arena that enforces the tree shape. No I/O happens
// here; persistence and indexing live in their own packages.
package graph

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTitle is the application name, used both for a freshly synthesized
// root note and as the display-title fallback for untitled container notes.
const DefaultTitle = "Waynote"

// ContentKind tags the payload variant attached to a note.
type ContentKind int

const (
	KindNone ContentKind = iota
	KindText
	KindAudio
)

// String returns the storage name of the kind.
func (k ContentKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindAudio:
		return "audio"
	default:
		return "none"
	}
}

// KindFromString maps a storage name back to a ContentKind.
// Unknown names map to KindNone.
func KindFromString(s string) ContentKind {
	switch s {
	case "text":
		return KindText
	case "audio":
		return KindAudio
	default:
		return KindNone
	}
}

// Content is the payload of a note as a tagged variant.
// Text is meaningful only for KindText; FileName and Duration only for
// KindAudio. Duration is seconds and stays 0 until a recording finishes.
type Content struct {
	Kind     ContentKind
	Text     string
	FileName string
	Duration float64
}

// TextContent builds a text variant.
func TextContent(text string) Content {
	return Content{Kind: KindText, Text: text}
}

// AudioContent builds an audio variant with no recorded duration yet.
func AudioContent(fileName string) Content {
	return Content{Kind: KindAudio, FileName: fileName}
}

// Note is a node in the document tree.
// ParentID is uuid.Nil for the root. Child links are maintained by the Tree,
// not on the note itself.
type Note struct {
	ID        uuid.UUID
	Title     string
	CreatedAt time.Time
	ParentID  uuid.UUID
	Content   Content
}

// IsRoot reports whether the note has no parent.
func (n *Note) IsRoot() bool {
	return n.ParentID == uuid.Nil
}
