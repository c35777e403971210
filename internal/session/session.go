// Package session owns the live documents. Each session wraps exactly one
// scene document plus the selection state reported by the embedding
// dashboard; the session mutex is what gives the tool layer its
// single-writer, call-ordered semantics. Documents are passed-in handles,
// never package-level singletons, so any number of canvases can coexist
// and tests build isolated instances.
package session

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flemzord/easel/internal/scene"
)

// Session binds one document to one editing session.
type Session struct {
	ID      string
	Created time.Time

	mu       sync.Mutex
	doc      *scene.Document
	selected []string
}

// New creates a session around a fresh document.
func New(width, height int) (*Session, error) {
	doc, err := scene.NewDocument(width, height)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:      newID(),
		Created: time.Now().UTC(),
		doc:     doc,
	}, nil
}

// Document returns the underlying document. Callers outside a dispatched
// tool call must hold Locker for any access.
func (s *Session) Document() *scene.Document { return s.doc }

// Locker exposes the session mutex; the dispatcher holds it for the whole
// of every call.
func (s *Session) Locker() sync.Locker { return &s.mu }

// SetSelection replaces the selection with ids, validating that each id
// exists. Selection is maintained by the embedding application; the tool
// layer only ever reads it.
func (s *Session) SetSelection(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if _, err := s.doc.Get(id); err != nil {
			return fmt.Errorf("selection: %w", err)
		}
	}
	s.selected = slices.Clone(ids)
	return nil
}

// ClearSelection empties the selection.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// SelectedIDs returns the current selection, pruned of ids that were
// deleted since the selection was reported. Like HasObject and
// TextObjects it assumes the caller holds the session lock; the
// dispatcher does so for every tool call.
func (s *Session) SelectedIDs() []string {
	var live []string
	for _, id := range s.selected {
		if _, err := s.doc.Get(id); err == nil {
			live = append(live, id)
		}
	}
	return live
}

// HasObject reports whether the document holds an object with the id.
func (s *Session) HasObject(id string) bool {
	_, err := s.doc.Get(id)
	return err == nil
}

// TextObjects lists every text object.
func (s *Session) TextObjects() []scene.TextInfo {
	return s.doc.TextObjects()
}

// Snapshot serializes the document under the session lock.
func (s *Session) Snapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Snapshot()
}

// RestoreDocument swaps in a document deserialized from a snapshot.
func (s *Session) RestoreDocument(doc *scene.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.selected = nil
}

// newID is separated for tests that need deterministic session ids.
var newID = uuid.NewString
