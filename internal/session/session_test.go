package session

import (
	"errors"
	"testing"

	"github.com/flemzord/easel/internal/scene"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := New(800, 600)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func addText(t *testing.T, s *Session, text string) string {
	t.Helper()
	obj, err := s.Document().Add(scene.Object{Kind: scene.KindText, Text: text})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	return obj.ID
}

func TestNewSession(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	if s.ID == "" {
		t.Fatal("expected non-empty session id")
	}
	if s.Document().Width() != 800 || s.Document().Height() != 600 {
		t.Fatalf("unexpected canvas dimensions %dx%d", s.Document().Width(), s.Document().Height())
	}

	if _, err := New(0, 600); !errors.Is(err, scene.ErrInvalidCanvasSize) {
		t.Fatalf("expected ErrInvalidCanvasSize, got %v", err)
	}
}

func TestSetSelectionValidatesIDs(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	id := addText(t, s, "Title")

	if err := s.SetSelection([]string{id}); err != nil {
		t.Fatalf("SetSelection: %v", err)
	}
	if got := s.SelectedIDs(); len(got) != 1 || got[0] != id {
		t.Fatalf("expected selection [%s], got %v", id, got)
	}

	if err := s.SetSelection([]string{"missing"}); !errors.Is(err, scene.ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
	// Failed update leaves the previous selection intact.
	if got := s.SelectedIDs(); len(got) != 1 || got[0] != id {
		t.Fatalf("expected selection preserved, got %v", got)
	}
}

func TestSelectedIDsPrunesDeleted(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	a := addText(t, s, "a")
	b := addText(t, s, "b")

	if err := s.SetSelection([]string{a, b}); err != nil {
		t.Fatalf("SetSelection: %v", err)
	}
	if err := s.Document().Delete(a); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := s.SelectedIDs(); len(got) != 1 || got[0] != b {
		t.Fatalf("expected pruned selection [%s], got %v", b, got)
	}
}

func TestSnapshotRestoreClearsSelection(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	id := addText(t, s, "keep")
	if err := s.SetSelection([]string{id}); err != nil {
		t.Fatalf("SetSelection: %v", err)
	}

	data, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	doc, err := scene.Restore(data)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	s.RestoreDocument(doc)

	if got := s.SelectedIDs(); len(got) != 0 {
		t.Fatalf("expected empty selection after restore, got %v", got)
	}
	if !s.HasObject(id) {
		t.Fatal("expected restored document to keep the object")
	}
}

func TestManagerLifecycle(t *testing.T) {
	t.Parallel()

	m := NewManager(0)
	s, err := m.Create(800, 600)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := m.Get(s.ID)
	if err != nil || got != s {
		t.Fatalf("Get: %v, %v", got, err)
	}
	if m.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", m.Len())
	}

	if err := m.Delete(s.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Get(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := m.Delete(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound on double delete, got %v", err)
	}
}

func TestManagerEnforcesCap(t *testing.T) {
	t.Parallel()

	m := NewManager(1)
	if _, err := m.Create(100, 100); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := m.Create(100, 100); !errors.Is(err, ErrTooManySessions) {
		t.Fatalf("expected ErrTooManySessions, got %v", err)
	}
}

func TestManagerRange(t *testing.T) {
	t.Parallel()

	m := NewManager(0)
	for range 3 {
		if _, err := m.Create(100, 100); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	seen := 0
	m.Range(func(*Session) { seen++ })
	if seen != 3 {
		t.Fatalf("expected 3 sessions visited, got %d", seen)
	}
}
