package resolve

import (
	"errors"
	"testing"

	"github.com/flemzord/easel/internal/scene"
)

type fakeSource struct {
	objects  map[string]bool
	texts    []scene.TextInfo
	selected []string
}

func (f fakeSource) HasObject(id string) bool      { return f.objects[id] }
func (f fakeSource) TextObjects() []scene.TextInfo { return f.texts }
func (f fakeSource) SelectedIDs() []string         { return f.selected }

func TestResolve_ExplicitID(t *testing.T) {
	t.Parallel()

	src := fakeSource{objects: map[string]bool{"obj-1": true}}

	out, err := Resolve(src, Reference{ID: "obj-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != StatusResolved || out.ID != "obj-1" {
		t.Fatalf("outcome = %+v, want resolved obj-1", out)
	}

	out, err = Resolve(src, Reference{ID: "obj-9"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != StatusNotFound {
		t.Fatalf("outcome = %+v, want not_found", out)
	}
}

func TestResolve_TextMatchSingle(t *testing.T) {
	t.Parallel()

	src := fakeSource{texts: []scene.TextInfo{
		{ID: "a", Text: "Summer Sale"},
		{ID: "b", Text: "New Arrivals"},
	}}

	out, err := Resolve(src, Reference{Text: "sale"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != StatusResolved || out.ID != "a" {
		t.Fatalf("outcome = %+v, want resolved a", out)
	}
}

func TestResolve_TextMatchAmbiguousListsAllCandidates(t *testing.T) {
	t.Parallel()

	src := fakeSource{texts: []scene.TextInfo{
		{ID: "a", Text: "Summer Sale"},
		{ID: "b", Text: "Winter Sale"},
		{ID: "c", Text: "About us"},
	}}

	out, err := Resolve(src, Reference{Text: "Sale"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != StatusAmbiguous {
		t.Fatalf("outcome = %+v, want ambiguous", out)
	}
	if len(out.Candidates) != 2 {
		t.Fatalf("candidates = %+v, want both sale objects", out.Candidates)
	}
	ids := map[string]bool{}
	for _, c := range out.Candidates {
		ids[c.ID] = true
	}
	if !ids["a"] || !ids["b"] {
		t.Fatalf("candidates = %+v, want ids a and b", out.Candidates)
	}
}

func TestResolve_ExactMatchBeatsSubstring(t *testing.T) {
	t.Parallel()

	src := fakeSource{texts: []scene.TextInfo{
		{ID: "a", Text: "Sale"},
		{ID: "b", Text: "Sale ends Friday"},
	}}

	out, err := Resolve(src, Reference{Text: "sale"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != StatusResolved || out.ID != "a" {
		t.Fatalf("outcome = %+v, want exact match a", out)
	}
}

func TestResolve_TextMatchNone(t *testing.T) {
	t.Parallel()

	src := fakeSource{texts: []scene.TextInfo{{ID: "a", Text: "hello"}}}

	out, err := Resolve(src, Reference{Text: "missing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != StatusNotFound {
		t.Fatalf("outcome = %+v, want not_found", out)
	}
}

func TestResolve_Selection(t *testing.T) {
	t.Parallel()

	out, err := Resolve(fakeSource{selected: []string{"sel-1"}}, Reference{Selected: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != StatusResolved || out.ID != "sel-1" {
		t.Fatalf("outcome = %+v, want resolved sel-1", out)
	}

	out, err = Resolve(fakeSource{}, Reference{Selected: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != StatusNoSelection {
		t.Fatalf("outcome = %+v, want no_selection", out)
	}

	out, err = Resolve(fakeSource{selected: []string{"s1", "s2"}}, Reference{Selected: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != StatusAmbiguous || len(out.Candidates) != 2 {
		t.Fatalf("outcome = %+v, want ambiguous with 2 candidates", out)
	}
}

func TestResolve_EmptyReference(t *testing.T) {
	t.Parallel()

	if _, err := Resolve(fakeSource{}, Reference{}); !errors.Is(err, ErrEmptyReference) {
		t.Fatalf("expected ErrEmptyReference, got %v", err)
	}
}

func TestResolve_IDTakesPrecedenceOverText(t *testing.T) {
	t.Parallel()

	src := fakeSource{
		objects: map[string]bool{"obj-1": true},
		texts:   []scene.TextInfo{{ID: "other", Text: "obj"}},
	}
	out, err := Resolve(src, Reference{ID: "obj-1", Text: "obj"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ID != "obj-1" {
		t.Fatalf("outcome = %+v, want explicit id to win", out)
	}
}
