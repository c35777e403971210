// Package resolve turns a caller-supplied object reference (explicit id,
// text-content match, or "the selected object") into exactly one object id,
// or a typed outcome describing why it could not. It never mutates and
// never guesses: ambiguity is reported with the full candidate list.
package resolve

import (
	"errors"
	"strings"

	"github.com/flemzord/easel/internal/scene"
)

// ErrEmptyReference is returned when a reference carries no strategy at all.
var ErrEmptyReference = errors.New("reference must supply an id, text, or selected")

// Source is the read-only document view the resolver works against.
type Source interface {
	// HasObject reports whether an object with the given id exists.
	HasObject(id string) bool

	// TextObjects lists every text object with its content.
	TextObjects() []scene.TextInfo

	// SelectedIDs returns the externally maintained selection, in
	// selection order. Empty when nothing is selected.
	SelectedIDs() []string
}

// Reference is a caller-supplied pointer at one object. Strategies are
// tried in order: explicit id, then text match, then selection.
type Reference struct {
	ID       string
	Text     string
	Selected bool
}

// Status discriminates resolution outcomes.
type Status string

// Resolution outcomes.
const (
	StatusResolved    Status = "resolved"
	StatusNotFound    Status = "not_found"
	StatusAmbiguous   Status = "ambiguous"
	StatusNoSelection Status = "no_selection"
)

// Candidate is one possible target of an ambiguous reference.
type Candidate struct {
	ID   string `json:"id"`
	Text string `json:"text,omitempty"`
}

// Outcome is the result of resolving a reference. ID is set only when
// Status is StatusResolved; Candidates only when StatusAmbiguous.
type Outcome struct {
	Status     Status
	ID         string
	Candidates []Candidate
}

// Resolve runs the strategy chain for ref against src.
func Resolve(src Source, ref Reference) (Outcome, error) {
	switch {
	case ref.ID != "":
		return byExplicitID(src, ref.ID), nil
	case ref.Text != "":
		return byTextMatch(src, ref.Text), nil
	case ref.Selected:
		return bySelection(src), nil
	default:
		return Outcome{}, ErrEmptyReference
	}
}

func byExplicitID(src Source, id string) Outcome {
	if !src.HasObject(id) {
		return Outcome{Status: StatusNotFound}
	}
	return Outcome{Status: StatusResolved, ID: id}
}

// byTextMatch matches needle against every text object's content. An exact
// match (case-insensitive) beats substring matches; multiple surviving
// candidates are reported as ambiguous, never picked from.
func byTextMatch(src Source, needle string) Outcome {
	folded := strings.ToLower(needle)

	var exact, partial []Candidate
	for _, info := range src.TextObjects() {
		content := strings.ToLower(info.Text)
		switch {
		case content == folded:
			exact = append(exact, Candidate{ID: info.ID, Text: info.Text})
		case strings.Contains(content, folded):
			partial = append(partial, Candidate{ID: info.ID, Text: info.Text})
		}
	}

	matches := exact
	if len(matches) == 0 {
		matches = partial
	}

	switch len(matches) {
	case 0:
		return Outcome{Status: StatusNotFound}
	case 1:
		return Outcome{Status: StatusResolved, ID: matches[0].ID}
	default:
		return Outcome{Status: StatusAmbiguous, Candidates: matches}
	}
}

func bySelection(src Source) Outcome {
	selected := src.SelectedIDs()
	switch len(selected) {
	case 0:
		return Outcome{Status: StatusNoSelection}
	case 1:
		return Outcome{Status: StatusResolved, ID: selected[0]}
	default:
		candidates := make([]Candidate, 0, len(selected))
		for _, id := range selected {
			candidates = append(candidates, Candidate{ID: id})
		}
		return Outcome{Status: StatusAmbiguous, Candidates: candidates}
	}
}
