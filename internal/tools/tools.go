// Package tools registers the concrete canvas catalogue against one
// session: the read accessors, the mutation handlers, and the style
// engine surface. Handlers close over the session, so every registry is
// bound to exactly one document and carries no cross-session state.
package tools

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/flemzord/easel/internal/event"
	"github.com/flemzord/easel/internal/resolve"
	"github.com/flemzord/easel/internal/scene"
	"github.com/flemzord/easel/internal/session"
	"github.com/flemzord/easel/internal/style"
	"github.com/flemzord/easel/internal/tool"
)

// Config wires one catalogue.
type Config struct {
	// Session owns the document the tools operate on. Required.
	Session *session.Session

	// Presets is the style preset library. Required.
	Presets *style.Library

	// Events, if non-nil, receives a document-change notification after
	// every successful mutation.
	Events *event.Hub
}

// NewRegistry builds the full catalogue for one session.
func NewRegistry(cfg Config) (*tool.Registry, error) {
	if cfg.Session == nil {
		return nil, errors.New("tools: session is required")
	}
	if cfg.Presets == nil {
		return nil, errors.New("tools: preset library is required")
	}

	c := &catalogue{
		session: cfg.Session,
		doc:     cfg.Session.Document(),
		presets: cfg.Presets,
		events:  cfg.Events,
	}

	reg := tool.NewRegistry()
	for _, t := range c.tools() {
		if err := reg.Register(t); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

type catalogue struct {
	session *session.Session
	doc     *scene.Document
	presets *style.Library
	events  *event.Hub
}

func (c *catalogue) tools() []tool.Tool {
	var all []tool.Tool
	all = append(all, c.readTools()...)
	all = append(all, c.mutationTools()...)
	all = append(all, c.styleTools()...)
	return all
}

// changed publishes a document-change notification for a completed
// mutation.
func (c *catalogue) changed(toolName string) {
	if c.events == nil {
		return
	}
	c.events.Publish(event.Event{
		Type:      event.TypeDocumentChanged,
		SessionID: c.session.ID,
		Tool:      toolName,
	})
}

// referenceParams is the shared parameter triple every object-targeting
// tool accepts: an explicit id, a text-content reference, or the current
// selection. Exactly one strategy is consulted, in that order.
func referenceParams() []tool.Param {
	return []tool.Param{
		{Name: "id", Type: tool.TypeString, Description: "Explicit object id."},
		{Name: "targetText", Type: tool.TypeString, Description: "Match a text object by its content (exact match preferred, then substring)."},
		{Name: "selected", Type: tool.TypeBoolean, Description: "Target the currently selected object."},
	}
}

// target resolves the reference parameters of args to exactly one object
// id, or a typed failure the dispatcher passes through unchanged.
func (c *catalogue) target(args tool.Args) (string, error) {
	ref := resolve.Reference{
		ID:       args.String("id"),
		Text:     args.String("targetText"),
		Selected: args.Bool("selected"),
	}

	out, err := resolve.Resolve(c.session, ref)
	if err != nil {
		return "", tool.Errorf(tool.KindValidation,
			"object reference required: supply id, targetText, or selected")
	}

	switch out.Status {
	case resolve.StatusResolved:
		return out.ID, nil
	case resolve.StatusNotFound:
		return "", tool.Errorf(tool.KindNotFound, "no object matches the reference")
	case resolve.StatusAmbiguous:
		return "", tool.Errorf(tool.KindAmbiguous,
			"reference matches %d objects; disambiguate with an explicit id", len(out.Candidates)).
			WithDetails(map[string]any{"candidates": out.Candidates})
	case resolve.StatusNoSelection:
		return "", tool.Errorf(tool.KindNoSelection, "no object is currently selected")
	default:
		return "", tool.Errorf(tool.KindValidation, "unresolvable reference")
	}
}

// asMap converts a typed read model into the generic result payload shape.
func asMap(v any) map[string]any {
	data, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return map[string]any{}
	}
	return m
}

// asSlice converts a slice read model into generic result elements.
func asSlice[T any](items []T) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, asMap(item))
	}
	return out
}

// decodeBackground parses a background descriptor, rejecting unknown
// fields so typos fail loudly instead of silently producing a default.
func decodeBackground(raw map[string]any) (scene.Background, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return scene.Background{}, tool.Errorf(tool.KindValidation, "background: %v", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var bg scene.Background
	if err := dec.Decode(&bg); err != nil {
		return scene.Background{}, tool.Errorf(tool.KindValidation, "background: %v", err)
	}
	return bg, nil
}
