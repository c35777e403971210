package tool

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Registry construction errors. These are programming errors surfaced at
// wiring time, not part of the call-level taxonomy.
var (
	ErrEmptyToolName = errors.New("tool name must not be empty")
	ErrNilHandler    = errors.New("tool must have a handler")
	ErrDuplicateTool = errors.New("tool already registered")
)

// ToolInfo pairs a tool's name with its metadata for discovery listings.
type ToolInfo struct {
	Name        string
	Description string
	Destructive bool
	ReadOnly    bool
	Schema      Schema
}

// Registry is the catalogue of tools bound to one document session.
// Registration happens once at session construction; afterwards the
// registry is read-only, so lookups need no locking (the session
// serialises calls anyway).
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Names must be unique and non-empty, and destructive
// tools must declare a confirm parameter so the gate has something to read.
func (r *Registry) Register(t Tool) error {
	if strings.TrimSpace(t.Name) == "" || t.Name != strings.TrimSpace(t.Name) {
		return fmt.Errorf("%w: %q", ErrEmptyToolName, t.Name)
	}
	if t.Handler == nil {
		return fmt.Errorf("%w: %s", ErrNilHandler, t.Name)
	}
	if _, exists := r.tools[t.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, t.Name)
	}
	if t.Destructive {
		if !slices.ContainsFunc(t.Params, func(p Param) bool {
			return p.Name == ConfirmParam && p.Type == TypeBoolean
		}) {
			return fmt.Errorf("destructive tool %s must declare a boolean %q parameter", t.Name, ConfirmParam)
		}
	}

	r.tools[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

// MustRegister registers or panics. For the static catalogue, where a
// failure is a build-time bug.
func (r *Registry) MustRegister(t Tool) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Get returns the named tool.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns all tool names sorted alphabetically.
func (r *Registry) Names() []string {
	names := slices.Clone(r.order)
	slices.Sort(names)
	return names
}

// List returns metadata for every registered tool, sorted by name.
func (r *Registry) List() []ToolInfo {
	infos := make([]ToolInfo, 0, len(r.tools))
	for _, t := range r.tools {
		infos = append(infos, ToolInfo{
			Name:        t.Name,
			Description: t.Description,
			Destructive: t.Destructive,
			ReadOnly:    t.ReadOnly,
			Schema:      t.Params,
		})
	}
	slices.SortFunc(infos, func(a, b ToolInfo) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return infos
}
