// Package tool defines the tool catalogue, parameter validation, and
// dispatch model of the canvas layer. Tools are the only way callers touch
// a document: every call is schema-validated before its handler runs,
// destructive tools are gated on an explicit confirmation parameter, and
// every failure is normalized to a closed error taxonomy.
package tool

import (
	"context"
	"encoding/json"
)

// Handler executes one tool call with already-validated arguments. It
// returns the tool-specific result payload, or an error the dispatcher
// normalizes. Handlers are synchronous and must leave the document fully
// applied or untouched.
type Handler func(ctx context.Context, args Args) (map[string]any, error)

// Tool is one named, schema-validated operation.
type Tool struct {
	// Name uniquely identifies the tool. Matching is exact and
	// case-sensitive.
	Name string

	// Description is the human- and agent-readable summary.
	Description string

	// Params declares the parameter schema validated before dispatch.
	Params Schema

	// Destructive marks tools that must not run without confirm: true.
	Destructive bool

	// ReadOnly marks accessor tools; they never mutate the document.
	ReadOnly bool

	// Handler runs the call.
	Handler Handler
}

// Args is a validated parameter payload. The accessors assume the schema
// already checked types; they exist for handler convenience.
type Args map[string]any

// String returns a string parameter, or "" when absent.
func (a Args) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Float returns a numeric parameter, or 0 when absent.
func (a Args) Float(name string) float64 {
	switch v := a[name].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	default:
		return 0
	}
}

// Bool returns a boolean parameter, or false when absent.
func (a Args) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

// Object returns an object parameter, or nil when absent.
func (a Args) Object(name string) map[string]any {
	o, _ := a[name].(map[string]any)
	return o
}

// Has reports whether the parameter was supplied at all.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}
