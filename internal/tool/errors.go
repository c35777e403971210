package tool

import "fmt"

// Kind is the closed error taxonomy of the tool boundary. Every failed
// call maps to exactly one kind; nothing else crosses the boundary.
type Kind string

// Error kinds.
const (
	KindValidation           Kind = "validation_error"
	KindNotFound             Kind = "not_found"
	KindAmbiguous            Kind = "ambiguous"
	KindNoSelection          Kind = "no_selection"
	KindTypeMismatch         Kind = "type_mismatch"
	KindConfirmationRequired Kind = "confirmation_required"
	KindUnknownTool          Kind = "unknown_tool"
	KindPresetNotFound       Kind = "preset_not_found"
)

// Error is a typed tool failure. It is returned, never panicked, and the
// dispatcher guarantees every handler failure is normalized to one.
type Error struct {
	Kind    Kind           `json:"error"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Errorf builds a typed tool error with a formatted message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithDetails attaches structured detail to the error and returns it.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}
