package security

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePayloadSize(t *testing.T) {
	t.Parallel()

	if err := ValidatePayloadSize([]byte(`{"x":1}`), 64); err != nil {
		t.Fatalf("small payload rejected: %v", err)
	}
	err := ValidatePayloadSize(make([]byte, 65), 64)
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
	// Zero limit falls back to the default.
	if err := ValidatePayloadSize(make([]byte, 1024), 0); err != nil {
		t.Fatalf("default limit rejected 1 KiB: %v", err)
	}
}

func TestValidateJSONDepth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
		limit   int
		wantErr error
	}{
		{name: "flat object", payload: `{"x": 10, "y": 20}`, limit: 4},
		{name: "nested within limit", payload: `{"style": {"gradient": {"stops": [1, 2]}}}`, limit: 4},
		{name: "too deep", payload: `{"a": {"b": {"c": {"d": 1}}}}`, limit: 3, wantErr: ErrJSONTooDeep},
		{name: "deep array", payload: strings.Repeat("[", 20) + strings.Repeat("]", 20), limit: 16, wantErr: ErrJSONTooDeep},
		{name: "malformed", payload: `{"a":`, limit: 16, wantErr: ErrInvalidJSON},
		{name: "empty", payload: "", limit: 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateJSONDepth([]byte(tt.payload), tt.limit)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
