package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/flemzord/easel/internal/geometry"
	"github.com/flemzord/easel/internal/scene"
	"github.com/flemzord/easel/internal/security"
	"github.com/flemzord/easel/internal/style"
)

// ConfirmParam is the boolean parameter destructive tools require. The gate
// is stateless: confirmation is supplied on the call itself, there is no
// pending-operation state between calls.
const ConfirmParam = "confirm"

// Observer is notified after every dispatched call, for metrics.
type Observer func(toolName, outcome string, elapsed time.Duration)

// DispatcherConfig wires a Dispatcher.
type DispatcherConfig struct {
	// Registry is the tool catalogue. Required.
	Registry *Registry

	// Lock, if non-nil, is held for the whole validate→execute span of a
	// call, giving single-writer semantics over the underlying document.
	Lock sync.Locker

	// SessionID tags audit events and spans.
	SessionID string

	// Logger receives per-call debug logging. Defaults to slog.Default.
	Logger *slog.Logger

	// Audit, if non-nil, records every call, result, and refused
	// confirmation as an independent event.
	Audit *security.AuditLogger

	// Tracer, if non-nil, wraps every call in a span.
	Tracer trace.Tracer

	// Observer, if non-nil, is called once per dispatch.
	Observer Observer
}

// Dispatcher is the single entry point for tool calls against one session.
// Calls are validated, confirmation-gated, executed one at a time, and
// every failure is normalized to the closed error taxonomy before being
// returned — errors never cross the boundary as Go errors.
type Dispatcher struct {
	registry  *Registry
	lock      sync.Locker
	sessionID string
	logger    *slog.Logger
	audit     *security.AuditLogger
	tracer    trace.Tracer
	observer  Observer
}

// NewDispatcher creates a dispatcher from cfg.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("easel")
	}
	return &Dispatcher{
		registry:  cfg.Registry,
		lock:      cfg.Lock,
		sessionID: cfg.SessionID,
		logger:    logger,
		audit:     cfg.Audit,
		tracer:    tracer,
		observer:  cfg.Observer,
	}
}

// Dispatch runs one call to completion: lookup → validate → confirmation
// gate → execute → normalize. It never returns a Go error; failures are
// typed Results.
func (d *Dispatcher) Dispatch(ctx context.Context, call Call) Result {
	start := time.Now()
	ctx, span := d.tracer.Start(ctx, "tool.dispatch",
		trace.WithAttributes(
			attribute.String("tool.name", call.Tool),
			attribute.String("session.id", d.sessionID),
		))
	defer span.End()

	result := d.dispatch(ctx, call)

	outcome := "success"
	if !result.Success {
		outcome = string(result.Err.Kind)
		span.SetAttributes(attribute.String("tool.error", outcome))
	}
	if d.observer != nil {
		d.observer(call.Tool, outcome, time.Since(start))
	}
	return result
}

func (d *Dispatcher) dispatch(ctx context.Context, call Call) Result {
	t, ok := d.registry.Get(call.Tool)
	if !ok {
		return Fail(Errorf(KindUnknownTool, "unknown tool %q", call.Tool).
			WithDetails(map[string]any{"knownTools": d.registry.Names()}))
	}

	args := Args(call.Params)
	if args == nil {
		args = Args{}
	}

	if verr := t.Params.Validate(args); verr != nil {
		return Fail(verr)
	}

	if t.Destructive && !args.Bool(ConfirmParam) {
		d.auditEvent(security.EventConfirmationRefused, call.Tool,
			"destructive call without confirm: true", nil)
		return Fail(Errorf(KindConfirmationRequired,
			"%s is destructive and requires confirm: true", call.Tool))
	}

	d.auditEvent(security.EventToolCall, call.Tool, truncateForAudit(encodeArgs(args)), nil)

	if d.lock != nil {
		d.lock.Lock()
		defer d.lock.Unlock()
	}

	data, err := t.Handler(ctx, args)
	if err != nil {
		terr := Normalize(err)
		d.logger.Debug("tool call failed",
			"tool", call.Tool,
			"session", d.sessionID,
			"kind", terr.Kind,
			"message", terr.Message,
		)
		d.auditEvent(security.EventToolResult, call.Tool, "error: "+terr.Message,
			map[string]string{"error": string(terr.Kind)})
		return Fail(terr)
	}

	d.auditEvent(security.EventToolResult, call.Tool, truncateForAudit(encodeArgs(data)),
		map[string]string{"error": ""})
	return OK(data)
}

// Normalize maps any handler failure onto the closed taxonomy. Typed tool
// errors pass through; known domain sentinels map to their kind; anything
// else is reported as a validation failure of the offending call.
func Normalize(err error) *Error {
	var terr *Error
	if errors.As(err, &terr) {
		return terr
	}

	kind := KindValidation
	switch {
	case errors.Is(err, scene.ErrObjectNotFound):
		kind = KindNotFound
	case errors.Is(err, scene.ErrTypeMismatch):
		kind = KindTypeMismatch
	case errors.Is(err, style.ErrPresetNotFound):
		kind = KindPresetNotFound
	case errors.Is(err, style.ErrUnknownKey),
		errors.Is(err, style.ErrInvalidValue),
		errors.Is(err, scene.ErrInvalidBackground),
		errors.Is(err, scene.ErrInvalidOrder),
		errors.Is(err, geometry.ErrUnknownPlacement):
		kind = KindValidation
	}
	return &Error{Kind: kind, Message: err.Error()}
}

func (d *Dispatcher) auditEvent(typ security.EventType, toolName, detail string, meta map[string]string) {
	if d.audit == nil {
		return
	}
	d.audit.Log(security.AuditEvent{
		Type:      typ,
		SessionID: d.sessionID,
		ToolName:  toolName,
		Detail:    detail,
		Metadata:  meta,
	})
}

func encodeArgs(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// maxAuditDetailLen caps audit detail strings so large payloads cannot
// bloat the log.
const maxAuditDetailLen = 4096

// truncateForAudit shortens s to maxAuditDetailLen, walking back to a rune
// boundary so multi-byte characters are never split.
func truncateForAudit(s string) string {
	if len(s) <= maxAuditDetailLen {
		return s
	}
	i := maxAuditDetailLen
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return s[:i] + "...(truncated)"
}
