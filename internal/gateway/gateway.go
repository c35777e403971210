// Package gateway is the HTTP surface the embedding dashboard talks to:
// session lifecycle, selection updates, tool dispatch, snapshot
// persistence, and a websocket stream of document-change events.
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/flemzord/easel/internal/config"
	"github.com/flemzord/easel/internal/event"
	"github.com/flemzord/easel/internal/security"
	"github.com/flemzord/easel/internal/session"
	sqlitestore "github.com/flemzord/easel/internal/store/sqlite"
	"github.com/flemzord/easel/internal/style"
	"github.com/flemzord/easel/internal/tool"
	"github.com/flemzord/easel/internal/tools"
)

// Config wires a Gateway.
type Config struct {
	// Server is the listen/auth/limit configuration.
	Server config.ServerConfig

	// Canvas supplies default dimensions for new sessions.
	Canvas config.CanvasConfig

	// Presets is the style preset library shared by all sessions. Required.
	Presets *style.Library

	// Logger defaults to slog.Default.
	Logger *slog.Logger

	// Audit, if non-nil, records session lifecycle and every dispatched
	// call.
	Audit *security.AuditLogger

	// Store, if non-nil, enables the snapshot save/restore endpoints.
	Store *sqlitestore.Store

	// Tracer, if non-nil, is handed to every dispatcher.
	Tracer trace.Tracer
}

// Gateway serves the HTTP API. Each session carries its own registry and
// dispatcher, built when the session is created.
type Gateway struct {
	cfg     Config
	logger  *slog.Logger
	server  *http.Server
	metrics *Metrics
	limiter *security.RateLimiter

	sessions *session.Manager
	hub      *event.Hub

	mu          sync.Mutex
	dispatchers map[string]*tool.Dispatcher
	registries  map[string]*tool.Registry
}

// New creates a gateway.
func New(cfg Config) (*Gateway, error) {
	if cfg.Presets == nil {
		return nil, errors.New("gateway: preset library is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		cfg:     cfg,
		logger:  logger,
		metrics: NewMetrics(),
		limiter: security.NewRateLimiter(security.RateLimitConfig{
			ToolCallsPerMin: cfg.Server.RateLimit.ToolCallsPerMin,
			SessionsPerMin:  cfg.Server.RateLimit.SessionsPerMin,
		}),
		sessions:    session.NewManager(cfg.Server.MaxSessions),
		hub:         event.NewHub(),
		dispatchers: make(map[string]*tool.Dispatcher),
		registries:  make(map[string]*tool.Registry),
	}, nil
}

// Hub exposes the event hub, for tests and embedding callers.
func (g *Gateway) Hub() *event.Hub { return g.hub }

// Sessions exposes the session manager, for the autosave job.
func (g *Gateway) Sessions() *session.Manager { return g.sessions }

// Start begins serving. It returns once the listener is bound; serving
// continues in the background until Stop.
func (g *Gateway) Start() error {
	g.server = &http.Server{
		Addr:         g.cfg.Server.Listen,
		Handler:      g.buildRouter(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(context.Background(), "tcp", g.cfg.Server.Listen)
	if err != nil {
		return errors.New("gateway: listen failed: " + err.Error())
	}

	go func() {
		g.logger.Info("gateway listening", "addr", g.cfg.Server.Listen)
		if err := g.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			g.logger.Error("gateway serve error", "error", err)
		}
	}()

	return nil
}

// Stop shuts the server down gracefully.
func (g *Gateway) Stop(ctx context.Context) error {
	if g.server == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	g.logger.Info("gateway shutting down")
	return g.server.Shutdown(shutdownCtx)
}

// openSession creates a session plus its bound catalogue and dispatcher.
func (g *Gateway) openSession(width, height int) (*session.Session, error) {
	sess, err := g.sessions.Create(width, height)
	if err != nil {
		return nil, err
	}
	if err := g.bindSession(sess); err != nil {
		_ = g.sessions.Delete(sess.ID)
		return nil, err
	}
	return sess, nil
}

// bindSession builds the registry and dispatcher for a session.
func (g *Gateway) bindSession(sess *session.Session) error {
	reg, err := tools.NewRegistry(tools.Config{
		Session: sess,
		Presets: g.cfg.Presets,
		Events:  g.hub,
	})
	if err != nil {
		return err
	}

	disp := tool.NewDispatcher(tool.DispatcherConfig{
		Registry:  reg,
		Lock:      sess.Locker(),
		SessionID: sess.ID,
		Logger:    g.logger,
		Audit:     g.cfg.Audit,
		Tracer:    g.cfg.Tracer,
		Observer:  g.metrics.ObserveDispatch,
	})

	g.mu.Lock()
	g.dispatchers[sess.ID] = disp
	g.registries[sess.ID] = reg
	g.mu.Unlock()
	return nil
}

// closeSession removes a session and its bindings.
func (g *Gateway) closeSession(id string) error {
	if err := g.sessions.Delete(id); err != nil {
		return err
	}
	g.mu.Lock()
	delete(g.dispatchers, id)
	delete(g.registries, id)
	g.mu.Unlock()

	g.hub.Publish(event.Event{Type: event.TypeSessionClosed, SessionID: id})
	return nil
}

func (g *Gateway) dispatcher(id string) (*tool.Dispatcher, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	d, ok := g.dispatchers[id]
	return d, ok
}

func (g *Gateway) registry(id string) (*tool.Registry, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.registries[id]
	return r, ok
}
