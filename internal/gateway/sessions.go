package gateway

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flemzord/easel/internal/scene"
	"github.com/flemzord/easel/internal/security"
	"github.com/flemzord/easel/internal/session"
	sqlitestore "github.com/flemzord/easel/internal/store/sqlite"
	"github.com/flemzord/easel/internal/tool"
)

// sessionJSON is a serializable session summary.
type sessionJSON struct {
	ID        string `json:"id"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Objects   int    `json:"objects"`
	CreatedAt string `json:"created_at"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (g *Gateway) summarize(sess *session.Session) sessionJSON {
	return sessionJSON{
		ID:        sess.ID,
		Width:     sess.Document().Width(),
		Height:    sess.Document().Height(),
		Objects:   sess.Document().Len(),
		CreatedAt: sess.Created.Format("2006-01-02T15:04:05Z"),
	}
}

// handleCreateSession opens a new session, falling back to the configured
// canvas defaults when the body omits dimensions.
func (g *Gateway) handleCreateSession() http.HandlerFunc {
	type request struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if err := g.limiter.Allow(security.BucketSession); err != nil {
			g.auditEvent(security.EventRateLimit, "", "session create throttled")
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}

		var req request
		if r.Body != nil {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
				http.Error(w, "invalid request body", http.StatusBadRequest)
				return
			}
		}
		if req.Width == 0 {
			req.Width = g.cfg.Canvas.DefaultWidth
		}
		if req.Height == 0 {
			req.Height = g.cfg.Canvas.DefaultHeight
		}

		sess, err := g.openSession(req.Width, req.Height)
		switch {
		case errors.Is(err, session.ErrTooManySessions):
			http.Error(w, err.Error(), http.StatusConflict)
			return
		case errors.Is(err, scene.ErrInvalidCanvasSize):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case err != nil:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		g.auditEvent(security.EventSessionCreate, sess.ID, "")
		g.metrics.SetSessions(g.sessions.Len())
		writeJSON(w, http.StatusCreated, g.summarize(sess))
	}
}

// handleListSessions returns all open sessions as JSON.
func (g *Gateway) handleListSessions() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		sessions := []sessionJSON{}
		g.sessions.Range(func(sess *session.Session) {
			sessions = append(sessions, g.summarize(sess))
		})
		writeJSON(w, http.StatusOK, sessions)
	}
}

// handleGetSession returns one session summary.
func (g *Gateway) handleGetSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := g.sessions.Get(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, g.summarize(sess))
	}
}

// handleDeleteSession deletes a session by its ID.
func (g *Gateway) handleDeleteSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := g.closeSession(id); err != nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		g.auditEvent(security.EventSessionDelete, id, "")
		g.metrics.SetSessions(g.sessions.Len())
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleSetSelection replaces the session's selection. The tool layer only
// ever reads selection; this is the one write path, owned by the dashboard.
func (g *Gateway) handleSetSelection() http.HandlerFunc {
	type request struct {
		IDs []string `json:"ids"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := g.sessions.Get(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if err := sess.SetSelection(req.IDs); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// toolJSON is one catalogue entry with its rendered parameter schema.
type toolJSON struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Destructive bool            `json:"destructive"`
	ReadOnly    bool            `json:"readOnly"`
	Schema      json.RawMessage `json:"parameters"`
}

// handleListTools returns the session's tool catalogue for discovery.
func (g *Gateway) handleListTools() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reg, ok := g.registry(chi.URLParam(r, "id"))
		if !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		infos := reg.List()
		out := make([]toolJSON, 0, len(infos))
		for _, info := range infos {
			out = append(out, toolJSON{
				Name:        info.Name,
				Description: info.Description,
				Destructive: info.Destructive,
				ReadOnly:    info.ReadOnly,
				Schema:      info.Schema.JSONSchema(),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// handleDispatchTool runs one tool call. The HTTP status is 200 for every
// dispatched call, success or typed failure; the body carries the result
// contract. Only transport-level problems use HTTP error codes.
func (g *Gateway) handleDispatchTool() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := g.limiter.Allow(security.BucketToolCall); err != nil {
			g.auditEvent(security.EventRateLimit, chi.URLParam(r, "id"), "tool call throttled")
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}

		disp, ok := g.dispatcher(chi.URLParam(r, "id"))
		if !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, security.DefaultMaxPayloadSize+1))
		if err != nil {
			http.Error(w, "failed to read body", http.StatusBadRequest)
			return
		}
		if err := security.ValidatePayloadSize(body, 0); err != nil {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		if err := security.ValidateJSONDepth(body, 0); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		params := map[string]any{}
		if len(body) > 0 {
			if err := json.Unmarshal(body, &params); err != nil {
				http.Error(w, "invalid JSON body", http.StatusBadRequest)
				return
			}
		}

		result := disp.Dispatch(r.Context(), tool.Call{
			Tool:   chi.URLParam(r, "name"),
			Params: params,
		})
		writeJSON(w, http.StatusOK, result)
	}
}

// handleSaveSnapshot persists the session's document.
func (g *Gateway) handleSaveSnapshot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if g.cfg.Store == nil {
			http.Error(w, "snapshots not configured", http.StatusNotImplemented)
			return
		}
		sess, err := g.sessions.Get(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		data, err := sess.Snapshot()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if err := g.cfg.Store.Save(r.Context(), sess.ID, data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleRestoreSnapshot replaces the session's document with its stored
// snapshot. The selection is cleared; the dashboard re-reports it.
func (g *Gateway) handleRestoreSnapshot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if g.cfg.Store == nil {
			http.Error(w, "snapshots not configured", http.StatusNotImplemented)
			return
		}
		sess, err := g.sessions.Get(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		data, err := g.cfg.Store.Load(r.Context(), sess.ID)
		if errors.Is(err, sqlitestore.ErrSnapshotNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		doc, err := scene.Restore(data)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		sess.RestoreDocument(doc)
		writeJSON(w, http.StatusOK, g.summarize(sess))
	}
}

func (g *Gateway) auditEvent(typ security.EventType, sessionID, detail string) {
	if g.cfg.Audit == nil {
		return
	}
	g.cfg.Audit.Log(security.AuditEvent{
		Type:      typ,
		SessionID: sessionID,
		Detail:    detail,
	})
}
