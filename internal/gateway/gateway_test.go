package gateway

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flemzord/easel/internal/config"
	"github.com/flemzord/easel/internal/security"
	sqlitestore "github.com/flemzord/easel/internal/store/sqlite"
	"github.com/flemzord/easel/internal/style"
)

func newTestGateway(t *testing.T, mutate func(*Config)) (*Gateway, http.Handler) {
	t.Helper()

	presets, err := style.NewLibrary(nil)
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}
	cfg := Config{
		Server:  config.ServerConfig{Listen: "127.0.0.1:0"},
		Canvas:  config.CanvasConfig{DefaultWidth: 800, DefaultHeight: 600},
		Presets: presets,
	}
	if mutate != nil {
		mutate(&cfg)
	}

	g, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g, g.buildRouter()
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func createSession(t *testing.T, handler http.Handler) string {
	t.Helper()
	rec := doJSON(t, handler, http.MethodPost, "/api/sessions", map[string]any{})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: status %d: %s", rec.Code, rec.Body)
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.ID
}

func TestHealth(t *testing.T) {
	t.Parallel()

	_, handler := newTestGateway(t, nil)
	rec := doJSON(t, handler, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body %s", rec.Body)
	}
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	_, handler := newTestGateway(t, nil)
	id := createSession(t, handler)

	rec := doJSON(t, handler, http.MethodGet, "/api/sessions/"+id+"/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get session: status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"width":800`) {
		t.Fatalf("expected default canvas width, got %s", rec.Body)
	}

	rec = doJSON(t, handler, http.MethodDelete, "/api/sessions/"+id+"/", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete session: status %d", rec.Code)
	}
	rec = doJSON(t, handler, http.MethodGet, "/api/sessions/"+id+"/", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestCreateSessionRejectsBadDimensions(t *testing.T) {
	t.Parallel()

	_, handler := newTestGateway(t, nil)
	rec := doJSON(t, handler, http.MethodPost, "/api/sessions", map[string]any{"width": -5})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestToolDispatchRoundTrip(t *testing.T) {
	t.Parallel()

	_, handler := newTestGateway(t, nil)
	id := createSession(t, handler)

	rec := doJSON(t, handler, http.MethodPost, "/api/sessions/"+id+"/tools/add_text",
		map[string]any{"text": "Hello", "x": 10, "y": 20, "fontSize": 16, "color": "#000000"})
	if rec.Code != http.StatusOK {
		t.Fatalf("dispatch: status %d: %s", rec.Code, rec.Body)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["success"] != true || resp["objectId"] == nil {
		t.Fatalf("unexpected result %v", resp)
	}

	// Typed failures still ride on HTTP 200.
	rec = doJSON(t, handler, http.MethodPost, "/api/sessions/"+id+"/tools/no_such_tool", map[string]any{})
	if rec.Code != http.StatusOK {
		t.Fatalf("dispatch unknown tool: status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unknown_tool") {
		t.Fatalf("expected unknown_tool error, got %s", rec.Body)
	}
}

func TestToolDispatchUnknownSession(t *testing.T) {
	t.Parallel()

	_, handler := newTestGateway(t, nil)
	rec := doJSON(t, handler, http.MethodPost, "/api/sessions/nope/tools/add_text", map[string]any{})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestToolDispatchRejectsDeepJSON(t *testing.T) {
	t.Parallel()

	_, handler := newTestGateway(t, nil)
	id := createSession(t, handler)

	deep := strings.Repeat(`{"a":`, 40) + "1" + strings.Repeat("}", 40)
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+id+"/tools/add_text",
		strings.NewReader(deep))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for deep JSON, got %d", rec.Code)
	}
}

func TestSelectionEndpoint(t *testing.T) {
	t.Parallel()

	g, handler := newTestGateway(t, nil)
	id := createSession(t, handler)

	add := doJSON(t, handler, http.MethodPost, "/api/sessions/"+id+"/tools/add_text",
		map[string]any{"text": "sel", "x": 0, "y": 0, "fontSize": 16, "color": "#000000"})
	var result map[string]any
	if err := json.Unmarshal(add.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	objectID, _ := result["objectId"].(string)

	rec := doJSON(t, handler, http.MethodPut, "/api/sessions/"+id+"/selection",
		map[string]any{"ids": []string{objectID}})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("set selection: status %d: %s", rec.Code, rec.Body)
	}

	sess, err := g.sessions.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got := sess.SelectedIDs(); len(got) != 1 || got[0] != objectID {
		t.Fatalf("expected selection applied, got %v", got)
	}

	rec = doJSON(t, handler, http.MethodPut, "/api/sessions/"+id+"/selection",
		map[string]any{"ids": []string{"missing"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown id, got %d", rec.Code)
	}
}

func TestListTools(t *testing.T) {
	t.Parallel()

	_, handler := newTestGateway(t, nil)
	id := createSession(t, handler)

	rec := doJSON(t, handler, http.MethodGet, "/api/sessions/"+id+"/tools", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list tools: status %d", rec.Code)
	}
	var infos []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &infos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(infos) == 0 {
		t.Fatal("expected a non-empty catalogue")
	}
	for _, info := range infos {
		if info["name"] == "delete_object" && info["destructive"] != true {
			t.Fatalf("delete_object should be destructive: %v", info)
		}
	}
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	_, handler := newTestGateway(t, func(cfg *Config) {
		cfg.Server.AuthToken = "secret"
	})

	rec := doJSON(t, handler, http.MethodGet, "/api/sessions", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", rec.Code)
	}

	// Health stays public.
	rec = doJSON(t, handler, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected public health, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	_, handler := newTestGateway(t, nil)
	id := createSession(t, handler)
	doJSON(t, handler, http.MethodPost, "/api/sessions/"+id+"/tools/add_text",
		map[string]any{"text": "m", "x": 0, "y": 0, "fontSize": 16, "color": "#000000"})

	rec := doJSON(t, handler, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "easel_tool_calls_total") {
		t.Fatalf("expected tool call counter, got %s", rec.Body)
	}
}

func TestSnapshotSaveAndRestore(t *testing.T) {
	t.Parallel()

	store, err := sqlitestore.Open(filepath.Join(t.TempDir(), "easel.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	_, handler := newTestGateway(t, func(cfg *Config) {
		cfg.Store = store
	})
	id := createSession(t, handler)

	doJSON(t, handler, http.MethodPost, "/api/sessions/"+id+"/tools/add_text",
		map[string]any{"text": "persisted", "x": 0, "y": 0, "fontSize": 16, "color": "#000000"})

	rec := doJSON(t, handler, http.MethodPost, "/api/sessions/"+id+"/snapshot", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("snapshot: status %d: %s", rec.Code, rec.Body)
	}

	// Destroy the canvas, then restore.
	doJSON(t, handler, http.MethodPost, "/api/sessions/"+id+"/tools/clear_canvas",
		map[string]any{"confirm": true})
	rec = doJSON(t, handler, http.MethodPost, "/api/sessions/"+id+"/restore", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("restore: status %d: %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `"objects":1`) {
		t.Fatalf("expected restored object count, got %s", rec.Body)
	}
}

func TestSnapshotWithoutStore(t *testing.T) {
	t.Parallel()

	_, handler := newTestGateway(t, nil)
	id := createSession(t, handler)

	rec := doJSON(t, handler, http.MethodPost, "/api/sessions/"+id+"/snapshot", nil)
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501, got %d", rec.Code)
	}
}

func TestSessionRateLimit(t *testing.T) {
	t.Parallel()

	var events []security.AuditEvent
	audit := security.NewAuditLogger(security.AuditLoggerConfig{
		OnEvent: func(ev security.AuditEvent) { events = append(events, ev) },
	})

	_, handler := newTestGateway(t, func(cfg *Config) {
		cfg.Server.RateLimit.SessionsPerMin = 2
		cfg.Audit = audit
	})

	createSession(t, handler)
	createSession(t, handler)
	rec := doJSON(t, handler, http.MethodPost, "/api/sessions", map[string]any{})
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}

	limited := false
	for _, ev := range events {
		if ev.Type == security.EventRateLimit {
			limited = true
		}
	}
	if !limited {
		t.Fatal("expected a rate_limit audit event")
	}
}
