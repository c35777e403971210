package gateway

import (
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"
)

// handleEvents upgrades to a websocket and streams the session's
// document-change events until the client disconnects.
func (g *Gateway) handleEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := g.sessions.Get(id); err != nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			g.logger.Debug("websocket accept failed", "session", id, "error", err)
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "")

		ch, cancel := g.hub.Subscribe(id, 64)
		defer cancel()

		// CloseRead discards inbound frames and cancels the context on
		// disconnect; the stream is write-only.
		ctx := conn.CloseRead(r.Context())

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-ch:
				if !ok {
					return
				}
				if err := wsjson.Write(ctx, conn, ev); err != nil {
					g.logger.Debug("websocket write failed", "session", id, "error", err)
					return
				}
			}
		}
	}
}
