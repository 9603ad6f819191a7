package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/valter-silva-au/sentinel/internal/observability"
)

// handleWebsocket pushes a snapshot immediately and then every push
// interval until the client goes away or the server shuts down.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn(r.Context(), "websocket upgrade failed", observability.Err(err))
		return
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reading is required to notice client disconnects.
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					s.logger.Debug(r.Context(), "websocket read", observability.Err(err))
				}
				return
			}
		}
	}()

	push := time.NewTicker(s.opts.PushInterval)
	defer push.Stop()
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	if err := s.writeSnapshot(conn); err != nil {
		return
	}
	for {
		select {
		case <-push.C:
			if err := s.writeSnapshot(conn); err != nil {
				s.logger.Debug(r.Context(), "websocket write", observability.Err(err))
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-readDone:
			return
		case <-s.stop:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return
		case <-r.Context().Done():
			return
		}
	}
}

func (s *Server) writeSnapshot(conn *websocket.Conn) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(s.engine.Snapshot())
}
