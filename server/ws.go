package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/june-assistant/relay/core/protocol"
	"github.com/june-assistant/relay/observability"
	"github.com/june-assistant/relay/relay"
)

// Keepalive timing. Vars so tests can compress the heartbeat window.
var (
	wsWriteTimeout      = 10 * time.Second
	wsHeartbeatInterval = 30 * time.Second
	wsHeartbeatTimeout  = 60 * time.Second
)

// handleChat upgrades the connection and hands it to a relay session for
// its whole lifetime. One goroutine per session; a ticker goroutine keeps
// the connection alive with pings while a turn streams.
func (s *Server) handleChat(c *gin.Context) {
	upgrader := websocket.Upgrader{
		CheckOrigin: s.checkOrigin,
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.observer.OnEvent(c.Request.Context(), observability.Event{
			Type:      EventUpgradeErr,
			Level:     observability.LevelWarning,
			Timestamp: time.Now(),
			Source:    "server.handleChat",
			Data:      map[string]any{"error": err.Error()},
		})
		return
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(wsHeartbeatTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsHeartbeatTimeout))
	})

	ctx := c.Request.Context()
	stopPings := make(chan struct{})
	defer close(stopPings)
	go func() {
		ticker := time.NewTicker(wsHeartbeatInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stopPings:
				return
			case <-ticker.C:
				deadline := time.Now().Add(wsWriteTimeout)
				if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
					return
				}
			}
		}
	}()

	session := relay.NewSession(
		&wsConn{conn: conn},
		s.injector,
		s.completer,
		s.recorder,
		relay.WithObserver(s.observer),
	)

	s.wsEvent(c, EventConnect, session.ID())
	defer s.wsEvent(c, EventDisconnect, session.ID())

	session.Run(ctx)
}

func (s *Server) wsEvent(c *gin.Context, eventType observability.EventType, sessionID string) {
	s.observer.OnEvent(c.Request.Context(), observability.Event{
		Type:      eventType,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "server.handleChat",
		Data: map[string]any{
			"session_id": sessionID,
			"remote":     c.ClientIP(),
		},
	})
}

// checkOrigin mirrors the CORS origin list for the websocket handshake.
func (s *Server) checkOrigin(r *http.Request) bool {
	origins := s.cfg.Origins()
	if len(origins) == 1 && origins[0] == "*" {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range origins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// wsConn adapts a gorilla websocket connection to the relay's Conn. The
// session goroutine is the only JSON reader and writer; keepalive pings go
// through WriteControl, which is safe alongside WriteJSON.
type wsConn struct {
	conn *websocket.Conn
}

func (c *wsConn) ReadTurn() (*protocol.TurnRequest, error) {
	// The deadline is armed before the read, not after: a turn can stream
	// past the heartbeat window with no read pending, so the stale deadline
	// from the previous frame must not poison this one. Pongs queued during
	// the turn are processed here and refresh it further.
	if err := c.conn.SetReadDeadline(time.Now().Add(wsHeartbeatTimeout)); err != nil {
		return nil, err
	}
	var turn protocol.TurnRequest
	if err := c.conn.ReadJSON(&turn); err != nil {
		return nil, err
	}
	return &turn, nil
}

func (c *wsConn) WriteEvent(event protocol.Event) error {
	c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return c.conn.WriteJSON(event)
}
