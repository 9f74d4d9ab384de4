package http

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	// feedWriteTimeout bounds a single event write to a subscriber socket.
	feedWriteTimeout = 5 * time.Second

	// feedPingInterval keeps idle connections alive through intermediaries.
	feedPingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// JobFeed handles GET /api/v1/ws/jobs: upgrades the connection and streams
// the actor's agency job events until the client disconnects. Delivery is
// at-most-once; a reconnecting client re-fetches current state instead of
// relying on missed events.
func (s *Server) JobFeed(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeError(ctx, http.StatusUnauthorized, CodeUnauthorized, "no session", nil)
	}

	subscription, err := s.hub.Subscribe(actor.AgencyID)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		subscription.Close()
		// Upgrade already wrote its own error response.
		return nil
	}

	defer conn.Close()
	defer subscription.Close()

	// The feed is write-only; the read loop only notices the client going
	// away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(feedPingInterval)
	defer ping.Stop()

	for {
		select {
		case event, open := <-subscription.Events():
			if !open {
				return nil
			}

			if writeErr := conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout)); writeErr != nil {
				return nil
			}
			if writeErr := conn.WriteJSON(event); writeErr != nil {
				return nil
			}
		case <-ping.C:
			if writeErr := conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout)); writeErr != nil {
				return nil
			}
			if writeErr := conn.WriteMessage(websocket.PingMessage, nil); writeErr != nil {
				return nil
			}
		case <-closed:
			return nil
		}
	}
}
