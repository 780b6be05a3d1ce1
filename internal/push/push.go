package push

import (
	"net/http"
	"time"

	"gogive-web/internal/dashboard/processor"
	"gogive-web/internal/observability"
	"gogive-web/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 25 * time.Second
)

// Streamer pushes rendered snapshots to the browser over a websocket. Each
// connection mirrors one session's store: an initial frame on connect, then
// a frame per store change. Delivery is best effort; a browser that cannot
// keep up is disconnected and recovers its state by reconnecting.
type Streamer struct {
	upgrader websocket.Upgrader
	logger   *observability.Logger
}

// NewStreamer creates a snapshot streamer. checkOrigin decides which
// browser origins may open a stream.
func NewStreamer(checkOrigin func(r *http.Request) bool, logger *observability.Logger) *Streamer {
	return &Streamer{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin,
		},
		logger: logger,
	}
}

type frame struct {
	Event string                  `json:"event"`
	Data  processor.DashboardView `json:"data"`
}

// HandleStream upgrades the request and streams until the client goes away
// or the session ends. Mounted behind the session middleware.
func (s *Streamer) HandleStream(c *gin.Context) {
	sess, ok := session.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		s.logger.DebugWithError(c.Request.Context(), "websocket upgrade failed", err)
		return
	}

	ctx := c.Request.Context()
	notify, unsubscribe := sess.Store.Subscribe()
	defer unsubscribe()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer conn.Close()

	send := func() bool {
		snapshot, loaded := sess.Store.Snapshot()
		if !loaded {
			return true
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(frame{Event: "snapshot", Data: processor.RenderDashboard(snapshot)}); err != nil {
			s.logger.DebugWithError(ctx, "snapshot push failed, dropping stream", err)
			return false
		}
		return true
	}

	if !send() {
		return
	}

	pings := time.NewTicker(pingPeriod)
	defer pings.Stop()

	for {
		select {
		case <-closed:
			return
		case <-notify:
			if !send() {
				return
			}
		case <-pings.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
