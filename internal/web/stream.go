package web

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/aryanwebd35/portfolio/internal/observability"
	"github.com/aryanwebd35/portfolio/internal/starfield"
)

const (
	maxViewport = 8192
	writeWait   = 2 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 16 * 1024,
}

func clampViewport(s starfield.Size) starfield.Size {
	s.Width = max(0, min(s.Width, maxViewport))
	s.Height = max(0, min(s.Height, maxViewport))
	return s
}

// streamMessage is what the browser sends: a new viewport size, or a
// visibility change when only Hidden is set.
type streamMessage struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Hidden *bool `json:"hidden,omitempty"`
}

func queryInt(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}

// handleStarfield runs one starfield per connection. The browser reports its
// viewport size (initially in the query, later as JSON messages) and its
// visibility, and draws the frames it receives. Connections beyond the
// configured limit are refused before the upgrade.
func (s *Server) handleStarfield(c *gin.Context) {
	select {
	case s.streams <- struct{}{}:
		defer func() { <-s.streams }()
	default:
		observability.LoggerFromContext(c.Request.Context()).Warn("starfield stream limit reached", "limit", cap(s.streams))
		c.String(http.StatusServiceUnavailable, "too many starfield streams")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		observability.LoggerFromContext(c.Request.Context()).Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	size := clampViewport(starfield.Size{Width: queryInt(c, "w"), Height: queryInt(c, "h")})
	cfg := starfield.DefaultConfig()
	cfg.Count = s.cfg.StarCount

	field := starfield.NewField(cfg, size.Width, size.Height, nil)
	surface := starfield.NewDrawList(size.Width, size.Height)
	viewport := starfield.NewViewport(size)

	loop := starfield.NewLoop(field, surface, viewport,
		starfield.WithFrameRate(s.cfg.FrameRate),
		starfield.WithPresenter(func(ctx context.Context) error {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			return conn.WriteJSON(surface.Frame())
		}),
	)
	if err := loop.Start(c.Request.Context()); err != nil {
		observability.Logger().Error("starting starfield", "error", err)
		return
	}
	defer loop.Stop()

	log := observability.WithFields("component", "starfield", "stars", cfg.Count)
	log.Debug("stream opened", "width", size.Width, "height", size.Height)

	// Reader: resize and visibility messages until the client goes away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			var msg streamMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			if msg.Hidden != nil {
				loop.SetPaused(*msg.Hidden)
				continue
			}
			viewport.Publish(clampViewport(starfield.Size{Width: msg.Width, Height: msg.Height}))
		}
	}()

	select {
	case <-closed:
	case <-loop.Done():
		if err := loop.Err(); err != nil {
			log.Debug("stream write failed", "error", err)
		}
	}
	log.Debug("stream closed")
}
