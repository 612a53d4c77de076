package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/jaminalder/tictactoe-ai/internal/app"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

const (
	wsWriteWait   = 10 * time.Second
	wsMinPongWait = 60 * time.Second
	wsReadLimit   = 4096
	wsSendBuffer  = 16
)

// wsCommand is a client request sent over the game socket.
type wsCommand struct {
	Type string `json:"type"` // "play" or "restart"
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

// wsConn streams game state to one websocket client and accepts commands
// from it. Only writePump writes to the connection.
type wsConn struct {
	h       *handlers
	conn    *websocket.Conn
	id      string
	pid     string
	replies chan any
}

func (h *handlers) ws(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.svc.Get(id); !ok {
		http.NotFound(w, r)
		return
	}
	pid, _ := h.tokens.playerID(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade", "game", id, "err", err)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, unsub, err := h.svc.SubscribeBuffered(ctx, id, wsSendBuffer)
	if err != nil {
		_ = conn.WriteJSON(errorJSON{Error: err.Error()})
		conn.Close()
		return
	}
	defer unsub()

	c := &wsConn{h: h, conn: conn, id: id, pid: pid, replies: make(chan any, 8)}
	if gs, ok := h.svc.Get(id); ok {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(newStateJSON(*gs, pid == gs.Owner)); err != nil {
			conn.Close()
			return
		}
	}
	h.log.Debug("websocket connected", "game", id)

	go c.writePump(ctx, updates)
	c.readPump()
	h.log.Debug("websocket disconnected", "game", id)
}

func (c *wsConn) pongWait() time.Duration {
	if d := 2 * c.h.heartbeat; d > wsMinPongWait {
		return d
	}
	return wsMinPongWait
}

func (c *wsConn) readPump() {
	defer c.conn.Close()

	wait := c.pongWait()
	c.conn.SetReadLimit(wsReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(wait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wait))
	})

	for {
		var cmd wsCommand
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.h.log.Debug("websocket read", "game", c.id, "err", err)
			}
			return
		}
		c.handle(cmd)
	}
}

// handle applies a command. Successful actions reach this client through the
// subscription like every other watcher; only rejections are answered here.
func (c *wsConn) handle(cmd wsCommand) {
	var err error
	switch cmd.Type {
	case "play":
		_, err = c.h.svc.Play(c.id, c.pid, cmd.Row, cmd.Col)
	case "restart":
		_, err = c.h.svc.Restart(c.id, c.pid)
	default:
		c.reply(errorJSON{Error: "unknown command " + cmd.Type})
		return
	}
	if err != nil {
		c.reply(errorJSON{Error: errorMessage(err)})
	}
}

func (c *wsConn) reply(v any) {
	select {
	case c.replies <- v:
	default:
	}
}

// closeMessage explains why the subscription ended: the game was discarded,
// or it still exists and this client fell behind.
func (c *wsConn) closeMessage() []byte {
	if _, ok := c.h.svc.Get(c.id); ok {
		return websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "too slow")
	}
	return websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game closed")
}

func (c *wsConn) writePump(ctx context.Context, updates <-chan app.GameState) {
	ticker := time.NewTicker(c.h.heartbeat)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case gs, ok := <-updates:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, c.closeMessage())
				return
			}
			if err := c.conn.WriteJSON(newStateJSON(gs, c.pid == gs.Owner)); err != nil {
				return
			}
		case v := <-c.replies:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteJSON(v); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
