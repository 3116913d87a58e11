package realtime

import (
	"context"
	"encoding/json"

	"github.com/coder/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// clientMessage is the only frame clients are expected to send. Anything else
// is ignored.
type clientMessage struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// wsConn adapts a coder/websocket connection to the hub's Conn interface.
type wsConn struct {
	conn *websocket.Conn
}

func (c *wsConn) Send(ctx context.Context, data []byte) error {
	return c.conn.Write(ctx, websocket.MessageText, data)
}

// Handler upgrades HTTP requests to WebSocket connections and runs their read
// loop against the hub.
type Handler struct {
	hub            *Hub
	originPatterns []string
	log            zerolog.Logger
}

func NewHandler(hub *Hub, originPatterns []string, log zerolog.Logger) *Handler {
	return &Handler{hub: hub, originPatterns: originPatterns, log: log}
}

// Serve handles GET /ws.
func (h *Handler) Serve(c echo.Context) error {
	conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		h.log.Debug().Err(err).Msg("websocket upgrade failed")
		return nil
	}

	wc := &wsConn{conn: conn}
	h.hub.Register(wc)
	defer h.hub.Unregister(wc)
	defer func() { _ = conn.Close(websocket.StatusNormalClosure, "") }()

	ctx := c.Request().Context()
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return nil
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type == "authenticate" {
			h.hub.Authenticate(ctx, wc, msg.Token)
		}
	}
}
