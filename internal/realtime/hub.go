// Package realtime maintains the WebSocket push channel that mirrors task
// mutations to every live connection of the owning user.
package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ignaciodev/taskflow/internal/api/metrics"
	"github.com/ignaciodev/taskflow/internal/core/ports"
)

const writeTimeout = 5 * time.Second

// Conn is the minimal connection surface the hub needs. The production
// implementation wraps a coder/websocket connection.
type Conn interface {
	Send(ctx context.Context, data []byte) error
}

// Bridge relays events between instances. When nil, the hub delivers to its
// local connections only.
type Bridge interface {
	Publish(ctx context.Context, userID, kind string, payload []byte) error
}

// serverMessage is the frame written to clients: connection-level
// ("authenticated"/"unauthorized") or task events.
type serverMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Hub tracks which user each connection authenticated as and fans events out
// to them. Unauthenticated connections are tracked (for lifecycle and
// metrics) but mapped to no user, so they never receive events.
type Hub struct {
	mu    sync.RWMutex
	conns map[Conn]string // conn → user id; "" until authenticated

	tokens ports.TokenService
	bridge Bridge
	log    zerolog.Logger
}

func NewHub(tokens ports.TokenService, bridge Bridge, log zerolog.Logger) *Hub {
	return &Hub{
		conns:  make(map[Conn]string),
		tokens: tokens,
		bridge: bridge,
		log:    log,
	}
}

// Register adds a new, not-yet-authenticated connection.
func (h *Hub) Register(c Conn) {
	h.mu.Lock()
	h.conns[c] = ""
	h.mu.Unlock()
	metrics.ConnectionsActive.Inc()
}

// Unregister removes a connection. Called on read-loop exit, so connection
// close is the only cleanup trigger needed.
func (h *Hub) Unregister(c Conn) {
	h.mu.Lock()
	_, existed := h.conns[c]
	delete(h.conns, c)
	h.mu.Unlock()
	if existed {
		metrics.ConnectionsActive.Dec()
	}
}

// Authenticate verifies the token and, on success, registers the connection
// under the token's user id and confirms with an "authenticated" frame. On
// failure the connection is told "unauthorized" but stays open; it may try
// again. Re-authentication simply re-registers.
func (h *Hub) Authenticate(ctx context.Context, c Conn, token string) {
	claims, err := h.tokens.Verify(token)
	if err != nil {
		h.send(ctx, c, serverMessage{Type: "unauthorized"})
		return
	}

	h.mu.Lock()
	if _, ok := h.conns[c]; ok {
		h.conns[c] = claims.UserID
	}
	h.mu.Unlock()

	h.send(ctx, c, serverMessage{Type: "authenticated"})
	h.log.Debug().Str("user_id", claims.UserID).Msg("connection authenticated")
}

// Notify implements ports.Notifier. Fire-and-forget: marshal errors and
// delivery failures are logged and counted, never returned.
func (h *Hub) Notify(userID, kind string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Error().Err(err).Str("kind", kind).Msg("failed to marshal event payload")
		return
	}

	if h.bridge != nil {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := h.bridge.Publish(ctx, userID, kind, data)
		cancel()
		if err == nil {
			// Local delivery happens when the event comes back on the
			// subscription, same as on every other instance.
			return
		}
		h.log.Warn().Err(err).Str("kind", kind).Msg("event bridge publish failed, delivering locally")
	}

	h.DeliverLocal(userID, kind, data)
}

// DeliverLocal writes one event to every local connection registered under
// userID. A connection that fails the write is evicted.
func (h *Hub) DeliverLocal(userID, kind string, payload []byte) {
	frame, err := json.Marshal(serverMessage{Type: kind, Payload: payload})
	if err != nil {
		h.log.Error().Err(err).Str("kind", kind).Msg("failed to marshal event frame")
		return
	}

	h.mu.RLock()
	targets := make([]Conn, 0, len(h.conns))
	for c, uid := range h.conns {
		if uid == userID {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	// Writes happen outside the lock so one slow connection cannot block
	// registration or other deliveries.
	for _, c := range targets {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := c.Send(ctx, frame)
		cancel()

		if err != nil {
			metrics.EventsDroppedTotal.Inc()
			h.log.Warn().Err(err).Str("kind", kind).Msg("push delivery failed, evicting connection")
			h.Unregister(c)
			continue
		}
		metrics.EventsDeliveredTotal.WithLabelValues(kind).Inc()
	}
}

func (h *Hub) send(ctx context.Context, c Conn, msg serverMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := c.Send(ctx, data); err != nil {
		h.log.Debug().Err(err).Msg("control frame write failed")
	}
}
