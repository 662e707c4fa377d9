package ws

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"gatebite/internal/core/domain/model/order"
)

const (
	// writeWait is the deadline for a single outbound write.
	writeWait = 10 * time.Second

	// pongWait is how long the connection may stay silent before it is
	// considered dead. Pings go out at pingPeriod to keep it alive.
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Frame types on the tracking stream. The first frame after connecting
// carries the full current state; every later one is a change.
const (
	frameTypeOrderStatus       = "order_status"
	frameTypeOrderStatusUpdate = "order_status_update"
	frameTypeAck               = "ack"
)

type statusFrame struct {
	Type string         `json:"type"`
	Data order.Snapshot `json:"data"`
}

type ackFrame struct {
	Type string `json:"type"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Tracking is read-only public data keyed by order id; any origin
	// may subscribe.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Serve upgrades the request to a WebSocket, subscribes to the order the
// snapshot belongs to, and streams status frames until either side goes
// away. It blocks for the lifetime of the connection.
func Serve(
	w http.ResponseWriter,
	r *http.Request,
	hub *Hub,
	current order.Snapshot,
	logger *slog.Logger,
) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	session := &session{
		conn:   conn,
		hub:    hub,
		sub:    hub.Subscribe(current),
		acks:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		logger: logger.With("component", "ws", "order_id", current.ID),
	}
	session.run()

	return nil
}

// session owns one tracking connection. All writes happen on the write
// pump goroutine; the read pump only consumes client frames and requests
// acks through a channel.
type session struct {
	conn   *websocket.Conn
	hub    *Hub
	sub    *Subscription
	acks   chan struct{}
	done   chan struct{}
	logger *slog.Logger
}

func (s *session) run() {
	go s.readPump()
	s.writePump()
}

// readPump drains inbound frames. Clients may send anything as a
// keepalive; each inbound frame is answered with an ack by the write
// pump. Exits on read error and tears the session down.
func (s *session) readPump() {
	defer close(s.done)

	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("tracking connection closed unexpectedly", "error", err)
			}
			return
		}

		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))

		select {
		case s.acks <- struct{}{}:
		default:
		}
	}
}

// writePump is the single writer on the connection. It forwards snapshots
// from the subscription, answers ack requests, and keeps the connection
// alive with pings.
func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.hub.Unsubscribe(s.sub)
		_ = s.conn.Close()
	}()

	var lastSent order.Snapshot
	sentInitial := false

	for {
		select {
		case snapshot, ok := <-s.sub.Updates():
			if !ok {
				// Hub dropped us as a slow consumer.
				_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = s.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "subscription lapsed"))
				return
			}

			frameType := frameTypeOrderStatusUpdate
			if !sentInitial {
				frameType = frameTypeOrderStatus
			} else if !snapshot.NewerThan(lastSent) {
				continue
			}

			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(statusFrame{Type: frameType, Data: snapshot}); err != nil {
				s.logger.Debug("failed to write status frame", "error", err)
				return
			}
			lastSent = snapshot
			sentInitial = true

		case <-s.acks:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(ackFrame{Type: frameTypeAck}); err != nil {
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-s.done:
			return
		}
	}
}
