// Package tracking is the client side of the order status stream: a
// reconnecting WebSocket channel for live updates plus a polling fallback
// for dashboards. Both are UI-agnostic; consumers get callbacks, not
// widgets.
package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"gatebite/internal/core/domain/model/order"
)

var (
	// ErrReconnectExhausted is surfaced through OnError exactly once when
	// the channel gives up reconnecting. The channel stays down until the
	// caller builds a new one.
	ErrReconnectExhausted = errors.New("reconnect attempts exhausted")

	// ErrNotConnected is returned by Send while the transport is down.
	ErrNotConnected = errors.New("channel is not connected")

	// ErrChannelClosed is returned by Connect once the channel is down for
	// good, after Disconnect or after reconnection was exhausted.
	ErrChannelClosed = errors.New("channel is closed")
)

// State is the connection state of a Channel.
type State int32

const (
	Disconnected State = iota
	Connecting
	Connected
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// RetryPolicy bounds reconnection. A dial failure or a dropped connection
// counts as one attempt; a successful dial resets the counter.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetryPolicy matches the production tracking page behavior.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 5, Delay: 3 * time.Second}

// Clock abstracts timer scheduling so reconnect delays are testable
// without real waiting.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// Conn is one established transport connection.
type Conn interface {
	ReadMessage() ([]byte, error)
	WriteMessage(data []byte) error
	Close() error
}

// Dialer establishes transport connections. The default implementation
// dials WebSockets; tests substitute scripted fakes.
type Dialer interface {
	DialContext(ctx context.Context, url string) (Conn, error)
}

type websocketDialer struct {
	dialer *websocket.Dialer
}

func (d websocketDialer) DialContext(ctx context.Context, url string) (Conn, error) {
	conn, resp, err := d.dialer.DialContext(ctx, url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}
	return websocketConn{conn: conn}, nil
}

type websocketConn struct {
	conn *websocket.Conn
}

func (c websocketConn) ReadMessage() ([]byte, error) {
	_, data, err := c.conn.ReadMessage()
	return data, err
}

func (c websocketConn) WriteMessage(data []byte) error {
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c websocketConn) Close() error {
	return c.conn.Close()
}

// Config wires a Channel. URL and OnUpdate are required; everything else
// has working defaults.
type Config struct {
	// URL of the order's tracking stream endpoint.
	URL string

	// Retry bounds reconnection. Zero value means DefaultRetryPolicy.
	Retry RetryPolicy

	// Clock drives reconnect delays. Defaults to real time.
	Clock Clock

	// Dialer establishes connections. Defaults to a WebSocket dialer.
	Dialer Dialer

	// OnUpdate receives each snapshot newer than the last seen one,
	// exactly once, in arrival order. Called from the channel's run
	// goroutine; must not block for long.
	OnUpdate func(order.Snapshot)

	// OnError receives the terminal error when reconnection is
	// exhausted. Optional.
	OnError func(error)

	Logger *slog.Logger
}

// Channel is one resilient logical subscription to one order's status
// stream.
//
// All transport work happens on a single run goroutine started by
// Connect: dialing, reading, de-duplication, and the reconnect timer.
// Only one reconnect attempt is ever outstanding.
type Channel struct {
	cfg Config

	mu      sync.Mutex
	state   State
	conn    Conn
	cancel  context.CancelFunc
	started bool
	closed  bool

	done chan struct{}

	lastSeen order.Snapshot
	hasSeen  bool
}

// NewChannel creates a channel in the Disconnected state. Nothing touches
// the network until Connect.
func NewChannel(cfg Config) (*Channel, error) {
	if cfg.URL == "" {
		return nil, errors.New("tracking channel requires a URL")
	}
	if cfg.OnUpdate == nil {
		return nil, errors.New("tracking channel requires an OnUpdate callback")
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = DefaultRetryPolicy
	}
	if cfg.Clock == nil {
		cfg.Clock = realClock{}
	}
	if cfg.Dialer == nil {
		cfg.Dialer = websocketDialer{dialer: websocket.DefaultDialer}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	cfg.Logger = cfg.Logger.With("component", "tracking")

	return &Channel{
		cfg:  cfg,
		done: make(chan struct{}),
	}, nil
}

// State reports the current connection state.
func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Done is closed when the run loop has stopped, either through Disconnect
// or after reconnection was exhausted.
func (c *Channel) Done() <-chan struct{} {
	return c.done
}

// Connect starts the run loop. Calling it again while running is a no-op;
// calling it after Disconnect or after reconnection was exhausted fails
// with ErrChannelClosed.
func (c *Channel) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrChannelClosed
	}
	if c.started {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.started = true
	go c.run(ctx)

	return nil
}

// Disconnect tears the channel down: it cancels any pending reconnect,
// closes the live connection if there is one, and prevents an in-flight
// dial from being adopted. Idempotent; does not wait for the run loop.
func (c *Channel) Disconnect() {
	c.mu.Lock()
	c.closed = true
	cancel := c.cancel
	conn := c.conn
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		_ = conn.Close()
	}
}

// Send marshals v and writes it to the live connection. The server treats
// client frames as keepalives and answers with an ack.
func (c *Channel) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Connected || c.conn == nil {
		return ErrNotConnected
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.conn.WriteMessage(data)
}

func (c *Channel) run(ctx context.Context) {
	defer close(c.done)

	failures := 0
	for {
		if ctx.Err() != nil {
			c.setState(Disconnected)
			return
		}

		c.setState(Connecting)
		conn, err := c.cfg.Dialer.DialContext(ctx, c.cfg.URL)
		if err != nil {
			c.cfg.Logger.Debug("dial failed", "url", c.cfg.URL, "error", err)
			if !c.backoff(ctx, &failures) {
				return
			}
			continue
		}

		// Disconnect may have raced the dial; never adopt a connection
		// into a closed channel.
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			_ = conn.Close()
			c.setState(Disconnected)
			return
		}
		c.conn = conn
		c.state = Connected
		c.mu.Unlock()

		failures = 0
		readErr := c.readLoop(conn)

		c.mu.Lock()
		c.conn = nil
		c.state = Disconnected
		c.mu.Unlock()
		_ = conn.Close()

		if ctx.Err() != nil {
			return
		}

		c.cfg.Logger.Debug("connection lost", "url", c.cfg.URL, "error", readErr)
		if !c.backoff(ctx, &failures) {
			return
		}
	}
}

// backoff records one failure and waits out the retry delay. Returns
// false when the channel should stop, either because retries are
// exhausted or the context was cancelled.
func (c *Channel) backoff(ctx context.Context, failures *int) bool {
	*failures++
	if *failures >= c.cfg.Retry.MaxAttempts {
		// Exhaustion is terminal for this channel. Marking it closed makes
		// a later Connect fail with ErrChannelClosed instead of silently
		// doing nothing; the caller reconnects by building a new channel.
		c.mu.Lock()
		c.state = Disconnected
		c.closed = true
		c.mu.Unlock()
		c.reportError(ErrReconnectExhausted)
		return false
	}

	select {
	case <-ctx.Done():
		c.setState(Disconnected)
		return false
	case <-c.cfg.Clock.After(c.cfg.Retry.Delay):
		return true
	}
}

func (c *Channel) readLoop(conn Conn) error {
	for {
		data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		c.dispatch(data)
	}
}

type inboundFrame struct {
	Type string         `json:"type"`
	Data order.Snapshot `json:"data"`
}

// dispatch decodes one inbound frame and forwards the snapshot when it is
// newer than anything seen before. Malformed frames never bring the
// channel down.
func (c *Channel) dispatch(data []byte) {
	var frame inboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		c.cfg.Logger.Warn("dropping malformed frame", "error", err)
		return
	}

	switch frame.Type {
	case "order_status", "order_status_update":
	case "ack":
		return
	default:
		c.cfg.Logger.Warn("dropping frame of unknown type", "type", frame.Type)
		return
	}

	if frame.Data.ID == "" {
		c.cfg.Logger.Warn("dropping frame without order id", "type", frame.Type)
		return
	}

	if c.hasSeen && !frame.Data.NewerThan(c.lastSeen) {
		return
	}
	c.lastSeen = frame.Data
	c.hasSeen = true

	c.cfg.OnUpdate(frame.Data)
}

func (c *Channel) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Channel) reportError(err error) {
	if c.cfg.OnError != nil {
		c.cfg.OnError(err)
	}
}
