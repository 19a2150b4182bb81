// Package gateway owns the long-lived TLS connection to the KLF-200
// gateway: it serializes outbound sends, demultiplexes inbound frames to
// per-command waiter queues, publishes ambient notifications to a broker,
// and runs the keep-alive timer that keeps the gateway from dropping an
// idle connection.
package gateway

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/veluxklf/klf200d/broker"
	"github.com/veluxklf/klf200d/detect"
	"github.com/veluxklf/klf200d/protocol"
	"github.com/veluxklf/klf200d/session"
	"github.com/veluxklf/klf200d/slip"
)

// State is the connection lifecycle state.
type State int

const (
	Disconnected State = iota
	TlsHandshake
	Authenticating
	Ready
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case TlsHandshake:
		return "tls_handshake"
	case Authenticating:
		return "authenticating"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// ErrDisconnected is delivered to every pending waiter when the connection
// is lost, and returned by Send calls made while disconnected.
var ErrDisconnected = errors.New("gateway: disconnected")

// keepAliveInterval is the margin the source takes on the gateway's own
// ~15-minute idle timeout; not independently documented upstream.
const keepAliveInterval = 10 * time.Minute

// waiter is a one-shot completion registered against a command id.
type waiter struct {
	ch chan any
}

// Client owns the connection and the full waiter/broker/session/keep-alive
// machinery described above. Exactly one Client exists per gateway
// connection in this system.
type Client struct {
	address  string
	password string

	mu       sync.Mutex
	state    State
	conn     net.Conn
	waiters  map[protocol.CommandID][]*waiter
	sessions *session.Allocator

	broker *broker.Broker
	detect *detect.Detector
	logger *slog.Logger

	keepAliveTimer *time.Timer
	closeOnce      sync.Once
	done           chan struct{}
}

// Option configures optional Client collaborators.
type Option func(*Client)

// WithLogger overrides the default slog.Default() logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithFloodDetector enables notification-flood throttling of the log lines
// for ambient notifications (NodeStatePositionChangedNtf in particular);
// every ambient notification is still published to the broker.
func WithFloodDetector(d *detect.Detector) Option {
	return func(c *Client) { c.detect = d }
}

// New creates a Client for the given gateway TCP/TLS address and password.
// b receives every ambient notification (frames with no registered
// waiter); it must not be nil.
func New(address, password string, b *broker.Broker, opts ...Option) *Client {
	c := &Client{
		address:  address,
		password: password,
		waiters:  make(map[protocol.CommandID][]*waiter),
		sessions: session.New(),
		broker:   b,
		logger:   slog.Default(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sessions exposes the client's session allocator, e.g. for the REST
// facade to tag a CommandSendReq before calling Send.
func (c *Client) Sessions() *session.Allocator { return c.sessions }

// Connect dials the gateway, performs the TLS handshake (hostname
// verification disabled — the gateway presents a self-signed certificate),
// authenticates, and starts the read loop. It blocks until the client
// reaches Ready or fails.
func (c *Client) Connect(ctx context.Context) error {
	c.setState(TlsHandshake)

	dialer := &tls.Dialer{Config: &tls.Config{InsecureSkipVerify: true}} //nolint:gosec
	conn, err := dialer.DialContext(ctx, "tcp", c.address)
	if err != nil {
		c.setState(Disconnected)
		return fmt.Errorf("gateway: dial %s: %w", c.address, err)
	}

	c.Attach(conn)

	c.setState(Authenticating)
	ok, err := c.Authenticate(ctx, c.password)
	if err != nil {
		c.fail(err)
		return fmt.Errorf("gateway: authenticate: %w", err)
	}
	if !ok {
		err := errors.New("gateway: authentication rejected")
		c.fail(err)
		return err
	}

	c.setState(Ready)
	c.logger.Info("gateway connected", "address", c.address)
	return nil
}

// Attach adopts conn as the client's active connection, moves the client to
// Authenticating (so Send may be used on it), and starts its read loop,
// bypassing the TLS dial Connect otherwise performs. Exposed for callers
// driving the state machine over an already-established connection (tests
// over net.Pipe(), or a plaintext deployment during development).
func (c *Client) Attach(conn net.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.state = Authenticating
	c.mu.Unlock()
	go c.readLoop(conn)
}

// Close shuts down the connection and cancels every pending waiter.
func (c *Client) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return nil
	}
	return conn.Close()
}

func (c *Client) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// State reports the current connection lifecycle state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers a one-shot waiter for commandID without sending
// anything, for harvesting notifications that precede their confirmation.
// It returns an <-chan any for interoperability with collect.Collect, which
// is decoupled from the concrete protocol.Message type.
func (c *Client) Subscribe(commandID uint16) <-chan any {
	w := &waiter{ch: make(chan any, 1)}
	c.mu.Lock()
	c.waiters[protocol.CommandID(commandID)] = append(c.waiters[protocol.CommandID(commandID)], w)
	c.mu.Unlock()
	return w.ch
}

// Cancel removes a previously registered waiter without delivering to it.
func (c *Client) Cancel(commandID uint16, ch <-chan any) {
	id := protocol.CommandID(commandID)
	c.mu.Lock()
	defer c.mu.Unlock()
	waiters := c.waiters[id]
	for i, w := range waiters {
		if w.ch == ch {
			c.waiters[id] = append(waiters[:i], waiters[i+1:]...)
			return
		}
	}
}

// Send writes req to the wire and returns the decoded confirmation once it
// arrives. The waiter is registered before the bytes are written so a fast
// confirmation can never race ahead of its own waiter's registration.
func (c *Client) Send(ctx context.Context, req protocol.Request) (protocol.Message, error) {
	w := &waiter{ch: make(chan any, 1)}
	c.mu.Lock()
	if c.state == Disconnected {
		c.mu.Unlock()
		return nil, ErrDisconnected
	}
	c.waiters[req.ConfirmationID()] = append(c.waiters[req.ConfirmationID()], w)
	conn := c.conn
	c.mu.Unlock()

	payload := protocol.EncodeRequest(req)
	if _, err := conn.Write(slip.Encode(payload)); err != nil {
		c.Cancel(uint16(req.ConfirmationID()), w.ch)
		return nil, fmt.Errorf("gateway: write: %w", err)
	}
	c.resetKeepAlive()

	select {
	case <-ctx.Done():
		c.Cancel(uint16(req.ConfirmationID()), w.ch)
		return nil, ctx.Err()
	case v, ok := <-w.ch:
		if !ok {
			return nil, ErrDisconnected
		}
		msg, _ := v.(protocol.Message)
		return msg, nil
	}
}

// SendGeneric adapts Send to collect.Subscriber's untyped signature.
func (c *Client) SendGeneric(ctx context.Context, req interface{ CommandID() uint16 }) (any, error) {
	r, ok := req.(collectRequest)
	if !ok {
		return nil, fmt.Errorf("gateway: %T is not a wrapped protocol.Request", req)
	}
	return c.Send(ctx, r.Request)
}

// Authenticate sends PasswordEnterReq and reports whether it succeeded.
func (c *Client) Authenticate(ctx context.Context, password string) (bool, error) {
	msg, err := c.Send(ctx, protocol.PasswordEnterReq{Password: password})
	if err != nil {
		return false, err
	}
	cfm, ok := msg.(protocol.PasswordEnterCfm)
	if !ok {
		return false, fmt.Errorf("gateway: unexpected confirmation type %T", msg)
	}
	return cfm.IsSuccess, nil
}

// Ping sends GetStateReq, used both as a liveness probe and to reset the
// keep-alive timer implicitly (every Send resets it too).
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Send(ctx, protocol.GetStateReq{})
	return err
}

func (c *Client) resetKeepAlive() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.keepAliveTimer == nil {
		c.keepAliveTimer = time.AfterFunc(keepAliveInterval, c.onKeepAlive)
		return
	}
	c.keepAliveTimer.Reset(keepAliveInterval)
}

func (c *Client) onKeepAlive() {
	select {
	case <-c.done:
		return
	default:
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		c.logger.Warn("gateway: keep-alive ping failed", "error", err)
	}
}

// readLoop owns the connection's read side: it frames bytes via slip,
// decodes each frame via protocol, and dispatches the result to a waiter or
// the broker.
func (c *Client) readLoop(conn net.Conn) {
	fr := slip.NewReader(conn)
	for {
		raw, err := fr.ReadFrame()
		if err != nil {
			c.fail(fmt.Errorf("gateway: read: %w", err))
			return
		}

		frame, err := protocol.DecodeFrame(raw)
		if err != nil {
			c.logger.Debug("gateway: dropping malformed frame", "error", err)
			continue
		}

		msg, err := protocol.Decode(frame)
		if err != nil {
			c.logger.Debug("gateway: dropping undecodable frame", "command", frame.Command, "error", err)
			continue
		}

		c.dispatch(msg)
	}
}

func (c *Client) dispatch(msg protocol.Message) {
	if fin, ok := msg.(protocol.SessionFinishedNtf); ok {
		c.sessions.Release(fin.SessionID)
	}

	id := msg.CommandID()
	c.mu.Lock()
	waiters := c.waiters[id]
	var w *waiter
	if len(waiters) > 0 {
		w = waiters[0]
		c.waiters[id] = waiters[1:]
	}
	c.mu.Unlock()

	if w != nil {
		w.ch <- msg
		return
	}

	c.publishAmbient(msg)
}

func (c *Client) publishAmbient(msg protocol.Message) {
	if c.detect != nil {
		if key, ok := floodKey(msg); ok {
			res := c.detect.Record(key, time.Now())
			if res.Alert != nil {
				c.logger.Info("gateway: notification recurring", "key", res.Alert.Key, "count", res.Alert.Count)
			}
			if res.Matched && res.Alert == nil {
				c.broker.Publish(msg)
				return
			}
		}
	}
	c.logger.Debug("gateway: ambient notification", "command", msg.CommandID())
	c.broker.Publish(msg)
}

// floodKey derives a detect.Detector key for messages prone to bursting
// (actuators reporting every intermediate position while in motion).
func floodKey(msg protocol.Message) (string, bool) {
	switch m := msg.(type) {
	case protocol.NodeStatePositionChangedNtf:
		return fmt.Sprintf("node=%d cmd=%s", m.NodeID, msg.CommandID()), true
	case protocol.CommandRunStatusNtf:
		return fmt.Sprintf("session=%d cmd=%s", m.SessionID, msg.CommandID()), true
	default:
		return "", false
	}
}

// fail transitions to Disconnected and cancels every pending waiter.
func (c *Client) fail(err error) {
	c.mu.Lock()
	c.state = Disconnected
	waiters := c.waiters
	c.waiters = make(map[protocol.CommandID][]*waiter)
	c.mu.Unlock()

	c.logger.Error("gateway: connection lost", "error", err)
	for _, ws := range waiters {
		for _, w := range ws {
			close(w.ch)
		}
	}
}
