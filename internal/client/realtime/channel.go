// Package realtime keeps the dashboard's WebSocket status channel open.
//
// A Channel dials <base>/<path>?token=<bearer>, sends a ping, and dispatches
// incoming frames by their type. When the connection drops it schedules one
// reconnect after a fixed delay, unless the backend closed it with 1008
// (policy violation) or refused the handshake with 401/403: the token will
// not start working on its own, so the channel stops and reports OnAuthFailed.
package realtime

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/careercoach/internal/client/models"
	"github.com/dmitrijs2005/careercoach/internal/logging"
	"github.com/gorilla/websocket"
)

// CloseAuthFailed is the close code the backend uses for a rejected token.
const CloseAuthFailed = websocket.ClosePolicyViolation

const DefaultReconnectDelay = 5 * time.Second

var ErrNoToken = errors.New("no access token")

type TokenSource interface {
	Get(ctx context.Context) (string, error)
}

// Timer is what afterFunc returns; *time.Timer satisfies it.
type Timer interface {
	Stop() bool
}

type Options struct {
	// BaseURL is the HTTP(S) API base; its scheme is mapped to ws(s).
	BaseURL        string
	Path           string
	Tokens         TokenSource
	ReconnectDelay time.Duration
	Logger         logging.Logger
	Handlers       Handlers
	Dialer         *websocket.Dialer
	// AfterFunc schedules reconnects. Defaults to time.AfterFunc.
	AfterFunc func(time.Duration, func()) Timer
}

type Channel struct {
	endpoint  *url.URL
	tokens    TokenSource
	delay     time.Duration
	log       logging.Logger
	handlers  Handlers
	dialer    *websocket.Dialer
	afterFunc func(time.Duration, func()) Timer

	mu        sync.Mutex
	ctx       context.Context
	cancel    context.CancelFunc
	stopWatch func() bool
	conn      *websocket.Conn
	timer     Timer
	started   bool
	closed    bool
	attempts  int
}

func New(opts Options) (*Channel, error) {
	u, err := endpointURL(opts.BaseURL, opts.Path)
	if err != nil {
		return nil, err
	}

	delay := opts.ReconnectDelay
	if delay <= 0 {
		delay = DefaultReconnectDelay
	}
	dialer := opts.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	after := opts.AfterFunc
	if after == nil {
		after = func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		}
	}

	return &Channel{
		endpoint:  u,
		tokens:    opts.Tokens,
		delay:     delay,
		log:       log.With("component", "realtime"),
		handlers:  opts.Handlers,
		dialer:    dialer,
		afterFunc: after,
	}, nil
}

// endpointURL maps http->ws and https->wss and appends path to the base path.
func endpointURL(base, path string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return nil, fmt.Errorf("base url %q: unsupported scheme", base)
	}
	return u.JoinPath(path), nil
}

// Start dials in the background. The channel closes itself when ctx is done.
// A Channel is started at most once.
func (c *Channel) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started || c.closed {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.stopWatch = context.AfterFunc(ctx, c.Close)
	c.mu.Unlock()

	go c.connect()
}

// Close stops the channel whatever state it is in: a dial in progress is
// cancelled, a pending reconnect is dropped, an open socket is closed.
// Errors from an already closed socket are ignored. Close is idempotent.
func (c *Channel) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	conn, timer, cancel, stopWatch := c.conn, c.timer, c.cancel, c.stopWatch
	c.conn, c.timer = nil, nil
	c.mu.Unlock()

	if stopWatch != nil {
		stopWatch()
	}
	if timer != nil {
		timer.Stop()
	}
	if conn != nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		_ = conn.Close()
	}
	if cancel != nil {
		cancel()
	}
}

// Connected reports whether a socket is currently open.
func (c *Channel) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Attempts is the number of dials started so far, reconnects included.
func (c *Channel) Attempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts
}

func (c *Channel) connect() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	ctx := c.ctx
	c.attempts++
	c.mu.Unlock()

	token, err := c.tokens.Get(ctx)
	if err != nil {
		c.log.Error(ctx, "realtime token unavailable", "error", err)
		c.scheduleReconnect(ctx, err)
		return
	}
	if token == "" {
		c.authFailed(ctx, ErrNoToken)
		return
	}

	u := *c.endpoint
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	conn, resp, err := c.dialerFor(ctx).DialContext(ctx, u.String(), nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			c.authFailed(ctx, fmt.Errorf("handshake rejected: %s", resp.Status))
			return
		}
		c.scheduleReconnect(ctx, err)
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		_ = conn.Close()
		return
	}
	c.conn = conn
	c.mu.Unlock()

	c.log.Info(ctx, "realtime connected", "url", c.endpoint.String())

	if err := conn.WriteJSON(envelope{Type: TypePing}); err != nil {
		c.log.Warn(ctx, "realtime ping failed", "error", err)
	}

	err = c.readLoop(ctx, conn)

	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
	}
	closed := c.closed
	c.mu.Unlock()
	_ = conn.Close()

	if closed {
		return
	}
	var ce *websocket.CloseError
	if errors.As(err, &ce) && ce.Code == CloseAuthFailed {
		c.authFailed(ctx, err)
		return
	}
	c.scheduleReconnect(ctx, err)
}

// dialerFor ties the raw TCP connection to ctx so that Close aborts a
// handshake that is still waiting for the server. Closing the connection
// releases the tie.
func (c *Channel) dialerFor(ctx context.Context) *websocket.Dialer {
	d := *c.dialer
	netDial := d.NetDialContext
	if netDial == nil {
		netDial = (&net.Dialer{}).DialContext
	}
	d.NetDialContext = func(dctx context.Context, network, addr string) (net.Conn, error) {
		nc, err := netDial(dctx, network, addr)
		if err != nil {
			return nil, err
		}
		stop := context.AfterFunc(ctx, func() { _ = nc.Close() })
		return &watchedConn{Conn: nc, stop: stop}, nil
	}
	return &d
}

// watchedConn drops its context watch on Close.
type watchedConn struct {
	net.Conn
	stop func() bool
}

func (w *watchedConn) Close() error {
	w.stop()
	return w.Conn.Close()
}

func (c *Channel) readLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if kind != websocket.TextMessage {
			c.log.Debug(ctx, "non-text frame ignored")
			continue
		}
		c.dispatch(ctx, data)
	}
}

// dispatch is the single place frame types are told apart. A frame that
// fails to decode is dropped; the connection stays open.
func (c *Channel) dispatch(ctx context.Context, data []byte) {
	typ, err := decodeType(data)
	if err != nil {
		c.log.Warn(ctx, "realtime frame dropped", "error", err)
		return
	}

	switch typ {
	case TypeAgentStatus:
		st, err := decodePayload[models.AgentStatus](data)
		if err != nil {
			c.log.Warn(ctx, "realtime frame dropped", "type", typ, "error", err)
			return
		}
		if c.handlers.OnAgentStatus != nil {
			c.handlers.OnAgentStatus(st)
		}
	case TypeNotification:
		n, err := decodePayload[models.Notification](data)
		if err != nil {
			c.log.Warn(ctx, "realtime frame dropped", "type", typ, "error", err)
			return
		}
		if c.handlers.OnNotification != nil {
			c.handlers.OnNotification(n)
		}
	case TypeError:
		e, err := decodePayload[errorFrame](data)
		if err != nil {
			c.log.Warn(ctx, "realtime frame dropped", "type", typ, "error", err)
			return
		}
		msg := e.Message
		if msg == "" {
			msg = e.Detail
		}
		if c.handlers.OnServerError != nil {
			c.handlers.OnServerError(msg)
		}
	case TypePong, TypePing:
		c.log.Debug(ctx, "realtime keepalive", "type", typ)
	default:
		c.log.Warn(ctx, "unknown realtime frame", "type", typ)
	}
}

// scheduleReconnect arms a single timer; a second failure while one is
// pending does not add another.
func (c *Channel) scheduleReconnect(ctx context.Context, cause error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.timer != nil {
		return
	}

	c.log.Warn(ctx, "realtime disconnected, reconnecting", "error", cause, "delay", c.delay)
	c.timer = c.afterFunc(c.delay, func() {
		c.mu.Lock()
		c.timer = nil
		c.mu.Unlock()
		c.connect()
	})
}

func (c *Channel) authFailed(ctx context.Context, cause error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	cancel, stopWatch := c.cancel, c.stopWatch
	c.mu.Unlock()

	if stopWatch != nil {
		stopWatch()
	}
	c.log.Warn(ctx, "realtime authentication failed, not reconnecting", "error", cause)
	if c.handlers.OnAuthFailed != nil {
		c.handlers.OnAuthFailed()
	}
	if cancel != nil {
		cancel()
	}
}
