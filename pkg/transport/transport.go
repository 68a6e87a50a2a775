// Package transport carries protocol lines over a websocket. Inbound text
// frames are delivered on a channel; outbound lines are queued and written
// by a single goroutine at a limited rate.
package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"pschat/pkg/logging"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// ErrClosed is returned by Send after the client is closed.
var ErrClosed = errors.New("transport closed")

// ErrQueueFull is returned by Send when the outbound queue is full.
var ErrQueueFull = errors.New("send queue full")

const (
	defaultQueueSize = 256
	defaultRate      = 5
	defaultBurst     = 5
)

// Conn is the part of a websocket connection the client uses.
type Conn interface {
	ReadMessage() (messageType int, data []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Options tune the outbound side.
type Options struct {
	// Rate is the sustained number of lines per second. Zero uses the
	// default, a negative value disables limiting.
	Rate float64
	// Burst is the number of lines that may go out back to back.
	Burst int
	// QueueSize bounds the outbound queue.
	QueueSize int
	// UserAgent is sent with the websocket handshake when set.
	UserAgent string
}

func (o Options) header() http.Header {
	if o.UserAgent == "" {
		return nil
	}
	return http.Header{"User-Agent": []string{o.UserAgent}}
}

func (o Options) limiter() *rate.Limiter {
	r := o.Rate
	if r == 0 {
		r = defaultRate
	}
	burst := o.Burst
	if burst <= 0 {
		burst = defaultBurst
	}
	if r < 0 {
		return rate.NewLimiter(rate.Inf, burst)
	}
	return rate.NewLimiter(rate.Limit(r), burst)
}

// Client is one connection to the chat server.
type Client struct {
	id      string
	conn    Conn
	limiter *rate.Limiter

	send   chan string
	frames chan string

	ctx    context.Context
	cancel context.CancelFunc

	closeOnce sync.Once
	mu        sync.Mutex
	err       error
	wg        sync.WaitGroup
}

// Dial connects to url and starts the client.
func Dial(ctx context.Context, url string, opts Options) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, opts.header())
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	c := NewClient(conn, opts)
	slog.Info("transport_connected", "conn_id", c.id, "url", url)
	return c, nil
}

// NewClient starts a client on an established connection.
func NewClient(conn Conn, opts Options) *Client {
	queue := opts.QueueSize
	if queue <= 0 {
		queue = defaultQueueSize
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		id:      uuid.NewString(),
		conn:    conn,
		limiter: opts.limiter(),
		send:    make(chan string, queue),
		frames:  make(chan string, queue),
		ctx:     ctx,
		cancel:  cancel,
	}
	c.wg.Add(2)
	go c.readPump()
	go c.writePump()
	return c
}

// ID identifies the connection in logs.
func (c *Client) ID() string { return c.id }

// Frames delivers inbound text frames. It is closed when the connection
// ends; Err then reports why.
func (c *Client) Frames() <-chan string { return c.frames }

// Err returns the error that ended the connection, or nil while it is up
// or after a clean Close.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Send queues one outbound line without blocking.
func (c *Client) Send(line string) error {
	select {
	case <-c.ctx.Done():
		return ErrClosed
	default:
	}
	select {
	case c.send <- line:
		slog.Log(c.ctx, logging.LevelTrace, "transport_send", "conn_id", c.id, "line", line)
		return nil
	case <-c.ctx.Done():
		return ErrClosed
	default:
		return ErrQueueFull
	}
}

// Close shuts the connection down and waits for both pumps to exit. It is
// safe to call more than once.
func (c *Client) Close() error {
	err := c.shutdown(nil)
	c.wg.Wait()
	return err
}

func (c *Client) shutdown(cause error) error {
	var err error
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.err = cause
		c.mu.Unlock()
		c.cancel()
		err = c.conn.Close()
		slog.Info("transport_closed", "conn_id", c.id, "cause", cause)
	})
	return err
}

func (c *Client) readPump() {
	defer c.wg.Done()
	defer close(c.frames)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if c.ctx.Err() == nil {
				slog.Warn("transport_read_failed", "conn_id", c.id, "error", err)
				c.shutdown(err)
			}
			return
		}
		select {
		case c.frames <- string(data):
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.wg.Done()
	for {
		select {
		case <-c.ctx.Done():
			return
		case line := <-c.send:
			if err := c.limiter.Wait(c.ctx); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
				slog.Warn("transport_write_failed", "conn_id", c.id, "error", err)
				c.shutdown(err)
				return
			}
		}
	}
}
