package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

type fakeConn struct {
	inbound chan string
	closed  chan struct{}
	once    sync.Once

	mu       sync.Mutex
	written  []string
	types    []int
	writeErr error
}

func newFakeConn() *fakeConn {
	return &fakeConn{inbound: make(chan string, 16), closed: make(chan struct{})}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case data, ok := <-c.inbound:
		if !ok {
			return 0, nil, errors.New("connection reset")
		}
		return websocket.TextMessage, []byte(data), nil
	case <-c.closed:
		return 0, nil, errors.New("use of closed connection")
	}
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return c.writeErr
	}
	c.types = append(c.types, messageType)
	c.written = append(c.written, string(data))
	return nil
}

func (c *fakeConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) sent() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.written)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestNewClient_ID(t *testing.T) {
	c := NewClient(newFakeConn(), Options{})
	defer c.Close()

	if c.ID() == "" {
		t.Error("Expected a connection id")
	}
}

func TestSend_WritesTextFrames(t *testing.T) {
	conn := newFakeConn()
	c := NewClient(conn, Options{Rate: -1})
	defer c.Close()

	for _, line := range []string{"|/join lobby", "lobby|hello"} {
		if err := c.Send(line); err != nil {
			t.Fatalf("Send(%q) error: %v", line, err)
		}
	}

	waitFor(t, func() bool { return len(conn.sent()) == 2 })
	if got := conn.sent(); !slices.Equal(got, []string{"|/join lobby", "lobby|hello"}) {
		t.Errorf("Expected lines in order, got %q", got)
	}
	conn.mu.Lock()
	defer conn.mu.Unlock()
	for _, mt := range conn.types {
		if mt != websocket.TextMessage {
			t.Errorf("Expected text frames, got type %d", mt)
		}
	}
}

func TestFrames_Delivered(t *testing.T) {
	conn := newFakeConn()
	c := NewClient(conn, Options{})
	defer c.Close()

	conn.inbound <- ">lobby\n|c| a|hi"
	select {
	case frame := <-c.Frames():
		if frame != ">lobby\n|c| a|hi" {
			t.Errorf("Expected frame, got %q", frame)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected a frame")
	}
}

func TestReadError_ClosesFrames(t *testing.T) {
	conn := newFakeConn()
	c := NewClient(conn, Options{})
	close(conn.inbound)

	select {
	case _, ok := <-c.Frames():
		if ok {
			t.Fatal("Expected frames channel to close")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected frames channel to close")
	}
	if c.Err() == nil {
		t.Error("Expected read error to be recorded")
	}
	if err := c.Send("x"); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed after read failure, got %v", err)
	}
	c.Close()
}

func TestWriteError_Shutdown(t *testing.T) {
	conn := newFakeConn()
	conn.writeErr = errors.New("broken pipe")
	c := NewClient(conn, Options{Rate: -1})

	c.Send("hello")
	waitFor(t, func() bool { return c.Err() != nil })
	c.Close()

	if err := c.Send("again"); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
}

func TestClose_Idempotent(t *testing.T) {
	c := NewClient(newFakeConn(), Options{})

	if err := c.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
	if err := c.Send("late"); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
	if c.Err() != nil {
		t.Errorf("Expected clean close to record no error, got %v", c.Err())
	}
}

func TestSend_QueueFull(t *testing.T) {
	conn := newFakeConn()
	// One token per hour keeps the writer parked after the first line.
	c := NewClient(conn, Options{Rate: 1.0 / 3600, Burst: 1, QueueSize: 1})
	defer c.Close()

	var full bool
	for range 10 {
		if err := c.Send("spam"); errors.Is(err, ErrQueueFull) {
			full = true
			break
		}
	}
	if !full {
		t.Error("Expected ErrQueueFull once the queue is saturated")
	}
}

func TestOptions_Limiter(t *testing.T) {
	l := Options{}.limiter()
	if l.Burst() != defaultBurst || float64(l.Limit()) != defaultRate {
		t.Errorf("Expected default limiter, got rate=%v burst=%d", l.Limit(), l.Burst())
	}
}

func TestOptions_Header(t *testing.T) {
	if h := (Options{}).header(); h != nil {
		t.Errorf("Expected no header without a user agent, got %v", h)
	}
	h := Options{UserAgent: "pschat/dev"}.header()
	if h.Get("User-Agent") != "pschat/dev" {
		t.Errorf("Expected user agent header, got %v", h)
	}
}

func TestDial_RoundTrip(t *testing.T) {
	agents := make(chan string, 1)
	received := make(chan string, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agents <- r.Header.Get("User-Agent")
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.WriteMessage(websocket.TextMessage, []byte("|challstr|4|abc"))
		_, data, err := conn.ReadMessage()
		if err == nil {
			received <- string(data)
		}
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	c, err := Dial(context.Background(), url, Options{Rate: -1, UserAgent: "pschat/test"})
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	if got := <-agents; got != "pschat/test" {
		t.Errorf("Expected user agent pschat/test, got %q", got)
	}
	select {
	case frame := <-c.Frames():
		if frame != "|challstr|4|abc" {
			t.Errorf("Expected challstr frame, got %q", frame)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected a frame from the server")
	}

	if err := c.Send("|/join lobby"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	select {
	case line := <-received:
		if line != "|/join lobby" {
			t.Errorf("Expected join line, got %q", line)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected the server to receive the line")
	}
}

func TestDial_Refused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	srv.Close()

	if _, err := Dial(context.Background(), url, Options{}); err == nil {
		t.Error("Expected dial to a closed server to fail")
	}
}
