package main

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"pschat/pkg/session"
)

type lockedClient struct {
	mu   sync.Mutex
	sent []string
}

func (c *lockedClient) Send(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, line)
	return nil
}

func (c *lockedClient) Sent() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.sent)
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type chanSource struct {
	frames chan string
	err    error
}

func (s *chanSource) Frames() <-chan string { return s.frames }
func (s *chanSource) Err() error            { return s.err }

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

func startLineMode(t *testing.T, input string) (*lockedClient, *chanSource, *lockedBuffer, context.CancelFunc, chan error) {
	t.Helper()
	client := &lockedClient{}
	out := &lockedBuffer{}
	src := &chanSource{frames: make(chan string)}
	sess := session.New(client, session.Options{OnLine: printLine(out)})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runLineMode(ctx, sess, src, strings.NewReader(input), out)
	}()
	return client, src, out, cancel, done
}

func wait(t *testing.T, done chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("line mode did not return")
		return nil
	}
}

func TestRunLineMode_RoutesInputAndFrames(t *testing.T) {
	client, src, out, cancel, done := startLineMode(t, "/join lobby\nhello\n")
	defer cancel()

	waitFor(t, func() bool { return len(client.Sent()) == 2 })
	if got := client.Sent(); !slices.Equal(got, []string{"|/join lobby", "lobby|hello"}) {
		t.Errorf("Expected join then message, got %q", got)
	}

	src.frames <- ">lobby\n|c| bob|yo\n|users|1, bob"
	close(src.frames)
	if err := wait(t, done); err != nil {
		t.Fatalf("Expected clean exit, got %v", err)
	}

	if got := out.String(); got != "[lobby] bob: yo\n" {
		t.Errorf("Expected one printed line, got %q", got)
	}
}

func TestRunLineMode_SendError(t *testing.T) {
	_, src, out, cancel, done := startLineMode(t, "hello\n")
	defer cancel()

	waitFor(t, func() bool { return strings.Contains(out.String(), "error:") })
	if !strings.Contains(out.String(), "unknown room") {
		t.Errorf("Expected unknown room error, got %q", out.String())
	}

	close(src.frames)
	wait(t, done)
}

func TestRunLineMode_SourceError(t *testing.T) {
	_, src, _, cancel, done := startLineMode(t, "")
	defer cancel()

	src.err = errors.New("reset by peer")
	close(src.frames)

	err := wait(t, done)
	if err == nil || !strings.Contains(err.Error(), "reset by peer") {
		t.Errorf("Expected wrapped source error, got %v", err)
	}
}

func TestRunLineMode_ContextCancel(t *testing.T) {
	_, _, _, cancel, done := startLineMode(t, "")
	cancel()

	if err := wait(t, done); err != nil {
		t.Errorf("Expected nil on cancel, got %v", err)
	}
}

func TestPrintLine(t *testing.T) {
	var buf bytes.Buffer
	fn := printLine(&buf)

	fn("lobby", []string{"title", "Lobby"})
	fn("lobby", []string{"J", " ann"})

	if buf.String() != "[lobby] ann joined\n" {
		t.Errorf("Expected only visible lines, got %q", buf.String())
	}
}
