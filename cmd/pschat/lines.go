package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"pschat/pkg/chatlog"
	"pschat/pkg/session"
	"pschat/pkg/ui"
)

// printLine writes every visible transcript line to out, tagged with its
// room.
func printLine(out io.Writer) func(roomID string, tokens []string) {
	return func(roomID string, tokens []string) {
		text, ok := chatlog.Render(tokens)
		if !ok {
			return
		}
		fmt.Fprintf(out, "[%s] %s\n", roomID, text)
	}
}

// runLineMode feeds stdin lines to the focused room and server frames to
// the session from one goroutine. It returns when ctx ends or the frame
// source closes. End of input stops reading but keeps the connection.
func runLineMode(ctx context.Context, sess *session.Session, src ui.FrameSource, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			slog.Warn("line_mode_read_failed", "error", err)
		}
	}()

	frames := src.Frames()
	for {
		select {
		case <-ctx.Done():
			return nil
		case data, ok := <-frames:
			if !ok {
				if err := src.Err(); err != nil {
					return fmt.Errorf("connection closed: %w", err)
				}
				return nil
			}
			sess.ReceiveFrame(data)
		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			if err := sess.Send(line); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		}
	}
}
