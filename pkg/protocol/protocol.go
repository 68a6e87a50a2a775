// Package protocol implements the line-oriented chat protocol: splitting
// server frames into room-scoped lines, tokenizing a line, and building
// outbound lines.
package protocol

import "strings"

// ParseLine tokenizes one inbound line. A line that does not start with a
// pipe is plain text and yields ["", line]. Commands whose trailing
// argument is free text keep that argument unsplit.
func ParseLine(line string) []string {
	if !strings.HasPrefix(line, "|") {
		return []string{"", line}
	}
	rest := line[1:]
	index := strings.IndexByte(rest, '|')
	if index < 0 {
		return []string{rest}
	}
	cmd := rest[:index]
	tail := rest[index+1:]

	switch cmd {
	case "chatmsg", "chatmsg-raw", "raw", "error", "html",
		"inactive", "inactiveoff", "warning",
		"fieldhtml", "controlshtml", "bigerror",
		"debug", "tier", "challstr", "popup", "":
		return []string{cmd, tail}
	case "c", "chat", "uhtml", "uhtmlchange":
		return append([]string{cmd}, splitN(tail, 2)...)
	case "c:", "pm":
		return append([]string{cmd}, splitN(tail, 3)...)
	}
	return strings.Split(rest, "|")
}

// splitN splits on pipes into at most n parts, always returning n parts.
func splitN(s string, n int) []string {
	parts := strings.SplitN(s, "|", n)
	for len(parts) < n {
		parts = append(parts, "")
	}
	return parts
}

// Frame is one server message: the room it targets and its lines.
type Frame struct {
	RoomID string
	Lines  []string
}

// SplitFrame splits a raw server frame. A frame that starts with
// ">roomid\n" targets that room; anything else targets the global
// context (empty room id). Empty lines are dropped.
func SplitFrame(data string) Frame {
	var frame Frame
	data = strings.TrimSuffix(data, "\n")
	if strings.HasPrefix(data, ">") {
		nl := strings.IndexByte(data, '\n')
		if nl < 0 {
			return Frame{RoomID: strings.TrimSpace(data[1:])}
		}
		frame.RoomID = strings.TrimSpace(data[1:nl])
		data = data[nl+1:]
	}
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		frame.Lines = append(frame.Lines, line)
	}
	return frame
}
