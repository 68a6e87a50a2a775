package room

import (
	"log/slog"
	"math"
	"strconv"
	"strings"

	"pschat/pkg/protocol"
)

// Dispatcher applies the state effects of inbound control lines to a room
// and then hands every line, control or not, to the sink.
type Dispatcher struct {
	room *Room
	sink Sink
}

// NewDispatcher creates a dispatcher for r feeding sink.
func NewDispatcher(r *Room, sink Sink) *Dispatcher {
	return &Dispatcher{room: r, sink: sink}
}

// OnLine handles one inbound line. Empty lines are state refreshes and are
// ignored.
func (d *Dispatcher) OnLine(raw string) {
	if raw == "" {
		return
	}
	tokens := protocol.ParseLine(raw)

	switch tokens[0] {
	case "title":
		d.room.SetTitle(arg(tokens, 1))
	case "users":
		count, names := parseUsers(arg(tokens, 1))
		d.room.SetUsers(count, names)
	case "join", "j", "J":
		d.room.AddUser(arg(tokens, 1))
	case "leave", "l", "L":
		d.room.RemoveUser(arg(tokens, 1))
	case "name", "n", "N":
		d.room.RenameUser(arg(tokens, 1), arg(tokens, 2))
	}

	if d.sink != nil {
		d.sink.Add(tokens)
	}
}

// parseUsers splits "<count>,<name>,<name>...". The count is the leading
// integer of the first field; a malformed count reads as 0.
func parseUsers(list string) (int, []string) {
	fields := strings.Split(list, ",")
	count := leadingInt(fields[0])
	names := make([]string, 0, len(fields)-1)
	for _, name := range fields[1:] {
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if count < 0 {
		slog.Debug("room_users_negative_count", "value", fields[0])
		count = 0
	}
	return count, names
}

// maxUserCount bounds a declared count that does not fit an int32.
const maxUserCount = math.MaxInt32

// leadingInt parses the optional sign and digits at the start of s,
// ignoring surrounding whitespace and any trailing garbage. Out-of-range
// values are clamped to +/-maxUserCount.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.ParseInt(sign+s[:end], 10, 32)
	if err != nil {
		if sign == "-" {
			return -maxUserCount
		}
		return maxUserCount
	}
	return int(n)
}

func arg(tokens []string, i int) string {
	if i < len(tokens) {
		return tokens[i]
	}
	return ""
}
