// Package session owns the set of open rooms for one connection: it routes
// server frames to rooms, tracks the local user and focus, and acts as the
// navigator for local commands. A Session is not safe for concurrent use;
// callers deliver frames and input from a single goroutine.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"pschat/pkg/chatlog"
	"pschat/pkg/commands"
	"pschat/pkg/protocol"
	"pschat/pkg/room"
	"pschat/pkg/userid"
)

// ErrUnknownRoom is returned for operations on a room that is not open.
var ErrUnknownRoom = errors.New("unknown room")

const noNameError = "|error|Choose a name before challenging someone."

// Options configure a session.
type Options struct {
	// BacklogSize is the per-room transcript capacity.
	BacklogSize int
	// Commands overrides the local command set.
	Commands *commands.Dispatcher
	// OnLine, when set, sees every line added to any room transcript.
	OnLine func(roomID string, tokens []string)
	// Name is requested from the server once it is ready for logins.
	Name string
}

type entry struct {
	room *room.Room
	log  *chatlog.Log
}

// Session is the client side of one server connection.
type Session struct {
	client  room.Client
	user    *User
	router  *commands.Dispatcher
	backlog int
	onLine  func(roomID string, tokens []string)
	name    string

	rooms map[string]*entry
	order []string
	focus string
}

// New creates a session sending through client.
func New(client room.Client, opts Options) *Session {
	router := opts.Commands
	if router == nil {
		router = commands.NewDispatcher()
	}
	return &Session{
		client:  client,
		user:    NewUser(),
		router:  router,
		backlog: opts.BacklogSize,
		onLine:  opts.OnLine,
		name:    strings.TrimSpace(opts.Name),
		rooms:   make(map[string]*entry),
	}
}

// User returns the local identity.
func (s *Session) User() *User { return s.user }

// Room returns an open room.
func (s *Session) Room(id string) (*room.Room, bool) {
	e, ok := s.rooms[id]
	if !ok {
		return nil, false
	}
	return e.room, true
}

// Log returns the transcript of an open room.
func (s *Session) Log(id string) (*chatlog.Log, bool) {
	e, ok := s.rooms[id]
	if !ok {
		return nil, false
	}
	return e.log, true
}

// RoomIDs returns the open rooms in the order they were opened.
func (s *Session) RoomIDs() []string {
	return slices.Clone(s.order)
}

// Focused returns the active room, or nil when none is open.
func (s *Session) Focused() *room.Room {
	r, _ := s.Room(s.focus)
	return r
}

// FocusedID returns the active room id.
func (s *Session) FocusedID() string { return s.focus }

// Focus makes id the active room.
func (s *Session) Focus(id string) error {
	if _, ok := s.rooms[id]; !ok {
		return fmt.Errorf("focus %q: %w", id, ErrUnknownRoom)
	}
	s.focus = id
	return nil
}

// FocusNext moves focus by delta positions, wrapping around.
func (s *Session) FocusNext(delta int) {
	if len(s.order) == 0 {
		return
	}
	i := slices.Index(s.order, s.focus)
	if i < 0 {
		i = 0
	}
	n := len(s.order)
	s.focus = s.order[((i+delta)%n+n)%n]
}

// Join opens roomID, or focuses it when already open. It implements
// commands.Navigator.
func (s *Session) Join(roomID string) {
	if roomID == "" {
		return
	}
	if target, ok := strings.CutPrefix(roomID, commands.ChallengeRoomPrefix); ok {
		s.challenge(target)
		return
	}
	s.open(roomID, room.Options{}, true)
}

// challenge opens the PM room with target with the challenge form shown.
func (s *Session) challenge(target string) {
	local := s.user.UserID()
	if local == "" {
		if r := s.Focused(); r != nil {
			r.Receive(noNameError)
		}
		return
	}
	id := room.PMRoomID(local, target)
	if e, ok := s.rooms[id]; ok {
		e.room.OpenChallenge()
		s.focus = id
		return
	}
	s.open(id, room.Options{Challenging: true}, true)
}

func (s *Session) open(id string, opts room.Options, focus bool) *room.Room {
	if e, ok := s.rooms[id]; ok {
		if focus {
			s.focus = id
		}
		return e.room
	}

	log := chatlog.New(s.backlog)
	var sink room.Sink = log
	if s.onLine != nil {
		sink = teeSink{log: log, roomID: id, fn: s.onLine}
	}
	r := room.New(id, opts, room.Deps{
		Client:    s.client,
		Identity:  s.user,
		Navigator: s,
		Commands:  s.router,
		Sink:      sink,
	})
	s.rooms[id] = &entry{room: r, log: log}
	s.order = append(s.order, id)
	if focus || s.focus == "" {
		s.focus = id
	}
	slog.Debug("session_room_opened", "room", id, "pm_target", r.PMTarget())
	return r
}

// Leave closes roomID. A leave request goes to the server only when the
// room is still connected after closing, which is not the case for PMs.
func (s *Session) Leave(roomID string) {
	if err := s.close(roomID, true); err != nil {
		slog.Debug("session_leave_ignored", "room", roomID, "error", err)
	}
}

func (s *Session) close(roomID string, notify bool) error {
	e, ok := s.rooms[roomID]
	if !ok {
		return fmt.Errorf("leave %q: %w", roomID, ErrUnknownRoom)
	}
	e.room.Close()
	if notify && e.room.Connected() && s.client != nil {
		if err := s.client.Send(protocol.Leave(roomID)); err != nil {
			slog.Warn("session_leave_send_failed", "room", roomID, "error", err)
		}
	}

	i := slices.Index(s.order, roomID)
	s.order = slices.Delete(s.order, i, i+1)
	delete(s.rooms, roomID)
	if s.focus == roomID {
		s.focus = ""
		if len(s.order) > 0 {
			s.focus = s.order[max(i-1, 0)]
		}
	}
	slog.Debug("session_room_closed", "room", roomID)
	return nil
}

// Send routes a line typed into the focused room. Without a focused room
// only local commands are accepted.
func (s *Session) Send(line string) error {
	r := s.Focused()
	if r == nil {
		if s.router.Dispatch(line, commands.NewContext(nil, s)) {
			return nil
		}
		return fmt.Errorf("send: %w", ErrUnknownRoom)
	}
	_, err := r.Send(line, false)
	return err
}

// ReceiveFrame handles one raw server frame.
func (s *Session) ReceiveFrame(data string) {
	frame := protocol.SplitFrame(data)
	if frame.RoomID == "" {
		for _, line := range frame.Lines {
			s.receiveGlobal(line)
		}
		return
	}
	s.receiveRoom(frame)
}

func (s *Session) receiveRoom(frame protocol.Frame) {
	lines := frame.Lines
	if len(lines) > 0 {
		switch protocol.ParseLine(lines[0])[0] {
		case "init":
			s.open(frame.RoomID, room.Options{Joined: true}, false)
			lines = lines[1:]
		case "deinit":
			if err := s.close(frame.RoomID, false); err != nil {
				slog.Debug("session_deinit_ignored", "room", frame.RoomID, "error", err)
			}
			return
		}
	}

	e, ok := s.rooms[frame.RoomID]
	if !ok {
		slog.Debug("session_frame_dropped", "room", frame.RoomID, "lines", len(lines))
		return
	}
	for _, line := range lines {
		e.room.Receive(line)
	}
}

func (s *Session) receiveGlobal(line string) {
	tokens := protocol.ParseLine(line)
	switch tokens[0] {
	case "updateuser":
		name := tokenAt(tokens, 1)
		s.user.SetName(name, tokenAt(tokens, 2) == "1")
		slog.Info("session_user_updated", "name", name, "userid", s.user.UserID())
		return
	case "pm":
		s.receivePM(tokenAt(tokens, 1), tokenAt(tokens, 2), tokenAt(tokens, 3))
		return
	case "challstr":
		slog.Debug("session_challstr_received")
		s.requestName()
		return
	}
	if r := s.Focused(); r != nil {
		r.Receive(line)
	}
}

func (s *Session) requestName() {
	if s.name == "" || s.client == nil {
		return
	}
	if err := s.client.Send(protocol.Rename(s.name)); err != nil {
		slog.Warn("session_rename_send_failed", "name", s.name, "error", err)
	}
}

// receivePM delivers a private message into the PM room of its two
// parties, opening it in the background when needed.
func (s *Session) receivePM(from, to, message string) {
	if userid.ToID(from) == "" || userid.ToID(to) == "" {
		slog.Debug("session_pm_malformed", "from", from, "to", to)
		return
	}
	id := room.PMRoomID(from, to)
	r := s.open(id, room.Options{}, false)
	r.Receive("|c|" + from + "|" + message)
}

type teeSink struct {
	log    *chatlog.Log
	roomID string
	fn     func(roomID string, tokens []string)
}

func (t teeSink) Add(tokens []string) {
	t.log.Add(tokens)
	t.fn(t.roomID, tokens)
}

func tokenAt(tokens []string, i int) string {
	if i < len(tokens) {
		return tokens[i]
	}
	return ""
}
