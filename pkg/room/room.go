// Package room holds the state of one open chat room: its title,
// connection flag, PM partner, roster and subscribers. All mutation is
// synchronous and happens on the caller's goroutine; a Room is not safe
// for concurrent use.
package room

import (
	"errors"
	"log/slog"

	"pschat/pkg/commands"
	"pschat/pkg/protocol"
	"pschat/pkg/roster"
)

// ErrNotPM is returned by operations that need a PM partner.
var ErrNotPM = errors.New("not a PM room")

const notPMError = "|error|Can only be used in a PM."

// Client carries outbound protocol lines to the server.
type Client interface {
	Send(line string) error
}

// Identity is the local user as seen by a room.
type Identity interface {
	UserID() string
	// Subscribe registers fn for identity changes and returns a function
	// that removes it.
	Subscribe(fn func()) (unsubscribe func())
}

// Sink receives every inbound line after its state effects are applied.
type Sink interface {
	Add(tokens []string)
}

// Listener is notified of every inbound line. An empty line means only
// the room state changed.
type Listener func(line string)

// Options are the per-room settings given when a room is opened.
type Options struct {
	PMTarget    string
	Challenging bool
	// Joined marks a room the server has already joined us to, so no
	// join request is sent.
	Joined bool
}

// Deps are the collaborators a room talks to. Any of them may be nil.
type Deps struct {
	Client    Client
	Identity  Identity
	Navigator commands.Navigator
	Commands  *commands.Dispatcher
	Sink      Sink
}

type subscription struct {
	id uint64
	fn Listener
}

// Room is one conversational context: a channel or a PM session.
type Room struct {
	id          string
	title       string
	connected   bool
	pmTarget    string
	challenging bool
	closed      bool

	users *roster.Roster

	client   Client
	identity Identity
	nav      commands.Navigator
	router   *commands.Dispatcher

	subs          []subscription
	nextSubID     uint64
	unsubIdentity func()
}

// New opens a room. The PM partner is resolved immediately and the room
// connects, which sends a join request unless it is a PM.
func New(id string, opts Options, deps Deps) *Room {
	r := &Room{
		id:        id,
		title:     id,
		pmTarget:  opts.PMTarget,
		connected: opts.Joined,
		users:     roster.New(),
		client:    deps.Client,
		identity:  deps.Identity,
		nav:       deps.Navigator,
		router:    deps.Commands,
	}
	if opts.Challenging {
		r.challenging = true
	}
	if r.router == nil {
		r.router = commands.NewDispatcher()
	}
	if deps.Sink != nil {
		d := NewDispatcher(r, deps.Sink)
		r.Subscribe(d.OnLine)
	}
	if r.identity != nil {
		r.unsubIdentity = r.identity.Subscribe(func() {
			r.UpdateTarget(false)
		})
	}

	r.UpdateTarget(true)
	r.Connect()
	return r
}

// ID returns the room id.
func (r *Room) ID() string { return r.id }

// Title returns the display title.
func (r *Room) Title() string { return r.title }

// Connected reports whether the room is joined on the server.
func (r *Room) Connected() bool { return r.connected }

// PMTarget returns the PM partner, or "" outside PM rooms.
func (r *Room) PMTarget() string { return r.pmTarget }

// Challenging reports whether the inline challenge form is open.
func (r *Room) Challenging() bool { return r.challenging }

// Closed reports whether Close has been called.
func (r *Room) Closed() bool { return r.closed }

// Users returns the room roster. Callers must not mutate it.
func (r *Room) Users() *roster.Roster { return r.users }

// UserCount returns the declared participant count.
func (r *Room) UserCount() int { return r.users.Count() }

// Connect joins the room on the server once. PM rooms have no server-side
// channel to join.
func (r *Room) Connect() {
	if r.connected {
		return
	}
	if r.pmTarget == "" {
		r.send(protocol.Join(r.id))
	}
	r.connected = true
}

// Subscribe registers fn for inbound lines and state refreshes.
func (r *Room) Subscribe(fn Listener) (unsubscribe func()) {
	r.nextSubID++
	id := r.nextSubID
	r.subs = append(r.subs, subscription{id: id, fn: fn})
	return func() {
		for i, s := range r.subs {
			if s.id == id {
				r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
				return
			}
		}
	}
}

// Receive delivers one inbound line to the room.
func (r *Room) Receive(line string) {
	r.notify(line)
}

// Refresh tells subscribers the room state changed.
func (r *Room) Refresh() {
	r.notify("")
}

func (r *Room) notify(line string) {
	if r.closed {
		return
	}
	subs := append([]subscription(nil), r.subs...)
	for _, s := range subs {
		s.fn(line)
	}
}

// SetTitle sets the room title.
func (r *Room) SetTitle(title string) {
	r.title = title
	r.Refresh()
}

// SetUsers replaces the roster with a snapshot.
func (r *Room) SetUsers(count int, names []string) {
	r.users.Set(count, names)
	r.Refresh()
}

// AddUser adds one participant.
func (r *Room) AddUser(name string) {
	r.users.Add(name)
	r.Refresh()
}

// RemoveUser removes one participant.
func (r *Room) RemoveUser(name string) {
	r.users.Remove(name)
	r.Refresh()
}

// RenameUser replaces oldName with newName.
func (r *Room) RenameUser(newName, oldName string) {
	r.users.Rename(newName, oldName)
	r.Refresh()
}

// HandleMessage runs line as a local command and reports whether it was
// one.
func (r *Room) HandleMessage(line string) bool {
	return r.router.Dispatch(line, commands.NewContext(r, r.nav))
}

// Send routes a line typed into this room. Local commands are handled in
// place unless direct is set; everything else goes to the server, as a PM
// when the room has a partner. local reports whether the line was handled
// without sending.
func (r *Room) Send(line string, direct bool) (local bool, err error) {
	r.UpdateTarget(false)
	if !direct && r.HandleMessage(line) {
		return true, nil
	}
	if r.pmTarget != "" {
		return false, r.send(protocol.PM(r.pmTarget, line))
	}
	return false, r.send(protocol.Message(r.id, line))
}

func (r *Room) send(line string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Send(line); err != nil {
		slog.Warn("room_send_failed", "room", r.id, "error", err)
		return err
	}
	return nil
}

// OpenChallenge opens the inline challenge form. Outside a PM it reports
// an inline error instead.
func (r *Room) OpenChallenge() {
	if r.pmTarget == "" {
		r.Receive(notPMError)
		return
	}
	r.challenging = true
	r.Refresh()
}

// CancelChallenge closes the inline challenge form.
func (r *Room) CancelChallenge() {
	r.challenging = false
	r.Refresh()
}

// SubmitChallenge closes the challenge form and challenges the PM partner
// in format with packedTeam, which may be empty.
func (r *Room) SubmitChallenge(format, packedTeam string) error {
	r.challenging = false
	if r.pmTarget == "" {
		r.Refresh()
		return ErrNotPM
	}
	if err := r.send(protocol.UseTeam(packedTeam)); err != nil {
		r.Refresh()
		return err
	}
	err := r.send(protocol.Challenge(r.pmTarget, format))
	r.Refresh()
	return err
}

// Close tears the room down. A PM room is marked disconnected first so
// the caller knows there is no channel to leave. All subscriptions are
// dropped.
func (r *Room) Close() {
	if r.closed {
		return
	}
	if r.pmTarget != "" {
		r.connected = false
	}
	if r.unsubIdentity != nil {
		r.unsubIdentity()
		r.unsubIdentity = nil
	}
	r.subs = nil
	r.closed = true
}
