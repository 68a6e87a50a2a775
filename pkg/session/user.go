package session

import "pschat/pkg/userid"

// User is the local identity. Rooms subscribe to it to re-resolve their
// PM partner when the name changes.
type User struct {
	name  string
	id    string
	named bool

	subs   map[uint64]func()
	nextID uint64
}

// NewUser creates an unnamed user.
func NewUser() *User {
	return &User{subs: make(map[uint64]func())}
}

// Name returns the display name as sent by the server.
func (u *User) Name() string { return u.name }

// UserID returns the normalized name.
func (u *User) UserID() string { return u.id }

// Named reports whether the server accepted a chosen name.
func (u *User) Named() bool { return u.named }

// SetName updates the identity and notifies subscribers if it changed.
func (u *User) SetName(name string, named bool) {
	if name == u.name && named == u.named {
		return
	}
	u.name = name
	u.id = userid.ToID(name)
	u.named = named
	for _, fn := range u.snapshot() {
		fn()
	}
}

// Subscribe registers fn for identity changes.
func (u *User) Subscribe(fn func()) (unsubscribe func()) {
	u.nextID++
	id := u.nextID
	u.subs[id] = fn
	return func() { delete(u.subs, id) }
}

func (u *User) snapshot() []func() {
	fns := make([]func(), 0, len(u.subs))
	for _, fn := range u.subs {
		fns = append(fns, fn)
	}
	return fns
}
