package commands

// Room is the part of a chat room that local commands act on
type Room interface {
	ID() string
	PMTarget() string
	OpenChallenge()
}

// Navigator opens and closes rooms
type Navigator interface {
	Join(roomID string)
	Leave(roomID string)
}

// Context contains everything a local command needs
type Context struct {
	Room   Room
	Nav    Navigator
	Target string
}

// NewContext creates a new command context
func NewContext(room Room, nav Navigator) *Context {
	return &Context{
		Room: room,
		Nav:  nav,
	}
}
