package commands

import (
	"log/slog"

	"pschat/pkg/userid"
)

// ChallengeRoomPrefix prefixes the synthetic room that opens a challenge
// against a user.
const ChallengeRoomPrefix = "challenge-"

// JoinHandler handles /join and /j
type JoinHandler struct{}

func (h *JoinHandler) Name() string        { return "join" }
func (h *JoinHandler) Aliases() []string   { return []string{"j"} }
func (h *JoinHandler) Description() string { return "Join a room" }

func (h *JoinHandler) Execute(ctx *Context) bool {
	roomID := userid.RoomID(ctx.Target)
	slog.Debug("command_join", "room", roomID)
	if ctx.Nav != nil {
		ctx.Nav.Join(roomID)
	}
	return true
}

// LeaveHandler handles /leave and /part
type LeaveHandler struct{}

func (h *LeaveHandler) Name() string        { return "leave" }
func (h *LeaveHandler) Aliases() []string   { return []string{"part"} }
func (h *LeaveHandler) Description() string { return "Leave a room (default: this one)" }

func (h *LeaveHandler) Execute(ctx *Context) bool {
	roomID := userid.RoomID(ctx.Target)
	if roomID == "" && ctx.Room != nil {
		roomID = ctx.Room.ID()
	}
	slog.Debug("command_leave", "room", roomID)
	if ctx.Nav != nil {
		ctx.Nav.Leave(roomID)
	}
	return true
}

// ChallengeHandler handles /challenge and /chall
type ChallengeHandler struct{}

func (h *ChallengeHandler) Name() string        { return "challenge" }
func (h *ChallengeHandler) Aliases() []string   { return []string{"chall"} }
func (h *ChallengeHandler) Description() string { return "Challenge a user, or the PM partner" }

func (h *ChallengeHandler) Execute(ctx *Context) bool {
	if ctx.Target != "" {
		roomID := ChallengeRoomPrefix + userid.ToID(ctx.Target)
		slog.Debug("command_challenge", "room", roomID)
		if ctx.Nav != nil {
			ctx.Nav.Join(roomID)
		}
		return true
	}
	if ctx.Room != nil {
		ctx.Room.OpenChallenge()
	}
	return true
}
