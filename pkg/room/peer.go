package room

import (
	"strings"

	"pschat/pkg/userid"
)

const (
	// PMPrefix starts the id of a two-party room: pm-<userid>-<userid>.
	PMPrefix = "pm-"

	pmTitlePrefix = "[PM] "
)

// PMRoomID returns the two-party room id for a pair of users. The ids are
// ordered so both sides compute the same room.
func PMRoomID(a, b string) string {
	idA, idB := userid.ToID(a), userid.ToID(b)
	if idB < idA {
		idA, idB = idB, idA
	}
	return PMPrefix + idA + "-" + idB
}

// pmParticipants extracts both userids from a two-party room id.
func pmParticipants(roomID string) (id1, id2 string, ok bool) {
	rest, found := strings.CutPrefix(roomID, PMPrefix)
	if !found {
		return "", "", false
	}
	parts := strings.Split(rest, "-")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func (r *Room) localID() string {
	if r.identity == nil {
		return ""
	}
	return r.identity.UserID()
}

// UpdateTarget resolves the PM partner from the room id and the local
// user. Without force it does nothing until the local user is one of the
// two participants; with force an unresolved room defaults to the first
// participant. Repeated calls with the same inputs change nothing.
func (r *Room) UpdateTarget(force bool) {
	id1, id2, ok := pmParticipants(r.id)
	if !ok {
		return
	}

	var target string
	switch r.localID() {
	case id1:
		target = id2
	case id2:
		target = id1
	default:
		if !force {
			return
		}
		target = id1
	}

	changed := userid.ToID(r.pmTarget) != target
	if !changed && !force {
		return
	}
	if changed {
		r.pmTarget = target
	}

	if r.users.Count() == 0 {
		r.users.Set(2, []string{" " + id1, " " + id2})
	}
	r.title = pmTitlePrefix + r.pmTarget
	r.Refresh()
}
