// Package userid normalizes display names and room names into the
// identifier form used as map keys and room ids.
package userid

import "strings"

// ToID case-folds text and strips everything that is not an ASCII letter
// or digit. "Zarel" and " zarel!" both become "zarel".
func ToID(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			sb.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			sb.WriteByte(c + ('a' - 'A'))
		}
	}
	return sb.String()
}

// IsRoomIDSafe reports whether text already only contains characters a room
// id may carry (lowercase letters, digits and dashes). An empty string is
// safe.
func IsRoomIDSafe(text string) bool {
	for i := 0; i < len(text); i++ {
		c := text[i]
		if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-') {
			return false
		}
	}
	return true
}

// RoomID returns text unchanged if it is already room-id safe, otherwise its
// ToID form.
func RoomID(text string) string {
	if IsRoomIDSafe(text) {
		return text
	}
	return ToID(text)
}
