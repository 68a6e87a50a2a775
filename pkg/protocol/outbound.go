package protocol

// Outbound builders. Every outbound line is "<roomid>|<text>"; global
// commands use an empty room id.

// Message frames text for a room.
func Message(roomID, text string) string {
	return roomID + "|" + text
}

// Join asks the server to join roomID.
func Join(roomID string) string {
	return Message("", "/join "+roomID)
}

// Leave asks the server to leave roomID.
func Leave(roomID string) string {
	return Message("", "/leave "+roomID)
}

// PM wraps text into a private message to target.
func PM(target, text string) string {
	return Message("", "/pm "+target+", "+text)
}

// Challenge challenges target in format.
func Challenge(target, format string) string {
	return Message("", "/challenge "+target+", "+format)
}

// UseTeam selects the packed team for the next challenge; an empty team is
// allowed.
func UseTeam(packedTeam string) string {
	return Message("", "/utm "+packedTeam)
}

// Rename asks the server to change the local display name.
func Rename(name string) string {
	return Message("", "/trn "+name)
}
