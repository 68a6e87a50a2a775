package chatlog

import "strings"

// Render turns a tokenized line into transcript text. ok is false for
// control lines that carry state only and have no visible form.
func Render(tokens []string) (text string, ok bool) {
	if len(tokens) == 0 {
		return "", false
	}
	switch tokens[0] {
	case "":
		return arg(tokens, 1), true
	case "c", "chat":
		return renderChat(arg(tokens, 1), arg(tokens, 2)), true
	case "c:":
		return renderChat(arg(tokens, 2), arg(tokens, 3)), true
	case "join", "j", "J":
		return displayName(arg(tokens, 1)) + " joined", true
	case "leave", "l", "L":
		return displayName(arg(tokens, 1)) + " left", true
	case "name", "n", "N":
		return displayName(arg(tokens, 2)) + " renamed to " + displayName(arg(tokens, 1)), true
	case "error":
		return "error: " + arg(tokens, 1), true
	case "nametaken":
		return "error: " + arg(tokens, 2), true
	case "raw", "html", "warning", "bigerror":
		return arg(tokens, 1), true
	case "title", "users", "init", "deinit", "updateuser", "challstr",
		"uhtml", "uhtmlchange", "tier", "debug", "inactive", "inactiveoff",
		"formats", "customgroups", "queryresponse", ":", "timestamp":
		return "", false
	}
	return strings.Join(tokens, "|"), true
}

func renderChat(name, message string) string {
	name = displayName(name)
	if action, ok := strings.CutPrefix(message, "/me "); ok {
		return "• " + name + " " + action
	}
	if rest, ok := strings.CutPrefix(message, "//"); ok {
		message = "/" + rest
	}
	return name + ": " + message
}

// displayName drops the blank rank symbol of regular users.
func displayName(name string) string {
	return strings.TrimPrefix(name, " ")
}

func arg(tokens []string, i int) string {
	if i < len(tokens) {
		return tokens[i]
	}
	return ""
}
