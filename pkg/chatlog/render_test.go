package chatlog

import "testing"

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   string
		ok     bool
	}{
		{"plain", []string{"", "welcome"}, "welcome", true},
		{"chat", []string{"c", "@Mod", "hello"}, "@Mod: hello", true},
		{"chat regular user", []string{"chat", " bob", "hi"}, "bob: hi", true},
		{"timestamped chat", []string{"c:", "1700000000", " bob", "hi"}, "bob: hi", true},
		{"action", []string{"c", " bob", "/me waves"}, "• bob waves", true},
		{"escaped slash", []string{"c", " bob", "//shrug"}, "bob: /shrug", true},
		{"join", []string{"j", " bob"}, "bob joined", true},
		{"leave", []string{"L", "+ann"}, "+ann left", true},
		{"rename", []string{"n", " new", " old"}, "old renamed to new", true},
		{"error", []string{"error", "Can only be used in a PM."}, "error: Can only be used in a PM.", true},
		{"name taken", []string{"nametaken", "Ash", "Someone is already using the name \"Ash\"."}, "error: Someone is already using the name \"Ash\".", true},
		{"raw", []string{"raw", "<b>hi</b>"}, "<b>hi</b>", true},
		{"title hidden", []string{"title", "Lobby"}, "", false},
		{"users hidden", []string{"users", "1, a"}, "", false},
		{"unknown", []string{"tournament", "create", "gen9ou"}, "tournament|create|gen9ou", true},
		{"empty", nil, "", false},
		{"short chat", []string{"c"}, ": ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Render(tt.tokens)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Render(%q) = (%q, %v), expected (%q, %v)", tt.tokens, got, ok, tt.want, tt.ok)
			}
		})
	}
}
