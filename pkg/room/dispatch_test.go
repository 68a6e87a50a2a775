package room

import (
	"slices"
	"strings"
	"testing"

	"pschat/pkg/roster"
)

func TestDispatcher_RosterSequence(t *testing.T) {
	h := newHarness("lobby", "me", Options{})

	for _, line := range []string{"|users|2,a,b", "|leave|b", "|join|c"} {
		h.room.Receive(line)
	}

	users := h.room.Users()
	if users.Count() != 2 {
		t.Errorf("Expected count 2, got %d", users.Count())
	}
	want := []roster.Entry{{ID: "a", Name: "a"}, {ID: "c", Name: "c"}}
	got := users.Entries()
	slices.SortFunc(got, func(a, b roster.Entry) int { return strings.Compare(a.ID, b.ID) })
	if !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestDispatcher_ForwardsEveryLine(t *testing.T) {
	h := newHarness("lobby", "me", Options{})

	lines := []string{"|title|Lobby", "|users|1, me", "|c| bob|hi", "|tournament|create"}
	for _, line := range lines {
		h.room.Receive(line)
	}

	if h.log.Size() != len(lines) {
		t.Fatalf("Expected %d forwarded lines, got %d", len(lines), h.log.Size())
	}
	if h.room.Title() != "Lobby" {
		t.Errorf("Expected title Lobby, got %q", h.room.Title())
	}
	first := h.log.All()[0]
	if !slices.Equal(first, []string{"title", "Lobby"}) {
		t.Errorf("Expected title tokens first, got %q", first)
	}
}

type checkingSink struct {
	room   *Room
	titles []string
}

func (s *checkingSink) Add(tokens []string) {
	s.titles = append(s.titles, s.room.Title())
}

func TestDispatcher_StateBeforeSink(t *testing.T) {
	r := New("lobby", Options{}, Deps{})
	sink := &checkingSink{room: r}
	r.Subscribe(NewDispatcher(r, sink).OnLine)

	r.Receive("|title|Renamed")
	if !slices.Equal(sink.titles, []string{"Renamed"}) {
		t.Errorf("Expected sink to see the new title, got %q", sink.titles)
	}
}

func TestDispatcher_IgnoresRefresh(t *testing.T) {
	h := newHarness("lobby", "me", Options{})
	h.room.Refresh()

	if h.log.Size() != 0 {
		t.Errorf("Expected refreshes to be ignored, got %d lines", h.log.Size())
	}
}

func TestDispatcher_ShortForms(t *testing.T) {
	h := newHarness("lobby", "me", Options{})

	h.room.Receive("|users|2, a, b")
	h.room.Receive("|J|+c")
	h.room.Receive("|l| a")
	h.room.Receive("|N| bee|b")

	users := h.room.Users()
	if users.Has("a") || users.Has("b") {
		t.Error("Expected a and b to be gone")
	}
	if name, _ := users.Name("bee"); name != " bee" {
		t.Errorf("Expected renamed entry ' bee', got %q", name)
	}
	if name, _ := users.Name("c"); name != "+c" {
		t.Errorf("Expected joined entry '+c', got %q", name)
	}
}

func TestDispatcher_TolerantOfUnknownUsers(t *testing.T) {
	h := newHarness("lobby", "me", Options{})

	h.room.Receive("|users|1, a")
	h.room.Receive("|leave|ghost")
	h.room.Receive("|name| new| ghost")

	if !h.room.Users().Has("a") {
		t.Error("Expected existing entry to survive")
	}
	if h.log.Size() != 3 {
		t.Errorf("Expected all lines forwarded, got %d", h.log.Size())
	}
}

func TestParseUsers(t *testing.T) {
	tests := []struct {
		input string
		count int
		names []string
	}{
		{"3,@a, b,+c", 3, []string{"@a", " b", "+c"}},
		{"0", 0, []string{}},
		{"", 0, []string{}},
		{"2,a,,b", 2, []string{"a", "b"}},
		{"x,a", 0, []string{"a"}},
		{"-4,a", 0, []string{"a"}},
		{" 12abc,a", 12, []string{"a"}},
		{"99999999999999999999999,a", maxUserCount, []string{"a"}},
	}

	for _, tt := range tests {
		count, names := parseUsers(tt.input)
		if count != tt.count || !slices.Equal(names, tt.names) {
			t.Errorf("parseUsers(%q) = (%d, %q), expected (%d, %q)", tt.input, count, names, tt.count, tt.names)
		}
	}
}

func TestLeadingInt(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"42", 42},
		{"+7", 7},
		{"-3x", -3},
		{"  15 ", 15},
		{"abc", 0},
		{"-", 0},
		{"2147483647", maxUserCount},
		{"2147483648", maxUserCount},
		{"123456789012345678901234567890", maxUserCount},
		{"-123456789012345678901234567890", -maxUserCount},
	}

	for _, tt := range tests {
		if got := leadingInt(tt.input); got != tt.want {
			t.Errorf("leadingInt(%q) = %d, expected %d", tt.input, got, tt.want)
		}
	}
}
