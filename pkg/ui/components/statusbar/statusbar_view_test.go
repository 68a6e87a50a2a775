package statusbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestNewStatusBarView(t *testing.T) {
	sb := NewStatusBarView()

	if sb == nil {
		t.Fatal("NewStatusBarView() returned nil")
	}
	if sb.width != 80 {
		t.Errorf("Expected default width 80, got %d", sb.width)
	}
}

func TestStatusBarView_Render(t *testing.T) {
	sb := NewStatusBarView()
	sb.SetWidth(100)
	sb.SetRoom("Lobby", true)
	sb.SetPosition(1, 3)
	sb.SetName("Ash")

	rendered := ansi.Strip(sb.Render())

	if !strings.Contains(rendered, "[pschat]") {
		t.Error("Expected [pschat] marker")
	}
	if !strings.Contains(rendered, "Lobby [2/3]") {
		t.Errorf("Expected room and position, got %q", rendered)
	}
	if !strings.Contains(rendered, "Ash") {
		t.Error("Expected user name")
	}
	if strings.Contains(rendered, "offline") {
		t.Error("Expected connected room to not be marked offline")
	}
}

func TestStatusBarView_Defaults(t *testing.T) {
	sb := NewStatusBarView()
	sb.SetWidth(100)

	got := sb.Content()
	if !strings.Contains(got, "no room") || !strings.Contains(got, "guest") {
		t.Errorf("Expected placeholders, got %q", got)
	}
	if strings.Contains(got, "[1/") {
		t.Errorf("Expected no position without rooms, got %q", got)
	}
}

func TestStatusBarView_Offline(t *testing.T) {
	sb := NewStatusBarView()
	sb.SetRoom("[PM] bob", false)

	if !strings.Contains(sb.Content(), "[PM] bob (offline)") {
		t.Errorf("Expected offline marker, got %q", sb.Content())
	}
}

func TestStatusBarView_MessagePriority(t *testing.T) {
	sb := NewStatusBarView()
	sb.SetWidth(100)
	sb.SetRoom("lobby", true)
	sb.SetName("Ash")
	sb.SetMessage("Alert!")

	got := sb.Content()
	if !strings.Contains(got, "Alert!") {
		t.Error("Expected message to be displayed")
	}
	if strings.Contains(got, "ctrl+n") {
		t.Error("Expected message to replace help text")
	}

	sb.SetMessage("")
	if !strings.Contains(sb.Content(), "Ash") {
		t.Error("Expected name after clearing message")
	}
}

func TestStatusBarView_FullWidth(t *testing.T) {
	for _, width := range []int{40, 80, 120} {
		sb := NewStatusBarView()
		sb.SetWidth(width)
		sb.SetRoom("a room with a rather long title that goes on", true)
		sb.SetName("Ash")

		stripped := ansi.Strip(sb.Render())
		if got := ansi.StringWidth(stripped); got != width {
			t.Errorf("Expected width %d, got %d (%q)", width, got, stripped)
		}
	}
}

func TestStatusBarView_Truncation(t *testing.T) {
	sb := NewStatusBarView()
	sb.SetWidth(30)
	sb.SetRoom("a very long room title that cannot fit", true)

	stripped := ansi.Strip(sb.Render())
	if !strings.Contains(stripped, "...") {
		t.Errorf("Expected truncation indicator, got %q", stripped)
	}
}

func TestStatusBarView_SetTheme(t *testing.T) {
	sb := NewStatusBarView()
	sb.SetWidth(80)

	for _, theme := range []string{"cyan", "dark", "default", "invalid"} {
		sb.SetTheme(theme)
		if len(sb.Render()) == 0 {
			t.Errorf("Expected output for theme %s", theme)
		}
	}
}
