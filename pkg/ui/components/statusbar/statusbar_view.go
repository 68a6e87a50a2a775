package statusbar

import (
	"fmt"
	"strings"

	"pschat/pkg/ui/styles"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// StatusBarView handles the status bar rendering with Lipgloss
type StatusBarView struct {
	room      string
	connected bool
	name      string
	index     int
	total     int
	message   string
	width     int
	style     lipgloss.Style
}

// NewStatusBarView creates a new status bar view
func NewStatusBarView() *StatusBarView {
	return &StatusBarView{
		width: 80,
		style: styles.StatusBarStyle,
	}
}

// SetRoom updates the focused room title and whether it is joined.
func (s *StatusBarView) SetRoom(title string, connected bool) {
	s.room = strings.TrimSpace(title)
	s.connected = connected
}

// SetPosition records the focused room's 0-based index among total rooms.
func (s *StatusBarView) SetPosition(index, total int) {
	s.index = index
	s.total = total
}

// SetName updates the local user name
func (s *StatusBarView) SetName(name string) {
	s.name = strings.TrimSpace(name)
}

// SetMessage sets a temporary message
func (s *StatusBarView) SetMessage(msg string) {
	s.message = msg
}

// SetWidth updates the width for rendering
func (s *StatusBarView) SetWidth(width int) {
	s.width = width
}

// SetTheme allows changing the status bar theme
func (s *StatusBarView) SetTheme(theme string) {
	s.style = styles.StatusBarTheme(theme)
}

// Content returns the unstyled status text.
func (s *StatusBarView) Content() string {
	room := s.room
	if room == "" {
		room = "no room"
	}
	if !s.connected && s.room != "" {
		room += " (offline)"
	}
	name := s.name
	if name == "" {
		name = "guest"
	}

	position := ""
	if s.total > 0 {
		position = fmt.Sprintf(" [%d/%d]", s.index+1, s.total)
	}

	if s.message != "" {
		return fmt.Sprintf("[pschat] %s%s | %s", room, position, s.message)
	}
	return fmt.Sprintf("[pschat] %s%s | %s | ctrl+n/ctrl+p rooms", room, position, name)
}

// Render returns the styled status bar string
func (s *StatusBarView) Render() string {
	content := s.Content()

	// Truncate if too long (ANSI-aware width).
	maxWidth := s.width - 4
	if maxWidth < 10 {
		maxWidth = 10
	}

	if ansi.StringWidth(content) > maxWidth {
		content = ansi.Truncate(content, maxWidth, "...")
	}

	// Style first, then pad to fill width
	styled := s.style.Render(content)

	contentWidth := lipgloss.Width(styled)
	if contentWidth < s.width {
		styled += strings.Repeat(" ", s.width-contentWidth)
	}

	return styled
}
