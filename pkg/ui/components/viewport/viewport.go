// Package viewport renders a room's chat log in a scrollable pane.
package viewport

import (
	"strings"

	"pschat/pkg/chatlog"
	"pschat/pkg/ui/components/utils"
	"pschat/pkg/ui/styles"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// Source is the log a ChatViewport draws from.
type Source interface {
	All() [][]string
	Seq() uint64
}

// ChatViewport wraps Bubble Tea's viewport for displaying a chat log
type ChatViewport struct {
	Viewport viewport.Model
	source   Source
	seq      uint64
	lines    int
	width    int
	ready    bool
	dirty    bool // True if content changed since last View()
}

// NewChatViewport creates a new chat viewport
func NewChatViewport() ChatViewport {
	return ChatViewport{
		Viewport: viewport.New(),
	}
}

// SetSource switches the log being shown and redraws.
func (v *ChatViewport) SetSource(src Source) {
	v.source = src
	v.rebuild()
}

// SetSize updates the viewport dimensions
func (v *ChatViewport) SetSize(width, height int) {
	v.Viewport.SetWidth(width)
	v.Viewport.SetHeight(height)
	v.ready = true
	if width != v.width {
		v.width = width
		v.rebuild()
	}
}

// Sync redraws when the source log changed. The view stays pinned to the
// bottom unless the user scrolled up.
func (v *ChatViewport) Sync() {
	if v.source == nil || v.source.Seq() == v.seq {
		return
	}
	v.rebuild()
}

func (v *ChatViewport) rebuild() {
	follow := v.Viewport.AtBottom() || v.lines == 0
	if v.source == nil {
		v.seq = 0
		v.lines = 0
		v.Viewport.SetContent("")
		v.dirty = true
		return
	}

	v.seq = v.source.Seq()
	var rendered []string
	for _, tokens := range v.source.All() {
		rendered = append(rendered, RenderLine(tokens, v.width)...)
	}
	v.lines = len(rendered)
	v.Viewport.SetContent(strings.Join(rendered, "\n"))
	v.dirty = true

	if follow {
		v.Viewport.GotoBottom()
	}
}

// RenderLine styles one log line, wrapped to width. Control lines render
// to nothing.
func RenderLine(tokens []string, width int) []string {
	text, ok := chatlog.Render(tokens)
	if !ok {
		return nil
	}
	style := lineStyle(tokens)

	var out []string
	for _, physical := range strings.Split(text, "\n") {
		for _, part := range utils.SplitByWidth(physical, width) {
			out = append(out, style.Render(part))
		}
	}
	return out
}

func lineStyle(tokens []string) lipgloss.Style {
	switch tokens[0] {
	case "c", "chat", "c:":
		msg := tokens[len(tokens)-1]
		if strings.HasPrefix(msg, "/me ") {
			return styles.ChatActionStyle
		}
		return styles.TextStyle
	case "join", "j", "J", "leave", "l", "L", "name", "n", "N":
		return styles.ChatSystemStyle
	case "error", "bigerror":
		return styles.ErrorStyle
	case "warning":
		return styles.WarningStyle
	}
	return styles.TextStyle
}

// Update handles viewport updates (scrolling, etc)
func (v *ChatViewport) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.Viewport, cmd = v.Viewport.Update(msg)
	return cmd
}

// View renders the viewport
func (v *ChatViewport) View() string {
	v.dirty = false

	if !v.ready {
		return "Loading..."
	}

	return v.Viewport.View()
}

// Lines returns the number of rendered rows.
func (v *ChatViewport) Lines() int {
	return v.lines
}

// Scrolling helpers

// ScrollUp scrolls the viewport up
func (v *ChatViewport) ScrollUp() {
	v.Viewport.ScrollUp(1)
}

// ScrollDown scrolls the viewport down
func (v *ChatViewport) ScrollDown() {
	v.Viewport.ScrollDown(1)
}

// PageUp scrolls up one page
func (v *ChatViewport) PageUp() {
	v.Viewport.PageUp()
}

// PageDown scrolls down one page
func (v *ChatViewport) PageDown() {
	v.Viewport.PageDown()
}

// IsAtBottom returns true if scrolled to bottom
func (v *ChatViewport) IsAtBottom() bool {
	return v.Viewport.AtBottom()
}
