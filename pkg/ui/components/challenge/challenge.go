// Package challenge is the inline form for challenging a PM partner.
package challenge

import (
	"strings"

	"pschat/pkg/ui/components/chatbox"
	"pschat/pkg/ui/components/utils"
	"pschat/pkg/ui/styles"

	tea "charm.land/bubbletea/v2"
)

const (
	// DefaultFormat is prefilled when the form opens.
	DefaultFormat = "gen9randombattle"

	footerLabel = "Enter Challenge | Esc Cancel"
)

// SubmitMsg is sent when the user confirms a format.
type SubmitMsg struct {
	RoomID string
	Format string
}

// CancelMsg is sent when the user dismisses the form.
type CancelMsg struct {
	RoomID string
}

// Prompt asks for the battle format of a challenge.
type Prompt struct {
	roomID  string
	target  string
	input   *chatbox.Chatbox
	visible bool
	width   int
}

// NewPrompt creates a hidden prompt.
func NewPrompt() *Prompt {
	input := chatbox.New()
	input.SetMaxHeight(1)
	return &Prompt{input: input, width: 40}
}

// Show opens the form for roomID, challenging target.
func (p *Prompt) Show(roomID, target string) {
	if p.visible && p.roomID == roomID {
		return
	}
	p.roomID = roomID
	p.target = target
	p.input.SetValue(DefaultFormat)
	p.input.SetSelection(0, len([]rune(DefaultFormat)))
	p.visible = true
}

// Hide closes the form.
func (p *Prompt) Hide() {
	p.visible = false
}

// IsVisible returns whether the form is open.
func (p *Prompt) IsVisible() bool {
	return p.visible
}

// RoomID returns the room the form was opened for.
func (p *Prompt) RoomID() string {
	return p.roomID
}

// Format returns the typed format.
func (p *Prompt) Format() string {
	return strings.TrimSpace(p.input.Value())
}

// SetSize sets the form width.
func (p *Prompt) SetSize(width, height int) {
	p.width = width
	p.input.SetWidth(width - 4)
}

// Update handles keys while the form is open.
func (p *Prompt) Update(msg tea.Msg) tea.Cmd {
	if !p.visible {
		return nil
	}
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "enter":
			format := p.Format()
			if format == "" {
				return nil
			}
			roomID := p.roomID
			p.Hide()
			return func() tea.Msg {
				return SubmitMsg{RoomID: roomID, Format: format}
			}
		case "esc":
			roomID := p.roomID
			p.Hide()
			return func() tea.Msg {
				return CancelMsg{RoomID: roomID}
			}
		}
	}
	return p.input.Update(msg)
}

// View renders the form.
func (p *Prompt) View() string {
	if !p.visible {
		return ""
	}
	contentWidth := p.width - 4
	if contentWidth < 1 {
		contentWidth = 1
	}
	title := styles.TitleStyle.Render(utils.TruncateToWidth("Challenge "+p.target, contentWidth))
	footer := styles.FooterStyle.Render(utils.TruncateToWidth(footerLabel, contentWidth))
	return styles.BoxStyle.
		Width(p.width).
		Render(strings.Join([]string{title, p.input.View(), footer}, "\n"))
}
