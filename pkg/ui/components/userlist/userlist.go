// Package userlist renders a room's participants beside the chat log.
package userlist

import (
	"fmt"
	"strings"

	"pschat/pkg/roster"
	"pschat/pkg/ui/components/utils"
	"pschat/pkg/ui/styles"

	"charm.land/lipgloss/v2"
)

const (
	userlistBorderSize = 1
	userlistPaddingH   = 1

	// DefaultWidth is the panel width including its border.
	DefaultWidth = 22
)

var userlistBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(styles.ColorBorderMuted)

// Row is one rendered participant.
type Row struct {
	Symbol string
	Name   string
	Staff  bool
}

// UserList shows the sorted roster of the focused room.
type UserList struct {
	rows    []Row
	count   int
	visible bool
	width   int
	height  int
	scrollY int
}

// NewUserList creates a visible user list.
func NewUserList() *UserList {
	return &UserList{visible: true, width: DefaultWidth}
}

// Show displays the panel.
func (u *UserList) Show() { u.visible = true }

// Hide hides the panel.
func (u *UserList) Hide() { u.visible = false }

// Toggle flips visibility.
func (u *UserList) Toggle() { u.visible = !u.visible }

// IsVisible returns whether the panel is visible.
func (u *UserList) IsVisible() bool { return u.visible }

// SetSize sets the panel dimensions including the border.
func (u *UserList) SetSize(width, height int) {
	u.width = width
	u.height = height
	u.clampScroll()
}

// Width returns the panel width, or 0 while hidden.
func (u *UserList) Width() int {
	if !u.visible {
		return 0
	}
	return u.width
}

// SetRoster rebuilds the rows from r in display order.
func (u *UserList) SetRoster(r *roster.Roster, ranks roster.Ranker) {
	if r == nil {
		u.rows = nil
		u.count = 0
		u.scrollY = 0
		return
	}
	u.count = r.Count()
	entries := r.Sorted(ranks)
	u.rows = make([]Row, 0, len(entries))
	for _, e := range entries {
		u.rows = append(u.rows, newRow(e, ranks))
	}
	u.clampScroll()
}

func newRow(e roster.Entry, ranks roster.Ranker) Row {
	symbol := roster.Symbol(e.Name)
	name := strings.TrimPrefix(e.Name, string(symbol))
	row := Row{Symbol: string(symbol), Name: name}
	if symbol == ' ' || symbol == 0 {
		row.Symbol = " "
	}
	if ranks != nil {
		if group, ok := ranks.Group(symbol); ok {
			row.Staff = group.Type == roster.GroupStaff || group.Type == roster.GroupLeadership
		}
	}
	return row
}

// Rows returns the rendered participants.
func (u *UserList) Rows() []Row {
	return u.rows
}

// Header returns the participant count line.
func (u *UserList) Header() string {
	if u.count == 1 {
		return "1 user"
	}
	return fmt.Sprintf("%d users", u.count)
}

// ScrollUp moves the list up one row.
func (u *UserList) ScrollUp() {
	if u.scrollY > 0 {
		u.scrollY--
	}
}

// ScrollDown moves the list down one row.
func (u *UserList) ScrollDown() {
	u.scrollY++
	u.clampScroll()
}

func (u *UserList) clampScroll() {
	maxScroll := len(u.rows) - u.bodyHeight()
	if maxScroll < 0 {
		maxScroll = 0
	}
	if u.scrollY > maxScroll {
		u.scrollY = maxScroll
	}
	if u.scrollY < 0 {
		u.scrollY = 0
	}
}

func (u *UserList) contentWidth() int {
	width := u.width - 2*(userlistBorderSize+userlistPaddingH)
	if width < 1 {
		return 1
	}
	return width
}

func (u *UserList) contentHeight() int {
	height := u.height - 2*userlistBorderSize
	if height < 1 {
		return 1
	}
	return height
}

// bodyHeight leaves a row for the header.
func (u *UserList) bodyHeight() int {
	return u.contentHeight() - 1
}

// View renders the panel.
func (u *UserList) View() string {
	if !u.visible {
		return ""
	}

	contentWidth := u.contentWidth()
	lines := make([]string, 0, u.contentHeight())
	lines = append(lines, utils.PadStyled(styles.TitleStyle.Render(utils.TruncateToWidth(u.Header(), contentWidth)), contentWidth))

	end := u.scrollY + u.bodyHeight()
	if end > len(u.rows) {
		end = len(u.rows)
	}
	for _, row := range u.rows[u.scrollY:end] {
		lines = append(lines, utils.PadStyled(renderRow(row, contentWidth), contentWidth))
	}
	for len(lines) < u.contentHeight() {
		lines = append(lines, utils.PadPlain("", contentWidth))
	}

	boxWidth := u.width
	if boxWidth < 1 {
		boxWidth = 1
	}
	return userlistBoxStyle.
		Width(boxWidth).
		Padding(0, userlistPaddingH).
		Render(strings.Join(lines, "\n"))
}

func renderRow(row Row, width int) string {
	name := utils.TruncateToWidth(row.Name, width-1)
	nameStyle := styles.TextStyle
	if row.Staff {
		nameStyle = styles.StaffStyle
	}
	return styles.RankStyle.Render(row.Symbol) + nameStyle.Render(name)
}
