// Package chatbox is a multi-line text field with a rune cursor and a
// selection range. It satisfies composer.Textbox and composer.Selectable.
package chatbox

import (
	"strings"

	"pschat/pkg/ui/styles"

	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-runewidth"
)

const (
	prompt = "> "

	// DefaultMaxHeight caps how many rows the box grows to.
	DefaultMaxHeight = 5
)

// Chatbox holds the draft being typed into a room.
type Chatbox struct {
	value       []rune
	anchor      int
	cursor      int
	width       int
	maxHeight   int
	placeholder string
}

// New creates an empty chatbox.
func New() *Chatbox {
	return &Chatbox{width: 80, maxHeight: DefaultMaxHeight}
}

// SetWidth sets the rendered width including the prompt.
func (c *Chatbox) SetWidth(width int) {
	c.width = width
}

// SetMaxHeight caps the number of rendered rows.
func (c *Chatbox) SetMaxHeight(height int) {
	if height < 1 {
		height = 1
	}
	c.maxHeight = height
}

// SetPlaceholder sets the text shown while the box is empty.
func (c *Chatbox) SetPlaceholder(text string) {
	c.placeholder = text
}

// Value returns the draft.
func (c *Chatbox) Value() string {
	return string(c.value)
}

// SetValue replaces the draft and puts the cursor at the end.
func (c *Chatbox) SetValue(value string) {
	c.value = []rune(value)
	c.cursor = len(c.value)
	c.anchor = c.cursor
}

// Selection returns the selected range in rune offsets, start <= end.
func (c *Chatbox) Selection() (start, end int) {
	if c.anchor <= c.cursor {
		return c.anchor, c.cursor
	}
	return c.cursor, c.anchor
}

// SetSelection selects [start, end). The cursor goes to end.
func (c *Chatbox) SetSelection(start, end int) {
	c.anchor = c.clamp(start)
	c.cursor = c.clamp(end)
}

// Cursor returns the caret offset.
func (c *Chatbox) Cursor() int {
	return c.cursor
}

func (c *Chatbox) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i > len(c.value) {
		return len(c.value)
	}
	return i
}

func (c *Chatbox) hasSelection() bool {
	return c.anchor != c.cursor
}

// Insert replaces the selection with text.
func (c *Chatbox) Insert(text string) {
	start, end := c.Selection()
	ins := []rune(text)
	value := make([]rune, 0, len(c.value)-(end-start)+len(ins))
	value = append(value, c.value[:start]...)
	value = append(value, ins...)
	value = append(value, c.value[end:]...)
	c.value = value
	c.cursor = start + len(ins)
	c.anchor = c.cursor
}

func (c *Chatbox) deleteRange(start, end int) {
	c.value = append(c.value[:start:start], c.value[end:]...)
	c.cursor = start
	c.anchor = start
}

// Backspace deletes the selection or the rune before the cursor.
func (c *Chatbox) Backspace() {
	if c.hasSelection() {
		c.deleteRange(c.Selection())
		return
	}
	if c.cursor > 0 {
		c.deleteRange(c.cursor-1, c.cursor)
	}
}

// Delete deletes the selection or the rune after the cursor.
func (c *Chatbox) Delete() {
	if c.hasSelection() {
		c.deleteRange(c.Selection())
		return
	}
	if c.cursor < len(c.value) {
		c.deleteRange(c.cursor, c.cursor+1)
	}
}

// move places the cursor at i. With extend the anchor stays put.
func (c *Chatbox) move(i int, extend bool) {
	c.cursor = c.clamp(i)
	if !extend {
		c.anchor = c.cursor
	}
}

func (c *Chatbox) lineStart() int {
	i := c.cursor
	for i > 0 && c.value[i-1] != '\n' {
		i--
	}
	return i
}

func (c *Chatbox) lineEnd() int {
	i := c.cursor
	for i < len(c.value) && c.value[i] != '\n' {
		i++
	}
	return i
}

// Update applies editing keys and pastes.
func (c *Chatbox) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.PasteMsg:
		c.Insert(msg.Content)
	case tea.KeyPressMsg:
		c.handleKey(msg)
	}
	return nil
}

func (c *Chatbox) handleKey(msg tea.KeyPressMsg) bool {
	switch msg.String() {
	case "shift+enter", "alt+enter", "ctrl+j":
		c.Insert("\n")
	case "backspace":
		c.Backspace()
	case "delete", "ctrl+d":
		c.Delete()
	case "left":
		if c.hasSelection() {
			start, _ := c.Selection()
			c.move(start, false)
		} else {
			c.move(c.cursor-1, false)
		}
	case "right":
		if c.hasSelection() {
			_, end := c.Selection()
			c.move(end, false)
		} else {
			c.move(c.cursor+1, false)
		}
	case "shift+left":
		c.move(c.cursor-1, true)
	case "shift+right":
		c.move(c.cursor+1, true)
	case "home", "ctrl+a":
		c.move(c.lineStart(), false)
	case "end", "ctrl+e":
		c.move(c.lineEnd(), false)
	case "shift+home":
		c.move(c.lineStart(), true)
	case "shift+end":
		c.move(c.lineEnd(), true)
	case "ctrl+u":
		c.deleteRange(c.lineStart(), c.cursor)
	default:
		text := msg.Key().Text
		if text == "" {
			return false
		}
		c.Insert(text)
	}
	return true
}

type cell struct {
	text     string
	selected bool
	cursor   bool
}

// rows lays the draft out into wrapped rows and reports the row holding
// the cursor.
func (c *Chatbox) rows(width int) ([][]cell, int) {
	start, end := c.Selection()
	rows := [][]cell{{}}
	rowWidth := 0
	cursorRow := 0

	newRow := func() {
		rows = append(rows, []cell{})
		rowWidth = 0
	}

	for i := 0; i <= len(c.value); i++ {
		isCursor := i == c.cursor
		if i == len(c.value) || c.value[i] == '\n' {
			if isCursor {
				if rowWidth+1 > width && rowWidth > 0 {
					newRow()
				}
				rows[len(rows)-1] = append(rows[len(rows)-1], cell{text: " ", cursor: true})
				cursorRow = len(rows) - 1
			}
			if i < len(c.value) {
				newRow()
			}
			continue
		}

		r := c.value[i]
		w := runewidth.RuneWidth(r)
		if rowWidth+w > width && rowWidth > 0 {
			newRow()
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], cell{
			text:     string(r),
			selected: i >= start && i < end,
			cursor:   isCursor,
		})
		rowWidth += w
		if isCursor {
			cursorRow = len(rows) - 1
		}
	}
	return rows, cursorRow
}

// Height returns the number of rows View will render.
func (c *Chatbox) Height() int {
	rows, _ := c.rows(c.textWidth())
	if len(rows) > c.maxHeight {
		return c.maxHeight
	}
	return len(rows)
}

func (c *Chatbox) textWidth() int {
	width := c.width - runewidth.StringWidth(prompt)
	if width < 1 {
		return 1
	}
	return width
}

// View renders the draft with the caret and selection highlighted.
func (c *Chatbox) View() string {
	if len(c.value) == 0 && c.placeholder != "" {
		return prompt + styles.CursorStyle.Render(" ") + styles.PlaceholderStyle.Render(c.placeholder)
	}

	rows, cursorRow := c.rows(c.textWidth())
	first := 0
	if len(rows) > c.maxHeight {
		first = cursorRow - c.maxHeight + 1
		if first < 0 {
			first = 0
		}
	}
	last := first + c.maxHeight
	if last > len(rows) {
		last = len(rows)
	}

	indent := strings.Repeat(" ", runewidth.StringWidth(prompt))
	lines := make([]string, 0, last-first)
	for i, row := range rows[first:last] {
		var sb strings.Builder
		if first+i == 0 {
			sb.WriteString(prompt)
		} else {
			sb.WriteString(indent)
		}
		for _, cl := range row {
			switch {
			case cl.cursor:
				sb.WriteString(styles.CursorStyle.Render(cl.text))
			case cl.selected:
				sb.WriteString(styles.SelectedStyle.Render(cl.text))
			default:
				sb.WriteString(cl.text)
			}
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}
