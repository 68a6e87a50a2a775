// Package composer implements the message entry box: submit, history
// recall and inline markup toggles. It drives any text widget through the
// Textbox interface and holds no rendering code.
package composer

import "log/slog"

// Textbox is the editable field the composer works on.
type Textbox interface {
	Value() string
	SetValue(value string)
}

// Selectable is implemented by text fields that expose a selection range
// in rune offsets. Markup toggles need it.
type Selectable interface {
	Selection() (start, end int)
	SetSelection(start, end int)
}

// Composer binds a textbox to a history and a submit callback.
type Composer struct {
	box       Textbox
	history   *History
	onMessage func(line string)
}

// New creates a composer. A nil history gets the default limits.
func New(box Textbox, history *History, onMessage func(line string)) *Composer {
	if history == nil {
		history = NewHistory(DefaultHistoryLimit, DefaultHistoryTrim)
	}
	return &Composer{box: box, history: history, onMessage: onMessage}
}

// History returns the recall buffer.
func (c *Composer) History() *History {
	return c.history
}

// HandleKey runs the binding for key, in bubbletea key notation, and
// reports whether it was consumed.
func (c *Composer) HandleKey(key string) bool {
	switch key {
	case "enter":
		return c.Submit()
	case "ctrl+i", "alt+i":
		// Terminals without keyboard enhancements report ctrl+i as tab.
		return c.ToggleFormat('_')
	case "ctrl+b":
		return c.ToggleFormat('*')
	case "ctrl+`":
		return c.ToggleFormat('`')
	case "up":
		return c.HistoryUp()
	case "down":
		return c.HistoryDown()
	}
	return false
}

// Submit hands the current text to the callback, records it and clears
// the field. Empty lines are submitted too.
func (c *Composer) Submit() bool {
	line := c.box.Value()
	if c.onMessage != nil {
		c.onMessage(line)
	}
	c.history.Push(line)
	c.box.SetValue("")
	return true
}

// HistoryUp recalls the previous line.
func (c *Composer) HistoryUp() bool {
	value, ok := c.history.Up(c.box.Value())
	if ok {
		c.box.SetValue(value)
	}
	return ok
}

// HistoryDown recalls the next line.
func (c *Composer) HistoryDown() bool {
	value, ok := c.history.Down(c.box.Value())
	if ok {
		c.box.SetValue(value)
	}
	return ok
}

// ToggleFormat toggles an fc marker around the selection. Fields without
// selection support are left untouched.
func (c *Composer) ToggleFormat(fc rune) bool {
	sel, ok := c.box.(Selectable)
	if !ok {
		slog.Debug("composer_toggle_unsupported", "marker", string(fc))
		return false
	}
	start, end := sel.Selection()
	value, start, end := ToggleFormat(c.box.Value(), start, end, fc)
	c.box.SetValue(value)
	sel.SetSelection(start, end)
	return true
}
