package testutils

import (
	tea "charm.land/bubbletea/v2"
)

// Test helpers for creating v2 KeyPressMsg values

// NewKeyPressMsg creates a KeyPressMsg from a key code (for special keys)
func NewKeyPressMsg(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: code})
}

// NewTextKeyPressMsg creates a KeyPressMsg for text input
func NewTextKeyPressMsg(text string) tea.KeyPressMsg {
	if len(text) == 0 {
		return tea.KeyPressMsg(tea.Key{})
	}
	r := []rune(text)[0]
	return tea.KeyPressMsg(tea.Key{
		Code: r,
		Text: text,
	})
}

// Common special keys using the new API
var (
	TestKeyUp        = NewKeyPressMsg(tea.KeyUp)
	TestKeyDown      = NewKeyPressMsg(tea.KeyDown)
	TestKeyLeft      = NewKeyPressMsg(tea.KeyLeft)
	TestKeyRight     = NewKeyPressMsg(tea.KeyRight)
	TestKeyEnter     = NewKeyPressMsg(tea.KeyEnter)
	TestKeyTab       = NewKeyPressMsg(tea.KeyTab)
	TestKeyEsc       = NewKeyPressMsg(tea.KeyEscape)
	TestKeyBackspace = NewKeyPressMsg(tea.KeyBackspace)
	TestKeySpace     = NewKeyPressMsg(tea.KeySpace)
	TestKeyHome      = NewKeyPressMsg(tea.KeyHome)
	TestKeyEnd       = NewKeyPressMsg(tea.KeyEnd)
	TestKeyPgUp      = NewKeyPressMsg(tea.KeyPgUp)
	TestKeyPgDown    = NewKeyPressMsg(tea.KeyPgDown)
	TestKeyDelete    = NewKeyPressMsg(tea.KeyDelete)
)

// Ctrl+X keys using modifier
func NewCtrlKeyPressMsg(char rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{
		Code: char,
		Mod:  tea.ModCtrl,
	})
}

// Common ctrl combinations
var (
	TestKeyCtrlB    = NewCtrlKeyPressMsg('b')
	TestKeyCtrlC    = NewCtrlKeyPressMsg('c')
	TestKeyCtrlI    = NewCtrlKeyPressMsg('i')
	TestKeyCtrlN    = NewCtrlKeyPressMsg('n')
	TestKeyCtrlP    = NewCtrlKeyPressMsg('p')
	TestKeyCtrlU    = NewCtrlKeyPressMsg('u')
	TestKeyCtrlW    = NewCtrlKeyPressMsg('w')
	TestKeyCtrlY    = NewCtrlKeyPressMsg('y')
	TestKeyCtrlTick = NewCtrlKeyPressMsg('`')
)

// NewShiftKeyPressMsg creates a shifted special key
func NewShiftKeyPressMsg(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{
		Code: code,
		Mod:  tea.ModShift,
	})
}

// Common shift combinations
var (
	TestKeyShiftLeft  = NewShiftKeyPressMsg(tea.KeyLeft)
	TestKeyShiftRight = NewShiftKeyPressMsg(tea.KeyRight)
	TestKeyShiftHome  = NewShiftKeyPressMsg(tea.KeyHome)
	TestKeyShiftEnd   = NewShiftKeyPressMsg(tea.KeyEnd)
	TestKeyShiftEnter = NewShiftKeyPressMsg(tea.KeyEnter)
)

// TypeText feeds text to update one rune at a time
func TypeText(update func(tea.Msg) tea.Cmd, text string) {
	for _, r := range text {
		update(NewTextKeyPressMsg(string(r)))
	}
}
