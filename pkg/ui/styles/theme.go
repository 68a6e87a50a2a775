// Package styles provides a centralized theme and style system for the pschat UI.
package styles

import (
	"charm.land/lipgloss/v2"
)

// Color palette - ANSI 256 colors used throughout the application
var (
	// Primary accent color (purple)
	ColorAccent = lipgloss.Color("141")

	// Text colors
	ColorText       = lipgloss.Color("252") // Primary text
	ColorTextMuted  = lipgloss.Color("245") // Secondary/muted text
	ColorTextBright = lipgloss.Color("15")  // Bright/highlighted text

	// Semantic colors
	ColorError   = lipgloss.Color("196") // Error messages
	ColorWarning = lipgloss.Color("214") // Warning/edit mode
	ColorSuccess = lipgloss.Color("42")  // Success messages

	// Code/markup colors
	ColorCode   = lipgloss.Color("213")
	ColorCodeBg = lipgloss.Color("235")

	// Border colors
	ColorBorder      = lipgloss.Color("141") // Default border (matches accent)
	ColorBorderMuted = lipgloss.Color("62")  // Muted border
)

// Panel/Box styles
var (
	// BoxStyle is the default rounded box for overlays and panels
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	// BoxStyleMuted frames panels that do not have focus
	BoxStyleMuted = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorderMuted).
			Padding(0, 1)
)

// Text styles
var (
	// TitleStyle for panel/section titles
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	// TextStyle for normal text
	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// TextMutedStyle for secondary/helper text
	TextMutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	// SelectedStyle for selected text in the chatbox
	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorTextBright).
			Background(ColorAccent)

	// CursorStyle for the chatbox caret
	CursorStyle = lipgloss.NewStyle().
			Reverse(true)

	// PlaceholderStyle for placeholder text
	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Italic(true)
)

// Chat log styles
var (
	// ChatNameStyle for the speaker of a chat line
	ChatNameStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	// ChatActionStyle for /me lines
	ChatActionStyle = lipgloss.NewStyle().
			Foreground(ColorCode).
			Italic(true)

	// ChatSystemStyle for joins, leaves and renames
	ChatSystemStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	// ErrorStyle for inline error lines
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	// WarningStyle for server warnings
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

// User list styles
var (
	// RankStyle for the rank symbol column
	RankStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	// StaffStyle for users with a rank symbol
	StaffStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// FooterStyle for footer/help text
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)
)

// Status bar styles
var (
	// StatusBarStyle is the default status bar style (purple theme)
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	// StatusBarStyleCyan is the cyan theme variant
	StatusBarStyleCyan = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#00B8D4")).
				Padding(0, 1).
				Bold(true)

	// StatusBarStyleDark is the dark theme variant
	StatusBarStyleDark = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#D0D0D0")).
				Background(lipgloss.Color("#3C3C3C")).
				Padding(0, 1)

	// OfflineStyle marks a room that is not connected
	OfflineStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)
)

// StatusBarTheme returns the status bar style for a theme name.
// Unknown names get the default purple style.
func StatusBarTheme(theme string) lipgloss.Style {
	switch theme {
	case "cyan":
		return StatusBarStyleCyan
	case "dark":
		return StatusBarStyleDark
	default:
		return StatusBarStyle
	}
}
