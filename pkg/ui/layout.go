package ui

import (
	"charm.land/lipgloss/v2"
)

// minLogWidth keeps the chat log usable when the user list is open.
const minLogWidth = 20

// LayoutManager handles the overall UI layout
type LayoutManager struct {
	width  int
	height int
}

// NewLayoutManager creates a new layout manager
func NewLayoutManager() *LayoutManager {
	return &LayoutManager{
		width:  80,
		height: 24,
	}
}

// SetSize updates the layout dimensions
func (lm *LayoutManager) SetSize(width, height int) {
	lm.width = width
	lm.height = height
}

// GetDimensions returns current width and height
func (lm *LayoutManager) GetDimensions() (width, height int) {
	return lm.width, lm.height
}

// StatusBarHeight returns the height for status bar
func (lm *LayoutManager) StatusBarHeight() int {
	return 1
}

// SidePanelWidth returns the width left for a side panel that asks for
// want columns. The panel collapses when the log would get too narrow.
func (lm *LayoutManager) SidePanelWidth(want int) int {
	if want <= 0 || lm.width-want < minLogWidth {
		return 0
	}
	return want
}

// LogWidth returns the chat log width beside a side panel.
func (lm *LayoutManager) LogWidth(panelWidth int) int {
	w := lm.width - panelWidth
	if w < 1 {
		return 1
	}
	return w
}

// BodyHeight returns the rows left for the log and user list once the
// status bar and the input area are placed.
func (lm *LayoutManager) BodyHeight(inputHeight int) int {
	h := lm.height - lm.StatusBarHeight() - inputHeight
	if h < 1 {
		return 1
	}
	return h
}

// RenderLayout stacks the body, the input area and the status bar.
func (lm *LayoutManager) RenderLayout(logContent, sideContent, inputContent, statusBarContent string) string {
	body := logContent
	if sideContent != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, logContent, sideContent)
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		body,
		inputContent,
		statusBarContent,
	)
}
