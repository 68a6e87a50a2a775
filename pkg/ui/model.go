// Package ui is the terminal front end: a Bubble Tea program showing the
// focused room's log, its user list, the composer and a status bar.
package ui

import (
	"fmt"
	"log/slog"
	"os"

	"pschat/pkg/composer"
	"pschat/pkg/roster"
	"pschat/pkg/session"
	"pschat/pkg/ui/components/challenge"
	"pschat/pkg/ui/components/chatbox"
	"pschat/pkg/ui/components/statusbar"
	"pschat/pkg/ui/components/userlist"
	"pschat/pkg/ui/components/viewport"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// challengePromptHeight is the rendered height of the challenge form.
const challengePromptHeight = 5

const noRoomPlaceholder = "Type /join <room>"

// FrameMsg carries one raw server frame.
type FrameMsg struct {
	Data string
}

// DisconnectedMsg is sent once the frame source is exhausted.
type DisconnectedMsg struct {
	Err error
}

// FrameSource delivers server frames. The channel closes on disconnect and
// Err then reports why.
type FrameSource interface {
	Frames() <-chan string
	Err() error
}

// Options configure the model.
type Options struct {
	Source       FrameSource
	Theme        string
	HistoryLimit int
	HistoryTrim  int
	Ranks        roster.Ranker
}

type roomInput struct {
	box      *chatbox.Chatbox
	composer *composer.Composer
}

// Model represents the Bubble Tea application state
type Model struct {
	session *session.Session
	source  FrameSource
	keys    KeyMap
	layout  *LayoutManager
	ranks   roster.Ranker

	viewport  viewport.ChatViewport
	statusBar *statusbar.StatusBarView
	userList  *userlist.UserList
	challenge *challenge.Prompt

	inputs       map[string]*roomInput
	historyLimit int
	historyTrim  int

	viewRoom     string
	ready        bool
	disconnected bool
}

// NewModel creates the front end for sess.
func NewModel(sess *session.Session, opts Options) Model {
	statusBar := statusbar.NewStatusBarView()
	statusBar.SetTheme(opts.Theme)

	ranks := opts.Ranks
	if ranks == nil {
		ranks = roster.DefaultGroups()
	}

	m := Model{
		session:      sess,
		source:       opts.Source,
		keys:         DefaultKeyMap(),
		layout:       NewLayoutManager(),
		ranks:        ranks,
		viewport:     viewport.NewChatViewport(),
		statusBar:    statusBar,
		userList:     userlist.NewUserList(),
		challenge:    challenge.NewPrompt(),
		inputs:       make(map[string]*roomInput),
		historyLimit: opts.HistoryLimit,
		historyTrim:  opts.HistoryTrim,
	}
	m.sync()
	return m
}

// Init starts listening for server frames.
func (m Model) Init() tea.Cmd {
	return waitForFrame(m.source)
}

func waitForFrame(src FrameSource) tea.Cmd {
	if src == nil {
		return nil
	}
	frames := src.Frames()
	return func() tea.Msg {
		data, ok := <-frames
		if !ok {
			return DisconnectedMsg{Err: src.Err()}
		}
		return FrameMsg{Data: data}
	}
}

// Update handles incoming messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout.SetSize(msg.Width, msg.Height)
		m.ready = true
		m.resize()
		return m, nil

	case FrameMsg:
		m.session.ReceiveFrame(msg.Data)
		m.sync()
		return m, waitForFrame(m.source)

	case DisconnectedMsg:
		m.disconnected = true
		if msg.Err != nil {
			m.statusBar.SetMessage("disconnected: " + msg.Err.Error())
		} else {
			m.statusBar.SetMessage("disconnected")
		}
		slog.Warn("ui_disconnected", "error", msg.Err)
		return m, nil

	case challenge.SubmitMsg:
		if r, ok := m.session.Room(msg.RoomID); ok {
			if err := r.SubmitChallenge(msg.Format, ""); err != nil {
				m.statusBar.SetMessage("challenge failed: " + err.Error())
			}
		}
		m.sync()
		return m, nil

	case challenge.CancelMsg:
		if r, ok := m.session.Room(msg.RoomID); ok {
			r.CancelChallenge()
		}
		m.sync()
		return m, nil

	case tea.PasteMsg:
		if m.challenge.IsVisible() {
			return m, m.challenge.Update(msg)
		}
		m.input().box.Update(msg)
		m.resize()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches[tea.KeyPressMsg](msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.challenge.IsVisible() {
		if cmd := m.challenge.Update(msg); cmd != nil {
			return m.Update(cmd())
		}
		return m, nil
	}

	switch {
	case key.Matches[tea.KeyPressMsg](msg, m.keys.NextRoom):
		m.session.FocusNext(1)
		m.sync()
		return m, nil
	case key.Matches[tea.KeyPressMsg](msg, m.keys.PrevRoom):
		m.session.FocusNext(-1)
		m.sync()
		return m, nil
	case key.Matches[tea.KeyPressMsg](msg, m.keys.LeaveRoom):
		if id := m.session.FocusedID(); id != "" {
			m.session.Leave(id)
			m.sync()
		}
		return m, nil
	case key.Matches[tea.KeyPressMsg](msg, m.keys.PageUp):
		m.viewport.PageUp()
		return m, nil
	case key.Matches[tea.KeyPressMsg](msg, m.keys.PageDown):
		m.viewport.PageDown()
		return m, nil
	case key.Matches[tea.KeyPressMsg](msg, m.keys.CopyLast):
		return m, m.copyLastLine()
	case key.Matches[tea.KeyPressMsg](msg, m.keys.ToggleUsers):
		m.userList.Toggle()
		m.resize()
		return m, nil
	}

	in := m.input()
	m.statusBar.SetMessage("")
	if in.composer.HandleKey(msg.String()) {
		m.sync()
		return m, nil
	}
	in.box.Update(msg)
	m.resize()
	return m, nil
}

// input returns the composer state of the focused room, creating it on
// first use. With no room open it is a room-less input that only
// accepts local commands.
func (m *Model) input() *roomInput {
	id := m.session.FocusedID()
	if in, ok := m.inputs[id]; ok {
		return in
	}

	box := chatbox.New()
	sess := m.session
	status := m.statusBar
	in := &roomInput{
		box: box,
		composer: composer.New(box, composer.NewHistory(m.historyLimit, m.historyTrim), func(line string) {
			if err := sess.Send(line); err != nil {
				status.SetMessage("send failed: " + err.Error())
			}
		}),
	}
	m.inputs[id] = in
	return in
}

func (m *Model) copyLastLine() tea.Cmd {
	log, ok := m.session.Log(m.session.FocusedID())
	if !ok {
		return nil
	}
	text, ok := log.LastText()
	if !ok {
		return nil
	}
	m.statusBar.SetMessage("copied last line")
	return func() tea.Msg {
		_, _ = fmt.Fprint(os.Stdout, osc52.New(text))
		return nil
	}
}

// sync pulls room state into the components after anything that may have
// changed it.
func (m *Model) sync() {
	open := map[string]bool{"": true}
	ids := m.session.RoomIDs()
	for _, id := range ids {
		open[id] = true
	}
	for id := range m.inputs {
		if !open[id] {
			delete(m.inputs, id)
		}
	}

	id := m.session.FocusedID()
	if id != m.viewRoom {
		if log, ok := m.session.Log(id); ok {
			m.viewport.SetSource(log)
		} else {
			m.viewport.SetSource(nil)
		}
		m.viewRoom = id
	} else {
		m.viewport.Sync()
	}

	m.statusBar.SetName(m.session.User().Name())
	r := m.session.Focused()
	if r == nil {
		m.statusBar.SetRoom("", false)
		m.statusBar.SetPosition(0, 0)
		m.userList.SetRoster(nil, m.ranks)
		m.challenge.Hide()
		m.input().box.SetPlaceholder(noRoomPlaceholder)
		m.resize()
		return
	}

	index := 0
	for i, rid := range ids {
		if rid == id {
			index = i
		}
	}
	m.statusBar.SetRoom(r.Title(), r.Connected())
	m.statusBar.SetPosition(index, len(ids))
	m.userList.SetRoster(r.Users(), m.ranks)

	if r.Challenging() {
		m.challenge.Show(id, r.PMTarget())
	} else {
		m.challenge.Hide()
	}
	m.input().box.SetPlaceholder("Message " + r.Title())
	m.resize()
}

func (m *Model) resize() {
	width, _ := m.layout.GetDimensions()

	inputHeight := 0
	if m.challenge.IsVisible() {
		m.challenge.SetSize(width, challengePromptHeight)
		inputHeight = challengePromptHeight
	} else {
		in := m.input()
		in.box.SetWidth(width)
		inputHeight = in.box.Height()
	}

	sideWidth := 0
	if m.userList.IsVisible() {
		sideWidth = m.layout.SidePanelWidth(userlist.DefaultWidth)
	}
	bodyHeight := m.layout.BodyHeight(inputHeight)

	m.viewport.SetSize(m.layout.LogWidth(sideWidth), bodyHeight)
	m.userList.SetSize(sideWidth, bodyHeight)
	m.statusBar.SetWidth(width)
}

// View renders the UI
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	if !m.ready {
		return "Connecting..."
	}

	side := ""
	if m.userList.IsVisible() && m.layout.SidePanelWidth(userlist.DefaultWidth) > 0 {
		side = m.userList.View()
	}

	input := ""
	if m.challenge.IsVisible() {
		input = m.challenge.View()
	} else if in, ok := m.inputs[m.session.FocusedID()]; ok {
		input = in.box.View()
	}

	return m.layout.RenderLayout(m.viewport.View(), side, input, m.statusBar.Render())
}

// Disconnected reports whether the frame source has closed.
func (m Model) Disconnected() bool {
	return m.disconnected
}
