// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/chatgate/internal/flow"
	"github.com/jeranaias/chatgate/internal/resolver"
	"github.com/jeranaias/chatgate/internal/session"
	"github.com/jeranaias/chatgate/internal/ui/styles"
	"github.com/jeranaias/chatgate/internal/util"
)

const defaultWrapWidth = 80

// replyMsg carries a resolved reply back into the program loop.
type replyMsg struct {
	user  string
	reply string
}

// exportedMsg reports the outcome of a transcript export.
type exportedMsg struct {
	path string
	err  error
}

// chatModel is the chat screen: a transcript viewport over an input line.
// While a reply is in flight the input is blurred and the status line
// shows the thinking indicator; that is the only backpressure.
type chatModel struct {
	ctrl  *flow.Controller
	res   *resolver.Resolver
	theme *styles.Theme

	vp       viewport.Model
	input    textinput.Model
	spin     spinner.Model
	renderer *glamour.TermRenderer

	lines    []string
	thinking bool
	status   string
	width    int
	height   int
	ready    bool
}

func newChatModel(ctrl *flow.Controller, res *resolver.Resolver, theme *styles.Theme) chatModel {
	in := textinput.New()
	in.Placeholder = "Type a message…"
	in.CharLimit = 2000
	in.Width = defaultWrapWidth - 4

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	return chatModel{
		ctrl:  ctrl,
		res:   res,
		theme: theme,
		vp:    viewport.New(defaultWrapWidth, 20),
		input: in,
		spin:  sp,
	}
}

// open prepares the screen for a fresh session: clears the transcript,
// shows the welcome line, and focuses the input.
func (m *chatModel) open(width, height int) tea.Cmd {
	m.lines = nil
	m.thinking = false
	m.status = ""
	m.input.SetValue("")
	m.input.Focus()
	if width > 0 {
		m.resize(width, height)
	}
	m.rebuildRenderer()
	m.appendAssistant(session.Welcome)
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

func (m *chatModel) resize(width, height int) {
	m.width = width
	m.height = height
	vpHeight := height - 4 // header, input, status
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.vp.Width = width
	m.vp.Height = vpHeight
	m.input.Width = width - 4
	m.ready = true
	m.rebuildRenderer()
}

// rebuildRenderer recreates the markdown renderer at the current width.
// A nil renderer means replies render as plain text.
func (m *chatModel) rebuildRenderer() {
	wrap := m.width
	if wrap <= 0 || wrap > defaultWrapWidth {
		wrap = defaultWrapWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		m.renderer = nil
		return
	}
	m.renderer = r
}

func (m chatModel) update(msg tea.Msg) (chatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.ctrl.Logout()
			return m, nil
		case "ctrl+s":
			if sess := m.ctrl.Session(); sess != nil {
				return m, exportCmd(sess)
			}
			return m, nil
		case "enter":
			if m.thinking {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.appendUser(text)
			m.input.SetValue("")
			m.input.Blur()
			m.thinking = true
			m.status = ""
			return m, tea.Batch(resolveCmd(m.res, text), m.spin.Tick)
		}

	case replyMsg:
		if sess := m.ctrl.Session(); sess != nil {
			sess.Append(msg.user, msg.reply)
		}
		m.appendAssistant(msg.reply)
		m.thinking = false
		m.input.Focus()
		return m, textinput.Blink

	case exportedMsg:
		if msg.err != nil {
			m.status = "Export failed: " + msg.err.Error()
		} else {
			m.status = "Transcript saved to " + msg.path
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.thinking {
			return m, cmd
		}
		return m, nil
	}

	var cmds [2]tea.Cmd
	m.input, cmds[0] = m.input.Update(msg)
	m.vp, cmds[1] = m.vp.Update(msg)
	return m, tea.Batch(cmds[0], cmds[1])
}

// resolveCmd resolves one message off the UI goroutine. Resolution is
// total, so the command always produces a reply.
func resolveCmd(res *resolver.Resolver, text string) tea.Cmd {
	return func() tea.Msg {
		return replyMsg{user: text, reply: res.Resolve(context.Background(), text)}
	}
}

// exportCmd writes the transcript next to the working directory.
func exportCmd(sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		path := fmt.Sprintf("chat-%s.md", util.TruncateRunes(sess.ID(), 8))
		if err := util.AtomicWriteFile(path, sess.ExportMarkdown(), 0o600, 0o755); err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{path: path}
	}
}

func (m *chatModel) appendUser(text string) {
	m.lines = append(m.lines, m.theme.UserBubble.Render("You: ")+text)
	m.refreshViewport()
}

func (m *chatModel) appendAssistant(text string) {
	rendered := text
	if m.renderer != nil {
		if out, err := m.renderer.Render(text); err == nil {
			rendered = strings.TrimRight(out, "\n")
		}
	}
	m.lines = append(m.lines, m.theme.AssistantBubble.Render("Assistant:")+"\n"+rendered)
	m.refreshViewport()
}

func (m *chatModel) refreshViewport() {
	m.vp.SetContent(strings.Join(m.lines, "\n\n"))
	m.vp.GotoBottom()
}

func (m chatModel) view() string {
	var sb strings.Builder

	title := "chatgate"
	if sess := m.ctrl.Session(); sess != nil {
		acct := sess.Account()
		title = fmt.Sprintf("chatgate — %s %s", acct.FirstName, acct.LastName)
	}
	sb.WriteString(m.theme.Header.Render(util.TruncateWidth(title, max(m.width, 20))))
	sb.WriteString("\n")
	sb.WriteString(m.vp.View())
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(m.statusLine())

	return sb.String()
}

func (m chatModel) statusLine() string {
	if m.thinking {
		return m.theme.StatusBar.Render(m.spin.View() + m.theme.ThinkingText.Render("Thinking…"))
	}
	if m.status != "" {
		return m.theme.StatusBar.Render(m.status)
	}
	return m.theme.StatusBar.Render(shortcutLine(m.theme, [][2]string{
		{"enter", "send"},
		{"ctrl+s", "export transcript"},
		{"esc", "log out"},
		{"ctrl+c", "quit"},
	}))
}
