// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatgate/internal/flow"
	"github.com/jeranaias/chatgate/internal/ui/styles"
)

// loginModel is the email/password form shown while logged out.
type loginModel struct {
	ctrl  *flow.Controller
	theme *styles.Theme

	inputs []textinput.Model
	focus  int
	errMsg string
}

func newLoginModel(ctrl *flow.Controller, theme *styles.Theme) loginModel {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 128
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128
	password.Width = 40

	return loginModel{
		ctrl:   ctrl,
		theme:  theme,
		inputs: []textinput.Model{email, password},
	}
}

func (m loginModel) update(msg tea.Msg) (loginModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+r":
			m.ctrl.StartRegistration()
			return m, nil
		case "ctrl+f":
			m.ctrl.StartReset()
			return m, nil
		case "tab", "down":
			return m.setFocus(m.focus + 1), nil
		case "shift+tab", "up":
			return m.setFocus(m.focus - 1), nil
		case "enter":
			if m.focus < len(m.inputs)-1 {
				return m.setFocus(m.focus + 1), nil
			}
			return m.submit(), nil
		}
	}
	return m.updateInputs(msg)
}

func (m loginModel) submit() loginModel {
	err := m.ctrl.Login(context.Background(), m.inputs[0].Value(), m.inputs[1].Value())
	if err != nil {
		m.errMsg = loginErrorText(err)
		m.inputs[1].SetValue("")
		return m
	}
	m.errMsg = ""
	return m
}

func (m loginModel) setFocus(focus int) loginModel {
	if focus < 0 {
		focus = len(m.inputs) - 1
	}
	if focus >= len(m.inputs) {
		focus = 0
	}
	m.focus = focus
	for i := range m.inputs {
		if i == focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

func (m loginModel) updateInputs(msg tea.Msg) (loginModel, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m loginModel) view() string {
	var sb strings.Builder

	sb.WriteString(m.theme.HeaderTitle.Render("chatgate — Sign In"))
	sb.WriteString("\n\n")
	sb.WriteString(renderField(m.theme, "Email", m.inputs[0], m.focus == 0))
	sb.WriteString(renderField(m.theme, "Password", m.inputs[1], m.focus == 1))

	if m.errMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(m.theme.FormError.Render(m.errMsg))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(shortcutLine(m.theme, [][2]string{
		{"enter", "sign in"},
		{"ctrl+r", "register"},
		{"ctrl+f", "forgot password"},
		{"ctrl+c", "quit"},
	}))

	return m.theme.Panel.Render(sb.String())
}
