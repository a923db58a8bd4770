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

// Focus positions in the reset form.
const (
	resetEmail = iota
	resetQuestion
	resetAnswer
	resetNewPassword
	resetFieldCount
)

// resetModel is the password recovery form: the account email plus the
// security question and answer authorize the change.
type resetModel struct {
	ctrl  *flow.Controller
	theme *styles.Theme

	email    textinput.Model
	answer   textinput.Model
	password textinput.Model
	focus    int
	question int
	errMsg   string
}

func newResetModel(ctrl *flow.Controller, theme *styles.Theme) resetModel {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 128
	email.Width = 40
	email.Focus()

	answer := textinput.New()
	answer.Placeholder = "answer"
	answer.CharLimit = 128
	answer.Width = 40

	password := textinput.New()
	password.Placeholder = "new password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128
	password.Width = 40

	return resetModel{ctrl: ctrl, theme: theme, email: email, answer: answer, password: password}
}

func (m resetModel) update(msg tea.Msg) (resetModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.ctrl.Cancel()
			return m, nil
		case "tab", "down":
			return m.setFocus(m.focus + 1), nil
		case "shift+tab", "up":
			return m.setFocus(m.focus - 1), nil
		case "left":
			if m.focus == resetQuestion {
				m.question = (m.question + len(flow.SecurityQuestions) - 1) % len(flow.SecurityQuestions)
				return m, nil
			}
		case "right":
			if m.focus == resetQuestion {
				m.question = (m.question + 1) % len(flow.SecurityQuestions)
				return m, nil
			}
		case "enter":
			if m.focus < resetNewPassword {
				return m.setFocus(m.focus + 1), nil
			}
			return m.submit(), nil
		}
	}

	var cmds [3]tea.Cmd
	m.email, cmds[0] = m.email.Update(msg)
	m.answer, cmds[1] = m.answer.Update(msg)
	m.password, cmds[2] = m.password.Update(msg)
	return m, tea.Batch(cmds[0], cmds[1], cmds[2])
}

func (m resetModel) submit() resetModel {
	err := m.ctrl.ResetPassword(context.Background(), flow.ResetForm{
		Email:       m.email.Value(),
		Question:    flow.SecurityQuestions[m.question],
		Answer:      m.answer.Value(),
		NewPassword: m.password.Value(),
	})
	if err != nil {
		m.errMsg = formErrorText(err)
		m.password.SetValue("")
		return m
	}
	m.errMsg = ""
	return m
}

func (m resetModel) setFocus(focus int) resetModel {
	if focus < 0 {
		focus = resetFieldCount - 1
	}
	if focus >= resetFieldCount {
		focus = 0
	}
	m.focus = focus

	m.email.Blur()
	m.answer.Blur()
	m.password.Blur()
	switch focus {
	case resetEmail:
		m.email.Focus()
	case resetAnswer:
		m.answer.Focus()
	case resetNewPassword:
		m.password.Focus()
	}
	return m
}

func (m resetModel) view() string {
	var sb strings.Builder

	sb.WriteString(m.theme.HeaderTitle.Render("chatgate — Reset Password"))
	sb.WriteString("\n\n")
	sb.WriteString(renderField(m.theme, "Email", m.email, m.focus == resetEmail))
	sb.WriteString(renderQuestion(m.theme, m.question, m.focus == resetQuestion))
	sb.WriteString(renderField(m.theme, "Security answer", m.answer, m.focus == resetAnswer))
	sb.WriteString(renderField(m.theme, "New password", m.password, m.focus == resetNewPassword))

	if m.errMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(m.theme.FormError.Render(m.errMsg))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(shortcutLine(m.theme, [][2]string{
		{"enter", "reset password"},
		{"←/→", "pick question"},
		{"esc", "back to sign in"},
	}))

	return m.theme.Panel.Render(sb.String())
}
