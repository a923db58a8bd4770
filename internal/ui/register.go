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

// Focus positions in the registration form. The security question is a
// selector, not a text input, so it gets its own slot.
const (
	regFirstName = iota
	regLastName
	regEmail
	regPassword
	regConfirm
	regQuestion
	regAnswer
	regFieldCount
)

// registerModel is the account creation form.
type registerModel struct {
	ctrl  *flow.Controller
	theme *styles.Theme

	inputs   []textinput.Model // indexed by focus position; regQuestion is a zero placeholder
	focus    int
	question int // index into flow.SecurityQuestions
	errMsg   string
}

func newRegisterModel(ctrl *flow.Controller, theme *styles.Theme) registerModel {
	mk := func(placeholder string, echo textinput.EchoMode) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.EchoMode = echo
		in.CharLimit = 128
		in.Width = 40
		return in
	}

	inputs := make([]textinput.Model, regFieldCount)
	inputs[regFirstName] = mk("First name", textinput.EchoNormal)
	inputs[regLastName] = mk("Last name", textinput.EchoNormal)
	inputs[regEmail] = mk("you@example.com", textinput.EchoNormal)
	inputs[regPassword] = mk("password", textinput.EchoPassword)
	inputs[regConfirm] = mk("confirm password", textinput.EchoPassword)
	inputs[regAnswer] = mk("answer", textinput.EchoNormal)
	inputs[regFirstName].Focus()

	return registerModel{ctrl: ctrl, theme: theme, inputs: inputs}
}

func (m registerModel) update(msg tea.Msg) (registerModel, tea.Cmd) {
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
			if m.focus == regQuestion {
				m.question = (m.question + len(flow.SecurityQuestions) - 1) % len(flow.SecurityQuestions)
				return m, nil
			}
		case "right":
			if m.focus == regQuestion {
				m.question = (m.question + 1) % len(flow.SecurityQuestions)
				return m, nil
			}
		case "enter":
			if m.focus < regAnswer {
				return m.setFocus(m.focus + 1), nil
			}
			return m.submit(), nil
		}
	}
	return m.updateInputs(msg)
}

func (m registerModel) submit() registerModel {
	err := m.ctrl.Register(context.Background(), flow.RegisterForm{
		FirstName:       m.inputs[regFirstName].Value(),
		LastName:        m.inputs[regLastName].Value(),
		Email:           m.inputs[regEmail].Value(),
		Password:        m.inputs[regPassword].Value(),
		ConfirmPassword: m.inputs[regConfirm].Value(),
		Question:        flow.SecurityQuestions[m.question],
		Answer:          m.inputs[regAnswer].Value(),
	})
	if err != nil {
		m.errMsg = formErrorText(err)
		return m
	}
	m.errMsg = ""
	return m
}

func (m registerModel) setFocus(focus int) registerModel {
	if focus < 0 {
		focus = regFieldCount - 1
	}
	if focus >= regFieldCount {
		focus = 0
	}
	m.focus = focus
	for i := range m.inputs {
		if i == focus && i != regQuestion {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

func (m registerModel) updateInputs(msg tea.Msg) (registerModel, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, len(m.inputs))
	for i := range m.inputs {
		if i == regQuestion {
			continue
		}
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m registerModel) view() string {
	var sb strings.Builder

	sb.WriteString(m.theme.HeaderTitle.Render("chatgate — Create Account"))
	sb.WriteString("\n\n")
	sb.WriteString(renderField(m.theme, "First name", m.inputs[regFirstName], m.focus == regFirstName))
	sb.WriteString(renderField(m.theme, "Last name", m.inputs[regLastName], m.focus == regLastName))
	sb.WriteString(renderField(m.theme, "Email", m.inputs[regEmail], m.focus == regEmail))
	sb.WriteString(renderField(m.theme, "Password", m.inputs[regPassword], m.focus == regPassword))
	sb.WriteString(renderField(m.theme, "Confirm password", m.inputs[regConfirm], m.focus == regConfirm))
	sb.WriteString(renderQuestion(m.theme, m.question, m.focus == regQuestion))
	sb.WriteString(renderField(m.theme, "Security answer", m.inputs[regAnswer], m.focus == regAnswer))

	if m.errMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(m.theme.FormError.Render(m.errMsg))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(shortcutLine(m.theme, [][2]string{
		{"enter", "create account"},
		{"←/→", "pick question"},
		{"esc", "back to sign in"},
	}))

	return m.theme.Panel.Render(sb.String())
}

// renderQuestion renders the security question selector.
func renderQuestion(theme *styles.Theme, idx int, focused bool) string {
	style := theme.FormBlurred
	if focused {
		style = theme.FormFocused
	}
	q := flow.SecurityQuestions[idx]
	display := theme.FormLabel.Render("‹ " + q + " ›")
	if q == flow.QuestionPlaceholder {
		display = theme.FormHint.Render("‹ " + q + " ›")
	}
	return style.Render("Security question") + "\n" + display + "\n"
}
