// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the Bubble Tea terminal interface.
//
// A root model renders whichever screen the flow state calls for: the
// login form, the registration form, the password reset form, or the chat
// screen. All store access goes through the flow controller; all reply
// resolution goes through the resolver.
package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatgate/internal/flow"
	"github.com/jeranaias/chatgate/internal/resolver"
	"github.com/jeranaias/chatgate/internal/ui/styles"
)

// App is the root model.
type App struct {
	ctrl  *flow.Controller
	theme *styles.Theme

	state  flow.State
	width  int
	height int

	login    loginModel
	register registerModel
	reset    resetModel
	chat     chatModel
}

// NewApp builds the root model and its screens.
func NewApp(ctrl *flow.Controller, res *resolver.Resolver) App {
	theme := styles.NewTheme()
	return App{
		ctrl:     ctrl,
		theme:    theme,
		state:    ctrl.State(),
		login:    newLoginModel(ctrl, theme),
		register: newRegisterModel(ctrl, theme),
		reset:    newResetModel(ctrl, theme),
		chat:     newChatModel(ctrl, res, theme),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model. It dispatches to the active screen and
// reconciles screen models when the flow state changes underneath them.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.chat.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch a.state {
	case flow.StateLoggedOut:
		a.login, cmd = a.login.update(msg)
	case flow.StateRegistering:
		a.register, cmd = a.register.update(msg)
	case flow.StateResettingPassword:
		a.reset, cmd = a.reset.update(msg)
	case flow.StateChatActive:
		a.chat, cmd = a.chat.update(msg)
	}

	if next := a.ctrl.State(); next != a.state {
		cmd = tea.Batch(cmd, a.enterState(next))
		a.state = next
	}
	return a, cmd
}

// enterState resets the screen being entered so stale input never leaks
// across transitions.
func (a *App) enterState(next flow.State) tea.Cmd {
	switch next {
	case flow.StateLoggedOut:
		a.login = newLoginModel(a.ctrl, a.theme)
		return textinput.Blink
	case flow.StateRegistering:
		a.register = newRegisterModel(a.ctrl, a.theme)
		return textinput.Blink
	case flow.StateResettingPassword:
		a.reset = newResetModel(a.ctrl, a.theme)
		return textinput.Blink
	case flow.StateChatActive:
		return a.chat.open(a.width, a.height)
	}
	return nil
}

// View implements tea.Model.
func (a App) View() string {
	switch a.state {
	case flow.StateRegistering:
		return a.register.view()
	case flow.StateResettingPassword:
		return a.reset.view()
	case flow.StateChatActive:
		return a.chat.view()
	default:
		return a.login.view()
	}
}
