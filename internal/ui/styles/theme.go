// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components for the application. It detects the
// terminal's color capability at construction.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile

	// Containers
	App   lipgloss.Style
	Panel lipgloss.Style

	// Header
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style

	// Forms
	FormLabel   lipgloss.Style
	FormFocused lipgloss.Style
	FormBlurred lipgloss.Style
	FormHint    lipgloss.Style
	FormError   lipgloss.Style
	FormOK      lipgloss.Style

	// Chat transcript
	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style

	// Status line
	StatusBar    lipgloss.Style
	ThinkingText lipgloss.Style
	Spinner      lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
}

// NewTheme creates a theme with all styles configured.
func NewTheme() *Theme {
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle()
	t.Panel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 2)

	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 2)
	t.HeaderTitle = lipgloss.NewStyle().Bold(true).Foreground(Cyan)

	t.FormLabel = lipgloss.NewStyle().Foreground(TextPrimary)
	t.FormFocused = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.FormBlurred = lipgloss.NewStyle().Foreground(TextMuted)
	t.FormHint = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)
	t.FormError = lipgloss.NewStyle().Foreground(Rose).Bold(true)
	t.FormOK = lipgloss.NewStyle().Foreground(Emerald)

	t.UserBubble = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.AssistantBubble = lipgloss.NewStyle().Foreground(TextPrimary)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(SurfaceDim).
		Padding(0, 1)
	t.ThinkingText = lipgloss.NewStyle().Foreground(Amber).Italic(true)
	t.Spinner = lipgloss.NewStyle().Foreground(Purple)
	t.ShortcutKey = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().Foreground(TextMuted)
}
