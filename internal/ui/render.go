// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/jeranaias/chatgate/internal/flow"
	"github.com/jeranaias/chatgate/internal/store"
	"github.com/jeranaias/chatgate/internal/ui/styles"
)

// renderField renders a labeled input with focus styling.
func renderField(theme *styles.Theme, label string, in textinput.Model, focused bool) string {
	style := theme.FormBlurred
	if focused {
		style = theme.FormFocused
	}
	return style.Render(label) + "\n" + in.View() + "\n"
}

// shortcutLine renders a key/description hint row.
func shortcutLine(theme *styles.Theme, pairs [][2]string) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, theme.ShortcutKey.Render(p[0])+" "+theme.ShortcutDesc.Render(p[1]))
	}
	return strings.Join(parts, theme.ShortcutDesc.Render("  ·  "))
}

// loginErrorText maps a login failure to a user-facing line. Unknown email
// and wrong password read identically on purpose.
func loginErrorText(err error) string {
	var verr *flow.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	if errors.Is(err, store.ErrAccountNotFound) {
		return "Invalid email or password"
	}
	return "Could not reach the account store — try again"
}

// formErrorText maps registration/reset failures to a user-facing line.
func formErrorText(err error) string {
	var verr *flow.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	switch {
	case errors.Is(err, store.ErrDuplicateEmail):
		return "An account with that email already exists"
	case errors.Is(err, store.ErrAccountNotFound):
		return "No account matches that question and answer"
	}
	return "Could not reach the account store — try again"
}
