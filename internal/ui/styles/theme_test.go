// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}

	// Styles must render without panicking regardless of terminal profile.
	for name, render := range map[string]func() string{
		"header":   func() string { return theme.Header.Render("chatgate") },
		"error":    func() string { return theme.FormError.Render("bad input") },
		"user":     func() string { return theme.UserBubble.Render("You:") },
		"thinking": func() string { return theme.ThinkingText.Render("Thinking…") },
	} {
		if render() == "" {
			t.Errorf("%s style rendered empty output", name)
		}
	}
}
