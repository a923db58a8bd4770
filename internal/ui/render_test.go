// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"errors"
	"testing"

	"github.com/jeranaias/chatgate/internal/flow"
	"github.com/jeranaias/chatgate/internal/store"
)

func TestLoginErrorText(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", &flow.ValidationError{Field: "email", Reason: "cannot be empty"}, "email: cannot be empty"},
		{"not found", store.ErrAccountNotFound, "Invalid email or password"},
		{"storage", errors.New("disk on fire"), "Could not reach the account store — try again"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := loginErrorText(tt.err); got != tt.want {
				t.Errorf("loginErrorText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormErrorText(t *testing.T) {
	if got := formErrorText(store.ErrDuplicateEmail); got != "An account with that email already exists" {
		t.Errorf("duplicate email text = %q", got)
	}
	if got := formErrorText(store.ErrAccountNotFound); got != "No account matches that question and answer" {
		t.Errorf("not found text = %q", got)
	}
	verr := &flow.ValidationError{Field: "password", Reason: "cannot be empty"}
	if got := formErrorText(verr); got != "password: cannot be empty" {
		t.Errorf("validation text = %q", got)
	}
}
