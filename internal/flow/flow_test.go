// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chatgate/internal/store"
)

func newController(t *testing.T) *Controller {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "flow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.InitSchema(context.Background()))
	return NewController(st)
}

func validForm() RegisterForm {
	return RegisterForm{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "a@b.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Question:        "Your Pet Name",
		Answer:          "Byron",
	}
}

func TestRegisterThenLogin(t *testing.T) {
	c := newController(t)
	ctx := context.Background()

	c.StartRegistration()
	require.Equal(t, StateRegistering, c.State())

	require.NoError(t, c.Register(ctx, validForm()))
	require.Equal(t, StateLoggedOut, c.State())

	require.NoError(t, c.Login(ctx, "a@b.com", "secret1"))
	require.Equal(t, StateChatActive, c.State())
	require.NotNil(t, c.Session())
	require.Equal(t, "a@b.com", c.Session().Account().Email)
}

func TestLoginWrongPassword(t *testing.T) {
	c := newController(t)
	ctx := context.Background()
	require.NoError(t, c.Register(ctx, validForm()))

	err := c.Login(ctx, "a@b.com", "wrong")
	require.ErrorIs(t, err, store.ErrAccountNotFound)
	require.Equal(t, StateLoggedOut, c.State())
	require.Nil(t, c.Session())
}

func TestLoginUnknownEmail(t *testing.T) {
	c := newController(t)
	err := c.Login(context.Background(), "nobody@b.com", "secret1")
	require.ErrorIs(t, err, store.ErrAccountNotFound)
	require.Equal(t, StateLoggedOut, c.State())
}

func TestLoginEmptyFields(t *testing.T) {
	c := newController(t)
	ctx := context.Background()

	var verr *ValidationError
	require.True(t, errors.As(c.Login(ctx, "", "pw"), &verr))
	require.True(t, errors.As(c.Login(ctx, "a@b.com", ""), &verr))
}

func TestRegisterValidation(t *testing.T) {
	c := newController(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*RegisterForm)
	}{
		{"empty first name", func(f *RegisterForm) { f.FirstName = " " }},
		{"empty last name", func(f *RegisterForm) { f.LastName = "" }},
		{"empty email", func(f *RegisterForm) { f.Email = "" }},
		{"empty password", func(f *RegisterForm) { f.Password = ""; f.ConfirmPassword = "" }},
		{"mismatched confirm", func(f *RegisterForm) { f.ConfirmPassword = "other" }},
		{"placeholder question", func(f *RegisterForm) { f.Question = QuestionPlaceholder }},
		{"unknown question", func(f *RegisterForm) { f.Question = "Favorite Color" }},
		{"empty answer", func(f *RegisterForm) { f.Answer = "  " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			err := c.Register(ctx, form)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "want ValidationError, got %v", err)
		})
	}

	// No account was ever created by the rejected forms.
	err := c.Login(ctx, "a@b.com", "secret1")
	require.ErrorIs(t, err, store.ErrAccountNotFound)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	c := newController(t)
	ctx := context.Background()

	require.NoError(t, c.Register(ctx, validForm()))

	form := validForm()
	form.FirstName = "Other"
	err := c.Register(ctx, form)
	require.ErrorIs(t, err, store.ErrDuplicateEmail)
}

func TestResetPassword(t *testing.T) {
	c := newController(t)
	ctx := context.Background()
	require.NoError(t, c.Register(ctx, validForm()))

	c.StartReset()
	require.Equal(t, StateResettingPassword, c.State())

	require.NoError(t, c.ResetPassword(ctx, ResetForm{
		Email:       "a@b.com",
		Question:    "Your Pet Name",
		Answer:      "Byron",
		NewPassword: "newsecret",
	}))
	require.Equal(t, StateLoggedOut, c.State())

	// Old password no longer works; new one does.
	require.Error(t, c.Login(ctx, "a@b.com", "secret1"))
	require.NoError(t, c.Login(ctx, "a@b.com", "newsecret"))
}

func TestResetPasswordWrongAnswer(t *testing.T) {
	c := newController(t)
	ctx := context.Background()
	require.NoError(t, c.Register(ctx, validForm()))

	err := c.ResetPassword(ctx, ResetForm{
		Email:       "a@b.com",
		Question:    "Your Pet Name",
		Answer:      "wrong",
		NewPassword: "newsecret",
	})
	require.ErrorIs(t, err, store.ErrAccountNotFound)

	// Password column unchanged.
	require.NoError(t, c.Login(ctx, "a@b.com", "secret1"))
}

func TestResetPasswordValidation(t *testing.T) {
	c := newController(t)
	ctx := context.Background()

	var verr *ValidationError
	require.True(t, errors.As(c.ResetPassword(ctx, ResetForm{
		Email: "", Question: "Your Pet Name", Answer: "x", NewPassword: "y",
	}), &verr))
	require.True(t, errors.As(c.ResetPassword(ctx, ResetForm{
		Email: "a@b.com", Question: QuestionPlaceholder, Answer: "x", NewPassword: "y",
	}), &verr))
	require.True(t, errors.As(c.ResetPassword(ctx, ResetForm{
		Email: "a@b.com", Question: "Your Pet Name", Answer: "", NewPassword: "y",
	}), &verr))
	require.True(t, errors.As(c.ResetPassword(ctx, ResetForm{
		Email: "a@b.com", Question: "Your Pet Name", Answer: "x", NewPassword: "",
	}), &verr))
}

func TestLogoutClearsSession(t *testing.T) {
	c := newController(t)
	ctx := context.Background()
	require.NoError(t, c.Register(ctx, validForm()))
	require.NoError(t, c.Login(ctx, "a@b.com", "secret1"))

	c.Logout()
	require.Equal(t, StateLoggedOut, c.State())
	require.Nil(t, c.Session())
}

func TestCancelReturnsToLoggedOut(t *testing.T) {
	c := newController(t)

	c.StartRegistration()
	c.Cancel()
	require.Equal(t, StateLoggedOut, c.State())

	c.StartReset()
	c.Cancel()
	require.Equal(t, StateLoggedOut, c.State())
}

func TestStateString(t *testing.T) {
	require.Equal(t, "logged_out", StateLoggedOut.String())
	require.Equal(t, "chat_active", StateChatActive.String())
}
