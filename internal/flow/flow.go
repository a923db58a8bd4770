// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package flow drives the authentication state machine.
//
// The application is always in exactly one state: logged out, registering,
// resetting a password, or chatting. The controller owns the transitions
// and is the only code path that talks to the credential store on behalf
// of the UI.
package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeranaias/chatgate/internal/auth"
	"github.com/jeranaias/chatgate/internal/session"
	"github.com/jeranaias/chatgate/internal/store"
)

// =============================================================================
// STATES
// =============================================================================

// State is the position in the authentication flow.
type State int

const (
	StateLoggedOut State = iota
	StateRegistering
	StateResettingPassword
	StateChatActive
)

// String returns a short name for the state.
func (s State) String() string {
	switch s {
	case StateLoggedOut:
		return "logged_out"
	case StateRegistering:
		return "registering"
	case StateResettingPassword:
		return "resetting_password"
	case StateChatActive:
		return "chat_active"
	default:
		return "unknown"
	}
}

// =============================================================================
// SECURITY QUESTIONS
// =============================================================================

// QuestionPlaceholder is the unselected option shown first in question lists.
const QuestionPlaceholder = "Select"

// SecurityQuestions is the fixed list a user picks from. The placeholder is
// included for display and is never a valid selection.
var SecurityQuestions = []string{
	QuestionPlaceholder,
	"Your Birth Place",
	"Your Mother Name",
	"Your Pet Name",
}

// validQuestion reports whether q is a real selection.
func validQuestion(q string) bool {
	for _, candidate := range SecurityQuestions[1:] {
		if q == candidate {
			return true
		}
	}
	return false
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError reports unusable form input. It is produced before any
// store interaction.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// =============================================================================
// FORMS
// =============================================================================

// RegisterForm carries registration input.
type RegisterForm struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
	Question        string
	Answer          string
}

// ResetForm carries password reset input.
type ResetForm struct {
	Email       string
	Question    string
	Answer      string
	NewPassword string
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the flow state and the active session.
type Controller struct {
	store   *store.Store
	state   State
	session *session.Session
}

// NewController starts a controller in the logged-out state.
func NewController(st *store.Store) *Controller {
	return &Controller{store: st, state: StateLoggedOut}
}

// State returns the current flow state.
func (c *Controller) State() State {
	return c.state
}

// Session returns the active chat session, or nil when logged out.
func (c *Controller) Session() *session.Session {
	return c.session
}

// StartRegistration moves from the login screen to the registration form.
func (c *Controller) StartRegistration() {
	if c.state == StateLoggedOut {
		c.state = StateRegistering
	}
}

// StartReset moves from the login screen to the password reset form.
func (c *Controller) StartReset() {
	if c.state == StateLoggedOut {
		c.state = StateResettingPassword
	}
}

// Cancel abandons the registration or reset form.
func (c *Controller) Cancel() {
	if c.state == StateRegistering || c.state == StateResettingPassword {
		c.state = StateLoggedOut
	}
}

// Login authenticates the email/password pair against the store. On
// success the controller enters the chat state with a fresh session.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return invalid("email", "cannot be empty")
	}
	if password == "" {
		return invalid("password", "cannot be empty")
	}

	acct, err := c.store.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !auth.Verify(password, acct.PasswordHash) {
		return store.ErrAccountNotFound
	}

	c.session = session.New(*acct)
	c.state = StateChatActive
	return nil
}

// Register validates the form, hashes the password, and creates the
// account. On success the flow returns to the login screen; the new user
// logs in normally.
func (c *Controller) Register(ctx context.Context, form RegisterForm) error {
	if strings.TrimSpace(form.FirstName) == "" {
		return invalid("first name", "cannot be empty")
	}
	if strings.TrimSpace(form.LastName) == "" {
		return invalid("last name", "cannot be empty")
	}
	email := strings.TrimSpace(form.Email)
	if email == "" {
		return invalid("email", "cannot be empty")
	}
	if form.Password == "" {
		return invalid("password", "cannot be empty")
	}
	if form.Password != form.ConfirmPassword {
		return invalid("confirm password", "does not match password")
	}
	if !validQuestion(form.Question) {
		return invalid("security question", "select a question")
	}
	if strings.TrimSpace(form.Answer) == "" {
		return invalid("security answer", "cannot be empty")
	}

	_, err := c.store.CreateAccount(ctx, store.Account{
		FirstName:        strings.TrimSpace(form.FirstName),
		LastName:         strings.TrimSpace(form.LastName),
		Email:            email,
		PasswordHash:     auth.Hash(form.Password),
		SecurityQuestion: form.Question,
		SecurityAnswer:   strings.TrimSpace(form.Answer),
	})
	if err != nil {
		return err
	}

	c.state = StateLoggedOut
	return nil
}

// ResetPassword authorizes by email plus security question and answer,
// then writes a fresh hash for the matched account.
func (c *Controller) ResetPassword(ctx context.Context, form ResetForm) error {
	email := strings.TrimSpace(form.Email)
	if email == "" {
		return invalid("email", "cannot be empty")
	}
	if !validQuestion(form.Question) {
		return invalid("security question", "select a question")
	}
	answer := strings.TrimSpace(form.Answer)
	if answer == "" {
		return invalid("security answer", "cannot be empty")
	}
	if form.NewPassword == "" {
		return invalid("new password", "cannot be empty")
	}

	acct, err := c.store.FindBySecurity(ctx, email, form.Question, answer)
	if err != nil {
		return err
	}

	updated, err := c.store.UpdatePassword(ctx, acct.Email, auth.Hash(form.NewPassword))
	if err != nil {
		return err
	}
	if !updated {
		return store.ErrAccountNotFound
	}

	c.state = StateLoggedOut
	return nil
}

// Logout drops the session and returns to the login screen. The
// transcript is discarded; nothing is persisted.
func (c *Controller) Logout() {
	c.session = nil
	c.state = StateLoggedOut
}
