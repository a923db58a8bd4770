// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "chatbot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.InitSchema(context.Background()))
	return s
}

func testAccount(email string) Account {
	return Account{
		FirstName:        "Ada",
		LastName:         "Lovelace",
		Email:            email,
		PasswordHash:     "deadbeef$0123456789abcdef",
		SecurityQuestion: "Your Pet Name",
		SecurityAnswer:   "Byron",
	}
}

func TestInitSchemaIdempotent(t *testing.T) {
	s := openTestStore(t)
	// Calling again on an existing table must not fail.
	require.NoError(t, s.InitSchema(context.Background()))
}

func TestCreateAccount(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.CreateAccount(ctx, testAccount("a@b.com"))
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	got, err := s.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.Equal(t, id, got.ID)
	require.Equal(t, "Ada", got.FirstName)
	require.Equal(t, "deadbeef$0123456789abcdef", got.PasswordHash)
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.CreateAccount(ctx, testAccount("a@b.com"))
	require.NoError(t, err)

	_, err = s.CreateAccount(ctx, testAccount("a@b.com"))
	require.ErrorIs(t, err, ErrDuplicateEmail)

	// Row count invariant: the failed insert left the store unchanged.
	n, err := s.CountAccounts(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestFindByEmailNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.FindByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestFindBySecurity(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.CreateAccount(ctx, testAccount("a@b.com"))
	require.NoError(t, err)

	got, err := s.FindBySecurity(ctx, "a@b.com", "Your Pet Name", "Byron")
	require.NoError(t, err)
	require.Equal(t, "a@b.com", got.Email)

	// Exact match only: wrong answer, wrong question, wrong case all miss.
	for _, c := range []struct{ q, a string }{
		{"Your Pet Name", "wrong"},
		{"Your Mother Name", "Byron"},
		{"Your Pet Name", "byron"},
	} {
		_, err := s.FindBySecurity(ctx, "a@b.com", c.q, c.a)
		require.ErrorIs(t, err, ErrAccountNotFound, "question=%q answer=%q", c.q, c.a)
	}
}

func TestUpdatePassword(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.CreateAccount(ctx, testAccount("a@b.com"))
	require.NoError(t, err)

	updated, err := s.UpdatePassword(ctx, "a@b.com", "newsalt$newdigest")
	require.NoError(t, err)
	require.True(t, updated)

	got, err := s.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.Equal(t, "newsalt$newdigest", got.PasswordHash)

	// Unknown email updates nothing.
	updated, err = s.UpdatePassword(ctx, "nobody@example.com", "x$y")
	require.NoError(t, err)
	require.False(t, updated)
}

func TestStorageErrorUnwrap(t *testing.T) {
	inner := errors.New("disk on fire")
	err := storageErr("test op", inner)

	var se *StorageError
	require.True(t, errors.As(err, &se))
	require.ErrorIs(t, err, inner)
}
