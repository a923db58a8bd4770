// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store provides the SQLite-backed account store for chatgate.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrDuplicateEmail is returned when registering an email that already exists.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")
)

// StorageError wraps a database connectivity or I/O failure.
type StorageError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying driver error.
func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// =============================================================================
// ACCOUNT TYPE
// =============================================================================

// Account is one registered user row.
type Account struct {
	ID               int64
	FirstName        string
	LastName         string
	Email            string
	PasswordHash     string // "salt$digest", never the plaintext password
	SecurityQuestion string
	SecurityAnswer   string // stored as plaintext; see DESIGN.md
}

// =============================================================================
// ACCOUNT STORE
// =============================================================================

// Store persists accounts in a local SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the account database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, storageErr("create database directory", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, storageErr("open database", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, storageErr("set pragma", err)
		}
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// InitSchema idempotently ensures the account table exists.
// Safe to call on every startup.
func (s *Store) InitSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS register (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			fname TEXT NOT NULL,
			lname TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			securityQ TEXT NOT NULL,
			securityA TEXT NOT NULL
		)`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return storageErr("init schema", err)
	}
	return nil
}

// =============================================================================
// WRITE OPERATIONS
// =============================================================================

// CreateAccount inserts a new account and returns its row id.
// Returns ErrDuplicateEmail when the email is already registered.
func (s *Store) CreateAccount(ctx context.Context, acct Account) (int64, error) {
	const insert = `
		INSERT INTO register (fname, lname, email, password, securityQ, securityA)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, insert,
		acct.FirstName, acct.LastName, acct.Email,
		acct.PasswordHash, acct.SecurityQuestion, acct.SecurityAnswer)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateEmail
		}
		return 0, storageErr("create account", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("create account", err)
	}
	return id, nil
}

// UpdatePassword replaces the stored password hash for email.
// Returns whether a row was updated.
func (s *Store) UpdatePassword(ctx context.Context, email, newHash string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE register SET password = ? WHERE email = ?", newHash, email)
	if err != nil {
		return false, storageErr("update password", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, storageErr("update password", err)
	}
	return n > 0, nil
}

// =============================================================================
// LOOKUP OPERATIONS
// =============================================================================

// FindByEmail loads the account registered under email.
// Returns ErrAccountNotFound when no such account exists.
func (s *Store) FindByEmail(ctx context.Context, email string) (*Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, fname, lname, email, password, securityQ, securityA FROM register WHERE email = ?",
		email)
	return scanAccount(row, "find by email")
}

// FindBySecurity loads the account matching email plus the exact stored
// security question and answer. Used only to authorize a password reset.
// Returns ErrAccountNotFound when nothing matches.
func (s *Store) FindBySecurity(ctx context.Context, email, question, answer string) (*Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, fname, lname, email, password, securityQ, securityA FROM register WHERE email = ? AND securityQ = ? AND securityA = ?",
		email, question, answer)
	return scanAccount(row, "find by security answer")
}

// CountAccounts returns the number of registered accounts.
func (s *Store) CountAccounts(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM register").Scan(&n); err != nil {
		return 0, storageErr("count accounts", err)
	}
	return n, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func scanAccount(row *sql.Row, op string) (*Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email,
		&a.PasswordHash, &a.SecurityQuestion, &a.SecurityAnswer)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, storageErr(op, err)
	}
	return &a, nil
}

// isUniqueViolation reports whether err is the driver's UNIQUE constraint
// failure. modernc.org/sqlite surfaces constraint violations as plain
// errors, so the message is the stable signal.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
