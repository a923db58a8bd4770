// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth provides salted password hashing and verification.
//
// Stored values use the format "salt$digest" where salt is a fresh
// 16-byte hex-encoded random value and digest is the hex SHA-256 of
// password || salt. A per-account random salt defeats precomputed-hash
// attacks and keeps identical passwords distinct at rest.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// saltBytes is the salt length in bytes (128 bits of entropy).
const saltBytes = 16

// Hash returns a salted hash of password in "salt$digest" form.
// Each call draws a fresh salt, so two hashes of the same password differ.
func Hash(password string) string {
	salt := make([]byte, saltBytes)
	rand.Read(salt)
	saltHex := hex.EncodeToString(salt)
	return saltHex + "$" + digest(password, saltHex)
}

// Verify reports whether password matches a stored "salt$digest" value.
// Malformed stored values (no separator, empty string) are a verification
// failure, never an error.
func Verify(password, stored string) bool {
	salt, want, ok := strings.Cut(stored, "$")
	if !ok || want == "" {
		return false
	}
	got := digest(password, salt)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// digest computes the hex SHA-256 of password || salt.
func digest(password, saltHex string) string {
	sum := sha256.Sum256([]byte(password + saltHex))
	return hex.EncodeToString(sum[:])
}
