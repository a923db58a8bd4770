// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package resolver turns user text into a reply.
//
// Resolution is total: if a remote responder is configured it gets one
// attempt, and on any failure the ordered table of keyword-triggered canned
// replies takes over. Nothing here ever returns an error to the caller.
package resolver

import (
	"context"
	"math/rand"
	"time"
)

// Fixed parameters for the remote responder, matching the legacy behavior.
const (
	systemPrompt = "You are a helpful and friendly AI assistant. Provide clear, concise, and helpful responses."
	maxTokens    = 300
	temperature  = 0.7
)

// Responder is a remote generative backend. cloud.Client satisfies it.
type Responder interface {
	Complete(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error)
}

// Resolver produces replies for user input.
type Resolver struct {
	responder Responder // nil means no remote responder configured
	now       func() time.Time
	rng       *rand.Rand
}

// New creates a resolver. A nil responder disables the remote path entirely.
func New(responder Responder) *Resolver {
	return &Resolver{
		responder: responder,
		now:       time.Now,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithClock overrides the time source (used in tests).
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// WithRand overrides the randomness source (used in tests).
func (r *Resolver) WithRand(rng *rand.Rand) *Resolver {
	r.rng = rng
	return r
}

// RemoteEnabled reports whether a remote responder is wired in.
func (r *Resolver) RemoteEnabled() bool {
	return r.responder != nil
}

// Resolve returns a reply for input. It never fails: remote errors of any
// kind (auth, network, timeout, rate limit) silently degrade to the canned
// table. The remote call gets exactly one attempt.
func (r *Resolver) Resolve(ctx context.Context, input string) string {
	if r.responder != nil {
		reply, err := r.responder.Complete(ctx, systemPrompt, input, maxTokens, temperature)
		if err == nil {
			return reply
		}
	}
	return r.fallback(input)
}
