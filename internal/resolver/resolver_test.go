// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package resolver

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"
)

// fakeResponder is a scriptable remote responder.
type fakeResponder struct {
	reply string
	err   error
	calls int
}

func (f *fakeResponder) Complete(_ context.Context, system, user string, maxTokens int, temperature float64) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newLocal() *Resolver {
	return New(nil).WithRand(rand.New(rand.NewSource(1)))
}

func TestResolveRemoteSuccess(t *testing.T) {
	f := &fakeResponder{reply: "remote says hi"}
	r := New(f)

	got := r.Resolve(context.Background(), "Hello")
	if got != "remote says hi" {
		t.Errorf("Resolve = %q, want remote reply", got)
	}
	if f.calls != 1 {
		t.Errorf("remote calls = %d, want 1", f.calls)
	}
}

func TestResolveRemoteFailureFallsBack(t *testing.T) {
	f := &fakeResponder{err: errors.New("rate limited")}
	r := New(f).WithRand(rand.New(rand.NewSource(1)))

	got := r.Resolve(context.Background(), "Hello")
	if !strings.HasPrefix(got, "Hello!") {
		t.Errorf("Resolve = %q, want greeting fallback", got)
	}
	// Exactly one attempt, no retry.
	if f.calls != 1 {
		t.Errorf("remote calls = %d, want 1", f.calls)
	}
}

func TestResolveGreeting(t *testing.T) {
	got := newLocal().Resolve(context.Background(), "Hello")
	if !strings.HasPrefix(got, "Hello!") {
		t.Errorf("greeting reply = %q", got)
	}
}

func TestResolveCategories(t *testing.T) {
	r := newLocal()
	tests := []struct {
		input      string
		wantPrefix string
	}{
		{"hey there", "Hello!"},
		{"how are you?", "I'm doing great!"},
		{"what is your name?", "I'm your friendly AI chatbot!"},
		{"what can you do for me", "I can help you with:"},
		{"do you know the weather forecast?", "I'd love to give you weather information"},
		{"bye for now", "Goodbye!"},
		{"thanks a lot", "You're welcome!"},
	}
	for _, tt := range tests {
		got := r.Resolve(context.Background(), tt.input)
		if !strings.HasPrefix(got, tt.wantPrefix) {
			t.Errorf("Resolve(%q) = %q, want prefix %q", tt.input, got, tt.wantPrefix)
		}
	}
}

func TestResolveTimeAndDate(t *testing.T) {
	fixed := time.Date(2025, time.March, 9, 15, 4, 0, 0, time.UTC)
	r := newLocal().WithClock(func() time.Time { return fixed })

	got := r.Resolve(context.Background(), "what time is it?")
	if !strings.Contains(got, "03:04 PM") {
		t.Errorf("time reply = %q, want 03:04 PM", got)
	}

	got = r.Resolve(context.Background(), "what date is it?")
	if !strings.Contains(got, "March 09, 2025") {
		t.Errorf("date reply = %q, want March 09, 2025", got)
	}
}

func TestResolveArithmetic(t *testing.T) {
	r := newLocal()
	tests := []struct {
		input string
		want  string
	}{
		{"What is 15 + 27?", "The answer is: 42"},
		{"calculate 100 / 4", "The answer is: 25"},
		{"calculate (2 + 3) * 4", "The answer is: 20"},
	}
	for _, tt := range tests {
		if got := r.Resolve(context.Background(), tt.input); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestResolveArithmeticMalformed(t *testing.T) {
	r := newLocal()
	for _, input := range []string{
		"Calculate 5 + ",
		"calculate 1 / 0",
		"can you do math for me",
	} {
		if got := r.Resolve(context.Background(), input); got != mathHelp {
			t.Errorf("Resolve(%q) = %q, want help message", input, got)
		}
	}
}

func TestResolveJokePool(t *testing.T) {
	r := newLocal()
	got := r.Resolve(context.Background(), "tell me a joke")
	found := false
	for _, j := range jokes {
		if got == j {
			found = true
		}
	}
	if !found {
		t.Errorf("joke reply %q not in the fixed pool", got)
	}
}

func TestResolveDeflectionPool(t *testing.T) {
	r := newLocal()
	got := r.Resolve(context.Background(), "asdkjasd")
	found := false
	for _, d := range deflections {
		if got == d {
			found = true
		}
	}
	if !found {
		t.Errorf("deflection reply %q not in the fixed pool", got)
	}
}

func TestResolveOrderFirstMatchWins(t *testing.T) {
	// "hi" appears before "joke" in the table; greeting wins.
	got := newLocal().Resolve(context.Background(), "hi, tell me a joke")
	if !strings.HasPrefix(got, "Hello!") {
		t.Errorf("Resolve = %q, want greeting (first match wins)", got)
	}
}
