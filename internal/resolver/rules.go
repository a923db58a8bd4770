// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package resolver

import "strings"

// =============================================================================
// CANNED REPLY TABLE
// =============================================================================

// A rule maps a set of trigger phrases to a reply. Rules are checked in
// order against the lowercased input; the first match wins. Matching is
// substring containment, preserving the legacy behavior.
type rule struct {
	triggers []string
	// extra is an optional additional predicate, checked when no trigger
	// phrase matches. raw is the original (non-lowercased) input.
	extra func(raw string) bool
	reply func(r *Resolver, raw string) string
}

func staticReply(text string) func(*Resolver, string) string {
	return func(*Resolver, string) string { return text }
}

func randomReply(pool []string) func(*Resolver, string) string {
	return func(r *Resolver, _ string) string {
		return pool[r.rng.Intn(len(pool))]
	}
}

var jokes = []string{
	"Why don't scientists trust atoms? Because they make up everything! 🤓",
	"Why did the scarecrow win an award? He was outstanding in his field! 🌾",
	"Why don't eggs tell jokes? They'd crack each other up! 🥚",
	"What do you call a fake noodle? An impasta! 🍝",
}

var deflections = []string{
	"That's an interesting question! I'm here to help and learn. 🤔",
	"I'm not sure I understand completely. Could you rephrase that? 💭",
	"That's a great question! Let me think about how to best answer that. 🧠",
	"I'm here to chat and help! Could you tell me more about what you're looking for? 💬",
	"I'm constantly learning new things. Could you ask me in a different way? 📚",
}

const mathHelp = "I can help with basic math! Try asking something like 'What is 15 + 27?' or 'Calculate 100 divided by 4'"

var rules = []rule{
	{
		triggers: []string{"hello", "hi", "hey", "hola"},
		reply:    staticReply("Hello! 👋 How can I assist you today?"),
	},
	{
		triggers: []string{"how are you", "how do you do"},
		reply:    staticReply("I'm doing great! Thanks for asking. I'm here and ready to help you with anything you need! 😊"),
	},
	{
		triggers: []string{"what is your name", "who are you", "your name"},
		reply:    staticReply("I'm your friendly AI chatbot! I'm here to help answer your questions and chat with you! 🤖"),
	},
	{
		triggers: []string{"what can you do", "help", "capabilities"},
		reply:    staticReply("I can help you with:\n• Answering questions\n• Having conversations\n• Providing information\n• Chatting about various topics\nJust ask me anything! 💡"),
	},
	{
		triggers: []string{"time", "what time", "current time"},
		reply: func(r *Resolver, _ string) string {
			return "The current time is " + r.now().Format("03:04 PM") + " ⏰"
		},
	},
	{
		triggers: []string{"date", "today", "what date"},
		reply: func(r *Resolver, _ string) string {
			return "Today is " + r.now().Format("January 02, 2006") + " 📅"
		},
	},
	{
		// Always a deflection, never live data.
		triggers: []string{"weather", "temperature", "forecast"},
		reply:    staticReply("I'd love to give you weather information, but I need access to current weather data. You might want to check a weather app or website for accurate forecasts! ☀️🌧️"),
	},
	{
		triggers: []string{"calculate", "math", "add", "subtract", "multiply", "divide"},
		// Also triggered by a bare expression like "What is 15 + 27?",
		// which carries digits and an operator but no keyword.
		extra: looksLikeArithmetic,
		reply: arithmeticReply,
	},
	{
		triggers: []string{"bye", "goodbye", "see you", "exit", "quit"},
		reply:    staticReply("Goodbye! 👋 It was nice chatting with you. Feel free to come back anytime!"),
	},
	{
		triggers: []string{"thank", "thanks"},
		reply:    staticReply("You're welcome! 😊 I'm glad I could help. Is there anything else you'd like to know?"),
	},
	{
		triggers: []string{"joke", "funny", "make me laugh"},
		reply:    randomReply(jokes),
	},
}

// fallback resolves input against the canned table. The final case is a
// random generic deflection.
func (r *Resolver) fallback(input string) string {
	lower := strings.ToLower(input)
	for _, rl := range rules {
		if rl.matches(input, lower) {
			return rl.reply(r, input)
		}
	}
	return deflections[r.rng.Intn(len(deflections))]
}

func (rl rule) matches(raw, lower string) bool {
	for _, trigger := range rl.triggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return rl.extra != nil && rl.extra(raw)
}

// =============================================================================
// ARITHMETIC SPECIAL CASE
// =============================================================================

// hasOperator reports whether raw contains one of + - * /.
func hasOperator(raw string) bool {
	return strings.ContainsAny(raw, "+-*/")
}

// looksLikeArithmetic reports whether raw carries both a digit and an
// operator, e.g. "What is 15 + 27?".
func looksLikeArithmetic(raw string) bool {
	return hasOperator(raw) && strings.ContainsAny(raw, "0123456789")
}

// arithmeticReply strips the input down to the expression whitelist and
// evaluates it with the restricted grammar evaluator. Anything that does
// not evaluate cleanly gets the static help message.
func arithmeticReply(_ *Resolver, raw string) string {
	if !hasOperator(raw) {
		return mathHelp
	}

	var b strings.Builder
	for _, c := range raw {
		if strings.ContainsRune("0123456789+-*/.() ", c) {
			b.WriteRune(c)
		}
	}

	result, err := evalExpr(b.String())
	if err != nil {
		return mathHelp
	}
	return "The answer is: " + formatNumber(result)
}
