// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package resolver

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// =============================================================================
// ARITHMETIC EVALUATOR
// =============================================================================
//
// A restricted recursive-descent evaluator over the grammar
//
//	expr   = term   { ("+" | "-") term }
//	term   = factor { ("*" | "/") factor }
//	factor = ["+" | "-"] ( number | "(" expr ")" )
//
// Only numeric literals, the four operators, and parentheses are accepted.
// This deliberately replaces the legacy delegate-to-eval approach: the input
// already passed a character whitelist, but a general expression evaluator
// is still the wrong tool for user-controlled text.

var (
	errBadExpression = errors.New("malformed expression")
	errDivideByZero  = errors.New("division by zero")
)

type exprParser struct {
	input string
	pos   int
}

// evalExpr evaluates a whitelisted arithmetic expression.
func evalExpr(s string) (float64, error) {
	p := &exprParser{input: s}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return 0, fmt.Errorf("%w: trailing input at %d", errBadExpression, p.pos)
	}
	return v, nil
}

func (p *exprParser) parseExpr() (float64, error) {
	v, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		switch p.peek() {
		case '+':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v += rhs
		case '-':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v -= rhs
		default:
			return v, nil
		}
	}
}

func (p *exprParser) parseTerm() (float64, error) {
	v, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		switch p.peek() {
		case '*':
			p.pos++
			rhs, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			v *= rhs
		case '/':
			p.pos++
			rhs, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			if rhs == 0 {
				return 0, errDivideByZero
			}
			v /= rhs
		default:
			return v, nil
		}
	}
}

func (p *exprParser) parseFactor() (float64, error) {
	p.skipSpaces()

	// Unary sign
	sign := 1.0
	for p.peek() == '+' || p.peek() == '-' {
		if p.peek() == '-' {
			sign = -sign
		}
		p.pos++
		p.skipSpaces()
	}

	if p.peek() == '(' {
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		p.skipSpaces()
		if p.peek() != ')' {
			return 0, fmt.Errorf("%w: missing closing parenthesis", errBadExpression)
		}
		p.pos++
		return sign * v, nil
	}

	return p.parseNumber(sign)
}

func (p *exprParser) parseNumber(sign float64) (float64, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if (c >= '0' && c <= '9') || c == '.' {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return 0, fmt.Errorf("%w: expected number at %d", errBadExpression, start)
	}

	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errBadExpression, p.input[start:p.pos])
	}
	return sign * v, nil
}

func (p *exprParser) peek() byte {
	if p.pos < len(p.input) {
		return p.input[p.pos]
	}
	return 0
}

func (p *exprParser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

// formatNumber renders a result in the shortest exact decimal form,
// so whole values print without a fractional part ("42", not "42.0").
func formatNumber(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "undefined"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
