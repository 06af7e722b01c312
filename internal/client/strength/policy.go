// Package strength holds the local password-shape policy and the
// asynchronous strength oracle consulted during registration.
//
// The policy is a user-experience gate evaluated before any request leaves
// the client. The identity provider remains the enforcement point and may
// accept or reject a password independently.
package strength

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// MinLength is the minimum password length, counted in characters.
const MinLength = 12

// ErrPolicy is returned by Validate when a password breaks a shape rule.
var ErrPolicy = errors.New("password does not meet security requirements")

// Rule is one requirement of the shape policy.
type Rule int

const (
	RuleLength Rule = iota
	RuleCase
	RuleDigit
	RuleSymbol
)

// Rules lists every rule in display order.
func Rules() []Rule {
	return []Rule{RuleLength, RuleCase, RuleDigit, RuleSymbol}
}

// String is the requirement phrased for the weak-password hint.
func (r Rule) String() string {
	switch r {
	case RuleLength:
		return fmt.Sprintf("Be at least %d characters long", MinLength)
	case RuleCase:
		return "Contain uppercase and lowercase letters"
	case RuleDigit:
		return "Include numbers"
	case RuleSymbol:
		return "Have special characters"
	default:
		return "unknown rule"
	}
}

// Violations returns the rules pw breaks, in display order.
func Violations(pw string) []Rule {
	n := 0
	var upper, lower, digit, symbol bool
	for _, r := range pw {
		n++
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r):
			symbol = true
		}
	}

	var out []Rule
	if n < MinLength {
		out = append(out, RuleLength)
	}
	if !upper || !lower {
		out = append(out, RuleCase)
	}
	if !digit {
		out = append(out, RuleDigit)
	}
	if !symbol {
		out = append(out, RuleSymbol)
	}
	return out
}

// Validate returns nil when pw satisfies every rule, otherwise an error
// wrapping ErrPolicy that names the broken rules.
func Validate(pw string) error {
	v := Violations(pw)
	if len(v) == 0 {
		return nil
	}
	names := make([]string, len(v))
	for i, r := range v {
		names[i] = strings.ToLower(r.String())
	}
	return fmt.Errorf("%w: must %s", ErrPolicy, strings.Join(names, "; "))
}
