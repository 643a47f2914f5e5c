package equation

import (
	"log/slog"
	"strings"
)

// Forbidden lists substrings that are never accepted in an expression,
// regardless of context. They cover shell metacharacters, quoting, and
// command-injection tokens, and also reserve the placeholder marker and the
// segment separator used by the layer builder.
var Forbidden = []string{
	";", "\\", "{", "}", "@", "$", "^", "&", "rm ", "sudo",
	"~", "!", "#", ":", "|", "`", "'", `"`,
}

// Sanitize validates raw before any structural processing.
//
// A forbidden substring fails with [ErrSecurityViolation] before anything
// else is examined. Otherwise every token must be a numeric literal, an
// accepted operator, a parenthesis, the variable symbol, or a name
// registered in reg; anything else fails with [ErrUnrecognizedToken], as do
// empty input and unbalanced parentheses.
func Sanitize(raw string, reg *Registry, variable string) error {
	for _, bad := range Forbidden {
		if strings.Contains(raw, bad) {
			return ErrSecurityViolation.With(slog.String("token", bad))
		}
	}

	var (
		depth  int
		tokens int
	)

	for i := 0; i < len(raw); {
		c := raw[i]

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

			continue

		case isDigit(c) || c == '.':
			for i < len(raw) && (isDigit(raw[i]) || raw[i] == '.') {
				i++
			}

		case isLetter(c):
			start := i
			for i < len(raw) && (isLetter(raw[i]) || isDigit(raw[i])) {
				i++
			}

			name := raw[start:i]
			if name != variable && (reg == nil || !reg.Has(name)) {
				return ErrUnrecognizedToken.With(
					slog.String("token", name),
					slog.Int("offset", start),
				)
			}

		case c == '(':
			depth++
			i++

		case c == ')':
			depth--
			if depth < 0 {
				return ErrUnrecognizedToken.With(
					slog.String("token", ")"),
					slog.Int("offset", i),
					slog.String("reason", "unbalanced parenthesis"),
				)
			}

			i++

		case strings.IndexByte(operators, c) >= 0:
			i++

		default:
			end := i + 1
			for end < len(raw) && raw[end] >= 0x80 && raw[end] < 0xC0 {
				end++
			}

			return ErrUnrecognizedToken.With(
				slog.String("token", raw[i:end]),
				slog.Int("offset", i),
			)
		}

		tokens++
	}

	if depth != 0 {
		return ErrUnrecognizedToken.With(
			slog.String("token", "("),
			slog.String("reason", "unbalanced parenthesis"),
		)
	}

	if tokens == 0 {
		return ErrUnrecognizedToken.With(slog.String("reason", "empty expression"))
	}

	return nil
}

// operators are the accepted arithmetic operator characters. The power
// operator is written as two consecutive '*'.
const operators = "+-*/"
