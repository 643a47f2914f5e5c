package repl

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/ardnew/equatic/cli/cmd"
	"github.com/ardnew/equatic/equation"
	"github.com/ardnew/equatic/log"
)

// previousToken is replaced by the result of the last successful evaluation.
const previousToken = "_"

// session is the evaluation state carried between REPL inputs.
type session struct {
	registry  *equation.Registry
	logger    log.Logger
	variable  string
	precision uint
	point     float64
	last      float64
	count     int
	out       io.Writer
}

func newSession(reg *equation.Registry, logger log.Logger) *session {
	return &session{
		registry: reg,
		logger:   logger,
		variable: equation.DefaultVariable,
	}
}

func (s *session) options() []equation.Option {
	return []equation.Option{
		equation.WithRegistry(s.registry),
		equation.WithLogger(s.logger),
		equation.WithPrecision(s.precision),
		equation.WithVariable(s.variable),
	}
}

// eval evaluates input at the current point. On success the result becomes
// the value of the previous-result token and is written to the session log.
func (s *session) eval(input string) (float64, error) {
	text, err := s.substitutePrevious(input)
	if err != nil {
		return math.NaN(), err
	}

	e, err := equation.Parse(text, s.options()...)
	if err != nil {
		return math.NaN(), err
	}

	y, err := e.At(s.point)
	if err != nil {
		return y, err
	}

	s.last = y
	s.count++

	s.logger.Debug("repl eval",
		slog.String("input", input),
		slog.String("text", text),
		slog.Float64(s.variable, s.point),
		slog.Float64("result", y),
	)

	s.record(input, y)

	return y, nil
}

// record appends an evaluated input and its result to the session log.
func (s *session) record(input string, y float64) {
	if s.out == nil {
		return
	}

	_, err := fmt.Fprintf(s.out, "%s = %s\n", input, equation.FormatReal(y))
	if err != nil {
		s.logger.Warn(ErrSessionLog.Error(), slog.Any("error", err))
	}
}

// substitutePrevious replaces each standalone previous-result token in input
// with the last result in parentheses. Identifiers that merely contain the
// token are left alone.
func (s *session) substitutePrevious(input string) (string, error) {
	var (
		b     strings.Builder
		found bool
	)

	for i := 0; i < len(input); {
		if !isIdentByte(input[i]) {
			b.WriteByte(input[i])
			i++

			continue
		}

		start := i
		for i < len(input) && isIdentByte(input[i]) {
			i++
		}

		word := input[start:i]
		if word != previousToken {
			b.WriteString(word)

			continue
		}

		if math.IsInf(s.last, 0) || math.IsNaN(s.last) {
			return "", fmt.Errorf("%w: %s", ErrNoPrevious, equation.FormatReal(s.last))
		}

		found = true

		b.WriteString("(" + equation.FormatReal(s.last) + ")")
	}

	if !found {
		return input, nil
	}

	return b.String(), nil
}

func isIdentByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}

// command runs a control command other than quit and clear, and returns the
// text to print.
func (s *session) command(line string) (string, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", nil
	}

	name, args := parts[0], parts[1:]

	switch name {
	case "x", "at", s.variable:
		if len(args) > 0 {
			v, err := equation.ParseReal(strings.Join(args, ""))
			if err != nil {
				return "", fmt.Errorf("invalid value %q: %w", strings.Join(args, " "), err)
			}

			s.point = v
		}

		return s.variable + " = " + equation.FormatReal(s.point), nil

	case "f", "funcs":
		names := cmd.MatchFunctions(s.registry.Names(), strings.Join(args, ""))

		return strings.Join(names, "  "), nil

	case "h", "help":
		return helpMessage(), nil
	}

	return "", fmt.Errorf("%w: %s (try 'help')", ErrUnknownCommand, name)
}

func isQuit(input string) bool {
	switch input {
	case "q", "Q", "quit", "exit":
		return true
	}

	return false
}
