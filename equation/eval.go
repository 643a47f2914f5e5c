package equation

import (
	"errors"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// At evaluates the expression with the free variable bound to value.
//
// Segments are resolved deepest first, so every marker refers to a value
// that is already known when its segment is visited. The resolved texts live
// in a snapshot private to this call.
//
// If the outermost segment does not fold to a number, At returns +Inf and
// logs a warning.
func (e *Expression) At(value float64) (float64, error) {
	segs := e.layers.Segments
	snapshot := make([]string, len(segs))

	for id := len(segs) - 1; id >= 0; id-- {
		text, err := e.resolve(segs[id], snapshot, value)
		if err != nil {
			return math.NaN(), err
		}

		snapshot[id] = text

		e.log.Trace("resolved segment",
			slog.Int("id", id),
			slog.Int("level", segs[id].Level),
			slog.String("template", segs[id].Text),
			slog.String("text", text),
		)
	}

	root := snapshot[e.layers.Root()]

	v, err := ParseReal(root)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return v, nil
		}

		e.log.Warn("result is not a number, substituting infinity",
			slog.String("source", e.source),
			slog.String("result", root),
			slog.String(e.variable, FormatReal(value)),
		)

		return math.Inf(1), nil
	}

	return v, nil
}

// resolve rewrites one segment to canonical literal text.
func (e *Expression) resolve(seg Segment, snapshot []string, value float64) (string, error) {
	text := substituteMarkers(seg, snapshot)
	text = substituteIdent(text, e.variable, "("+FormatReal(value)+")")

	text, err := e.applyFunctions(text)
	if err != nil {
		return "", err
	}

	return e.simplifier.Simplify(text)
}

// substituteMarkers replaces each marker of seg, left to right, with the
// parenthesized text of the corresponding child.
func substituteMarkers(seg Segment, snapshot []string) string {
	if len(seg.Children) == 0 {
		return seg.Text
	}

	var sb strings.Builder

	next := 0

	for _, c := range seg.Text {
		if c != Marker || next >= len(seg.Children) {
			sb.WriteRune(c)

			continue
		}

		sb.WriteByte('(')
		sb.WriteString(snapshot[seg.Children[next]])
		sb.WriteByte(')')

		next++
	}

	return sb.String()
}

// identSpan is the byte range of an identifier token.
type identSpan struct{ start, end int }

// identifiers returns the identifier tokens of s, skipping over numeric
// literals so that an exponent such as the "e" of "1e-07" is never taken
// for a name.
func identifiers(s string) []identSpan {
	var spans []identSpan

	for i := 0; i < len(s); {
		switch {
		case startsNumber(s, i):
			i = scanNumber(s, i)

		case isLetter(s[i]):
			j := i
			for j < len(s) && isIdentByte(s[j]) {
				j++
			}

			spans = append(spans, identSpan{i, j})
			i = j

		default:
			i++
		}
	}

	return spans
}

// substituteIdent replaces every whole identifier token name in s with repl.
func substituteIdent(s, name, repl string) string {
	var (
		sb   strings.Builder
		last int
	)

	for _, sp := range identifiers(s) {
		if s[sp.start:sp.end] != name {
			continue
		}

		sb.WriteString(s[last:sp.start])
		sb.WriteString(repl)
		last = sp.end
	}

	if last == 0 {
		return s
	}

	sb.WriteString(s[last:])

	return sb.String()
}

// applyFunctions resolves every function application in text, rightmost
// first, so that the argument of each application is already free of calls
// when it is simplified.
func (e *Expression) applyFunctions(text string) (string, error) {
	for {
		name, start, open, ok := e.lastCall(text)
		if !ok {
			return text, nil
		}

		end := matchParen(text, open)
		if end < 0 {
			return "", ErrArithmetic.With(
				slog.String("function", name),
				slog.String("segment", text),
				slog.String("reason", "unterminated argument"),
			)
		}

		arg, err := e.simplifier.Simplify(text[open+1 : end])
		if err != nil {
			return "", withAttrs(err, slog.String("function", name))
		}

		x, err := ParseReal(arg)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return "", ErrArithmetic.Wrap(err).With(
				slog.String("function", name),
				slog.String("argument", arg),
			)
		}

		y, err := e.registry.Call(name, x)
		if err != nil {
			return "", withAttrs(err,
				slog.String("function", name),
				slog.String("argument", FormatReal(x)),
			)
		}

		if math.IsNaN(y) {
			return "", ErrArithmetic.With(
				slog.String("function", name),
				slog.String("argument", FormatReal(x)),
				slog.String("reason", "not a number"),
			)
		}

		text = text[:start] + "(" + FormatReal(y) + ")" + text[end+1:]
	}
}

// lastCall finds the rightmost registered function name in text that is
// followed by an opening parenthesis.
func (e *Expression) lastCall(text string) (name string, start, open int, ok bool) {
	spans := identifiers(text)

	for i := len(spans) - 1; i >= 0; i-- {
		sp := spans[i]

		n := text[sp.start:sp.end]
		if !e.registry.Has(n) {
			continue
		}

		j := sp.end
		for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
			j++
		}

		if j < len(text) && text[j] == '(' {
			return n, sp.start, j, true
		}
	}

	return "", 0, 0, false
}

// matchParen returns the index of the parenthesis closing the one at open,
// or -1.
func matchParen(s string, open int) int {
	depth := 0

	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// withAttrs adds attrs to err if it is an [*Error], and otherwise wraps it
// as an arithmetic failure.
func withAttrs(err error, attrs ...slog.Attr) error {
	var e *Error
	if errors.As(err, &e) {
		return e.With(attrs...)
	}

	return ErrArithmetic.Wrap(err).With(attrs...)
}
