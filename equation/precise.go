package equation

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/zephyrtronium/bigfloat"
)

// DefaultPrecision is the mantissa precision, in bits, of a
// [PreciseSimplifier] constructed with precision 0.
const DefaultPrecision = 256

// literalPrefix names the identifiers that stand in for numeric literals
// while a segment is parsed, so that literals keep their full decimal
// precision instead of being rounded to float64 by the parser.
const literalPrefix = "lit"

// PreciseSimplifier folds arithmetic with [big.Float] at a fixed precision.
// Exponentiation uses bigfloat.Pow. It is safe for concurrent use.
type PreciseSimplifier struct {
	prec uint
}

// NewPreciseSimplifier returns a [PreciseSimplifier] with the given mantissa
// precision in bits.
func NewPreciseSimplifier(prec uint) *PreciseSimplifier {
	if prec == 0 {
		prec = DefaultPrecision
	}

	return &PreciseSimplifier{prec: prec}
}

// Precision returns the mantissa precision in bits.
func (s *PreciseSimplifier) Precision() uint { return s.prec }

// Simplify implements [Simplifier].
func (s *PreciseSimplifier) Simplify(text string) (res string, err error) {
	masked, lits, err := s.extractLiterals(text)
	if err != nil {
		return "", err
	}

	tree, err := parser.Parse(masked)
	if err != nil {
		return "", ErrArithmetic.Wrap(err).With(slog.String("segment", text))
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}

		var nan big.ErrNaN
		if e, ok := r.(error); ok && errors.As(e, &nan) {
			res, err = "", ErrArithmetic.With(
				slog.String("segment", text),
				slog.String("reason", nan.Error()),
			)

			return
		}

		panic(r)
	}()

	f := &bigFolder{prec: s.prec, lits: lits}

	z, err := f.fold(tree.Node)
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			return "", e.With(slog.String("segment", text))
		}

		return "", err
	}

	return formatBig(z), nil
}

// extractLiterals replaces every numeric literal of text with an identifier
// and returns the literal values parsed at the simplifier's precision.
func (s *PreciseSimplifier) extractLiterals(text string) (string, []*big.Float, error) {
	var (
		sb   strings.Builder
		lits []*big.Float
	)

	sb.Grow(len(text))

	for i := 0; i < len(text); {
		if !startsNumber(text, i) || (i > 0 && isIdentByte(text[i-1])) {
			sb.WriteByte(text[i])
			i++

			continue
		}

		end := scanNumber(text, i)

		v, _, err := new(big.Float).SetPrec(s.prec).Parse(text[i:end], 10)
		if err != nil {
			return "", nil, ErrArithmetic.Wrap(err).With(
				slog.String("segment", text),
				slog.String("literal", text[i:end]),
			)
		}

		sb.WriteString(literalPrefix)
		sb.WriteString(strconv.Itoa(len(lits)))
		lits = append(lits, v)
		i = end
	}

	return sb.String(), lits, nil
}

func startsNumber(s string, i int) bool {
	return isDigit(s[i]) || (s[i] == '.' && i+1 < len(s) && isDigit(s[i+1]))
}

func isIdentByte(c byte) bool { return isLetter(c) || isDigit(c) }

// scanNumber returns the end of the decimal literal starting at i, including
// an optional exponent.
func scanNumber(s string, i int) int {
	for i < len(s) && (isDigit(s[i]) || s[i] == '.') {
		i++
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}

		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}

			return j
		}
	}

	return i
}

type bigFolder struct {
	prec uint
	lits []*big.Float
}

func (f *bigFolder) newFloat() *big.Float { return new(big.Float).SetPrec(f.prec) }

func (f *bigFolder) fold(node ast.Node) (*big.Float, error) {
	switch n := node.(type) {
	case *ast.IntegerNode:
		return f.newFloat().SetInt64(int64(n.Value)), nil

	case *ast.FloatNode:
		if math.IsNaN(n.Value) {
			return nil, ErrArithmetic.With(slog.String("reason", "not a number"))
		}

		return f.newFloat().SetFloat64(n.Value), nil

	case *ast.IdentifierNode:
		return f.identifier(n.Value)

	case *ast.UnaryNode:
		x, err := f.fold(n.Node)
		if err != nil {
			return nil, err
		}

		switch n.Operator {
		case "+":
			return x, nil
		case "-":
			return x.Neg(x), nil
		}

		return nil, ErrArithmetic.With(slog.String("token", n.Operator))

	case *ast.BinaryNode:
		x, err := f.fold(n.Left)
		if err != nil {
			return nil, err
		}

		y, err := f.fold(n.Right)
		if err != nil {
			return nil, err
		}

		return f.binary(n.Operator, x, y)
	}

	return nil, ErrArithmetic.With(slog.String("token", fmt.Sprintf("%T", node)))
}

func (f *bigFolder) identifier(name string) (*big.Float, error) {
	switch name {
	case "Inf":
		return f.newFloat().SetInf(false), nil
	case "NaN":
		return nil, ErrArithmetic.With(slog.String("reason", "not a number"))
	}

	if idx, ok := strings.CutPrefix(name, literalPrefix); ok {
		if i, err := strconv.Atoi(idx); err == nil && i >= 0 && i < len(f.lits) {
			return f.newFloat().Set(f.lits[i]), nil
		}
	}

	return nil, ErrArithmetic.With(slog.String("token", name))
}

func (f *bigFolder) binary(op string, x, y *big.Float) (*big.Float, error) {
	z := f.newFloat()

	switch op {
	case "+":
		return z.Add(x, y), nil
	case "-":
		return z.Sub(x, y), nil
	case "*":
		return z.Mul(x, y), nil
	case "/":
		return z.Quo(x, y), nil
	case "**", "^":
		return f.pow(z, x, y)
	}

	return nil, ErrArithmetic.With(slog.String("token", op))
}

// pow sets z to x**y on the reals.
func (f *bigFolder) pow(z, x, y *big.Float) (*big.Float, error) {
	if x.IsInf() || y.IsInf() {
		xf, _ := x.Float64()
		yf, _ := y.Float64()

		r := math.Pow(xf, yf)
		if math.IsNaN(r) {
			return nil, ErrArithmetic.With(slog.String("reason", "not a number"))
		}

		return z.SetFloat64(r), nil
	}

	switch {
	case y.Sign() == 0:
		return z.SetInt64(1), nil

	case x.Sign() == 0:
		if y.Sign() < 0 {
			return z.SetInf(x.Signbit()), nil
		}

		return z.SetInt64(0), nil

	case x.Sign() > 0:
		return bigfloat.Pow(z, x, y), nil

	case !y.IsInt():
		return nil, ErrComplexResult.With(
			slog.String("base", x.Text('g', 10)),
			slog.String("exponent", y.Text('g', 10)),
		)
	}

	abs := f.newFloat().Abs(x)
	bigfloat.Pow(z, abs, y)

	n, _ := y.Int(nil)
	if n.Bit(0) == 1 {
		z.Neg(z)
	}

	return z, nil
}

// formatBig renders z as canonical literal text.
func formatBig(z *big.Float) string {
	if z.IsInf() {
		if z.Signbit() {
			return "-Inf"
		}

		return "Inf"
	}

	return z.Text('g', -1)
}
