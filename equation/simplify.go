package equation

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
)

// Simplifier folds a real-valued arithmetic expression to one canonical
// numeric literal.
//
// Implementations accept the operators + - * / ** with parentheses and unary
// signs, numeric literals, and the constants Inf and NaN. A result that
// would be complex fails with an error of kind [KindValue]; every other
// failure has kind [KindArithmetic].
type Simplifier interface {
	Simplify(text string) (string, error)
}

// FormatReal returns the canonical text of v accepted by every [Simplifier].
func FormatReal(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	case math.IsNaN(v):
		return "NaN"
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ParseReal converts canonical text produced by a [Simplifier] to a float64.
func ParseReal(text string) (float64, error) {
	s := strings.TrimSpace(text)
	for len(s) > 1 && s[0] == '(' && s[len(s)-1] == ')' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	return strconv.ParseFloat(s, 64)
}

// constants are bound in every simplifier environment.
var constants = map[string]any{
	"Inf": math.Inf(1),
	"NaN": math.NaN(),
}

// FloatSimplifier folds arithmetic in float64 using the expr-lang compiler
// and virtual machine. It is stateless and safe for concurrent use.
type FloatSimplifier struct{}

// NewFloatSimplifier returns a [FloatSimplifier].
func NewFloatSimplifier() *FloatSimplifier { return &FloatSimplifier{} }

// Simplify implements [Simplifier].
func (FloatSimplifier) Simplify(text string) (string, error) {
	guard := &arithmeticPatcher{}
	state := &powState{}

	program, err := expr.Compile(floatLiterals(text),
		expr.Env(constants),
		expr.DisableAllBuiltins(),
		expr.Function(powFunc, state.pow),
		expr.Patch(guard),
	)
	if err != nil {
		return "", ErrArithmetic.Wrap(err).With(slog.String("segment", text))
	}

	if guard.err != nil {
		return "", guard.err.With(slog.String("segment", text))
	}

	out, err := expr.Run(program, constants)
	if err != nil {
		return "", ErrArithmetic.Wrap(err).With(slog.String("segment", text))
	}

	v, ok := toFloat(out)
	if !ok {
		return "", ErrArithmetic.With(
			slog.String("segment", text),
			slog.String("result", FormatResult(out)),
		)
	}

	if math.IsNaN(v) {
		if state.complex {
			return "", ErrComplexResult.With(slog.String("segment", text))
		}

		return "", ErrArithmetic.With(
			slog.String("segment", text),
			slog.String("reason", "not a number"),
		)
	}

	return FormatReal(v), nil
}

// floatLiterals appends a fractional part to every integer literal of text so
// that literals beyond the int64 range still parse.
func floatLiterals(text string) string {
	var sb strings.Builder

	sb.Grow(len(text))

	for i := 0; i < len(text); {
		if !startsNumber(text, i) || (i > 0 && isIdentByte(text[i-1])) {
			sb.WriteByte(text[i])
			i++

			continue
		}

		end := scanNumber(text, i)
		sb.WriteString(text[i:end])

		if !strings.ContainsAny(text[i:end], ".eE") {
			sb.WriteString(".0")
		}

		i = end
	}

	return sb.String()
}

// powFunc is the name the power operator is rewritten to.
const powFunc = "pow"

// powState records whether a power in the current fold left the reals.
type powState struct {
	complex bool
}

func (s *powState) pow(params ...any) (any, error) {
	if len(params) != 2 {
		return nil, ErrOperation.With(slog.Int("arity", len(params)))
	}

	x, ok := toFloat(params[0])
	if !ok {
		return nil, ErrOperation.With(slog.String("base", FormatResult(params[0])))
	}

	y, ok := toFloat(params[1])
	if !ok {
		return nil, ErrOperation.With(slog.String("exponent", FormatResult(params[1])))
	}

	if x < 0 && y != math.Trunc(y) && !math.IsInf(y, 0) {
		s.complex = true

		return math.NaN(), nil
	}

	return math.Pow(x, y), nil
}

// arithmeticPatcher restricts a parsed expression to real arithmetic.
// Integer literals become floats so that no fold can overflow an int, and
// the power operator becomes a call to powFunc so that complex results are
// detected.
type arithmeticPatcher struct {
	err *Error
}

// Visit implements ast.Visitor.
func (p *arithmeticPatcher) Visit(node *ast.Node) {
	if p.err != nil {
		return
	}

	switch n := (*node).(type) {
	case *ast.IntegerNode:
		ast.Patch(node, &ast.FloatNode{Value: float64(n.Value)})

	case *ast.FloatNode:

	case *ast.IdentifierNode:
		if _, ok := constants[n.Value]; !ok && n.Value != powFunc {
			p.reject(n.Value)
		}

	case *ast.UnaryNode:
		if n.Operator != "-" && n.Operator != "+" {
			p.reject(n.Operator)
		}

	case *ast.BinaryNode:
		switch n.Operator {
		case "+", "-", "*", "/":
		case "**":
			ast.Patch(node, &ast.CallNode{
				Callee:    &ast.IdentifierNode{Value: powFunc},
				Arguments: []ast.Node{n.Left, n.Right},
			})
		default:
			p.reject(n.Operator)
		}

	case *ast.CallNode:
		if id, ok := n.Callee.(*ast.IdentifierNode); !ok || id.Value != powFunc {
			p.reject("call")
		}

	default:
		p.reject(fmt.Sprintf("%T", *node))
	}
}

func (p *arithmeticPatcher) reject(token string) {
	p.err = ErrArithmetic.With(slog.String("token", token))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}

// FormatResult renders an arbitrary simplifier output for diagnostics.
func FormatResult(v any) string {
	if f, ok := toFloat(v); ok {
		return FormatReal(f)
	}

	if v == nil {
		return "nil"
	}

	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}

	return "?"
}
