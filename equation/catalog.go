package equation

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// catalog returns the default named functions.
func catalog() map[string]Func {
	return map[string]Func{
		// trigonometric
		"asin":  realOn(math.Asin, func(x float64) bool { return math.Abs(x) <= 1 }),
		"acos":  realOn(math.Acos, func(x float64) bool { return math.Abs(x) <= 1 }),
		"atan":  Unary(math.Atan),
		"cospi": Unary(cospi),
		"sinpi": Unary(sinpi),
		"sinc":  Unary(sinc),
		"cosec": Unary(func(x float64) float64 { return 1 / math.Sin(x) }),
		"sec":   Unary(func(x float64) float64 { return 1 / math.Cos(x) }),
		"cot":   Unary(func(x float64) float64 { return 1 / math.Tan(x) }),
		"sin":   Unary(math.Sin),
		"cos":   Unary(math.Cos),
		"tan":   Unary(math.Tan),

		// hyperbolic
		"asinh":  Unary(math.Asinh),
		"acosh":  realOn(math.Acosh, func(x float64) bool { return x >= 1 }),
		"atanh":  realOn(math.Atanh, func(x float64) bool { return math.Abs(x) <= 1 }),
		"sinh":   Unary(math.Sinh),
		"cosh":   Unary(math.Cosh),
		"tanh":   Unary(math.Tanh),
		"cosech": Unary(func(x float64) float64 { return 1 / math.Sinh(x) }),
		"sech":   Unary(func(x float64) float64 { return 1 / math.Cosh(x) }),
		"coth":   Unary(func(x float64) float64 { return 1 / math.Tanh(x) }),

		// logarithmic and exponential
		"log10": realOn(math.Log10, nonNegative),
		"exp":   Unary(math.Exp),
		"log":   realOn(math.Log, nonNegative),
		"expm1": Unary(math.Expm1),

		// roots
		"sqrt": realOn(math.Sqrt, nonNegative),
		"cbrt": Unary(math.Cbrt),

		// gamma family
		"fac":      gammaShift(1),
		"fac2":     doubleFactorial,
		"gamma":    gammaShift(0),
		"rgamma":   rgamma,
		"loggamma": logGamma,
		"superfac": superFactorial,
		"hyperfac": hyperFactorial,
		"barnesg":  barnesG,
		"psi":      digamma,
		"harmonic": harmonic,

		// statistical and special
		"npdf": Unary(npdf),
		"ncdf": Unary(ncdf),
		"erf":  Unary(math.Erf),
		"erfc": Unary(math.Erfc),
	}
}

// realOn restricts f to the part of its domain where the result is real.
// Outside of it the extension is complex.
func realOn(f func(float64) float64, inDomain func(float64) bool) Func {
	g := Unary(f)

	return func(x float64) (float64, error) {
		if !math.IsNaN(x) && !inDomain(x) {
			return math.NaN(), ErrComplexResult.With(slog.Float64("argument", x))
		}

		return g(x)
	}
}

func nonNegative(x float64) bool { return x >= 0 }

func isNonPositiveInteger(x float64) bool {
	return x <= 0 && x == math.Trunc(x)
}

// pole reports that a function is undefined at x.
func pole(x float64) error {
	return ErrArithmetic.With(
		slog.String("reason", "pole"),
		slog.Float64("argument", x),
	)
}

func cospi(x float64) float64 {
	// Exact zeros at half-integers.
	if r := math.Mod(math.Abs(x), 1); r == 0.5 {
		return 0
	}

	return math.Cos(math.Pi * x)
}

func sinpi(x float64) float64 {
	if x == math.Trunc(x) && !math.IsInf(x, 0) {
		return 0
	}

	return math.Sin(math.Pi * x)
}

// sinc is the unnormalized cardinal sine, sin(x)/x with sinc(0) = 1.
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}

	return math.Sin(x) / x
}

func npdf(x float64) float64 { return distuv.UnitNormal.Prob(x) }

func ncdf(x float64) float64 { return distuv.UnitNormal.CDF(x) }

// gammaShift returns Γ(x+k).
func gammaShift(k float64) Func {
	return func(x float64) (float64, error) {
		if isNonPositiveInteger(x + k) {
			return math.NaN(), pole(x)
		}

		return math.Gamma(x + k), nil
	}
}

// rgamma is the reciprocal gamma function, which is entire.
func rgamma(x float64) (float64, error) {
	if isNonPositiveInteger(x) {
		return 0, nil
	}

	return 1 / math.Gamma(x), nil
}

// logGamma is log Γ(x) on the part of the real line where Γ(x) > 0.
func logGamma(x float64) (float64, error) {
	if isNonPositiveInteger(x) {
		return math.NaN(), pole(x)
	}

	lg, sign := math.Lgamma(x)
	if sign < 0 {
		return math.NaN(), ErrComplexResult.With(slog.Float64("argument", x))
	}

	return lg, nil
}
