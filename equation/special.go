package equation

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mathext"
)

const (
	eulerGamma = 0.57721566490153286060651209008240243

	// zetaPrimeMinusOne is ζ'(-1) = 1/12 - log A, with A the
	// Glaisher-Kinkelin constant.
	zetaPrimeMinusOne = -0.16542114370045092921391966024278064

	// barnesShift is the argument above which the asymptotic expansion of
	// log G is accurate to double precision.
	barnesShift = 20

	// barnesOverflow is the argument below which |G| exceeds the float64
	// range for every non-integer argument.
	barnesOverflow = -200

	// maxExactDoubleFactorial bounds the argument for which n!! is computed
	// by direct multiplication; larger arguments overflow anyway.
	maxExactDoubleFactorial = 400
)

// doubleFactorial extends n!! to the real line by
//
//	x!! = 2^(x/2) (π/2)^((cos(πx)-1)/4) Γ(x/2+1)
func doubleFactorial(x float64) (float64, error) {
	if x >= 0 && x == math.Trunc(x) && x <= maxExactDoubleFactorial {
		r := 1.0
		for k := x; k > 1; k -= 2 {
			r *= k
		}

		return r, nil
	}

	if isNonPositiveInteger(x/2 + 1) {
		return math.NaN(), pole(x)
	}

	return math.Pow(2, x/2) *
		math.Pow(math.Pi/2, (math.Cos(math.Pi*x)-1)/4) *
		math.Gamma(x/2+1), nil
}

// lnBarnesG returns log|G(z)| and the sign of G(z), for z not a non-positive
// integer. The argument is shifted above barnesShift with the recurrence
// G(z+1) = Γ(z) G(z) before applying the asymptotic expansion of log G.
// Below barnesOverflow the magnitude is +Inf and only the sign is computed.
func lnBarnesG(z float64) (float64, float64) {
	if z < barnesOverflow {
		return math.Inf(1), barnesSign(z)
	}

	acc, sign := 0.0, 1.0

	for z < barnesShift {
		lg, s := math.Lgamma(z)
		acc += lg
		sign *= float64(s)
		z++
	}

	u := z - 1
	lu := math.Log(u)
	u2 := u * u
	u4 := u2 * u2

	tail := -1/(240*u2) + 1/(1008*u4) - 1/(1440*u4*u2) + 1/(1056*u4*u4)
	lg := u2/2*lu - 0.75*u2 + u/2*math.Log(2*math.Pi) - lu/12 +
		zetaPrimeMinusOne + tail

	return lg - acc, sign
}

// barnesSign returns the sign of G(z) for a negative non-integer z. With
// n = floor(-z), the recurrence multiplies n+1 gamma values whose signs
// give (-1)^((n+1)(n+2)/2), which depends only on n mod 4.
func barnesSign(z float64) float64 {
	switch math.Mod(math.Floor(-z), 4) {
	case 0, 1:
		return -1
	default:
		return 1
	}
}

// barnesG is the Barnes G-function, G(n) = 0! 1! ... (n-2)!.
func barnesG(x float64) (float64, error) {
	if math.IsNaN(x) {
		return x, ErrArithmetic.With(slog.Float64("argument", x))
	}

	if isNonPositiveInteger(x) {
		return 0, nil
	}

	if math.IsInf(x, 1) {
		return x, nil
	}

	lg, sign := lnBarnesG(x)

	return sign * math.Exp(lg), nil
}

// superFactorial is sf(x) = G(x+2), the product of the first x factorials.
func superFactorial(x float64) (float64, error) {
	return barnesG(x + 2)
}

// hyperFactorial is H(x) = Γ(x+1)^x / G(x+1), which equals 1^1 2^2 ... n^n
// at the integers.
func hyperFactorial(x float64) (float64, error) {
	if math.IsNaN(x) {
		return x, ErrArithmetic.With(slog.Float64("argument", x))
	}

	if isNonPositiveInteger(x + 1) {
		return math.NaN(), pole(x)
	}

	lgam, gsign := math.Lgamma(x + 1)
	if gsign < 0 && x != math.Trunc(x) {
		return math.NaN(), ErrComplexResult.With(slog.Float64("argument", x))
	}

	lg, sign := lnBarnesG(x + 1)

	return sign * math.Exp(x*lgam-lg), nil
}

// digamma is ψ(x) = Γ'(x)/Γ(x).
func digamma(x float64) (float64, error) {
	switch {
	case math.IsNaN(x):
		return x, ErrArithmetic.With(slog.Float64("argument", x))

	case isNonPositiveInteger(x):
		return math.NaN(), pole(x)
	}

	return mathext.Digamma(x), nil
}

// harmonic extends the harmonic numbers H(n) = 1 + 1/2 + ... + 1/n by
// H(x) = ψ(x+1) + γ.
func harmonic(x float64) (float64, error) {
	if x == 0 {
		return 0, nil
	}

	r, err := digamma(x + 1)
	if err != nil {
		return r, err
	}

	return r + eulerGamma, nil
}
