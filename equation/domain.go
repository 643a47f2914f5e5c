package equation

import (
	"log/slog"
	"math"
	"strconv"
)

// DefaultSamples is the number of values an [Interval] is sampled at.
const DefaultSamples = 1000

// Domain is the set of values an expression is evaluated at: a single point
// or an evenly spaced sampling of a closed interval.
type Domain struct {
	lo, hi float64
	n      int
}

// Point returns the domain containing only v.
func Point(v float64) Domain { return Domain{lo: v, hi: v, n: 1} }

// Interval returns [DefaultSamples] evenly spaced values from lo to hi,
// including both ends.
func Interval(lo, hi float64) Domain { return Domain{lo: lo, hi: hi, n: DefaultSamples} }

// Samples returns n evenly spaced values from lo to hi, including both ends.
func Samples(lo, hi float64, n int) Domain { return Domain{lo: lo, hi: hi, n: n} }

// ParseDomain interprets a scalar, a two-element range, or a three-element
// range with sample count.
func ParseDomain(v []float64) (Domain, error) {
	switch len(v) {
	case 1:
		return Point(v[0]), nil

	case 2:
		return Interval(v[0], v[1]), nil

	case 3:
		n := v[2]
		if n < 1 || n != math.Trunc(n) || n > math.MaxInt32 {
			return Domain{}, ErrInvalidDomain.With(
				slog.String("samples", strconv.FormatFloat(n, 'g', -1, 64)),
			)
		}

		return Samples(v[0], v[1], int(n)), nil
	}

	return Domain{}, ErrInvalidDomain.With(slog.Int("elements", len(v)))
}

// Lo returns the first value of d.
func (d Domain) Lo() float64 { return d.lo }

// Hi returns the last value of d.
func (d Domain) Hi() float64 { return d.hi }

// Len returns the number of values in d.
func (d Domain) Len() int { return d.n }

// IsPoint reports whether d holds exactly one value.
func (d Domain) IsPoint() bool { return d.n == 1 }

// Values returns the values of d in increasing sample order.
func (d Domain) Values() ([]float64, error) {
	if d.n < 1 {
		return nil, ErrInvalidDomain.With(slog.Int("samples", d.n))
	}

	if d.n == 1 {
		return []float64{d.lo}, nil
	}

	vs := make([]float64, d.n)
	step := (d.hi - d.lo) / float64(d.n-1)

	for i := range vs {
		vs[i] = d.lo + float64(i)*step
	}

	vs[d.n-1] = d.hi

	return vs, nil
}

// String returns the domain in the form accepted on the command line.
func (d Domain) String() string {
	if d.n == 1 {
		return FormatReal(d.lo)
	}

	s := FormatReal(d.lo) + "," + FormatReal(d.hi)
	if d.n != DefaultSamples {
		s += "," + strconv.Itoa(d.n)
	}

	return s
}
