package equation

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestCatalogValues(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()

	tests := []struct {
		fn   string
		x    float64
		want float64
		tol  float64
	}{
		{fn: "sinc", x: 0, want: 1},
		{fn: "sinc", x: math.Pi / 2, want: 2 / math.Pi, tol: 1e-15},
		{fn: "cospi", x: 0.5, want: 0},
		{fn: "cospi", x: 1, want: -1},
		{fn: "sinpi", x: 3, want: 0},
		{fn: "sec", x: 0, want: 1},
		{fn: "atan", x: 1, want: math.Pi / 4, tol: 1e-15},
		{fn: "tanh", x: 0.5, want: math.Tanh(0.5)},
		{fn: "log10", x: 1000, want: 3, tol: 1e-15},
		{fn: "log", x: 0, want: math.Inf(-1)},
		{fn: "fac", x: 5, want: 120, tol: 1e-12},
		{fn: "gamma", x: 5, want: 24, tol: 1e-12},
		{fn: "gamma", x: 0.5, want: math.Sqrt(math.Pi), tol: 1e-14},
		{fn: "rgamma", x: 0, want: 0},
		{fn: "rgamma", x: -3, want: 0},
		{fn: "rgamma", x: 4, want: 1.0 / 6, tol: 1e-15},
		{fn: "loggamma", x: 10, want: math.Log(362880), tol: 1e-12},
		{fn: "fac2", x: 5, want: 15},
		{fn: "fac2", x: 6, want: 48},
		{fn: "fac2", x: 0, want: 1},
		{fn: "fac2", x: -1, want: 1, tol: 1e-12},
		{fn: "barnesg", x: 1, want: 1, tol: 1e-10},
		{fn: "barnesg", x: 4, want: 2, tol: 1e-10},
		{fn: "barnesg", x: 5, want: 12, tol: 1e-9},
		{fn: "barnesg", x: 6, want: 288, tol: 1e-7},
		{fn: "barnesg", x: 0, want: 0},
		{fn: "barnesg", x: -2, want: 0},
		{fn: "superfac", x: 3, want: 12, tol: 1e-9},
		{fn: "hyperfac", x: 3, want: 108, tol: 1e-8},
		{fn: "hyperfac", x: 0, want: 1, tol: 1e-12},
		{fn: "psi", x: 1, want: -eulerGamma, tol: 1e-12},
		{fn: "psi", x: 0.5, want: -eulerGamma - 2*math.Ln2, tol: 1e-12},
		{fn: "psi", x: -0.5, want: 2 - eulerGamma - 2*math.Ln2, tol: 1e-11},
		{fn: "harmonic", x: 0, want: 0},
		{fn: "harmonic", x: 4, want: 25.0 / 12, tol: 1e-12},
		{fn: "npdf", x: 0, want: 1 / math.Sqrt(2*math.Pi), tol: 1e-15},
		{fn: "ncdf", x: 0, want: 0.5, tol: 1e-15},
		{fn: "erf", x: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.fn, func(t *testing.T) {
			t.Parallel()

			got, err := reg.Call(tt.fn, tt.x)
			if err != nil {
				t.Fatalf("%s(%v) error = %v", tt.fn, tt.x, err)
			}

			if got != tt.want && math.Abs(got-tt.want) > tt.tol*math.Max(1, math.Abs(tt.want)) {
				t.Errorf("%s(%v) = %v, want %v", tt.fn, tt.x, got, tt.want)
			}
		})
	}
}

func TestCatalogErrors(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()

	tests := []struct {
		fn   string
		x    float64
		want error
	}{
		{fn: "log", x: -1, want: ErrComplexResult},
		{fn: "sqrt", x: -4, want: ErrComplexResult},
		{fn: "asin", x: 2, want: ErrComplexResult},
		{fn: "acosh", x: 0.5, want: ErrComplexResult},
		{fn: "loggamma", x: -0.5, want: ErrComplexResult},
		{fn: "hyperfac", x: -1.5, want: ErrComplexResult},
		{fn: "gamma", x: 0, want: ErrArithmetic},
		{fn: "gamma", x: -2, want: ErrArithmetic},
		{fn: "fac", x: -1, want: ErrArithmetic},
		{fn: "fac2", x: -2, want: ErrArithmetic},
		{fn: "psi", x: -3, want: ErrArithmetic},
		{fn: "loggamma", x: 0, want: ErrArithmetic},
	}

	for _, tt := range tests {
		t.Run(tt.fn, func(t *testing.T) {
			t.Parallel()

			if _, err := reg.Call(tt.fn, tt.x); !errors.Is(err, tt.want) {
				t.Errorf("%s(%v) error = %v, want %v", tt.fn, tt.x, err, tt.want)
			}
		})
	}
}

func TestBarnesGLargeNegative(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()

	tests := []struct {
		fn   string
		x    float64
		want float64
	}{
		{fn: "barnesg", x: -4000000000000000.5, want: math.Inf(-1)},
		{fn: "barnesg", x: -1e300, want: 0},
		{fn: "superfac", x: -1000000.5, want: math.Inf(1)},
		{fn: "hyperfac", x: -100000000.5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.fn, func(t *testing.T) {
			t.Parallel()

			type result struct {
				v   float64
				err error
			}

			done := make(chan result, 1)

			go func() {
				v, err := reg.Call(tt.fn, tt.x)
				done <- result{v, err}
			}()

			select {
			case r := <-done:
				if r.err != nil {
					t.Fatalf("%s(%v) error = %v", tt.fn, tt.x, r.err)
				}

				if r.v != tt.want {
					t.Errorf("%s(%v) = %v, want %v", tt.fn, tt.x, r.v, tt.want)
				}
			case <-time.After(time.Second):
				t.Fatalf("%s(%v) did not return", tt.fn, tt.x)
			}
		})
	}
}

func TestBarnesSign(t *testing.T) {
	t.Parallel()

	for _, frac := range []float64{0.5, 0.25, 0.75} {
		for n := 0.0; n < 150; n++ {
			z := -n - frac

			if _, want := lnBarnesG(z); barnesSign(z) != want {
				t.Errorf("barnesSign(%v) = %v, want %v", z, barnesSign(z), want)
			}
		}
	}
}
