package equation

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"math"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Failure records an isolated arithmetic failure for one input value.
type Failure struct {
	Index int
	Value float64
	Err   error
}

// Error implements the error interface.
func (f Failure) Error() string {
	return fmt.Sprintf("at %s: %v", FormatReal(f.Value), f.Err)
}

// Unwrap returns the underlying evaluation error.
func (f Failure) Unwrap() error { return f.Err }

// Result holds the outputs of a batch evaluation in input order.
//
// An input whose evaluation failed with an arithmetic error has a NaN output
// and a corresponding entry in Failures.
type Result struct {
	Inputs   []float64
	Outputs  []float64
	Failures []Failure
}

// Len returns the number of evaluated inputs.
func (r Result) Len() int { return len(r.Outputs) }

// Value returns the output as a bare float64 when exactly one input was
// evaluated, and as a []float64 otherwise.
func (r Result) Value() any {
	if v, ok := r.Scalar(); ok {
		return v
	}

	return slices.Clone(r.Outputs)
}

// Scalar returns the only output, if there is exactly one.
func (r Result) Scalar() (float64, bool) {
	if len(r.Outputs) != 1 {
		return math.NaN(), false
	}

	return r.Outputs[0], true
}

// All returns an iterator over input/output pairs in input order.
func (r Result) All() iter.Seq2[float64, float64] {
	return func(yield func(float64, float64) bool) {
		for i, y := range r.Outputs {
			if !yield(r.Inputs[i], y) {
				return
			}
		}
	}
}

// Err returns the isolated failures joined into one error, or nil.
func (r Result) Err() error {
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}

	return errors.Join(errs...)
}

// Evaluate evaluates the expression at every value, preserving input order.
//
// An arithmetic failure is isolated to its value: the output is NaN and the
// failure is recorded in the result. Any other failure aborts the batch and
// is returned. With [WithWorkers] above 1, values are evaluated
// concurrently; the outputs are identical to a sequential evaluation.
func (e *Expression) Evaluate(ctx context.Context, values []float64) (Result, error) {
	res := Result{
		Inputs:  slices.Clone(values),
		Outputs: make([]float64, len(values)),
	}

	var mu sync.Mutex

	record := func(i int, v float64) error {
		y, err := e.At(v)
		if err == nil {
			res.Outputs[i] = y

			return nil
		}

		if KindOf(err) != KindArithmetic {
			return withAttrs(err, slog.String(e.variable, FormatReal(v)))
		}

		res.Outputs[i] = math.NaN()

		e.log.Warn("evaluation failed",
			slog.String("source", e.source),
			slog.String(e.variable, FormatReal(v)),
			slog.Any("error", err),
		)

		mu.Lock()
		res.Failures = append(res.Failures, Failure{Index: i, Value: v, Err: err})
		mu.Unlock()

		return nil
	}

	var err error
	if e.workers > 1 && len(values) > 1 {
		err = e.evaluateConcurrent(ctx, values, record)
	} else {
		err = e.evaluateSequential(ctx, values, record)
	}

	if err != nil {
		return Result{}, err
	}

	slices.SortFunc(res.Failures, func(a, b Failure) int { return a.Index - b.Index })

	e.log.Debug("evaluated batch",
		slog.String("source", e.source),
		slog.Int("values", len(values)),
		slog.Int("failures", len(res.Failures)),
		slog.Int("workers", e.workers),
	)

	return res, nil
}

func (e *Expression) evaluateSequential(
	ctx context.Context,
	values []float64,
	record func(int, float64) error,
) error {
	for i, v := range values {
		if err := ctx.Err(); err != nil {
			return context.Cause(ctx)
		}

		if err := record(i, v); err != nil {
			return err
		}
	}

	return nil
}

func (e *Expression) evaluateConcurrent(
	ctx context.Context,
	values []float64,
	record func(int, float64) error,
) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, v := range values {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return context.Cause(gctx)
			}

			return record(i, v)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return context.Cause(ctx)
	}

	return nil
}

// Solve parses text once and evaluates it over every value of d.
//
// The result holds a single output when d is a [Point], and one output per
// sample otherwise. The minimum level of logged events is set with
// [WithLogLevel].
func Solve(ctx context.Context, text string, d Domain, opts ...Option) (Result, error) {
	values, err := d.Values()
	if err != nil {
		return Result{}, err
	}

	e, err := Parse(text, opts...)
	if err != nil {
		return Result{}, err
	}

	return e.Evaluate(ctx, values)
}
