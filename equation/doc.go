// Package equation evaluates real-valued expressions of one free variable
// without handing the expression text to a general-purpose evaluator.
//
// An expression is processed in stages:
//
//   - [Sanitize] rejects injection tokens and anything that is not a number,
//     an operator, a parenthesis, the variable, or a registered function.
//   - [MapDepth] stamps every character with its nesting level and masks
//     each nested group with a [Marker].
//   - [BuildLayers] groups the masked characters by level into segments and
//     links each marker to the segment that resolves it.
//   - [Expression.At] resolves the segments deepest first for one value of
//     the variable, applying registered functions and folding arithmetic with
//     a [Simplifier].
//   - [Expression.Evaluate] and [Solve] map the evaluation over many values.
//
// # Basic Usage
//
//	res, err := equation.Solve(ctx, "sin(x)**2 + cos(x)**2", equation.Interval(0, 1))
//	if err != nil {
//		return err
//	}
//	ys := res.Value().([]float64)
//
// A parsed [Expression] can be evaluated repeatedly:
//
//	e, err := equation.Parse("log(x) + 1")
//	y, err := e.At(2)
//
// # Functions
//
// Functions of one real argument are looked up in a [Registry]. The package
// default registry holds the catalog listed by [DefaultRegistry] and can be
// extended with [AddFunction]; a private registry is selected with
// [WithRegistry].
//
// # Errors
//
// Every failure is an [*Error] with a [Kind]. Within a batch, an
// arithmetic failure (a pole, a division of zero by zero) is isolated to its
// value; every other kind aborts the batch.
package equation
