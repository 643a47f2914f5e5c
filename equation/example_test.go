package equation_test

import (
	"context"
	"fmt"
	"math"

	"github.com/ardnew/equatic/equation"
)

func ExampleSolve() {
	res, err := equation.Solve(context.Background(), "x**2 - 1", equation.Point(3))
	if err != nil {
		fmt.Println(err)

		return
	}

	fmt.Println(res.Value())
	// Output: 8
}

func ExampleSolve_samples() {
	res, err := equation.Solve(context.Background(), "2*x + 1", equation.Samples(0, 2, 3))
	if err != nil {
		fmt.Println(err)

		return
	}

	for x, y := range res.All() {
		fmt.Println(x, y)
	}
	// Output:
	// 0 1
	// 1 3
	// 2 5
}

func ExampleParse() {
	e, err := equation.Parse("exp(x) + sqrt(x)")
	if err != nil {
		fmt.Println(err)

		return
	}

	y, err := e.At(4)
	if err != nil {
		fmt.Println(err)

		return
	}

	fmt.Printf("%.6f\n", y)
	// Output: 56.598150
}

func ExampleRegistry_Register() {
	reg := equation.DefaultRegistry()
	if err := reg.Register("reciprocal", func(x float64) float64 { return 1 / x }); err != nil {
		fmt.Println(err)

		return
	}

	res, err := equation.Solve(context.Background(), "reciprocal(x)", equation.Point(2),
		equation.WithRegistry(reg))
	if err != nil {
		fmt.Println(err)

		return
	}

	fmt.Println(res.Value())
	// Output: 0.5
}

func ExampleKindOf() {
	_, err := equation.Solve(context.Background(), "gamma(x)", equation.Samples(-1, 1, 3))
	fmt.Println(err)

	res, err := equation.Solve(context.Background(), "gamma(x)", equation.Samples(0, 2, 3))
	fmt.Println(err, math.IsNaN(res.Outputs[0]), equation.KindOf(res.Failures[0].Err))

	_, err = equation.Solve(context.Background(), "log(x)", equation.Point(-1))
	fmt.Println(equation.KindOf(err))
	// Output:
	// <nil>
	// <nil> true arithmetic error
	// value error
}
