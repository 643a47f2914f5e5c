package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/equatic/equation"
)

func runEval(t *testing.T, ctx context.Context, e *Eval) (string, error) {
	t.Helper()

	var buf bytes.Buffer

	e.stdout = &buf
	if e.Output == "" {
		e.Output = "text"
	}

	err := e.Run(ctx)

	return buf.String(), err
}

func TestEvalText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		eval Eval
		want string
	}{
		{
			name: "point",
			eval: Eval{Expr: []string{"x**2", "-", "1"}, At: "3"},
			want: "8\n",
		},
		{
			name: "range",
			eval: Eval{Expr: []string{"2*x"}, Range: []float64{0, 1, 3}},
			want: "0\t0\n0.5\t1\n1\t2\n",
		},
		{
			name: "failure_is_nan",
			eval: Eval{Expr: []string{"x/x"}, Range: []float64{-1, 1, 3}},
			want: "-1\t1\n0\tNaN\n1\t1\n",
		},
		{
			name: "division_by_zero",
			eval: Eval{Expr: []string{"1/x"}, Range: []float64{0, 1, 2}},
			want: "0\tInf\n1\t1\n",
		},
		{
			name: "variable",
			eval: Eval{Expr: []string{"t+1"}, At: "1", Variable: "t"},
			want: "2\n",
		},
		{
			name: "precise",
			eval: Eval{Expr: []string{"x+0.2"}, At: "0.1", Precision: 128},
			want: "0.3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := runEval(t, context.Background(), &tt.eval)
			if err != nil {
				t.Fatalf("Eval.Run() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("Eval.Run() output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvalDefaultDomain(t *testing.T) {
	t.Parallel()

	got, err := runEval(t, context.Background(), &Eval{Expr: []string{"x"}})
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != equation.DefaultSamples {
		t.Fatalf("got %d rows, want %d", len(lines), equation.DefaultSamples)
	}

	if lines[0] != "0.1\t0.1" || lines[len(lines)-1] != "10\t10" {
		t.Errorf("rows span %q..%q, want 0.1..10", lines[0], lines[len(lines)-1])
	}
}

func TestEvalJSON(t *testing.T) {
	t.Parallel()

	e := Eval{Expr: []string{"x/x"}, Range: []float64{0, 1, 2}, Output: "json", Workers: 2}

	got, err := runEval(t, context.Background(), &e)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(got, `"y": "NaN"`) {
		t.Errorf("JSON output does not encode NaN as a string:\n%s", got)
	}

	var rec Record
	if err := json.Unmarshal([]byte(got), &rec); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, got)
	}

	if rec.Expression != "x/x" || rec.Domain != "0,1,2" {
		t.Errorf("record = %+v", rec)
	}

	if len(rec.Points) != 2 || !math.IsNaN(float64(rec.Points[0].Y)) || rec.Points[1].Y != 1 {
		t.Errorf("points = %+v", rec.Points)
	}

	if len(rec.Failures) != 1 || rec.Failures[0].Index != 0 || rec.Failures[0].Kind != "arithmetic error" {
		t.Errorf("failures = %+v", rec.Failures)
	}
}

func TestEvalYAML(t *testing.T) {
	t.Parallel()

	e := Eval{Expr: []string{"x**2"}, At: "4", Output: "yaml"}

	got, err := runEval(t, context.Background(), &e)
	if err != nil {
		t.Fatal(err)
	}

	var rec Record
	if err := yaml.Unmarshal([]byte(got), &rec); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, got)
	}

	if rec.Expression != "x**2" || len(rec.Points) != 1 || rec.Points[0].Y != 16 {
		t.Errorf("record = %+v", rec)
	}
}

func TestEvalSourceFiles(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "exprs.txt")
	content := "# squares\nx**2\n\n  x**3  \n"

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := WithSourceFiles(context.Background(), []string{path})

	got, err := runEval(t, ctx, &Eval{Expr: []string{"x"}, At: "2"})
	if err != nil {
		t.Fatal(err)
	}

	want := "# x\n2\n\n# x**2\n4\n\n# x**3\n8\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestEvalDefine(t *testing.T) {
	t.Parallel()

	reg := equation.DefaultRegistry()
	if err := Define(reg, []string{"sq = x**2", "quad=sq(x)*sq(x)"}); err != nil {
		t.Fatal(err)
	}

	ctx := WithRegistry(context.Background(), reg)

	got, err := runEval(t, ctx, &Eval{Expr: []string{"quad(x) + sq(3)"}, At: "2"})
	if err != nil {
		t.Fatal(err)
	}

	if got != "25\n" {
		t.Errorf("output = %q, want %q", got, "25\n")
	}
}

func TestEvalErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		eval Eval
		want error
	}{
		{"no_input", Eval{}, ErrNoInput},
		{"bad_at", Eval{Expr: []string{"x"}, At: "one"}, ErrDomain},
		{"bad_range", Eval{Expr: []string{"x"}, Range: []float64{0, 1, 2, 3}}, ErrDomain},
		{"bad_count", Eval{Expr: []string{"x"}, Range: []float64{0, 1, 0.5}}, ErrDomain},
		{"security", Eval{Expr: []string{"x;1"}, At: "1"}, equation.ErrSecurityViolation},
		{"value", Eval{Expr: []string{"log(x)"}, At: "-1"}, equation.ErrComplexResult},
		{"bad_output", Eval{Expr: []string{"x"}, At: "1", Output: "xml"}, ErrOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := runEval(t, context.Background(), &tt.eval)
			if !errors.Is(err, tt.want) {
				t.Errorf("Eval.Run() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDefineErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		defs []string
		want error
	}{
		{"missing_assign", []string{"sq"}, ErrSyntax},
		{"empty_name", []string{"=x"}, ErrSyntax},
		{"empty_expr", []string{"sq="}, ErrSyntax},
		{"bad_name", []string{"2sq=x"}, equation.ErrInvalidName},
		{"reserved", []string{"Inf=x"}, equation.ErrInvalidName},
		{"variable", []string{"x=x+1"}, equation.ErrInvalidName},
		{"self_reference", []string{"f=f(x)"}, equation.ErrUnrecognizedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Define(equation.DefaultRegistry(), tt.defs)
			if !errors.Is(err, ErrDefine) {
				t.Errorf("Define() error = %v, want %v", err, ErrDefine)
			}

			if !errors.Is(err, tt.want) {
				t.Errorf("Define() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFuncs(t *testing.T) {
	t.Parallel()

	reg := equation.NewRegistry()
	for _, name := range []string{"sin", "sinh", "cos", "asin"} {
		if err := reg.Register(name, math.Sin); err != nil {
			t.Fatal(err)
		}
	}

	ctx := WithRegistry(context.Background(), reg)

	var buf bytes.Buffer

	if err := (&Funcs{stdout: &buf}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	if got := buf.String(); got != "asin\ncos\nsin\nsinh\n" {
		t.Errorf("Funcs output = %q", got)
	}

	buf.Reset()

	if err := (&Funcs{Pattern: "sinh", stdout: &buf}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	if got := buf.String(); got != "sinh\n" {
		t.Errorf("Funcs sinh output = %q", got)
	}

	if got := MatchFunctions([]string{"a", "b"}, ""); len(got) != 2 {
		t.Errorf("MatchFunctions with empty pattern = %v", got)
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	if err := (&Version{stdout: &buf}).Run(); err != nil {
		t.Fatal(err)
	}

	if got := buf.String(); !strings.HasPrefix(got, "equatic ") || !strings.HasSuffix(got, "\n") {
		t.Errorf("Version output = %q", got)
	}
}

func TestReal(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{0, -2.5, math.Inf(1), math.Inf(-1)} {
		b, err := json.Marshal(Real(v))
		if err != nil {
			t.Fatal(err)
		}

		var r Real
		if err := json.Unmarshal(b, &r); err != nil {
			t.Fatalf("Unmarshal(%s): %v", b, err)
		}

		if float64(r) != v {
			t.Errorf("round trip of %v gave %v via %s", v, r, b)
		}
	}
}
