package cmd

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/equatic/equation"
	"github.com/ardnew/equatic/log"
)

// The domain used when neither --at nor --range is given.
const (
	DefaultLo = 0.1
	DefaultHi = 10.0
)

// commentPrefix starts a line that is ignored in expression source files.
const commentPrefix = "#"

// Eval evaluates an expression over a domain of the free variable.
type Eval struct {
	Expr      []string  `arg:""         help:"Expression to evaluate (arguments are joined with spaces)" name:"expr"            optional:""`
	At        string    `               help:"Evaluate at a single value"                                placeholder:"V"        xor:"domain"`
	Range     []float64 `               help:"Evaluate over LO,HI[,N] (N defaults to ${samples})"        placeholder:"LO,HI[,N]" xor:"domain"`
	Output    string    `default:"text" enum:"text,json,yaml"                                            help:"Output format."   short:"o"`
	Workers   int       `default:"1"    help:"Number of values evaluated concurrently"                   short:"w"`
	Precision uint      `default:"0"    help:"Mantissa bits for arbitrary-precision folding (0 uses float64)" short:"p"`
	Variable  string    `default:"x"    help:"Free variable symbol"`

	stdout io.Writer
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	exprs, err := e.expressions(ctx)
	if err != nil {
		return err
	}

	if len(exprs) == 0 {
		return ErrNoInput
	}

	d, err := e.domain()
	if err != nil {
		return err
	}

	opts := e.options(ctx)
	records := make([]Record, 0, len(exprs))

	for _, text := range exprs {
		res, err := equation.Solve(ctx, text, d, opts...)
		if err != nil {
			return err
		}

		records = append(records, MakeRecord(text, d, res))
	}

	log.DebugContext(ctx, "evaluated expressions",
		slog.Int("expressions", len(records)),
		slog.String("domain", d.String()),
		slog.String("output", e.Output),
	)

	return WriteRecords(e.writer(), e.Output, records)
}

func (e *Eval) writer() io.Writer {
	if e.stdout != nil {
		return e.stdout
	}

	return os.Stdout
}

// options returns the equation options selected by the command's flags.
func (e *Eval) options(ctx context.Context) []equation.Option {
	opts := []equation.Option{
		equation.WithRegistry(RegistryFrom(ctx)),
		equation.WithLogger(log.Default()),
		equation.WithPrecision(e.Precision),
		equation.WithWorkers(e.Workers),
	}

	if e.Variable != "" {
		opts = append(opts, equation.WithVariable(e.Variable))
	}

	return opts
}

// domain returns the values selected by --at or --range, or the default
// sampling of [DefaultLo, DefaultHi].
func (e *Eval) domain() (equation.Domain, error) {
	switch {
	case e.At != "":
		v, err := equation.ParseReal(e.At)
		if err != nil {
			return equation.Domain{}, ErrDomain.
				With(slog.String("at", e.At)).
				Wrap(err)
		}

		return equation.Point(v), nil

	case len(e.Range) > 0:
		d, err := equation.ParseDomain(e.Range)
		if err != nil {
			return equation.Domain{}, ErrDomain.
				With(slog.Any("range", e.Range)).
				Wrap(err)
		}

		return d, nil
	}

	return equation.Samples(DefaultLo, DefaultHi, equation.DefaultSamples), nil
}

// expressions returns the expression given as arguments followed by every
// expression read from the source files.
func (e *Eval) expressions(ctx context.Context) ([]string, error) {
	var exprs []string

	if text := strings.TrimSpace(strings.Join(e.Expr, " ")); text != "" {
		exprs = append(exprs, text)
	}

	src := sourceFilesFrom(ctx)
	if src == nil || (src.IsZero() && src.Stdin() == nil) {
		return exprs, nil
	}

	read, err := ReadExpressions(src)
	if err != nil {
		return nil, err
	}

	return append(exprs, read...), nil
}

// ReadExpressions returns the non-empty lines of r that are not comments.
func ReadExpressions(r io.Reader) ([]string, error) {
	var exprs []string

	scan := bufio.NewScanner(r)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}

		exprs = append(exprs, line)
	}

	return exprs, scan.Err()
}
