package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	
	"github.com/goccy/go-yaml"

	"github.com/ardnew/equatic/equation"
)

// Real is a float64 that encodes non-finite values as the strings "Inf",
// "-Inf", and "NaN" in JSON.
type Real float64

// MarshalJSON implements [json.Marshaler].
func (r Real) MarshalJSON() ([]byte, error) {
	v := float64(r)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return []byte(strconv.Quote(equation.FormatReal(v))), nil
	}

	return []byte(strconv.FormatFloat(v, 'g', -1, 64)), nil
}

// UnmarshalJSON implements [json.Unmarshaler].
func (r *Real) UnmarshalJSON(b []byte) error {
	s := string(b)
	if u, err := strconv.Unquote(s); err == nil {
		s = u
	}

	v, err := equation.ParseReal(s)
	if err != nil {
		return err
	}

	*r = Real(v)

	return nil
}

// Point is one evaluated input/output pair.
type Point struct {
	X Real `json:"x" yaml:"x"`
	Y Real `json:"y" yaml:"y"`
}

// Failed describes an input whose evaluation failed.
type Failed struct {
	Index int    `json:"index" yaml:"index"`
	X     Real   `json:"x"     yaml:"x"`
	Kind  string `json:"kind"  yaml:"kind"`
	Error string `json:"error" yaml:"error"`
}

// Record is the structured output of one evaluated expression.
type Record struct {
	Expression string   `json:"expression"         yaml:"expression"`
	Domain     string   `json:"domain"             yaml:"domain"`
	Points     []Point  `json:"points"             yaml:"points"`
	Failures   []Failed `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// MakeRecord converts the result of evaluating text over d.
func MakeRecord(text string, d equation.Domain, res equation.Result) Record {
	rec := Record{
		Expression: text,
		Domain:     d.String(),
		Points:     make([]Point, 0, res.Len()),
	}

	for x, y := range res.All() {
		rec.Points = append(rec.Points, Point{X: Real(x), Y: Real(y)})
	}

	for _, f := range res.Failures {
		rec.Failures = append(rec.Failures, Failed{
			Index: f.Index,
			X:     Real(f.Value),
			Kind:  equation.KindOf(f.Err).String(),
			Error: f.Err.Error(),
		})
	}

	return rec
}

// WriteRecords writes records to w in the named format: "text", "json", or
// "yaml". A single record is written as an object, several as a list.
func WriteRecords(w io.Writer, format string, records []Record) error {
	var err error

	switch format {
	case "", "text":
		err = writeText(w, records)

	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		err = enc.Encode(single(records))
		if err != nil {
			return ErrMarshal.With(slog.String("format", format)).Wrap(err)
		}

	case "yaml":
		var b []byte

		b, err = yaml.Marshal(single(records))
		if err != nil {
			return ErrMarshal.With(slog.String("format", format)).Wrap(err)
		}

		_, err = w.Write(b)

	default:
		return ErrOutput.With(slog.String("format", format))
	}

	if err != nil {
		return ErrOutput.With(slog.String("format", format)).Wrap(err)
	}

	return nil
}

func single(records []Record) any {
	if len(records) == 1 {
		return records[0]
	}

	return records
}

// writeText prints a bare value for a single-point record and tab-separated
// "x y" rows otherwise. Several records are each preceded by a comment line
// naming the expression.
func writeText(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)

	for i, rec := range records {
		if len(records) > 1 {
			if i > 0 {
				fmt.Fprintln(bw)
			}

			fmt.Fprintf(bw, "%s %s\n", commentPrefix, rec.Expression)
		}

		if len(rec.Points) == 1 {
			fmt.Fprintln(bw, equation.FormatReal(float64(rec.Points[0].Y)))

			continue
		}

		for _, p := range rec.Points {
			fmt.Fprintf(bw, "%s\t%s\n",
				equation.FormatReal(float64(p.X)),
				equation.FormatReal(float64(p.Y)),
			)
		}
	}

	return bw.Flush()
}
