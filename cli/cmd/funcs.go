package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sahilm/fuzzy"
)

// Funcs lists the registered function names.
type Funcs struct {
	Pattern string `arg:"" help:"Fuzzy filter applied to function names" optional:""`

	stdout io.Writer
}

// Run executes the funcs command.
func (f *Funcs) Run(ctx context.Context) error {
	w := f.stdout
	if w == nil {
		w = os.Stdout
	}

	for _, name := range MatchFunctions(RegistryFrom(ctx).Names(), f.Pattern) {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return ErrOutput.Wrap(err)
		}
	}

	return nil
}

// MatchFunctions returns the names matching pattern, best match first.
// An empty pattern returns names unchanged.
func MatchFunctions(names []string, pattern string) []string {
	if pattern == "" {
		return names
	}

	matches := fuzzy.Find(pattern, names)
	out := make([]string, len(matches))

	for i, m := range matches {
		out[i] = m.Str
	}

	return out
}
