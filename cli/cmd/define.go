package cmd

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/equatic/equation"
)

// Define registers each NAME=EXPR definition in reg as a derived function
// f(v) = EXPR evaluated with the free variable bound to v.
//
// Definitions are applied in order, so a definition may call any function
// defined before it. A definition never observes itself or later ones.
func Define(reg *equation.Registry, defs []string, opts ...equation.Option) error {
	for _, def := range defs {
		name, text, ok := strings.Cut(def, "=")
		name, text = strings.TrimSpace(name), strings.TrimSpace(text)

		if !ok || name == "" || text == "" {
			return ErrDefine.
				With(slog.String("definition", def)).
				Wrap(ErrSyntax)
		}

		e, err := equation.Parse(text,
			append(slices.Clip(opts), equation.WithRegistry(reg))...)
		if err != nil {
			return ErrDefine.
				With(slog.String("function", name)).
				Wrap(err)
		}

		if e.Variable() == name {
			return ErrDefine.
				With(slog.String("function", name)).
				Wrap(equation.ErrInvalidName)
		}

		err = reg.RegisterFunc(name, e.At)
		if err != nil {
			return ErrDefine.
				With(slog.String("function", name)).
				Wrap(err)
		}
	}

	return nil
}
