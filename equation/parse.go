package equation

import (
	"log/slog"
	"slices"

	"github.com/ardnew/equatic/log"
)

// Expression is a sanitized and structurally parsed expression of one free
// variable. It is immutable and safe for concurrent use.
type Expression struct {
	source     string
	text       string
	depth      DepthMap
	layers     *Layers
	registry   *Registry
	simplifier Simplifier
	variable   string
	workers    int
	log        log.Logger
}

// Parse sanitizes text and builds its layer structure.
//
// The expression is wrapped in one outer pair of parentheses before its
// depth is mapped, so the outermost segment always holds the whole
// expression. Parse retains no state between calls.
func Parse(text string, opts ...Option) (*Expression, error) {
	cfg := makeConfig(opts...)

	if !isIdentifier(cfg.variable) || slices.Contains(reserved, cfg.variable) {
		return nil, ErrInvalidName.With(slog.String("variable", cfg.variable))
	}

	if cfg.registry.Has(cfg.variable) {
		return nil, ErrInvalidName.With(
			slog.String("variable", cfg.variable),
			slog.String("reason", "variable shadows a registered function"),
		)
	}

	if err := Sanitize(text, cfg.registry, cfg.variable); err != nil {
		cfg.logger.Debug("rejected expression",
			slog.String("source", text),
			slog.Any("error", err),
		)

		return nil, err
	}

	wrapped := "(" + text + ")"
	dm := MapDepth(wrapped)

	layers, err := BuildLayers(dm)
	if err != nil {
		return nil, err
	}

	e := &Expression{
		source:     text,
		text:       wrapped,
		depth:      dm,
		layers:     layers,
		registry:   cfg.registry,
		simplifier: cfg.simplifier,
		variable:   cfg.variable,
		workers:    cfg.workers,
		log:        cfg.logger,
	}

	e.log.Debug("parsed expression",
		slog.String("source", text),
		slog.String("template", dm.String()),
		slog.Int("depth", layers.Depth()),
		slog.Int("segments", len(layers.Segments)),
	)

	return e, nil
}

// Source returns the expression as given to [Parse].
func (e *Expression) Source() string { return e.source }

// Text returns the wrapped expression that was depth-mapped.
func (e *Expression) Text() string { return e.text }

// Variable returns the free variable symbol.
func (e *Expression) Variable() string { return e.variable }

// DepthMap returns the depth map of the wrapped expression.
func (e *Expression) DepthMap() DepthMap {
	return DepthMap{
		IDs:      slices.Clone(e.depth.IDs),
		Template: slices.Clone(e.depth.Template),
	}
}

// Layers returns the structural parse. The result must not be modified.
func (e *Expression) Layers() *Layers { return e.layers }

// Functions returns the names of the functions the expression may call.
func (e *Expression) Functions() []string { return e.registry.Names() }

// String returns the expression as given to [Parse].
func (e *Expression) String() string { return e.source }
