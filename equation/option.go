package equation

import (
	"os"

	"github.com/ardnew/equatic/log"
)

// DefaultVariable is the free variable symbol used unless [WithVariable] is
// given.
const DefaultVariable = "x"

// Option applies a configuration option to config.
type Option func(config) config

// config holds the settings shared by [Parse], [Solve], and the batch driver.
type config struct {
	logger     log.Logger
	level      *log.Level
	registry   *Registry
	simplifier Simplifier
	variable   string
	workers    int
}

func makeConfig(opts ...Option) config {
	c := config{
		variable: DefaultVariable,
		workers:  1,
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.registry == nil {
		c.registry = Default()
	} else {
		c.registry = c.registry.Clone()
	}

	if c.simplifier == nil {
		c.simplifier = NewFloatSimplifier()
	}

	if c.level != nil {
		if c.logger.Logger == nil {
			c.logger = log.Make(os.Stderr,
				log.WithLevel(*c.level),
				log.WithFormat(log.FormatText),
			)
		} else {
			c.logger = c.logger.Wrap(log.WithLevel(*c.level))
		}
	}

	return c
}

// WithLogger sets the logger that receives parse and evaluation events.
// The zero [log.Logger] discards everything.
func WithLogger(l log.Logger) Option {
	return func(c config) config {
		c.logger = l

		return c
	}
}

// WithLogLevel sets the minimum level of logged events. Without
// [WithLogger], events at or above level are written to standard error.
func WithLogLevel(level log.Level) Option {
	return func(c config) config {
		c.level = &level

		return c
	}
}

// WithRegistry sets the function registry. A snapshot of r is taken when
// the option is applied by [Parse]; later changes to r are not observed.
func WithRegistry(r *Registry) Option {
	return func(c config) config {
		c.registry = r

		return c
	}
}

// WithSimplifier sets the arithmetic folding service.
func WithSimplifier(s Simplifier) Option {
	return func(c config) config {
		c.simplifier = s

		return c
	}
}

// WithPrecision selects a [PreciseSimplifier] with the given mantissa
// precision in bits. Zero keeps the float64 [FloatSimplifier].
func WithPrecision(bits uint) Option {
	return func(c config) config {
		if bits == 0 {
			c.simplifier = NewFloatSimplifier()
		} else {
			c.simplifier = NewPreciseSimplifier(bits)
		}

		return c
	}
}

// WithVariable sets the free variable symbol.
func WithVariable(name string) Option {
	return func(c config) config {
		c.variable = name

		return c
	}
}

// WithWorkers sets the number of values the batch driver evaluates
// concurrently. Values below 1 are treated as 1.
func WithWorkers(n int) Option {
	return func(c config) config {
		c.workers = max(n, 1)

		return c
	}
}
