package equation

import (
	"iter"
	"log/slog"
	"maps"
	"math"
	"slices"
	"sync"
)

// Func is a unary real function. It returns an error of kind [KindValue]
// when the result would be complex, or of kind [KindArithmetic] when the
// function is undefined at x.
type Func func(x float64) (float64, error)

// Unary adapts a plain float64 function into a [Func]. A NaN result for a
// non-NaN argument is reported as [ErrArithmetic].
func Unary(f func(float64) float64) Func {
	return func(x float64) (float64, error) {
		y := f(x)
		if math.IsNaN(y) && !math.IsNaN(x) {
			return y, ErrArithmetic.With(slog.Float64("argument", x))
		}

		return y, nil
	}
}

// reserved identifiers can never be registered as functions. The simplifier
// binds them as constants.
var reserved = []string{"Inf", "NaN"}

// Registry maps function names to unary functions.
// It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// DefaultRegistry returns a new Registry populated with the default catalog.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	for name, f := range catalog() {
		r.funcs[name] = f
	}

	return r
}

// Register adds or replaces the function named name.
func (r *Registry) Register(name string, f func(float64) float64) error {
	if f == nil {
		return ErrInvalidName.With(slog.String("function", name))
	}

	return r.RegisterFunc(name, Unary(f))
}

// RegisterFunc adds or replaces the function named name.
// Names must be identifiers and must not be one of the reserved constants.
func (r *Registry) RegisterFunc(name string, f Func) error {
	if !isIdentifier(name) || slices.Contains(reserved, name) || f == nil {
		return ErrInvalidName.With(slog.String("function", name))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.funcs == nil {
		r.funcs = make(map[string]Func)
	}

	r.funcs[name] = f

	return nil
}

// Lookup returns the function registered as name.
func (r *Registry) Lookup(name string) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.funcs[name]

	return f, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)

	return ok
}

// Call applies the function registered as name to x.
func (r *Registry) Call(name string, x float64) (float64, error) {
	f, ok := r.Lookup(name)
	if !ok {
		return math.NaN(), ErrOperation.With(slog.String("function", name))
	}

	return f(x)
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.funcs))
}

// All returns an iterator over the registered functions in name order.
func (r *Registry) All() iter.Seq2[string, Func] {
	return func(yield func(string, Func) bool) {
		for _, name := range r.Names() {
			f, ok := r.Lookup(name)
			if !ok {
				continue
			}

			if !yield(name, f) {
				return
			}
		}
	}
}

// Len returns the number of registered functions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.funcs)
}

// Clone returns an independent copy of r.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return &Registry{funcs: maps.Clone(r.funcs)}
}

var (
	defaultRegistryMu sync.Mutex
	defaultRegistry   = DefaultRegistry()
)

// AddFunction registers f in the package default registry, which is used by
// [Parse] and [Solve] unless [WithRegistry] is given.
func AddFunction(name string, f func(float64) float64) error {
	defaultRegistryMu.Lock()
	defer defaultRegistryMu.Unlock()

	return defaultRegistry.Register(name, f)
}

// Default returns a snapshot of the package default registry.
func Default() *Registry {
	defaultRegistryMu.Lock()
	defer defaultRegistryMu.Unlock()

	return defaultRegistry.Clone()
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case isLetter(c):
		case isDigit(c) && i > 0:
		default:
			return false
		}
	}

	return true
}

func isLetter(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
