package equation

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

import (
	"errors"
	"log/slog"
	"strings"
)

// Kind discriminates the failure classes reported by the evaluator.
type Kind int

const (
	KindNone              Kind = iota // none
	KindSecurityViolation             // security violation
	KindUnrecognizedToken             // unrecognized token
	KindValue                         // value error
	KindArithmetic                    // arithmetic error
	KindType                          // type error
)

// Predefined errors (sentinel values).
var (
	ErrSecurityViolation = NewError(KindSecurityViolation, "dangerous characters in input")
	ErrUnrecognizedToken = NewError(KindUnrecognizedToken, "unrecognized character combination")
	ErrComplexResult     = NewError(KindValue, "complex numbers are not supported")
	ErrArithmetic        = NewError(KindArithmetic, "could not resolve expression")
	ErrOperation         = NewError(KindType, "invalid operation")
	ErrInvalidName       = NewError(KindType, "invalid function name")
	ErrInvalidDomain     = NewError(KindType, "invalid value range")
)

// Error represents an evaluation error with optional structured logging
// attributes. It implements both error and slog.LogValuer interfaces.
//
// [errors.Is] matches an error against a target of the same kind and
// message, so any error derived from [ErrArithmetic] with Wrap or With
// satisfies errors.Is(err, ErrArithmetic), and the sentinels sharing
// [KindType] stay distinct. A target with an empty message, such as
// NewError(KindType, ""), matches every error of its kind.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
	kind  Kind
}

// NewError creates a new Error of the given kind with a message.
func NewError(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// KindOf returns the kind of the first [Error] found in err's chain, or
// [KindNone].
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}

	return KindNone
}

// Kind returns the failure class of e.
func (e *Error) Kind() Kind { return e.kind }

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an [Error] of the same kind and, unless
// target's message is empty, the same message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.kind == KindNone || t.kind != e.kind {
		return false
	}

	return t.msg == "" || t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	attrs = append(attrs, slog.String("kind", e.kind.String()))

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error of the same kind wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
		kind:  e.kind,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
		kind:  e.kind,
	}
}

// Attr returns the value of the first attribute with the given key.
func (e *Error) Attr(key string) (slog.Value, bool) {
	for _, a := range e.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}

	return slog.Value{}, false
}
