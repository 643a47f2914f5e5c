package equation

import (
	"errors"
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()

	tests := []struct {
		name  string
		input string
		want  error
		token string
	}{
		{name: "linear", input: "x - 1"},
		{name: "nested_calls", input: "cos(tan(0.5*x+1)+sin(0.5*x))"},
		{name: "power", input: "x**2"},
		{name: "decimal", input: ".5 * x"},
		{name: "shell", input: "sudo rm -rf asdf_jkl", want: ErrSecurityViolation, token: "rm "},
		{name: "semicolon", input: "x; x", want: ErrSecurityViolation, token: ";"},
		{name: "caret", input: "x^2", want: ErrSecurityViolation, token: "^"},
		{name: "marker", input: "x#1", want: ErrSecurityViolation, token: "#"},
		{name: "separator", input: "x|1", want: ErrSecurityViolation, token: "|"},
		{name: "quote", input: `"x"`, want: ErrSecurityViolation, token: `"`},
		{name: "unknown_function", input: "w00ps(x)", want: ErrUnrecognizedToken, token: "w00ps"},
		{name: "unknown_operator", input: "x % 2", want: ErrUnrecognizedToken, token: "%"},
		{name: "comparison", input: "x < 2", want: ErrUnrecognizedToken, token: "<"},
		{name: "non_ascii", input: "x·2", want: ErrUnrecognizedToken, token: "·"},
		{name: "empty", input: "", want: ErrUnrecognizedToken},
		{name: "blank", input: "   ", want: ErrUnrecognizedToken},
		{name: "unclosed", input: "(x", want: ErrUnrecognizedToken},
		{name: "unopened", input: "x)", want: ErrUnrecognizedToken, token: ")"},
		{name: "crossed", input: ")x(", want: ErrUnrecognizedToken, token: ")"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Sanitize(tt.input, reg, DefaultVariable)

			if tt.want == nil {
				if err != nil {
					t.Fatalf("Sanitize(%q) error = %v", tt.input, err)
				}

				return
			}

			if !errors.Is(err, tt.want) {
				t.Fatalf("Sanitize(%q) error = %v, want %v", tt.input, err, tt.want)
			}

			if tt.token == "" {
				return
			}

			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("Sanitize(%q) error is %T, want *Error", tt.input, err)
			}

			if v, ok := e.Attr("token"); !ok || v.String() != tt.token {
				t.Errorf("token = %q, want %q", v.String(), tt.token)
			}
		})
	}
}

func TestSanitizeVariable(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()

	if err := Sanitize("t**2 + 1", reg, "t"); err != nil {
		t.Errorf("Sanitize() with variable t error = %v", err)
	}

	if err := Sanitize("x**2 + 1", reg, "t"); !errors.Is(err, ErrUnrecognizedToken) {
		t.Errorf("Sanitize() with variable t error = %v, want %v", err, ErrUnrecognizedToken)
	}
}

func TestSanitizeForbiddenFirst(t *testing.T) {
	t.Parallel()

	// Unknown names are not examined once a forbidden token is found.
	err := Sanitize("w00ps(x) ; rm -rf", DefaultRegistry(), DefaultVariable)
	if KindOf(err) != KindSecurityViolation {
		t.Errorf("KindOf() = %v, want %v", KindOf(err), KindSecurityViolation)
	}
}

func FuzzSanitize(f *testing.F) {
	for _, seed := range []string{
		"x - 1",
		"cos(tan(0.5*x+1)+sin(0.5*x))",
		"sudo rm -rf asdf_jkl",
		"((x)",
		"x**-.5e3",
		"w00ps(x)",
		"",
	} {
		f.Add(seed)
	}

	reg := DefaultRegistry()

	f.Fuzz(func(t *testing.T, raw string) {
		err := Sanitize(raw, reg, "x")

		for _, bad := range Forbidden {
			if strings.Contains(raw, bad) && !errors.Is(err, ErrSecurityViolation) {
				t.Fatalf("Sanitize(%q) = %v, want %v for %q", raw, err, ErrSecurityViolation, bad)
			}
		}

		if err == nil {
			return
		}

		switch k := KindOf(err); k {
		case KindSecurityViolation, KindUnrecognizedToken:
		default:
			t.Fatalf("Sanitize(%q) error kind = %v: %v", raw, k, err)
		}
	})
}
