package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// initCLI mimics the global flags of the equatic command line.
type initCLI struct {
	Level   string   `default:"info"      name:"log-level"`
	Pretty  bool     `default:"true"      name:"log-pretty" negatable:""`
	Define  []string `name:"define"`
	Samples int      `default:"1000"      name:"samples"`
	Pprof   string   `name:"pprof-mode"`
	Hidden  string   `default:"secret"    hidden:""        name:"hidden"`
}

func parseInit(t *testing.T, confPath string, args ...string) context.Context {
	t.Helper()

	var cli initCLI

	parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
	if err != nil {
		t.Fatal(err)
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		t.Fatal(err)
	}

	return WithContext(context.Background(), kctx)
}

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr error
	}{
		{name: "create_new_config"},
		{name: "overwrite_existing_with_force", force: true, exists: true},
		{name: "fail_without_force", exists: true, wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.exists {
				if err := os.WriteFile(confPath, []byte("existing: true\n"), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			ctx := parseInit(t, confPath, "--define", "sq=x**2", "--log-level=debug")

			err := (&Init{Force: tt.force}).Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Init.Run() error = %v, want %v", err, tt.wantErr)
				}

				if !errors.Is(err, ErrWriteConfig) {
					t.Errorf("Init.Run() error = %v, want wrapped by %v", err, ErrWriteConfig)
				}

				return
			}

			if err != nil {
				t.Fatalf("Init.Run() error = %v", err)
			}

			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var got map[string]any
			if err := yaml.Unmarshal(content, &got); err != nil {
				t.Fatalf("generated config is not valid YAML: %v\n%s", err, content)
			}

			if got["log-level"] != "debug" {
				t.Errorf("log-level = %v, want debug", got["log-level"])
			}

			if got["log-pretty"] != true {
				t.Errorf("log-pretty = %v, want true", got["log-pretty"])
			}

			defs, ok := got["define"].([]any)
			if !ok || len(defs) != 1 || defs[0] != "sq=x**2" {
				t.Errorf("define = %#v, want [sq=x**2]", got["define"])
			}

			for _, key := range []string{"help", "pprof-mode", "hidden", "existing"} {
				if _, ok := got[key]; ok {
					t.Errorf("unexpected key %q in generated config", key)
				}
			}
		})
	}
}

func TestInitSettingsOrder(t *testing.T) {
	t.Parallel()

	ctx := parseInit(t, filepath.Join(t.TempDir(), "config.yaml"))

	settings := (&Init{}).settings(kongContextFrom(ctx))

	var keys []string
	for _, item := range settings {
		keys = append(keys, item.Key.(string))
	}

	want := []string{"log-level", "log-pretty", "samples"}
	if len(keys) != len(want) {
		t.Fatalf("settings keys = %v, want %v", keys, want)
	}

	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("settings keys = %v, want %v", keys, want)

			break
		}
	}
}

func TestFlagValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      any
		wantNil bool
	}{
		{"nil", nil, true},
		{"empty_string", "", true},
		{"string", "text", false},
		{"empty_slice", []string{}, true},
		{"slice", []string{"a=x"}, false},
		{"empty_floats", []float64{}, true},
		{"floats", []float64{0, 1}, false},
		{"bool_false", false, false},
		{"int", 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := flagValue(tt.in); (got == nil) != tt.wantNil {
				t.Errorf("flagValue(%#v) = %#v, wantNil %v", tt.in, got, tt.wantNil)
			}
		})
	}
}
