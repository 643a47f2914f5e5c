package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/equatic/equation"
)

// writeSources creates one file per content in a temporary directory and
// returns their paths.
func writeSources(t *testing.T, contents ...string) []string {
	t.Helper()

	dir := t.TempDir()
	paths := make([]string, len(contents))

	for i, content := range contents {
		paths[i] = filepath.Join(dir, "exprs"+string(rune('a'+i))+".txt")
		if err := os.WriteFile(paths[i], []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	return paths
}

func readSources(t *testing.T, ctx context.Context) string {
	t.Helper()

	reader := sourceFilesFrom(ctx)
	if reader == nil {
		t.Fatal("WithSourceFiles should store a non-nil reader")
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("reading from source files: %v", err)
	}

	return string(data)
}

// TestWithSourceFilesEmpty tests that an empty source list returns nil reader.
func TestWithSourceFilesEmpty(t *testing.T) {
	for _, sources := range [][]string{nil, {}} {
		if reader := sourceFilesFrom(WithSourceFiles(context.Background(), sources)); reader != nil {
			t.Errorf("WithSourceFiles(%#v) should store nil reader", sources)
		}
	}
}

func TestWithSourceFilesOrder(t *testing.T) {
	paths := writeSources(t, "x**2\n", "sin(x)\n")

	ctx := WithSourceFiles(context.Background(), paths)
	if got, want := readSources(t, ctx), "x**2\nsin(x)\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// TestWithSourceFilesDuplicates tests that the same file named through
// repeated, relative, and symlinked paths is read once.
func TestWithSourceFilesDuplicates(t *testing.T) {
	paths := writeSources(t, "x+1\n")
	dir := filepath.Dir(paths[0])

	link := filepath.Join(dir, "link.txt")
	if err := os.Symlink(paths[0], link); err != nil {
		t.Fatal(err)
	}

	t.Chdir(dir)

	ctx := WithSourceFiles(context.Background(), []string{
		paths[0],
		paths[0],
		filepath.Base(paths[0]),
		link,
	})

	if got, want := readSources(t, ctx), "x+1\n"; got != want {
		t.Errorf("got %q, want %q (file should only be read once)", got, want)
	}
}

// TestWithSourceFilesStdinLast tests that stdin is read once, after all
// regular files.
func TestWithSourceFilesStdinLast(t *testing.T) {
	paths := writeSources(t, "x\n")

	oldStdin := os.Stdin
	defer func() { os.Stdin = oldStdin }()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	os.Stdin = r

	go func() {
		defer w.Close()

		io.WriteString(w, "2*x\n")
	}()

	ctx := WithSourceFiles(context.Background(), []string{"-", paths[0], "-"})

	src := sourceFilesFrom(ctx)
	if src == nil || src.Stdin() == nil || src.IsZero() {
		t.Fatalf("sources = %#v, want file and stdin", src)
	}

	exprs, err := ReadExpressions(src)
	if err != nil {
		t.Fatal(err)
	}

	if len(exprs) != 2 || exprs[0] != "x" || exprs[1] != "2*x" {
		t.Errorf("expressions = %q, want [x 2*x]", exprs)
	}
}

func TestWithSourceFilesNonexistent(t *testing.T) {
	paths := writeSources(t, "exp(x)\n")

	ctx := WithSourceFiles(context.Background(), []string{
		"/nonexistent/path/file.txt",
		paths[0],
	})

	if got, want := readSources(t, ctx), "exp(x)\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	ctx = WithSourceFiles(context.Background(), []string{"/nonexistent/a", "/nonexistent/b"})
	if reader := sourceFilesFrom(ctx); reader != nil {
		t.Error("WithSourceFiles should store nil reader when all files are missing")
	}
}

func TestRegistryFrom(t *testing.T) {
	t.Parallel()

	if reg := RegistryFrom(context.Background()); !reg.Has("sin") {
		t.Error("RegistryFrom without a stored registry should return the default catalog")
	}

	reg := equation.NewRegistry()
	if got := RegistryFrom(WithRegistry(context.Background(), reg)); got != reg {
		t.Error("RegistryFrom should return the stored registry")
	}
}

func TestCacheDir(t *testing.T) {
	t.Parallel()

	if got := CacheDir(context.Background()); got != "" {
		t.Errorf("CacheDir() without kong context = %q, want empty", got)
	}

	var cli struct{}

	parser, err := kong.New(&cli, kong.Vars{CacheIdentifier: "/tmp/equatic-cache"})
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	if got := CacheDir(WithContext(context.Background(), ktx)); got != "/tmp/equatic-cache" {
		t.Errorf("CacheDir() = %q, want %q", got, "/tmp/equatic-cache")
	}
}
