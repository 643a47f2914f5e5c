package repl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistory_WriteAndLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), baseHistory)
	h := NewHistory(path)

	for _, e := range []HistoryEntry{
		{"x**2", modeEval},
		{"x 3", modeCtrl},
		{"sin(x)", modeEval},
		{"sin(x)", modeEval},
	} {
		if _, err := h.WriteWithMode(e.Line, e.Mode); err != nil {
			t.Fatal(err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := string(data), "E:x**2\nC:x 3\nE:sin(x)\n"; got != want {
		t.Errorf("history file = %q, want %q", got, want)
	}

	loaded := NewHistory(path)
	if err := loaded.Load(); err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(loaded.Entries(), h.Entries()) {
		t.Errorf("loaded = %v, want %v", loaded.Entries(), h.Entries())
	}
}

func TestHistory_DuplicateMovesToEnd(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), baseHistory)
	h := NewHistory(path)

	for _, line := range []string{"a", "b", "c", "a"} {
		if _, err := h.Write(line); err != nil {
			t.Fatal(err)
		}
	}

	// Same text in another mode is a distinct entry.
	if _, err := h.WriteWithMode("b", modeCtrl); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := string(data), "E:b\nE:c\nE:a\nC:b\n"; got != want {
		t.Errorf("history file = %q, want %q", got, want)
	}

	if line, err := h.GetLine(2); err != nil || line != "a" {
		t.Errorf("GetLine(2) = %q, %v, want a", line, err)
	}
}

func TestHistory_LegacyAndBlankLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), baseHistory)
	if err := os.WriteFile(path, []byte("x+1\n\n  \nC:help\nE:cos(x)\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	want := []HistoryEntry{{"x+1", modeEval}, {"help", modeCtrl}, {"cos(x)", modeEval}}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}
}

func TestHistory_Bounds(t *testing.T) {
	t.Parallel()

	h := NewHistory(filepath.Join(t.TempDir(), "missing", baseHistory))
	if err := h.Load(); err != nil {
		t.Errorf("Load() of missing file = %v, want nil", err)
	}

	for _, i := range []int{-1, 0, 1} {
		if _, err := h.GetEntry(i); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("GetEntry(%d) error = %v, want %v", i, err, ErrOutOfBounds)
		}
	}

	if n, err := h.Write("   "); n != 0 || err != nil || h.Len() != 0 {
		t.Errorf("Write(blank) = %d, %v; Len = %d", n, err, h.Len())
	}
}

func TestHistory_InMemory(t *testing.T) {
	t.Parallel()

	h := NewHistory("")
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	for _, line := range []string{"1", "2", "1"} {
		if _, err := h.Write(line); err != nil {
			t.Fatal(err)
		}
	}

	want := []HistoryEntry{{"2", modeEval}, {"1", modeEval}}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}
}
