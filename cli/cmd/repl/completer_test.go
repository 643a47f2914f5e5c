package repl

import (
	"slices"
	"strings"
	"testing"

	"github.com/sahilm/fuzzy"
)

func TestWordBounds_Operators(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "sqrt", 4, "sqrt", 0, 4},
		{"after_plus", "x + co", 6, "co", 4, 6},
		{"after_minus", "x-co", 4, "co", 2, 4},
		{"after_power", "x**si", 5, "si", 3, 5},
		{"after_paren", "exp(lo", 6, "lo", 4, 6},
		{"nested_call", "exp(log(sq", 10, "sq", 8, 10},
		{"after_command_prefix", ":fu", 3, "fu", 1, 3},
		{"underscore_identifier", "log_2", 5, "log_2", 0, 5},
		{"empty_at_boundary", "x + ", 4, "", 4, 4},
		{"mid_word", "cosh", 2, "cosh", 0, 4},
		{"at_start", "sin", 0, "sin", 0, 3},
		{"cursor_past_end", "tan", 9, "tan", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestInCommand(t *testing.T) {
	tests := []struct {
		input     string
		wordStart int
		want      bool
	}{
		{":fu", 1, true},
		{" : he", 3, true},
		{"sin", 0, false},
		{":x co", 3, false},
		{"x + co", 4, false},
	}

	for _, tt := range tests {
		if got := inCommand(tt.input, tt.wordStart); got != tt.want {
			t.Errorf("inCommand(%q, %d) = %v, want %v", tt.input, tt.wordStart, got, tt.want)
		}
	}
}

func typed(t *testing.T, m model, input string) model {
	t.Helper()

	m.input.SetValue(input)
	m.input.SetCursor(len(input))
	refreshMatches(&m, false)

	return m
}

func matchNames(matches fuzzy.Matches) []string {
	names := make([]string, len(matches))
	for i, match := range matches {
		names[i] = match.Str
	}

	return names
}

func TestComputeMatches(t *testing.T) {
	m := newTestModel(t)

	t.Run("functions", func(t *testing.T) {
		m := typed(t, m, "2*co")
		if got := matchNames(m.matches); !slices.Contains(got, "cos") || !slices.Contains(got, "cosh") {
			t.Errorf("matches = %v, want cos and cosh", got)
		}

		if m.wordStart != 2 || m.wordEnd != 4 {
			t.Errorf("word bounds = [%d,%d), want [2,4)", m.wordStart, m.wordEnd)
		}

		if !m.isFunction("cos") {
			t.Error("isFunction(cos) = false in eval mode")
		}
	})

	t.Run("command_prefix", func(t *testing.T) {
		m := typed(t, m, ":fu")
		if got := matchNames(m.matches); !slices.Equal(got, []string{"funcs"}) {
			t.Errorf("matches = %v, want [funcs]", got)
		}

		if m.isFunction("funcs") {
			t.Error("commands are not functions")
		}
	})

	t.Run("empty_word", func(t *testing.T) {
		if m := typed(t, m, "x + "); len(m.matches) != 0 {
			t.Errorf("matches = %v, want none", matchNames(m.matches))
		}
	})

	t.Run("ctrl_mode", func(t *testing.T) {
		m, _ := m.switchToMode(modeCtrl)

		m = typed(t, m, "cl")
		if got := matchNames(m.matches); !slices.Contains(got, "clear") {
			t.Errorf("matches = %v, want clear", got)
		}
	})
}

func TestRefreshMatches_AutoConfirm(t *testing.T) {
	m := newTestModel(t)

	m.input.SetValue("sqrt")
	m.input.SetCursor(4)
	refreshMatches(&m, true)

	if len(m.matches) != 0 {
		t.Errorf("matches = %v, want confirmed", matchNames(m.matches))
	}

	if got := m.input.Value(); got != "sqrt" {
		t.Errorf("input = %q, want sqrt", got)
	}
}

func TestCycle(t *testing.T) {
	m := newTestModel(t)

	t.Run("single", func(t *testing.T) {
		m := typed(t, m, "exp(sq")

		m, _ = m.cycle(1)
		if got := m.input.Value(); got != "exp(sqrt" {
			t.Errorf("input = %q, want %q", got, "exp(sqrt")
		}

		if m.tabActive {
			t.Error("single candidate should not start tab cycling")
		}
	})

	t.Run("forward_and_back", func(t *testing.T) {
		m := typed(t, m, "co")
		n := len(m.matches)

		if n < 2 {
			t.Fatalf("matches = %v, want several", matchNames(m.matches))
		}

		m, _ = m.cycle(1)
		if m.suggIdx != 0 || m.input.Value() != m.matches[0].Str {
			t.Errorf("first tab: idx=%d input=%q", m.suggIdx, m.input.Value())
		}

		m, _ = m.cycle(-1)
		if m.suggIdx != n-1 || m.input.Value() != m.matches[n-1].Str {
			t.Errorf("shift-tab wraps: idx=%d input=%q", m.suggIdx, m.input.Value())
		}

		if m.preTabText != "co" {
			t.Errorf("preTabText = %q, want co", m.preTabText)
		}
	})

	t.Run("no_matches", func(t *testing.T) {
		m := typed(t, m, "x + ")

		m, _ = m.cycle(1)
		if got := m.input.Value(); got != "x + " {
			t.Errorf("input = %q, want unchanged", got)
		}
	})
}

func TestRenderCandidateBar(t *testing.T) {
	matches := fuzzy.Find("co", []string{"cos", "cosh", "cot", "coth", "acos"})
	isFunc := func(string) bool { return true }

	if got := renderCandidateBar(nil, -1, false, 80, isFunc); got != "" {
		t.Errorf("renderCandidateBar(nil) = %q, want empty", got)
	}

	if got := renderCandidateBar(matches, -1, false, 0, isFunc); got != "" {
		t.Errorf("renderCandidateBar(width=0) = %q, want empty", got)
	}

	wide := renderCandidateBar(matches, -1, false, 200, isFunc)
	if strings.Contains(wide, "...") {
		t.Errorf("wide bar should not be ellipsized: %q", wide)
	}

	narrow := renderCandidateBar(matches, -1, false, 12, isFunc)
	if !strings.Contains(narrow, "...") {
		t.Errorf("narrow bar should be ellipsized: %q", narrow)
	}
}
