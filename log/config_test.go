package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestConfig_WithLevel_SetsLevel(t *testing.T) {
	tests := []struct {
		flag string
		want Level
	}{
		{"trace", LevelTrace},
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"critical", LevelCritical},
		{"fatal", LevelCritical},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			got := WithLevel(ParseLevel(tt.flag))(config{})

			if got.level != tt.want {
				t.Errorf("--log-level %s: level = %v, want %v", tt.flag, got.level, tt.want)
			}
		})
	}
}

func TestConfig_CriticalLevel_FiltersRecords(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelCritical), WithFormat(FormatText), WithPretty(false))

	logger.Error("segment did not fold", slog.String("segment", "(x**)"))
	logger.Critical("registry unavailable")

	out := buf.String()
	if strings.Contains(out, "segment did not fold") {
		t.Errorf("error record logged at critical threshold: %q", out)
	}

	if !strings.Contains(out, "level=CRITICAL") {
		t.Errorf("critical record missing level label: %q", out)
	}
}

func TestConfig_Options_AppliedInOrder(t *testing.T) {
	c := apply(config{},
		WithFormat(FormatText),
		nil,
		WithCaller(true),
		WithFormat(FormatJSON),
		WithCaller(false),
	)

	if c.format != FormatJSON {
		t.Errorf("format = %v, want %v", c.format, FormatJSON)
	}

	if c.caller {
		t.Error("caller = true, want the later WithCaller(false)")
	}
}

func TestConfig_formatTime_Layouts(t *testing.T) {
	evaluated := time.Date(2025, 3, 14, 15, 9, 26, 535897932, time.UTC)

	tests := []struct {
		layout string
		want   string
	}{
		{"RFC3339", "2025-03-14T15:09:26Z"},
		{"rfc3339nano", "2025-03-14T15:09:26.535897932Z"},
		{"Kitchen", "3:09PM"},
		{"ms", "Mar 14 15:09:26.535"},
		{"2006-01-02", "2025-03-14"},
		{"none", ""},
		{"", ""},
		{" \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			if got := WithTimeLayout(tt.layout)(config{}).formatTime(evaluated); got != tt.want {
				t.Errorf("formatTime(%q) = %q, want %q", tt.layout, got, tt.want)
			}
		})
	}
}

func BenchmarkConfig_formatTime(b *testing.B) {
	for _, layout := range []string{"RFC3339", "RFC3339Nano"} {
		b.Run(layout, func(b *testing.B) {
			c := WithTimeLayout(layout)(config{})
			now := time.Now()

			for b.Loop() {
				_ = c.formatTime(now)
			}
		})
	}
}
