package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// prettyState is shared by the pretty handlers: attributes and groups
// accumulated through WithAttrs and WithGroup.
type prettyState struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	groups []string
}

func (s prettyState) enabled(level slog.Level) bool {
	threshold := slog.LevelInfo
	if s.opts.Level != nil {
		threshold = s.opts.Level.Level()
	}

	return level >= threshold
}

// withAttrs qualifies attrs with the open groups and appends them.
func (s prettyState) withAttrs(attrs []slog.Attr) prettyState {
	out := make([]slog.Attr, len(s.attrs), len(s.attrs)+len(attrs))
	copy(out, s.attrs)

	for _, a := range attrs {
		out = append(out, slog.Attr{Key: s.qualify(a.Key), Value: a.Value})
	}

	s.attrs = out

	return s
}

func (s prettyState) withGroup(name string) prettyState {
	if name == "" {
		return s
	}

	s.groups = append(s.groups[:len(s.groups):len(s.groups)], name)

	return s
}

func (s prettyState) qualify(key string) string {
	if len(s.groups) == 0 {
		return key
	}

	return strings.Join(s.groups, ".") + "." + key
}

// replace applies the configured ReplaceAttr to a built-in attribute.
func (s prettyState) replace(a slog.Attr) slog.Attr {
	if s.opts.ReplaceAttr == nil {
		return a
	}

	return s.opts.ReplaceAttr(nil, a)
}

// flatten resolves a and expands groups into dotted keys.
func flatten(prefix string, a slog.Attr, yield func(slog.Attr)) {
	v := a.Value.Resolve()

	key := a.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	} else if key == "" {
		key = prefix
	}

	if v.Kind() != slog.KindGroup {
		if key != "" || !v.Equal(slog.Value{}) {
			yield(slog.Attr{Key: key, Value: v})
		}

		return
	}

	for _, g := range v.Group() {
		flatten(key, g, yield)
	}
}

func (s prettyState) write(buf []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.w.Write(append(buf, '\n'))

	return err
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorGreen
	default:
		return colorBlue
	}
}

// prettyTextHandler implements a colorized text handler for log messages.
type prettyTextHandler struct {
	prettyState
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyTextHandler {
	return &prettyTextHandler{prettyState{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	// Write time if configured
	if !r.Time.IsZero() {
		if a := h.replace(slog.Time(slog.TimeKey, r.Time)); a.Key != "" {
			h.writeAttr(buf, a, colorBlue)
		}
	}

	level := h.replace(slog.Any(slog.LevelKey, r.Level))
	h.writeAttr(buf, level, levelColor(r.Level))

	// Write source if configured
	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			sourceStr := fmt.Sprintf("%s:%d", src.File, src.Line)
			h.writeAttr(buf, slog.String(slog.SourceKey, sourceStr), "")
		}
	}

	h.writeAttr(buf, slog.String(slog.MessageKey, r.Message), "")

	for _, a := range h.attrs {
		flatten("", a, func(a slog.Attr) { h.writeAttr(buf, a, "") })
	}

	prefix := strings.Join(h.groups, ".")

	r.Attrs(func(a slog.Attr) bool {
		flatten(prefix, a, func(a slog.Attr) { h.writeAttr(buf, a, "") })

		return true
	})

	return h.write(buf.Bytes())
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.withAttrs(attrs)}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.withGroup(name)}
}

// writeAttr writes a as key=value. A non-empty color overrides the color
// chosen by the value's kind.
func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, a slog.Attr, color string) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	// Write key in gray
	buf.WriteString(colorGray)
	buf.WriteString(a.Key)
	buf.WriteString(colorReset)
	buf.WriteByte('=')

	if color != "" {
		buf.WriteString(color)
		buf.WriteString(a.Value.Resolve().String())
		buf.WriteString(colorReset)

		return
	}

	h.writeValue(buf, a.Value.Resolve())
}

func (h *prettyTextHandler) writeValue(buf *bytes.Buffer, v slog.Value) {
	switch v.Kind() {
	case slog.KindString:
		// String values in cyan, no quotes
		buf.WriteString(colorCyan)
		buf.WriteString(v.String())
		buf.WriteString(colorReset)

	case slog.KindInt64:
		// Numbers in yellow
		buf.WriteString(colorYellow)
		buf.WriteString(strconv.FormatInt(v.Int64(), 10))
		buf.WriteString(colorReset)

	case slog.KindUint64:
		buf.WriteString(colorYellow)
		buf.WriteString(strconv.FormatUint(v.Uint64(), 10))
		buf.WriteString(colorReset)

	case slog.KindFloat64:
		buf.WriteString(colorYellow)
		buf.WriteString(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
		buf.WriteString(colorReset)

	case slog.KindBool:
		// Booleans in green/red
		if v.Bool() {
			buf.WriteString(colorGreen)
			buf.WriteString("true")
		} else {
			buf.WriteString(colorRed)
			buf.WriteString("false")
		}

		buf.WriteString(colorReset)

	case slog.KindDuration:
		buf.WriteString(colorMagenta)
		buf.WriteString(v.Duration().String())
		buf.WriteString(colorReset)

	case slog.KindTime:
		buf.WriteString(colorBlue)
		buf.WriteString(v.Time().String())
		buf.WriteString(colorReset)

	default:
		buf.WriteString(colorCyan)
		buf.WriteString(v.String())
		buf.WriteString(colorReset)
	}
}

// prettyJSONHandler implements a pretty-printed JSON handler for log messages.
type prettyJSONHandler struct {
	prettyState
}

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyJSONHandler {
	return &prettyJSONHandler{prettyState{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	buf.WriteString("{\n")

	// Add standard fields
	first := true
	if !r.Time.IsZero() {
		if a := h.replace(slog.Time(slog.TimeKey, r.Time)); a.Key != "" {
			h.writeJSONField(buf, a.Key, a.Value.Resolve().String(), &first)
		}
	}

	level := h.replace(slog.Any(slog.LevelKey, r.Level))
	h.writeJSONField(buf, level.Key, level.Value.Resolve().String(), &first)

	// Write source if configured
	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			sourceStr := fmt.Sprintf("%s:%d", src.File, src.Line)
			h.writeJSONField(buf, slog.SourceKey, sourceStr, &first)
		}
	}

	h.writeJSONField(buf, slog.MessageKey, r.Message, &first)

	for _, a := range h.attrs {
		flatten("", a, func(a slog.Attr) { h.writeJSONField(buf, a.Key, a.Value.Any(), &first) })
	}

	prefix := strings.Join(h.groups, ".")

	r.Attrs(func(a slog.Attr) bool {
		flatten(prefix, a, func(a slog.Attr) { h.writeJSONField(buf, a.Key, a.Value.Any(), &first) })

		return true
	})

	buf.WriteString("\n}")

	return h.write(buf.Bytes())
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.withAttrs(attrs)}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.withGroup(name)}
}

func (h *prettyJSONHandler) writeJSONField(
	buf *bytes.Buffer,
	key string,
	value any,
	first *bool,
) {
	if !*first {
		buf.WriteString(",\n")
	}

	*first = false

	buf.WriteString("  ")
	// Key in gray
	buf.WriteString(colorGray)
	buf.WriteString(key)
	buf.WriteString(colorReset)
	buf.WriteString(": ")

	h.writeJSONValue(buf, value)
}

func (h *prettyJSONHandler) writeJSONValue(buf *bytes.Buffer, v any) {
	switch val := v.(type) {
	case string:
		// String without quotes, cyan color
		buf.WriteString(colorCyan)
		buf.WriteString(val)
		buf.WriteString(colorReset)

	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		float32, float64:
		// Numbers in yellow
		buf.WriteString(colorYellow)
		fmt.Fprint(buf, val)
		buf.WriteString(colorReset)

	case bool:
		if val {
			buf.WriteString(colorGreen)
			buf.WriteString("true")
		} else {
			buf.WriteString(colorRed)
			buf.WriteString("false")
		}

		buf.WriteString(colorReset)

	case nil:
		buf.WriteString(colorGray)
		buf.WriteString("null")
		buf.WriteString(colorReset)

	default:
		// For complex types, convert to string without quotes
		buf.WriteString(colorCyan)
		fmt.Fprint(buf, val)
		buf.WriteString(colorReset)
	}
}
