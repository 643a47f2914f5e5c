// Package log is the structured logger shared by the equation engine and the
// equatic command, built on [log/slog].
//
// A [Logger] is a small value configured once with functional options and
// safe for concurrent use:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithCaller(true))
//
//	logger.Debug("layer resolved",
//		slog.Int("level", 2),
//		slog.String("segment", "(x**2)"))
//
// [Logger.With] returns a logger that adds attributes to every record, and
// [Logger.Wrap] returns a copy with more options applied. Every level has a
// context-aware method (InfoContext) and a variant that uses
// [DefaultContextProvider].
//
// # Levels
//
// Six levels are ordered [LevelTrace] < [LevelDebug] < [LevelInfo] <
// [LevelWarn] < [LevelError] < [LevelCritical]. [ParseLevel] accepts their
// names and the aliases "warning" and "fatal".
//
// # Formats
//
// [FormatText] is the default and [FormatJSON] emits one object per record.
// [WithPretty] colorizes either format for terminals. [WithTimeLayout] takes
// any named [time] layout ("RFC3339Nano", "Kitchen") or a literal layout.
//
// # Package Logger
//
// The package-level functions (Info, Warn, ...) log through a default
// logger that [Config] reconfigures and [Default] returns. The command line
// configures it from the --log-* flags before any expression is parsed.
package log
