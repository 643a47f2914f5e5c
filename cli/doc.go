// Package cli contains the command line interface for equatic.
//
// # Usage
//
// The default command evaluates an expression in the free variable x:
//
//	equatic 'x**2 - 1' --at 3
//	equatic eval 'sin(x)/x' --range 0.5,10,20 --output json
//	equatic --define 'sq=x**2' eval 'sq(x) + sq(2)' --at 1
//	equatic repl --save
//
// Expressions can also be read one per line from files or stdin with
// --source. Lines starting with '#' are ignored.
//
// # Configuration
//
// Flag defaults are loaded from the user configuration directory:
//
//   - $XDG_CONFIG_HOME/equatic/config.json, read with [kong.JSON]
//   - $XDG_CONFIG_HOME/equatic/config.yaml, read with a YAML resolver
//
// The YAML resolver accepts each flag as written on the command line
// ("log-level"), with underscores ("log_level"), or nested ("log: {level:
// ...}"). The init subcommand writes the current flag values to config.yaml.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error,
//     critical)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o equatic .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/equatic/pprof)
package cli
