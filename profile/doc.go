// Package profile provides optional runtime profiling for the equatic
// command using [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof -o equatic .
//
// Without the tag, [Modes] is empty and [Config.Start] returns a no-op stopper.
//
// # Modes
//
// allocs, block, clock, cpu, goroutine, heap, mem, mutex, thread, and trace.
// One profile file per mode is written to the configured directory (cpu.pprof,
// mem.pprof, ...).
//
// # Usage
//
//	ctrl := profile.New(
//	    profile.WithMode("cpu"),
//	    profile.WithPath(dir),
//	    profile.WithQuiet(true),
//	).Start()
//	defer ctrl.Stop()
//
// From the command line, profile a large concurrent batch and inspect it:
//
//	equatic --pprof-mode cpu eval --range 0,100,1000000 --workers 8 'gamma(x)'
//	go tool pprof -http=: ~/.cache/equatic/pprof/cpu.pprof
//
// The default output directory is the pprof subdirectory of the user cache
// directory. Building with the tag also imports [net/http/pprof], so a
// program embedding the equation package can expose /debug/pprof/ on its own
// HTTP server.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
