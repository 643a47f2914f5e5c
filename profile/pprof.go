//go:build pprof

package profile

import (
	"maps"
	"slices"
	"sync"

	"github.com/pkg/profile"

	_ "net/http/pprof" // register /debug/pprof/ handlers
)

// Modes returns the profiling modes accepted by --pprof-mode, sorted.
var Modes = sync.OnceValue(func() []string {
	return slices.Sorted(maps.Keys(profiler))
})

// profiler maps each mode name to the pkg/profile option that selects it.
var profiler = map[string]func(*profile.Profile){
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"clock":     profile.ClockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"heap":      profile.MemProfileHeap,
	"mem":       profile.MemProfile,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

// session collects the pkg/profile options for one profiling run.
type session []func(*profile.Profile)

// start begins profiling in the named mode, writing into path. An unknown or
// empty mode starts nothing.
func start(mode, path string, quiet bool) interface{ Stop() } {
	selected, ok := profiler[mode]
	if !ok {
		return ignore{}
	}

	s := session{selected}

	if path != "" {
		s = append(s, profile.ProfilePath(path))
	}

	if quiet {
		s = append(s, profile.Quiet)
	}

	return profile.Start(s...)
}
