//go:build pprof

package profile

import (
	"maps"
	"slices"
	"sync"

	"github.com/pkg/profile"
)

// Modes returns the sorted list of supported profiling modes.
var Modes = sync.OnceValue(
	func() []string {
		return slices.Sorted(maps.Keys(mode))
	},
)

var mode = map[string]func(*profile.Profile){
	"block":     profile.BlockProfile,
	"cpu":       profile.CPUProfile,
	"clock":     profile.ClockProfile,
	"goroutine": profile.GoroutineProfile,
	"mem":       profile.MemProfile,
	"allocs":    profile.MemProfileAllocs,
	"heap":      profile.MemProfileHeap,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

// option appends a profile setting.
type option func([]func(*profile.Profile)) []func(*profile.Profile)

func withMode(m string) option {
	return func(c []func(*profile.Profile)) []func(*profile.Profile) {
		if fn, ok := mode[m]; ok {
			c = append(c, fn)
		}

		return c
	}
}

func withPath(p string) option {
	return func(c []func(*profile.Profile)) []func(*profile.Profile) {
		if p != "" {
			c = append(c, profile.ProfilePath(p))
		}

		return c
	}
}

func withQuiet(v bool) option {
	return func(c []func(*profile.Profile)) []func(*profile.Profile) {
		if v {
			c = append(c, profile.Quiet)
		}

		return c
	}
}

func start(m, path string, quiet bool) Stopper {
	c := withMode(m)(nil)
	if len(c) == 0 {
		return ignore{}
	}

	for _, opt := range []option{withPath(path), withQuiet(quiet), noShutdownHook} {
		c = opt(c)
	}

	return profile.Start(c...)
}

// noShutdownHook leaves signal handling to the CLI, which stops the
// profiler on its own way out.
func noShutdownHook(c []func(*profile.Profile)) []func(*profile.Profile) {
	return append(c, profile.NoShutdownHook)
}
