//go:build pprof

package profile

import "github.com/pkg/profile"

// option appends profile.Start options derived from a Profiler.
type option func([]func(*profile.Profile), Profiler) []func(*profile.Profile)

func options(p Profiler, opts ...option) []func(*profile.Profile) {
	var out []func(*profile.Profile)

	for _, opt := range opts {
		out = opt(out, p)
	}

	return out
}

func withMode(out []func(*profile.Profile), p Profiler) []func(*profile.Profile) {
	if fn, ok := mode[p.Mode]; ok {
		out = append(out, fn)
	}

	return out
}

func withPath(out []func(*profile.Profile), p Profiler) []func(*profile.Profile) {
	if p.Path != "" {
		out = append(out, profile.ProfilePath(p.Path))
	}

	return out
}

func withQuiet(out []func(*profile.Profile), p Profiler) []func(*profile.Profile) {
	if p.Quiet {
		out = append(out, profile.Quiet)
	}

	return out
}
