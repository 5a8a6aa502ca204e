// Package profile starts and stops runtime profiling with
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof .
//	expr --pprof-mode cpu eval 'sin(x) ** 2' --var x=1
//
// Without the tag [Modes] is empty and [Profiler.Start] does nothing.
// Profiles are written to the directory named by [Profiler.Path], one file
// per mode (cpu.pprof, mem.pprof, ...), and can be inspected with
// "go tool pprof". The tag also registers the [net/http/pprof] handlers.
package profile

// Tag is the build tag required to enable profiling. It also names the
// default output directory under the cache directory.
const Tag = `pprof`
