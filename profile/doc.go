// Package profile provides optional runtime profiling for the kataru
// command-line tools, wired directly to [github.com/pkg/profile].
//
// # Overview
//
// Profiling is always compiled in and controlled entirely at runtime by
// mode: an empty mode is a no-op with no measurable overhead beyond one
// map lookup, so there is no build tag gating this package.
//
// # Available Profiling Modes
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// Use [Modes] to retrieve the list of supported modes programmatically.
//
// # Usage
//
//	cfg := profile.Config(func() (string, string, bool) {
//		return "cpu", "/tmp/profiles", false
//	})
//	ctrl := cfg.Start()
//	defer ctrl.Stop()
//
// Profile files are written to the specified directory with names matching
// the profiling mode (e.g., cpu.pprof, mem.pprof).
//
// # Analyzing Profile Data
//
//	go tool pprof /tmp/profiles/cpu.pprof
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
package profile
