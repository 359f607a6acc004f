// Package cli contains the command-line interface for kataru, an embeddable
// interactive branching-narrative story runtime.
//
// # Usage
//
// The CLI provides logging, profiling, and configuration-file options
// alongside its one subcommand:
//
//	kataru --log-level=debug validate --source story.yaml
//
// # Configuration
//
// Flags may be supplied on the command line, via a JSON config file at
// ~/.config/kataru/config.json, or via a "config:" section of a YAML config
// file at ~/.config/kataru/config (see [resolve]). Command-line flags take precedence
// over both.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp layout (RFC3339, RFC3339Nano, etc.)
//   - --log-callsite: Include source callsite information in log output
//
// # Profiling Options
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/kataru/pprof)
//
// # Examples
//
//	# Validate a story document, with debug logging
//	kataru --log-level=debug validate --source story.yaml
//
//	# Validate with CPU profiling enabled
//	kataru --pprof-mode=cpu validate --source story.yaml
package cli
