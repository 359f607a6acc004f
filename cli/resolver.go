package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] that reads a named top-level
// section of a YAML configuration file and exposes its keys as Kong flag
// values.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx, "config"), "/path/to/config.yaml")
//
// Flag names with hyphens (e.g. "log-level") may be written with either
// hyphens or underscores in the file; both spellings resolve to the same
// flag. Command-line flags override config file values.
//
// Example configuration file:
//
//	config:
//	  log_level: debug
//	  log_format: json
//	  log_pretty: true
func resolve(_ context.Context, name string) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		data, err := io.ReadAll(r)
		if err != nil {
			return namespace{}, nil
		}

		var doc map[string]map[string]any

		if err := yaml.Unmarshal(data, &doc); err != nil {
			// A malformed or absent config file yields an empty resolver
			// rather than aborting startup; Kong defaults still apply.
			return namespace{}, nil
		}

		section, ok := doc[name]
		if !ok {
			return namespace{}, nil
		}

		return namespace(section), nil
	}
}

// namespace implements [kong.Resolver] for a single YAML configuration
// section.
type namespace map[string]any

// Validate implements [kong.Resolver].
func (namespace) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (n namespace) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	name := flag.Name
	underscoreName := strings.ReplaceAll(name, "-", "_")

	if value, ok := n[name]; ok {
		return stringify(value), nil
	}

	if value, ok := n[underscoreName]; ok {
		return stringify(value), nil
	}

	return nil, nil
}

// stringify renders numeric YAML scalars as strings since Kong's flag
// parsers expect string input regardless of underlying flag type.
func stringify(v any) any {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case fmt.Stringer:
		return n.String()
	default:
		return v
	}
}
