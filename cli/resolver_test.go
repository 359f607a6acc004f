package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestResolve_ReturnsCorrectConfig(t *testing.T) {
	config := `
config:
  log_level: debug
  log_format: text
other:
  foo: bar
`

	loader := resolve(context.Background(), "config")
	resolver, err := loader(strings.NewReader(config))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	mockFlag := &kong.Flag{Value: &kong.Value{Name: "log_level"}}
	val, err := resolver.Resolve(nil, nil, mockFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if val != "debug" {
		t.Errorf("expected log_level=debug, got %v", val)
	}

	mockFlag2 := &kong.Flag{Value: &kong.Value{Name: "log_format"}}
	val2, err := resolver.Resolve(nil, nil, mockFlag2)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if val2 != "text" {
		t.Errorf("expected log_format=text, got %v", val2)
	}

	mockFlag3 := &kong.Flag{Value: &kong.Value{Name: "foo"}}
	val3, err := resolver.Resolve(nil, nil, mockFlag3)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if val3 != nil {
		t.Error("config section should not contain 'foo' from 'other' section")
	}
}

func TestResolve_MissingSection(t *testing.T) {
	config := "existing:\n  foo: bar\n"

	loader := resolve(context.Background(), "missing")
	resolver, err := loader(strings.NewReader(config))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	mockFlag := &kong.Flag{Value: &kong.Value{Name: "foo"}}
	val, err := resolver.Resolve(nil, nil, mockFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if val != nil {
		t.Error("expected nil value for missing section")
	}
}

func TestResolve_UnderscoreHyphenMapping(t *testing.T) {
	config := "config:\n  log_level: debug\n"

	loader := resolve(context.Background(), "config")
	resolver, err := loader(strings.NewReader(config))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	mockFlag := &kong.Flag{Value: &kong.Value{Name: "log_level"}}
	val, err := resolver.Resolve(nil, nil, mockFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if val != "debug" {
		t.Errorf("expected log_level=debug, got %v", val)
	}

	mockFlag2 := &kong.Flag{Value: &kong.Value{Name: "log-level"}}
	val2, err := resolver.Resolve(nil, nil, mockFlag2)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if val2 != "debug" {
		t.Errorf("expected log-level=debug, got %v", val2)
	}
}

func TestResolve_MalformedYAML_ReturnsEmptyResolver(t *testing.T) {
	loader := resolve(context.Background(), "config")
	resolver, err := loader(strings.NewReader("not: [valid: yaml"))
	if err != nil {
		t.Fatalf("resolve should not error on malformed input: %v", err)
	}

	mockFlag := &kong.Flag{Value: &kong.Value{Name: "log_level"}}
	val, err := resolver.Resolve(nil, nil, mockFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if val != nil {
		t.Error("expected nil value from empty resolver")
	}
}
