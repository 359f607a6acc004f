package expr_test

import (
	"testing"

	"github.com/ardnew/kataru/expr"
	"github.com/ardnew/kataru/story"
)

type stubResolver map[string]story.Value

func (s stubResolver) Lookup(ref story.QualifiedName) (story.Value, bool) {
	v, ok := s[ref.Name]

	return v, ok
}

func TestEvaluate_Arithmetic(t *testing.T) {
	r := stubResolver{"hp": story.Number(10), "mp": story.Number(5)}

	v, err := expr.Evaluate("$hp + $mp", r)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if v != story.Number(15) {
		t.Errorf("Evaluate() = %+v, want Number(15)", v)
	}
}

func TestEvaluate_Comparison(t *testing.T) {
	r := stubResolver{"hp": story.Number(0)}

	v, err := expr.Evaluate("$hp <= 0", r)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if v != story.Boolean(true) {
		t.Errorf("Evaluate() = %+v, want Boolean(true)", v)
	}
}

func TestEvaluate_QualifiedReference(t *testing.T) {
	r := stubResolver{"gold": story.Number(3)}

	v, err := expr.Evaluate(`$chapter1:gold == 3`, r)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if v != story.Boolean(true) {
		t.Errorf("Evaluate() = %+v, want Boolean(true)", v)
	}
}

func TestEvaluate_UnknownVariable(t *testing.T) {
	if _, err := expr.Evaluate("$missing == nil", stubResolver{}); err == nil {
		t.Fatal("Evaluate() error = nil, want a runtime lookup error")
	}
}

func TestEvaluate_InvalidExpression(t *testing.T) {
	if _, err := expr.Evaluate("$hp +* 1", stubResolver{}); err == nil {
		t.Fatal("Evaluate() error = nil, want compile error")
	}
}

func TestEvaluateBool(t *testing.T) {
	tests := []struct {
		source  string
		vars    stubResolver
		want    bool
		wantErr bool
	}{
		{"$flag", stubResolver{"flag": story.Boolean(true)}, true, false},
		{"$flag", stubResolver{"flag": story.Boolean(false)}, false, false},
		{"$hp", stubResolver{"hp": story.Number(0)}, false, true},
		{"$name", stubResolver{"name": story.String("")}, false, true},
		{"$name", stubResolver{"name": story.String("hero")}, false, true},
		{"", stubResolver{}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got, err := expr.EvaluateBool(tt.source, tt.vars)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("EvaluateBool(%q) error = nil, want a type error", tt.source)
				}

				return
			}

			if err != nil {
				t.Fatalf("EvaluateBool() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("EvaluateBool(%q) = %v, want %v", tt.source, got, tt.want)
			}
		})
	}
}
