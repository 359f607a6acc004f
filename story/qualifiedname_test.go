package story_test

import (
	"testing"

	"github.com/ardnew/kataru/story"
)

func TestParseQualifiedName(t *testing.T) {
	tests := []struct {
		ref  string
		want story.QualifiedName
	}{
		{"hero", story.QualifiedName{Name: "hero"}},
		{"chapter1:hero", story.QualifiedName{Namespace: "chapter1", Name: "hero", Explicit: true}},
		{"a:b:c", story.QualifiedName{Namespace: "a:b", Name: "c", Explicit: true}},
		{":hero", story.QualifiedName{Name: "hero", Explicit: true}},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			if got := story.ParseQualifiedName(tt.ref); got != tt.want {
				t.Errorf("ParseQualifiedName(%q) = %+v, want %+v", tt.ref, got, tt.want)
			}
		})
	}
}

func TestQualifiedName_Resolve(t *testing.T) {
	explicit := story.QualifiedName{Namespace: "chapter1", Name: "hero", Explicit: true}
	if got := explicit.Resolve("current"); got != "chapter1" {
		t.Errorf("Resolve() = %q, want chapter1", got)
	}

	bare := story.QualifiedName{Name: "hero"}
	if got := bare.Resolve("current"); got != "current" {
		t.Errorf("Resolve() = %q, want current", got)
	}

	explicitGlobal := story.QualifiedName{Name: "hero", Explicit: true}
	if got := explicitGlobal.Resolve("current"); got != "" {
		t.Errorf("Resolve() = %q, want the global namespace (empty string)", got)
	}
}
