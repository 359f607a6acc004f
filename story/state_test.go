package story_test

import (
	"testing"

	"github.com/ardnew/kataru/story"
)

func TestState_GetSet(t *testing.T) {
	s := story.NewState()

	if _, ok := s.Get("root", "hp"); ok {
		t.Fatal("expected missing variable to report ok=false")
	}

	s.Set("root", "hp", story.Number(10))

	v, ok := s.Get("root", "hp")
	if !ok || v != story.Number(10) {
		t.Fatalf("Get() = %+v, %v, want Number(10), true", v, ok)
	}
}

func TestState_Clone_IsDeep(t *testing.T) {
	s := story.NewState()
	s.Set("root", "hp", story.Number(10))

	clone := s.Clone()
	clone.Set("root", "hp", story.Number(0))

	v, _ := s.Get("root", "hp")
	if v != story.Number(10) {
		t.Errorf("mutating clone affected original: Get() = %+v", v)
	}
}

func TestState_Merge(t *testing.T) {
	dst := story.NewState()
	dst.Set("root", "hp", story.Number(10))
	dst.Set("root", "mp", story.Number(5))

	src := story.NewState()
	src.Set("root", "hp", story.Number(1))
	src.Set("other", "flag", story.Boolean(true))

	dst.Merge(src)

	if v, _ := dst.Get("root", "hp"); v != story.Number(1) {
		t.Errorf("Merge did not overwrite: hp = %+v", v)
	}

	if v, _ := dst.Get("root", "mp"); v != story.Number(5) {
		t.Errorf("Merge dropped untouched variable: mp = %+v", v)
	}

	if v, _ := dst.Get("other", "flag"); v != story.Boolean(true) {
		t.Errorf("Merge did not add new namespace: flag = %+v", v)
	}
}
