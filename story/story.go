package story

import (
	"log/slog"

	"github.com/ardnew/kataru/apperr"
)

// RootNamespace is the conventional name authoring documents give their
// top-level section; it carries no special resolution behavior.
const RootNamespace = "root"

// GlobalNamespace is the namespace identified by the empty string: the
// fallback a bare variable reference resolves to when it is absent from
// the current namespace, and the namespace an explicit leading-colon
// reference (e.g. ":hero") always addresses.
const GlobalNamespace = ""

// EntryPassage is the conventional name of the passage execution begins at
// when no explicit starting position is given.
const EntryPassage = "main"

// Story is a complete, loaded narrative: every namespace, keyed by name.
type Story struct {
	Sections map[string]*Section
}

// New returns an empty Story.
func New() *Story {
	return &Story{Sections: make(map[string]*Section)}
}

// Section looks up a namespace by name.
func (s *Story) Section(namespace string) (*Section, bool) {
	sec, ok := s.Sections[namespace]

	return sec, ok
}

// Resolve finds the passage addressed by a QualifiedName, resolving bare
// names against the currently active namespace (I1: every Call/Branch
// target must resolve to an existing passage).
func (s *Story) Resolve(ref QualifiedName, current string) (*Section, Passage, error) {
	namespace := ref.Resolve(current)

	sec, ok := s.Section(namespace)
	if !ok {
		return nil, nil, apperr.ErrUnknownNamespace.With(
			slog.String("namespace", namespace),
		)
	}

	passage, ok := sec.Passage(ref.Name)
	if !ok {
		return nil, nil, apperr.ErrUnknownPassage.With(
			slog.String("namespace", namespace),
			slog.String("passage", ref.Name),
		)
	}

	return sec, passage, nil
}

// InitialState builds the State a fresh run begins with: every section's
// configured variables, namespaced by section name.
func (s *Story) InitialState() State {
	state := NewState()

	for name, sec := range s.Sections {
		for k, v := range sec.Config.State {
			state.Set(name, k, v)
		}
	}

	return state
}
