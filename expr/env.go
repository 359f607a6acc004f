package expr

import (
	"log/slog"

	"github.com/ardnew/kataru/apperr"
	"github.com/ardnew/kataru/story"
)

// Resolver looks up a variable reference during expression evaluation. A
// bookmark satisfies this interface by resolving bare names against its
// current namespace, falling back to the global namespace (§3).
type Resolver interface {
	Lookup(ref story.QualifiedName) (story.Value, bool)
}

// typeEnv is the fixed environment expr-lang type-checks compiled programs
// against. __v's real implementation is resolver-specific and is bound at
// run time by runtimeEnv; this exemplar only tells expr-lang that __v takes
// two strings and returns an untyped result alongside a possible lookup
// error.
func typeEnv() map[string]any {
	return map[string]any{
		"__v": func(namespace, name string) (any, error) { return nil, nil },
	}
}

// runtimeEnv builds the environment a compiled program actually runs
// against, binding __v to look up variables through resolver. namespace is
// "" for every bare "$name" reference the rewriter produces (§4.2), which
// is indistinguishable here from an author writing an empty-but-explicit
// namespace -- the rewrite grammar has no syntax for the latter, so bare is
// the only case __v ever sees with an empty namespace.
func runtimeEnv(resolver Resolver) map[string]any {
	return map[string]any{
		"__v": func(namespace, name string) (any, error) {
			ref := story.QualifiedName{Namespace: namespace, Name: name, Explicit: namespace != ""}

			v, ok := resolver.Lookup(ref)
			if !ok {
				return nil, apperr.ErrMissingVariable.With(
					slog.String("namespace", namespace),
					slog.String("name", name),
				)
			}

			return v.Native(), nil
		},
	}
}
