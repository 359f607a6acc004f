// Package expr compiles and runs the story runtime's expression language:
// branch guards, choice conditions, and SET/ADD/SUB right-hand sides. A
// dollar-prefixed reference such as "$hp" or "$chapter1:hp" is rewritten
// into a call against the active [Resolver] and the result evaluated with
// expr-lang, so the full expr-lang operator set (arithmetic, comparison,
// boolean logic) is available to story authors for free.
package expr

import (
	"errors"
	"log/slog"

	exprlang "github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/kataru/apperr"
	"github.com/ardnew/kataru/story"
)

// compile returns the cached compiled program for source, compiling and
// caching it on first use.
func compile(source string) (*vm.Program, error) {
	rewritten := rewrite(source)

	if prog, ok := cachedProgram(rewritten); ok {
		return prog, nil
	}

	prog, err := exprlang.Compile(rewritten, exprlang.Env(typeEnv()))
	if err != nil {
		return nil, apperr.ErrInvalidExpression.Wrap(err).
			With(slog.String("source", source))
	}

	storeProgram(rewritten, prog)

	return prog, nil
}

// Evaluate compiles (if necessary) and runs source against resolver,
// returning the result as a story.Value.
func Evaluate(source string, resolver Resolver) (story.Value, error) {
	if source == "" {
		return story.None, nil
	}

	prog, err := compile(source)
	if err != nil {
		return story.None, err
	}

	result, err := vm.Run(prog, runtimeEnv(resolver))
	if err != nil {
		// __v raises a RuntimeError-class *apperr.Error on an unresolved
		// variable; expr-lang surfaces it here as the function call's error,
		// possibly wrapped with source-position context. Preserve its
		// sentinel identity instead of flattening it into ErrInvalidExpression.
		var missing *apperr.Error
		if errors.As(err, &missing) {
			return story.None, missing
		}

		return story.None, apperr.ErrInvalidExpression.Wrap(err).
			With(slog.String("source", source))
	}

	return story.FromNative(result), nil
}

// EvaluateBool evaluates source and coerces the result to a boolean. Branch
// guards and choice conditions must evaluate to Bool exactly: None and any
// non-Bool type fail with a type error rather than being coerced.
func EvaluateBool(source string, resolver Resolver) (bool, error) {
	v, err := Evaluate(source, resolver)
	if err != nil {
		return false, err
	}

	return AsBool(v)
}

// AsBool requires v to be Bool, returning a type-mismatch error for None or
// any other Kind.
func AsBool(v story.Value) (bool, error) {
	if v.Kind != story.KindBool {
		return false, apperr.ErrTypeMismatch.With(
			slog.String("expected", story.KindBool.String()),
			slog.String("actual", v.Kind.String()),
		)
	}

	return v.Bool, nil
}
