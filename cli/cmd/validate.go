package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ardnew/kataru/storydoc"
	"github.com/ardnew/kataru/validator"
)

// Validate loads a story document from the command's source files and
// statically checks it for structural defects, printing every one found.
type Validate struct{}

// Run executes the validate command.
func (*Validate) Run(ctx context.Context) error {
	src := sourceFilesFrom(ctx)
	if src == nil || src.IsZero() {
		return ErrReadSource.With(slog.String("reason", "no source given"))
	}

	st, err := storydoc.Load(src)
	if err != nil {
		return ErrLoadStory.Wrap(err)
	}

	errs := validator.Validate(st)
	if len(errs) == 0 {
		fmt.Fprintln(os.Stdout, "ok")

		return nil
	}

	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e)
	}

	return ErrValidation.With(slog.Int("count", len(errs)))
}
