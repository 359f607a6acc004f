// Package validator statically checks a loaded story for structural
// defects before any runner steps through it: dangling call and choice
// targets, unknown characters and commands, and malformed branch/choice
// lines.
//
// Unlike the reference implementation's fail-fast pass, Validate
// accumulates every defect it finds into a single report instead of
// stopping at the first one, so an author sees the whole list of problems
// in one pass.
package validator

import (
	"log/slog"

	"github.com/ardnew/kataru/apperr"
	"github.com/ardnew/kataru/story"
)

// Validate walks every namespace and passage in st and returns every
// defect found. A nil/empty result means st is well-formed.
func Validate(st *story.Story) []*apperr.Error {
	v := &validation{story: st}

	for name, sec := range st.Sections {
		v.section(name, sec)
	}

	return v.errors
}

type validation struct {
	story  *story.Story
	errors []*apperr.Error
}

func (v *validation) fail(err *apperr.Error) {
	v.errors = append(v.errors, err)
}

func (v *validation) section(namespace string, sec *story.Section) {
	for name, passage := range sec.Passages {
		v.passage(namespace, name, sec, passage)
	}

	for _, mod := range sec.Config.OnEnter {
		v.target(namespace, mod.Target)
	}

	for _, mod := range sec.Config.OnExit {
		v.target(namespace, mod.Target)
	}
}

func (v *validation) passage(namespace, name string, sec *story.Section, lines story.Passage) {
	for _, ln := range lines {
		v.line(namespace, name, sec, ln)
	}
}

func (v *validation) line(namespace, passage string, sec *story.Section, ln story.RawLine) {
	switch ln.Kind {
	case story.KindDialogue:
		v.character(namespace, passage, sec, ln.Dialogue.Speaker)

	case story.KindCall:
		v.callTarget(namespace, passage, ln.Call)

	case story.KindSet:
		for _, mod := range ln.Set {
			v.target(namespace, mod.Target)
		}

	case story.KindCommand:
		v.command(namespace, passage, sec, ln.Command)

	case story.KindChoices:
		v.choices(namespace, passage, ln.Choices)

	case story.KindBranches:
		v.branches(namespace, passage, sec, ln.Branches)
	}
}

func (v *validation) target(namespace string, ref story.QualifiedName) {
	resolved := ref.Resolve(namespace)
	if _, ok := v.story.Section(resolved); !ok {
		v.fail(apperr.ErrUnknownNamespace.With(
			slog.String("namespace", resolved),
		))
	}
}

func (v *validation) callTarget(namespace, passage string, ref story.QualifiedName) {
	if _, _, err := v.story.Resolve(ref, namespace); err != nil {
		v.fail(apperr.ErrUnknownPassage.With(
			slog.String("namespace", namespace),
			slog.String("passage", passage),
			slog.String("target", ref.String()),
		))
	}
}

func (v *validation) character(namespace, passage string, sec *story.Section, ref story.QualifiedName) {
	resolved := ref.Resolve(namespace)

	target := sec
	if resolved != namespace {
		other, ok := v.story.Section(resolved)
		if !ok {
			v.fail(apperr.ErrUnknownNamespace.With(slog.String("namespace", resolved)))

			return
		}

		target = other
	}

	if _, ok := target.Config.Characters[ref.Name]; !ok {
		v.fail(apperr.ErrUnknownCharacter.With(
			slog.String("namespace", namespace),
			slog.String("passage", passage),
			slog.String("character", ref.String()),
		))
	}
}

func (v *validation) command(namespace, passage string, sec *story.Section, cmd story.Command) {
	schema, ok := sec.Config.Commands[cmd.Name]
	if !ok {
		v.fail(apperr.ErrUnknownCommand.With(
			slog.String("namespace", namespace),
			slog.String("passage", passage),
			slog.String("command", cmd.Name),
		))

		return
	}

	if len(schema.Params) != len(cmd.Args) {
		v.fail(apperr.ErrUnknownParam.With(
			slog.String("namespace", namespace),
			slog.String("passage", passage),
			slog.String("command", cmd.Name),
			slog.Int("expected", len(schema.Params)),
			slog.Int("got", len(cmd.Args)),
		))
	}
}

func (v *validation) choices(namespace, passage string, choices story.Choices) {
	if len(choices.Groups) == 0 {
		v.fail(apperr.ErrEmptyChoices.With(
			slog.String("namespace", namespace),
			slog.String("passage", passage),
		))

		return
	}

	for _, group := range choices.Groups {
		if len(group.Items) == 0 {
			v.fail(apperr.ErrEmptyChoices.With(
				slog.String("namespace", namespace),
				slog.String("passage", passage),
			))

			continue
		}

		for _, item := range group.Items {
			if item.Target == "" {
				continue
			}

			v.callTarget(namespace, passage, story.ParseQualifiedName(item.Target))
		}
	}
}

func (v *validation) branches(namespace, passage string, sec *story.Section, branches story.Branches) {
	if len(branches.Arms) == 0 {
		v.fail(apperr.ErrEmptyBranches.With(
			slog.String("namespace", namespace),
			slog.String("passage", passage),
		))

		return
	}

	for i, arm := range branches.Arms {
		if arm.IsElse() && i != len(branches.Arms)-1 {
			v.fail(apperr.ErrMisplacedElse.With(
				slog.String("namespace", namespace),
				slog.String("passage", passage),
			))
		}

		v.passage(namespace, passage, sec, arm.Lines)
	}
}
