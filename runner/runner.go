// Package runner steps a loaded story forward one line at a time: it
// flattens branching passages into linear arrays, evaluates guards and
// state mutations through the expression language, resolves calls and
// returns with tail-call elision, and substitutes variables into the text
// it surfaces to a host.
package runner

import (
	"log/slog"
	"strconv"

	"github.com/ardnew/kataru/apperr"
	"github.com/ardnew/kataru/bookmark"
	"github.com/ardnew/kataru/choice"
	"github.com/ardnew/kataru/expr"
	"github.com/ardnew/kataru/story"
)

// Runner advances a [bookmark.Bookmark] through a [story.Story].
type Runner struct {
	story    *story.Story
	bookmark *bookmark.Bookmark

	flat   map[story.Position]*flatPassage
	breaks []int

	speaker story.QualifiedName

	awaitingInput  bool
	pendingOptions []choice.Option
}

// New returns a Runner positioned at bm's current location within st.
// It reports no error: if that location does not resolve to a passage, the
// first call to Next returns the resolution error.
func New(st *story.Story, bm *bookmark.Bookmark) *Runner {
	r := &Runner{
		story:    st,
		bookmark: bm,
		flat:     make(map[story.Position]*flatPassage),
	}

	fp, err := r.flatPassage(bm.Position.Namespace, bm.Position.Passage)
	if err == nil {
		r.breaks = loadBreaks(fp, bm.Position.Line)
	}

	return r
}

// Bookmark returns the bookmark the runner is advancing.
func (r *Runner) Bookmark() *bookmark.Bookmark { return r.bookmark }

// SaveSnapshot records a named save point: the bookmark's position, call
// stack, and variable state. The break stack and any pending Choices menu
// are not saved directly -- LoadSnapshot rebuilds them from the restored
// position, the same way a Return does (I3).
func (r *Runner) SaveSnapshot(name string) {
	r.bookmark.Save(name)
}

// LoadSnapshot restores a previously saved Snapshot by name, rebuilds the
// break stack for the restored position, and clears any pending Choices
// selection. A subsequent Next call on a position left mid-Choices
// therefore re-resolves and re-emits that menu from the restored state
// rather than resuming a stale, pre-snapshot selection.
func (r *Runner) LoadSnapshot(name string) error {
	if !r.bookmark.Load(name) {
		return apperr.ErrSnapshotNotFound.With(slog.String("name", name))
	}

	fp, err := r.currentFlat()
	if err != nil {
		return err
	}

	r.breaks = loadBreaks(fp, r.bookmark.Position.Line)
	r.pendingOptions = nil
	r.awaitingInput = false

	return nil
}

// flatPassage returns (flattening if necessary) the flat form of the named
// passage, cached by its position key (namespace, passage, line 0).
func (r *Runner) flatPassage(namespace, passage string) (*flatPassage, error) {
	key := story.Position{Namespace: namespace, Passage: passage}

	if fp, ok := r.flat[key]; ok {
		return fp, nil
	}

	_, body, err := r.story.Resolve(story.QualifiedName{Namespace: namespace, Name: passage, Explicit: true}, namespace)
	if err != nil {
		return nil, err
	}

	fp := flatten(body)
	r.flat[key] = fp

	return fp, nil
}

func (r *Runner) currentFlat() (*flatPassage, error) {
	return r.flatPassage(r.bookmark.Position.Namespace, r.bookmark.Position.Passage)
}

type stepResult int

const (
	stepContinue stepResult = iota
	stepEmit
)

// Next advances the story by one unit of host-visible output: narration,
// dialogue, a menu of choices, an input prompt, a command for the host to
// react to, an invalid-choice notice, or the end marker. input is consumed
// only when the runner is currently paused at a Choices or Input line
// awaiting it; it is ignored otherwise.
func (r *Runner) Next(input string) (Line, error) {
	for {
		fp, err := r.currentFlat()
		if err != nil {
			return Line{}, err
		}

		idx := r.bookmark.Position.Line
		if idx < 0 || idx >= len(fp.lines) {
			return Line{}, apperr.ErrLineOutOfRange.With(
				slog.Int("line", idx),
				slog.String("passage", r.bookmark.Position.Passage),
			)
		}

		raw := fp.lines[idx]

		line, result, err := r.process(fp, idx, raw, input)
		if err != nil {
			return Line{}, err
		}

		if result == stepEmit {
			return line, nil
		}
	}
}

func (r *Runner) process(
	fp *flatPassage,
	idx int,
	raw story.RawLine,
	input string,
) (Line, stepResult, error) {
	switch raw.Kind {
	case story.KindText:
		text := substitute(raw.Text, r.bookmark)
		r.advance()

		return Line{Kind: LineText, Speaker: r.speaker.String(), Text: text}, stepEmit, nil

	case story.KindDialogue:
		r.speaker = raw.Dialogue.Speaker
		text := substitute(raw.Dialogue.Text, r.bookmark)
		r.advance()

		return Line{Kind: LineDialogue, Speaker: r.speaker.String(), Text: text}, stepEmit, nil

	case story.KindInput:
		if r.awaitingInput {
			r.awaitingInput = false
			r.bookmark.Assign(raw.Input.Target, story.String(input))
			r.advance()

			return Line{}, stepContinue, nil
		}

		r.awaitingInput = true
		prompt := substitute(raw.Input.Prompt, r.bookmark)

		return Line{Kind: LineInput, Prompt: prompt}, stepEmit, nil

	case story.KindChoices:
		if r.pendingOptions != nil {
			return r.resolveChoiceSelection(input)
		}

		options, err := choice.Resolve(raw.Choices, r.bookmark)
		if err != nil {
			return Line{}, stepContinue, err
		}

		r.pendingOptions = options

		return Line{Kind: LineChoices, Options: options, Timeout: raw.Choices.Timeout}, stepEmit, nil

	case story.KindBranches:
		return Line{}, stepContinue, r.processBranches(fp, idx, raw.Branches)

	case story.KindBreak:
		return Line{}, stepContinue, r.processBreak()

	case story.KindSet:
		return Line{}, stepContinue, r.processSet(raw.Set)

	case story.KindCommand:
		return r.processCommand(raw.Command)

	case story.KindCall:
		return Line{}, stepContinue, r.processCall(fp, idx, raw.Call)

	case story.KindReturn:
		return r.processReturn()

	default:
		r.advance()

		return Line{}, stepContinue, nil
	}
}

func (r *Runner) advance() {
	r.bookmark.Position.Line++
}

// resolveChoiceSelection resolves a player's selection against the menu
// currently pending. An input that doesn't match any offered option is not
// an error: it is the InvalidChoice event, and the menu stays pending so a
// later Next call can still resolve it.
func (r *Runner) resolveChoiceSelection(input string) (Line, stepResult, error) {
	idx, err := strconv.Atoi(input)
	if err != nil {
		return Line{Kind: LineInvalidChoice, Options: r.pendingOptions}, stepEmit, nil
	}

	selected, ok := choice.Select(r.pendingOptions, idx)
	if !ok {
		return Line{Kind: LineInvalidChoice, Options: r.pendingOptions}, stepEmit, nil
	}

	r.pendingOptions = nil

	target := story.ParseQualifiedName(selected.Target)
	namespace := target.Resolve(r.bookmark.Position.Namespace)
	r.bookmark.Goto(story.Position{Namespace: namespace, Passage: target.Name, Line: 0})
	r.breaks = nil

	return Line{}, stepContinue, nil
}

func (r *Runner) processBranches(fp *flatPassage, idx int, branches story.Branches) error {
	for i, arm := range branches.Arms {
		taken := arm.IsElse()
		if !taken {
			var err error

			taken, err = expr.EvaluateBool(arm.Expr, r.bookmark)
			if err != nil {
				return err
			}
		}

		if !taken {
			continue
		}

		r.breaks = append(r.breaks, fp.branchEnd[idx])
		r.bookmark.Position.Line = fp.armStart[idx][i]

		return nil
	}

	r.bookmark.Position.Line = fp.branchEnd[idx]

	return nil
}

func (r *Runner) processBreak() error {
	if len(r.breaks) == 0 {
		return apperr.ErrLineOutOfRange.With(slog.String("reason", "break with empty stack"))
	}

	target := r.breaks[len(r.breaks)-1]
	r.breaks = r.breaks[:len(r.breaks)-1]
	r.bookmark.Position.Line = target

	return nil
}

func (r *Runner) processSet(mods []story.StateMod) error {
	for _, mod := range mods {
		rhs, err := expr.Evaluate(mod.Expr, r.bookmark)
		if err != nil {
			return err
		}

		current, _ := r.bookmark.Lookup(mod.Target)

		var result story.Value

		switch mod.Op {
		case story.OpAdd:
			result = current.Add(rhs)
		case story.OpSub:
			result = current.Sub(rhs)
		default:
			result = current.Set(rhs)
		}

		r.bookmark.Assign(mod.Target, result)
	}

	r.advance()

	return nil
}

// processCommand evaluates a Command line's positional argument expressions
// against the current Bookmark and zips the results against the command's
// declared parameter names (from the current namespace's config) to build
// the Command event's fully-resolved parameter map (§4.5). Commands do not
// mutate interpreter state themselves; this only prepares the event the
// host reacts to.
func (r *Runner) processCommand(cmd story.Command) (Line, stepResult, error) {
	sec, ok := r.story.Section(r.bookmark.Position.Namespace)
	if !ok {
		return Line{}, stepContinue, apperr.ErrUnknownNamespace.With(
			slog.String("namespace", r.bookmark.Position.Namespace),
		)
	}

	schema := sec.Config.Commands[cmd.Name]
	params := make(map[string]story.Value, len(cmd.Args))

	for i, arg := range cmd.Args {
		v, err := expr.Evaluate(arg, r.bookmark)
		if err != nil {
			return Line{}, stepContinue, err
		}

		name := strconv.Itoa(i)
		if i < len(schema.Params) {
			name = schema.Params[i]
		}

		params[name] = v
	}

	r.advance()

	return Line{Kind: LineCommand, CommandName: cmd.Name, Params: params}, stepEmit, nil
}

func (r *Runner) processCall(fp *flatPassage, idx int, target story.QualifiedName) error {
	namespace := target.Resolve(r.bookmark.Position.Namespace)

	_, _, err := r.story.Resolve(target, r.bookmark.Position.Namespace)
	if err != nil {
		return err
	}

	if !isTailCall(fp, idx, r.breaks) {
		returnPos := r.bookmark.Position
		returnPos.Line++
		r.bookmark.Position = returnPos
		r.bookmark.Push()
	}

	r.bookmark.Goto(story.Position{Namespace: namespace, Passage: target.Name, Line: 0})
	r.breaks = nil

	return nil
}

// processReturn pops the call stack and resumes at the caller. An empty
// stack means the story has reached its natural end.
func (r *Runner) processReturn() (Line, stepResult, error) {
	pos, ok := r.bookmark.Pop()
	if !ok {
		return Line{Kind: LineEnd}, stepEmit, nil
	}

	r.bookmark.Goto(pos)

	fp, err := r.flatPassage(pos.Namespace, pos.Passage)
	if err != nil {
		return Line{}, stepContinue, err
	}

	r.breaks = loadBreaks(fp, pos.Line)

	return Line{}, stepContinue, nil
}

// isTailCall reports whether the call at idx is the final action of its
// passage: walking forward from idx+1, every intervening Break resolves
// (via the supplied break stack, simulated without mutation) to another
// position, until either a Return is reached (tail call) or some other
// line kind is reached first (not a tail call).
func isTailCall(fp *flatPassage, idx int, breaks []int) bool {
	next := idx + 1
	sim := append([]int(nil), breaks...)

	for next < len(fp.lines) {
		switch fp.lines[next].Kind {
		case story.KindBreak:
			if len(sim) == 0 {
				return false
			}

			next = sim[len(sim)-1]
			sim = sim[:len(sim)-1]

		case story.KindReturn:
			return true

		default:
			return false
		}
	}

	return false
}
