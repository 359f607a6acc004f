// Package bookmark tracks where a run currently is within a story: the
// active position, the call/return stack, named save points, and variable
// state.
package bookmark

import "github.com/ardnew/kataru/story"

// Snapshot is a named save point: a complete copy of a Bookmark's position,
// call stack, and state, restorable independently of the live run.
type Snapshot struct {
	Position story.Position
	Stack    []story.Position
	State    story.State
}

// Bookmark is the mutable cursor a runner advances as it steps through a
// story: the current Position, the stack of positions to return to on
// Return, every named Snapshot taken so far, and all variable State.
type Bookmark struct {
	Position  story.Position
	Stack     []story.Position
	Snapshots map[string]Snapshot
	State     story.State
}

// New returns a Bookmark positioned at the given passage with the given
// initial state.
func New(namespace, passage string, state story.State) *Bookmark {
	return &Bookmark{
		Position:  story.Position{Namespace: namespace, Passage: passage},
		Snapshots: make(map[string]Snapshot),
		State:     state,
	}
}

// Push saves the current position on the call stack, for a later Pop.
func (b *Bookmark) Push() {
	b.Stack = append(b.Stack, b.Position)
}

// Pop removes and returns the most recently pushed position. The second
// return value is false if the stack is empty.
func (b *Bookmark) Pop() (story.Position, bool) {
	if len(b.Stack) == 0 {
		return story.Position{}, false
	}

	last := len(b.Stack) - 1
	pos := b.Stack[last]
	b.Stack = b.Stack[:last]

	return pos, true
}

// ReplaceTop overwrites the most recently pushed position in place, without
// growing the stack. The runner's tail-call elision does not use it: it
// skips the Push instead.
func (b *Bookmark) ReplaceTop(pos story.Position) bool {
	if len(b.Stack) == 0 {
		return false
	}

	b.Stack[len(b.Stack)-1] = pos

	return true
}

// Goto moves to an absolute position without touching the call stack.
func (b *Bookmark) Goto(pos story.Position) {
	b.Position = pos
}

// Save records a named Snapshot of the current position, stack, and state.
func (b *Bookmark) Save(name string) {
	b.Snapshots[name] = Snapshot{
		Position: b.Position,
		Stack:    append([]story.Position(nil), b.Stack...),
		State:    b.State.Clone(),
	}
}

// Load restores a previously saved Snapshot by name. It reports false if no
// such snapshot exists.
func (b *Bookmark) Load(name string) bool {
	snap, ok := b.Snapshots[name]
	if !ok {
		return false
	}

	b.Position = snap.Position
	b.Stack = append([]story.Position(nil), snap.Stack...)
	b.State = snap.State.Clone()

	return true
}

// Lookup resolves a variable reference per §3: an Explicit namespace in ref
// (including an explicit empty one, addressing the global namespace) is
// honored as-is; a bare name first tries the bookmark's current namespace,
// then falls back to the global namespace.
func (b *Bookmark) Lookup(ref story.QualifiedName) (story.Value, bool) {
	if ref.Explicit {
		return b.State.Get(ref.Namespace, ref.Name)
	}

	if v, ok := b.State.Get(b.Position.Namespace, ref.Name); ok {
		return v, true
	}

	return b.State.Get(story.GlobalNamespace, ref.Name)
}

// Assign applies a state mutation's target/value pair directly, bypassing
// the Op semantics (callers evaluating SET/ADD/SUB apply the operator
// first, then Assign the result). A bare ref writes back to whichever
// namespace already owns the variable -- current namespace first, global
// second -- and only declares it fresh in the current namespace if it
// exists in neither, so a write to a variable inherited from global still
// reaches the global entry.
func (b *Bookmark) Assign(ref story.QualifiedName, v story.Value) {
	if ref.Explicit {
		b.State.Set(ref.Namespace, ref.Name, v)

		return
	}

	if _, ok := b.State.Get(b.Position.Namespace, ref.Name); ok {
		b.State.Set(b.Position.Namespace, ref.Name, v)

		return
	}

	if _, ok := b.State.Get(story.GlobalNamespace, ref.Name); ok {
		b.State.Set(story.GlobalNamespace, ref.Name, v)

		return
	}

	b.State.Set(b.Position.Namespace, ref.Name, v)
}
