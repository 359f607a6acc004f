// Package choice resolves an authored Choices line into the menu a player
// actually sees: conditional groups are filtered by their guard expression,
// and the surviving items are renumbered into a contiguous selectable list.
package choice

import (
	"github.com/ardnew/kataru/expr"
	"github.com/ardnew/kataru/story"
)

// Option is one menu entry a player can select. Timeout carries the
// authored response timeout for the menu it belongs to (0 means none); it
// is the same value on every Option in one Resolve call, repeated per-item
// so a host acting on a single selected Option still has it available.
type Option struct {
	Index   int
	Text    string
	Target  string
	Timeout float64
}

// Resolve evaluates every conditional group's guard against resolver and
// returns the visible options in authored order. The implicit top-level
// group (Cond == "") is always visible.
func Resolve(choices story.Choices, resolver expr.Resolver) ([]Option, error) {
	var out []Option

	for _, group := range choices.Groups {
		visible := group.Cond == ""
		if !visible {
			ok, err := expr.EvaluateBool(group.Cond, resolver)
			if err != nil {
				return nil, err
			}

			visible = ok
		}

		if !visible {
			continue
		}

		for _, item := range group.Items {
			out = append(out, Option{
				Index:   len(out),
				Text:    item.Text,
				Target:  item.Target,
				Timeout: choices.Timeout,
			})
		}
	}

	return out, nil
}

// Select returns the option at the player-facing index, or false if it is
// out of range.
func Select(options []Option, index int) (Option, bool) {
	if index < 0 || index >= len(options) {
		return Option{}, false
	}

	return options[index], true
}

// InheritTargets fills every item with an empty Target by walking items in
// reverse authored order and carrying the most recently seen concrete
// target backward (§4.4): this lets authors write several display texts
// above a single target written once at the bottom.
func InheritTargets(items []story.ChoiceItem) []story.ChoiceItem {
	out := make([]story.ChoiceItem, len(items))
	copy(out, items)

	var last string

	for i := len(out) - 1; i >= 0; i-- {
		if out[i].Target == "" {
			out[i].Target = last
		} else {
			last = out[i].Target
		}
	}

	return out
}
