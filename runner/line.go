package runner

import (
	"github.com/ardnew/kataru/choice"
	"github.com/ardnew/kataru/story"
)

// LineKind tags the variant of a [Line] surfaced to a host.
type LineKind int

const (
	LineText LineKind = iota
	LineDialogue
	LineChoices
	LineInput
	LineCommand
	LineInvalidChoice
	LineEnd
)

func (k LineKind) String() string {
	switch k {
	case LineText:
		return "text"
	case LineDialogue:
		return "dialogue"
	case LineChoices:
		return "choices"
	case LineInput:
		return "input"
	case LineCommand:
		return "command"
	case LineInvalidChoice:
		return "invalid_choice"
	case LineEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Line is one unit of output a host receives from [Runner.Next]: narration
// or dialogue to display, a menu of choices to present (with its response
// Timeout, 0 meaning none), a prompt awaiting free-form input, a host
// command with its fully-resolved parameters, an input that didn't match
// any currently-offered option, or the terminal end-of-story marker.
//
// Commands do not mutate interpreter state -- only the host reacts, by
// invoking whatever the command name means to it and then calling Next
// again to resume.
type Line struct {
	Kind        LineKind
	Speaker     string
	Text        string
	Options     []choice.Option
	Timeout     float64
	Prompt      string
	CommandName string
	Params      map[string]story.Value
}
