package story

// ChoiceItem is one selectable option: the text shown to the player and the
// passage it resolves to. Target is always a concrete passage name by the
// time a Choices value is stored on a Story -- null-target inheritance
// (§4.4) is resolved while the authoring document is loaded.
type ChoiceItem struct {
	Text   string
	Target string
}

// ChoiceGroup is either the implicit top-level group of unconditional items
// (Cond == "") or a conditional group gated by a boolean expression.
type ChoiceGroup struct {
	Cond  string
	Items []ChoiceItem
}

// Choices is a present-a-menu line: an ordered sequence of groups, each
// holding one or more items, plus an optional response timeout in seconds
// (0 means no timeout).
type Choices struct {
	Groups  []ChoiceGroup
	Timeout float64
}
