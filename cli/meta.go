package cli

// Name and Description identify the command-line tool for help text, the
// configuration-directory prefix, and environment-variable namespacing.
const (
	Name        = "kataru"
	Description = "Interactive branching-narrative story runtime."
)
