// Package storydoc is the thin producer that turns an authored YAML
// document into a [story.Story]. It does no validation of its own (that is
// the job of package validator, run as a separate optional pass) beyond
// what is required to build a well-typed tree: a duplicate namespace or
// passage name is reported as apperr.ErrDuplicateNamespace or
// apperr.ErrDuplicatePassage, a one-key line whose key is no keyword,
// declared character or declared command as apperr.ErrUnknownCommand, and
// any other unusable shape as apperr.ErrMalformedLine.
//
// The document shape is one top-level mapping of namespace name to
// section, each section an optional "config" (state/characters/commands/
// on_enter/on_exit) plus a "passages" mapping of passage name to an
// ordered sequence of lines. A line is a bare string (implicit text), or a
// one-key mapping keyed by a character name, "choices", "set", "call",
// "goto", "return", "input", or a command name -- except a branching line,
// which is the one shape with more than one key: each key is "if <expr>",
// "elif <expr>", or "else", holding its arm's body, mirroring the ordered
// if/elif/else chain of the reference document format.
package storydoc
