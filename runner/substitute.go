package runner

import (
	"strings"

	"github.com/ardnew/kataru/expr"
	"github.com/ardnew/kataru/story"
)

// Resolver looks up a variable reference for text substitution.
type Resolver = expr.Resolver

// substitute replaces every variable reference in text with its current
// value, resolved against resolver. Two forms are recognized:
//
//   - bracketed: "{$ns:name}" or "{$name}" -- the reference may be followed
//     immediately by other text with no ambiguity about where it ends.
//   - bare: "$ns:name" or "$name" -- terminated by the first character that
//     cannot continue an identifier (anything but letters, digits, '_', or
//     the single namespace-separating ':').
//
// This is a hand-rolled single-pass scanner rather than a regex engine:
// the grammar is a simple state machine (literal text, then '$', then an
// optional "ns:" prefix, then a name) with no need for backtracking.
func substitute(text string, resolver Resolver) string {
	var out strings.Builder

	i := 0
	for i < len(text) {
		c := text[i]

		switch {
		case c == '{' && i+1 < len(text) && text[i+1] == '$':
			end := strings.IndexByte(text[i:], '}')
			if end < 0 {
				out.WriteString(text[i:])

				return out.String()
			}

			ref := text[i+2 : i+end]
			literal := text[i : i+end+1]
			out.WriteString(lookupRendered(ref, literal, resolver))
			i += end + 1

		case c == '$':
			name, width := scanBareRef(text[i+1:])
			if width == 0 {
				out.WriteByte(c)
				i++

				continue
			}

			literal := text[i : i+1+width]
			out.WriteString(lookupRendered(name, literal, resolver))
			i += 1 + width

		default:
			out.WriteByte(c)
			i++
		}
	}

	return out.String()
}

// scanBareRef scans a bare "ns:name" or "name" reference starting at s[0],
// returning the reference text and its width in bytes. Width is 0 if s does
// not begin with an identifier character.
func scanBareRef(s string) (ref string, width int) {
	n := 0
	for n < len(s) && isIdentByte(s[n]) {
		n++
	}

	if n == 0 {
		return "", 0
	}

	// A trailing colon not followed by another identifier is not part of
	// the reference (e.g. a sentence ending "...$hp:" mid-prose).
	if n < len(s) && s[n] == ':' {
		rest := n + 1
		m := 0
		for rest+m < len(s) && isIdentByte(s[rest+m]) {
			m++
		}

		if m > 0 {
			return s[:rest+m], rest + m
		}
	}

	return s[:n], n
}

func isIdentByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// lookupRendered resolves ref and renders its value, or returns literal
// unchanged (its original delimited text, "{$ref}" or "$ref") if ref does
// not resolve -- per the reference implementation, an unresolved
// substitution is left in place rather than blanked out.
func lookupRendered(ref, literal string, resolver Resolver) string {
	qn := story.ParseQualifiedName(ref)

	v, ok := resolver.Lookup(qn)
	if !ok {
		return literal
	}

	return v.String()
}
