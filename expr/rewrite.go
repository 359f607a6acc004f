package expr

import "regexp"

// qualifiedRef matches "$ns:name" references -- a dollar sign, a namespace
// identifier, a colon, then a variable name. Checked before bareRef since
// the bare pattern would otherwise also match the "name" half of a
// qualified reference.
var qualifiedRef = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*):([A-Za-z_][A-Za-z0-9_]*)`)

// bareRef matches "$name" references with no explicit namespace.
var bareRef = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)

// rewrite rewrites every "$ns:name" and "$name" variable reference in source
// into a call to the __v builtin bound in the evaluation environment, e.g.
// "$hp > 0" becomes `__v("", "hp") > 0` and "$chapter1:hp > 0" becomes
// `__v("chapter1", "hp") > 0`.
//
// This mirrors the reference implementation's two-pass regex substitution
// rather than a hand-rolled tokenizer: the qualified pattern runs first so
// it consumes the colon before the bare pattern has a chance to split on it.
func rewrite(source string) string {
	source = qualifiedRef.ReplaceAllString(source, `__v("$1", "$2")`)
	source = bareRef.ReplaceAllString(source, `__v("", "$1")`)

	return source
}
