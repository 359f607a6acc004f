package story

import "strings"

// QualifiedName is a variable, character, or passage reference that may
// carry an explicit namespace (e.g. "chapter1:hero" addresses "hero" within
// namespace "chapter1"). A bare reference (no colon at all) must be
// resolved against the current namespace at the point of use; a reference
// with an explicit but empty namespace (a leading colon, e.g. ":hero")
// addresses the global namespace regardless of what is current. Explicit
// distinguishes these two empty-Namespace cases -- it is false only for the
// former.
type QualifiedName struct {
	Namespace string
	Name      string
	Explicit  bool
}

// ParseQualifiedName splits ref on its LAST colon, matching the reference
// implementation's rsplitn(2, ":") semantics: "a:b:c" splits into namespace
// "a:b" and name "c", so namespace names may themselves contain colons. A
// ref with no colon yields a non-Explicit, empty Namespace; a ref with a
// colon yields an Explicit Namespace even if the part before the colon is
// itself empty (":hero" addresses the global namespace).
func ParseQualifiedName(ref string) QualifiedName {
	i := strings.LastIndex(ref, ":")
	if i < 0 {
		return QualifiedName{Name: ref}
	}

	return QualifiedName{Namespace: ref[:i], Name: ref[i+1:], Explicit: true}
}

// Resolve returns the namespace this name should be looked up in: its own
// Namespace if Explicit (including the empty string, for the global
// namespace), otherwise the given current namespace.
func (q QualifiedName) Resolve(current string) string {
	if q.Explicit {
		return q.Namespace
	}

	return current
}

// String renders q back into "namespace:name" or bare "name" form.
func (q QualifiedName) String() string {
	if !q.Explicit {
		return q.Name
	}

	return q.Namespace + ":" + q.Name
}
