package story

// State holds every namespace's variables: the outer key is the namespace
// name, the inner key is the variable name within that namespace.
type State map[string]map[string]Value

// NewState returns an empty State.
func NewState() State { return make(State) }

// Get looks up a variable in the given namespace.
func (s State) Get(namespace, name string) (Value, bool) {
	ns, ok := s[namespace]
	if !ok {
		return None, false
	}

	v, ok := ns[name]

	return v, ok
}

// Set assigns a variable in the given namespace, creating the namespace if
// necessary.
func (s State) Set(namespace, name string, v Value) {
	ns, ok := s[namespace]
	if !ok {
		ns = make(map[string]Value)
		s[namespace] = ns
	}

	ns[name] = v
}

// Clone performs a deep copy of s, required by bookmark snapshotting (I5).
func (s State) Clone() State {
	out := make(State, len(s))

	for namespace, vars := range s {
		cp := make(map[string]Value, len(vars))
		for name, v := range vars {
			cp[name] = v
		}

		out[namespace] = cp
	}

	return out
}

// Merge overlays src's variables onto s in place, namespace by namespace,
// without discarding namespaces or variables absent from src.
func (s State) Merge(src State) {
	for namespace, vars := range src {
		for name, v := range vars {
			s.Set(namespace, name, v)
		}
	}
}
