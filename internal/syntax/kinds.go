package syntax

// KindSet is a named allow-list of node kinds. Kinds stay open strings so
// grammar additions never break matching; unknown kinds are simply absent.
type KindSet map[string]struct{}

// NewKindSet builds a set from the given kinds.
func NewKindSet(kinds ...string) KindSet {
	s := make(KindSet, len(kinds))
	for _, k := range kinds {
		s[k] = struct{}{}
	}
	return s
}

// Has reports whether kind is in the set.
func (s KindSet) Has(kind string) bool {
	_, ok := s[kind]
	return ok
}
