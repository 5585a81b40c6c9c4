package resolve

// constraintLayer is a singly-linked chain of immutable name->predicate
// maps, newest on top. Pushing a new layer on recursion is O(1); looking up
// a name walks outward until a layer defines it, which is O(depth) in the
// worst case. This avoids deep-copying the whole constraint set on every
// candidate.
type constraintLayer struct {
	entries map[string]*predicate
	parent  *constraintLayer
}

// get returns the predicate recorded for name in the nearest layer that
// defines it, or nil if no layer constrains that name yet.
func (l *constraintLayer) get(name string) *predicate {
	for cur := l; cur != nil; cur = cur.parent {
		if p, ok := cur.entries[name]; ok {
			return p
		}
	}
	return nil
}

// push returns a new layer sitting on top of l, defining entries.
func (l *constraintLayer) push(entries map[string]*predicate) *constraintLayer {
	return &constraintLayer{entries: entries, parent: l}
}
