// Package view owns the user-facing view state of the diagram: which
// nodes are collapsed and the pan/zoom transform. Both stores replace
// their snapshot on every mutation rather than patching it in place,
// so a render in flight never observes a half-updated value.
package view

// CollapseSet is an immutable set of node identifiers whose
// descendants are excluded from layout and rendering. The collapsed
// node itself always stays visible. Stale identifiers (nodes no longer
// in the tree) are tolerated and simply have no effect.
type CollapseSet map[string]struct{}

// NewCollapseSet returns an empty collapse set.
func NewCollapseSet() CollapseSet {
	return CollapseSet{}
}

// Contains reports whether id is collapsed.
func (s CollapseSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of collapsed identifiers, stale ones
// included.
func (s CollapseSet) Len() int {
	return len(s)
}

// Toggle returns a new set with the membership of id flipped. The
// receiver is never mutated, so the set referenced by the last
// rendered frame stays intact. Unknown ids are accepted silently.
func (s CollapseSet) Toggle(id string) CollapseSet {
	next := make(CollapseSet, len(s)+1)
	for k := range s {
		next[k] = struct{}{}
	}
	if _, ok := next[id]; ok {
		delete(next, id)
	} else {
		next[id] = struct{}{}
	}
	return next
}

// ResetAll returns the empty set.
func (s CollapseSet) ResetAll() CollapseSet {
	return CollapseSet{}
}

// CollapseStore holds the current collapse set and notifies a
// subscriber when it changes. All access is single-threaded by
// contract; the store exists to make ownership explicit rather than
// to synchronize.
type CollapseStore struct {
	current    CollapseSet
	subscriber func(CollapseSet)
}

// NewCollapseStore creates a store with an empty set.
func NewCollapseStore() *CollapseStore {
	return &CollapseStore{current: NewCollapseSet()}
}

// Current returns the current snapshot.
func (c *CollapseStore) Current() CollapseSet {
	return c.current
}

// Toggle flips membership of id and publishes the new snapshot.
func (c *CollapseStore) Toggle(id string) {
	c.set(c.current.Toggle(id))
}

// ResetAll empties the set and publishes the new snapshot.
func (c *CollapseStore) ResetAll() {
	c.set(c.current.ResetAll())
}

// Subscribe registers fn to be called after every change. Only one
// subscriber is supported; a later call replaces the earlier one.
func (c *CollapseStore) Subscribe(fn func(CollapseSet)) {
	c.subscriber = fn
}

func (c *CollapseStore) set(next CollapseSet) {
	c.current = next
	if c.subscriber != nil {
		c.subscriber(next)
	}
}
