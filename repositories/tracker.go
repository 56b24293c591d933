package repositories

import (
	"cosmokit/domain"
	"slices"
)

// Tracker is the seen set of a repository: every aggregate instance returned by
// Get or passed to Add. Instances are kept once, in the order they were first seen,
// so event collection is deterministic across aggregates.
type Tracker[A domain.Aggregate] struct {
	order []A
	index map[domain.Aggregate]struct{}
}

func NewTracker[A domain.Aggregate]() *Tracker[A] {
	return &Tracker[A]{index: make(map[domain.Aggregate]struct{})}
}

// Track adds the instance and reports whether it was new.
func (t *Tracker[A]) Track(aggregate A) bool {
	if _, ok := t.index[aggregate]; ok {
		return false
	}
	t.index[aggregate] = struct{}{}
	t.order = append(t.order, aggregate)
	return true
}

func (t *Tracker[A]) Contains(aggregate A) bool {
	_, ok := t.index[aggregate]
	return ok
}

func (t *Tracker[A]) Len() int {
	return len(t.order)
}

// All returns a copy; callers cannot grow or shrink the set through it.
func (t *Tracker[A]) All() []A {
	return slices.Clone(t.order)
}

// Reset forgets everything. Only a unit of work rollback does this.
func (t *Tracker[A]) Reset() {
	t.order = nil
	t.index = make(map[domain.Aggregate]struct{})
}

// Retain keeps only the instances for which keep returns true, in their order.
func (t *Tracker[A]) Retain(keep func(A) bool) {
	kept := t.order[:0]
	for _, aggregate := range t.order {
		if keep(aggregate) {
			kept = append(kept, aggregate)
			continue
		}
		delete(t.index, aggregate)
	}
	clear(t.order[len(kept):])
	t.order = kept
}
