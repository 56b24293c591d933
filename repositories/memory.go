package repositories

import (
	"cosmokit/domain"
	"log/slog"
	"maps"
	"reflect"
	"slices"
)

// MemoryRepository is the reference backend: a plain identity -> aggregate map.
// It is not safe for concurrent use, like the bus driving it.
type MemoryRepository[A domain.Aggregate] struct {
	log      *slog.Logger
	opts     options
	declared reflect.Type
	items    map[domain.Identity]A
	order    []domain.Identity // insertion order, for deterministic match key scans
	seen     *Tracker[A]
}

// MemorySnapshot is a shallow copy of the stored items: the aggregates themselves
// are shared, only the index is copied.
type MemorySnapshot[A domain.Aggregate] struct {
	items map[domain.Identity]A
	order []domain.Identity
}

func NewMemoryRepository[A domain.Aggregate](opts ...Option) (*MemoryRepository[A], error) {
	declared, err := declaredType[A]()
	if err != nil {
		return nil, err
	}
	o := newOptions(opts)
	return &MemoryRepository[A]{
		log:      o.log,
		opts:     o,
		declared: declared,
		items:    make(map[domain.Identity]A),
		seen:     NewTracker[A](),
	}, nil
}

// Seed stores initial items without marking them as seen.
func (r *MemoryRepository[A]) Seed(items ...A) error {
	for _, item := range items {
		if _, err := r.put(item); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemoryRepository[A]) Add(aggregate A) error {
	id, err := r.put(aggregate)
	if err != nil {
		return err
	}
	r.seen.Track(aggregate)
	r.log.Debug("Aggregate added", "type", r.declared.String(), "identity", id.String())
	return nil
}

func (r *MemoryRepository[A]) put(aggregate A) (domain.Identity, error) {
	if err := checkAggregateType(r.declared, aggregate); err != nil {
		return "", err
	}
	id, err := domain.IdentityOf(aggregate)
	if err != nil {
		return "", err
	}
	if _, exists := r.items[id]; !exists {
		r.order = append(r.order, id)
	}
	r.items[id] = aggregate
	return id, nil
}

func (r *MemoryRepository[A]) Get(criteria Criteria) (A, bool, error) {
	aggregate, ok, err := r.lookup(criteria)
	if err != nil || !ok {
		return aggregate, false, err
	}
	r.seen.Track(aggregate)
	return aggregate, true, nil
}

func (r *MemoryRepository[A]) lookup(criteria Criteria) (A, bool, error) {
	var zero A
	if value, ok := r.opts.matchValue(criteria); ok {
		for _, id := range r.order {
			if item := r.items[id]; r.opts.matches(item, value) {
				return item, true, nil
			}
		}
		return zero, false, nil
	}

	id, err := domain.IdentityFromFields[A](criteria)
	if err != nil {
		return zero, false, err
	}
	item, ok := r.items[id]
	return item, ok, nil
}

func (r *MemoryRepository[A]) Seen() []A {
	return r.seen.All()
}

func (r *MemoryRepository[A]) Len() int {
	return len(r.items)
}

// Items lists stored aggregates in insertion order. It does not mark them as seen.
func (r *MemoryRepository[A]) Items() []A {
	items := make([]A, 0, len(r.order))
	for _, id := range r.order {
		items = append(items, r.items[id])
	}
	return items
}

func (r *MemoryRepository[A]) Snapshot() MemorySnapshot[A] {
	return MemorySnapshot[A]{
		items: maps.Clone(r.items),
		order: slices.Clone(r.order),
	}
}

// Restore puts back a snapshot in place and starts a fresh seen set,
// so holders of this repository keep a valid reference.
func (r *MemoryRepository[A]) Restore(snapshot MemorySnapshot[A]) {
	r.items = maps.Clone(snapshot.items)
	if r.items == nil {
		r.items = make(map[domain.Identity]A)
	}
	r.order = slices.Clone(snapshot.order)
	r.seen.Reset()
}

var _ Repository[domain.Aggregate] = (*MemoryRepository[domain.Aggregate])(nil)
