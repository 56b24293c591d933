package repositories

import (
	"cosmokit/domain"
	"cosmokit/errors"
	"fmt"
	"log/slog"
	"reflect"
)

// Repository is a keyed store of exactly one concrete aggregate type.
// Every backend must replicate the seen-set and type-checking contract even
// when persistence differs.
type Repository[A domain.Aggregate] interface {
	// Add inserts or overwrites (last write wins) and marks the aggregate as seen.
	Add(aggregate A) error
	// Get returns false on a miss, never an error. A hit is marked as seen.
	Get(criteria Criteria) (A, bool, error)
	// Seen lists every aggregate instance touched by Add or a successful Get.
	Seen() []A
}

// Criteria names the field values used to resolve an aggregate.
type Criteria map[string]any

func By(field string, value any) Criteria {
	return Criteria{field: value}
}

type Option func(*options)

type options struct {
	matchKey string
	log      *slog.Logger
}

// WithMatchKey resolves Get criteria naming this field by comparing it with the
// stored aggregates, instead of going through the hash fields.
func WithMatchKey(field string) Option {
	return func(o *options) { o.matchKey = field }
}

func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

func newOptions(opts []Option) options {
	o := options{log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// matchValue returns the value to match on when the criteria target the match key.
func (o options) matchValue(criteria Criteria) (any, bool) {
	if o.matchKey == "" {
		return nil, false
	}
	v, ok := criteria[o.matchKey]
	return v, ok
}

func (o options) matches(aggregate domain.Aggregate, value any) bool {
	field, ok := domain.FieldValue(aggregate, o.matchKey)
	return ok && domain.SameFieldValue(field, value)
}

// declaredType returns the concrete aggregate type a repository is bound to.
// Aggregates are mutated through pointers, so only pointer types are accepted.
func declaredType[A domain.Aggregate]() (reflect.Type, error) {
	t := reflect.TypeFor[A]()
	if t.Kind() != reflect.Pointer {
		return nil, fmt.Errorf("%w: aggregate type %s must be a pointer to a struct", errors.ErrTypeMismatch, t)
	}
	if t.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: aggregate type %s must be a pointer to a struct", errors.ErrTypeMismatch, t)
	}
	return t, nil
}

func checkAggregateType(declared reflect.Type, aggregate domain.Aggregate) error {
	if aggregate == nil || reflect.ValueOf(aggregate).IsNil() {
		return fmt.Errorf("%w: expecting aggregate of type %s, got nil", errors.ErrTypeMismatch, declared)
	}
	if t := reflect.TypeOf(aggregate); t != declared {
		return fmt.Errorf("%w: expecting aggregate of type %s, got %s", errors.ErrTypeMismatch, declared, t)
	}
	return nil
}
