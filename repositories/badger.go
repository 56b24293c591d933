package repositories

import (
	"cosmokit/domain"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/dgraph-io/badger/v4"
)

// BadgerRepository persists aggregates in BadgerDB.
// Keys are formatted as "agg:{type}:{identity}" so a prefix scan lists one type.
//
// Within a unit of work the repository is bound to the unit's transaction and keeps
// an identity map: reading the same key twice returns the same instance, so
// mutations and events recorded on a loaded aggregate are never lost.
type BadgerRepository[A domain.Aggregate] struct {
	db       *badger.DB
	log      *slog.Logger
	opts     options
	codec    Codec[A]
	declared reflect.Type
	prefix   []byte
	txn      *badger.Txn
	loaded   map[domain.Identity]A
	seen     *Tracker[A]
}

// NewBadgerRepository builds a repository over db. A nil codec defaults to JSON.
func NewBadgerRepository[A domain.Aggregate](db *badger.DB, codec Codec[A], opts ...Option) (*BadgerRepository[A], error) {
	declared, err := declaredType[A]()
	if err != nil {
		return nil, err
	}
	if codec == nil {
		codec = JSONCodec[A]{}
	}
	o := newOptions(opts)
	return &BadgerRepository[A]{
		db:       db,
		log:      o.log,
		opts:     o,
		codec:    codec,
		declared: declared,
		prefix:   []byte(fmt.Sprintf("agg:%s:", declared.Elem().String())),
		loaded:   make(map[domain.Identity]A),
		seen:     NewTracker[A](),
	}, nil
}

func (r *BadgerRepository[A]) key(id domain.Identity) []byte {
	return append(append([]byte{}, r.prefix...), string(id)...)
}

func (r *BadgerRepository[A]) Add(aggregate A) error {
	if err := checkAggregateType(r.declared, aggregate); err != nil {
		return err
	}
	id, err := domain.IdentityOf(aggregate)
	if err != nil {
		return err
	}
	if err = r.write(id, aggregate); err != nil {
		return fmt.Errorf("storing %s: %w", r.declared, err)
	}
	r.loaded[id] = aggregate
	r.seen.Track(aggregate)
	r.log.Debug("Aggregate added", "type", r.declared.String(), "identity", id.String())
	return nil
}

func (r *BadgerRepository[A]) write(id domain.Identity, aggregate A) error {
	bytes, err := r.codec.Encode(aggregate)
	if err != nil {
		return err
	}
	return r.update(func(txn *badger.Txn) error {
		return txn.Set(r.key(id), bytes)
	})
}

func (r *BadgerRepository[A]) Get(criteria Criteria) (A, bool, error) {
	aggregate, ok, err := r.lookup(criteria)
	if err != nil || !ok {
		return aggregate, false, err
	}
	r.seen.Track(aggregate)
	return aggregate, true, nil
}

func (r *BadgerRepository[A]) lookup(criteria Criteria) (A, bool, error) {
	var zero A
	if value, ok := r.opts.matchValue(criteria); ok {
		return r.scan(value)
	}

	id, err := domain.IdentityFromFields[A](criteria)
	if err != nil {
		return zero, false, err
	}
	if aggregate, ok := r.loaded[id]; ok {
		return aggregate, true, nil
	}

	var data []byte
	err = r.view(func(txn *badger.Txn) error {
		item, err := txn.Get(r.key(id))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}
	return r.remember(id, data)
}

// scan walks every stored aggregate of this type in key order and returns the
// first one whose match key field equals value.
func (r *BadgerRepository[A]) scan(value any) (A, bool, error) {
	var zero A
	var found A
	var hit bool
	err := r.view(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(r.prefix); it.ValidForPrefix(r.prefix); it.Next() {
			item := it.Item()
			id := domain.Identity(item.Key()[len(r.prefix):])
			if aggregate, ok := r.loaded[id]; ok {
				if r.opts.matches(aggregate, value) {
					found, hit = aggregate, true
					return nil
				}
				continue
			}
			data, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			aggregate, err := r.codec.Decode(data)
			if err != nil {
				return err
			}
			if r.opts.matches(aggregate, value) {
				r.loaded[id] = aggregate
				found, hit = aggregate, true
				return nil
			}
		}
		return nil
	})
	if err != nil || !hit {
		return zero, false, err
	}
	return found, true, nil
}

func (r *BadgerRepository[A]) remember(id domain.Identity, data []byte) (A, bool, error) {
	aggregate, err := r.codec.Decode(data)
	if err != nil {
		var zero A
		return zero, false, fmt.Errorf("decoding %s: %w", r.declared, err)
	}
	r.loaded[id] = aggregate
	return aggregate, true, nil
}

func (r *BadgerRepository[A]) Seen() []A {
	return r.seen.All()
}

// Bind routes every read and write through txn until Unbind.
// Instances from earlier units whose events are drained are dropped from the seen
// set: the next Get decodes a fresh instance of the same aggregate anyway.
func (r *BadgerRepository[A]) Bind(txn *badger.Txn) {
	r.txn = txn
	r.forget()
	r.seen.Retain(func(aggregate A) bool {
		return len(aggregate.Events()) > 0
	})
}

// Flush writes back every aggregate loaded or added since Bind, so aggregates
// that were only read but mutated afterwards are persisted too.
func (r *BadgerRepository[A]) Flush() error {
	for id, aggregate := range r.loaded {
		if err := r.write(id, aggregate); err != nil {
			return fmt.Errorf("flushing %s: %w", r.declared, err)
		}
	}
	return nil
}

// Unbind detaches the transaction. When discarded is true, the identity map and the
// seen set are dropped since their instances may hold state that was never stored.
func (r *BadgerRepository[A]) Unbind(discarded bool) {
	r.txn = nil
	if discarded {
		r.forget()
		r.seen.Reset()
	}
}

func (r *BadgerRepository[A]) forget() {
	r.loaded = make(map[domain.Identity]A)
}

func (r *BadgerRepository[A]) view(fn func(txn *badger.Txn) error) error {
	if r.txn != nil {
		return fn(r.txn)
	}
	return r.db.View(fn)
}

func (r *BadgerRepository[A]) update(fn func(txn *badger.Txn) error) error {
	if r.txn != nil {
		return fn(r.txn)
	}
	return r.db.Update(fn)
}

// Count returns the number of stored aggregates of this type.
func (r *BadgerRepository[A]) Count() (int, error) {
	count := 0
	err := r.view(func(txn *badger.Txn) error {
		iterOptions := badger.DefaultIteratorOptions
		iterOptions.PrefetchValues = false
		it := txn.NewIterator(iterOptions)
		defer it.Close()
		for it.Seek(r.prefix); it.ValidForPrefix(r.prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

var _ Repository[domain.Aggregate] = (*BadgerRepository[domain.Aggregate])(nil)
