// Package unitofwork defines the transaction boundary around one repository.
// A unit is open between Begin and Rollback; Rollback always runs on exit and is a
// no-op once Commit succeeded. Events are drained from every aggregate the
// repository has seen, never from aggregates it did not touch.
package unitofwork

import (
	"cosmokit/domain"
	"cosmokit/errors"
	"cosmokit/repositories"
	"fmt"
	"reflect"
)

type UnitOfWork[A domain.Aggregate] interface {
	// Begin enters the scope. Every entry starts a fresh rollback target.
	Begin() error
	Commit() error
	Rollback() error
	Repository() repositories.Repository[A]
	// CollectNewEvents drains the pending events of every seen aggregate:
	// aggregates in seen order, events oldest first. Nothing is returned twice.
	CollectNewEvents() []domain.Event
}

// Run executes fn inside the scope of uow. Rollback runs on every exit path,
// including a panic, which is re-raised once the unit is rolled back.
func Run[A domain.Aggregate](uow UnitOfWork[A], fn func() error) (err error) {
	if err = uow.Begin(); err != nil {
		return err
	}
	defer func() {
		r := recover()
		if rollbackErr := uow.Rollback(); rollbackErr != nil && err == nil {
			err = rollbackErr
		}
		if r != nil {
			panic(r)
		}
	}()
	return fn()
}

func collectNewEvents[A domain.Aggregate](seen []A) []domain.Event {
	var events []domain.Event
	for _, aggregate := range seen {
		events = append(events, aggregate.DrainEvents()...)
	}
	return events
}

// checkRepositoryType fails unless repository is exactly of the declared type.
func checkRepositoryType[R any](repository any) (R, error) {
	typed, ok := repository.(R)
	if !ok || reflect.ValueOf(repository).IsNil() {
		var zero R
		return zero, fmt.Errorf("%w: expecting repository of type %s, got %T",
			errors.ErrTypeMismatch, reflect.TypeFor[R](), repository)
	}
	return typed, nil
}
