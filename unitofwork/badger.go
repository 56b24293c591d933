package unitofwork

import (
	"cosmokit/domain"
	"cosmokit/errors"
	"cosmokit/repositories"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// BadgerUnitOfWork maps the scope onto one BadgerDB read-write transaction.
// Commit writes back every seen aggregate and commits; Rollback discards.
// When the badger commit fails the transaction is discarded, while events already
// collected by the bus stay collected: the caller receives the commit error.
type BadgerUnitOfWork[A domain.Aggregate] struct {
	db         *badger.DB
	log        *slog.Logger
	repository *repositories.BadgerRepository[A]
	txn        *badger.Txn
	committed  bool
}

// NewBadgerUnitOfWork fails with ErrTypeMismatch unless repository is a
// *repositories.BadgerRepository[A].
func NewBadgerUnitOfWork[A domain.Aggregate](db *badger.DB, log *slog.Logger, repository repositories.Repository[A]) (*BadgerUnitOfWork[A], error) {
	stored, err := checkRepositoryType[*repositories.BadgerRepository[A]](repository)
	if err != nil {
		return nil, err
	}
	return &BadgerUnitOfWork[A]{db: db, log: log, repository: stored}, nil
}

func (u *BadgerUnitOfWork[A]) Begin() error {
	if u.txn != nil {
		// Re-entering replaces the previous rollback target.
		u.txn.Discard()
	}
	u.txn = u.db.NewTransaction(true)
	u.committed = false
	u.repository.Bind(u.txn)
	return nil
}

func (u *BadgerUnitOfWork[A]) Commit() error {
	if u.txn == nil {
		return errors.ErrNotInTransaction
	}
	if err := u.repository.Flush(); err != nil {
		return err
	}
	if err := u.txn.Commit(); err != nil {
		return fmt.Errorf("badger commit: %w", err)
	}
	u.committed = true
	return nil
}

func (u *BadgerUnitOfWork[A]) Rollback() error {
	if u.txn == nil {
		return errors.ErrNotInTransaction
	}
	if !u.committed {
		u.txn.Discard()
		u.log.Debug("Unit of work rolled back")
	}
	u.repository.Unbind(!u.committed)
	u.txn = nil
	return nil
}

func (u *BadgerUnitOfWork[A]) Repository() repositories.Repository[A] {
	return u.repository
}

func (u *BadgerUnitOfWork[A]) CollectNewEvents() []domain.Event {
	return collectNewEvents(u.repository.Seen())
}

var _ UnitOfWork[domain.Aggregate] = (*BadgerUnitOfWork[domain.Aggregate])(nil)
