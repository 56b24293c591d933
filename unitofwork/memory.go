package unitofwork

import (
	"cosmokit/domain"
	"cosmokit/errors"
	"cosmokit/repositories"
	"log/slog"
)

// MemoryUnitOfWork wraps a MemoryRepository. Begin takes a shallow snapshot of the
// stored items; a rollback without commit puts that snapshot back.
type MemoryUnitOfWork[A domain.Aggregate] struct {
	log        *slog.Logger
	repository *repositories.MemoryRepository[A]
	backup     repositories.MemorySnapshot[A]
	open       bool
	committed  bool
}

// NewMemoryUnitOfWork fails with ErrTypeMismatch unless repository is a
// *repositories.MemoryRepository[A].
func NewMemoryUnitOfWork[A domain.Aggregate](log *slog.Logger, repository repositories.Repository[A]) (*MemoryUnitOfWork[A], error) {
	memory, err := checkRepositoryType[*repositories.MemoryRepository[A]](repository)
	if err != nil {
		return nil, err
	}
	return &MemoryUnitOfWork[A]{log: log, repository: memory}, nil
}

func (u *MemoryUnitOfWork[A]) Begin() error {
	u.backup = u.repository.Snapshot()
	u.open = true
	u.committed = false
	return nil
}

func (u *MemoryUnitOfWork[A]) Commit() error {
	if !u.open {
		return errors.ErrNotInTransaction
	}
	u.committed = true
	return nil
}

func (u *MemoryUnitOfWork[A]) Rollback() error {
	if !u.open {
		return errors.ErrNotInTransaction
	}
	u.open = false
	if u.committed {
		return nil
	}
	u.repository.Restore(u.backup)
	u.log.Debug("Unit of work rolled back")
	return nil
}

func (u *MemoryUnitOfWork[A]) Repository() repositories.Repository[A] {
	return u.repository
}

func (u *MemoryUnitOfWork[A]) CollectNewEvents() []domain.Event {
	return collectNewEvents(u.repository.Seen())
}

var _ UnitOfWork[domain.Aggregate] = (*MemoryUnitOfWork[domain.Aggregate])(nil)
