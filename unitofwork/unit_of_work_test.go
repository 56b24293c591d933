package unitofwork

import (
	"cosmokit/domain"
	"cosmokit/errors"
	"cosmokit/repositories"
	goerrors "errors"
	"log/slog"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type telemetry struct {
	domain.AggregateRoot
	ID      uuid.UUID
	Message string
}

func (*telemetry) HashFields() []string { return []string{"ID"} }

func newTelemetry(message string) *telemetry {
	return &telemetry{ID: uuid.NewSHA1(uuid.NameSpaceOID, []byte(message)), Message: message}
}

func (t *telemetry) Record(level string) {
	t.AddEvent(telemetryRecorded{Message: t.Message, Level: level})
}

type telemetryRecorded struct {
	domain.BaseEvent
	Message string
	Level   string
}

func newMemoryUnitOfWork(t *testing.T, items ...*telemetry) *MemoryUnitOfWork[*telemetry] {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	repository, err := repositories.NewMemoryRepository[*telemetry](
		repositories.WithMatchKey("Message"), repositories.WithLogger(log))
	require.NoError(t, err)
	require.NoError(t, repository.Seed(items...))
	uow, err := NewMemoryUnitOfWork[*telemetry](log, repository)
	require.NoError(t, err)
	return uow
}

func TestMemoryUnitOfWork_Malformed(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()
	stored, err := repositories.NewBadgerRepository[*telemetry](db, nil)
	req.NoError(err)

	// A memory unit of work cannot wrap a badger repository
	_, err = NewMemoryUnitOfWork[*telemetry](log, stored)
	req.ErrorIs(err, errors.ErrTypeMismatch)

	// Nor nothing at all
	_, err = NewMemoryUnitOfWork[*telemetry](log, nil)
	req.ErrorIs(err, errors.ErrTypeMismatch)

	// And a badger unit of work cannot wrap a memory repository
	memory, err := repositories.NewMemoryRepository[*telemetry]()
	req.NoError(err)
	_, err = NewBadgerUnitOfWork[*telemetry](db, log, memory)
	req.ErrorIs(err, errors.ErrTypeMismatch)
}

func TestMemoryUnitOfWork_Rollback_Without_Commit(t *testing.T) {
	req := require.New(t)
	uow := newMemoryUnitOfWork(t, newTelemetry("hello"))

	// When an aggregate is added without commit
	err := Run[*telemetry](uow, func() error {
		return uow.Repository().Add(newTelemetry("bye"))
	})
	req.NoError(err)

	// Then it is gone after exit
	_, ok, err := uow.Repository().Get(repositories.By("Message", "bye"))
	req.NoError(err)
	req.False(ok)
	_, ok, err = uow.Repository().Get(repositories.By("Message", "hello"))
	req.NoError(err)
	req.True(ok)
}

func TestMemoryUnitOfWork_Commit_Persists(t *testing.T) {
	req := require.New(t)
	uow := newMemoryUnitOfWork(t, newTelemetry("hello"))
	bye := newTelemetry("bye")

	err := Run[*telemetry](uow, func() error {
		if err := uow.Repository().Add(bye); err != nil {
			return err
		}
		return uow.Commit()
	})
	req.NoError(err)

	found, ok, err := uow.Repository().Get(repositories.By("Message", "bye"))
	req.NoError(err)
	req.True(ok)
	req.Same(bye, found)
	_, ok, err = uow.Repository().Get(repositories.By("Message", "hello"))
	req.NoError(err)
	req.True(ok)
}

func TestMemoryUnitOfWork_Each_Entry_Snapshots_Again(t *testing.T) {
	req := require.New(t)
	uow := newMemoryUnitOfWork(t)

	// Given a first committed scope
	req.NoError(Run[*telemetry](uow, func() error {
		if err := uow.Repository().Add(newTelemetry("first")); err != nil {
			return err
		}
		return uow.Commit()
	}))

	// When a second scope is not committed
	req.NoError(Run[*telemetry](uow, func() error {
		return uow.Repository().Add(newTelemetry("second"))
	}))

	// Then only the second scope is undone
	_, ok, err := uow.Repository().Get(repositories.By("Message", "first"))
	req.NoError(err)
	req.True(ok)
	_, ok, err = uow.Repository().Get(repositories.By("Message", "second"))
	req.NoError(err)
	req.False(ok)
}

func TestMemoryUnitOfWork_Rollback_On_Error_And_Panic(t *testing.T) {
	req := require.New(t)
	uow := newMemoryUnitOfWork(t)
	boom := goerrors.New("boom")

	err := Run[*telemetry](uow, func() error {
		_ = uow.Repository().Add(newTelemetry("failed"))
		return boom
	})
	req.ErrorIs(err, boom)

	req.Panics(func() {
		_ = Run[*telemetry](uow, func() error {
			_ = uow.Repository().Add(newTelemetry("panicked"))
			panic("boom")
		})
	})

	memory := uow.Repository().(*repositories.MemoryRepository[*telemetry])
	req.Zero(memory.Len())
}

func TestMemoryUnitOfWork_Commit_Outside_Scope(t *testing.T) {
	req := require.New(t)
	uow := newMemoryUnitOfWork(t)

	req.ErrorIs(uow.Commit(), errors.ErrNotInTransaction)
	req.ErrorIs(uow.Rollback(), errors.ErrNotInTransaction)
}

func TestMemoryUnitOfWork_Collect_New_Events(t *testing.T) {
	req := require.New(t)
	tel := newTelemetry("hello")
	untouched := newTelemetry("untouched")
	uow := newMemoryUnitOfWork(t, tel, untouched)
	untouched.Record("ignored")

	req.NoError(uow.Begin())
	loaded, ok, err := uow.Repository().Get(repositories.By("Message", "hello"))
	req.NoError(err)
	req.True(ok)

	// Given an aggregate in the seen set with two pending events
	loaded.Record("info")
	loaded.Record("warn")

	// Then they are collected oldest first
	req.Equal([]domain.Event{
		telemetryRecorded{Message: "hello", Level: "info"},
		telemetryRecorded{Message: "hello", Level: "warn"},
	}, uow.CollectNewEvents())

	// And a second collection yields nothing
	req.Empty(uow.CollectNewEvents())

	// And only events raised since the last drain are collected
	loaded.Record("error")
	req.Equal([]domain.Event{telemetryRecorded{Message: "hello", Level: "error"}}, uow.CollectNewEvents())

	// And aggregates the repository never touched keep their events
	req.Len(untouched.Events(), 1)
	req.NoError(uow.Commit())
	req.NoError(uow.Rollback())
}

func TestMemoryUnitOfWork_Collects_Across_Aggregates_In_Seen_Order(t *testing.T) {
	req := require.New(t)
	a := newTelemetry("a")
	b := newTelemetry("b")
	uow := newMemoryUnitOfWork(t, a)

	req.NoError(uow.Begin())
	req.NoError(uow.Repository().Add(b))
	_, _, err := uow.Repository().Get(repositories.By("Message", "a"))
	req.NoError(err)
	a.Record("from a")
	b.Record("from b")

	req.Equal([]domain.Event{
		telemetryRecorded{Message: "b", Level: "from b"},
		telemetryRecorded{Message: "a", Level: "from a"},
	}, uow.CollectNewEvents())
}
