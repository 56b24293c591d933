package unitofwork

import (
	"cosmokit/domain"
	"cosmokit/repositories"
	"log/slog"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newBadgerUnitOfWork(t *testing.T) (*BadgerUnitOfWork[*telemetry], *badger.DB) {
	t.Helper()
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })
	repository, err := repositories.NewBadgerRepository[*telemetry](db, nil,
		repositories.WithMatchKey("Message"), repositories.WithLogger(log))
	req.NoError(err)
	uow, err := NewBadgerUnitOfWork[*telemetry](db, log, repository)
	req.NoError(err)
	return uow, db
}

func TestBadgerUnitOfWork_Rollback_Without_Commit(t *testing.T) {
	req := require.New(t)
	uow, _ := newBadgerUnitOfWork(t)

	req.NoError(Run[*telemetry](uow, func() error {
		return uow.Repository().Add(newTelemetry("hello"))
	}))

	_, ok, err := uow.Repository().Get(repositories.By("Message", "hello"))
	req.NoError(err)
	req.False(ok)
	req.Empty(uow.Repository().Seen())
}

func TestBadgerUnitOfWork_Commit_Persists(t *testing.T) {
	req := require.New(t)
	uow, db := newBadgerUnitOfWork(t)

	req.NoError(Run[*telemetry](uow, func() error {
		if err := uow.Repository().Add(newTelemetry("hello")); err != nil {
			return err
		}
		return uow.Commit()
	}))

	// A repository that never took part in the unit sees the committed write
	other, err := repositories.NewBadgerRepository[*telemetry](db, nil, repositories.WithMatchKey("Message"))
	req.NoError(err)
	found, ok, err := other.Get(repositories.By("Message", "hello"))
	req.NoError(err)
	req.True(ok)
	req.Equal("hello", found.Message)
}

func TestBadgerUnitOfWork_Mutations_Of_Read_Aggregates_Are_Committed(t *testing.T) {
	req := require.New(t)
	uow, _ := newBadgerUnitOfWork(t)
	req.NoError(Run[*telemetry](uow, func() error {
		if err := uow.Repository().Add(newTelemetry("hello")); err != nil {
			return err
		}
		return uow.Commit()
	}))

	// When a loaded aggregate is mutated and records events
	req.NoError(Run[*telemetry](uow, func() error {
		loaded, ok, err := uow.Repository().Get(repositories.By("Message", "hello"))
		if err != nil || !ok {
			return err
		}
		again, _, _ := uow.Repository().Get(repositories.By("ID", loaded.ID))
		req.Same(loaded, again)
		loaded.Message = "hello world"
		loaded.Record("info")
		req.Equal([]domain.Event{telemetryRecorded{Message: "hello world", Level: "info"}}, uow.CollectNewEvents())
		return uow.Commit()
	}))

	// Then the mutation is visible in the next unit
	req.NoError(uow.Begin())
	found, ok, err := uow.Repository().Get(repositories.By("Message", "hello world"))
	req.NoError(err)
	req.True(ok)
	req.Empty(found.Events())
	req.NoError(uow.Rollback())
}

func TestBadgerUnitOfWork_Seen_Set_Does_Not_Grow_Across_Units(t *testing.T) {
	req := require.New(t)
	uow, _ := newBadgerUnitOfWork(t)
	hello := newTelemetry("hello")
	req.NoError(Run[*telemetry](uow, func() error {
		if err := uow.Repository().Add(hello); err != nil {
			return err
		}
		return uow.Commit()
	}))

	// When the same aggregate is read and drained in many committed units
	for i := 0; i < 100; i++ {
		req.NoError(Run[*telemetry](uow, func() error {
			loaded, ok, err := uow.Repository().Get(repositories.By("ID", hello.ID))
			if err != nil || !ok {
				return err
			}
			loaded.Record("info")
			req.Len(uow.CollectNewEvents(), 1)
			return uow.Commit()
		}))
	}

	// Then only the instance of the last unit is still seen
	req.Len(uow.Repository().Seen(), 1)
}

func TestBadgerUnitOfWork_Undrained_Events_Survive_The_Next_Unit(t *testing.T) {
	req := require.New(t)
	uow, _ := newBadgerUnitOfWork(t)
	hello := newTelemetry("hello")

	// Given an aggregate committed with an event nobody collected
	req.NoError(Run[*telemetry](uow, func() error {
		hello.Record("warn")
		if err := uow.Repository().Add(hello); err != nil {
			return err
		}
		return uow.Commit()
	}))

	// When the next unit begins
	req.NoError(uow.Begin())
	defer func() { _ = uow.Rollback() }()

	// Then the instance is still seen and its event is collected
	req.Equal([]*telemetry{hello}, uow.Repository().Seen())
	req.Equal([]domain.Event{telemetryRecorded{Message: "hello", Level: "warn"}}, uow.CollectNewEvents())
}
