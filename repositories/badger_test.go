package repositories

import (
	"cosmokit/errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestBadgerRepository_Add_And_Get(t *testing.T) {
	req := require.New(t)
	db := openBadger(t)
	repository, err := NewBadgerRepository[*telemetry](db, nil, WithMatchKey("Message"))
	req.NoError(err)

	tel := newTelemetry("hello")
	tel.Level = 2
	req.NoError(repository.Add(tel))

	// A fresh repository over the same database decodes a new instance
	other, err := NewBadgerRepository[*telemetry](db, nil, WithMatchKey("Message"))
	req.NoError(err)
	found, ok, err := other.Get(By("ID", tel.ID))
	req.NoError(err)
	req.True(ok)
	req.NotSame(tel, found)
	req.Equal(tel.ID, found.ID)
	req.Equal(2, found.Level)
	req.Empty(found.Events())

	byMessage, ok, err := other.Get(By("Message", "hello"))
	req.NoError(err)
	req.True(ok)
	// The identity map hands back the instance already loaded
	req.Same(found, byMessage)
	req.Equal([]*telemetry{found}, other.Seen())
}

func TestBadgerRepository_Miss(t *testing.T) {
	req := require.New(t)
	repository, err := NewBadgerRepository[*telemetry](openBadger(t), nil, WithMatchKey("Message"))
	req.NoError(err)

	_, ok, err := repository.Get(By("ID", uuid.New()))
	req.NoError(err)
	req.False(ok)

	_, ok, err = repository.Get(By("Message", "nobody"))
	req.NoError(err)
	req.False(ok)
	req.Empty(repository.Seen())
}

func TestBadgerRepository_Type_Mismatch(t *testing.T) {
	req := require.New(t)
	repository, err := NewBadgerRepository[*telemetry](openBadger(t), nil)
	req.NoError(err)

	var missing *telemetry
	req.ErrorIs(repository.Add(missing), errors.ErrTypeMismatch)

	_, err = NewBadgerRepository[telemetryRecordedAggregate](openBadger(t), nil)
	req.ErrorIs(err, errors.ErrTypeMismatch)
}

// telemetryRecordedAggregate is not a pointer type, the repository refuses it.
type telemetryRecordedAggregate struct {
	*telemetry
}

func TestBadgerRepository_Types_Do_Not_Share_Keys(t *testing.T) {
	req := require.New(t)
	db := openBadger(t)
	telemetries, err := NewBadgerRepository[*telemetry](db, nil)
	req.NoError(err)
	alerts, err := NewBadgerRepository[*alert](db, nil)
	req.NoError(err)

	tel := newTelemetry("hello")
	req.NoError(telemetries.Add(tel))
	req.NoError(alerts.Add(&alert{ID: tel.ID}))

	count, err := telemetries.Count()
	req.NoError(err)
	req.Equal(1, count)
	count, err = alerts.Count()
	req.NoError(err)
	req.Equal(1, count)
}

func TestBadgerRepository_Flush_Persists_Read_Aggregates(t *testing.T) {
	req := require.New(t)
	db := openBadger(t)
	repository, err := NewBadgerRepository[*telemetry](db, nil)
	req.NoError(err)
	req.NoError(repository.Add(newTelemetry("hello")))

	txn := db.NewTransaction(true)
	repository.Bind(txn)
	loaded, ok, err := repository.Get(By("ID", newTelemetry("hello").ID))
	req.NoError(err)
	req.True(ok)

	// When a read aggregate is mutated, flushed and committed
	loaded.Level = 9
	req.NoError(repository.Flush())
	req.NoError(txn.Commit())
	repository.Unbind(false)

	// Then the mutation is stored
	other, err := NewBadgerRepository[*telemetry](db, nil)
	req.NoError(err)
	stored, ok, err := other.Get(By("ID", loaded.ID))
	req.NoError(err)
	req.True(ok)
	req.Equal(9, stored.Level)
}
