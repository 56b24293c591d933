package repositories

import (
	"cosmokit/domain"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type telemetry struct {
	domain.AggregateRoot
	ID      uuid.UUID
	Message string
	Level   int
}

func (*telemetry) HashFields() []string { return []string{"ID"} }

// newTelemetry derives the ID from the message, so the same message is the same entity.
func newTelemetry(message string) *telemetry {
	return &telemetry{ID: uuid.NewSHA1(uuid.NameSpaceOID, []byte(message)), Message: message}
}

type alert struct {
	domain.AggregateRoot
	ID uuid.UUID
}

func (*alert) HashFields() []string { return []string{"ID"} }

type telemetryRecorded struct {
	domain.BaseEvent
	Message string
}

func openBadger(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
