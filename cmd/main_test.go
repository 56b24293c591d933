package main

import (
	"bytes"
	"context"
	"cosmokit/contract"
	"cosmokit/leasing"
	"cosmokit/observability"
	"cosmokit/projection"
	"cosmokit/repositories"
	"cosmokit/runtime"
	"cosmokit/sink"
	"cosmokit/unitofwork"
	"log/slog"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

type ScriptSuite struct {
	suite.Suite
	log           *slog.Logger
	occupancy     *projection.Occupancy
	monitoring    *observability.MonitoringManager
	notifications *sink.LogNotifications
}

func TestScriptSuite(t *testing.T) {
	suite.Run(t, new(ScriptSuite))
}

func (s *ScriptSuite) SetupTest() {
	s.log = logs.GetLoggerFromLevel(slog.LevelDebug)
	s.occupancy = projection.NewOccupancy()
	s.monitoring = observability.NewMonitoringManager(s.log)
	s.notifications = sink.NewLogNotifications(s.log, leasing.LeasingOffice(chryslerID))
}

func (s *ScriptSuite) bootstrap(uow unitofwork.UnitOfWork[*leasing.Building], sinks ...contract.EventSink) contract.IMessageBus {
	bus, err := leasing.Bootstrap(s.log, uow, s.notifications, append([]contract.EventSink{s.occupancy}, sinks...),
		runtime.WithObserver(s.monitoring), runtime.WithMaxMessages(100))
	s.Require().NoError(err)
	return runtime.NewSerialBus(bus)
}

func (s *ScriptSuite) assertOutcome() {
	rows := s.occupancy.Rows()
	s.Require().Len(rows, 2)
	s.Equal("30 Rockefeller Center", rows[0].Name)
	s.Equal([]string{"6700"}, rows[0].Leased)
	s.Equal([]string{"1280"}, rows[0].Available)
	s.Equal("Chrysler Building", rows[1].Name)
	s.Equal([]string{"7100"}, rows[1].Leased)

	stats := s.monitoring.GetLatest()
	s.Equal(uint64(1), stats.CommandFailures, "leasing 6700 twice")
	s.Equal(uint64(1), stats.EventFailures, "unreachable Chrysler office")
	s.Len(s.notifications.Sent(), 3)

	var out bytes.Buffer
	renderOccupancy(&out, rows)
	s.Contains(out.String(), "BUILDING")
	s.Contains(out.String(), "Chrysler Building")
}

func (s *ScriptSuite) TestMemoryStore() {
	repository, err := repositories.NewMemoryRepository[*leasing.Building](repositories.WithLogger(s.log))
	s.Require().NoError(err)
	uow, err := unitofwork.NewMemoryUnitOfWork[*leasing.Building](s.log, repository)
	s.Require().NoError(err)

	play(context.Background(), s.log, s.bootstrap(uow), Script())

	s.assertOutcome()
	s.Equal(2, repository.Len())
}

func (s *ScriptSuite) TestBadgerStore() {
	db, err := badger.Open(badger.DefaultOptions(s.T().TempDir()).WithLoggingLevel(badger.ERROR))
	s.Require().NoError(err)
	defer db.Close()
	journal, err := sink.NewJournalSink(db, s.log, "cosmokit/leasing")
	s.Require().NoError(err)
	defer journal.Close()
	repository, err := repositories.NewBadgerRepository[*leasing.Building](db, nil, repositories.WithLogger(s.log))
	s.Require().NoError(err)
	uow, err := unitofwork.NewBadgerUnitOfWork[*leasing.Building](db, s.log, repository)
	s.Require().NoError(err)

	play(context.Background(), s.log, s.bootstrap(uow, journal), Script())

	s.assertOutcome()
	count, err := repository.Count()
	s.Require().NoError(err)
	s.Equal(2, count)
	entries, err := journal.Entries()
	s.Require().NoError(err)
	// 2 registrations, 4 additions, 3 leases, 1 release, 1 removal
	s.Len(entries, 11)
}
