package main

import (
	"context"
	"cosmokit/contract"
	"cosmokit/internal"
	"cosmokit/leasing"
	"cosmokit/observability"
	"cosmokit/projection"
	"cosmokit/repositories"
	"cosmokit/runtime"
	"cosmokit/sink"
	"cosmokit/unitofwork"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run wires every component, plays the script and centralizes error reporting
// so deferred cleanups run before the process exits.
func run() error {
	// 1. Configuration & Logger
	config, err := internal.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Read model, side effects and observer
	occupancy := projection.NewOccupancy()
	monitoring := observability.NewMonitoringManager(log)
	sinks := []contract.EventSink{occupancy}
	var notifications contract.Notifications
	switch config.Notifier {
	case internal.NotifierRedis:
		client := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
		defer func() { _ = client.Close() }()
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis unreachable at %s: %w", config.RedisAddr, err)
		}
		notifications = sink.NewRedisNotifications(client, log)
	default:
		unreachable := lo.Compact(strings.Split(config.UnreachableOffices, ","))
		notifications = sink.NewLogNotifications(log, append(unreachable, leasing.LeasingOffice(chryslerID))...)
	}

	// 3. Store
	var uow unitofwork.UnitOfWork[*leasing.Building]
	switch config.Store {
	case internal.StoreBadger:
		db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).WithLoggingLevel(badger.WARNING))
		if err != nil {
			return fmt.Errorf("database opening failed: %w", err)
		}
		defer func() {
			log.Info("Closing BadgerDB...")
			_ = db.Close()
		}()
		journal, err := sink.NewJournalSink(db, log, "cosmokit/leasing")
		if err != nil {
			return err
		}
		defer func() { _ = journal.Close() }()
		sinks = append(sinks, journal)

		repository, err := repositories.NewBadgerRepository[*leasing.Building](db, nil, repositories.WithLogger(log))
		if err != nil {
			return err
		}
		if uow, err = unitofwork.NewBadgerUnitOfWork[*leasing.Building](db, log, repository); err != nil {
			return err
		}
	default:
		repository, err := repositories.NewMemoryRepository[*leasing.Building](repositories.WithLogger(log))
		if err != nil {
			return err
		}
		if uow, err = unitofwork.NewMemoryUnitOfWork[*leasing.Building](log, repository); err != nil {
			return err
		}
	}

	// 4. Bus
	bus, err := leasing.Bootstrap(log, uow, notifications, sinks,
		runtime.WithObserver(monitoring),
		runtime.WithMaxMessages(config.MaxDispatchedMessages),
		runtime.WithRecover(config.RecoverHandlerPanics),
	)
	if err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}
	play(ctx, log, runtime.NewSerialBus(bus), Script())

	// 5. Report
	renderOccupancy(os.Stdout, occupancy.Rows())
	monitoring.LogSummary()
	return nil
}

func play(ctx context.Context, log *slog.Logger, bus contract.IMessageBus, steps []Step) {
	for _, step := range steps {
		if ctx.Err() != nil {
			log.Info("Script interrupted")
			return
		}
		if err := bus.Handle(ctx, step.Command); err != nil {
			fmt.Println(color.New(color.FgRed).Render("✗ " + step.Label + ": " + err.Error()))
			continue
		}
		fmt.Println(color.New(color.FgGreen).Render("✓ " + step.Label))
	}
}

func renderOccupancy(w io.Writer, rows []projection.BuildingOccupancy) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Building", "Leased", "Available"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, row := range rows {
		table.Append([]string{row.Name, strings.Join(row.Leased, ", "), strings.Join(row.Available, ", ")})
	}
	table.Render()
}
