package leasing

import (
	"context"
	"cosmokit/contract"
	"cosmokit/domain"
	"cosmokit/errors"
	"cosmokit/repositories"
	"cosmokit/runtime"
	"cosmokit/unitofwork"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// LeasingOffice is the notification destination of a building.
func LeasingOffice(id uuid.UUID) string {
	return "leasing-office:" + id.String()
}

// Bootstrap wires the leasing handlers around uow and returns the bus that drives them.
// Handlers close over their collaborators; sinks receive every leasing event.
func Bootstrap(log *slog.Logger, uow unitofwork.UnitOfWork[*Building], notifications contract.Notifications,
	sinks []contract.EventSink, opts ...runtime.Option) (*runtime.MessageBus, error) {
	registry := runtime.NewRegistry()
	h := handlers{log: log, uow: uow, notifications: notifications}

	if err := registerCommands(registry, h); err != nil {
		return nil, err
	}

	runtime.OnEvent(registry, "notify leasing office", h.notifyLeased)
	runtime.OnEvent(registry, "notify leasing office", h.notifyAvailable)
	for i, sink := range sinks {
		name := fmt.Sprintf("sink %d", i)
		consume := func(ctx context.Context, evt domain.Event) error { return sink.Consume(ctx, evt) }
		for _, evt := range []domain.Event{BuildingRegistered{}, SuiteAdded{}, SuiteLeased{}, SuiteMadeAvailable{}, SuiteRemoved{}} {
			registry.AddEventHandler(evt, name, consume)
		}
	}
	return runtime.NewMessageBus(log, uow, registry, opts...), nil
}

func registerCommands(registry *runtime.Registry, h handlers) error {
	if err := runtime.OnCommand(registry, "register building", h.registerBuilding); err != nil {
		return err
	}
	if err := runtime.OnCommand(registry, "add suite", h.addSuite); err != nil {
		return err
	}
	if err := runtime.OnCommand(registry, "lease suite", h.leaseSuite); err != nil {
		return err
	}
	if err := runtime.OnCommand(registry, "release suite", h.releaseSuite); err != nil {
		return err
	}
	return runtime.OnCommand(registry, "remove suite", h.removeSuite)
}

type handlers struct {
	log           *slog.Logger
	uow           unitofwork.UnitOfWork[*Building]
	notifications contract.Notifications
}

func (h handlers) registerBuilding(_ context.Context, cmd RegisterBuilding) error {
	if err := validateCommand(cmd); err != nil {
		return err
	}
	return unitofwork.Run(h.uow, func() error {
		repository := h.uow.Repository()
		if _, exists, err := repository.Get(repositories.By("BuildingID", cmd.BuildingID)); err != nil {
			return err
		} else if exists {
			return fmt.Errorf("%w: building %s already registered", errors.ErrConstraintViolation, cmd.BuildingID)
		}
		building := NewBuilding(cmd.BuildingID, cmd.Name, cmd.Address)
		building.AddEvent(BuildingRegistered{BuildingID: building.BuildingID, Name: building.Name})
		if err := repository.Add(building); err != nil {
			return err
		}
		h.log.Info("Building registered", "building_id", building.BuildingID, "name", building.Name)
		return h.uow.Commit()
	})
}

func (h handlers) addSuite(_ context.Context, cmd AddSuite) error {
	if err := validateCommand(cmd); err != nil {
		return err
	}
	return h.withBuilding(cmd.BuildingID, func(building *Building) error {
		return building.AddSuite(&Suite{Number: cmd.Number, Name: cmd.Name, Floor: cmd.Floor, Sqft: cmd.Sqft})
	})
}

func (h handlers) leaseSuite(_ context.Context, cmd LeaseSuite) error {
	if err := validateCommand(cmd); err != nil {
		return err
	}
	return h.withBuilding(cmd.BuildingID, func(building *Building) error {
		return building.LeaseSuite(cmd.Number)
	})
}

func (h handlers) releaseSuite(_ context.Context, cmd ReleaseSuite) error {
	if err := validateCommand(cmd); err != nil {
		return err
	}
	return h.withBuilding(cmd.BuildingID, func(building *Building) error {
		return building.MakeSuiteAvailable(cmd.Number)
	})
}

func (h handlers) removeSuite(_ context.Context, cmd RemoveSuite) error {
	if err := validateCommand(cmd); err != nil {
		return err
	}
	return h.withBuilding(cmd.BuildingID, func(building *Building) error {
		return building.RemoveSuite(cmd.Number)
	})
}

// withBuilding loads a building, applies mutate and commits inside one unit of work.
func (h handlers) withBuilding(id uuid.UUID, mutate func(*Building) error) error {
	return unitofwork.Run(h.uow, func() error {
		building, ok, err := h.uow.Repository().Get(repositories.By("BuildingID", id))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", errors.ErrBuildingNotFound, id)
		}
		if err := mutate(building); err != nil {
			return err
		}
		return h.uow.Commit()
	})
}

func (h handlers) notifyLeased(ctx context.Context, evt SuiteLeased) error {
	return h.notifications.Send(ctx, LeasingOffice(evt.BuildingID), fmt.Sprintf("Suite %s has been leased", evt.Number))
}

func (h handlers) notifyAvailable(ctx context.Context, evt SuiteMadeAvailable) error {
	return h.notifications.Send(ctx, LeasingOffice(evt.BuildingID), fmt.Sprintf("Suite %s is available again", evt.Number))
}
