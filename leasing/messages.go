package leasing

import (
	"cosmokit/domain"
	"cosmokit/errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type SuiteAdded struct {
	domain.BaseEvent
	BuildingID uuid.UUID
	Number     string
}

type SuiteLeased struct {
	domain.BaseEvent
	BuildingID uuid.UUID
	Number     string
}

type SuiteMadeAvailable struct {
	domain.BaseEvent
	BuildingID uuid.UUID
	Number     string
}

type SuiteRemoved struct {
	domain.BaseEvent
	BuildingID uuid.UUID
	Number     string
	Name       string
}

type BuildingRegistered struct {
	domain.BaseEvent
	BuildingID uuid.UUID
	Name       string
}

type RegisterBuilding struct {
	domain.BaseCommand
	BuildingID uuid.UUID `validate:"required"`
	Name       string    `validate:"required"`
	Address    Address
}

type AddSuite struct {
	domain.BaseCommand
	BuildingID uuid.UUID `validate:"required"`
	Number     string    `validate:"required"`
	Name       string    `validate:"required"`
	Floor      int
	Sqft       int `validate:"gt=0"`
}

type LeaseSuite struct {
	domain.BaseCommand
	BuildingID uuid.UUID `validate:"required"`
	Number     string    `validate:"required"`
}

type ReleaseSuite struct {
	domain.BaseCommand
	BuildingID uuid.UUID `validate:"required"`
	Number     string    `validate:"required"`
}

type RemoveSuite struct {
	domain.BaseCommand
	BuildingID uuid.UUID `validate:"required"`
	Number     string    `validate:"required"`
}

var validate = validator.New()

func validateCommand(cmd domain.Command) error {
	if err := validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %s: %w", errors.ErrInvalidCommand, domain.MessageName(cmd), err)
	}
	return nil
}
