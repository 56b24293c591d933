// Package leasing is a small bounded context built on the domain primitives:
// buildings own suites that are added, leased, released and removed.
// This file defines the Building aggregate and its child entities.
package leasing

import (
	"cosmokit/domain"
	"cosmokit/errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Address is a value object: two addresses with the same fields are the same address.
type Address struct {
	StreetLine1          string `json:"street_line_1" validate:"required"`
	StreetLine2          string `json:"street_line_2,omitempty"`
	Locality             string `json:"locality" validate:"required"`
	Region               string `json:"region" validate:"required"`
	PostalCode           string `json:"postal_code" validate:"required"`
	CountryCodeISOAlpha3 string `json:"country_code_iso_alpha_3" validate:"required,iso3166_1_alpha3"`
}

func (a Address) ValueHash() (uint64, error) {
	return domain.HashValue(a)
}

// Suite is identified by its number within a building.
type Suite struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	Floor  int    `json:"floor"`
	Sqft   int    `json:"sqft"`
	Leased bool   `json:"leased"`
}

func (*Suite) HashFields() []string { return []string{"Number"} }

func (s *Suite) Lease() error {
	if s.Leased {
		return fmt.Errorf("%w: suite %s is already leased", errors.ErrConstraintViolation, s.Number)
	}
	s.Leased = true
	return nil
}

func (s *Suite) MakeAvailable() error {
	if !s.Leased {
		return fmt.Errorf("%w: suite %s is already available", errors.ErrConstraintViolation, s.Number)
	}
	s.Leased = false
	return nil
}

type Building struct {
	domain.AggregateRoot
	BuildingID uuid.UUID `json:"building_id"`
	Name       string    `json:"name"`
	Address    Address   `json:"address"`
	Suites     []*Suite  `json:"suites"`
}

func (*Building) HashFields() []string { return []string{"BuildingID"} }

func NewBuilding(id uuid.UUID, name string, address Address, suites ...*Suite) *Building {
	return &Building{BuildingID: id, Name: name, Address: address, Suites: suites}
}

// Suite returns the suite with the given number.
func (b *Building) Suite(number string) (*Suite, bool) {
	return lo.Find(b.Suites, func(s *Suite) bool { return s.Number == number })
}

func (b *Building) suite(number string) (*Suite, error) {
	suite, ok := b.Suite(number)
	if !ok {
		return nil, fmt.Errorf("%w: %s in building %s", errors.ErrSuiteNotFound, number, b.BuildingID)
	}
	return suite, nil
}

func (b *Building) AddSuite(suite *Suite) error {
	if _, exists := b.Suite(suite.Number); exists {
		return fmt.Errorf("%w: suite %s already exists, update it instead", errors.ErrConstraintViolation, suite.Number)
	}
	b.Suites = append(b.Suites, suite)
	b.AddEvent(SuiteAdded{BuildingID: b.BuildingID, Number: suite.Number})
	return nil
}

func (b *Building) LeaseSuite(number string) error {
	suite, err := b.suite(number)
	if err != nil {
		return err
	}
	if err := suite.Lease(); err != nil {
		return err
	}
	b.AddEvent(SuiteLeased{BuildingID: b.BuildingID, Number: suite.Number})
	return nil
}

func (b *Building) MakeSuiteAvailable(number string) error {
	suite, err := b.suite(number)
	if err != nil {
		return err
	}
	if err := suite.MakeAvailable(); err != nil {
		return err
	}
	b.AddEvent(SuiteMadeAvailable{BuildingID: b.BuildingID, Number: suite.Number})
	return nil
}

func (b *Building) RemoveSuite(number string) error {
	suite, err := b.suite(number)
	if err != nil {
		return err
	}
	b.Suites = lo.Reject(b.Suites, func(s *Suite, _ int) bool { return s.Number == number })
	b.AddEvent(SuiteRemoved{BuildingID: b.BuildingID, Number: suite.Number, Name: suite.Name})
	return nil
}

// Occupancy counts leased and available suites.
func (b *Building) Occupancy() (leased, available int) {
	leased = lo.CountBy(b.Suites, func(s *Suite) bool { return s.Leased })
	return leased, len(b.Suites) - leased
}
