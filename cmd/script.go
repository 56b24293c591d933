package main

import (
	"cosmokit/domain"
	"cosmokit/leasing"

	"github.com/google/uuid"
)

// Step is one scripted command of the demo.
type Step struct {
	Label   string
	Command domain.Command
}

var (
	rockefellerID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("30-rockefeller-plaza"))
	chryslerID    = uuid.NewSHA1(uuid.NameSpaceURL, []byte("405-lexington-avenue"))
)

// Script registers two buildings and moves their suites around.
// The Chrysler leasing office is unreachable, so its notifications fail without
// failing the commands; leasing a leased suite fails the command itself.
func Script() []Step {
	return []Step{
		{"register 30 Rockefeller Center", leasing.RegisterBuilding{BuildingID: rockefellerID, Name: "30 Rockefeller Center", Address: leasing.Address{
			StreetLine1: "30 Rockefeller Plaza", Locality: "New York", Region: "NY", PostalCode: "10111", CountryCodeISOAlpha3: "USA",
		}}},
		{"register Chrysler Building", leasing.RegisterBuilding{BuildingID: chryslerID, Name: "Chrysler Building", Address: leasing.Address{
			StreetLine1: "405 Lexington Avenue", Locality: "New York", Region: "NY", PostalCode: "10174", CountryCodeISOAlpha3: "USA",
		}}},
		{"add suite 6700", leasing.AddSuite{BuildingID: rockefellerID, Number: "6700", Name: "Top of the Rock", Floor: 67, Sqft: 755602}},
		{"add suite 1280", leasing.AddSuite{BuildingID: rockefellerID, Number: "1280", Name: "Suite 1280", Floor: 12, Sqft: 1995}},
		{"add suite 109", leasing.AddSuite{BuildingID: rockefellerID, Number: "109", Name: "Lobby Concessions", Floor: 1, Sqft: 144}},
		{"add suite 7100", leasing.AddSuite{BuildingID: chryslerID, Number: "7100", Name: "Cloud Club", Floor: 71, Sqft: 4200}},
		{"lease suite 6700", leasing.LeaseSuite{BuildingID: rockefellerID, Number: "6700"}},
		{"lease suite 6700 again", leasing.LeaseSuite{BuildingID: rockefellerID, Number: "6700"}},
		{"lease suite 1280", leasing.LeaseSuite{BuildingID: rockefellerID, Number: "1280"}},
		{"release suite 1280", leasing.ReleaseSuite{BuildingID: rockefellerID, Number: "1280"}},
		{"lease suite 7100", leasing.LeaseSuite{BuildingID: chryslerID, Number: "7100"}},
		{"remove suite 109", leasing.RemoveSuite{BuildingID: rockefellerID, Number: "109"}},
	}
}
