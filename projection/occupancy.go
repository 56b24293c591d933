// Package projection builds read models from observed events.
// Does not emit events or touch aggregates directly.
package projection

import (
	"context"
	"cosmokit/contract"
	"cosmokit/domain"
	"cosmokit/leasing"
	"slices"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// BuildingOccupancy is the read model row of one building.
type BuildingOccupancy struct {
	BuildingID uuid.UUID
	Name       string
	Leased     []string
	Available  []string
}

// Occupancy tracks which suites of each building are leased.
type Occupancy struct {
	mu        sync.RWMutex
	buildings map[uuid.UUID]*occupancy
}

type occupancy struct {
	name   string
	suites map[string]bool // number -> leased
}

func NewOccupancy() *Occupancy {
	return &Occupancy{buildings: make(map[uuid.UUID]*occupancy)}
}

func (o *Occupancy) Consume(_ context.Context, e domain.Event) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch evt := e.(type) {
	case leasing.BuildingRegistered:
		o.building(evt.BuildingID).name = evt.Name
	case leasing.SuiteAdded:
		o.building(evt.BuildingID).suites[evt.Number] = false
	case leasing.SuiteLeased:
		o.building(evt.BuildingID).suites[evt.Number] = true
	case leasing.SuiteMadeAvailable:
		o.building(evt.BuildingID).suites[evt.Number] = false
	case leasing.SuiteRemoved:
		delete(o.building(evt.BuildingID).suites, evt.Number)
	}
	return nil
}

func (o *Occupancy) building(id uuid.UUID) *occupancy {
	b, ok := o.buildings[id]
	if !ok {
		b = &occupancy{suites: make(map[string]bool)}
		o.buildings[id] = b
	}
	return b
}

// Building returns the occupancy of one building, suites sorted by number.
func (o *Occupancy) Building(id uuid.UUID) (BuildingOccupancy, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	b, ok := o.buildings[id]
	if !ok {
		return BuildingOccupancy{}, false
	}
	return toRow(id, b), true
}

// Rows returns every building sorted by name.
func (o *Occupancy) Rows() []BuildingOccupancy {
	o.mu.RLock()
	defer o.mu.RUnlock()
	rows := lo.MapToSlice(o.buildings, toRow)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}

func toRow(id uuid.UUID, b *occupancy) BuildingOccupancy {
	leased := lo.Keys(lo.PickBy(b.suites, func(_ string, leased bool) bool { return leased }))
	available := lo.Keys(lo.OmitBy(b.suites, func(_ string, leased bool) bool { return leased }))
	slices.Sort(leased)
	slices.Sort(available)
	return BuildingOccupancy{BuildingID: id, Name: b.name, Leased: leased, Available: available}
}

var _ contract.EventSink = (*Occupancy)(nil)
