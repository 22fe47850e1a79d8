package service

import (
	"context"
	"testing"

	"github.com/HanreDelport/Inventory-Manager/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCapacityService(f *fixture) CapacityService {
	// nil redis client disables the cache for unit tests
	return NewCapacityService(f.products, nil, 0)
}

func TestMaxProducible_SpillageReducesCapacity(t *testing.T) {
	f := newFixture()
	steel := f.addComponent("steel plate", "0.5", 10)
	bracket := f.addProduct("bracket")
	f.addBomEdge(bracket, steel, 1)
	svc := newCapacityService(f)

	// each unit consumes 1.5 → floor(10 / 1.5) = 6
	maxUnits, limiting, err := svc.MaxProducible(context.Background(), bracket.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, maxUnits)
	assert.Equal(t, "steel plate", limiting)
}

func TestMaxProducible_MinimumAcrossComponents(t *testing.T) {
	f := newFixture()
	steel := f.addComponent("steel plate", "0", 100)
	paint := f.addComponent("paint", "0", 9)
	bracket := f.addProduct("bracket")
	f.addBomEdge(bracket, steel, 1)
	f.addBomEdge(bracket, paint, 2)
	svc := newCapacityService(f)

	// steel allows 100, paint allows floor(9/2) = 4
	maxUnits, limiting, err := svc.MaxProducible(context.Background(), bracket.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, maxUnits)
	assert.Equal(t, "paint", limiting)
}

func TestMaxProducible_NestedProductConstrains(t *testing.T) {
	f := newFixture()
	cell := f.addComponent("battery cell", "0", 50)
	pack := f.addProduct("battery pack")
	scooter := f.addProduct("scooter")
	f.addBomEdge(pack, cell, 5)       // 50 cells → 10 packs
	f.addProductBomEdge(scooter, pack, 3) // 10 packs → 3 scooters
	svc := newCapacityService(f)

	maxUnits, limiting, err := svc.MaxProducible(context.Background(), scooter.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, maxUnits)
	assert.Equal(t, "battery pack", limiting)
}

func TestMaxProducible_NoBom(t *testing.T) {
	f := newFixture()
	shell := f.addProduct("empty shell")
	svc := newCapacityService(f)

	maxUnits, limiting, err := svc.MaxProducible(context.Background(), shell.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, maxUnits)
	assert.Equal(t, "No BOM defined", limiting)
}

func TestMaxProducible_UnknownProduct(t *testing.T) {
	f := newFixture()
	svc := newCapacityService(f)

	_, _, err := svc.MaxProducible(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCalculateProductionCapacity_ReportsEveryProduct(t *testing.T) {
	f := newFixture()
	steel := f.addComponent("steel plate", "0", 10)
	bracket := f.addProduct("bracket")
	f.addProduct("empty shell")
	f.addBomEdge(bracket, steel, 2)
	svc := newCapacityService(f)

	report, err := svc.CalculateProductionCapacity(context.Background())
	require.NoError(t, err)
	require.Len(t, report, 2)

	byName := map[string]int{}
	limits := map[string]string{}
	for _, entry := range report {
		byName[entry.Name] = entry.MaxProducible
		limits[entry.Name] = entry.LimitingFactor
	}
	assert.Equal(t, 5, byName["bracket"])
	assert.Equal(t, "steel plate", limits["bracket"])
	assert.Equal(t, 0, byName["empty shell"])
	assert.Equal(t, "No BOM defined", limits["empty shell"])
}
