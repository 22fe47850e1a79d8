package service

import (
	"context"
	"testing"

	"github.com/HanreDelport/Inventory-Manager/internal/domain"
	"github.com/HanreDelport/Inventory-Manager/internal/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentCreate(t *testing.T) {
	f := newFixture()
	svc := NewComponentService(f.components)

	resp, err := svc.Create(context.Background(), dto.CreateComponentRequest{
		Name:                "steel plate",
		SpillageCoefficient: decimal.RequireFromString("0.05"),
		InStock:             100,
	})
	require.NoError(t, err)
	assert.Equal(t, "steel plate", resp.Name)
	assert.Equal(t, 100, resp.InStock)
	assert.Equal(t, 0, resp.InProgress)
	assert.Equal(t, 0, resp.Shipped)
}

func TestComponentCreate_DuplicateName(t *testing.T) {
	f := newFixture()
	f.addComponent("steel plate", "0", 0)
	svc := NewComponentService(f.components)

	_, err := svc.Create(context.Background(), dto.CreateComponentRequest{
		Name: "steel plate",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestComponentCreate_SpillageOutOfRange(t *testing.T) {
	f := newFixture()
	svc := NewComponentService(f.components)

	_, err := svc.Create(context.Background(), dto.CreateComponentRequest{
		Name:                "glue",
		SpillageCoefficient: decimal.RequireFromString("10.0"),
	})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), dto.CreateComponentRequest{
		Name:                "glue",
		SpillageCoefficient: decimal.RequireFromString("-0.1"),
	})
	assert.Error(t, err)
}

func TestComponentUpdate_RenameToExistingName(t *testing.T) {
	f := newFixture()
	f.addComponent("steel plate", "0", 0)
	copper := f.addComponent("copper wire", "0", 0)
	svc := NewComponentService(f.components)

	name := "steel plate"
	_, err := svc.Update(context.Background(), copper.ID, dto.UpdateComponentRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestComponentDelete_BlockedByBomReference(t *testing.T) {
	f := newFixture()
	steel := f.addComponent("steel plate", "0", 0)
	f.components.bomRefCount = 2
	f.components.bomRefNames = []string{"bracket", "frame"}
	svc := NewComponentService(f.components)

	err := svc.Delete(context.Background(), steel.ID)
	var conflict *domain.ReferentialConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Contains(t, conflict.Reason, "bracket")
	assert.Empty(t, f.components.deleted)
}

func TestComponentDelete_BlockedByLiveInventory(t *testing.T) {
	f := newFixture()
	steel := f.addComponent("steel plate", "0", 0)
	steel.InProgress = 3
	svc := NewComponentService(f.components)

	err := svc.Delete(context.Background(), steel.ID)
	var conflict *domain.ReferentialConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestComponentDelete_Unreferenced(t *testing.T) {
	f := newFixture()
	steel := f.addComponent("steel plate", "0", 50)
	svc := NewComponentService(f.components)

	require.NoError(t, svc.Delete(context.Background(), steel.ID))
	assert.Equal(t, []uuid.UUID{steel.ID}, f.components.deleted)
}

func TestComponentAdjustStock(t *testing.T) {
	f := newFixture()
	steel := f.addComponent("steel plate", "0", 10)
	svc := NewComponentService(f.components)

	resp, err := svc.AdjustStock(context.Background(), steel.ID, -4)
	require.NoError(t, err)
	assert.Equal(t, 6, resp.InStock)

	// would go negative
	_, err = svc.AdjustStock(context.Background(), steel.ID, -7)
	assert.ErrorIs(t, err, domain.ErrInvalidStockAdjustment)
	assert.Equal(t, 6, steel.InStock)
}

func TestComponentGetByID_NotFound(t *testing.T) {
	f := newFixture()
	svc := NewComponentService(f.components)

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
