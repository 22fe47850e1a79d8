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

func newProductService(f *fixture) ProductService {
	return NewProductService(f.products, f.components, f.resolver)
}

func TestProductCreate_WithBom(t *testing.T) {
	f := newFixture()
	steel := f.addComponent("steel plate", "0.05", 0)
	svc := newProductService(f)

	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name: "bracket",
		Bom: []dto.BomItemRequest{
			{ComponentID: steel.ID.String(), QuantityRequired: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "bracket", resp.Name)
	require.Len(t, resp.Bom, 1)
	assert.Equal(t, steel.ID.String(), resp.Bom[0].ComponentID)
	assert.Equal(t, 2, resp.Bom[0].QuantityRequired)
	// exact per-unit demand including waste: 2 × 1.05
	assert.True(t, resp.Bom[0].QuantityWithSpillage.Equal(decimal.RequireFromString("2.1")))
}

func TestProductCreate_UnknownComponent(t *testing.T) {
	f := newFixture()
	svc := newProductService(f)

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name: "bracket",
		Bom: []dto.BomItemRequest{
			{ComponentID: uuid.NewString(), QuantityRequired: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductCreate_DuplicateBomEntry(t *testing.T) {
	f := newFixture()
	steel := f.addComponent("steel plate", "0", 0)
	svc := newProductService(f)

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name: "bracket",
		Bom: []dto.BomItemRequest{
			{ComponentID: steel.ID.String(), QuantityRequired: 1},
			{ComponentID: steel.ID.String(), QuantityRequired: 3},
		},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateBomEntry)
}

func TestProductUpdateBom_RejectsCircularReference(t *testing.T) {
	f := newFixture()
	a := f.addProduct("assembly a")
	b := f.addProduct("assembly b")
	f.addProductBomEdge(a, b, 1)
	svc := newProductService(f)

	// b → a would close the cycle
	_, err := svc.UpdateBom(context.Background(), b.ID, dto.UpdateProductBomRequest{
		ProductBom: []dto.ProductBomItemRequest{
			{ChildProductID: a.ID.String(), QuantityRequired: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrCircularReference)
	// graph unmodified
	assert.Empty(t, f.products.productBom[b.ID])
}

func TestProductUpdateBom_RejectsSelfReference(t *testing.T) {
	f := newFixture()
	a := f.addProduct("assembly a")
	svc := newProductService(f)

	_, err := svc.UpdateBom(context.Background(), a.ID, dto.UpdateProductBomRequest{
		ProductBom: []dto.ProductBomItemRequest{
			{ChildProductID: a.ID.String(), QuantityRequired: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrCircularReference)
}

func TestProductUpdateBom_ReplacesAtomically(t *testing.T) {
	f := newFixture()
	steel := f.addComponent("steel plate", "0", 0)
	copper := f.addComponent("copper wire", "0", 0)
	bracket := f.addProduct("bracket")
	f.addBomEdge(bracket, steel, 1)
	svc := newProductService(f)

	resp, err := svc.UpdateBom(context.Background(), bracket.ID, dto.UpdateProductBomRequest{
		Bom: []dto.BomItemRequest{
			{ComponentID: copper.ID.String(), QuantityRequired: 5},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Bom, 1)
	assert.Equal(t, copper.ID.String(), resp.Bom[0].ComponentID)
}

func TestProductUpdateBom_ValidationFailureLeavesBomUntouched(t *testing.T) {
	f := newFixture()
	steel := f.addComponent("steel plate", "0", 0)
	bracket := f.addProduct("bracket")
	f.addBomEdge(bracket, steel, 1)
	svc := newProductService(f)

	_, err := svc.UpdateBom(context.Background(), bracket.ID, dto.UpdateProductBomRequest{
		Bom: []dto.BomItemRequest{
			{ComponentID: uuid.NewString(), QuantityRequired: 2},
		},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)

	entries, err := f.products.ListComponentBom(context.Background(), bracket.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, steel.ID, entries[0].ComponentID)
}

func TestProductDelete_BlockedByLiveInventory(t *testing.T) {
	f := newFixture()
	bracket := f.addProduct("bracket")
	bracket.InProgress = 2
	svc := newProductService(f)

	err := svc.Delete(context.Background(), bracket.ID)
	var conflict *domain.ReferentialConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Empty(t, f.products.deleted)
}

func TestProductDelete_BlockedByOrders(t *testing.T) {
	f := newFixture()
	bracket := f.addProduct("bracket")
	f.products.orderCount[bracket.ID] = 3
	svc := newProductService(f)

	err := svc.Delete(context.Background(), bracket.ID)
	var conflict *domain.ReferentialConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestProductDelete_Unreferenced(t *testing.T) {
	f := newFixture()
	bracket := f.addProduct("bracket")
	svc := newProductService(f)

	require.NoError(t, svc.Delete(context.Background(), bracket.ID))
	assert.Equal(t, []uuid.UUID{bracket.ID}, f.products.deleted)
}
