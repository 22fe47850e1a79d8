package service

import (
	"context"
	"sort"
	"time"

	"github.com/HanreDelport/Inventory-Manager/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. DB() returns nil so runTx executes the
// transaction body directly; the stubs apply mutations immediately, which is
// fine for unit tests exercising service logic rather than rollback.

// ── ComponentRepository stub ─────────────────────────────────────────────────

type stubComponentRepo struct {
	components map[uuid.UUID]*model.Component

	// delete-guard inputs, set directly by tests
	bomRefCount int64
	bomRefNames []string

	deleted []uuid.UUID
}

func newStubComponentRepo() *stubComponentRepo {
	return &stubComponentRepo{components: make(map[uuid.UUID]*model.Component)}
}

func (r *stubComponentRepo) Create(_ context.Context, c *model.Component) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.components[c.ID] = c
	return nil
}

func (r *stubComponentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Component, error) {
	c, ok := r.components[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubComponentRepo) FindByName(_ context.Context, name string) (*model.Component, error) {
	for _, c := range r.components {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubComponentRepo) List(_ context.Context) ([]model.Component, error) {
	result := make([]model.Component, 0, len(r.components))
	for _, c := range r.components {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *stubComponentRepo) Update(_ context.Context, c *model.Component) error {
	r.components[c.ID] = c
	return nil
}

func (r *stubComponentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.components, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubComponentRepo) CountBomReferences(_ context.Context, _ uuid.UUID) (int64, []string, error) {
	return r.bomRefCount, r.bomRefNames, nil
}

func (r *stubComponentRepo) AdjustStock(_ context.Context, id uuid.UUID, delta int) error {
	r.components[id].InStock += delta
	return nil
}

func (r *stubComponentRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Component, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubComponentRepo) TransferStockTx(_ *gorm.DB, id uuid.UUID, dInStock, dInProgress, dShipped int) error {
	c, ok := r.components[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.InStock += dInStock
	c.InProgress += dInProgress
	c.Shipped += dShipped
	return nil
}

func (r *stubComponentRepo) DB() *gorm.DB { return nil }

// ── ProductRepository stub ───────────────────────────────────────────────────

type stubProductRepo struct {
	products   map[uuid.UUID]*model.Product
	bom        map[uuid.UUID][]model.BillOfMaterials
	productBom map[uuid.UUID][]model.ProductBOM
	orderCount map[uuid.UUID]int64

	components *stubComponentRepo

	deleted []uuid.UUID
}

func newStubProductRepo(components *stubComponentRepo) *stubProductRepo {
	return &stubProductRepo{
		products:   make(map[uuid.UUID]*model.Product),
		bom:        make(map[uuid.UUID][]model.BillOfMaterials),
		productBom: make(map[uuid.UUID][]model.ProductBOM),
		orderCount: make(map[uuid.UUID]int64),
		components: components,
	}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) List(_ context.Context) ([]model.Product, error) {
	result := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	delete(r.bom, id)
	delete(r.productBom, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubProductRepo) ListComponentBom(_ context.Context, productID uuid.UUID) ([]model.BillOfMaterials, error) {
	edges := r.bom[productID]
	result := make([]model.BillOfMaterials, len(edges))
	for i, edge := range edges {
		edge.Component = r.components.components[edge.ComponentID]
		result[i] = edge
	}
	return result, nil
}

func (r *stubProductRepo) ListProductBom(_ context.Context, productID uuid.UUID) ([]model.ProductBOM, error) {
	edges := r.productBom[productID]
	result := make([]model.ProductBOM, len(edges))
	for i, edge := range edges {
		edge.Child = r.products[edge.ChildProductID]
		result[i] = edge
	}
	return result, nil
}

func (r *stubProductRepo) CountOrders(_ context.Context, productID uuid.UUID) (int64, error) {
	return r.orderCount[productID], nil
}

func (r *stubProductRepo) CreateTx(_ *gorm.DB, p *model.Product) error {
	return r.Create(context.Background(), p)
}

func (r *stubProductRepo) ReplaceBomTx(_ *gorm.DB, productID uuid.UUID, bom []model.BillOfMaterials, productBom []model.ProductBOM) error {
	r.bom[productID] = bom
	r.productBom[productID] = productBom
	return nil
}

func (r *stubProductRepo) AdjustCountersTx(_ *gorm.DB, id uuid.UUID, dInProgress, dShipped int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.InProgress += dInProgress
	p.Shipped += dShipped
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

// ── OrderRepository stub ─────────────────────────────────────────────────────

type stubOrderRepo struct {
	orders      map[uuid.UUID]*model.Order
	allocations map[uuid.UUID][]model.OrderAllocation

	products   *stubProductRepo
	components *stubComponentRepo
}

func newStubOrderRepo(products *stubProductRepo, components *stubComponentRepo) *stubOrderRepo {
	return &stubOrderRepo{
		orders:      make(map[uuid.UUID]*model.Order),
		allocations: make(map[uuid.UUID][]model.OrderAllocation),
		products:    products,
		components:  components,
	}
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) FindByIDWithDetails(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	detailed := *o
	detailed.Product = r.products.products[o.ProductID]
	allocations := make([]model.OrderAllocation, len(r.allocations[id]))
	for i, a := range r.allocations[id] {
		a.Component = r.components.components[a.ComponentID]
		allocations[i] = a
	}
	detailed.Allocations = allocations
	return &detailed, nil
}

func (r *stubOrderRepo) List(_ context.Context) ([]model.Order, error) {
	result := make([]model.Order, 0, len(r.orders))
	for id := range r.orders {
		o, _ := r.FindByIDWithDetails(context.Background(), id)
		result = append(result, *o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *stubOrderRepo) ListByStatuses(_ context.Context, statuses []model.OrderStatus) ([]model.Order, error) {
	var result []model.Order
	for _, o := range r.orders {
		for _, status := range statuses {
			if o.Status == status {
				result = append(result, *o)
				break
			}
		}
	}
	return result, nil
}

func (r *stubOrderRepo) CreateTx(_ *gorm.DB, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) CreateAllocationTx(_ *gorm.DB, a *model.OrderAllocation) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.allocations[a.OrderID] = append(r.allocations[a.OrderID], *a)
	return nil
}

func (r *stubOrderRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status model.OrderStatus, completedAt *time.Time) error {
	o, ok := r.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Status = status
	if completedAt != nil {
		o.CompletedAt = completedAt
	}
	return nil
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

// ── Fixture ──────────────────────────────────────────────────────────────────

type fixture struct {
	components *stubComponentRepo
	products   *stubProductRepo
	orders     *stubOrderRepo
	resolver   *BomResolver
}

func newFixture() *fixture {
	components := newStubComponentRepo()
	products := newStubProductRepo(components)
	orders := newStubOrderRepo(products, components)
	return &fixture{
		components: components,
		products:   products,
		orders:     orders,
		resolver:   NewBomResolver(products),
	}
}

func (f *fixture) addComponent(name, spillage string, inStock int) *model.Component {
	c := &model.Component{
		ID:                  uuid.New(),
		Name:                name,
		SpillageCoefficient: decimal.RequireFromString(spillage),
		InStock:             inStock,
	}
	f.components.components[c.ID] = c
	return c
}

func (f *fixture) addProduct(name string) *model.Product {
	p := &model.Product{ID: uuid.New(), Name: name}
	f.products.products[p.ID] = p
	return p
}

func (f *fixture) addBomEdge(product *model.Product, component *model.Component, qty int) {
	f.products.bom[product.ID] = append(f.products.bom[product.ID], model.BillOfMaterials{
		ID:               uuid.New(),
		ProductID:        product.ID,
		ComponentID:      component.ID,
		QuantityRequired: qty,
	})
}

func (f *fixture) addProductBomEdge(parent, child *model.Product, qty int) {
	f.products.productBom[parent.ID] = append(f.products.productBom[parent.ID], model.ProductBOM{
		ID:               uuid.New(),
		ProductID:        parent.ID,
		ChildProductID:   child.ID,
		QuantityRequired: qty,
	})
}
