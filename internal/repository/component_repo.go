package repository

import (
	"context"

	"github.com/HanreDelport/Inventory-Manager/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ComponentRepository defines the data access contract for components.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ComponentRepository interface {
	Create(ctx context.Context, c *model.Component) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Component, error)
	FindByName(ctx context.Context, name string) (*model.Component, error)
	List(ctx context.Context) ([]model.Component, error)
	Update(ctx context.Context, c *model.Component) error
	Delete(ctx context.Context, id uuid.UUID) error

	// CountBomReferences returns how many component-BOM edges point at the
	// component, plus the names of the owning products (for error messages).
	CountBomReferences(ctx context.Context, componentID uuid.UUID) (int64, []string, error)

	// AdjustStock applies a signed delta to in_stock outside any transaction.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) error

	// Used inside transactions — callers must pass the tx instance.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Component, error)
	// TransferStockTx moves quantity between the three stock counters with a
	// single UPDATE. Deltas must sum to the intended net change per counter;
	// the DB check constraints reject any negative result.
	TransferStockTx(tx *gorm.DB, id uuid.UUID, dInStock, dInProgress, dShipped int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type componentRepo struct{ db *gorm.DB }

func NewComponentRepository(db *gorm.DB) ComponentRepository { return &componentRepo{db: db} }

func (r *componentRepo) Create(ctx context.Context, c *model.Component) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *componentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Component, error) {
	var c model.Component
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *componentRepo) FindByName(ctx context.Context, name string) (*model.Component, error) {
	var c model.Component
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error
	return &c, err
}

func (r *componentRepo) List(ctx context.Context) ([]model.Component, error) {
	var components []model.Component
	err := r.db.WithContext(ctx).Order("name ASC").Find(&components).Error
	return components, err
}

func (r *componentRepo) Update(ctx context.Context, c *model.Component) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *componentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Component{}, "id = ?", id).Error
}

func (r *componentRepo) CountBomReferences(ctx context.Context, componentID uuid.UUID) (int64, []string, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.BillOfMaterials{}).
		Where("component_id = ?", componentID).Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}
	var names []string
	err := r.db.WithContext(ctx).Model(&model.BillOfMaterials{}).
		Joins("JOIN products ON products.id = bill_of_materials.product_id").
		Where("bill_of_materials.component_id = ?", componentID).
		Pluck("products.name", &names).Error
	return count, names, err
}

func (r *componentRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).Model(&model.Component{}).
		Where("id = ?", id).
		Update("in_stock", gorm.Expr("in_stock + ?", delta)).Error
}

func (r *componentRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Component, error) {
	var c model.Component
	err := tx.First(&c, "id = ?", id).Error
	return &c, err
}

func (r *componentRepo) TransferStockTx(tx *gorm.DB, id uuid.UUID, dInStock, dInProgress, dShipped int) error {
	return tx.Model(&model.Component{}).Where("id = ?", id).Updates(map[string]interface{}{
		"in_stock":    gorm.Expr("in_stock + ?", dInStock),
		"in_progress": gorm.Expr("in_progress + ?", dInProgress),
		"shipped":     gorm.Expr("shipped + ?", dShipped),
	}).Error
}

func (r *componentRepo) DB() *gorm.DB { return r.db }
