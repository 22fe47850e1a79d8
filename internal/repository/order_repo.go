package repository

import (
	"context"
	"time"

	"github.com/HanreDelport/Inventory-Manager/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository defines the data access contract for orders and their
// allocation records.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	// FindByIDWithDetails preloads the product and each allocation's component.
	FindByIDWithDetails(ctx context.Context, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	// ListByStatuses returns orders in any of the given statuses.
	ListByStatuses(ctx context.Context, statuses []model.OrderStatus) ([]model.Order, error)

	// Used inside transactions — callers must pass the tx instance.
	CreateTx(tx *gorm.DB, o *model.Order) error
	CreateAllocationTx(tx *gorm.DB, a *model.OrderAllocation) error
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status model.OrderStatus, completedAt *time.Time) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error
	return &o, err
}

func (r *orderRepo) FindByIDWithDetails(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Allocations").
		Preload("Allocations.Component").
		First(&o, "id = ?", id).Error
	return &o, err
}

func (r *orderRepo) List(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).Preload("Product").
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) ListByStatuses(ctx context.Context, statuses []model.OrderStatus) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).Where("status IN ?", statuses).Find(&orders).Error
	return orders, err
}

func (r *orderRepo) CreateTx(tx *gorm.DB, o *model.Order) error {
	return tx.Create(o).Error
}

func (r *orderRepo) CreateAllocationTx(tx *gorm.DB, a *model.OrderAllocation) error {
	return tx.Create(a).Error
}

func (r *orderRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status model.OrderStatus, completedAt *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if completedAt != nil {
		updates["completed_at"] = completedAt
	}
	return tx.Model(&model.Order{}).Where("id = ?", id).Updates(updates).Error
}

func (r *orderRepo) DB() *gorm.DB { return r.db }
