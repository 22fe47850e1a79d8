package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is a closed enumeration. Transitions only move forward:
// pending → in_progress → completed. An order created with sufficient stock
// skips pending and enters directly at in_progress.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
)

// Order is a production order for Quantity units of one product.
// Allocations exist only once inventory has been reserved for the order.
type Order struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID   uuid.UUID   `gorm:"type:uuid;not null;index"`
	Quantity    int         `gorm:"not null;check:quantity > 0"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt   time.Time
	CompletedAt *time.Time

	Product     *Product          `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	Allocations []OrderAllocation `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}
