package model

import "github.com/google/uuid"

// OrderAllocation records how much of one component was reserved for one
// order. Rows are written atomically with the in_stock→in_progress transfer
// and never mutated afterwards; they disappear only with their order.
type OrderAllocation struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID           uuid.UUID `gorm:"type:uuid;not null;index"`
	ComponentID       uuid.UUID `gorm:"type:uuid;not null"`
	QuantityAllocated int       `gorm:"not null;check:quantity_allocated > 0"`

	Component *Component `gorm:"foreignKey:ComponentID"`
}
