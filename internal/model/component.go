package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Component is a raw part consumed by production orders. The three counters
// form the stock lifecycle: in_stock (available) → in_progress (allocated to
// an open order) → shipped (consumed by a completed order). Each counter must
// stay >= 0; the DB check constraint backs up the service-level validation.
type Component struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"uniqueIndex;not null"`
	// SpillageCoefficient is the fractional waste rate applied on top of each
	// BOM quantity: a coefficient of 0.5 means 50% extra is consumed.
	// Valid range [0, 9.9999].
	SpillageCoefficient decimal.Decimal `gorm:"type:decimal(5,4);not null;default:0;check:spillage_coefficient >= 0 AND spillage_coefficient <= 9.9999"`
	InStock             int             `gorm:"not null;default:0;check:in_stock >= 0"`
	InProgress          int             `gorm:"not null;default:0;check:in_progress >= 0"`
	Shipped             int             `gorm:"not null;default:0;check:shipped >= 0"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
