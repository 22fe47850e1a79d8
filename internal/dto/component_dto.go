package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateComponentRequest struct {
	Name                string          `json:"name"                 validate:"required,min=1,max=255"`
	SpillageCoefficient decimal.Decimal `json:"spillage_coefficient" validate:"min=0,max=9.9999"`
	InStock             int             `json:"in_stock"             validate:"min=0"`
}

type UpdateComponentRequest struct {
	Name                *string          `json:"name"                 validate:"omitempty,min=1,max=255"`
	SpillageCoefficient *decimal.Decimal `json:"spillage_coefficient" validate:"omitempty,min=0,max=9.9999"`
}

// AdjustStockRequest applies a signed delta to in_stock. The adjustment is
// rejected when the result would be negative.
type AdjustStockRequest struct {
	Adjustment int `json:"adjustment" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ComponentResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	SpillageCoefficient decimal.Decimal `json:"spillage_coefficient"`
	InStock             int             `json:"in_stock"`
	InProgress          int             `json:"in_progress"`
	Shipped             int             `json:"shipped"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}
