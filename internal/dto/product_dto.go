package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// BomItemRequest is one component line in a product's BOM.
type BomItemRequest struct {
	ComponentID      string `json:"component_id"      validate:"required,uuid"`
	QuantityRequired int    `json:"quantity_required" validate:"required,gt=0"`
}

// ProductBomItemRequest is one nested-product line in a product's BOM.
type ProductBomItemRequest struct {
	ChildProductID   string `json:"child_product_id"  validate:"required,uuid"`
	QuantityRequired int    `json:"quantity_required" validate:"required,gt=0"`
}

type CreateProductRequest struct {
	Name       string                  `json:"name"        validate:"required,min=1,max=255"`
	Bom        []BomItemRequest        `json:"bom"         validate:"dive"`
	ProductBom []ProductBomItemRequest `json:"product_bom" validate:"dive"`
}

type UpdateProductRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=255"`
}

// UpdateProductBomRequest replaces both BOM edge sets of a product.
type UpdateProductBomRequest struct {
	Bom        []BomItemRequest        `json:"bom"         validate:"dive"`
	ProductBom []ProductBomItemRequest `json:"product_bom" validate:"dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BomItemResponse struct {
	ID                  string          `json:"id"`
	ComponentID         string          `json:"component_id"`
	ComponentName       string          `json:"component_name"`
	QuantityRequired    int             `json:"quantity_required"`
	SpillageCoefficient decimal.Decimal `json:"spillage_coefficient"`
	// QuantityWithSpillage is the exact decimal per-unit demand including waste.
	QuantityWithSpillage decimal.Decimal `json:"quantity_with_spillage"`
}

type ProductBomItemResponse struct {
	ID               string `json:"id"`
	ChildProductID   string `json:"child_product_id"`
	ChildProductName string `json:"child_product_name"`
	QuantityRequired int    `json:"quantity_required"`
}

type ProductResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	InProgress int       `json:"in_progress"`
	Shipped    int       `json:"shipped"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ProductDetailResponse struct {
	ProductResponse
	Bom        []BomItemResponse        `json:"bom"`
	ProductBom []ProductBomItemResponse `json:"product_bom"`
}

type ProductCapacityResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	InProgress    int    `json:"in_progress"`
	Shipped       int    `json:"shipped"`
	MaxProducible int    `json:"max_producible"`
	// LimitingFactor names the constraint that produced the minimum:
	// a component name, a nested product name, or "No BOM defined".
	LimitingFactor string `json:"limiting_factor"`
}
