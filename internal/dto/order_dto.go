package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateOrderRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderAllocationResponse struct {
	ID                string `json:"id"`
	ComponentID       string `json:"component_id"`
	ComponentName     string `json:"component_name"`
	QuantityAllocated int    `json:"quantity_allocated"`
}

type OrderResponse struct {
	ID          string     `json:"id"`
	ProductID   string     `json:"product_id"`
	ProductName string     `json:"product_name"`
	Quantity    int        `json:"quantity"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

type OrderDetailResponse struct {
	OrderResponse
	Allocations []OrderAllocationResponse `json:"allocations"`
}

// OrderSummaryResponse lists all orders with per-status counts.
type OrderSummaryResponse struct {
	TotalOrders int             `json:"total_orders"`
	Pending     int             `json:"pending"`
	InProgress  int             `json:"in_progress"`
	Completed   int             `json:"completed"`
	Orders      []OrderResponse `json:"orders"`
}

// ComponentRequirementResponse is one line of an allocation preview.
type ComponentRequirementResponse struct {
	ComponentID   string `json:"component_id"`
	ComponentName string `json:"component_name"`
	Needed        int    `json:"needed"`
	Available     int    `json:"available"`
	Shortage      int    `json:"shortage"`
	HasEnough     bool   `json:"has_enough"`
}

// OrderRequirementsResponse previews whether a pending order could be
// allocated against live stock right now.
type OrderRequirementsResponse struct {
	OrderID      string                         `json:"order_id"`
	ProductName  string                         `json:"product_name"`
	Quantity     int                            `json:"quantity"`
	Status       string                         `json:"status"`
	Requirements []ComponentRequirementResponse `json:"requirements"`
	CanAllocate  bool                           `json:"can_allocate"`
}
