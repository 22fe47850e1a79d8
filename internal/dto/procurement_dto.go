package dto

// ProcurementItemResponse reports one component whose aggregate demand from
// open orders exceeds available stock.
type ProcurementItemResponse struct {
	ComponentID   string `json:"component_id"`
	ComponentName string `json:"component_name"`
	InStock       int    `json:"in_stock"`
	TotalNeeded   int    `json:"total_needed"`
	Shortage      int    `json:"shortage"`
	// OrdersAffected counts (order, component) touches by pending orders,
	// not distinct orders.
	OrdersAffected int `json:"orders_affected"`
}

type ProcurementResponse struct {
	ComponentsToOrder []ProcurementItemResponse `json:"components_to_order"`
	TotalItems        int                       `json:"total_items"`
}
