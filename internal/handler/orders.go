package handler

import (
	"net/http"

	"github.com/HanreDelport/Inventory-Manager/internal/dto"
	"github.com/HanreDelport/Inventory-Manager/internal/service"

	"github.com/gin-gonic/gin"
)

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler {
	return &OrdersHandler{svc: svc}
}

// Create resolves the product's BOM and either allocates inventory
// immediately (order starts in_progress) or parks the order as pending when
// stock is short.
func (h *OrdersHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateOrder(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrdersHandler) List(c *gin.Context) {
	resp, err := h.svc.ListOrders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Allocate retries inventory allocation for a pending order.
func (h *OrdersHandler) Allocate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.AllocatePendingOrder(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) Complete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.CompleteOrder(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Requirements previews an order's component demand against live stock.
func (h *OrdersHandler) Requirements(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.GetOrderRequirements(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
