package handler

import (
	"net/http"

	"github.com/HanreDelport/Inventory-Manager/internal/dto"
	"github.com/HanreDelport/Inventory-Manager/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductsHandler struct {
	svc      service.ProductService
	capacity service.CapacityService
}

func NewProductsHandler(svc service.ProductService, capacity service.CapacityService) *ProductsHandler {
	return &ProductsHandler{svc: svc, capacity: capacity}
}

func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateBom replaces the product's full BOM (component and nested-product
// edges) after duplicate and cycle validation.
func (h *ProductsHandler) UpdateBom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductBomRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateBom(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product and its BOM deleted successfully"})
}

// CalculateCapacity reports the maximum producible units per product with
// the limiting constraint named.
func (h *ProductsHandler) CalculateCapacity(c *gin.Context) {
	resp, err := h.capacity.CalculateProductionCapacity(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
