package handler

import (
	"net/http"

	"github.com/HanreDelport/Inventory-Manager/internal/service"

	"github.com/gin-gonic/gin"
)

type ProcurementHandler struct{ svc service.ProcurementService }

func NewProcurementHandler(svc service.ProcurementService) *ProcurementHandler {
	return &ProcurementHandler{svc: svc}
}

// Needs reports every component whose aggregate open-order demand exceeds
// available stock.
func (h *ProcurementHandler) Needs(c *gin.Context) {
	resp, err := h.svc.CalculateProcurementNeeds(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
