package handler

import (
	"net/http"

	"github.com/assetlabel/inventory/internal/modules/serializer"
	"github.com/assetlabel/inventory/internal/modules/service"
	"github.com/gin-gonic/gin"
)

type MaintenanceHandler struct {
	svc service.MaintenanceService
}

func NewMaintenanceHandler(s service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{svc: s}
}

// Cleanup godoc
//
//	@Summary		Clean stored files
//	@Description	Delete QR codes and labels without a live asset, and batch files past their retention
//	@Tags			maintenance
//	@Produce		json
//	@Success		200	{object}	serializer.Response{data=service.CleanupReport}
//	@Router			/maintenance/cleanup [post]
func (h *MaintenanceHandler) Cleanup(c *gin.Context) {
	report, err := h.svc.Cleanup(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: report})
}
