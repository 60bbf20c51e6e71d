package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kitchenharmony-backend-go/internal/core"
	"kitchenharmony-backend-go/internal/middleware"
	"kitchenharmony-backend-go/internal/models"
)

// InventoryHandler handles API endpoints related to inventories.
type InventoryHandler struct {
	inventoryService core.InventoryService
	logger           *zap.Logger
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(is core.InventoryService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{inventoryService: is, logger: logger}
}

// ListInventories handles GET /inventory
func (h *InventoryHandler) ListInventories(c *gin.Context) {
	callerID, err := middleware.ResolveOwnerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	inventories, err := h.inventoryService.ListInventories(c.Request.Context(), callerID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, emptyIfNil(inventories))
}

// GetInventory handles GET /inventory/:inventoryId
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	callerID, err := middleware.ResolveOwnerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	inventory, err := h.inventoryService.GetInventory(c.Request.Context(), callerID, c.Param("inventoryId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, inventory)
}

// CreateInventory handles POST /inventory
func (h *InventoryHandler) CreateInventory(c *gin.Context) {
	callerID, err := middleware.ResolveOwnerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	var req models.InventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	inventory, err := h.inventoryService.CreateInventory(c.Request.Context(), callerID, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, inventory)
}

// UpdateInventory handles PUT /inventory/:inventoryId
func (h *InventoryHandler) UpdateInventory(c *gin.Context) {
	callerID, err := middleware.ResolveOwnerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	var req models.InventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	inventory, err := h.inventoryService.UpdateInventory(c.Request.Context(), callerID, c.Param("inventoryId"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, inventory)
}

// DeleteInventory handles DELETE /inventory/:inventoryId
func (h *InventoryHandler) DeleteInventory(c *gin.Context) {
	callerID, err := middleware.ResolveOwnerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.inventoryService.DeleteInventory(c.Request.Context(), callerID, c.Param("inventoryId")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Inventory deleted"})
}
