package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kitchenharmony-backend-go/internal/core"
	"kitchenharmony-backend-go/internal/middleware"
	"kitchenharmony-backend-go/internal/models"
)

// ShoppingListHandler handles API endpoints related to shopping lists.
type ShoppingListHandler struct {
	listService core.ShoppingListService
	logger      *zap.Logger
}

// NewShoppingListHandler creates a new ShoppingListHandler.
func NewShoppingListHandler(ls core.ShoppingListService, logger *zap.Logger) *ShoppingListHandler {
	return &ShoppingListHandler{listService: ls, logger: logger}
}

// ListShoppingLists handles GET /shoppingLists
func (h *ShoppingListHandler) ListShoppingLists(c *gin.Context) {
	callerID, err := middleware.ResolveOwnerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	lists, err := h.listService.ListShoppingLists(c.Request.Context(), callerID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, emptyIfNil(lists))
}

// GetShoppingList handles GET /shoppingLists/:shoppingListId
func (h *ShoppingListHandler) GetShoppingList(c *gin.Context) {
	callerID, err := middleware.ResolveOwnerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	list, err := h.listService.GetShoppingList(c.Request.Context(), callerID, c.Param("shoppingListId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateShoppingList handles POST /shoppingLists
func (h *ShoppingListHandler) CreateShoppingList(c *gin.Context) {
	callerID, err := middleware.ResolveOwnerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	var req models.ShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	list, err := h.listService.CreateShoppingList(c.Request.Context(), callerID, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

// UpdateShoppingList handles PUT /shoppingLists/:shoppingListId
func (h *ShoppingListHandler) UpdateShoppingList(c *gin.Context) {
	callerID, err := middleware.ResolveOwnerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	var req models.ShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	list, err := h.listService.UpdateShoppingList(c.Request.Context(), callerID, c.Param("shoppingListId"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// DeleteShoppingList handles DELETE /shoppingLists/:shoppingListId
func (h *ShoppingListHandler) DeleteShoppingList(c *gin.Context) {
	callerID, err := middleware.ResolveOwnerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.listService.DeleteShoppingList(c.Request.Context(), callerID, c.Param("shoppingListId")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Shopping list deleted"})
}
