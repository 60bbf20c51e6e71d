package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kitchenharmony-backend-go/internal/core"
	"kitchenharmony-backend-go/internal/middleware"
	"kitchenharmony-backend-go/internal/models"
)

// MealPlanHandler handles API endpoints related to meal plans.
type MealPlanHandler struct {
	mealPlanService core.MealPlanService
	logger          *zap.Logger
}

// NewMealPlanHandler creates a new MealPlanHandler.
func NewMealPlanHandler(ms core.MealPlanService, logger *zap.Logger) *MealPlanHandler {
	return &MealPlanHandler{mealPlanService: ms, logger: logger}
}

// GetMyMealPlan handles GET /mealplan
func (h *MealPlanHandler) GetMyMealPlan(c *gin.Context) {
	ownerID, err := middleware.ResolveOwnerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	plan, err := h.mealPlanService.GetMealPlanByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// GetMealPlan handles GET /mealplan/:id
func (h *MealPlanHandler) GetMealPlan(c *gin.Context) {
	ownerID, err := middleware.ResolveOwnerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	plan, err := h.mealPlanService.GetMealPlanByID(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// GetUserMealPlan handles GET /mealplan/user/:userId
func (h *MealPlanHandler) GetUserMealPlan(c *gin.Context) {
	ownerID, err := middleware.ResolveOwnerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	plan, err := h.mealPlanService.GetMealPlanForUser(c.Request.Context(), ownerID, c.Param("userId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// SaveMealPlan handles POST /mealplan. It answers 201 when the plan was created and 200 when
// the existing plan was replaced.
func (h *MealPlanHandler) SaveMealPlan(c *gin.Context) {
	ownerID, err := middleware.ResolveOwnerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	req, err := h.decodePayload(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	plan, created, err := h.mealPlanService.UpsertMealPlan(c.Request.Context(), ownerID, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, plan)
}

// UpdateMealPlan handles PUT /mealplan/:id
func (h *MealPlanHandler) UpdateMealPlan(c *gin.Context) {
	ownerID, err := middleware.ResolveOwnerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	req, err := h.decodePayload(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	plan, err := h.mealPlanService.UpdateMealPlan(c.Request.Context(), ownerID, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// AddRecipe handles POST /mealplan/:id/add-recipe
func (h *MealPlanHandler) AddRecipe(c *gin.Context) {
	ownerID, err := middleware.ResolveOwnerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	var req models.AddRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	plan, err := h.mealPlanService.AddRecipe(c.Request.Context(), ownerID, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// DeleteMealPlan handles DELETE /mealplan/:id
func (h *MealPlanHandler) DeleteMealPlan(c *gin.Context) {
	ownerID, err := middleware.ResolveOwnerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.mealPlanService.DeleteMealPlan(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Meal plan deleted"})
}

// decodePayload reads the raw body so both accepted meal-plan shapes can be recognised.
func (h *MealPlanHandler) decodePayload(c *gin.Context) (*models.MealPlanRequest, error) {
	body, err := c.GetRawData()
	if err != nil {
		return nil, fmt.Errorf("%w: could not read request body: %v", core.ErrInvalidPayload, err)
	}
	return core.DecodeMealPlanPayload(body)
}
