package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kitchenharmony-backend-go/internal/core"
	"kitchenharmony-backend-go/internal/middleware"
	"kitchenharmony-backend-go/internal/models"
)

// RecipeHandler handles API endpoints related to recipes.
type RecipeHandler struct {
	recipeService core.RecipeService
	logger        *zap.Logger
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(rs core.RecipeService, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{recipeService: rs, logger: logger}
}

// ListPublicRecipes handles GET /recipe
func (h *RecipeHandler) ListPublicRecipes(c *gin.Context) {
	recipes, err := h.recipeService.ListPublicRecipes(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, emptyIfNil(recipes))
}

// ListUserRecipes handles GET /recipe/user/:userId
func (h *RecipeHandler) ListUserRecipes(c *gin.Context) {
	callerID, err := middleware.ResolveOwnerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	recipes, err := h.recipeService.ListRecipesByUser(c.Request.Context(), callerID, c.Param("userId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, emptyIfNil(recipes))
}

// GetRecipe handles GET /recipe/:id
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	callerID, err := middleware.ResolveOwnerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), callerID, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// CreateRecipe handles POST /recipe/user/:userId
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	callerID, err := middleware.ResolveOwnerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	var req models.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), callerID, c.Param("userId"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// UpdateRecipe handles PUT /recipe/:id
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	callerID, err := middleware.ResolveOwnerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	var req models.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), callerID, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe handles DELETE /recipe/:id
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	callerID, err := middleware.ResolveOwnerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.recipeService.DeleteRecipe(c.Request.Context(), callerID, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Recipe deleted"})
}

// emptyIfNil makes list endpoints answer [] rather than null.
func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
