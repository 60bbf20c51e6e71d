package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kitchenharmony-backend-go/internal/core"
	"kitchenharmony-backend-go/internal/middleware"
	"kitchenharmony-backend-go/internal/models"
)

// UserHandler handles user-profile related API endpoints.
type UserHandler struct {
	userService core.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us core.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{userService: us, logger: logger}
}

// GetProfile handles GET /users/profile. The first call for an identity creates its profile
// from the token claims and answers 201.
func (h *UserHandler) GetProfile(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	user, created, err := h.userService.GetOrCreateProfile(c.Request.Context(), identity)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if created {
		c.JSON(http.StatusCreated, user)
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	subject, err := middleware.ResolveOwnerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), subject, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUserByAuth0ID handles GET /users/auth0/:auth0Id
func (h *UserHandler) GetUserByAuth0ID(c *gin.Context) {
	user, err := h.userService.GetByAuthSubject(c.Request.Context(), c.Param("auth0Id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUserByEmail handles GET /users/email/:email
func (h *UserHandler) GetUserByEmail(c *gin.Context) {
	user, err := h.userService.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser handles PUT /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	callerID, err := middleware.ResolveOwnerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), callerID, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	callerID, err := middleware.ResolveOwnerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.userService.DeleteUser(c.Request.Context(), callerID, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "User deleted"})
}
