package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kitchenharmony-backend-go/internal/core"
)

// Error codes returned in ErrorResponse.Code.
const (
	codeUnauthenticated  = "unauthenticated"
	codeInvalidPayload   = "invalid_payload"
	codeForbidden        = "forbidden"
	codeNotFound         = "not_found"
	codeConflict         = "conflict"
	codeIntegrityFault   = "integrity_fault"
	codePersistenceFault = "persistence_fault"
	codeInternal         = "internal_error"
)

// respondError maps a service error to its HTTP status and writes the error body.
// Server-side failures are logged and their details are not sent to the client.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		status int
		resp   ErrorResponse
	)

	switch {
	case errors.Is(err, core.ErrUnauthenticated):
		status = http.StatusUnauthorized
		resp = ErrorResponse{Error: core.ErrUnauthenticated.Error(), Code: codeUnauthenticated}
	case errors.Is(err, core.ErrInvalidPayload):
		status = http.StatusBadRequest
		resp = ErrorResponse{Error: core.ErrInvalidPayload.Error(), Code: codeInvalidPayload, Details: err.Error()}
	case errors.Is(err, core.ErrForbiddenAccess):
		status = http.StatusForbidden
		resp = ErrorResponse{Error: core.ErrForbiddenAccess.Error(), Code: codeForbidden}
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
		resp = ErrorResponse{Error: notFoundMessage(err), Code: codeNotFound}
	case errors.Is(err, core.ErrConflict):
		status = http.StatusConflict
		resp = ErrorResponse{Error: core.ErrConflict.Error(), Code: codeConflict, Details: err.Error()}
	case errors.Is(err, core.ErrIntegrityFault):
		status = http.StatusInternalServerError
		resp = ErrorResponse{Error: "Stored data is inconsistent", Code: codeIntegrityFault}
	case errors.Is(err, core.ErrPersistenceFault):
		status = http.StatusInternalServerError
		resp = ErrorResponse{Error: "The data store could not complete the request", Code: codePersistenceFault}
	default:
		status = http.StatusInternalServerError
		resp = ErrorResponse{Error: "An unexpected internal server error occurred.", Code: codeInternal}
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
	}
	_ = c.Error(err)
	c.JSON(status, resp)
}

func notFoundMessage(err error) string {
	for _, target := range []error{
		core.ErrMealPlanNotFound,
		core.ErrUserNotFound,
		core.ErrRecipeNotFound,
		core.ErrInventoryNotFound,
		core.ErrShoppingListNotFound,
	} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return core.ErrNotFound.Error()
}

// respondBindError reports a request body that could not be decoded or bound.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Code: codeInvalidPayload, Details: err.Error()})
}
