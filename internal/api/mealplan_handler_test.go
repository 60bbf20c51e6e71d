package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kitchenharmony-backend-go/internal/core"
	"kitchenharmony-backend-go/internal/middleware"
	"kitchenharmony-backend-go/internal/models"
)

// stubMealPlanService records the last upsert and returns canned results.
type stubMealPlanService struct {
	core.MealPlanService

	upsertOwner string
	upsertReq   *models.MealPlanRequest
	upsertPlan  *models.MealPlan
	created     bool
	err         error
}

func (s *stubMealPlanService) UpsertMealPlan(_ context.Context, ownerID string, req *models.MealPlanRequest) (*models.MealPlan, bool, error) {
	s.upsertOwner = ownerID
	s.upsertReq = req
	return s.upsertPlan, s.created, s.err
}

func (s *stubMealPlanService) GetMealPlanByOwner(_ context.Context, ownerID string) (*models.MealPlan, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.MealPlan{ID: "plan-1", OwnerID: ownerID}, nil
}

func (s *stubMealPlanService) DeleteMealPlan(context.Context, string, string) error {
	return s.err
}

func (s *stubMealPlanService) AddRecipe(_ context.Context, callerID, planID string, req models.AddRecipeRequest) (*models.MealPlan, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.MealPlan{ID: planID, OwnerID: callerID, Meals: []models.MealEntry{{RecipeID: req.RecipeID, Servings: 1}}}, nil
}

func newTestRouter(svc core.MealPlanService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRoutes(r, middleware.HeaderIdentity("X-USERID"), zap.NewNop(), Services{MealPlans: svc})
	return r
}

func perform(r http.Handler, method, path, userID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-USERID", userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSaveMealPlan_StatusReflectsCreation(t *testing.T) {
	plan := &models.MealPlan{ID: "plan-1", OwnerID: "U1"}

	svc := &stubMealPlanService{upsertPlan: plan, created: true}
	w := perform(newTestRouter(svc), http.MethodPost, "/api/v1/mealplan", "U1",
		`{"meals":[{"recipeId":"R1","date":"2024-02-01","servings":2}]}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "U1", svc.upsertOwner)
	require.Len(t, svc.upsertReq.Meals, 1)
	assert.Equal(t, "R1", svc.upsertReq.Meals[0].RecipeID)

	svc = &stubMealPlanService{upsertPlan: plan, created: false}
	w = perform(newTestRouter(svc), http.MethodPost, "/api/v1/mealplan", "U1",
		`{"2024-02-01":{"breakfast":{"_id":"R3","servings":4}}}`)
	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.upsertReq.Meals, 1)
	assert.Equal(t, "R3", svc.upsertReq.Meals[0].RecipeID)
	assert.Equal(t, 4, *svc.upsertReq.Meals[0].Servings)
}

func TestSaveMealPlan_Failures(t *testing.T) {
	t.Run("no identity", func(t *testing.T) {
		svc := &stubMealPlanService{}
		w := perform(newTestRouter(svc), http.MethodPost, "/api/v1/mealplan", "", `{"meals":[]}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, svc.upsertReq)
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := &stubMealPlanService{}
		w := perform(newTestRouter(svc), http.MethodPost, "/api/v1/mealplan", "U1", `{"not-a-date":{}}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid_payload", decodeError(t, w).Code)
		assert.Nil(t, svc.upsertReq)
	})

	for _, tt := range []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: servings must be at least 1", core.ErrInvalidPayload), http.StatusBadRequest, "invalid_payload"},
		{fmt.Errorf("%w: two plans", core.ErrIntegrityFault), http.StatusInternalServerError, "integrity_fault"},
		{fmt.Errorf("%w: insert: unavailable", core.ErrPersistenceFault), http.StatusInternalServerError, "persistence_fault"},
	} {
		t.Run(tt.code, func(t *testing.T) {
			svc := &stubMealPlanService{err: tt.err}
			w := perform(newTestRouter(svc), http.MethodPost, "/api/v1/mealplan", "U1", `{"meals":[]}`)
			assert.Equal(t, tt.status, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.code, resp.Code)
			assert.NotContains(t, w.Body.String(), "goroutine")
		})
	}
}

func TestGetMyMealPlan(t *testing.T) {
	w := perform(newTestRouter(&stubMealPlanService{}), http.MethodGet, "/api/v1/mealplan", "U1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var plan models.MealPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	assert.Equal(t, "U1", plan.OwnerID)

	svc := &stubMealPlanService{err: fmt.Errorf("%w: owner 'U1' has no meal plan", core.ErrMealPlanNotFound)}
	w = perform(newTestRouter(svc), http.MethodGet, "/api/v1/mealplan", "U1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, ErrorResponse{Error: core.ErrMealPlanNotFound.Error(), Code: "not_found"}, decodeError(t, w))
}

func TestDeleteMealPlan(t *testing.T) {
	w := perform(newTestRouter(&stubMealPlanService{}), http.MethodDelete, "/api/v1/mealplan/plan-1", "U1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	svc := &stubMealPlanService{err: fmt.Errorf("%w: not yours", core.ErrForbiddenAccess)}
	w = perform(newTestRouter(svc), http.MethodDelete, "/api/v1/mealplan/plan-1", "U2", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAddRecipe_RequiresFields(t *testing.T) {
	r := newTestRouter(&stubMealPlanService{})

	w := perform(r, http.MethodPost, "/api/v1/mealplan/plan-1/add-recipe", "U1", `{"recipeId":"R1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodPost, "/api/v1/mealplan/plan-1/add-recipe", "U1", `{"recipeId":"R1","date":"2024-02-01"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"recipeId":"R1"`)
}

func TestHealth(t *testing.T) {
	w := perform(newTestRouter(&stubMealPlanService{}), http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"UP"`)
}

func TestRespondError_UnknownErrorIsGeneric(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	respondError(c, zap.NewNop(), fmt.Errorf("dial tcp: connection refused at %s", time.Now()))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}
