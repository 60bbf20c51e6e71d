package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"kitchenharmony-backend-go/internal/db"
	"kitchenharmony-backend-go/internal/models"
)

// ownerLookupLimit is one more than the number of plans an owner may have, so a duplicate
// is visible instead of silently picking one.
const ownerLookupLimit = 2

// mealPlanService implements the MealPlanService interface.
type mealPlanService struct {
	mealPlanRepo db.MealPlanRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewMealPlanService creates a new MealPlanService instance.
func NewMealPlanService(repo db.MealPlanRepository, logger *zap.Logger) MealPlanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &mealPlanService{
		mealPlanRepo: repo,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// UpsertMealPlan saves the caller's plan. The identity and payload are checked before the
// store is touched, and exactly one write (replace or insert) reaches the store.
func (s *mealPlanService) UpsertMealPlan(ctx context.Context, ownerID string, req *models.MealPlanRequest) (*models.MealPlan, bool, error) {
	if ownerID == "" {
		return nil, false, ErrUnauthenticated
	}
	meals, dateRange, err := normalizeMealPlan(req)
	if err != nil {
		return nil, false, err
	}

	// Merge into the owner's plan when there is one.
	existing, err := s.findOwnerPlan(ctx, ownerID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		// The upsert path never renames an existing plan.
		plan, err := s.replace(ctx, existing.ID, nil, meals, dateRange)
		return plan, false, err
	}

	// First save for this owner.
	now := s.now()
	plan := &models.MealPlan{
		OwnerID:   ownerID,
		DateRange: dateRange,
		Meals:     meals,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Name != nil {
		plan.Name = *req.Name
	}

	stored, err := s.mealPlanRepo.Insert(ctx, plan)
	if err == nil {
		return stored, true, nil
	}
	if !errors.Is(err, db.ErrDuplicateOwner) {
		return nil, false, persistenceFault("insert meal plan", err)
	}

	// A concurrent first save for the same owner won; apply this payload to its plan.
	s.logger.Info("Meal plan insert lost a race, replacing the winner", zap.String("ownerID", ownerID))
	existing, err = s.findOwnerPlan(ctx, ownerID)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		// Guard without a plan: the store is inconsistent.
		return nil, false, fmt.Errorf("%w: owner '%s' is reserved but has no meal plan", ErrIntegrityFault, ownerID)
	}
	replaced, err := s.replace(ctx, existing.ID, nil, meals, dateRange)
	return replaced, false, err
}

// GetMealPlanByOwner is a read-only lookup; it never creates a plan.
func (s *mealPlanService) GetMealPlanByOwner(ctx context.Context, ownerID string) (*models.MealPlan, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}
	plan, err := s.findOwnerPlan(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, fmt.Errorf("%w: owner '%s' has no meal plan", ErrMealPlanNotFound, ownerID)
	}
	return plan, nil
}

// GetMealPlanForUser returns the plan of userID, which must be the caller.
func (s *mealPlanService) GetMealPlanForUser(ctx context.Context, callerID, userID string) (*models.MealPlan, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	if userID != callerID {
		return nil, fmt.Errorf("%w: user '%s' cannot read the meal plan of '%s'", ErrForbiddenAccess, callerID, userID)
	}
	return s.GetMealPlanByOwner(ctx, userID)
}

// GetMealPlanByID returns a plan owned by the caller.
func (s *mealPlanService) GetMealPlanByID(ctx context.Context, callerID, planID string) (*models.MealPlan, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	return s.getOwned(ctx, callerID, planID)
}

// UpdateMealPlan replaces meals and dateRange (and the name, when given) of a plan by ID.
func (s *mealPlanService) UpdateMealPlan(ctx context.Context, callerID, planID string, req *models.MealPlanRequest) (*models.MealPlan, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	meals, dateRange, err := normalizeMealPlan(req)
	if err != nil {
		return nil, err
	}
	if _, err := s.getOwned(ctx, callerID, planID); err != nil {
		return nil, err
	}
	return s.replace(ctx, planID, req.Name, meals, dateRange)
}

// AddRecipe appends one meal to a plan, widening the date range to include it.
func (s *mealPlanService) AddRecipe(ctx context.Context, callerID, planID string, req models.AddRecipeRequest) (*models.MealPlan, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	entry, err := normalizeMealEntry(req.RecipeID, req.Date, req.Servings)
	if err != nil {
		return nil, invalidPayload("%v", err)
	}
	plan, err := s.getOwned(ctx, callerID, planID)
	if err != nil {
		return nil, err
	}

	// Copy before appending so the loaded plan is left untouched.
	meals := append(append(make([]models.MealEntry, 0, len(plan.Meals)+1), plan.Meals...), entry)
	dateRange := plan.DateRange
	// An empty plan with no range starts from the new meal's date.
	if len(plan.Meals) == 0 && dateRange.Start.IsZero() && dateRange.End.IsZero() {
		dateRange = models.DateRange{Start: entry.Date, End: entry.Date}
	}
	if entry.Date.Before(dateRange.Start) {
		dateRange.Start = entry.Date
	}
	if entry.Date.After(dateRange.End) {
		dateRange.End = entry.Date
	}
	return s.replace(ctx, planID, nil, meals, dateRange)
}

// DeleteMealPlan removes a plan. An unknown ID is reported as not found.
func (s *mealPlanService) DeleteMealPlan(ctx context.Context, callerID, planID string) error {
	if callerID == "" {
		return ErrUnauthenticated
	}
	if _, err := s.getOwned(ctx, callerID, planID); err != nil {
		return err
	}
	if err := s.mealPlanRepo.DeleteByID(ctx, planID); err != nil {
		return repoError(err, ErrMealPlanNotFound, fmt.Sprintf("delete meal plan '%s'", planID))
	}
	return nil
}

// findOwnerPlan returns the owner's plan, nil when there is none, or ErrIntegrityFault when
// the store holds more than one.
func (s *mealPlanService) findOwnerPlan(ctx context.Context, ownerID string) (*models.MealPlan, error) {
	plans, err := s.mealPlanRepo.FindByOwner(ctx, ownerID, ownerLookupLimit)
	if err != nil {
		return nil, persistenceFault("find meal plan by owner", err)
	}
	switch len(plans) {
	case 0:
		return nil, nil
	case 1:
		return plans[0], nil
	default:
		s.logger.Error("Owner has more than one meal plan",
			zap.String("ownerID", ownerID),
			zap.String("firstPlanID", plans[0].ID),
			zap.String("secondPlanID", plans[1].ID),
		)
		return nil, fmt.Errorf("%w: owner '%s' has more than one meal plan", ErrIntegrityFault, ownerID)
	}
}

// getOwned loads a plan by ID and checks that callerID owns it.
func (s *mealPlanService) getOwned(ctx context.Context, callerID, planID string) (*models.MealPlan, error) {
	if planID == "" {
		return nil, invalidPayload("meal plan ID is required")
	}
	plan, err := s.mealPlanRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, repoError(err, ErrMealPlanNotFound, fmt.Sprintf("get meal plan '%s'", planID))
	}
	if plan.OwnerID != callerID {
		return nil, fmt.Errorf("%w: user '%s' is not the owner of meal plan '%s'", ErrForbiddenAccess, callerID, planID)
	}
	return plan, nil
}

// replace overwrites the plan content and stamps updatedAt.
func (s *mealPlanService) replace(ctx context.Context, planID string, name *string, meals []models.MealEntry, dateRange models.DateRange) (*models.MealPlan, error) {
	plan, err := s.mealPlanRepo.Replace(ctx, planID, models.MealPlanFields{
		Name:      name,
		DateRange: dateRange,
		Meals:     meals,
		UpdatedAt: s.now(),
	})
	if err != nil {
		return nil, repoError(err, ErrMealPlanNotFound, fmt.Sprintf("replace meal plan '%s'", planID))
	}
	return plan, nil
}
