package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kitchenharmony-backend-go/internal/db"
	"kitchenharmony-backend-go/internal/models"
)

// recipeService implements the RecipeService interface.
type recipeService struct {
	recipeRepo db.RecipeRepository
}

// NewRecipeService creates a new RecipeService instance.
func NewRecipeService(recipeRepo db.RecipeRepository) RecipeService {
	return &recipeService{recipeRepo: recipeRepo}
}

// ListPublicRecipes returns every recipe marked public, regardless of owner.
func (s *recipeService) ListPublicRecipes(ctx context.Context) ([]*models.Recipe, error) {
	recipes, err := s.recipeRepo.ListPublic(ctx)
	if err != nil {
		return nil, persistenceFault("list public recipes", err)
	}
	return recipes, nil
}

// ListRecipesByUser returns all of the caller's own recipes, or only the public ones of
// another user.
func (s *recipeService) ListRecipesByUser(ctx context.Context, callerID, userID string) ([]*models.Recipe, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	recipes, err := s.recipeRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, persistenceFault("list recipes by user", err)
	}
	if callerID == userID {
		return recipes, nil
	}
	// Other users only see what is public.
	visible := make([]*models.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if r.IsPublic {
			visible = append(visible, r)
		}
	}
	return visible, nil
}

// GetRecipe returns a public recipe, or a private one to its owner.
func (s *recipeService) GetRecipe(ctx context.Context, callerID, recipeID string) (*models.Recipe, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, repoError(err, ErrRecipeNotFound, fmt.Sprintf("get recipe '%s'", recipeID))
	}
	if !recipe.IsPublic && recipe.UserID != callerID {
		return nil, fmt.Errorf("%w: recipe '%s' is private", ErrForbiddenAccess, recipeID)
	}
	return recipe, nil
}

// CreateRecipe stores a new recipe for the caller. Callers cannot create recipes for
// someone else.
func (s *recipeService) CreateRecipe(ctx context.Context, callerID, userID string, req models.RecipeRequest) (*models.Recipe, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	if userID != callerID {
		return nil, fmt.Errorf("%w: cannot create recipes for user '%s'", ErrForbiddenAccess, userID)
	}
	if err := validateRecipe(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	recipe := &models.Recipe{UserID: userID, CreatedAt: now} // ID is assigned by the repository
	applyRecipeRequest(recipe, req, now)

	if _, err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, persistenceFault("create recipe", err)
	}
	return recipe, nil
}

// UpdateRecipe replaces the editable fields of one of the caller's recipes.
func (s *recipeService) UpdateRecipe(ctx context.Context, callerID, recipeID string, req models.RecipeRequest) (*models.Recipe, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	// Validate before loading so a bad payload never costs a read.
	if err := validateRecipe(req); err != nil {
		return nil, err
	}
	recipe, err := s.getOwned(ctx, callerID, recipeID)
	if err != nil {
		return nil, err
	}
	applyRecipeRequest(recipe, req, time.Now().UTC())

	if err := s.recipeRepo.Update(ctx, recipe); err != nil {
		return nil, repoError(err, ErrRecipeNotFound, fmt.Sprintf("update recipe '%s'", recipeID))
	}
	return recipe, nil
}

// DeleteRecipe removes one of the caller's recipes.
func (s *recipeService) DeleteRecipe(ctx context.Context, callerID, recipeID string) error {
	if callerID == "" {
		return ErrUnauthenticated
	}
	if _, err := s.getOwned(ctx, callerID, recipeID); err != nil {
		return err
	}
	if err := s.recipeRepo.Delete(ctx, recipeID); err != nil {
		return repoError(err, ErrRecipeNotFound, fmt.Sprintf("delete recipe '%s'", recipeID))
	}
	return nil
}

// getOwned loads a recipe and checks that callerID owns it.
func (s *recipeService) getOwned(ctx context.Context, callerID, recipeID string) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, repoError(err, ErrRecipeNotFound, fmt.Sprintf("get recipe '%s'", recipeID))
	}
	if recipe.UserID != callerID {
		return nil, fmt.Errorf("%w: user '%s' is not the owner of recipe '%s'", ErrForbiddenAccess, callerID, recipeID)
	}
	return recipe, nil
}

func validateRecipe(req models.RecipeRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return invalidPayload("title is required")
	}
	if strings.TrimSpace(req.Instructions) == "" {
		return invalidPayload("instructions are required")
	}
	if len(req.Ingredients) == 0 {
		return invalidPayload("at least one ingredient is required")
	}
	// Every ingredient needs all three parts to be usable in a shopping list.
	for i, ing := range req.Ingredients {
		if ing.Name == "" || ing.Quantity == "" || ing.Unit == "" {
			return invalidPayload("ingredients[%d]: name, quantity and unit are required", i)
		}
	}
	return nil
}

func applyRecipeRequest(recipe *models.Recipe, req models.RecipeRequest, now time.Time) {
	recipe.Title = strings.TrimSpace(req.Title)
	recipe.Description = req.Description
	recipe.Ingredients = req.Ingredients
	recipe.Instructions = req.Instructions
	recipe.Author = req.Author
	recipe.IsPublic = req.IsPublic
	recipe.Tags = nonNilStrings(req.Tags)
	recipe.ImageURL = req.ImageURL
	recipe.UpdatedAt = now
}
