package core

import (
	"context"

	"kitchenharmony-backend-go/internal/models"
)

// MealPlanService defines the meal-plan operations. Every owner has at most one plan.
type MealPlanService interface {
	// UpsertMealPlan replaces the owner's plan fields in place, or creates the plan when the
	// owner has none. The boolean reports whether a plan was created.
	UpsertMealPlan(ctx context.Context, ownerID string, req *models.MealPlanRequest) (*models.MealPlan, bool, error)
	GetMealPlanByOwner(ctx context.Context, ownerID string) (*models.MealPlan, error)
	GetMealPlanForUser(ctx context.Context, callerID, userID string) (*models.MealPlan, error)
	GetMealPlanByID(ctx context.Context, callerID, planID string) (*models.MealPlan, error)
	UpdateMealPlan(ctx context.Context, callerID, planID string, req *models.MealPlanRequest) (*models.MealPlan, error)
	AddRecipe(ctx context.Context, callerID, planID string, req models.AddRecipeRequest) (*models.MealPlan, error)
	DeleteMealPlan(ctx context.Context, callerID, planID string) error
}

// UserService defines the interface for user-related operations.
type UserService interface {
	CreateUser(ctx context.Context, subject string, req models.CreateUserRequest) (*models.User, error)
	// GetOrCreateProfile returns the user linked to the identity, creating it from the token
	// claims on first sight. The boolean reports whether the user was created.
	GetOrCreateProfile(ctx context.Context, identity models.Identity) (*models.User, bool, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetByAuthSubject(ctx context.Context, subject string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, callerID, userID string, req models.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, callerID, userID string) error
}

// RecipeService defines the interface for recipe-related operations.
type RecipeService interface {
	ListPublicRecipes(ctx context.Context) ([]*models.Recipe, error)
	ListRecipesByUser(ctx context.Context, callerID, userID string) ([]*models.Recipe, error)
	GetRecipe(ctx context.Context, callerID, recipeID string) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, callerID, userID string, req models.RecipeRequest) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, callerID, recipeID string, req models.RecipeRequest) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, callerID, recipeID string) error
}

// InventoryService defines the interface for inventory-related operations.
type InventoryService interface {
	ListInventories(ctx context.Context, callerID string) ([]*models.Inventory, error)
	GetInventory(ctx context.Context, callerID, inventoryID string) (*models.Inventory, error)
	CreateInventory(ctx context.Context, callerID string, req models.InventoryRequest) (*models.Inventory, error)
	UpdateInventory(ctx context.Context, callerID, inventoryID string, req models.InventoryRequest) (*models.Inventory, error)
	DeleteInventory(ctx context.Context, callerID, inventoryID string) error
}

// ShoppingListService defines the interface for shopping-list operations.
type ShoppingListService interface {
	ListShoppingLists(ctx context.Context, callerID string) ([]*models.ShoppingList, error)
	GetShoppingList(ctx context.Context, callerID, listID string) (*models.ShoppingList, error)
	CreateShoppingList(ctx context.Context, callerID string, req models.ShoppingListRequest) (*models.ShoppingList, error)
	UpdateShoppingList(ctx context.Context, callerID, listID string, req models.ShoppingListRequest) (*models.ShoppingList, error)
	DeleteShoppingList(ctx context.Context, callerID, listID string) error
}
