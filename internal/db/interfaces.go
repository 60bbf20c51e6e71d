package db

import (
	"context"
	"errors"

	"kitchenharmony-backend-go/internal/models"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateOwner is returned when an insert would give an owner a second meal plan.
	ErrDuplicateOwner = errors.New("owner already has a meal plan")
	// ErrAlreadyExists is returned when a unique key is already taken.
	ErrAlreadyExists = errors.New("document already exists")
)

// MealPlanRepository defines the persistence operations for meal plans.
type MealPlanRepository interface {
	// FindByOwner returns at most limit plans owned by ownerID. More than one is a data fault
	// the caller must surface.
	FindByOwner(ctx context.Context, ownerID string, limit int) ([]*models.MealPlan, error)
	GetByID(ctx context.Context, planID string) (*models.MealPlan, error)
	// Insert stores a new plan with a fresh ID. It fails with ErrDuplicateOwner when the owner
	// already has a plan.
	Insert(ctx context.Context, plan *models.MealPlan) (*models.MealPlan, error)
	// Replace overwrites the mutable fields of an existing plan and returns the stored result.
	Replace(ctx context.Context, planID string, fields models.MealPlanFields) (*models.MealPlan, error)
	DeleteByID(ctx context.Context, planID string) error
}

// UserRepository defines the interface for user data storage operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (string, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetByAuthSubject(ctx context.Context, subject string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, userID string) error
}

// CounterRepository hands out monotonically increasing sequence numbers.
type CounterRepository interface {
	// Next atomically increments the named counter and returns the new value. The first call
	// for a name returns 1.
	Next(ctx context.Context, name string) (int64, error)
}

// RecipeRepository defines the interface for recipe data storage operations.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) (string, error)
	GetByID(ctx context.Context, recipeID string) (*models.Recipe, error)
	ListPublic(ctx context.Context) ([]*models.Recipe, error)
	ListByUserID(ctx context.Context, userID string) ([]*models.Recipe, error)
	Update(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, recipeID string) error
}

// InventoryRepository defines the interface for inventory data storage operations.
type InventoryRepository interface {
	Create(ctx context.Context, inventory *models.Inventory) (string, error)
	GetByID(ctx context.Context, inventoryID string) (*models.Inventory, error)
	ListByUserID(ctx context.Context, userID string) ([]*models.Inventory, error)
	Update(ctx context.Context, inventory *models.Inventory) error
	Delete(ctx context.Context, inventoryID string) error
}

// ShoppingListRepository defines the interface for shopping list data storage operations.
type ShoppingListRepository interface {
	Create(ctx context.Context, list *models.ShoppingList) (string, error)
	GetByID(ctx context.Context, listID string) (*models.ShoppingList, error)
	ListByUserID(ctx context.Context, userID string) ([]*models.ShoppingList, error)
	Update(ctx context.Context, list *models.ShoppingList) error
	Delete(ctx context.Context, listID string) error
}
