package models

// MealEntryRequest is one meal in the canonical (flat) meal-plan payload.
// Dates are "YYYY-MM-DD" or RFC 3339; servings defaults to 1 when omitted.
type MealEntryRequest struct {
	RecipeID string `json:"recipeId"`
	Date     string `json:"date"`
	Servings *int   `json:"servings,omitempty"`
}

// DateRangeRequest is the optional explicit range of a meal-plan payload.
type DateRangeRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// MealPlanRequest is the canonical request body for saving a meal plan.
// When DateRange is nil it is derived from the meal dates.
type MealPlanRequest struct {
	Name      *string            `json:"name,omitempty"`
	Meals     []MealEntryRequest `json:"meals"`
	DateRange *DateRangeRequest  `json:"dateRange,omitempty"`
}

// AddRecipeRequest is the body of POST /mealplan/:id/add-recipe.
type AddRecipeRequest struct {
	RecipeID string `json:"recipeId" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Servings *int   `json:"servings,omitempty"`
}

// CreateUserRequest represents the request body for creating a user.
type CreateUserRequest struct {
	Fname    string   `json:"fname,omitempty"`
	Lname    string   `json:"lname,omitempty"`
	Username string   `json:"username,omitempty"`
	Email    string   `json:"email" binding:"required"`
	Recipes  []string `json:"recipes,omitempty"`
}

// UpdateUserRequest represents the request body for updating a user.
// Pointers distinguish fields that are absent from fields being cleared.
type UpdateUserRequest struct {
	Fname    *string   `json:"fname,omitempty"`
	Lname    *string   `json:"lname,omitempty"`
	Username *string   `json:"username,omitempty"`
	Email    *string   `json:"email,omitempty"`
	Recipes  *[]string `json:"recipes,omitempty"`
}

// RecipeRequest is used for both creating and replacing a recipe.
type RecipeRequest struct {
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions string       `json:"instructions"`
	Author       string       `json:"author,omitempty"`
	IsPublic     bool         `json:"isPublic"`
	Tags         []string     `json:"tags"`
	ImageURL     string       `json:"imageUrl,omitempty"`
}

// InventoryRequest carries the full ingredient list of an inventory.
type InventoryRequest struct {
	Ingredients []StockedIngredientRequest `json:"ingredients"`
}

// StockedIngredientRequest is one inventory line; ExpirationDate uses the meal date formats.
type StockedIngredientRequest struct {
	Name           string `json:"name"`
	Quantity       string `json:"quantity"`
	Unit           string `json:"unit"`
	ExpirationDate string `json:"expirationDate,omitempty"`
	Location       string `json:"location,omitempty"`
}

// ShoppingListRequest is used for both creating and replacing a shopping list.
type ShoppingListRequest struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// Identity is the caller as described by the identity provider.
type Identity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}
