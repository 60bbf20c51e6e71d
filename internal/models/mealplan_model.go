package models

import "time"

// MealEntry is a canonical meal entry: one recipe served on one date.
type MealEntry struct {
	RecipeID string    `json:"recipeId" firestore:"recipeId"`
	Date     time.Time `json:"date" firestore:"date"`
	Servings int       `json:"servings" firestore:"servings"`
}

// DateRange bounds a meal plan. Both ends are calendar dates at UTC midnight, inclusive.
type DateRange struct {
	Start time.Time `json:"start" firestore:"start"`
	End   time.Time `json:"end" firestore:"end"`
}

// Contains reports whether d falls within the range.
func (r DateRange) Contains(d time.Time) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// MealPlan is the single meal plan owned by a user.
type MealPlan struct {
	ID        string      `json:"id" firestore:"-"`                  // Document ID, auto-generated
	OwnerID   string      `json:"ownerId" firestore:"ownerId"`       // Resolved identity of the owner
	Name      string      `json:"name,omitempty" firestore:"name,omitempty"`
	DateRange DateRange   `json:"dateRange" firestore:"dateRange"`
	Meals     []MealEntry `json:"meals" firestore:"meals"`
	CreatedAt time.Time   `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt time.Time   `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// MealPlanFields are the fields an in-place replace may overwrite.
// Name is only written when non-nil.
type MealPlanFields struct {
	Name      *string
	DateRange DateRange
	Meals     []MealEntry
	UpdatedAt time.Time
}
