package models

import "time"

// StockedIngredient is an ingredient held in a user's inventory.
type StockedIngredient struct {
	Name           string     `json:"name" firestore:"name"`
	Quantity       string     `json:"quantity" firestore:"quantity"`
	Unit           string     `json:"unit" firestore:"unit"`
	ExpirationDate *time.Time `json:"expirationDate,omitempty" firestore:"expirationDate,omitempty"`
	Location       string     `json:"location,omitempty" firestore:"location,omitempty"`
	LastUpdated    time.Time  `json:"lastUpdated" firestore:"lastUpdated"`
}

// Inventory is a user's pantry.
type Inventory struct {
	ID          string              `json:"id" firestore:"-"`
	UserID      string              `json:"userId" firestore:"userId"`
	Ingredients []StockedIngredient `json:"ingredients" firestore:"ingredients"`
	CreatedAt   time.Time           `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt   time.Time           `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
