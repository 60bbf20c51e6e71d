package models

import "time"

// Ingredient is a line of a recipe's ingredient list.
type Ingredient struct {
	Name     string `json:"name" firestore:"name"`
	Quantity string `json:"quantity" firestore:"quantity"`
	Unit     string `json:"unit" firestore:"unit"`
}

// Recipe is a user-authored recipe.
type Recipe struct {
	ID           string       `json:"id" firestore:"-"`
	Title        string       `json:"title" firestore:"title"`
	Description  string       `json:"description,omitempty" firestore:"description,omitempty"`
	Ingredients  []Ingredient `json:"ingredients" firestore:"ingredients"`
	Instructions string       `json:"instructions" firestore:"instructions"`
	Author       string       `json:"author,omitempty" firestore:"author,omitempty"`
	IsPublic     bool         `json:"isPublic" firestore:"isPublic"`
	Tags         []string     `json:"tags" firestore:"tags"`
	ImageURL     string       `json:"imageUrl,omitempty" firestore:"imageUrl,omitempty"`
	UserID       string       `json:"userId" firestore:"userId"` // Owner identity
	CreatedAt    time.Time    `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt    time.Time    `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
