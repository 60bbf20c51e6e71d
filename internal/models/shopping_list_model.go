package models

import "time"

// ShoppingList is a titled list of grocery items.
type ShoppingList struct {
	ID        string    `json:"id" firestore:"-"`
	UserID    string    `json:"userId" firestore:"userId"`
	Title     string    `json:"title" firestore:"title"`
	Items     []string  `json:"items" firestore:"items"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
