package models

import "time"

// User represents a user in the system.
type User struct {
	ID          string    `json:"id" firestore:"-"` // Document ID
	UserNumber  int64     `json:"userNumber" firestore:"userNumber"`
	Fname       string    `json:"fname,omitempty" firestore:"fname,omitempty"`
	Lname       string    `json:"lname,omitempty" firestore:"lname,omitempty"`
	Username    string    `json:"username,omitempty" firestore:"username,omitempty"`
	Email       string    `json:"email" firestore:"email"`
	AuthSubject string    `json:"auth0Id" firestore:"authSubject"` // Identity provider subject
	Recipes     []string  `json:"recipes" firestore:"recipes"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
