package db

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"

	"kitchenharmony-backend-go/internal/models"
)

const recipesCollection = "recipes"

// firestoreRecipeRepository implements the RecipeRepository interface using Firestore.
type firestoreRecipeRepository struct {
	client *firestore.Client
}

// NewFirestoreRecipeRepository creates a new instance of firestoreRecipeRepository.
func NewFirestoreRecipeRepository(client *firestore.Client) RecipeRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for RecipeRepository.")
	}
	return &firestoreRecipeRepository{client: client}
}

func setRecipeID(r *models.Recipe, id string) { r.ID = id }

func (r *firestoreRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) (string, error) {
	id, err := createDocument(ctx, r.client.Collection(recipesCollection), "recipe", recipe)
	if err != nil {
		return "", err
	}
	recipe.ID = id
	return id, nil
}

func (r *firestoreRecipeRepository) GetByID(ctx context.Context, recipeID string) (*models.Recipe, error) {
	return getDocument(ctx, r.client.Collection(recipesCollection).Doc(recipeID), "recipe", setRecipeID)
}

// ListPublic returns every recipe marked public, newest first.
func (r *firestoreRecipeRepository) ListPublic(ctx context.Context) ([]*models.Recipe, error) {
	query := r.client.Collection(recipesCollection).Where("isPublic", "==", true).OrderBy("createdAt", firestore.Desc)
	return queryDocuments(ctx, query, "recipe", setRecipeID)
}

func (r *firestoreRecipeRepository) ListByUserID(ctx context.Context, userID string) ([]*models.Recipe, error) {
	query := r.client.Collection(recipesCollection).Where("userId", "==", userID).OrderBy("createdAt", firestore.Desc)
	return queryDocuments(ctx, query, "recipe", setRecipeID)
}

func (r *firestoreRecipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	return setDocument(ctx, r.client, r.client.Collection(recipesCollection).Doc(recipe.ID), "recipe", recipe)
}

func (r *firestoreRecipeRepository) Delete(ctx context.Context, recipeID string) error {
	return deleteDocument(ctx, r.client.Collection(recipesCollection).Doc(recipeID), "recipe")
}
