package db

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"

	"kitchenharmony-backend-go/internal/models"
)

const shoppingListsCollection = "shoppingLists"

// firestoreShoppingListRepository implements the ShoppingListRepository interface using Firestore.
type firestoreShoppingListRepository struct {
	client *firestore.Client
}

// NewFirestoreShoppingListRepository creates a new instance of firestoreShoppingListRepository.
func NewFirestoreShoppingListRepository(client *firestore.Client) ShoppingListRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ShoppingListRepository.")
	}
	return &firestoreShoppingListRepository{client: client}
}

func setShoppingListID(l *models.ShoppingList, id string) { l.ID = id }

func (r *firestoreShoppingListRepository) Create(ctx context.Context, list *models.ShoppingList) (string, error) {
	id, err := createDocument(ctx, r.client.Collection(shoppingListsCollection), "shopping list", list)
	if err != nil {
		return "", err
	}
	list.ID = id
	return id, nil
}

func (r *firestoreShoppingListRepository) GetByID(ctx context.Context, listID string) (*models.ShoppingList, error) {
	return getDocument(ctx, r.client.Collection(shoppingListsCollection).Doc(listID), "shopping list", setShoppingListID)
}

func (r *firestoreShoppingListRepository) ListByUserID(ctx context.Context, userID string) ([]*models.ShoppingList, error) {
	query := r.client.Collection(shoppingListsCollection).Where("userId", "==", userID)
	return queryDocuments(ctx, query, "shopping list", setShoppingListID)
}

func (r *firestoreShoppingListRepository) Update(ctx context.Context, list *models.ShoppingList) error {
	return setDocument(ctx, r.client, r.client.Collection(shoppingListsCollection).Doc(list.ID), "shopping list", list)
}

func (r *firestoreShoppingListRepository) Delete(ctx context.Context, listID string) error {
	return deleteDocument(ctx, r.client.Collection(shoppingListsCollection).Doc(listID), "shopping list")
}
