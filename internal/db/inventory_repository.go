package db

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"

	"kitchenharmony-backend-go/internal/models"
)

const inventoryCollection = "inventory"

// firestoreInventoryRepository implements the InventoryRepository interface using Firestore.
type firestoreInventoryRepository struct {
	client *firestore.Client
}

// NewFirestoreInventoryRepository creates a new instance of firestoreInventoryRepository.
func NewFirestoreInventoryRepository(client *firestore.Client) InventoryRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for InventoryRepository.")
	}
	return &firestoreInventoryRepository{client: client}
}

func setInventoryID(i *models.Inventory, id string) { i.ID = id }

func (r *firestoreInventoryRepository) Create(ctx context.Context, inventory *models.Inventory) (string, error) {
	id, err := createDocument(ctx, r.client.Collection(inventoryCollection), "inventory", inventory)
	if err != nil {
		return "", err
	}
	inventory.ID = id
	return id, nil
}

func (r *firestoreInventoryRepository) GetByID(ctx context.Context, inventoryID string) (*models.Inventory, error) {
	return getDocument(ctx, r.client.Collection(inventoryCollection).Doc(inventoryID), "inventory", setInventoryID)
}

func (r *firestoreInventoryRepository) ListByUserID(ctx context.Context, userID string) ([]*models.Inventory, error) {
	query := r.client.Collection(inventoryCollection).Where("userId", "==", userID)
	return queryDocuments(ctx, query, "inventory", setInventoryID)
}

func (r *firestoreInventoryRepository) Update(ctx context.Context, inventory *models.Inventory) error {
	return setDocument(ctx, r.client, r.client.Collection(inventoryCollection).Doc(inventory.ID), "inventory", inventory)
}

func (r *firestoreInventoryRepository) Delete(ctx context.Context, inventoryID string) error {
	return deleteDocument(ctx, r.client.Collection(inventoryCollection).Doc(inventoryID), "inventory")
}
