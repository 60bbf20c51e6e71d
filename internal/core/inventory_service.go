package core

import (
	"context"
	"fmt"
	"time"

	"kitchenharmony-backend-go/internal/db"
	"kitchenharmony-backend-go/internal/models"
)

// inventoryService implements the InventoryService interface.
type inventoryService struct {
	inventoryRepo db.InventoryRepository
	now           func() time.Time
}

// NewInventoryService creates a new InventoryService instance.
func NewInventoryService(inventoryRepo db.InventoryRepository) InventoryService {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// ListInventories returns the caller's inventories. Inventories are never shared.
func (s *inventoryService) ListInventories(ctx context.Context, callerID string) ([]*models.Inventory, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	inventories, err := s.inventoryRepo.ListByUserID(ctx, callerID)
	if err != nil {
		return nil, persistenceFault("list inventories", err)
	}
	return inventories, nil
}

func (s *inventoryService) GetInventory(ctx context.Context, callerID, inventoryID string) (*models.Inventory, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	return s.getOwned(ctx, callerID, inventoryID)
}

// CreateInventory stores a new inventory owned by the caller.
func (s *inventoryService) CreateInventory(ctx context.Context, callerID string, req models.InventoryRequest) (*models.Inventory, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	now := s.now()
	ingredients, err := buildIngredients(req.Ingredients, now)
	if err != nil {
		return nil, err
	}
	inventory := &models.Inventory{
		UserID:      callerID,
		Ingredients: ingredients,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.inventoryRepo.Create(ctx, inventory); err != nil {
		return nil, persistenceFault("create inventory", err)
	}
	return inventory, nil
}

// UpdateInventory replaces the ingredient list; every line gets a fresh lastUpdated stamp.
func (s *inventoryService) UpdateInventory(ctx context.Context, callerID, inventoryID string, req models.InventoryRequest) (*models.Inventory, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	now := s.now()
	ingredients, err := buildIngredients(req.Ingredients, now)
	if err != nil {
		return nil, err
	}
	inventory, err := s.getOwned(ctx, callerID, inventoryID)
	if err != nil {
		return nil, err
	}
	// Full replacement: lines missing from the request are dropped.
	inventory.Ingredients = ingredients
	inventory.UpdatedAt = now

	if err := s.inventoryRepo.Update(ctx, inventory); err != nil {
		return nil, repoError(err, ErrInventoryNotFound, fmt.Sprintf("update inventory '%s'", inventoryID))
	}
	return inventory, nil
}

func (s *inventoryService) DeleteInventory(ctx context.Context, callerID, inventoryID string) error {
	if callerID == "" {
		return ErrUnauthenticated
	}
	if _, err := s.getOwned(ctx, callerID, inventoryID); err != nil {
		return err
	}
	if err := s.inventoryRepo.Delete(ctx, inventoryID); err != nil {
		return repoError(err, ErrInventoryNotFound, fmt.Sprintf("delete inventory '%s'", inventoryID))
	}
	return nil
}

// getOwned loads an inventory and checks that callerID owns it.
func (s *inventoryService) getOwned(ctx context.Context, callerID, inventoryID string) (*models.Inventory, error) {
	inventory, err := s.inventoryRepo.GetByID(ctx, inventoryID)
	if err != nil {
		return nil, repoError(err, ErrInventoryNotFound, fmt.Sprintf("get inventory '%s'", inventoryID))
	}
	if inventory.UserID != callerID {
		return nil, fmt.Errorf("%w: user '%s' is not the owner of inventory '%s'", ErrForbiddenAccess, callerID, inventoryID)
	}
	return inventory, nil
}

// buildIngredients validates the request lines and stamps each one with now.
func buildIngredients(lines []models.StockedIngredientRequest, now time.Time) ([]models.StockedIngredient, error) {
	if len(lines) == 0 {
		return nil, invalidPayload("ingredients are required")
	}
	out := make([]models.StockedIngredient, 0, len(lines))
	for i, line := range lines {
		if line.Name == "" || line.Quantity == "" || line.Unit == "" {
			return nil, invalidPayload("ingredients[%d]: name, quantity and unit are required", i)
		}
		item := models.StockedIngredient{
			Name:        line.Name,
			Quantity:    line.Quantity,
			Unit:        line.Unit,
			Location:    line.Location,
			LastUpdated: now,
		}
		// Expiration is optional; when given it must be a plain date.
		if line.ExpirationDate != "" {
			expires, err := parseCalendarDate(line.ExpirationDate)
			if err != nil {
				return nil, invalidPayload("ingredients[%d]: expirationDate %q is not a calendar date", i, line.ExpirationDate)
			}
			item.ExpirationDate = &expires
		}
		out = append(out, item)
	}
	return out, nil
}
