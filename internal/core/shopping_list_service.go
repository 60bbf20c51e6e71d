package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kitchenharmony-backend-go/internal/db"
	"kitchenharmony-backend-go/internal/models"
)

// shoppingListService implements the ShoppingListService interface.
type shoppingListService struct {
	listRepo db.ShoppingListRepository
}

// NewShoppingListService creates a new ShoppingListService instance.
func NewShoppingListService(listRepo db.ShoppingListRepository) ShoppingListService {
	return &shoppingListService{listRepo: listRepo}
}

func (s *shoppingListService) ListShoppingLists(ctx context.Context, callerID string) ([]*models.ShoppingList, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	lists, err := s.listRepo.ListByUserID(ctx, callerID)
	if err != nil {
		return nil, persistenceFault("list shopping lists", err)
	}
	return lists, nil
}

func (s *shoppingListService) GetShoppingList(ctx context.Context, callerID, listID string) (*models.ShoppingList, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	return s.getOwned(ctx, callerID, listID)
}

// CreateShoppingList stores a new list for the caller. Items are free text.
func (s *shoppingListService) CreateShoppingList(ctx context.Context, callerID string, req models.ShoppingListRequest) (*models.ShoppingList, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, invalidPayload("title is required")
	}
	now := time.Now().UTC()
	list := &models.ShoppingList{
		UserID:    callerID,
		Title:     title,
		Items:     nonNilStrings(req.Items),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.listRepo.Create(ctx, list); err != nil {
		return nil, persistenceFault("create shopping list", err)
	}
	return list, nil
}

// UpdateShoppingList replaces the title and items of one of the caller's lists.
func (s *shoppingListService) UpdateShoppingList(ctx context.Context, callerID, listID string, req models.ShoppingListRequest) (*models.ShoppingList, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, invalidPayload("title is required")
	}
	list, err := s.getOwned(ctx, callerID, listID)
	if err != nil {
		return nil, err
	}
	list.Title = title
	list.Items = nonNilStrings(req.Items) // an omitted list clears the items
	list.UpdatedAt = time.Now().UTC()

	if err := s.listRepo.Update(ctx, list); err != nil {
		return nil, repoError(err, ErrShoppingListNotFound, fmt.Sprintf("update shopping list '%s'", listID))
	}
	return list, nil
}

func (s *shoppingListService) DeleteShoppingList(ctx context.Context, callerID, listID string) error {
	if callerID == "" {
		return ErrUnauthenticated
	}
	if _, err := s.getOwned(ctx, callerID, listID); err != nil {
		return err
	}
	if err := s.listRepo.Delete(ctx, listID); err != nil {
		return repoError(err, ErrShoppingListNotFound, fmt.Sprintf("delete shopping list '%s'", listID))
	}
	return nil
}

// getOwned loads a shopping list and checks that callerID owns it.
func (s *shoppingListService) getOwned(ctx context.Context, callerID, listID string) (*models.ShoppingList, error) {
	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		return nil, repoError(err, ErrShoppingListNotFound, fmt.Sprintf("get shopping list '%s'", listID))
	}
	if list.UserID != callerID {
		return nil, fmt.Errorf("%w: user '%s' is not the owner of shopping list '%s'", ErrForbiddenAccess, callerID, listID)
	}
	return list, nil
}
