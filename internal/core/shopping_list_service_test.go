package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitchenharmony-backend-go/internal/models"
)

func TestShoppingListService(t *testing.T) {
	ctx := context.Background()
	svc := NewShoppingListService(newFakeShoppingListRepo())

	_, err := svc.CreateShoppingList(ctx, "U1", models.ShoppingListRequest{Title: "  "})
	assert.ErrorIs(t, err, ErrInvalidPayload)

	list, err := svc.CreateShoppingList(ctx, "U1", models.ShoppingListRequest{Title: "Weekend"})
	require.NoError(t, err)
	assert.Equal(t, []string{}, list.Items)

	updated, err := svc.UpdateShoppingList(ctx, "U1", list.ID, models.ShoppingListRequest{Title: "Weekend", Items: []string{"eggs", "milk"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"eggs", "milk"}, updated.Items)

	_, err = svc.UpdateShoppingList(ctx, "U2", list.ID, models.ShoppingListRequest{Title: "Mine now"})
	assert.ErrorIs(t, err, ErrForbiddenAccess)

	lists, err := svc.ListShoppingLists(ctx, "U1")
	require.NoError(t, err)
	assert.Len(t, lists, 1)

	got, err := svc.GetShoppingList(ctx, "U1", list.ID)
	require.NoError(t, err)
	assert.Equal(t, "Weekend", got.Title)

	require.NoError(t, svc.DeleteShoppingList(ctx, "U1", list.ID))
	assert.ErrorIs(t, svc.DeleteShoppingList(ctx, "U1", list.ID), ErrNotFound)

	_, err = svc.ListShoppingLists(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
