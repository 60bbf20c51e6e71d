package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitchenharmony-backend-go/internal/models"
)

func TestInventoryService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	stamp := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := NewInventoryService(newFakeInventoryRepo()).(*inventoryService)
	svc.now = func() time.Time { return stamp }

	inv, err := svc.CreateInventory(ctx, "U1", models.InventoryRequest{Ingredients: []models.StockedIngredientRequest{
		{Name: "milk", Quantity: "1", Unit: "l", ExpirationDate: "2024-03-05", Location: "fridge"},
		{Name: "rice", Quantity: "2", Unit: "kg"},
	}})
	require.NoError(t, err)
	require.Len(t, inv.Ingredients, 2)
	require.NotNil(t, inv.Ingredients[0].ExpirationDate)
	assert.Equal(t, day("2024-03-05"), *inv.Ingredients[0].ExpirationDate)
	assert.Nil(t, inv.Ingredients[1].ExpirationDate)
	assert.Equal(t, stamp, inv.Ingredients[1].LastUpdated)

	stamp = stamp.Add(time.Hour)
	updated, err := svc.UpdateInventory(ctx, "U1", inv.ID, models.InventoryRequest{Ingredients: []models.StockedIngredientRequest{
		{Name: "rice", Quantity: "1", Unit: "kg"},
	}})
	require.NoError(t, err)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, stamp, updated.Ingredients[0].LastUpdated)

	list, err := svc.ListInventories(ctx, "U1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	list, err = svc.ListInventories(ctx, "U2")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.GetInventory(ctx, "U2", inv.ID)
	assert.ErrorIs(t, err, ErrForbiddenAccess)

	require.NoError(t, svc.DeleteInventory(ctx, "U1", inv.ID))
	_, err = svc.GetInventory(ctx, "U1", inv.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInventoryService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewInventoryService(newFakeInventoryRepo())

	_, err := svc.CreateInventory(ctx, "", models.InventoryRequest{})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.CreateInventory(ctx, "U1", models.InventoryRequest{})
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, err = svc.CreateInventory(ctx, "U1", models.InventoryRequest{Ingredients: []models.StockedIngredientRequest{{Name: "milk"}}})
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, err = svc.CreateInventory(ctx, "U1", models.InventoryRequest{Ingredients: []models.StockedIngredientRequest{
		{Name: "milk", Quantity: "1", Unit: "l", ExpirationDate: "soon"},
	}})
	assert.ErrorIs(t, err, ErrInvalidPayload)
}
