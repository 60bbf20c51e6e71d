package db

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"kitchenharmony-backend-go/internal/models"
)

// newEmulatorClient connects to the Firestore emulator and skips the test when none is running.
func newEmulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set; skipping Firestore emulator test")
	}
	client, err := firestore.NewClient(context.Background(), "kitchen-harmony-test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// uniqueKey keeps runs against a long-lived emulator independent of each other.
func uniqueKey(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func testMealPlan(owner string) *models.MealPlan {
	day := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	return &models.MealPlan{
		OwnerID:   owner,
		DateRange: models.DateRange{Start: day, End: day.AddDate(0, 0, 6)},
		Meals:     []models.MealEntry{{RecipeID: "R1", Date: day, Servings: 1}},
	}
}

func TestMealPlanRepository_OneGuardPerOwner(t *testing.T) {
	client := newEmulatorClient(t)
	repo := NewFirestoreMealPlanRepository(client)
	ctx := context.Background()
	owner := uniqueKey("auth0|owner")

	first, err := repo.Insert(ctx, testMealPlan(owner))
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	_, err = repo.Insert(ctx, testMealPlan(owner))
	assert.ErrorIs(t, err, ErrDuplicateOwner)

	plans, err := repo.FindByOwner(ctx, owner, 0)
	require.NoError(t, err)
	assert.Len(t, plans, 1)

	guardRef := client.Collection(mealPlanOwnersCollection).Doc(guardDocID(owner))
	snap, err := guardRef.Get(ctx)
	require.NoError(t, err)
	var guard mealPlanOwnerGuard
	require.NoError(t, snap.DataTo(&guard))
	assert.Equal(t, first.ID, guard.PlanID)

	// Deleting the plan frees the owner.
	require.NoError(t, repo.DeleteByID(ctx, first.ID))
	_, err = guardRef.Get(ctx)
	assert.Equal(t, codes.NotFound, status.Code(err))

	again, err := repo.Insert(ctx, testMealPlan(owner))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, again.ID)
	require.NoError(t, repo.DeleteByID(ctx, again.ID))
}

func TestMealPlanRepository_MissingPlan(t *testing.T) {
	client := newEmulatorClient(t)
	repo := NewFirestoreMealPlanRepository(client)
	ctx := context.Background()
	missing := uniqueKey("missing-plan")

	assert.ErrorIs(t, repo.DeleteByID(ctx, missing), ErrNotFound)

	_, err := repo.Replace(ctx, missing, models.MealPlanFields{UpdatedAt: time.Now().UTC()})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByID(ctx, missing)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMealPlanRepository_Replace(t *testing.T) {
	client := newEmulatorClient(t)
	repo := NewFirestoreMealPlanRepository(client)
	ctx := context.Background()

	stored, err := repo.Insert(ctx, testMealPlan(uniqueKey("owner")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.DeleteByID(ctx, stored.ID) })

	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	name := "Week 10"
	replaced, err := repo.Replace(ctx, stored.ID, models.MealPlanFields{
		Name:      &name,
		DateRange: models.DateRange{Start: day, End: day},
		Meals:     []models.MealEntry{{RecipeID: "R2", Date: day, Servings: 3}},
		UpdatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.Equal(t, stored.ID, replaced.ID)
	assert.Equal(t, "Week 10", replaced.Name)
	require.Len(t, replaced.Meals, 1)
	assert.Equal(t, "R2", replaced.Meals[0].RecipeID)
	assert.True(t, replaced.DateRange.Start.Equal(day))
}

func TestUserRepository_UniqueSubjectAndEmail(t *testing.T) {
	client := newEmulatorClient(t)
	repo := NewFirestoreUserRepository(client)
	ctx := context.Background()
	subject := uniqueKey("auth0|user")
	email := uniqueKey("ana") + "@example.com"

	id, err := repo.Create(ctx, &models.User{AuthSubject: subject, Email: email, Recipes: []string{}})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{AuthSubject: subject, Email: uniqueKey("other") + "@example.com"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
	_, err = repo.Create(ctx, &models.User{AuthSubject: uniqueKey("auth0|other"), Email: email})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	found, err := repo.GetByAuthSubject(ctx, subject)
	require.NoError(t, err)
	assert.Equal(t, id, found.ID)

	// Changing the email releases the old address.
	found.Email = uniqueKey("ana-new") + "@example.com"
	require.NoError(t, repo.Update(ctx, found))
	otherID, err := repo.Create(ctx, &models.User{AuthSubject: uniqueKey("auth0|other"), Email: email})
	require.NoError(t, err)

	taken := *found
	taken.Email = email
	assert.ErrorIs(t, repo.Update(ctx, &taken), ErrAlreadyExists)

	// Deleting a user frees its subject.
	require.NoError(t, repo.Delete(ctx, id))
	reusedID, err := repo.Create(ctx, &models.User{AuthSubject: subject})
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, reusedID))

	require.NoError(t, repo.Delete(ctx, otherID))
	assert.ErrorIs(t, repo.Delete(ctx, otherID), ErrNotFound)
}
