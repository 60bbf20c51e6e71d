package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"kitchenharmony-backend-go/internal/models"
)

const (
	mealPlansCollection = "mealplan"
	// mealPlanOwnersCollection holds one guard document per owner. Creating it in the same
	// transaction as the plan makes a second plan for the same owner fail with AlreadyExists.
	mealPlanOwnersCollection = "mealplanOwners"
)

type mealPlanOwnerGuard struct {
	PlanID string `firestore:"planId"`
}

// firestoreMealPlanRepository implements the MealPlanRepository interface using Firestore.
type firestoreMealPlanRepository struct {
	client *firestore.Client
}

// NewFirestoreMealPlanRepository creates a new instance of firestoreMealPlanRepository.
func NewFirestoreMealPlanRepository(client *firestore.Client) MealPlanRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for MealPlanRepository.")
	}
	return &firestoreMealPlanRepository{client: client}
}

func setMealPlanID(p *models.MealPlan, id string) { p.ID = id }

func (r *firestoreMealPlanRepository) FindByOwner(ctx context.Context, ownerID string, limit int) ([]*models.MealPlan, error) {
	if ownerID == "" {
		return nil, errors.New("ownerID cannot be empty for FindByOwner operation")
	}
	query := r.client.Collection(mealPlansCollection).Where("ownerId", "==", ownerID)
	if limit > 0 {
		query = query.Limit(limit)
	}
	plans, err := queryDocuments(ctx, query, "meal plan", setMealPlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to find meal plans for owner '%s': %w", ownerID, err)
	}
	return plans, nil
}

func (r *firestoreMealPlanRepository) GetByID(ctx context.Context, planID string) (*models.MealPlan, error) {
	if planID == "" {
		return nil, errors.New("planID cannot be empty for GetByID operation")
	}
	return getDocument(ctx, r.client.Collection(mealPlansCollection).Doc(planID), "meal plan", setMealPlanID)
}

// Insert writes the owner guard and the plan in one transaction.
func (r *firestoreMealPlanRepository) Insert(ctx context.Context, plan *models.MealPlan) (*models.MealPlan, error) {
	if plan.OwnerID == "" {
		return nil, errors.New("meal plan owner cannot be empty for Insert operation")
	}
	planRef := r.client.Collection(mealPlansCollection).NewDoc()
	guardRef := r.client.Collection(mealPlanOwnersCollection).Doc(guardDocID(plan.OwnerID))

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(guardRef, mealPlanOwnerGuard{PlanID: planRef.ID}); err != nil {
			return err
		}
		return tx.Create(planRef, plan)
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, fmt.Errorf("insert meal plan for owner '%s': %w", plan.OwnerID, ErrDuplicateOwner)
		}
		return nil, fmt.Errorf("failed to insert meal plan for owner '%s': %w", plan.OwnerID, err)
	}

	stored := *plan
	stored.ID = planRef.ID
	return &stored, nil
}

// Replace overwrites meals, dateRange and updatedAt (and name when given). The update fails
// with NotFound instead of creating a document.
func (r *firestoreMealPlanRepository) Replace(ctx context.Context, planID string, fields models.MealPlanFields) (*models.MealPlan, error) {
	if planID == "" {
		return nil, errors.New("planID cannot be empty for Replace operation")
	}
	updates := []firestore.Update{
		{Path: "meals", Value: fields.Meals},
		{Path: "dateRange", Value: fields.DateRange},
		{Path: "updatedAt", Value: fields.UpdatedAt},
	}
	if fields.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *fields.Name})
	}

	ref := r.client.Collection(mealPlansCollection).Doc(planID)
	if _, err := ref.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("meal plan with ID '%s' not found for replace: %w", planID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to replace meal plan with ID '%s': %w", planID, err)
	}
	return r.GetByID(ctx, planID)
}

// DeleteByID removes the plan and, when it points at this plan, its owner guard.
func (r *firestoreMealPlanRepository) DeleteByID(ctx context.Context, planID string) error {
	if planID == "" {
		return errors.New("planID cannot be empty for DeleteByID operation")
	}
	planRef := r.client.Collection(mealPlansCollection).Doc(planID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		planSnap, err := tx.Get(planRef)
		if err != nil {
			return err
		}
		var plan models.MealPlan
		if err := planSnap.DataTo(&plan); err != nil {
			return fmt.Errorf("failed to decode meal plan data for ID '%s': %w", planID, err)
		}

		guardRef := r.client.Collection(mealPlanOwnersCollection).Doc(guardDocID(plan.OwnerID))
		ownsGuard := false
		guardSnap, err := tx.Get(guardRef)
		switch {
		case err == nil:
			var guard mealPlanOwnerGuard
			if err := guardSnap.DataTo(&guard); err == nil && guard.PlanID == planID {
				ownsGuard = true
			}
		case status.Code(err) != codes.NotFound:
			return err
		}

		if err := tx.Delete(planRef); err != nil {
			return err
		}
		if ownsGuard {
			return tx.Delete(guardRef)
		}
		return nil
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("meal plan with ID '%s' not found for deletion: %w", planID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete meal plan with ID '%s': %w", planID, err)
	}
	return nil
}
