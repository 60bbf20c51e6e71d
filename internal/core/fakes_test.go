package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"kitchenharmony-backend-go/internal/db"
	"kitchenharmony-backend-go/internal/models"
)

// fakeMealPlanRepo is an in-memory MealPlanRepository that counts writes.
type fakeMealPlanRepo struct {
	mu     sync.Mutex
	plans  map[string]*models.MealPlan
	nextID int
	writes int
	reads  int

	findErr error
	// beforeInsert runs inside Insert before the uniqueness check, to simulate a concurrent winner.
	beforeInsert func(r *fakeMealPlanRepo)
}

func newFakeMealPlanRepo() *fakeMealPlanRepo {
	return &fakeMealPlanRepo{plans: map[string]*models.MealPlan{}}
}

// seed stores a plan directly, bypassing the uniqueness check.
func (r *fakeMealPlanRepo) seed(plan models.MealPlan) *models.MealPlan {
	r.nextID++
	if plan.ID == "" {
		plan.ID = fmt.Sprintf("plan-%d", r.nextID)
	}
	r.plans[plan.ID] = &plan
	return clonePlan(&plan)
}

func (r *fakeMealPlanRepo) FindByOwner(_ context.Context, ownerID string, limit int) ([]*models.MealPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	if r.findErr != nil {
		return nil, r.findErr
	}
	ids := make([]string, 0, len(r.plans))
	for id := range r.plans {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var out []*models.MealPlan
	for _, id := range ids {
		if r.plans[id].OwnerID == ownerID && len(out) < limit {
			out = append(out, clonePlan(r.plans[id]))
		}
	}
	return out, nil
}

func (r *fakeMealPlanRepo) GetByID(_ context.Context, planID string) (*models.MealPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	plan, ok := r.plans[planID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return clonePlan(plan), nil
}

func (r *fakeMealPlanRepo) Insert(_ context.Context, plan *models.MealPlan) (*models.MealPlan, error) {
	if r.beforeInsert != nil {
		hook := r.beforeInsert
		r.beforeInsert = nil
		hook(r)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plans {
		if p.OwnerID == plan.OwnerID {
			return nil, db.ErrDuplicateOwner
		}
	}
	r.writes++
	r.nextID++
	stored := clonePlan(plan)
	stored.ID = fmt.Sprintf("plan-%d", r.nextID)
	r.plans[stored.ID] = stored
	return clonePlan(stored), nil
}

func (r *fakeMealPlanRepo) Replace(_ context.Context, planID string, fields models.MealPlanFields) (*models.MealPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	plan, ok := r.plans[planID]
	if !ok {
		return nil, db.ErrNotFound
	}
	r.writes++
	plan.Meals = append([]models.MealEntry(nil), fields.Meals...)
	plan.DateRange = fields.DateRange
	plan.UpdatedAt = fields.UpdatedAt
	if fields.Name != nil {
		plan.Name = *fields.Name
	}
	return clonePlan(plan), nil
}

func (r *fakeMealPlanRepo) DeleteByID(_ context.Context, planID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plans[planID]; !ok {
		return db.ErrNotFound
	}
	r.writes++
	delete(r.plans, planID)
	return nil
}

func clonePlan(p *models.MealPlan) *models.MealPlan {
	c := *p
	c.Meals = append([]models.MealEntry(nil), p.Meals...)
	return &c
}

// fakeUserRepo is an in-memory UserRepository. Like the Firestore guards it rejects a
// second user with the same subject or email.
type fakeUserRepo struct {
	users  map[string]*models.User
	nextID int

	// beforeCreate runs once, after the service has looked up the user and before the write.
	beforeCreate func()
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) (string, error) {
	if hook := r.beforeCreate; hook != nil {
		r.beforeCreate = nil
		hook()
	}
	if r.taken(user, "") {
		return "", db.ErrAlreadyExists
	}
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	c := *user
	r.users[user.ID] = &c
	return user.ID, nil
}

// taken reports whether another user than exceptID holds the subject or the email.
func (r *fakeUserRepo) taken(user *models.User, exceptID string) bool {
	for id, u := range r.users {
		if id == exceptID {
			continue
		}
		if u.AuthSubject == user.AuthSubject {
			return true
		}
		if user.Email != "" && strings.EqualFold(u.Email, user.Email) {
			return true
		}
	}
	return false
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID string) (*models.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, db.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (r *fakeUserRepo) GetByAuthSubject(_ context.Context, subject string) (*models.User, error) {
	for _, u := range r.users {
		if u.AuthSubject == subject {
			c := *u
			return &c, nil
		}
	}
	return nil, db.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, db.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return db.ErrNotFound
	}
	if r.taken(user, user.ID) {
		return db.ErrAlreadyExists
	}
	c := *user
	r.users[user.ID] = &c
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, userID string) error {
	if _, ok := r.users[userID]; !ok {
		return db.ErrNotFound
	}
	delete(r.users, userID)
	return nil
}

type fakeCounterRepo struct {
	seq map[string]int64
}

func (r *fakeCounterRepo) Next(_ context.Context, name string) (int64, error) {
	if r.seq == nil {
		r.seq = map[string]int64{}
	}
	r.seq[name]++
	return r.seq[name], nil
}

// fakeRecipeRepo is an in-memory RecipeRepository.
type fakeRecipeRepo struct {
	recipes map[string]*models.Recipe
	nextID  int
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: map[string]*models.Recipe{}}
}

func (r *fakeRecipeRepo) Create(_ context.Context, recipe *models.Recipe) (string, error) {
	r.nextID++
	recipe.ID = fmt.Sprintf("recipe-%d", r.nextID)
	c := *recipe
	r.recipes[recipe.ID] = &c
	return recipe.ID, nil
}

func (r *fakeRecipeRepo) GetByID(_ context.Context, recipeID string) (*models.Recipe, error) {
	rec, ok := r.recipes[recipeID]
	if !ok {
		return nil, db.ErrNotFound
	}
	c := *rec
	return &c, nil
}

func (r *fakeRecipeRepo) ListPublic(context.Context) ([]*models.Recipe, error) {
	var out []*models.Recipe
	for _, rec := range r.recipes {
		if rec.IsPublic {
			c := *rec
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeRecipeRepo) ListByUserID(_ context.Context, userID string) ([]*models.Recipe, error) {
	var out []*models.Recipe
	for _, rec := range r.recipes {
		if rec.UserID == userID {
			c := *rec
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeRecipeRepo) Update(_ context.Context, recipe *models.Recipe) error {
	if _, ok := r.recipes[recipe.ID]; !ok {
		return db.ErrNotFound
	}
	c := *recipe
	r.recipes[recipe.ID] = &c
	return nil
}

func (r *fakeRecipeRepo) Delete(_ context.Context, recipeID string) error {
	if _, ok := r.recipes[recipeID]; !ok {
		return db.ErrNotFound
	}
	delete(r.recipes, recipeID)
	return nil
}

// fakeInventoryRepo is an in-memory InventoryRepository.
type fakeInventoryRepo struct {
	inventories map[string]*models.Inventory
	nextID      int
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{inventories: map[string]*models.Inventory{}}
}

func (r *fakeInventoryRepo) Create(_ context.Context, inventory *models.Inventory) (string, error) {
	r.nextID++
	inventory.ID = fmt.Sprintf("inventory-%d", r.nextID)
	c := *inventory
	r.inventories[inventory.ID] = &c
	return inventory.ID, nil
}

func (r *fakeInventoryRepo) GetByID(_ context.Context, inventoryID string) (*models.Inventory, error) {
	inv, ok := r.inventories[inventoryID]
	if !ok {
		return nil, db.ErrNotFound
	}
	c := *inv
	return &c, nil
}

func (r *fakeInventoryRepo) ListByUserID(_ context.Context, userID string) ([]*models.Inventory, error) {
	var out []*models.Inventory
	for _, inv := range r.inventories {
		if inv.UserID == userID {
			c := *inv
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeInventoryRepo) Update(_ context.Context, inventory *models.Inventory) error {
	if _, ok := r.inventories[inventory.ID]; !ok {
		return db.ErrNotFound
	}
	c := *inventory
	r.inventories[inventory.ID] = &c
	return nil
}

func (r *fakeInventoryRepo) Delete(_ context.Context, inventoryID string) error {
	if _, ok := r.inventories[inventoryID]; !ok {
		return db.ErrNotFound
	}
	delete(r.inventories, inventoryID)
	return nil
}

// fakeShoppingListRepo is an in-memory ShoppingListRepository.
type fakeShoppingListRepo struct {
	lists  map[string]*models.ShoppingList
	nextID int
}

func newFakeShoppingListRepo() *fakeShoppingListRepo {
	return &fakeShoppingListRepo{lists: map[string]*models.ShoppingList{}}
}

func (r *fakeShoppingListRepo) Create(_ context.Context, list *models.ShoppingList) (string, error) {
	r.nextID++
	list.ID = fmt.Sprintf("list-%d", r.nextID)
	c := *list
	r.lists[list.ID] = &c
	return list.ID, nil
}

func (r *fakeShoppingListRepo) GetByID(_ context.Context, listID string) (*models.ShoppingList, error) {
	l, ok := r.lists[listID]
	if !ok {
		return nil, db.ErrNotFound
	}
	c := *l
	return &c, nil
}

func (r *fakeShoppingListRepo) ListByUserID(_ context.Context, userID string) ([]*models.ShoppingList, error) {
	var out []*models.ShoppingList
	for _, l := range r.lists {
		if l.UserID == userID {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeShoppingListRepo) Update(_ context.Context, list *models.ShoppingList) error {
	if _, ok := r.lists[list.ID]; !ok {
		return db.ErrNotFound
	}
	c := *list
	r.lists[list.ID] = &c
	return nil
}

func (r *fakeShoppingListRepo) Delete(_ context.Context, listID string) error {
	if _, ok := r.lists[listID]; !ok {
		return db.ErrNotFound
	}
	delete(r.lists, listID)
	return nil
}
