package core

import (
	"errors"
	"fmt"

	"kitchenharmony-backend-go/internal/db"
)

// Error taxonomy shared by all services. Each maps to a distinct HTTP failure in the api package.
var (
	ErrUnauthenticated  = errors.New("caller identity could not be resolved")
	ErrInvalidPayload   = errors.New("invalid payload")
	ErrNotFound         = errors.New("not found")
	ErrForbiddenAccess  = errors.New("caller does not own this resource")
	ErrConflict         = errors.New("resource already exists")
	ErrIntegrityFault   = errors.New("data integrity fault")
	ErrPersistenceFault = errors.New("persistence fault")
)

// Entity-specific not-found errors; errors.Is(err, ErrNotFound) holds for all of them.
var (
	ErrMealPlanNotFound     = fmt.Errorf("meal plan %w", ErrNotFound)
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrRecipeNotFound       = fmt.Errorf("recipe %w", ErrNotFound)
	ErrInventoryNotFound    = fmt.Errorf("inventory %w", ErrNotFound)
	ErrShoppingListNotFound = fmt.Errorf("shopping list %w", ErrNotFound)
)

func invalidPayload(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidPayload, fmt.Sprintf(format, args...))
}

func persistenceFault(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistenceFault, op, err)
}

// repoError turns a repository error into the service taxonomy: db.ErrNotFound becomes
// notFound, anything else a persistence fault.
func repoError(err error, notFound error, op string) error {
	if errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("%w: %s", notFound, op)
	}
	return persistenceFault(op, err)
}
