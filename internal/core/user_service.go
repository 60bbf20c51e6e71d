package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"kitchenharmony-backend-go/internal/db"
	"kitchenharmony-backend-go/internal/models"
)

// userCounterName is the counter that numbers users in creation order.
const userCounterName = "users"

// userService implements the UserService interface.
type userService struct {
	userRepo    db.UserRepository
	counterRepo db.CounterRepository
	logger      *zap.Logger
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo db.UserRepository, counterRepo db.CounterRepository, logger *zap.Logger) UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &userService{
		userRepo:    userRepo,
		counterRepo: counterRepo,
		logger:      logger,
	}
}

// CreateUser registers a user linked to the caller's identity.
func (s *userService) CreateUser(ctx context.Context, subject string, req models.CreateUserRequest) (*models.User, error) {
	if subject == "" {
		return nil, ErrUnauthenticated
	}
	email := strings.TrimSpace(req.Email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	if err := s.ensureFree(ctx, "subject", subject, s.userRepo.GetByAuthSubject); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, "email", email, s.userRepo.GetByEmail); err != nil {
		return nil, err
	}

	return s.create(ctx, &models.User{
		Fname:       req.Fname,
		Lname:       req.Lname,
		Username:    req.Username,
		Email:       email,
		AuthSubject: subject,
		Recipes:     nonNilStrings(req.Recipes),
	})
}

// GetOrCreateProfile returns the profile of the identity, creating it on first login.
// Unlike CreateUser the email is optional here: header identities and phone sign-ins carry
// no email claim, and an empty email is stored without reserving anything.
// Two concurrent first logins for the same subject race on the subject guard; the loser
// re-reads and returns the winner's profile.
func (s *userService) GetOrCreateProfile(ctx context.Context, identity models.Identity) (*models.User, bool, error) {
	if identity.Subject == "" {
		return nil, false, ErrUnauthenticated
	}
	user, err := s.userRepo.GetByAuthSubject(ctx, identity.Subject)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, false, persistenceFault("get user by subject", err)
	}

	fname, lname, _ := strings.Cut(strings.TrimSpace(identity.Name), " ")
	created, err := s.create(ctx, &models.User{
		Fname:       fname,
		Lname:       lname,
		Email:       identity.Email,
		AuthSubject: identity.Subject,
		Recipes:     []string{},
	})
	if errors.Is(err, ErrConflict) {
		winner, getErr := s.userRepo.GetByAuthSubject(ctx, identity.Subject)
		if getErr != nil {
			// The conflict came from the email, which belongs to another subject.
			return nil, false, err
		}
		s.logger.Debug("Profile created concurrently, returning existing user", zap.String("userID", winner.ID))
		return winner, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	s.logger.Info("Created user profile on first login", zap.String("userID", created.ID), zap.Int64("userNumber", created.UserNumber))
	return created, true, nil
}

func (s *userService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, repoError(err, ErrUserNotFound, fmt.Sprintf("get user '%s'", userID))
	}
	return user, nil
}

func (s *userService) GetByAuthSubject(ctx context.Context, subject string) (*models.User, error) {
	user, err := s.userRepo.GetByAuthSubject(ctx, subject)
	if err != nil {
		return nil, repoError(err, ErrUserNotFound, fmt.Sprintf("get user by subject '%s'", subject))
	}
	return user, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, repoError(err, ErrUserNotFound, fmt.Sprintf("get user by email '%s'", email))
	}
	return user, nil
}

// UpdateUser applies the non-nil fields of req to the caller's own user record.
func (s *userService) UpdateUser(ctx context.Context, callerID, userID string, req models.UpdateUserRequest) (*models.User, error) {
	user, err := s.getOwned(ctx, callerID, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		if email != user.Email {
			if err := s.ensureFree(ctx, "email", email, s.userRepo.GetByEmail); err != nil {
				return nil, err
			}
		}
		user.Email = email
	}
	if req.Fname != nil {
		user.Fname = *req.Fname
	}
	if req.Lname != nil {
		user.Lname = *req.Lname
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Recipes != nil {
		user.Recipes = nonNilStrings(*req.Recipes)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, db.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: a user with this email already exists", ErrConflict)
		}
		return nil, repoError(err, ErrUserNotFound, fmt.Sprintf("update user '%s'", userID))
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, callerID, userID string) error {
	if _, err := s.getOwned(ctx, callerID, userID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return repoError(err, ErrUserNotFound, fmt.Sprintf("delete user '%s'", userID))
	}
	return nil
}

// create numbers and stores a user. A number taken by a create that then loses the
// uniqueness check is not reused, so user numbers can have gaps.
func (s *userService) create(ctx context.Context, user *models.User) (*models.User, error) {
	number, err := s.counterRepo.Next(ctx, userCounterName)
	if err != nil {
		return nil, persistenceFault("allocate user number", err)
	}
	now := time.Now().UTC()
	user.UserNumber = number
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := s.userRepo.Create(ctx, user); err != nil {
		// The lookups in CreateUser are only a fast path; the guards decide.
		if errors.Is(err, db.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: a user with this subject or email already exists", ErrConflict)
		}
		return nil, persistenceFault("create user", err)
	}
	return user, nil
}

func (s *userService) getOwned(ctx context.Context, callerID, userID string) (*models.User, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.AuthSubject != callerID {
		return nil, fmt.Errorf("%w: caller '%s' is not user '%s'", ErrForbiddenAccess, callerID, userID)
	}
	return user, nil
}

// ensureFree fails with ErrConflict when lookup finds a user for value. It gives a precise
// message for the common case; the repository enforces uniqueness.
func (s *userService) ensureFree(ctx context.Context, field, value string, lookup func(context.Context, string) (*models.User, error)) error {
	_, err := lookup(ctx, value)
	switch {
	case err == nil:
		return fmt.Errorf("%w: a user with this %s already exists", ErrConflict, field)
	case errors.Is(err, db.ErrNotFound):
		return nil
	default:
		return persistenceFault("check user "+field, err)
	}
}

func validateEmail(email string) error {
	if email == "" {
		return invalidPayload("email is required")
	}
	if at := strings.Index(email, "@"); at <= 0 || at == len(email)-1 {
		return invalidPayload("email %q is not a valid address", email)
	}
	return nil
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
