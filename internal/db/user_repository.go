package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"kitchenharmony-backend-go/internal/models"
)

const (
	usersCollection = "users"
	// One guard document per identity subject and per email address. They are written in the
	// same transaction as the user, so a second user with the same key fails with AlreadyExists.
	userSubjectsCollection = "userSubjects"
	userEmailsCollection   = "userEmails"
)

type userKeyGuard struct {
	UserID string `firestore:"userId"`
}

// firestoreUserRepository implements the UserRepository interface using Firestore.
type firestoreUserRepository struct {
	client *firestore.Client
}

// NewFirestoreUserRepository creates a new instance of firestoreUserRepository.
func NewFirestoreUserRepository(client *firestore.Client) UserRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for UserRepository.")
	}
	return &firestoreUserRepository{client: client}
}

func setUserID(u *models.User, id string) { u.ID = id }

func (r *firestoreUserRepository) subjectGuard(subject string) *firestore.DocumentRef {
	return r.client.Collection(userSubjectsCollection).Doc(guardDocID(subject))
}

// Emails are compared case-insensitively.
func (r *firestoreUserRepository) emailGuard(email string) *firestore.DocumentRef {
	return r.client.Collection(userEmailsCollection).Doc(guardDocID(strings.ToLower(email)))
}

// Create adds a new user document with an auto-generated ID and returns that ID.
// It fails with ErrAlreadyExists when the subject or the email is taken.
// An empty email is not reserved.
func (r *firestoreUserRepository) Create(ctx context.Context, user *models.User) (string, error) {
	if user.AuthSubject == "" {
		return "", errors.New("user subject cannot be empty for Create operation")
	}
	userRef := r.client.Collection(usersCollection).NewDoc()

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		guard := userKeyGuard{UserID: userRef.ID}
		if err := tx.Create(r.subjectGuard(user.AuthSubject), guard); err != nil {
			return err
		}
		if user.Email != "" {
			if err := tx.Create(r.emailGuard(user.Email), guard); err != nil {
				return err
			}
		}
		return tx.Create(userRef, user)
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return "", fmt.Errorf("user with subject '%s' or email '%s': %w", user.AuthSubject, user.Email, ErrAlreadyExists)
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = userRef.ID
	return userRef.ID, nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	return getDocument(ctx, r.client.Collection(usersCollection).Doc(userID), "user", setUserID)
}

// GetByAuthSubject finds the user linked to an identity provider subject.
func (r *firestoreUserRepository) GetByAuthSubject(ctx context.Context, subject string) (*models.User, error) {
	if subject == "" {
		return nil, errors.New("subject cannot be empty for GetByAuthSubject operation")
	}
	return r.findOne(ctx, "authSubject", subject)
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, errors.New("email cannot be empty for GetByEmail operation")
	}
	return r.findOne(ctx, "email", email)
}

func (r *firestoreUserRepository) findOne(ctx context.Context, field, value string) (*models.User, error) {
	query := r.client.Collection(usersCollection).Where(field, "==", value).Limit(1)
	users, err := queryDocuments(ctx, query, "user", setUserID)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user with %s '%s' not found: %w", field, value, ErrNotFound)
	}
	return users[0], nil
}

// Update overwrites the stored user. When the email changes its guard moves with it, and a
// taken email fails with ErrAlreadyExists. The subject is never changed.
func (r *firestoreUserRepository) Update(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		return errors.New("user ID cannot be empty for Update operation")
	}
	userRef := r.client.Collection(usersCollection).Doc(user.ID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(userRef)
		if err != nil {
			return err
		}
		var current models.User
		if err := snap.DataTo(&current); err != nil {
			return fmt.Errorf("failed to decode user data for ID '%s': %w", user.ID, err)
		}

		// All reads are done; writes follow.
		if !strings.EqualFold(current.Email, user.Email) {
			if user.Email != "" {
				if err := tx.Create(r.emailGuard(user.Email), userKeyGuard{UserID: user.ID}); err != nil {
					return err
				}
			}
			if current.Email != "" {
				if err := tx.Delete(r.emailGuard(current.Email)); err != nil {
					return err
				}
			}
		}
		updated := *user
		updated.AuthSubject = current.AuthSubject
		return tx.Set(userRef, &updated)
	})
	if err != nil {
		switch status.Code(err) {
		case codes.NotFound:
			return fmt.Errorf("user with ID '%s' not found for update: %w", user.ID, ErrNotFound)
		case codes.AlreadyExists:
			return fmt.Errorf("email '%s': %w", user.Email, ErrAlreadyExists)
		}
		return fmt.Errorf("failed to update user with ID '%s': %w", user.ID, err)
	}
	return nil
}

// Delete removes the user together with its subject and email guards.
func (r *firestoreUserRepository) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.New("user ID cannot be empty for Delete operation")
	}
	userRef := r.client.Collection(usersCollection).Doc(userID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(userRef)
		if err != nil {
			return err
		}
		var current models.User
		if err := snap.DataTo(&current); err != nil {
			return fmt.Errorf("failed to decode user data for ID '%s': %w", userID, err)
		}

		if err := tx.Delete(userRef); err != nil {
			return err
		}
		if current.AuthSubject != "" {
			if err := tx.Delete(r.subjectGuard(current.AuthSubject)); err != nil {
				return err
			}
		}
		if current.Email != "" {
			return tx.Delete(r.emailGuard(current.Email))
		}
		return nil
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("user with ID '%s' not found for deletion: %w", userID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete user with ID '%s': %w", userID, err)
	}
	return nil
}
