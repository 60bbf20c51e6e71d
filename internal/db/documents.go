package db

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Shared document plumbing for the typed repositories. setID copies the document ID into the
// decoded model, whose ID field is tagged firestore:"-".

func decodeDocument[T any](doc *firestore.DocumentSnapshot, kind string, setID func(*T, string)) (*T, error) {
	var out T
	if err := doc.DataTo(&out); err != nil {
		return nil, fmt.Errorf("failed to decode %s data for ID '%s': %w", kind, doc.Ref.ID, err)
	}
	setID(&out, doc.Ref.ID)
	return &out, nil
}

func getDocument[T any](ctx context.Context, ref *firestore.DocumentRef, kind string, setID func(*T, string)) (*T, error) {
	if ref == nil || ref.ID == "" {
		return nil, fmt.Errorf("%s ID cannot be empty", kind)
	}
	docSnap, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%s with ID '%s' not found: %w", kind, ref.ID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s with ID '%s': %w", kind, ref.ID, err)
	}
	return decodeDocument(docSnap, kind, setID)
}

func queryDocuments[T any](ctx context.Context, query firestore.Query, kind string, setID func(*T, string)) ([]*T, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	out := make([]*T, 0)
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate %s documents: %w", kind, err)
		}
		item, err := decodeDocument(doc, kind, setID)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func createDocument(ctx context.Context, col *firestore.CollectionRef, kind string, data interface{}) (string, error) {
	docRef := col.NewDoc()
	if _, err := docRef.Create(ctx, data); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", kind, err)
	}
	return docRef.ID, nil
}

// setDocument overwrites an existing document; it fails with ErrNotFound if there is none.
func setDocument(ctx context.Context, client *firestore.Client, ref *firestore.DocumentRef, kind string, data interface{}) error {
	if ref == nil || ref.ID == "" {
		return fmt.Errorf("%s ID cannot be empty for Update operation", kind)
	}
	err := client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return err
		}
		return tx.Set(ref, data)
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("%s with ID '%s' not found for update: %w", kind, ref.ID, ErrNotFound)
		}
		return fmt.Errorf("failed to update %s with ID '%s': %w", kind, ref.ID, err)
	}
	return nil
}

// deleteDocument removes a document, reporting ErrNotFound when it did not exist.
func deleteDocument(ctx context.Context, ref *firestore.DocumentRef, kind string) error {
	if ref == nil || ref.ID == "" {
		return fmt.Errorf("%s ID cannot be empty for Delete operation", kind)
	}
	if _, err := ref.Delete(ctx, firestore.Exists); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("%s with ID '%s' not found for deletion: %w", kind, ref.ID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete %s with ID '%s': %w", kind, ref.ID, err)
	}
	return nil
}

// guardDocID maps a unique key (owner identity, subject, email) onto a valid document ID;
// values such as "auth0|abc" or keys containing "/" are not usable verbatim.
func guardDocID(key string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(key))
}
