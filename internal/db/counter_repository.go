package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const countersCollection = "counters"

type counterDoc struct {
	Seq int64 `firestore:"seq"`
}

// firestoreCounterRepository keeps named sequences in the counters collection.
type firestoreCounterRepository struct {
	client *firestore.Client
}

// NewFirestoreCounterRepository creates a new instance of firestoreCounterRepository.
func NewFirestoreCounterRepository(client *firestore.Client) CounterRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for CounterRepository.")
	}
	return &firestoreCounterRepository{client: client}
}

// Next increments the counter inside a transaction so concurrent callers never observe the
// same value.
func (r *firestoreCounterRepository) Next(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, errors.New("counter name cannot be empty")
	}
	ref := r.client.Collection(countersCollection).Doc(name)

	var next int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var current counterDoc
		snap, err := tx.Get(ref)
		switch {
		case err == nil:
			if err := snap.DataTo(&current); err != nil {
				return err
			}
		case status.Code(err) != codes.NotFound:
			return err
		}
		next = current.Seq + 1
		return tx.Set(ref, counterDoc{Seq: next})
	})
	if err != nil {
		return 0, fmt.Errorf("failed to advance counter '%s': %w", name, err)
	}
	return next, nil
}
