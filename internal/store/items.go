// Package store holds the Firestore repositories for items and jobs, plus
// the record normalizer applied at this boundary. Document writes are
// single-key atomic; concurrent updates race with last-write-wins semantics
// (no versioning, no compare-and-swap).
package store

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jmadden/videojobs/internal/models"
)

// ErrNotFound is returned by mutations on ids that have no record.
var ErrNotFound = errors.New("record not found")

// ItemsRepository persists items in a Firestore collection, one document per
// item keyed by the item id.
type ItemsRepository struct {
	client     *firestore.Client
	collection string
}

// NewItemsRepository creates an ItemsRepository on the given collection.
func NewItemsRepository(client *firestore.Client, collection string) *ItemsRepository {
	return &ItemsRepository{client: client, collection: collection}
}

// List returns all items in arbitrary order. A full collection scan is fine
// at this scale; ordering is the service's concern.
func (r *ItemsRepository) List(ctx context.Context) ([]models.Item, error) {
	it := r.client.Collection(r.collection).Documents(ctx)
	defer it.Stop()

	var items []models.Item
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list items: %w", err)
		}
		var item models.Item
		if err := doc.DataTo(&item); err != nil {
			return nil, fmt.Errorf("failed to decode item %s: %w", doc.Ref.ID, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Get returns the item, or nil when no record exists for the id.
func (r *ItemsRepository) Get(ctx context.Context, id string) (*models.Item, error) {
	if id == "" {
		return nil, nil
	}
	doc, err := r.client.Collection(r.collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item %s: %w", id, err)
	}
	var item models.Item
	if err := doc.DataTo(&item); err != nil {
		return nil, fmt.Errorf("failed to decode item %s: %w", id, err)
	}
	return &item, nil
}

// Put creates or overwrites the item document.
func (r *ItemsRepository) Put(ctx context.Context, item models.Item) error {
	if _, err := r.client.Collection(r.collection).Doc(item.ID).Set(ctx, item); err != nil {
		return fmt.Errorf("failed to put item %s: %w", item.ID, err)
	}
	return nil
}

// Delete removes the item, returning ErrNotFound when it does not exist so
// callers can surface a 404.
func (r *ItemsRepository) Delete(ctx context.Context, id string) error {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if _, err := r.client.Collection(r.collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete item %s: %w", id, err)
	}
	return nil
}
