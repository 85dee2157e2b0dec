package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jmadden/videojobs/internal/models"
	"github.com/jmadden/videojobs/internal/store"
)

// ItemsStore is the persistence surface the items service needs.
type ItemsStore interface {
	List(ctx context.Context) ([]models.Item, error)
	Get(ctx context.Context, id string) (*models.Item, error)
	Put(ctx context.Context, item models.Item) error
	Delete(ctx context.Context, id string) error
}

// ItemsService implements the CRUD rules for items. It knows nothing about
// HTTP; the router is responsible for that.
type ItemsService struct {
	store ItemsStore
	now   func() time.Time
}

// NewItemsService creates an ItemsService on top of the given store.
func NewItemsService(store ItemsStore) *ItemsService {
	return &ItemsService{store: store, now: time.Now}
}

// ListItems returns all items, most recently created first. The in-memory
// sort keeps the scan-then-sort behaviour; fine at this scale.
func (s *ItemsService) ListItems(ctx context.Context) ([]models.Item, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt > items[j].CreatedAt
	})
	return items, nil
}

// GetItem returns the item, or nil when the id is unknown.
func (s *ItemsService) GetItem(ctx context.Context, id string) (*models.Item, error) {
	return s.store.Get(ctx, id)
}

// CreateItem validates the input, generates the id and both timestamps, and
// persists the new item.
func (s *ItemsService) CreateItem(ctx context.Context, name, description string) (*models.Item, error) {
	if name == "" {
		return nil, &ValidationError{Message: "name is required"}
	}
	now := models.FormatTime(s.now())
	item := models.Item{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Put(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to persist item: %w", err)
	}
	return &item, nil
}

// UpdateItem merges the supplied fields into the existing item and refreshes
// updated_at. An empty patch is rejected; an unknown id is ErrNotFound.
func (s *ItemsService) UpdateItem(ctx context.Context, id string, patch models.ItemPatch) (*models.Item, error) {
	if patch.IsEmpty() {
		return nil, &ValidationError{Message: "at least one of name or description is required"}
	}
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, store.ErrNotFound
	}
	patch.Apply(existing)
	existing.UpdatedAt = models.FormatTime(s.now())
	if err := s.store.Put(ctx, *existing); err != nil {
		return nil, fmt.Errorf("failed to persist item: %w", err)
	}
	return existing, nil
}

// DeleteItem removes the item. Deleting an unknown id is ErrNotFound, so a
// second delete of the same id reports the same outcome.
func (s *ItemsService) DeleteItem(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
