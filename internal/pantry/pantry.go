// Package pantry maintains the user's working set of known-available
// ingredients. Names are case-insensitively unique; insertion is idempotent.
package pantry

import (
	"context"
	"errors"
	"strings"

	"recipee/internal/extract"
	"recipee/internal/store"
)

// ErrEmptyName rejects manual entries with no usable name.
var ErrEmptyName = errors.New("ingredient name is empty")

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// List returns the pantry in insertion order.
func (s *Service) List(ctx context.Context) ([]extract.Ingredient, error) {
	var items []extract.Ingredient
	if _, err := s.store.Get(ctx, store.KeyPantry, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Add inserts item unless a case-insensitive name match already exists; the
// existing entry is left untouched, quantities are not merged. It reports
// whether the pantry changed.
func (s *Service) Add(ctx context.Context, item extract.Ingredient) (bool, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return false, ErrEmptyName
	}
	if item.Quantity == "" {
		item.Quantity = "1"
	}
	item.Confident = true

	items, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	if containsName(items, item.Name) {
		return false, nil
	}
	return true, s.store.Set(ctx, store.KeyPantry, append(items, item))
}

// AddAll inserts each new item, skipping names already present. It returns
// the number actually added.
func (s *Service) AddAll(ctx context.Context, newItems []extract.Ingredient) (int, error) {
	items, err := s.List(ctx)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, item := range newItems {
		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" || containsName(items, item.Name) {
			continue
		}
		if item.Quantity == "" {
			item.Quantity = "1"
		}
		item.Confident = true
		items = append(items, item)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	return added, s.store.Set(ctx, store.KeyPantry, items)
}

// Remove deletes the entry matching name case-insensitively. It reports
// whether an entry was removed.
func (s *Service) Remove(ctx context.Context, name string) (bool, error) {
	items, err := s.List(ctx)
	if err != nil {
		return false, err
	}

	kept := items[:0]
	removed := false
	for _, item := range items {
		if !removed && strings.EqualFold(item.Name, name) {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return false, nil
	}
	return true, s.store.Set(ctx, store.KeyPantry, kept)
}

// Names returns the pantry names in order, for prompt interpolation.
func (s *Service) Names(ctx context.Context) ([]string, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return names, nil
}

func containsName(items []extract.Ingredient, name string) bool {
	for _, item := range items {
		if strings.EqualFold(item.Name, name) {
			return true
		}
	}
	return false
}
