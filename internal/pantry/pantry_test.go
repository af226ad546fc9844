package pantry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"recipee/internal/extract"
	"recipee/internal/store"
)

func TestAdd(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryStore())

	added, err := svc.Add(ctx, extract.Ingredient{Name: "Tomato", Quantity: "3"})
	assert.NoError(t, err)
	assert.True(t, added)

	items, err := svc.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "Tomato", items[0].Name)
	assert.Equal(t, "3", items[0].Quantity)
	assert.True(t, items[0].Confident)
}

func TestAdd_IdempotentAcrossCasing(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryStore())

	added, err := svc.Add(ctx, extract.Ingredient{Name: "Tomato", Quantity: "3"})
	assert.NoError(t, err)
	assert.True(t, added)

	// A second insert under any casing leaves the existing entry untouched.
	added, err = svc.Add(ctx, extract.Ingredient{Name: "TOMATO", Quantity: "99"})
	assert.NoError(t, err)
	assert.False(t, added)

	items, err := svc.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "3", items[0].Quantity)
}

func TestAdd_EmptyName(t *testing.T) {
	svc := NewService(store.NewMemoryStore())

	_, err := svc.Add(context.Background(), extract.Ingredient{Name: "   "})
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestAdd_DefaultQuantity(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryStore())

	_, err := svc.Add(ctx, extract.Ingredient{Name: "Basil"})
	assert.NoError(t, err)

	items, _ := svc.List(ctx)
	assert.Equal(t, "1", items[0].Quantity)
}

func TestAddAll(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryStore())

	_, err := svc.Add(ctx, extract.Ingredient{Name: "Onion", Quantity: "2"})
	assert.NoError(t, err)

	added, err := svc.AddAll(ctx, []extract.Ingredient{
		{Name: "onion", Quantity: "5"},
		{Name: "Garlic", Quantity: "1 head"},
		{Name: ""},
		{Name: "Carrot"},
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, added)

	names, err := svc.Names(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Onion", "Garlic", "Carrot"}, names)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryStore())

	_, err := svc.AddAll(ctx, []extract.Ingredient{{Name: "Onion"}, {Name: "Garlic"}})
	assert.NoError(t, err)

	removed, err := svc.Remove(ctx, "ONION")
	assert.NoError(t, err)
	assert.True(t, removed)

	names, _ := svc.Names(ctx)
	assert.Equal(t, []string{"Garlic"}, names)

	removed, err = svc.Remove(ctx, "Onion")
	assert.NoError(t, err)
	assert.False(t, removed)
}
