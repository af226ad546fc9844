package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"recipee/internal/store"
)

func TestPreferences_SeedsDefaults(t *testing.T) {
	svc := NewService(store.NewMemoryStore(), "", "")

	prefs, err := svc.Preferences(context.Background())

	assert.NoError(t, err)
	assert.Len(t, prefs, 8)
	for _, p := range prefs {
		assert.False(t, p.Enabled, "preference %q should start disabled", p.ID)
		assert.NotEmpty(t, p.Emoji)
	}
}

func TestTogglePreference(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryStore(), "", "")

	prefs, err := svc.TogglePreference(ctx, "vegan")
	assert.NoError(t, err)

	var vegan Preference
	for _, p := range prefs {
		if p.ID == "vegan" {
			vegan = p
		}
	}
	assert.True(t, vegan.Enabled)

	// The toggle persists across reads and flips back.
	prefs, err = svc.Preferences(ctx)
	assert.NoError(t, err)
	for _, p := range prefs {
		if p.ID == "vegan" {
			assert.True(t, p.Enabled)
		}
	}

	prefs, err = svc.TogglePreference(ctx, "vegan")
	assert.NoError(t, err)
	for _, p := range prefs {
		if p.ID == "vegan" {
			assert.False(t, p.Enabled)
		}
	}
}

func TestTogglePreference_UnknownID(t *testing.T) {
	svc := NewService(store.NewMemoryStore(), "", "")

	_, err := svc.TogglePreference(context.Background(), "carnivore")
	assert.ErrorIs(t, err, ErrUnknownPreference)
}

func TestCompleteOnboarding(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryStore(), "", "")

	assert.False(t, svc.Onboarded(ctx))

	assert.NoError(t, svc.CompleteOnboarding(ctx, "  Alex  "))

	assert.True(t, svc.Onboarded(ctx))
	assert.Equal(t, "Alex", svc.Name(ctx))
}

func TestUnlockAdmin(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryStore(), "letmein", "")

	ok, err := svc.UnlockAdmin(ctx, "wrong")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, svc.AdminMode(ctx))

	ok, err = svc.UnlockAdmin(ctx, "letmein")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, svc.AdminMode(ctx))
}

func TestUnlockAdmin_UnconfiguredNeverUnlocks(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryStore(), "", "")

	ok, err := svc.UnlockAdmin(ctx, "")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestUnlockApp(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryStore(), "", "hunter2")

	ok, err := svc.UnlockApp(ctx, "nope")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, svc.Authenticated(ctx))

	ok, err = svc.UnlockApp(ctx, "hunter2")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, svc.Authenticated(ctx))
}

func TestUnlockApp_UnconfiguredIsOpen(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryStore(), "", "")

	ok, err := svc.UnlockApp(ctx, "anything")
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestSettingsAndNotificationsDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryStore(), "", "")

	assert.Equal(t, Settings{Theme: "light", Units: "metric"}, svc.Settings(ctx))
	assert.Equal(t, Notifications{Recommendations: true, CookingTips: true}, svc.Notifications(ctx))

	assert.NoError(t, svc.SetSettings(ctx, Settings{Theme: "dark", Units: "imperial"}))
	assert.Equal(t, "dark", svc.Settings(ctx).Theme)
}
