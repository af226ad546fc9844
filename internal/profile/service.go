package profile

import (
	"context"
	"errors"
	"strings"

	"recipee/internal/store"
)

// ErrUnknownPreference is returned when toggling an id outside the fixed
// catalog.
var ErrUnknownPreference = errors.New("unknown preference id")

// Service owns preferences, onboarding state, profile fields, settings and
// the admin/app unlocks.
type Service struct {
	store           store.Store
	adminPassphrase string
	appPassphrase   string
}

func NewService(st store.Store, adminPassphrase, appPassphrase string) *Service {
	return &Service{store: st, adminPassphrase: adminPassphrase, appPassphrase: appPassphrase}
}

// Preferences returns the persisted catalog, seeding the defaults on first
// read.
func (s *Service) Preferences(ctx context.Context) ([]Preference, error) {
	var prefs []Preference
	found, err := s.store.Get(ctx, store.KeyPreferences, &prefs)
	if err != nil {
		return nil, err
	}
	if !found || len(prefs) == 0 {
		return DefaultPreferences(), nil
	}
	return prefs, nil
}

// TogglePreference flips the enabled flag for id and returns the updated
// catalog.
func (s *Service) TogglePreference(ctx context.Context, id string) ([]Preference, error) {
	prefs, err := s.Preferences(ctx)
	if err != nil {
		return nil, err
	}

	toggled := false
	for i := range prefs {
		if prefs[i].ID == id {
			prefs[i].Enabled = !prefs[i].Enabled
			toggled = true
			break
		}
	}
	if !toggled {
		return nil, ErrUnknownPreference
	}
	return prefs, s.store.Set(ctx, store.KeyPreferences, prefs)
}

// Onboarded reports whether onboarding has been completed.
func (s *Service) Onboarded(ctx context.Context) bool {
	var done bool
	if _, err := s.store.Get(ctx, store.KeyOnboarding, &done); err != nil {
		return false
	}
	return done
}

// CompleteOnboarding marks onboarding done, storing the display name when one
// was entered.
func (s *Service) CompleteOnboarding(ctx context.Context, name string) error {
	if err := s.store.Set(ctx, store.KeyOnboarding, true); err != nil {
		return err
	}
	if name = strings.TrimSpace(name); name != "" {
		return s.store.Set(ctx, store.KeyUserName, name)
	}
	return nil
}

// Name returns the stored display name, empty if unset.
func (s *Service) Name(ctx context.Context) string {
	var name string
	_, _ = s.store.Get(ctx, store.KeyUserName, &name)
	return name
}

func (s *Service) SetName(ctx context.Context, name string) error {
	return s.store.Set(ctx, store.KeyUserName, strings.TrimSpace(name))
}

// Avatar returns the stored avatar data URI, empty if unset.
func (s *Service) Avatar(ctx context.Context) string {
	var avatar string
	_, _ = s.store.Get(ctx, store.KeyUserAvatar, &avatar)
	return avatar
}

func (s *Service) SetAvatar(ctx context.Context, dataURI string) error {
	return s.store.Set(ctx, store.KeyUserAvatar, dataURI)
}

func (s *Service) Settings(ctx context.Context) Settings {
	settings := DefaultSettings()
	_, _ = s.store.Get(ctx, store.KeyAppSettings, &settings)
	return settings
}

func (s *Service) SetSettings(ctx context.Context, settings Settings) error {
	return s.store.Set(ctx, store.KeyAppSettings, settings)
}

func (s *Service) Notifications(ctx context.Context) Notifications {
	notifications := DefaultNotifications()
	_, _ = s.store.Get(ctx, store.KeyNotify, &notifications)
	return notifications
}

func (s *Service) SetNotifications(ctx context.Context, notifications Notifications) error {
	return s.store.Set(ctx, store.KeyNotify, notifications)
}

// AdminMode reports whether the scan-quota bypass has been unlocked.
func (s *Service) AdminMode(ctx context.Context) bool {
	var admin bool
	if _, err := s.store.Get(ctx, store.KeyAdminMode, &admin); err != nil {
		return false
	}
	return admin
}

// UnlockAdmin compares the passphrase and persists admin mode on a match.
// Plain string compare; this is a convenience gate, not access control.
func (s *Service) UnlockAdmin(ctx context.Context, passphrase string) (bool, error) {
	if s.adminPassphrase == "" || passphrase != s.adminPassphrase {
		return false, nil
	}
	return true, s.store.Set(ctx, store.KeyAdminMode, true)
}

// Authenticated reports whether the app unlock has succeeded.
func (s *Service) Authenticated(ctx context.Context) bool {
	var ok bool
	if _, err := s.store.Get(ctx, store.KeyAuth, &ok); err != nil {
		return false
	}
	return ok
}

// UnlockApp compares the app passphrase and persists the authenticated flag
// on a match. An empty configured passphrase leaves the app open.
func (s *Service) UnlockApp(ctx context.Context, passphrase string) (bool, error) {
	if s.appPassphrase == "" {
		return true, s.store.Set(ctx, store.KeyAuth, true)
	}
	if passphrase != s.appPassphrase {
		return false, nil
	}
	return true, s.store.Set(ctx, store.KeyAuth, true)
}
