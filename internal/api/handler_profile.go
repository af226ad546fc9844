package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recipee/internal/profile"
	"recipee/internal/usage"
)

// GetPreferences returns the dietary preference catalog with toggle state.
func (h *Handler) GetPreferences(c *gin.Context) {
	prefs, err := h.Profiles.Preferences(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// TogglePreference flips one preference and returns the updated catalog.
func (h *Handler) TogglePreference(c *gin.Context) {
	prefs, err := h.Profiles.TogglePreference(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// GetUsage returns remaining quota per counter. Remaining never goes negative.
func (h *Handler) GetUsage(c *gin.Context) {
	ctx := c.Request.Context()

	scanRemaining, err := h.Usage.Remaining(ctx, usage.KindScan)
	if err != nil {
		h.fail(c, err)
		return
	}
	recipeRemaining, err := h.Usage.Remaining(ctx, usage.KindRecipe)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scan":   gin.H{"remaining": scanRemaining, "limit": h.Usage.Limit(usage.KindScan)},
		"recipe": gin.H{"remaining": recipeRemaining, "limit": h.Usage.Limit(usage.KindRecipe)},
	})
}

// GetProfile returns the user profile, settings and notification toggles.
func (h *Handler) GetProfile(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"name":          h.Profiles.Name(ctx),
		"avatar":        h.Profiles.Avatar(ctx),
		"onboarded":     h.Profiles.Onboarded(ctx),
		"adminMode":     h.Profiles.AdminMode(ctx),
		"settings":      h.Profiles.Settings(ctx),
		"notifications": h.Profiles.Notifications(ctx),
	})
}

type updateProfileRequest struct {
	Name          *string                `json:"name"`
	Avatar        *string                `json:"avatar"`
	Settings      *profile.Settings      `json:"settings"`
	Notifications *profile.Notifications `json:"notifications"`
}

// UpdateProfile applies a partial profile update; absent fields are untouched.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	ctx := c.Request.Context()
	if req.Name != nil {
		if err := h.Profiles.SetName(ctx, *req.Name); err != nil {
			h.fail(c, err)
			return
		}
	}
	if req.Avatar != nil {
		if err := h.Profiles.SetAvatar(ctx, *req.Avatar); err != nil {
			h.fail(c, err)
			return
		}
	}
	if req.Settings != nil {
		if err := h.Profiles.SetSettings(ctx, *req.Settings); err != nil {
			h.fail(c, err)
			return
		}
	}
	if req.Notifications != nil {
		if err := h.Profiles.SetNotifications(ctx, *req.Notifications); err != nil {
			h.fail(c, err)
			return
		}
	}
	h.GetProfile(c)
}

type completeOnboardingRequest struct {
	Name string `json:"name"`
}

// CompleteOnboarding records the chosen name and marks onboarding done.
func (h *Handler) CompleteOnboarding(c *gin.Context) {
	var req completeOnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	if err := h.Profiles.CompleteOnboarding(c.Request.Context(), req.Name); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"onboarded": true})
}

type unlockRequest struct {
	Passphrase string `json:"passphrase"`
}

// UnlockAdmin enables admin mode when the passphrase matches. Admin mode
// bypasses the scan quota gate.
func (h *Handler) UnlockAdmin(c *gin.Context) {
	var req unlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	ok, err := h.Profiles.UnlockAdmin(c.Request.Context(), req.Passphrase)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect passphrase."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"adminMode": true})
}

// UnlockApp checks the app passphrase and marks the session authenticated. An
// empty configured passphrase leaves the app open.
func (h *Handler) UnlockApp(c *gin.Context) {
	var req unlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	ok, err := h.Profiles.UnlockApp(c.Request.Context(), req.Passphrase)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect passphrase."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true})
}
