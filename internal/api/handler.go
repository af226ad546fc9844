package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"recipee/internal/extract"
	"recipee/internal/pantry"
	"recipee/internal/profile"
	"recipee/internal/recipe"
	"recipee/internal/scan"
	"recipee/internal/usage"
)

// ScanService defines the scan operations the handlers need.
type ScanService interface {
	Scan(ctx context.Context, imageData []byte) (*scan.Result, error)
	Confirm(ctx context.Context, scanID int64, accepted []scan.Ingredient) (*scan.Record, error)
	History(ctx context.Context) ([]scan.Record, error)
}

// RecipeService defines the recipe operations the handlers need.
type RecipeService interface {
	Search(ctx context.Context) ([]recipe.Recipe, error)
	List(ctx context.Context, mealType, difficulty string) ([]recipe.Recipe, error)
	Almost(ctx context.Context, query string) (*extract.AlmostResult, error)
}

// PantryService defines the pantry operations the handlers need.
type PantryService interface {
	List(ctx context.Context) ([]extract.Ingredient, error)
	Add(ctx context.Context, item extract.Ingredient) (bool, error)
	AddAll(ctx context.Context, items []extract.Ingredient) (int, error)
	Remove(ctx context.Context, name string) (bool, error)
}

// ProfileService defines the profile, preference and unlock operations the
// handlers need.
type ProfileService interface {
	Preferences(ctx context.Context) ([]profile.Preference, error)
	TogglePreference(ctx context.Context, id string) ([]profile.Preference, error)
	Onboarded(ctx context.Context) bool
	CompleteOnboarding(ctx context.Context, name string) error
	Name(ctx context.Context) string
	SetName(ctx context.Context, name string) error
	Avatar(ctx context.Context) string
	SetAvatar(ctx context.Context, dataURI string) error
	Settings(ctx context.Context) profile.Settings
	SetSettings(ctx context.Context, settings profile.Settings) error
	Notifications(ctx context.Context) profile.Notifications
	SetNotifications(ctx context.Context, notifications profile.Notifications) error
	AdminMode(ctx context.Context) bool
	UnlockAdmin(ctx context.Context, passphrase string) (bool, error)
	UnlockApp(ctx context.Context, passphrase string) (bool, error)
}

// UsageLedger defines the counter reads the handlers need.
type UsageLedger interface {
	Remaining(ctx context.Context, kind usage.Kind) (int, error)
	Limit(kind usage.Kind) int
}

// Handler handles HTTP requests.
type Handler struct {
	Scans    ScanService
	Recipes  RecipeService
	Pantry   PantryService
	Profiles ProfileService
	Usage    UsageLedger
}

// NewHandler creates a new Handler.
func NewHandler(scans ScanService, recipes RecipeService, pantrySvc PantryService, profiles ProfileService, ledger UsageLedger) *Handler {
	return &Handler{Scans: scans, Recipes: recipes, Pantry: pantrySvc, Profiles: profiles, Usage: ledger}
}

// Register mounts all routes under /api.
func (h *Handler) Register(r *gin.Engine) {
	api := r.Group("/api")

	api.POST("/scan", h.Scan)
	api.POST("/scan/confirm", h.ConfirmScan)
	api.GET("/history", h.History)

	api.GET("/pantry", h.GetPantry)
	api.POST("/pantry", h.StorePantry)
	api.POST("/pantry/manual", h.AddManualIngredient)
	api.DELETE("/pantry/:name", h.RemovePantryItem)

	api.POST("/recipes/search", h.SearchRecipes)
	api.GET("/recipes", h.GetRecipes)
	api.POST("/recipes/almost", h.AlmostRecipe)

	api.GET("/preferences", h.GetPreferences)
	api.PUT("/preferences/:id", h.TogglePreference)

	api.GET("/usage", h.GetUsage)

	api.GET("/profile", h.GetProfile)
	api.PUT("/profile", h.UpdateProfile)
	api.POST("/onboarding/complete", h.CompleteOnboarding)

	api.POST("/admin/unlock", h.UnlockAdmin)
	api.POST("/auth/unlock", h.UnlockApp)
}

// allowedExtensions limits uploads to the formats the preprocessor decodes.
var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
}

// Scan handles an image upload and runs one ingredient-recognition
// operation. A response the extraction engine cannot parse still returns 200
// with the sentinel record.
func (h *Handler) Scan(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image selected."})
		return
	}

	extension := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[extension] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Only JPEG, JPG, and PNG images are allowed."})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload."})
		return
	}
	defer src.Close()

	imageData, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload."})
		return
	}

	// No timeout here: scans rely on the implicit transport deadline only.
	result, err := h.Scans.Scan(c.Request.Context(), imageData)
	if err != nil {
		if errors.Is(err, usage.ErrLimitReached) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": fmt.Sprintf("Daily scan limit reached (%d/day). Try again tomorrow!", h.Usage.Limit(usage.KindScan))})
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type confirmScanRequest struct {
	ScanID   int64             `json:"scanId"`
	Accepted []scan.Ingredient `json:"accepted"`
}

// ConfirmScan merges user-accepted uncertain items into the scan record and
// pantry. Items not listed are discarded.
func (h *Handler) ConfirmScan(c *gin.Context) {
	var req confirmScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	record, err := h.Scans.Confirm(c.Request.Context(), req.ScanID, req.Accepted)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// History returns scan records most-recent-first.
func (h *Handler) History(c *gin.Context) {
	history, err := h.Scans.History(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if history == nil {
		history = []scan.Record{}
	}
	c.JSON(http.StatusOK, history)
}

// fail maps service errors onto the error taxonomy: input 400, not-found 404,
// quota 429, timeout 504, upstream 502, everything else 500. Specific
// upstream details are logged, never displayed.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, scan.ErrNoImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image selected."})
	case errors.Is(err, pantry.ErrEmptyName):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Enter an ingredient name."})
	case errors.Is(err, recipe.ErrEmptyPantry):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Add ingredients to your pantry first"})
	case errors.Is(err, recipe.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Enter a recipe to check."})
	case errors.Is(err, profile.ErrUnknownPreference):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown preference."})
	case errors.Is(err, scan.ErrScanNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Scan not found."})
	case errors.Is(err, usage.ErrLimitReached):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": fmt.Sprintf("Daily recipe search limit reached (%d/day). Try again tomorrow!", h.Usage.Limit(usage.KindRecipe))})
	case errors.Is(err, recipe.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Request timed out."})
	case errors.Is(err, extract.ErrNoRecipes):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to find recipes."})
	case errors.Is(err, scan.ErrUpstream):
		slog.Error("scan upstream failure", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to scan. Please try again."})
	case errors.Is(err, recipe.ErrUpstream):
		slog.Error("recipe upstream failure", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to find recipes."})
	default:
		slog.Error("internal error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
	}
}
