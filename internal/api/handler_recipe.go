package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recipee/internal/recipe"
)

// SearchRecipes runs one recipe search against the pantry and preferences and
// returns the new batch. A failed search is terminal; the user re-triggers it.
func (h *Handler) SearchRecipes(c *gin.Context) {
	batch, err := h.Recipes.Search(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

// GetRecipes returns the stored batch filtered by the mealType and difficulty
// query parameters. Absent or "all" filters match everything.
func (h *Handler) GetRecipes(c *gin.Context) {
	batch, err := h.Recipes.List(c.Request.Context(), c.Query("mealType"), c.Query("difficulty"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if batch == nil {
		batch = []recipe.Recipe{}
	}
	c.JSON(http.StatusOK, batch)
}

type almostRecipeRequest struct {
	Query string `json:"query"`
}

// AlmostRecipe reports whether the named dish can be made from the pantry and
// what is missing.
func (h *Handler) AlmostRecipe(c *gin.Context) {
	var req almostRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	result, err := h.Recipes.Almost(c.Request.Context(), req.Query)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
