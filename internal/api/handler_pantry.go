package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recipee/internal/extract"
)

// GetPantry returns the current pantry items.
func (h *Handler) GetPantry(c *gin.Context) {
	items, err := h.Pantry.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if items == nil {
		items = []extract.Ingredient{}
	}
	c.JSON(http.StatusOK, items)
}

type storePantryRequest struct {
	Items []extract.Ingredient `json:"items"`
}

// StorePantry adds a batch of items to the pantry, skipping duplicates.
func (h *Handler) StorePantry(c *gin.Context) {
	var req storePantryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	added, err := h.Pantry.AddAll(c.Request.Context(), req.Items)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}

type manualIngredientRequest struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// AddManualIngredient adds a single typed-in item to the pantry.
func (h *Handler) AddManualIngredient(c *gin.Context) {
	var req manualIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	item := extract.Ingredient{Name: req.Name, Quantity: req.Quantity, Confident: true}
	added, err := h.Pantry.Add(c.Request.Context(), item)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}

// RemovePantryItem removes one item by name, case-insensitively.
func (h *Handler) RemovePantryItem(c *gin.Context) {
	removed, err := h.Pantry.Remove(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}
