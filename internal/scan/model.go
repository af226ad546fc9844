package scan

import (
	"time"

	"recipee/internal/extract"
)

// Ingredient is the canonical ingredient record produced by the extraction
// engine.
type Ingredient = extract.Ingredient

// Record is one completed ingredient-recognition operation against a single
// photo. Immutable once written, except that confirmed uncertain items are
// appended by Confirm.
type Record struct {
	ID          int64        `json:"id"`
	Date        time.Time    `json:"date"`
	Image       string       `json:"image"`
	Ingredients []Ingredient `json:"ingredients"`
}

// Result is what a scan returns: the history record holding the confident
// items, plus the low-confidence items awaiting per-item user confirmation.
type Result struct {
	Record    Record       `json:"scan"`
	Uncertain []Ingredient `json:"uncertain,omitempty"`
}
