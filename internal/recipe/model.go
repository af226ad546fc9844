package recipe

import "recipee/internal/extract"

// MealTypes are the five fixed recipe categories. A batch holds at most one
// recipe per meal type.
var MealTypes = []string{"Breakfast", "Lunch", "Dinner", "Snack", "Dessert"}

// StepTimer is a cook timer extracted from one step's text. Steps without a
// time expression get no timer.
type StepTimer struct {
	Step    int `json:"step"`
	Seconds int `json:"seconds"`
}

// Recipe is one stored suggestion: the extracted recipe plus the step timers
// computed when the batch was stored.
type Recipe struct {
	extract.Recipe
	StepTimers []StepTimer `json:"stepTimers,omitempty"`
}

// WithTimers wraps an extracted recipe, attaching a timer for every step that
// names a duration.
func WithTimers(r extract.Recipe) Recipe {
	out := Recipe{Recipe: r}
	for i, step := range r.Steps {
		if seconds, ok := extract.StepDuration(step); ok {
			out.StepTimers = append(out.StepTimers, StepTimer{Step: i, Seconds: seconds})
		}
	}
	return out
}
