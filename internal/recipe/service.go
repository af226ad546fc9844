package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipee/internal/extract"
	"recipee/internal/pantry"
	"recipee/internal/profile"
	"recipee/internal/prompt"
	"recipee/internal/store"
	"recipee/internal/usage"
)

var (
	// ErrEmptyPantry rejects a search before any network call is made.
	ErrEmptyPantry = errors.New("pantry is empty")

	// ErrEmptyQuery rejects a blank almost-recipe lookup.
	ErrEmptyQuery = errors.New("recipe query is empty")

	// ErrTimeout distinguishes the 90-second search abort from other
	// transport failures.
	ErrTimeout = errors.New("recipe search timed out")

	// ErrUpstream marks a model transport failure; the upstream body is
	// logged, not shown.
	ErrUpstream = errors.New("recipe model request failed")
)

// searchTimeout is the client-side abort for recipe search. Scans carry no
// such deadline.
const searchTimeout = 90 * time.Second

const (
	searchMaxTokens = 4000
	almostMaxTokens = 1000
)

// maxBatch caps a recipe batch at one suggestion per meal type.
const maxBatch = 5

// ModelClient is the buffered model call recipe flows need.
type ModelClient interface {
	Complete(ctx context.Context, model, promptText string, maxTokens int) (string, error)
}

// Service runs recipe search and almost-recipe lookups against the pantry
// and preferences, keeping the latest successful batch.
type Service struct {
	model       ModelClient
	recipeModel string
	almostModel string
	store       store.Store
	pantry      *pantry.Service
	profile     *profile.Service
	ledger      *usage.Ledger
}

func NewService(model ModelClient, recipeModel, almostModel string, st store.Store, pantrySvc *pantry.Service, profileSvc *profile.Service, ledger *usage.Ledger) *Service {
	return &Service{
		model:       model,
		recipeModel: recipeModel,
		almostModel: almostModel,
		store:       st,
		pantry:      pantrySvc,
		profile:     profileSvc,
		ledger:      ledger,
	}
}

// Search asks the model for up to five recipes spanning the meal types,
// restricted to the pantry plus staples, and replaces the stored batch on
// success. One failed attempt is terminal; the user re-triggers manually.
func (s *Service) Search(ctx context.Context) ([]Recipe, error) {
	names, err := s.pantry.Names(ctx)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrEmptyPantry
	}

	remaining, err := s.ledger.Remaining(ctx, usage.KindRecipe)
	if err != nil {
		return nil, err
	}
	if remaining <= 0 {
		return nil, usage.ErrLimitReached
	}

	prefs, err := s.profile.Preferences(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	raw, err := s.model.Complete(ctx, s.recipeModel, prompt.RecipeSearch(names, prefs), searchMaxTokens)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	extracted, err := s.parseBatch(raw)
	if err != nil {
		return nil, err
	}

	batch := make([]Recipe, 0, len(extracted))
	for _, r := range extracted {
		batch = append(batch, WithTimers(r))
	}

	if err := s.store.Set(ctx, store.KeyRecipes, batch); err != nil {
		return nil, err
	}
	if err := s.ledger.Increment(ctx, usage.KindRecipe); err != nil {
		return nil, err
	}
	return batch, nil
}

// parseBatch extracts the recipe list and enforces the batch invariant: at
// most one recipe per meal type (first wins), at most five total. The model
// may legitimately return fewer.
func (s *Service) parseBatch(raw string) ([]extract.Recipe, error) {
	extracted, err := extract.Recipes(raw)
	if err != nil {
		return nil, err
	}

	seenMeal := make(map[string]bool)
	var out []extract.Recipe
	for _, r := range extracted {
		meal := strings.ToLower(strings.TrimSpace(r.MealType))
		if meal != "" {
			if seenMeal[meal] {
				continue
			}
			seenMeal[meal] = true
		}
		out = append(out, r)
		if len(out) == maxBatch {
			break
		}
	}
	return out, nil
}

// List returns the current batch filtered by meal type and difficulty,
// case-insensitively. Empty or "all" filters match everything.
func (s *Service) List(ctx context.Context, mealType, difficulty string) ([]Recipe, error) {
	var batch []Recipe
	if _, err := s.store.Get(ctx, store.KeyRecipes, &batch); err != nil {
		return nil, err
	}

	var out []Recipe
	for _, r := range batch {
		if !filterMatch(r.MealType, mealType) || !filterMatch(r.Difficulty, difficulty) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Almost reports whether the named dish can be made from the current pantry
// and what is missing. Parse failure surfaces as an error here; the user can
// tolerate "no recipes found".
func (s *Service) Almost(ctx context.Context, query string) (*extract.AlmostResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	names, err := s.pantry.Names(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := s.model.Complete(ctx, s.almostModel, prompt.AlmostRecipe(query, names), almostMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return extract.Almost(raw)
}

func filterMatch(value, filter string) bool {
	if filter == "" || strings.EqualFold(filter, "all") {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(value), filter)
}
