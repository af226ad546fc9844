package extract

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrNoRecipes is returned when no recipe can be extracted from the model
// output. Unlike ingredient extraction there is no sentinel: an empty recipe
// result is surfaced to the user as an error.
var ErrNoRecipes = errors.New("no recipes found in model output")

// Recipe is one extracted recipe suggestion.
type Recipe struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Time        string   `json:"time"`
	Servings    string   `json:"servings"`
	Difficulty  string   `json:"difficulty"`
	MealType    string   `json:"mealType"`
	Ingredients []string `json:"ingredients"`
	Tips        []string `json:"tips"`
	Steps       []string `json:"steps"`
}

// NeedItem is one missing ingredient in an almost-recipe result.
type NeedItem struct {
	Item   string `json:"item"`
	Amount string `json:"amount"`
}

// AlmostResult reports whether a requested dish can be made from the pantry.
type AlmostResult struct {
	CanMake     bool       `json:"canMake"`
	Recipe      string     `json:"recipe"`
	Description string     `json:"description"`
	Have        []string   `json:"have"`
	Need        []NeedItem `json:"need"`
	Steps       []string   `json:"steps"`
}

var (
	arrayPattern = regexp.MustCompile(`(?s)\[.*\]`)
	// recipeObjectPattern matches individual recipe objects, which contain
	// string arrays but never nested objects.
	recipeObjectPattern = regexp.MustCompile(`\{[^{}]+\}`)
	objectPattern       = regexp.MustCompile(`(?s)\{.*\}`)
)

// Recipes parses raw model output into a recipe list: structural array match
// with trailing-comma repair first, then a per-object lenient fallback.
func Recipes(raw string) ([]Recipe, error) {
	cleaned := stripFences(raw)

	if match := arrayPattern.FindString(cleaned); match != "" {
		var recipes []Recipe
		if err := json.Unmarshal([]byte(repairCommas(match)), &recipes); err == nil {
			recipes = filterRecipes(recipes)
			if len(recipes) > 0 {
				return recipes, nil
			}
		}
	}

	var recipes []Recipe
	for _, match := range recipeObjectPattern.FindAllString(cleaned, -1) {
		var r Recipe
		if err := json.Unmarshal([]byte(repairCommas(match)), &r); err != nil {
			continue
		}
		if strings.TrimSpace(r.Name) != "" {
			recipes = append(recipes, r)
		}
	}
	recipes = filterRecipes(recipes)
	if len(recipes) == 0 {
		return nil, ErrNoRecipes
	}
	return recipes, nil
}

// Almost parses the almost-recipe response object. Total failure is an error;
// the user can tolerate "no result" here.
func Almost(raw string) (*AlmostResult, error) {
	cleaned := stripFences(raw)

	match := objectPattern.FindString(cleaned)
	if match == "" {
		return nil, ErrNoRecipes
	}

	var result AlmostResult
	if err := json.Unmarshal([]byte(repairCommas(match)), &result); err != nil {
		return nil, ErrNoRecipes
	}
	if strings.TrimSpace(result.Recipe) == "" && len(result.Steps) == 0 {
		return nil, ErrNoRecipes
	}
	return &result, nil
}

func filterRecipes(recipes []Recipe) []Recipe {
	var out []Recipe
	for _, r := range recipes {
		if strings.TrimSpace(r.Name) != "" {
			out = append(out, r)
		}
	}
	return out
}
