package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

// SentinelName marks a total parse failure. Callers treat a single-element
// list with this name as a soft failure, not an error.
const SentinelName = "Unable to parse ingredients"

// Ingredient is one extracted food item. Confident defaults to true when the
// model omits the flag.
type Ingredient struct {
	Name      string `json:"name"`
	Quantity  string `json:"quantity"`
	Confident bool   `json:"confident"`
}

// Sentinel returns the record emitted when no ingredient can be extracted.
func Sentinel() Ingredient {
	return Ingredient{Name: SentinelName, Quantity: "1", Confident: true}
}

// ingredientStrategy extracts records from cleaned model output. Strategies
// are tried in order; the first one yielding any records wins.
type ingredientStrategy func(string) []Ingredient

var ingredientStrategies = []ingredientStrategy{
	parseStructural,
	parseFieldPairs,
}

// Ingredients parses raw model output into an ordered, case-insensitively
// de-duplicated ingredient list. It never fails: when every strategy comes up
// empty after filtering, the sentinel record is returned alone.
func Ingredients(raw string) []Ingredient {
	cleaned := stripFences(raw)

	var items []Ingredient
	for _, strategy := range ingredientStrategies {
		items = strategy(cleaned)
		if len(items) > 0 {
			break
		}
	}

	items = filterIngredients(items)
	if len(items) == 0 {
		return []Ingredient{Sentinel()}
	}
	return items
}

// Partition splits items into confident and uncertain subsets, preserving
// order. The uncertain subset is surfaced for per-item user confirmation.
func Partition(items []Ingredient) (confident, uncertain []Ingredient) {
	for _, item := range items {
		if item.Confident {
			confident = append(confident, item)
		} else {
			uncertain = append(uncertain, item)
		}
	}
	return confident, uncertain
}

// structuralPattern locates the first object containing an "ingredients"
// array, however much prose surrounds it.
var structuralPattern = regexp.MustCompile(`(?s)\{.*"ingredients"\s*:\s*\[.*\].*\}`)

// parseStructural matches a brace-balanced object with an "ingredients" key,
// repairs trailing commas, and parses it as JSON. Field names map
// case-insensitively (Name/name, Quantity/quantity); confident defaults to
// true when absent.
func parseStructural(s string) []Ingredient {
	match := structuralPattern.FindString(s)
	if match == "" {
		return nil
	}

	var doc struct {
		Ingredients []struct {
			Name      string `json:"name"`
			Quantity  string `json:"quantity"`
			Confident *bool  `json:"confident"`
		} `json:"ingredients"`
	}
	if err := json.Unmarshal([]byte(repairCommas(match)), &doc); err != nil {
		return nil
	}

	var items []Ingredient
	seen := make(map[string]bool)
	for _, ing := range doc.Ingredients {
		name := ing.Name
		if name == "" {
			name = "Unknown"
		}
		quantity := ing.Quantity
		if quantity == "" {
			quantity = "1"
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, Ingredient{
			Name:      name,
			Quantity:  quantity,
			Confident: ing.Confident == nil || *ing.Confident,
		})
	}
	return items
}

// fieldPairPatterns cover the four field-order/case permutations of
// {"Name": "...", "Quantity": "..."} fragments, each tolerating an optional
// trailing confident flag. reversed marks quantity-first capture order.
var fieldPairPatterns = []struct {
	re       *regexp.Regexp
	reversed bool
}{
	{regexp.MustCompile(`\{\s*"Name"\s*:\s*"([^"]+)"\s*,\s*"Quantity"\s*:\s*"([^"]+)"\s*(?:,\s*"confident"\s*:\s*(true|false)\s*)?\}`), false},
	{regexp.MustCompile(`\{\s*"name"\s*:\s*"([^"]+)"\s*,\s*"quantity"\s*:\s*"([^"]+)"\s*(?:,\s*"confident"\s*:\s*(true|false)\s*)?\}`), false},
	{regexp.MustCompile(`\{\s*"Quantity"\s*:\s*"([^"]+)"\s*,\s*"Name"\s*:\s*"([^"]+)"\s*(?:,\s*"confident"\s*:\s*(true|false)\s*)?\}`), true},
	{regexp.MustCompile(`\{\s*"quantity"\s*:\s*"([^"]+)"\s*,\s*"name"\s*:\s*"([^"]+)"\s*(?:,\s*"confident"\s*:\s*(true|false)\s*)?\}`), true},
}

// parseFieldPairs scans for repeated name/quantity fragments across all
// pattern variants, unioning results and de-duplicating by case-insensitive
// name as each match is found. First occurrence wins.
func parseFieldPairs(s string) []Ingredient {
	var items []Ingredient
	seen := make(map[string]bool)

	for _, p := range fieldPairPatterns {
		for _, match := range p.re.FindAllStringSubmatch(s, -1) {
			name, quantity := match[1], match[2]
			if p.reversed {
				name, quantity = quantity, name
			}
			key := strings.ToLower(name)
			if seen[key] {
				continue
			}
			seen[key] = true
			items = append(items, Ingredient{
				Name:      name,
				Quantity:  quantity,
				Confident: match[3] != "false",
			})
		}
	}
	return items
}

// filterIngredients drops placeholder and degenerate entries.
func filterIngredients(items []Ingredient) []Ingredient {
	var out []Ingredient
	for _, item := range items {
		if item.Name == "" || len(item.Name) < 2 {
			continue
		}
		if strings.EqualFold(item.Name, "food") || item.Name == "Unknown" {
			continue
		}
		out = append(out, item)
	}
	return out
}
