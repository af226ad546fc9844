package prompt

import (
	"fmt"
	"strings"

	"recipee/internal/profile"
)

// Staples are always allowed in recipe suggestions on top of the pantry.
var Staples = []string{"salt", "pepper", "oil", "butter", "water"}

// Scan returns the instruction block for the ingredient-recognition call.
// The image itself is attached as a separate message part by the model client.
func Scan() string {
	return `Identify EVERY food item in this image. CRITICAL RULES:
1. If it's a PREPARED/COOKED DISH (cake, pizza, burger, sandwich, soup, pancakes, pasta, etc), list it AS-IS. DO NOT break it down into ingredients.
   - Example: "Chocolate Cake" NOT "flour, eggs, butter"
   - Example: "Chocolate Cake Pancakes" NOT "pancake batter, chocolate"
2. If it's RAW INGREDIENTS (vegetables, fruits, raw meat, spices), list each one.
3. Capitalize first letter of each item.
4. For each item include a "confident" boolean: true if you are sure about the item, false if you are guessing.

Return ONLY this JSON (no markdown, no extra text):
{"ingredients": [{"Name": "Item1", "Quantity": "1", "confident": true}, {"Name": "Item2", "Quantity": "1", "confident": false}]}`
}

// Exclusions derives the ingredient-exclusion terms from the enabled
// preferences. The union is de-duplicated and order-preserving.
func Exclusions(prefs []profile.Preference) []string {
	enabled := make(map[string]bool)
	for _, p := range prefs {
		if p.Enabled {
			enabled[p.ID] = true
		}
	}

	var terms []string
	if enabled["vegetarian"] {
		terms = append(terms, "meat", "poultry", "fish", "seafood")
	}
	if enabled["vegan"] {
		terms = append(terms, "meat", "poultry", "fish", "seafood", "milk", "cheese", "butter", "cream", "eggs", "honey")
	}
	if enabled["glutenfree"] {
		terms = append(terms, "wheat", "barley", "rye", "gluten")
	}
	if enabled["dairyfree"] {
		terms = append(terms, "milk", "cheese", "butter", "cream", "yogurt")
	}

	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// RecipeSearch builds the instruction block for a recipe search restricted to
// the pantry plus common staples, with dietary constraints interpolated.
func RecipeSearch(pantryNames []string, prefs []profile.Preference) string {
	ingredientList := strings.Join(pantryNames, ", ")

	var enabledNames []string
	for _, p := range prefs {
		if p.Enabled {
			enabledNames = append(enabledNames, p.Name)
		}
	}

	var prefConstraints string
	if len(enabledNames) > 0 {
		prefConstraints = fmt.Sprintf("\n\nDIETARY PREFERENCES: %s", strings.Join(enabledNames, ", "))
	}

	var excludeBlock string
	if exclusions := Exclusions(prefs); len(exclusions) > 0 {
		excludeBlock = fmt.Sprintf("\n\nDO NOT use these ingredients in any recipe: %s", strings.Join(exclusions, ", "))
	}

	return fmt.Sprintf(`AVAILABLE INGREDIENTS (ONLY use these): %s%s%s

CRITICAL RULES:
1. ONLY suggest recipes using the ingredients listed above
2. You MAY use common pantry staples: %s
3. DO NOT suggest recipes that require ingredients NOT in the list above
4. DO NOT suggest recipes that need items the user doesn't have
5. You SHOULD create exactly 5 recipes with different meal types: breakfast, lunch, dinner, snack, and dessert. If you can't find 5 recipes for different meal types, return as many as you can.
6. Every ingredient in each recipe MUST be from the available list or common staples

Suggest exactly 5 delicious recipes using ONLY available ingredients. Each recipe must have a different meal type: one breakfast, one lunch, one dinner, one snack, and one dessert.

Return ONLY a JSON array:
[{"name": "Recipe Name", "description": "Brief description", "time": "30 mins", "servings": "4", "difficulty": "Easy", "mealType": "Breakfast", "ingredients": ["2 cups item1", "1 cup item2"], "tips": ["Tip 1"], "steps": ["Step 1", "Step 2"]}]`,
		ingredientList, prefConstraints, excludeBlock, strings.Join(Staples, ", "))
}

// AlmostRecipe builds the instruction block asking whether the named dish can
// be made from the current pantry.
func AlmostRecipe(query string, pantryNames []string) string {
	pantryList := strings.Join(pantryNames, ", ")
	if pantryList == "" {
		pantryList = "nothing"
	}

	return fmt.Sprintf(`I want to make: "%s". My pantry has: %s.

Check if I can make this recipe with what I have. Return ONLY a JSON object:
{
  "canMake": true/false,
  "recipe": "Recipe name",
  "description": "What it is",
  "have": ["ingredient1", "ingredient2"],
  "need": [{"item": "ingredient name", "amount": "quantity needed"}],
  "steps": ["Step 1", "Step 2", "Step 3"]
}

If canMake is true, "need" should be empty. If false, list what's missing with quantities.`, query, pantryList)
}
