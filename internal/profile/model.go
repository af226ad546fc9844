package profile

// Preference is one entry of the fixed dietary-preference catalog. Only
// Enabled is ever mutated.
type Preference struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

// DefaultPreferences returns the catalog seeded on first run.
func DefaultPreferences() []Preference {
	return []Preference{
		{ID: "vegetarian", Name: "Vegetarian", Emoji: "🥬", Description: "No meat or fish"},
		{ID: "vegan", Name: "Vegan", Emoji: "🌱", Description: "No animal products"},
		{ID: "glutenfree", Name: "Gluten-Free", Emoji: "🌾", Description: "No gluten"},
		{ID: "dairyfree", Name: "Dairy-Free", Emoji: "🥛", Description: "No dairy products"},
		{ID: "sweettooth", Name: "Sweet Tooth", Emoji: "🍰", Description: "Love desserts"},
		{ID: "spicy", Name: "Spicy Food", Emoji: "🌶️", Description: "Love spicy dishes"},
		{ID: "lowcarb", Name: "Low Carb", Emoji: "🥩", Description: "Reduce carbohydrates"},
		{ID: "healthy", Name: "Healthy Eating", Emoji: "💪", Description: "Nutritious meals"},
	}
}

// Settings holds the persisted app settings.
type Settings struct {
	Theme string `json:"theme"`
	Units string `json:"units"`
}

// Notifications holds the persisted notification toggles.
type Notifications struct {
	Recommendations bool `json:"recommendations"`
	CookingTips     bool `json:"cookingTips"`
	WeeklyDigest    bool `json:"weeklyDigest"`
}

// DefaultSettings returns the settings used before the user changes anything.
func DefaultSettings() Settings {
	return Settings{Theme: "light", Units: "metric"}
}

// DefaultNotifications mirrors the toggles' initial state: recommendations
// and cooking tips on, weekly digest off.
func DefaultNotifications() Notifications {
	return Notifications{Recommendations: true, CookingTips: true}
}
