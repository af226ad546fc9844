package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration. Values come from the environment,
// with an optional .env file loaded first. Model API keys and the unlock
// passphrases stay server-side; clients never see them.
type Config struct {
	ListenAddr  string
	DatabaseURL string

	ModelProvider     string // "openrouter" or "gemini"
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	GeminiAPIKey      string
	ScanModel         string
	RecipeModel       string
	AlmostModel       string

	AdminPassphrase string
	AppPassphrase   string

	DailyScanLimit   int
	DailyRecipeLimit int

	LogLevel string
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in if present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ListenAddr:  getEnv("LISTEN_ADDR", ":8080"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost/recipee?sslmode=disable"),

		ModelProvider:     getEnv("MODEL_PROVIDER", "openrouter"),
		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		ScanModel:         getEnv("SCAN_MODEL", "google/gemini-3-flash-preview"),
		RecipeModel:       getEnv("RECIPE_MODEL", "google/gemini-2.0-flash-001"),
		AlmostModel:       getEnv("ALMOST_MODEL", "gpt-4o-mini"),

		AdminPassphrase: getEnv("ADMIN_PASSPHRASE", ""),
		AppPassphrase:   getEnv("APP_PASSPHRASE", ""),

		DailyScanLimit:   getEnvInt("DAILY_SCAN_LIMIT", 10),
		DailyRecipeLimit: getEnvInt("DAILY_RECIPE_LIMIT", 5),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
