package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"recipee/internal/api"
	"recipee/internal/config"
	"recipee/internal/logging"
	"recipee/internal/pantry"
	"recipee/internal/platform/gemini"
	"recipee/internal/platform/openrouter"
	"recipee/internal/profile"
	"recipee/internal/recipe"
	"recipee/internal/scan"
	"recipee/internal/store"
	"recipee/internal/usage"
)

// modelClient is what both providers offer: a vision scan call and a buffered
// text completion.
type modelClient interface {
	ScanImage(ctx context.Context, model, instruction, imageDataURI string) (string, error)
	Complete(ctx context.Context, model, promptText string, maxTokens int) (string, error)
}

func main() {
	ctx := context.Background()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	dbStore, err := store.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		panic(fmt.Errorf("error creating postgres store: %w", err))
	}

	var model modelClient
	switch cfg.ModelProvider {
	case "gemini":
		geminiClient, err := gemini.NewClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			panic(fmt.Errorf("error creating gemini client: %w", err))
		}
		model = geminiClient
	default:
		model = openrouter.NewClient(cfg.OpenRouterAPIKey, cfg.OpenRouterBaseURL)
	}
	logger.Info("model provider ready", "provider", cfg.ModelProvider)

	ledger := usage.NewLedger(dbStore, cfg.DailyScanLimit, cfg.DailyRecipeLimit)
	pantrySvc := pantry.NewService(dbStore)
	profileSvc := profile.NewService(dbStore, cfg.AdminPassphrase, cfg.AppPassphrase)
	scanSvc := scan.NewService(model, cfg.ScanModel, dbStore, pantrySvc, profileSvc, ledger)
	recipeSvc := recipe.NewService(model, cfg.RecipeModel, cfg.AlmostModel, dbStore, pantrySvc, profileSvc, ledger)

	handler := api.NewHandler(scanSvc, recipeSvc, pantrySvc, profileSvc, ledger)

	r := gin.Default()

	// Configure CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8081"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handler.Register(r)

	logger.Info("listening", "addr", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		panic(fmt.Errorf("server stopped: %w", err))
	}
}
