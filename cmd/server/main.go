package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/korjavin/matchmygrocery/pkg/api"
	"github.com/korjavin/matchmygrocery/pkg/config"
	"github.com/korjavin/matchmygrocery/pkg/grocery"
	"github.com/korjavin/matchmygrocery/pkg/logger"
	"github.com/korjavin/matchmygrocery/pkg/openai"
	"github.com/korjavin/matchmygrocery/pkg/pantry"
	"github.com/korjavin/matchmygrocery/pkg/recipe"
	"github.com/korjavin/matchmygrocery/pkg/scheduler"
	"github.com/korjavin/matchmygrocery/pkg/storage"
)

func main() {
	log := logger.Global
	log.Info("Starting MatchMyGrocery API server...")

	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Error("Failed to configure logger: %v", err)
		os.Exit(1)
	}
	log = logger.Global

	defaultSort, err := grocery.ParseSortOption(cfg.DefaultSort)
	if err != nil {
		log.Warn("Invalid DEFAULT_SORT, falling back to category: %v", err)
		defaultSort = grocery.SortCategory
	}

	// Initialize storage
	store, err := storage.New(cfg.DataDir)
	if err != nil {
		log.Error("Failed to initialize storage: %v", err)
		os.Exit(1)
	}
	defer store.Close()
	store.StartGCRoutine(cfg.GCInterval)

	// Initialize services
	openaiClient := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIAPIBase, cfg.OpenAIModel)
	pantryService := pantry.New(store)
	groceryService := grocery.New(store, pantryService)
	recipeService := recipe.New(store, openaiClient)

	// Keep stored lists in step with their pantries; reminders need the bot
	sched := scheduler.New(groceryService, nil, cfg.RefreshInterval, -1)
	sched.Start()
	defer sched.Stop()

	h := api.New(pantryService, groceryService, recipeService, defaultSort)
	app := api.NewApp(h, api.AppConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		RequestLogging: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info("Shutting down...")
		if err := app.Shutdown(); err != nil {
			log.Error("Failed to shut down HTTP server: %v", err)
		}
	}()

	log.Info("Listening on %s", cfg.HTTPAddr)
	if err := app.Listen(cfg.HTTPAddr); err != nil {
		log.Error("Error running HTTP server: %v", err)
		os.Exit(1)
	}
}
