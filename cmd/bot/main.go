package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/korjavin/matchmygrocery/pkg/config"
	"github.com/korjavin/matchmygrocery/pkg/grocery"
	"github.com/korjavin/matchmygrocery/pkg/logger"
	"github.com/korjavin/matchmygrocery/pkg/messages"
	"github.com/korjavin/matchmygrocery/pkg/openai"
	"github.com/korjavin/matchmygrocery/pkg/pantry"
	"github.com/korjavin/matchmygrocery/pkg/recipe"
	"github.com/korjavin/matchmygrocery/pkg/scheduler"
	"github.com/korjavin/matchmygrocery/pkg/state"
	"github.com/korjavin/matchmygrocery/pkg/storage"
	"github.com/korjavin/matchmygrocery/pkg/telegram"
)

func main() {
	// Initialize logger
	log := logger.Global
	log.Info("Starting MatchMyGrocery bot...")

	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	if err := cfg.RequireBotToken(); err != nil {
		log.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Error("Failed to configure logger: %v", err)
		os.Exit(1)
	}
	log = logger.Global
	log.Debug("Configuration: %+v", cfg.Redacted())

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

	// Start BadgerDB garbage collection
	store.StartGCRoutine(cfg.GCInterval)

	// Initialize OpenAI client
	openaiClient := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIAPIBase, cfg.OpenAIModel)

	// Initialize services
	pantryService := pantry.New(store)
	groceryService := grocery.New(store, pantryService)
	recipeService := recipe.New(store, openaiClient)
	messageService := messages.New(openaiClient)
	stateManager := state.New()

	// Initialize Telegram bot
	bot, err := telegram.New(cfg.BotToken)
	if err != nil {
		log.Error("Failed to initialize Telegram bot: %v", err)
		os.Exit(1)
	}

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handlers := telegram.NewHandlers(ctx, telegram.Deps{
		Sender:      bot,
		Pantry:      pantryService,
		Grocery:     groceryService,
		Recipes:     recipeService,
		Assistant:   openaiClient,
		Messages:    messageService,
		States:      stateManager,
		Cuisines:    cfg.Cuisines,
		DefaultSort: defaultSort,
	})

	// Start background jobs
	sched := scheduler.New(groceryService, bot, cfg.RefreshInterval, cfg.ReminderHour)
	sched.Start()
	defer sched.Stop()

	// Start the bot
	log.Info("Bot is now running. Press CTRL-C to exit.")
	if err := bot.Start(ctx, handlers.Commands(), handlers.Callbacks(), handlers.HandleUpdate); err != nil {
		log.Error("Error running bot: %v", err)
		os.Exit(1)
	}
	log.Info("Shutting down...")
}
