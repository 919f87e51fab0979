// Package api exposes the grocery pipeline and the per-chat pantry and grocery
// lists over a JSON HTTP API.
package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/korjavin/matchmygrocery/pkg/grocery"
	"github.com/korjavin/matchmygrocery/pkg/ingredient"
	"github.com/korjavin/matchmygrocery/pkg/logger"
	"github.com/korjavin/matchmygrocery/pkg/pantry"
	"github.com/korjavin/matchmygrocery/pkg/recipe"
)

// Handler holds all handler dependencies
type Handler struct {
	pantry      *pantry.Service
	grocery     *grocery.Service
	recipes     *recipe.Service
	parser      *ingredient.Parser
	reorder     *ingredient.Parser
	defaultSort grocery.SortOption
	logger      *logger.Logger
}

// New creates a new Handler instance. recipes may be nil, in which case
// recipes can only be added to a grocery list by value.
func New(pantryService *pantry.Service, groceryService *grocery.Service, recipes *recipe.Service, defaultSort grocery.SortOption) *Handler {
	if defaultSort == "" {
		defaultSort = grocery.SortCategory
	}
	return &Handler{
		pantry:      pantryService,
		grocery:     groceryService,
		recipes:     recipes,
		parser:      ingredient.NewParser(),
		reorder:     ingredient.NewParser(ingredient.WithDescriptorReordering()),
		defaultSort: defaultSort,
		logger:      logger.New("api"),
	}
}

// APIResponse is a standard API response structure
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success returns a successful response
func Success(c *fiber.Ctx, data interface{}) error {
	return c.JSON(APIResponse{
		Success: true,
		Data:    data,
	})
}

// Error returns an error response
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(APIResponse{
		Success: false,
		Error:   message,
	})
}

// ErrorHandler is a custom error handler for Fiber
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return Error(c, code, message)
}

// AppConfig holds the HTTP middleware settings
type AppConfig struct {
	AllowedOrigins string
	RequestLogging bool
}

// NewApp creates a Fiber app with middleware and all routes registered
func NewApp(h *Handler, cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})

	// Global middleware
	app.Use(recover.New())
	if cfg.RequestLogging {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	if cfg.AllowedOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowedOrigins,
			AllowHeaders: "Origin, Content-Type, Accept",
			AllowMethods: "GET, POST, DELETE, OPTIONS",
		}))
	}

	h.Register(app)
	return app
}

// Register mounts the routes on app
func (h *Handler) Register(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Stateless pipeline
	api.Post("/ingredients/parse", h.ParseIngredients)
	api.Post("/quantity/reconcile", h.ReconcileQuantity)
	api.Post("/grocery/match", h.MatchGrocery)

	pantryRoutes := api.Group("/pantry/:chat")
	pantryRoutes.Get("/", h.GetPantry)
	pantryRoutes.Post("/", h.AddPantryItems)
	pantryRoutes.Delete("/", h.ResetPantry)
	pantryRoutes.Delete("/items/:item", h.RemovePantryItem)

	groceryRoutes := api.Group("/grocery/:chat")
	groceryRoutes.Get("/", h.GetGroceryList)
	groceryRoutes.Delete("/", h.ResetGroceryList)
	groceryRoutes.Post("/recipes", h.AddRecipe)
	groceryRoutes.Post("/refresh", h.RefreshGroceryList)
	groceryRoutes.Post("/items/:id/toggle", h.ToggleGroceryItem)
	groceryRoutes.Delete("/checked", h.RemoveCheckedItems)
}

// chatID reads the :chat route parameter
func chatID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("chat"), 10, 64)
}
