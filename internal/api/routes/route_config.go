package routes

import (
	"github.com/gofiber/fiber/v2"
	"kitchen-copilot/internal/api/handlers"
	"kitchen-copilot/internal/middleware"
	"kitchen-copilot/pkg/jwt"
)

type Config struct {
	App               *fiber.App
	RoomHandler       handlers.RoomHandler
	IngredientHandler handlers.IngredientHandler
	ConstraintHandler handlers.ConstraintHandler
	RecipeHandler     handlers.RecipeHandler
	VoteHandler       handlers.VoteHandler
	EventHandler      handlers.EventHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Rooms()
	c.Ingredients()
	c.Recipes()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Rooms() {
	rooms := c.App.Group("/api/v1/rooms", c.Middleware.AuthMiddleware(c.JWTService))
	// room routes
	{
		rooms.Post("", c.RoomHandler.CreateRoom)
		rooms.Get("/:id", c.RoomHandler.GetRoom)
		rooms.Post("/:id/join", c.RoomHandler.JoinRoom)
		rooms.Get("/:id/participants", c.RoomHandler.GetParticipants)
		rooms.Post("/:id/invite", c.RoomHandler.InviteByEmail)
		rooms.Get("/:id/events", c.EventHandler.StreamRoomEvents)
	}

	// ingredients and constraints
	{
		rooms.Post("/:id/ingredients", c.IngredientHandler.AddIngredient)
		rooms.Post("/:id/ingredients/batch", c.IngredientHandler.AddIngredientsBatch)
		rooms.Post("/:id/ingredients/scan", c.IngredientHandler.ScanIngredients)
		rooms.Get("/:id/ingredients", c.IngredientHandler.GetIngredients)
		rooms.Patch("/:id/constraints", c.ConstraintHandler.UpdateConstraints)
		rooms.Get("/:id/constraints", c.ConstraintHandler.GetConstraints)
	}

	// generation and voting
	{
		rooms.Post("/:id/recipes/generate", c.RecipeHandler.GenerateRecipes)
		rooms.Get("/:id/recipes", c.RecipeHandler.GetRecipes)
		rooms.Post("/:id/select", c.RecipeHandler.SelectRecipe)
		rooms.Post("/:id/votes", c.VoteHandler.Vote)
		rooms.Get("/:id/votes", c.VoteHandler.GetRoomVotes)
		rooms.Get("/:id/leaderboard", c.VoteHandler.GetLeaderboard)
	}
}

func (c *Config) Ingredients() {
	ingredients := c.App.Group("/api/v1/ingredients", c.Middleware.AuthMiddleware(c.JWTService))
	ingredients.Delete("/:id", c.IngredientHandler.RemoveIngredient)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))
	recipes.Get("/:id", c.RecipeHandler.GetRecipe)
	recipes.Get("/:id/votes", c.VoteHandler.GetRecipeVotes)
}
