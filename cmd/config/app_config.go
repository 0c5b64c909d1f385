package config

import (
	"context"
	"fmt"
	"kitchen-copilot/internal/api/handlers"
	"kitchen-copilot/internal/api/routes"
	"kitchen-copilot/internal/middleware"
	"kitchen-copilot/internal/utils"
	"kitchen-copilot/internal/utils/mailing"
	"kitchen-copilot/internal/utils/storage"
	"kitchen-copilot/pkg/constraint"
	"kitchen-copilot/pkg/ingredient"
	"kitchen-copilot/pkg/jwt"
	"kitchen-copilot/pkg/llm"
	"kitchen-copilot/pkg/realtime"
	"kitchen-copilot/pkg/recipe"
	"kitchen-copilot/pkg/room"
	"kitchen-copilot/pkg/vote"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewApp wires every client, service and handler once for the lifetime of
// the process. ctx bounds background work such as the redis relay.
func NewApp(ctx context.Context, db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		// Recipe generation waits on the model.
		WriteTimeout: 0,
		ReadTimeout:  30 * time.Second,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3, err := storage.NewAwsS3(ctx, storage.S3Config{
		Bucket:    utils.GetConfig("AWS_S3_BUCKET"),
		Region:    utils.GetConfig("AWS_S3_REGION"),
		AccessKey: utils.GetConfig("AWS_ACCESS_KEY"),
		SecretKey: utils.GetConfig("AWS_SECRET_KEY"),
	})
	if err != nil {
		return nil, fmt.Errorf("error creating s3 client: %w", err)
	}
	mailer := mailing.NewMailer(mailing.LoadMailConfig())

	generator, err := llm.New(ctx, llm.Config{
		Provider: utils.GetConfig("LLM_PROVIDER"),
		Gemini: llm.GeminiConfig{
			APIKey: utils.GetConfig("GEMINI_API_KEY"),
			Model:  utils.GetConfig("GEMINI_MODEL"),
		},
		OpenAI: llm.OpenAIConfig{
			APIKey:  utils.GetConfig("OPENAI_API_KEY"),
			BaseURL: utils.GetConfig("OPENAI_BASE_URL"),
			Model:   utils.GetConfig("OPENAI_MODEL"),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating llm client: %w", err)
	}

	hub := realtime.NewHub()
	publisher, err := newPublisher(ctx, hub)
	if err != nil {
		return nil, err
	}

	// Repository
	roomRepository := room.NewRoomRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)
	constraintRepository := constraint.NewConstraintRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	voteRepository := vote.NewVoteRepository(db)

	// Service
	jwtService := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"), utils.GetConfig("JWT_ISSUER"))
	roomService := room.NewRoomService(roomRepository, publisher, mailer, utils.GetConfig("APP_URL"))
	ingredientService := ingredient.NewIngredientService(ingredientRepository, roomRepository, publisher, s3, generator)
	constraintService := constraint.NewConstraintService(constraintRepository, roomRepository, publisher)
	recipeService := recipe.NewRecipeService(
		recipeRepository,
		roomRepository,
		ingredientRepository,
		constraintRepository,
		generator,
		publisher,
	)
	voteService := vote.NewVoteService(voteRepository, roomRepository, recipeRepository, publisher)

	// Handler
	roomHandler := handlers.NewRoomHandler(roomService, validator)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService, validator)
	constraintHandler := handlers.NewConstraintHandler(constraintService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	voteHandler := handlers.NewVoteHandler(voteService, validator)
	eventHandler := handlers.NewEventHandler(roomService, hub)

	// routes
	routesConfig := routes.Config{
		App:               app,
		RoomHandler:       roomHandler,
		IngredientHandler: ingredientHandler,
		ConstraintHandler: constraintHandler,
		RecipeHandler:     recipeHandler,
		VoteHandler:       voteHandler,
		EventHandler:      eventHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

// newPublisher fans room events out through redis when REDIS_ADDR is set and
// through the in-process hub otherwise.
func newPublisher(ctx context.Context, hub *realtime.Hub) (realtime.Publisher, error) {
	addr := utils.GetConfig("REDIS_ADDR")
	if addr == "" {
		return hub, nil
	}

	redisDB, err := strconv.Atoi(utils.GetConfigDefault("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: utils.GetConfig("REDIS_PASSWORD"),
		DB:       redisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}

	broker := realtime.NewRedisBroker(client, hub)
	go broker.Run(ctx)
	log.Infow("room events relayed through redis", "addr", addr)
	return broker, nil
}
