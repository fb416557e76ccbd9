package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lead-insights/backend/internal/config"
	"github.com/lead-insights/backend/internal/http/handlers"
	"github.com/lead-insights/backend/internal/middleware"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	stateHandler *handlers.StateHandler,
	accountHandler *handlers.AccountHandler,
	campaignHandler *handlers.CampaignHandler,
	generationHandler *handlers.GenerationHandler,
	publishHandler *handlers.PublishHandler,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	api := app.Group("/api")
	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMin, time.Minute))

	api.Get("/health", stateHandler.Health)
	api.Get("/state", stateHandler.GetState)

	// Customers and selection
	api.Post("/customers", accountHandler.CreateCustomer)
	api.Patch("/selection", accountHandler.SelectCustomer)

	// Platform integrations
	api.Post("/integrations/:platform/connect", accountHandler.ConnectIntegration)
	api.Post("/integrations/:platform/disconnect", accountHandler.DisconnectIntegration)

	// Assets
	api.Post("/assets", accountHandler.CreateAsset)

	// Campaign lifecycle
	api.Post("/campaigns", campaignHandler.CreateCampaign)
	api.Post("/campaigns/build", generationHandler.BuildCampaigns)
	api.Post("/campaigns/:id/action", campaignHandler.CampaignAction)
	api.Put("/guardrails", campaignHandler.UpdateGuardrails)
	api.Post("/simulate", campaignHandler.Simulate)

	// Generation
	api.Post("/ad-inputs/generate", generationHandler.GenerateAdInputs)

	// Publish queue
	api.Post("/publish/jobs", publishHandler.QueueJobs)
	api.Post("/publish/jobs/:id/action", publishHandler.JobAction)
}
