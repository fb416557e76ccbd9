package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lead-insights/backend/internal/config"
	"github.com/lead-insights/backend/internal/db"
	"github.com/lead-insights/backend/internal/generation"
	apphttp "github.com/lead-insights/backend/internal/http"
	"github.com/lead-insights/backend/internal/http/handlers"
	"github.com/lead-insights/backend/internal/services"
	"github.com/lead-insights/backend/internal/store"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Store
	st := store.New(cfg.StorePath, log)
	if err := st.EnsureSeed(); err != nil {
		log.Fatal("failed to initialize store", zap.Error(err))
	}

	// Redis (optional, rate limiting only)
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		client, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		rdb = client
	}

	// Generation
	openAIClient := generation.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.OpenAIAPIKey, cfg.OpenAITimeout, log)
	generator := generation.NewGenerator(openAIClient, cfg.OpenAIAllowFallback, log)

	// Services
	accountService := services.NewAccountService(st, log)
	campaignService := services.NewCampaignService(st, log)
	generationService := services.NewGenerationService(st, generator, log)
	publishService := services.NewPublishService(st, log)

	// Handlers
	stateHandler := handlers.NewStateHandler(st, cfg, log)
	accountHandler := handlers.NewAccountHandler(accountService, log)
	campaignHandler := handlers.NewCampaignHandler(campaignService, log)
	generationHandler := handlers.NewGenerationHandler(generationService, log)
	publishHandler := handlers.NewPublishHandler(publishService, log)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, stateHandler, accountHandler, campaignHandler, generationHandler, publishHandler)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
