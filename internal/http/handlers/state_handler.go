package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lead-insights/backend/internal/config"
	"github.com/lead-insights/backend/internal/http/dto"
	"github.com/lead-insights/backend/internal/store"
)

type StateHandler struct {
	store *store.Store
	cfg   *config.Config
	log   *zap.Logger
}

func NewStateHandler(store *store.Store, cfg *config.Config, log *zap.Logger) *StateHandler {
	return &StateHandler{store: store, cfg: cfg, log: log}
}

func (h *StateHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		OK:                    true,
		Service:               "lead-insights-backend",
		OpenAIConfigured:      h.cfg.OpenAIAPIKey != "",
		OpenAIFallbackEnabled: h.cfg.OpenAIAllowFallback,
		Model:                 h.cfg.OpenAIModel,
	})
}

func (h *StateHandler) GetState(c *fiber.Ctx) error {
	doc, err := h.store.Load()
	if err != nil {
		h.log.Error("load state failed", zap.Error(err))
		return serviceError(c, err)
	}
	return c.JSON(dto.StateResponse{State: doc})
}
