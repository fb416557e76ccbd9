package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lead-insights/backend/internal/http/dto"
	"github.com/lead-insights/backend/internal/services"
)

type PublishHandler struct {
	publishService *services.PublishService
	log            *zap.Logger
}

func NewPublishHandler(publishService *services.PublishService, log *zap.Logger) *PublishHandler {
	return &PublishHandler{publishService: publishService, log: log}
}

func (h *PublishHandler) QueueJobs(c *fiber.Ctx) error {
	var req dto.QueuePublishJobsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	doc, jobs, msg, err := h.publishService.Queue(services.QueueInput{
		CustomerID: req.CustomerID,
		RunID:      req.RunID,
		OptionID:   req.OptionID,
		Platforms:  req.Platforms,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StateResponse{State: doc, Jobs: jobs, Message: msg})
}

func (h *PublishHandler) JobAction(c *fiber.Ctx) error {
	var req dto.PublishJobActionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	doc, msg, err := h.publishService.Action(c.Params("id"), req.Action, req.ExternalID, req.Reason)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.StateResponse{State: doc, Message: msg})
}
