package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lead-insights/backend/internal/http/dto"
	"github.com/lead-insights/backend/internal/models"
	"github.com/lead-insights/backend/internal/services"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
	log             *zap.Logger
}

func NewCampaignHandler(campaignService *services.CampaignService, log *zap.Logger) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService, log: log}
}

func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	var req dto.CreateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	doc, msg, err := h.campaignService.Create(services.CampaignInput{
		CustomerID:  req.CustomerID,
		Name:        req.Name,
		Goal:        req.Goal,
		Mode:        req.Mode,
		Channels:    req.Channels,
		DailyBudget: req.DailyBudget,
		TargetCpa:   req.TargetCpa,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StateResponse{State: doc, Message: msg})
}

func (h *CampaignHandler) CampaignAction(c *fiber.Ctx) error {
	var req dto.CampaignActionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	doc, msg, err := h.campaignService.Action(c.Params("id"), req.Action)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.StateResponse{State: doc, Message: msg})
}

func (h *CampaignHandler) UpdateGuardrails(c *fiber.Ctx) error {
	var req dto.UpdateGuardrailsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	doc, msg, err := h.campaignService.UpdateGuardrails(models.Guardrails{
		BudgetCap:    req.BudgetCap,
		CpaCap:       req.CpaCap,
		PolicyGate:   req.PolicyGate,
		CreativeGate: req.CreativeGate,
		KillSwitch:   req.KillSwitch,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.StateResponse{State: doc, Message: msg})
}

func (h *CampaignHandler) Simulate(c *fiber.Ctx) error {
	doc, msg, err := h.campaignService.Simulate()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.StateResponse{State: doc, Message: msg})
}
