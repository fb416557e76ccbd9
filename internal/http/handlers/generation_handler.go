package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lead-insights/backend/internal/http/dto"
	"github.com/lead-insights/backend/internal/services"
)

type GenerationHandler struct {
	generationService *services.GenerationService
	log               *zap.Logger
}

func NewGenerationHandler(generationService *services.GenerationService, log *zap.Logger) *GenerationHandler {
	return &GenerationHandler{generationService: generationService, log: log}
}

func generateInputFromRequest(req dto.GenerateAdInputsRequest) services.GenerateInput {
	return services.GenerateInput{
		CustomerID:    req.CustomerID,
		Channels:      req.Channels,
		Objective:     req.Objective,
		CTA:           req.CTA,
		ArtifactName:  req.ArtifactName,
		ArtifactText:  req.ArtifactText,
		Offer:         req.Offer,
		LandingURL:    req.LandingURL,
		Audience:      req.Audience,
		StrategyNotes: req.StrategyNotes,
		CustomInputs:  req.CustomInputs,
		CreativeType:  req.CreativeType,
		CreativeURL:   req.CreativeURL,
	}
}

func (h *GenerationHandler) GenerateAdInputs(c *fiber.Ctx) error {
	var req dto.GenerateAdInputsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	doc, run, msg, err := h.generationService.Generate(c.Context(), generateInputFromRequest(req))
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StateResponse{State: doc, Run: run, Message: msg})
}

func (h *GenerationHandler) BuildCampaigns(c *fiber.Ctx) error {
	var req dto.BuildCampaignsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	doc, run, msg, err := h.generationService.Build(c.Context(), services.BuildInput{
		GenerateInput:    generateInputFromRequest(req.GenerateAdInputsRequest),
		CampaignBaseName: req.CampaignBaseName,
		Mode:             req.Mode,
		DailyBudget:      req.DailyBudget,
		TargetCpa:        req.TargetCpa,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StateResponse{State: doc, Run: run, Message: msg})
}
