package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lead-insights/backend/internal/http/dto"
	"github.com/lead-insights/backend/internal/services"
)

type AccountHandler struct {
	accountService *services.AccountService
	log            *zap.Logger
}

func NewAccountHandler(accountService *services.AccountService, log *zap.Logger) *AccountHandler {
	return &AccountHandler{accountService: accountService, log: log}
}

func (h *AccountHandler) CreateCustomer(c *fiber.Ctx) error {
	var req dto.CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	doc, msg, err := h.accountService.CreateCustomer(services.CustomerInput{
		Name:              req.Name,
		Industry:          req.Industry,
		Tier:              req.Tier,
		Website:           req.Website,
		Location:          req.Location,
		DefaultOffer:      req.DefaultOffer,
		DefaultAudience:   req.DefaultAudience,
		DefaultLandingURL: req.DefaultLandingURL,
		CustomerNotes:     req.CustomerNotes,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.StateResponse{State: doc, Message: msg})
}

func (h *AccountHandler) SelectCustomer(c *fiber.Ctx) error {
	var req dto.SelectCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	doc, msg, err := h.accountService.SelectCustomer(req.CustomerID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.StateResponse{State: doc, Message: msg})
}

func (h *AccountHandler) ConnectIntegration(c *fiber.Ctx) error {
	var req dto.ConnectIntegrationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	doc, msg, err := h.accountService.ConnectIntegration(c.Params("platform"), services.IntegrationInput{
		AccountName: req.AccountName,
		AccountID:   req.AccountID,
		BusinessID:  req.BusinessID,
		TokenHint:   req.TokenHint,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.StateResponse{State: doc, Message: msg})
}

func (h *AccountHandler) DisconnectIntegration(c *fiber.Ctx) error {
	doc, msg, err := h.accountService.DisconnectIntegration(c.Params("platform"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.StateResponse{State: doc, Message: msg})
}

func (h *AccountHandler) CreateAsset(c *fiber.Ctx) error {
	var req dto.CreateAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	doc, msg, err := h.accountService.AddAsset(services.AssetInput{
		CustomerID: req.CustomerID,
		Type:       req.Type,
		URL:        req.URL,
		Notes:      req.Notes,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StateResponse{State: doc, Message: msg})
}
