package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/lead-insights/backend/internal/generation"
	"github.com/lead-insights/backend/internal/models"
	"github.com/lead-insights/backend/internal/store"
)

// GenerationService runs the generator against a customer brief and persists
// the resulting run, optionally building one campaign per option.
type GenerationService struct {
	store     *store.Store
	generator *generation.Generator
	log       *zap.Logger
}

func NewGenerationService(store *store.Store, generator *generation.Generator, log *zap.Logger) *GenerationService {
	return &GenerationService{store: store, generator: generator, log: log}
}

// GenerateInput carries the fields shared by generate and build requests.
type GenerateInput struct {
	CustomerID    string
	Channels      []string
	Objective     string
	CTA           string
	ArtifactName  string
	ArtifactText  string
	Offer         string
	LandingURL    string
	Audience      string
	StrategyNotes string
	CustomInputs  string
	CreativeType  string
	CreativeURL   string
}

// BuildInput extends GenerateInput with the campaign fields used when one
// campaign is created per generated option.
type BuildInput struct {
	GenerateInput
	CampaignBaseName string
	Mode             string
	DailyBudget      float64
	TargetCpa        float64
}

// Generate produces ad options for a customer and persists them as a run.
func (s *GenerationService) Generate(ctx context.Context, in GenerateInput) (*models.Document, *models.AdInputRun, string, error) {
	customerID := models.CleanText(in.CustomerID)
	if customerID == "" {
		return nil, nil, "", invalid("customerId is required.")
	}
	channels := models.FilterChannels(in.Channels)
	if len(channels) == 0 {
		return nil, nil, "", invalid("Select at least one channel.")
	}

	var (
		run          models.AdInputRun
		customerName string
	)
	doc, err := s.store.Update(func(doc *models.Document) error {
		customer := doc.CustomerByID(customerID)
		if customer == nil {
			return notFound("Customer not found.")
		}
		customerName = customer.Name

		built, err := s.runGeneration(ctx, customer, channels, in)
		if err != nil {
			return err
		}
		run = built

		doc.AdInputRuns = append([]models.AdInputRun{run}, doc.AdInputRuns...)
		doc.SelectedCustomerID = customerID
		return nil
	})
	if err != nil {
		return nil, nil, "", err
	}

	message := fmt.Sprintf("Generated %d ad input packs for %s.", len(run.Options), customerName)
	return doc, &run, message, nil
}

// Build generates options and creates one campaign per option, splitting the
// requested daily budget evenly across them.
func (s *GenerationService) Build(ctx context.Context, in BuildInput) (*models.Document, *models.AdInputRun, string, error) {
	customerID := models.CleanText(in.CustomerID)
	if customerID == "" {
		return nil, nil, "", invalid("customerId is required.")
	}
	baseName := models.CleanText(in.CampaignBaseName)
	if baseName == "" {
		return nil, nil, "", invalid("campaignBaseName is required.")
	}
	channels := models.FilterChannels(in.Channels)
	if len(channels) == 0 {
		return nil, nil, "", invalid("Select at least one channel.")
	}

	var (
		run     models.AdInputRun
		created int
	)
	doc, err := s.store.Update(func(doc *models.Document) error {
		customer := doc.CustomerByID(customerID)
		if customer == nil {
			return notFound("Customer not found.")
		}

		built, err := s.runGeneration(ctx, customer, channels, in.GenerateInput)
		if err != nil {
			return err
		}
		run = built

		doc.AdInputRuns = append([]models.AdInputRun{run}, doc.AdInputRuns...)

		budget := in.DailyBudget
		if budget <= 0 || math.IsNaN(budget) {
			budget = 300
		}
		if budget < 50 {
			budget = 50
		}
		perCampaign := math.Round(budget / float64(len(run.Options)))
		if perCampaign < 50 {
			perCampaign = 50
		}
		targetCpa := in.TargetCpa
		if targetCpa <= 0 || math.IsNaN(targetCpa) {
			targetCpa = 75
		}
		if targetCpa < 1 {
			targetCpa = 1
		}
		mode := defaultValue(in.Mode, models.ModeHybrid)

		campaigns := make([]models.Campaign, 0, len(run.Options))
		for _, option := range run.Options {
			campaign := models.Campaign{
				ID:          models.NewID("cmp"),
				CustomerID:  customerID,
				Name:        models.Truncate(baseName+" | "+option.Label, 160),
				Goal:        run.Objective,
				Channels:    append([]string{}, channels...),
				DailyBudget: perCampaign,
				TargetCpa:   targetCpa,
				Mode:        mode,
				Stage:       models.StageIntake,
				Risk:        models.RiskLow,
				AdRunID:     run.ID,
				AdOptionID:  option.ID,
			}
			campaign.Reclassify(doc.Guardrails)
			campaign.ApplyCreationGates(doc.Guardrails)
			campaigns = append(campaigns, campaign)
		}
		created = len(campaigns)
		doc.Campaigns = append(campaigns, doc.Campaigns...)
		doc.SelectedCustomerID = customerID
		return nil
	})
	if err != nil {
		return nil, nil, "", err
	}

	message := fmt.Sprintf("Generated %d ad input packs and created %d campaigns.", len(run.Options), created)
	s.log.Info("campaigns built from generation run",
		zap.String("runId", run.ID),
		zap.Int("campaigns", created))
	return doc, &run, message, nil
}

// runGeneration resolves customer defaults into the brief, invokes the
// generator, and assembles the persisted run record.
func (s *GenerationService) runGeneration(ctx context.Context, customer *models.Customer, channels []string, in GenerateInput) (models.AdInputRun, error) {
	offer := models.CleanText(in.Offer)
	if offer == "" {
		offer = customer.DefaultOffer
	}
	landingURL := models.CleanText(in.LandingURL)
	if landingURL == "" {
		landingURL = customer.DefaultLandingURL
	}
	if landingURL == "" {
		landingURL = customer.Website
	}
	audience := models.CleanText(in.Audience)
	if audience == "" {
		audience = customer.DefaultAudience
	}
	strategyNotes := joinNonEmpty(" | ", customer.CustomerNotes, models.CleanText(in.StrategyNotes))
	customInputs := mergeCustomInputs(customer, in.CustomInputs)

	artifactText := generation.FlattenArtifactHTML(in.ArtifactText)
	brief := generation.BuildContext(generation.ContextInput{
		Objective:        in.Objective,
		CTA:              in.CTA,
		CustomerName:     customer.Name,
		CustomerIndustry: customer.Industry,
		CustomerTier:     customer.Tier,
		CustomerLocation: customer.Location,
		CustomerNotes:    customer.CustomerNotes,
		ArtifactName:     in.ArtifactName,
		ArtifactText:     artifactText,
		Offer:            offer,
		LandingURL:       landingURL,
		Audience:         audience,
		StrategyNotes:    strategyNotes,
		CustomInputs:     customInputs,
		CreativeType:     in.CreativeType,
		CreativeURL:      in.CreativeURL,
	})

	options, source, err := s.generator.Generate(ctx, channels, brief)
	if err != nil {
		return models.AdInputRun{}, invalid(err.Error())
	}
	s.log.Info("ad options generated",
		zap.String("customer", customer.Name),
		zap.String("source", source),
		zap.Int("options", len(options)))

	return models.AdInputRun{
		ID:            models.NewID("run"),
		CustomerID:    customer.ID,
		Channels:      channels,
		Objective:     brief.Objective,
		CTA:           brief.CTA,
		ArtifactName:  brief.ArtifactName,
		Offer:         generation.InferOffer(offer, artifactText),
		LandingURL:    brief.LandingURL,
		Audience:      audience,
		StrategyNotes: strategyNotes,
		CustomInputs:  customInputs,
		CreativeType:  models.NormalizeCreativeType(in.CreativeType),
		CreativeURL:   models.CleanText(in.CreativeURL),
		CreatedAt:     time.Now().UTC(),
		Options:       options,
	}, nil
}

// mergeCustomInputs folds the customer profile into the request's custom
// inputs: a blank request gets the profile alone, JSON-object input is merged
// over the profile, and plain prose passes through untouched.
func mergeCustomInputs(customer *models.Customer, raw string) string {
	profile := map[string]any{}
	if customer.Industry != "" {
		profile["industry"] = customer.Industry
	}
	if customer.Tier != "" {
		profile["tier"] = customer.Tier
	}
	if customer.Location != "" {
		profile["location"] = customer.Location
	}
	if customer.Website != "" {
		profile["website"] = customer.Website
	}

	trimmed := models.CleanText(raw)
	if trimmed == "" {
		if len(profile) == 0 {
			return ""
		}
		encoded, err := json.Marshal(profile)
		if err != nil {
			return ""
		}
		return string(encoded)
	}

	parsed := map[string]any{}
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return trimmed
	}
	for key, value := range parsed {
		profile[key] = value
	}
	encoded, err := json.Marshal(profile)
	if err != nil {
		return trimmed
	}
	return string(encoded)
}

func joinNonEmpty(sep string, parts ...string) string {
	joined := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		if joined != "" {
			joined += sep
		}
		joined += part
	}
	return joined
}
