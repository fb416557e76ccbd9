package services

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lead-insights/backend/internal/models"
	"github.com/lead-insights/backend/internal/store"
)

// CampaignService drives the campaign lifecycle: creation gates, operator
// actions, guardrail updates, and the simulation cycle.
type CampaignService struct {
	store *store.Store
	log   *zap.Logger
}

func NewCampaignService(store *store.Store, log *zap.Logger) *CampaignService {
	return &CampaignService{store: store, log: log}
}

// CampaignInput carries the fields accepted when creating a campaign
// directly.
type CampaignInput struct {
	CustomerID  string
	Name        string
	Goal        string
	Mode        string
	Channels    []string
	DailyBudget float64
	TargetCpa   float64
}

// Create classifies a new campaign against the guardrails and applies the
// creation gates before inserting it at the head of the list.
func (s *CampaignService) Create(in CampaignInput) (*models.Document, string, error) {
	customerID := models.CleanText(in.CustomerID)
	name := models.CleanText(in.Name)
	if name == "" || customerID == "" {
		return nil, "", invalid("customerId and name are required.")
	}
	channels := models.FilterChannels(in.Channels)
	if len(channels) == 0 {
		return nil, "", invalid("At least one channel is required.")
	}

	var blocked bool
	doc, err := s.store.Update(func(doc *models.Document) error {
		if doc.CustomerByID(customerID) == nil {
			return notFound("Customer not found.")
		}

		campaign := models.Campaign{
			ID:          models.NewID("cmp"),
			CustomerID:  customerID,
			Name:        name,
			Goal:        defaultValue(in.Goal, "Lead Volume"),
			Channels:    channels,
			DailyBudget: in.DailyBudget,
			TargetCpa:   in.TargetCpa,
			Mode:        defaultValue(in.Mode, models.ModeHybrid),
			Stage:       models.StageIntake,
			Risk:        models.RiskLow,
		}
		campaign.Reclassify(doc.Guardrails)
		campaign.ApplyCreationGates(doc.Guardrails)
		blocked = campaign.Stage == models.StageBlocked

		doc.Campaigns = append([]models.Campaign{campaign}, doc.Campaigns...)
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	message := "Campaign created."
	if blocked {
		message = "Campaign blocked by guardrails."
	}
	s.log.Info("campaign created", zap.String("name", name), zap.Bool("blocked", blocked))
	return doc, message, nil
}

// Action applies one operator action to a campaign. Every campaign is
// reclassified afterwards so a guardrail change never leaves stale risk.
func (s *CampaignService) Action(campaignID, action string) (*models.Document, string, error) {
	action = strings.ToLower(models.CleanText(action))

	doc, err := s.store.Update(func(doc *models.Document) error {
		campaign := doc.CampaignByID(campaignID)
		if campaign == nil {
			return notFound("Campaign not found.")
		}

		switch action {
		case "advance":
			campaign.Advance()
		case "block":
			campaign.Stage = models.StageBlocked
			campaign.Risk = models.RiskHigh
		case "autopilot":
			campaign.Mode = models.ModeAutopilot
			if campaign.Stage == models.StageIntake {
				campaign.Stage = models.StageCreativeQA
			}
		case "archive":
			kept := doc.Campaigns[:0]
			for _, entry := range doc.Campaigns {
				if entry.ID != campaignID {
					kept = append(kept, entry)
				}
			}
			doc.Campaigns = kept
		default:
			return invalid("Invalid action.")
		}

		for i := range doc.Campaigns {
			doc.Campaigns[i].Reclassify(doc.Guardrails)
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return doc, "Campaign updated.", nil
}

// UpdateGuardrails replaces the guardrails, reclassifies everything, and
// force-blocks any active High-risk campaign while the kill switch is on.
func (s *CampaignService) UpdateGuardrails(next models.Guardrails) (*models.Document, string, error) {
	doc, err := s.store.Update(func(doc *models.Document) error {
		if next.BudgetCap <= 0 {
			next.BudgetCap = doc.Guardrails.BudgetCap
		}
		if next.CpaCap <= 0 {
			next.CpaCap = doc.Guardrails.CpaCap
		}
		doc.Guardrails = next

		for i := range doc.Campaigns {
			c := &doc.Campaigns[i]
			c.Reclassify(doc.Guardrails)
			if doc.Guardrails.KillSwitch && c.Risk == models.RiskHigh && models.ActiveStages[c.Stage] {
				c.Stage = models.StageBlocked
			}
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	s.log.Info("guardrails updated",
		zap.Float64("budgetCap", next.BudgetCap),
		zap.Float64("cpaCap", next.CpaCap),
		zap.Bool("killSwitch", next.KillSwitch))
	return doc, "Guardrails updated.", nil
}

// Simulate runs one lifecycle cycle: non-blocked campaigns advance and are
// reclassified, active High-risk campaigns get force-blocked, and blocked
// campaigns re-enter Creative QA only while the kill switch is off.
func (s *CampaignService) Simulate() (*models.Document, string, error) {
	var progressed, blocked int

	doc, err := s.store.Update(func(doc *models.Document) error {
		for i := range doc.Campaigns {
			c := &doc.Campaigns[i]
			if c.Stage == models.StageBlocked {
				if !doc.Guardrails.KillSwitch {
					c.Stage = models.StageCreativeQA
				}
				continue
			}

			c.Advance()
			progressed++

			c.Reclassify(doc.Guardrails)
			if doc.Guardrails.KillSwitch && c.Risk == models.RiskHigh && models.ActiveStages[c.Stage] {
				c.Stage = models.StageBlocked
				blocked++
			}
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	return doc, fmt.Sprintf("Cycle complete: %d advanced, %d blocked by guardrails.", progressed, blocked), nil
}

func defaultValue(value, fallback string) string {
	if cleaned := models.CleanText(value); cleaned != "" {
		return cleaned
	}
	return fallback
}
