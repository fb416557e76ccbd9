package services

import (
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/lead-insights/backend/internal/models"
	"github.com/lead-insights/backend/internal/store"
)

func newSeededStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(filepath.Join(t.TempDir(), "store.json"), zap.NewNop())
	if err := s.EnsureSeed(); err != nil {
		t.Fatalf("EnsureSeed: %v", err)
	}
	return s
}

func TestCreateCampaignAppliesGates(t *testing.T) {
	tests := []struct {
		name      string
		input     CampaignInput
		wantStage string
		wantMsg   string
	}{
		{
			name: "safe campaign starts at intake",
			input: CampaignInput{
				CustomerID: "cust-1", Name: "Safe Push",
				Channels: []string{models.ChannelFacebook}, DailyBudget: 500, TargetCpa: 60,
			},
			wantStage: models.StageIntake,
			wantMsg:   "Campaign created.",
		},
		{
			name: "over budget gets blocked by kill switch",
			input: CampaignInput{
				CustomerID: "cust-1", Name: "Risky Push",
				Channels: []string{models.ChannelFacebook}, DailyBudget: 5000, TargetCpa: 60,
			},
			wantStage: models.StageBlocked,
			wantMsg:   "Campaign blocked by guardrails.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCampaignService(newSeededStore(t), zap.NewNop())
			doc, msg, err := svc.Create(tt.input)
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if msg != tt.wantMsg {
				t.Errorf("message = %q, want %q", msg, tt.wantMsg)
			}
			if doc.Campaigns[0].Stage != tt.wantStage {
				t.Errorf("stage = %q, want %q", doc.Campaigns[0].Stage, tt.wantStage)
			}
			if doc.Campaigns[0].Name != tt.input.Name {
				t.Errorf("new campaign not at head of list")
			}
		})
	}
}

func TestCreateCampaignValidation(t *testing.T) {
	svc := NewCampaignService(newSeededStore(t), zap.NewNop())

	if _, _, err := svc.Create(CampaignInput{Name: "No Customer", Channels: []string{models.ChannelFacebook}}); err == nil {
		t.Error("missing customerId accepted")
	}
	if _, _, err := svc.Create(CampaignInput{CustomerID: "cust-1", Name: "No Channels"}); err == nil {
		t.Error("empty channels accepted")
	}
	if _, _, err := svc.Create(CampaignInput{CustomerID: "ghost", Name: "X", Channels: []string{models.ChannelFacebook}}); err == nil {
		t.Error("unknown customer accepted")
	}
}

func TestCampaignActions(t *testing.T) {
	svc := NewCampaignService(newSeededStore(t), zap.NewNop())

	doc, _, err := svc.Action("cmp-1", "advance")
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if got := doc.CampaignByID("cmp-1").Stage; got != models.StageScale {
		t.Errorf("advance from Optimization = %q, want Scale", got)
	}

	doc, _, err = svc.Action("cmp-1", "block")
	if err != nil {
		t.Fatalf("block: %v", err)
	}
	if got := doc.CampaignByID("cmp-1").Stage; got != models.StageBlocked {
		t.Errorf("block = %q, want Blocked", got)
	}

	doc, _, err = svc.Action("cmp-1", "advance")
	if err != nil {
		t.Fatalf("advance from blocked: %v", err)
	}
	if got := doc.CampaignByID("cmp-1").Stage; got != models.StageCreativeQA {
		t.Errorf("blocked campaign re-enters at %q, want Creative QA", got)
	}

	doc, _, err = svc.Action("cmp-1", "archive")
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if doc.CampaignByID("cmp-1") != nil {
		t.Error("archived campaign still present")
	}

	if _, _, err := svc.Action("cmp-2", "explode"); err == nil {
		t.Error("invalid action accepted")
	}
	if _, _, err := svc.Action("ghost", "advance"); err == nil {
		t.Error("unknown campaign accepted")
	}
}

func TestAutopilotActionMovesIntakeForward(t *testing.T) {
	svc := NewCampaignService(newSeededStore(t), zap.NewNop())
	doc, _, err := svc.Create(CampaignInput{
		CustomerID: "cust-1", Name: "Fresh",
		Channels: []string{models.ChannelFacebook}, DailyBudget: 100, TargetCpa: 20,
	})
	if err != nil {
		t.Fatal(err)
	}
	id := doc.Campaigns[0].ID

	doc, _, err = svc.Action(id, "autopilot")
	if err != nil {
		t.Fatalf("autopilot: %v", err)
	}
	c := doc.CampaignByID(id)
	if c.Mode != models.ModeAutopilot {
		t.Errorf("mode = %q, want Autopilot", c.Mode)
	}
	if c.Stage != models.StageCreativeQA {
		t.Errorf("stage = %q, want Creative QA", c.Stage)
	}
}

func TestUpdateGuardrailsForceBlocksActiveHighRisk(t *testing.T) {
	svc := NewCampaignService(newSeededStore(t), zap.NewNop())

	// cmp-1 is in Optimization with a 900/88 spend profile. A tighter cap
	// reclassifies it High and the kill switch pulls it out of rotation.
	doc, msg, err := svc.UpdateGuardrails(models.Guardrails{
		BudgetCap: 500, CpaCap: 50, KillSwitch: true, PolicyGate: true, CreativeGate: true,
	})
	if err != nil {
		t.Fatalf("UpdateGuardrails: %v", err)
	}
	if msg != "Guardrails updated." {
		t.Errorf("message = %q", msg)
	}

	c := doc.CampaignByID("cmp-1")
	if c.Risk != models.RiskHigh {
		t.Errorf("risk = %q, want High", c.Risk)
	}
	if c.Stage != models.StageBlocked {
		t.Errorf("stage = %q, want Blocked", c.Stage)
	}
}

func TestUpdateGuardrailsWithoutKillSwitchLeavesStages(t *testing.T) {
	svc := NewCampaignService(newSeededStore(t), zap.NewNop())

	doc, _, err := svc.UpdateGuardrails(models.Guardrails{
		BudgetCap: 500, CpaCap: 50, KillSwitch: false,
	})
	if err != nil {
		t.Fatal(err)
	}

	c := doc.CampaignByID("cmp-1")
	if c.Risk != models.RiskHigh {
		t.Errorf("risk = %q, want High", c.Risk)
	}
	if c.Stage != models.StageOptimization {
		t.Errorf("stage = %q, want Optimization", c.Stage)
	}
}

func TestSimulateCycle(t *testing.T) {
	svc := NewCampaignService(newSeededStore(t), zap.NewNop())

	// Seed data: cmp-1 Optimization/Low advances to Scale; cmp-2 Blocked
	// stays put while the kill switch is on.
	doc, msg, err := svc.Simulate()
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if !strings.Contains(msg, "1 advanced") {
		t.Errorf("message = %q, want 1 advanced", msg)
	}
	if got := doc.CampaignByID("cmp-1").Stage; got != models.StageScale {
		t.Errorf("cmp-1 stage = %q, want Scale", got)
	}
	if got := doc.CampaignByID("cmp-2").Stage; got != models.StageBlocked {
		t.Errorf("cmp-2 stage = %q, want Blocked", got)
	}
}

func TestSimulateReleasesBlockedWhenKillSwitchOff(t *testing.T) {
	svc := NewCampaignService(newSeededStore(t), zap.NewNop())
	if _, _, err := svc.UpdateGuardrails(models.Guardrails{
		BudgetCap: models.DefaultGuardrails().BudgetCap,
		CpaCap:    models.DefaultGuardrails().CpaCap,
		KillSwitch: false,
	}); err != nil {
		t.Fatal(err)
	}

	doc, _, err := svc.Simulate()
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.CampaignByID("cmp-2").Stage; got != models.StageCreativeQA {
		t.Errorf("released stage = %q, want Creative QA", got)
	}
}
