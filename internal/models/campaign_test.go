package models

import "testing"

func TestNextStage(t *testing.T) {
	tests := []struct {
		from string
		want string
	}{
		{StageIntake, StageCreativeQA},
		{StageCreativeQA, StageLaunch},
		{StageLaunch, StageOptimization},
		{StageOptimization, StageScale},
		{StageScale, StageScale},
		{StageBlocked, StageCreativeQA},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.want, func(t *testing.T) {
			if got := NextStage(tt.from); got != tt.want {
				t.Errorf("NextStage(%q) = %q, want %q", tt.from, got, tt.want)
			}
		})
	}
}

func TestRiskFor(t *testing.T) {
	g := Guardrails{BudgetCap: 1000, CpaCap: 100}

	tests := []struct {
		name   string
		budget float64
		cpa    float64
		want   string
	}{
		{"well under caps", 500, 50, RiskLow},
		{"at 80 percent", 800, 80, RiskLow},
		{"budget over 80 percent", 801, 50, RiskMedium},
		{"cpa over 80 percent", 500, 81, RiskMedium},
		{"at caps", 1000, 100, RiskMedium},
		{"budget over cap", 1001, 50, RiskHigh},
		{"cpa over cap", 500, 101, RiskHigh},
		{"both over cap", 2000, 200, RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RiskFor(tt.budget, tt.cpa, g); got != tt.want {
				t.Errorf("RiskFor(%v, %v) = %q, want %q", tt.budget, tt.cpa, got, tt.want)
			}
		})
	}
}

func TestApplyCreationGates(t *testing.T) {
	tests := []struct {
		name      string
		campaign  Campaign
		guard     Guardrails
		wantStage string
	}{
		{
			name:      "high risk with kill switch blocks",
			campaign:  Campaign{Stage: StageIntake, Risk: RiskHigh, Mode: ModeAutopilot},
			guard:     Guardrails{KillSwitch: true},
			wantStage: StageBlocked,
		},
		{
			name:      "high risk without kill switch passes",
			campaign:  Campaign{Stage: StageIntake, Risk: RiskHigh, Mode: ModeHybrid},
			guard:     Guardrails{KillSwitch: false},
			wantStage: StageIntake,
		},
		{
			name:      "autopilot skips to launch when creative gate off",
			campaign:  Campaign{Stage: StageIntake, Risk: RiskLow, Mode: ModeAutopilot},
			guard:     Guardrails{CreativeGate: false},
			wantStage: StageLaunch,
		},
		{
			name:      "autopilot held by creative gate",
			campaign:  Campaign{Stage: StageIntake, Risk: RiskLow, Mode: ModeAutopilot},
			guard:     Guardrails{CreativeGate: true},
			wantStage: StageIntake,
		},
		{
			name:      "hybrid stays at intake",
			campaign:  Campaign{Stage: StageIntake, Risk: RiskMedium, Mode: ModeHybrid},
			guard:     Guardrails{KillSwitch: true, CreativeGate: false},
			wantStage: StageIntake,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.campaign
			c.ApplyCreationGates(tt.guard)
			if c.Stage != tt.wantStage {
				t.Errorf("stage = %q, want %q", c.Stage, tt.wantStage)
			}
		})
	}
}

func TestIsValidStage(t *testing.T) {
	for _, stage := range append(append([]string{}, StageSequence...), StageBlocked) {
		if !IsValidStage(stage) {
			t.Errorf("IsValidStage(%q) = false", stage)
		}
	}
	if IsValidStage("Paused") {
		t.Error("IsValidStage accepted an unknown stage")
	}
}
