package models

// Campaign stages. Stages form a forward-only sequence from Intake to Scale;
// Blocked is a side state reachable from any of them.
const (
	StageIntake       = "Intake"
	StageCreativeQA   = "Creative QA"
	StageLaunch       = "Launch"
	StageOptimization = "Optimization"
	StageScale        = "Scale"
	StageBlocked      = "Blocked"
)

// Risk tiers relative to guardrail caps.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// Campaign modes.
const (
	ModeHybrid    = "Hybrid"
	ModeAutopilot = "Autopilot"
)

// StageSequence is the forward order; Blocked sits outside it.
var StageSequence = []string{StageIntake, StageCreativeQA, StageLaunch, StageOptimization, StageScale}

// ActiveStages are the stages where a High-risk campaign gets force-blocked
// when the kill switch is on.
var ActiveStages = map[string]bool{
	StageLaunch:       true,
	StageOptimization: true,
	StageScale:        true,
}

func IsValidStage(stage string) bool {
	if stage == StageBlocked {
		return true
	}
	for _, s := range StageSequence {
		if s == stage {
			return true
		}
	}
	return false
}

// NextStage returns the stage one step forward. A Blocked campaign re-enters
// at Creative QA rather than resuming where it was blocked. Scale is the end
// of the forward sequence.
func NextStage(stage string) string {
	if stage == StageBlocked {
		return StageCreativeQA
	}
	for i, s := range StageSequence {
		if s == stage && i < len(StageSequence)-1 {
			return StageSequence[i+1]
		}
	}
	return stage
}

// Guardrails are the operator-configured thresholds read by risk
// classification and stage transitions.
type Guardrails struct {
	BudgetCap    float64 `json:"budgetCap"`
	CpaCap       float64 `json:"cpaCap"`
	PolicyGate   bool    `json:"policyGate"`
	CreativeGate bool    `json:"creativeGate"`
	KillSwitch   bool    `json:"killSwitch"`
}

// DefaultGuardrails returns the seed thresholds.
func DefaultGuardrails() Guardrails {
	return Guardrails{BudgetCap: 2500, CpaCap: 120, PolicyGate: true, CreativeGate: true, KillSwitch: true}
}

type Campaign struct {
	ID          string   `json:"id"`
	CustomerID  string   `json:"customerId"`
	Name        string   `json:"name"`
	Goal        string   `json:"goal"`
	Channels    []string `json:"channels"`
	DailyBudget float64  `json:"dailyBudget"`
	TargetCpa   float64  `json:"targetCpa"`
	Mode        string   `json:"mode"`
	Stage       string   `json:"stage"`
	Risk        string   `json:"risk"`
	AdRunID     string   `json:"adRunId,omitempty"`
	AdOptionID  string   `json:"adOptionId,omitempty"`
}

// RiskFor classifies a budget/CPA pair against the caps: High if either
// metric exceeds its cap, Medium above 80% of either cap, else Low.
func RiskFor(dailyBudget, targetCpa float64, g Guardrails) string {
	if dailyBudget > g.BudgetCap || targetCpa > g.CpaCap {
		return RiskHigh
	}
	if dailyBudget > g.BudgetCap*0.8 || targetCpa > g.CpaCap*0.8 {
		return RiskMedium
	}
	return RiskLow
}

// Reclassify recomputes the campaign's risk tier in place.
func (c *Campaign) Reclassify(g Guardrails) {
	c.Risk = RiskFor(c.DailyBudget, c.TargetCpa, g)
}

// Advance moves the campaign one stage forward (Blocked re-enters at
// Creative QA).
func (c *Campaign) Advance() {
	c.Stage = NextStage(c.Stage)
}

// ApplyCreationGates sets the starting stage for a freshly classified
// campaign: High risk with the kill switch on forces Blocked; Autopilot with
// the creative gate off jumps straight to Launch.
func (c *Campaign) ApplyCreationGates(g Guardrails) {
	if c.Risk == RiskHigh && g.KillSwitch {
		c.Stage = StageBlocked
		return
	}
	if c.Mode == ModeAutopilot && !g.CreativeGate {
		c.Stage = StageLaunch
	}
}
