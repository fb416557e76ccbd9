package dto

type SelectCustomerRequest struct {
	CustomerID string `json:"customerId"`
}

type CreateCustomerRequest struct {
	Name              string `json:"name"`
	Industry          string `json:"industry"`
	Tier              string `json:"tier"`
	Website           string `json:"website"`
	Location          string `json:"location"`
	DefaultOffer      string `json:"defaultOffer"`
	DefaultAudience   string `json:"defaultAudience"`
	DefaultLandingURL string `json:"defaultLandingUrl"`
	CustomerNotes     string `json:"customerNotes"`
}

type ConnectIntegrationRequest struct {
	AccountName string `json:"accountName"`
	AccountID   string `json:"accountId"`
	BusinessID  string `json:"businessId"`
	TokenHint   string `json:"tokenHint"`
}

type CreateAssetRequest struct {
	CustomerID string `json:"customerId"`
	Type       string `json:"type"`
	URL        string `json:"url"`
	Notes      string `json:"notes"`
}

type CreateCampaignRequest struct {
	CustomerID  string   `json:"customerId"`
	Name        string   `json:"name"`
	Goal        string   `json:"goal"`
	Mode        string   `json:"mode"`
	Channels    []string `json:"channels"`
	DailyBudget float64  `json:"dailyBudget"`
	TargetCpa   float64  `json:"targetCpa"`
}

type CampaignActionRequest struct {
	Action string `json:"action"`
}

type UpdateGuardrailsRequest struct {
	BudgetCap    float64 `json:"budgetCap"`
	CpaCap       float64 `json:"cpaCap"`
	PolicyGate   bool    `json:"policyGate"`
	CreativeGate bool    `json:"creativeGate"`
	KillSwitch   bool    `json:"killSwitch"`
}

type GenerateAdInputsRequest struct {
	CustomerID    string   `json:"customerId"`
	Channels      []string `json:"channels"`
	Objective     string   `json:"objective"`
	CTA           string   `json:"cta"`
	ArtifactName  string   `json:"artifactName"`
	ArtifactText  string   `json:"artifactText"`
	Offer         string   `json:"offer"`
	LandingURL    string   `json:"landingUrl"`
	Audience      string   `json:"audience"`
	StrategyNotes string   `json:"strategyNotes"`
	CustomInputs  string   `json:"customInputs"`
	CreativeType  string   `json:"creativeType"`
	CreativeURL   string   `json:"creativeUrl"`
}

type BuildCampaignsRequest struct {
	GenerateAdInputsRequest
	CampaignBaseName string  `json:"campaignBaseName"`
	Mode             string  `json:"mode"`
	DailyBudget      float64 `json:"dailyBudget"`
	TargetCpa        float64 `json:"targetCpa"`
}

type QueuePublishJobsRequest struct {
	CustomerID string   `json:"customerId"`
	RunID      string   `json:"runId"`
	OptionID   string   `json:"optionId"`
	Platforms  []string `json:"platforms"`
}

type PublishJobActionRequest struct {
	Action     string `json:"action"`
	ExternalID string `json:"externalId"`
	Reason     string `json:"reason"`
}
