package models

// Retention caps for the persisted document.
const (
	MaxAdInputRuns = 120
	MaxCampaigns   = 200
	MaxPublishJobs = 300
	MaxAssets      = 300
)

// Integration holds one ad platform connection plus its masked credential.
type Integration struct {
	Connected   bool   `json:"connected"`
	AccountName string `json:"accountName"`
	AccountID   string `json:"accountId"`
	BusinessID  string `json:"businessId"`
	TokenMask   string `json:"tokenMask"`
	ConnectedAt string `json:"connectedAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// Integrations groups the supported platform connections.
type Integrations struct {
	Facebook Integration `json:"facebook"`
	Google   Integration `json:"google"`
}

// ByPlatform returns a pointer to the integration for a platform key, or nil.
func (i *Integrations) ByPlatform(platform string) *Integration {
	switch PlatformKey(platform) {
	case PlatformFacebook:
		return &i.Facebook
	case PlatformGoogle:
		return &i.Google
	}
	return nil
}

// MaskCredential keeps only the last four characters of a secret.
func MaskCredential(value string) string {
	raw := CleanText(value)
	if raw == "" {
		return ""
	}
	runes := []rune(raw)
	tail := runes
	if len(runes) > 4 {
		tail = runes[len(runes)-4:]
	}
	return "••••" + string(tail)
}

// Document is the whole application state, persisted as one JSON file.
type Document struct {
	SelectedCustomerID string        `json:"selectedCustomerId"`
	Customers          []Customer    `json:"customers"`
	Guardrails         Guardrails    `json:"guardrails"`
	Campaigns          []Campaign    `json:"campaigns"`
	Assets             []Asset       `json:"assets"`
	AdInputRuns        []AdInputRun  `json:"adInputRuns"`
	Integrations       Integrations  `json:"integrations"`
	PublishJobs        []PublishJob  `json:"publishJobs"`
	Revision           int64         `json:"revision"`
}

// CustomerByID returns the customer with the given id, or nil.
func (d *Document) CustomerByID(id string) *Customer {
	for i := range d.Customers {
		if d.Customers[i].ID == id {
			return &d.Customers[i]
		}
	}
	return nil
}

// CampaignByID returns the campaign with the given id, or nil.
func (d *Document) CampaignByID(id string) *Campaign {
	for i := range d.Campaigns {
		if d.Campaigns[i].ID == id {
			return &d.Campaigns[i]
		}
	}
	return nil
}

// JobByID returns the publish job with the given id, or nil.
func (d *Document) JobByID(id string) *PublishJob {
	for i := range d.PublishJobs {
		if d.PublishJobs[i].ID == id {
			return &d.PublishJobs[i]
		}
	}
	return nil
}

// RunByID returns the generation run with the given id, or nil.
func (d *Document) RunByID(id string) *AdInputRun {
	for i := range d.AdInputRuns {
		if d.AdInputRuns[i].ID == id {
			return &d.AdInputRuns[i]
		}
	}
	return nil
}

// SeedDocument builds the demo state used when no store file exists yet.
func SeedDocument() *Document {
	return &Document{
		SelectedCustomerID: "cust-1",
		Customers: []Customer{
			{
				ID:                "cust-1",
				Name:              "Cobalt Care",
				Industry:          "Healthcare",
				Tier:              "Enterprise",
				Website:           "https://cobaltcare.example",
				Location:          "Florida",
				DefaultOffer:      "Free smile consultation",
				DefaultAudience:   "Adults 28-55 interested in cosmetic dentistry",
				DefaultLandingURL: "https://cobaltcare.example/consult",
				CustomerNotes:     "Avoid absolute medical claims. Keep tone confident and premium.",
			},
			{
				ID:       "cust-2",
				Name:     "Astera Retail",
				Industry: "Ecommerce",
				Tier:     "Growth",
				Website:  "https://asteraretail.example",
				Location: "United States",
			},
			{
				ID:       "cust-3",
				Name:     "Beacon Freight",
				Industry: "Logistics",
				Tier:     "Core",
				Website:  "https://beaconfreight.example",
				Location: "Texas",
			},
		},
		Guardrails: DefaultGuardrails(),
		Campaigns: []Campaign{
			{
				ID:          "cmp-1",
				CustomerID:  "cust-1",
				Name:        "Patient Enrollment Sprint",
				Goal:        "Lead Volume",
				Channels:    []string{ChannelFacebook, ChannelGoogle},
				DailyBudget: 900,
				TargetCpa:   88,
				Mode:        ModeHybrid,
				Stage:       StageOptimization,
				Risk:        RiskLow,
			},
			{
				ID:          "cmp-2",
				CustomerID:  "cust-2",
				Name:        "Founder VSL Offer Push",
				Goal:        "Booked Calls",
				Channels:    []string{ChannelFacebook},
				DailyBudget: 3000,
				TargetCpa:   130,
				Mode:        ModeAutopilot,
				Stage:       StageBlocked,
				Risk:        RiskHigh,
			},
		},
		Assets: []Asset{
			{
				ID:         "asset-1",
				CustomerID: "cust-1",
				Type:       "VSL",
				Notes:      "90 second founder VSL with compliance-safe claims",
			},
		},
		AdInputRuns: []AdInputRun{},
		PublishJobs: []PublishJob{},
	}
}
