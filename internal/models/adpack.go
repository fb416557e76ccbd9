package models

import "time"

// Publish channels accepted on generation requests.
const (
	ChannelFacebook = "Facebook"
	ChannelGoogle   = "Google"
)

// FilterChannels keeps only the recognized channel names, preserving order.
func FilterChannels(channels []string) []string {
	out := make([]string, 0, len(channels))
	for _, ch := range channels {
		if ch == ChannelFacebook || ch == ChannelGoogle {
			out = append(out, ch)
		}
	}
	return out
}

// NormalizeCreativeType coerces any input to the creative-type enum; anything
// other than "video" is image.
func NormalizeCreativeType(value string) string {
	if CleanText(value) == "video" {
		return "video"
	}
	return "image"
}

// FacebookPack is the sanitized field set for one Facebook ad draft.
type FacebookPack struct {
	CampaignName   string `json:"campaignName"`
	Objective      string `json:"objective"`
	AdSetAudience  string `json:"adSetAudience"`
	Placements     string `json:"placements"`
	PrimaryText    string `json:"primaryText"`
	Headline       string `json:"headline"`
	Description    string `json:"description"`
	CTA            string `json:"cta"`
	DestinationURL string `json:"destinationUrl"`
	CreativeType   string `json:"creativeType"`
	MediaURL       string `json:"mediaUrl"`
}

// GooglePack is the sanitized field set for one Google Search ad draft.
type GooglePack struct {
	CampaignName   string   `json:"campaignName"`
	CampaignType   string   `json:"campaignType"`
	FinalURL       string   `json:"finalUrl"`
	Path1          string   `json:"path1"`
	Path2          string   `json:"path2"`
	Headlines      []string `json:"headlines"`
	Descriptions   []string `json:"descriptions"`
	Keywords       []string `json:"keywords"`
	AudienceSignal string   `json:"audienceSignal"`
}

// AdOption is one generated campaign angle. Platform packs are present only
// for the channels the run requested.
type AdOption struct {
	ID        string        `json:"id"`
	Label     string        `json:"label"`
	Rationale string        `json:"rationale"`
	Facebook  *FacebookPack `json:"facebook,omitempty"`
	Google    *GooglePack   `json:"google,omitempty"`
}

// AdInputRun is one generation request's persisted context, channels, and
// resulting options.
type AdInputRun struct {
	ID            string     `json:"id"`
	CustomerID    string     `json:"customerId"`
	Channels      []string   `json:"channels"`
	Objective     string     `json:"objective"`
	CTA           string     `json:"cta"`
	ArtifactName  string     `json:"artifactName"`
	Offer         string     `json:"offer"`
	LandingURL    string     `json:"landingUrl"`
	Audience      string     `json:"audience"`
	StrategyNotes string     `json:"strategyNotes"`
	CustomInputs  string     `json:"customInputs"`
	CreativeType  string     `json:"creativeType"`
	CreativeURL   string     `json:"creativeUrl"`
	CreatedAt     time.Time  `json:"createdAt"`
	Options       []AdOption `json:"options"`
}
