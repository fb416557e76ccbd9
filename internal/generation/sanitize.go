package generation

import (
	"fmt"

	"github.com/lead-insights/backend/internal/models"
)

// rawFacebookPack and rawGooglePack mirror the JSON shape the model is asked
// to emit. Sanitizers turn them into bounded, non-empty packs.
type rawFacebookPack struct {
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

type rawGooglePack struct {
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

type rawOption struct {
	Label     string           `json:"label"`
	Rationale string           `json:"rationale"`
	Facebook  *rawFacebookPack `json:"facebook"`
	Google    *rawGooglePack   `json:"google"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if cleaned := models.CleanText(v); cleaned != "" {
			return cleaned
		}
	}
	return ""
}

// SanitizeFacebookPack bounds every field of a model-produced Facebook pack,
// filling blanks from the rule-built fallback for the same label.
func SanitizeFacebookPack(src *rawFacebookPack, ctx Context, label string) *models.FacebookPack {
	if src == nil {
		src = &rawFacebookPack{}
	}
	fallback := buildFacebookPack(fallbackAngle(label, ctx), ctx)

	return &models.FacebookPack{
		CampaignName:   models.Truncate(firstNonEmpty(src.CampaignName, fallback.CampaignName), 80),
		Objective:      models.Truncate(firstNonEmpty(src.Objective, ctx.Objective), 30),
		AdSetAudience:  models.Truncate(firstNonEmpty(src.AdSetAudience, fallback.AdSetAudience), 170),
		Placements:     models.Truncate(firstNonEmpty(src.Placements, fallback.Placements), 120),
		PrimaryText:    models.Truncate(firstNonEmpty(src.PrimaryText, fallback.PrimaryText), 350),
		Headline:       models.Truncate(firstNonEmpty(src.Headline, fallback.Headline), 40),
		Description:    models.Truncate(firstNonEmpty(src.Description, fallback.Description), 100),
		CTA:            models.Truncate(firstNonEmpty(src.CTA, ctx.CTA), 30),
		DestinationURL: firstNonEmpty(src.DestinationURL, ctx.LandingURL, fallback.DestinationURL),
		CreativeType:   models.NormalizeCreativeType(firstNonEmpty(src.CreativeType, ctx.CreativeType, fallback.CreativeType)),
		MediaURL:       firstNonEmpty(src.MediaURL, ctx.CreativeURL, fallback.MediaURL),
	}
}

// SanitizeGooglePack bounds every field of a model-produced Google pack,
// slugging the path fields and capping the copy lists.
func SanitizeGooglePack(src *rawGooglePack, ctx Context, label string) *models.GooglePack {
	if src == nil {
		src = &rawGooglePack{}
	}
	fallback := buildGooglePack(fallbackAngle(label, ctx), ctx)

	return &models.GooglePack{
		CampaignName:   models.Truncate(firstNonEmpty(src.CampaignName, fallback.CampaignName), 80),
		CampaignType:   models.Truncate(firstNonEmpty(src.CampaignType, fallback.CampaignType), 20),
		FinalURL:       firstNonEmpty(src.FinalURL, ctx.LandingURL, fallback.FinalURL),
		Path1:          models.Truncate(models.Slugify(firstNonEmpty(src.Path1, fallback.Path1)), 15),
		Path2:          models.Truncate(models.Slugify(firstNonEmpty(src.Path2, fallback.Path2)), 15),
		Headlines:      sanitizeStringList(src.Headlines, 30, 8, fallback.Headlines),
		Descriptions:   sanitizeStringList(src.Descriptions, 90, 4, fallback.Descriptions),
		Keywords:       sanitizeStringList(src.Keywords, 40, 8, fallback.Keywords),
		AudienceSignal: models.Truncate(firstNonEmpty(src.AudienceSignal, fallback.AudienceSignal), 120),
	}
}

// sanitizeStringList truncates list items, drops blanks, and caps the list
// length. An absent list uses the fallback values.
func sanitizeStringList(input []string, itemMax, maxItems int, fallback []string) []string {
	values := input
	if values == nil {
		values = fallback
	}
	cleaned := make([]string, 0, len(values))
	for _, entry := range values {
		if item := models.Truncate(entry, itemMax); item != "" {
			cleaned = append(cleaned, item)
		}
	}
	if len(cleaned) > maxItems {
		cleaned = cleaned[:maxItems]
	}
	return cleaned
}

// SanitizeOptions bounds a decoded model response to at most three options,
// attaching only the packs the requested channels call for.
func SanitizeOptions(raw []rawOption, channels []string, ctx Context) []models.AdOption {
	if len(raw) > 3 {
		raw = raw[:3]
	}
	wantFacebook := hasChannel(channels, models.ChannelFacebook)
	wantGoogle := hasChannel(channels, models.ChannelGoogle)

	options := make([]models.AdOption, 0, len(raw))
	for i, entry := range raw {
		label := models.Truncate(entry.Label, 60)
		if label == "" {
			label = fmt.Sprintf("Option %d", i+1)
		}
		rationale := models.Truncate(entry.Rationale, 220)
		if rationale == "" {
			rationale = "Generated from provided campaign and artifact inputs."
		}

		option := models.AdOption{
			ID:        models.NewID("adopt"),
			Label:     label,
			Rationale: rationale,
		}
		if wantFacebook {
			option.Facebook = SanitizeFacebookPack(entry.Facebook, ctx, label)
		}
		if wantGoogle {
			option.Google = SanitizeGooglePack(entry.Google, ctx, label)
		}
		options = append(options, option)
	}
	return options
}
