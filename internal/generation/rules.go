package generation

import (
	"fmt"
	"strings"

	"github.com/lead-insights/backend/internal/models"
)

// angle is one messaging blueprint used to fill platform packs.
type angle struct {
	Label       string
	Hook        string
	ShortHook   string
	Headline    string
	Description string
	ProofLine   string
	CTALine     string
}

func fallbackAngle(label string, ctx Context) angle {
	return angle{
		Label:       label,
		Hook:        "Get " + ctx.Offer,
		ShortHook:   "Get " + ctx.Offer,
		Headline:    label + " " + ctx.Offer,
		Description: "Generated from provided campaign inputs.",
		ProofLine:   "Message built from " + ctx.ArtifactName + ".",
		CTALine:     "CTA: " + ctx.CTA + ".",
	}
}

func angleBlueprints(ctx Context) []angle {
	proofLine := "Message built from " + ctx.ArtifactName + "."
	ctaLine := "CTA: " + ctx.CTA + "."
	return []angle{
		{
			Label:       "Outcome Angle",
			Hook:        "Get " + ctx.Offer + " without long setup cycles",
			ShortHook:   "Get " + ctx.Offer,
			Headline:    "Get " + ctx.Offer,
			Description: "Outcome-focused angle for prospects ready to act.",
			ProofLine:   proofLine,
			CTALine:     ctaLine,
		},
		{
			Label:       "Pain To Solution",
			Hook:        "Stop wasting budget on low intent traffic and shift into " + ctx.KeywordOne + "-driven campaigns",
			ShortHook:   "Stop budget waste",
			Headline:    "Cut waste, grow " + ctx.KeywordOne,
			Description: "Pain-first framing that calls out current inefficiency.",
			ProofLine:   proofLine,
			CTALine:     ctaLine,
		},
		{
			Label:       "Proof Angle",
			Hook:        "Use proven collateral and customer proof to increase trust before the click",
			ShortHook:   "Lead with proof",
			Headline:    "Proof-led " + ctx.Objective + " system",
			Description: "Social proof framing using customer collateral.",
			ProofLine:   proofLine,
			CTALine:     ctaLine,
		},
	}
}

// buildFacebookPack renders a full Facebook pack from an angle and the brief.
func buildFacebookPack(a angle, ctx Context) *models.FacebookPack {
	geo := ctx.CustomerLocation
	if geo == "" {
		geo = "US"
	}
	defaultAudience := fmt.Sprintf("%s 25-54, interests in %s and %s, plus lookalikes from customer leads", geo, ctx.KeywordOne, ctx.KeywordTwo)
	audience := ctx.Audience
	if audience == "" {
		audience = defaultAudience
	}

	return &models.FacebookPack{
		CampaignName:  models.Truncate(ctx.CustomerName+" | "+a.Label+" | FB", 80),
		Objective:     ctx.Objective,
		AdSetAudience: models.Truncate(audience, 170),
		Placements:    "Advantage+ placements (Feeds, Reels, Stories)",
		PrimaryText: models.Truncate(
			fmt.Sprintf("%s %s. Built from customer artifact: %s. %s %s", a.Hook, ctx.Offer, ctx.ArtifactName, a.ProofLine, a.CTALine),
			350,
		),
		Headline:       models.Truncate(a.Headline, 40),
		Description:    models.Truncate(a.Description, 100),
		CTA:            ctx.CTA,
		DestinationURL: ctx.LandingURL,
		CreativeType:   models.NormalizeCreativeType(ctx.CreativeType),
		MediaURL:       ctx.CreativeURL,
	}
}

// buildGooglePack renders a full Google Search pack from an angle and the
// brief.
func buildGooglePack(a angle, ctx Context) *models.GooglePack {
	headlines := []string{
		models.Truncate(a.Headline, 30),
		models.Truncate("Get "+ctx.KeywordOne+" faster", 30),
		models.Truncate(ctx.CustomerName+" "+ctx.Objective, 30),
		models.Truncate("Reduce CPA with "+ctx.KeywordTwo, 30),
		models.Truncate(a.ShortHook, 30),
		models.Truncate(ctx.CTA, 30),
	}
	descriptions := []string{
		models.Truncate(a.Hook+" "+ctx.Offer+". Built from your team artifact for faster launch.", 90),
		models.Truncate("Use "+ctx.KeywordOne+" + "+ctx.KeywordTwo+" messaging to qualify better leads.", 90),
		models.Truncate(a.ProofLine+" Start with this draft and publish in Google Ads.", 90),
	}

	audienceSignal := ctx.Audience
	if audienceSignal == "" {
		audienceSignal = "High-intent prospects searching for " + ctx.KeywordOne + " and " + ctx.KeywordTwo + "."
	}

	return &models.GooglePack{
		CampaignName: models.Truncate(ctx.CustomerName+" | "+a.Label+" | Google", 80),
		CampaignType: "Search",
		FinalURL:     ctx.LandingURL,
		Path1:        models.Truncate(models.Slugify(ctx.KeywordOne), 15),
		Path2:        models.Truncate(models.Slugify(ctx.KeywordTwo), 15),
		Headlines:    headlines,
		Descriptions: descriptions,
		Keywords: []string{
			models.Truncate(ctx.KeywordOne+" service", 40),
			models.Truncate(ctx.KeywordTwo+" offer", 40),
			models.Truncate(strings.ToLower(ctx.CustomerName+" "+ctx.Objective), 40),
		},
		AudienceSignal: models.Truncate(audienceSignal, 120),
	}
}

// GenerateRuleBased produces three deterministic campaign angles from the
// brief, building a platform pack per requested channel.
func GenerateRuleBased(channels []string, ctx Context) []models.AdOption {
	wantFacebook := hasChannel(channels, models.ChannelFacebook)
	wantGoogle := hasChannel(channels, models.ChannelGoogle)

	options := make([]models.AdOption, 0, 3)
	for i, a := range angleBlueprints(ctx) {
		option := models.AdOption{
			ID:        fmt.Sprintf("rule-%d", i+1),
			Label:     a.Label,
			Rationale: fmt.Sprintf("%s Focus keywords: %s, %s, %s.", a.Description, ctx.KeywordOne, ctx.KeywordTwo, ctx.KeywordThree),
		}
		if wantFacebook {
			option.Facebook = buildFacebookPack(a, ctx)
		}
		if wantGoogle {
			option.Google = buildGooglePack(a, ctx)
		}
		options = append(options, option)
	}
	return options
}

func hasChannel(channels []string, channel string) bool {
	for _, ch := range channels {
		if ch == channel {
			return true
		}
	}
	return false
}
