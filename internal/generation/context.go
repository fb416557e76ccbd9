package generation

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/lead-insights/backend/internal/models"
)

var stopWords = map[string]bool{
	"about": true, "above": true, "after": true, "again": true, "against": true,
	"almost": true, "also": true, "because": true, "been": true, "before": true,
	"being": true, "between": true, "could": true, "every": true, "from": true,
	"have": true, "just": true, "more": true, "much": true, "only": true,
	"other": true, "over": true, "should": true, "some": true, "than": true,
	"that": true, "their": true, "there": true, "these": true, "they": true,
	"this": true, "those": true, "through": true, "under": true, "very": true,
	"want": true, "with": true, "your": true,
}

var (
	tokenSplit    = regexp.MustCompile(`[^a-z0-9]+`)
	sentenceSplit = regexp.MustCompile(`[.!?]\s+`)
)

// ContextInput carries everything a generation request knows about the
// customer, campaign goals, and the uploaded artifact.
type ContextInput struct {
	Objective        string
	CTA              string
	CustomerName     string
	CustomerIndustry string
	CustomerTier     string
	CustomerLocation string
	CustomerNotes    string
	ArtifactName     string
	ArtifactText     string
	Offer            string
	LandingURL       string
	Audience         string
	StrategyNotes    string
	CustomInputs     string
	CreativeType     string
	CreativeURL      string
}

// Context is the normalized brief every generator works from. All fields are
// whitespace-cleaned and the keyword slots are guaranteed non-empty.
type Context struct {
	Objective        string
	CTA              string
	CustomerName     string
	CustomerIndustry string
	CustomerTier     string
	CustomerLocation string
	CustomerNotes    string
	ArtifactName     string
	ArtifactText     string
	Offer            string
	LandingURL       string
	Audience         string
	StrategyNotes    string
	CreativeType     string
	CreativeURL      string
	CustomInputsRaw  string
	CustomInputs     map[string]any
	KeywordOne       string
	KeywordTwo       string
	KeywordThree     string
}

// BuildContext normalizes the raw inputs into a generation brief: defaults
// for objective/CTA/artifact name, an inferred offer, and the top artifact
// keywords with fixed fallbacks.
func BuildContext(in ContextInput) Context {
	artifactText := models.CleanText(in.ArtifactText)
	keywords := ExtractKeywords(in.ArtifactName+" "+in.Offer+" "+artifactText, 6)
	rawInputs, parsedInputs := parseCustomInputs(in.CustomInputs)

	ctx := Context{
		Objective:        defaultText(in.Objective, "Leads"),
		CTA:              defaultText(in.CTA, "Learn More"),
		CustomerName:     defaultText(in.CustomerName, "Customer"),
		CustomerIndustry: models.CleanText(in.CustomerIndustry),
		CustomerTier:     models.CleanText(in.CustomerTier),
		CustomerLocation: models.CleanText(in.CustomerLocation),
		CustomerNotes:    models.CleanText(in.CustomerNotes),
		ArtifactName:     defaultText(in.ArtifactName, "Collateral Pack"),
		ArtifactText:     artifactText,
		Offer:            InferOffer(in.Offer, artifactText),
		LandingURL:       defaultText(in.LandingURL, "https://clientdomain.com/offer"),
		Audience:         models.CleanText(in.Audience),
		StrategyNotes:    models.CleanText(in.StrategyNotes),
		CreativeType:     models.NormalizeCreativeType(in.CreativeType),
		CreativeURL:      models.CleanText(in.CreativeURL),
		CustomInputsRaw:  rawInputs,
		CustomInputs:     parsedInputs,
		KeywordOne:       "conversion",
		KeywordTwo:       "pipeline",
		KeywordThree:     "growth",
	}
	if len(keywords) > 0 {
		ctx.KeywordOne = keywords[0]
	}
	if len(keywords) > 1 {
		ctx.KeywordTwo = keywords[1]
	}
	if len(keywords) > 2 {
		ctx.KeywordThree = keywords[2]
	}
	return ctx
}

func defaultText(value, fallback string) string {
	if cleaned := models.CleanText(value); cleaned != "" {
		return cleaned
	}
	return fallback
}

// ExtractKeywords tokenizes the text and returns up to max tokens ranked by
// frequency. Ties keep first-appearance order. Short tokens, pure numbers,
// and stop words are skipped.
func ExtractKeywords(text string, max int) []string {
	tokens := tokenSplit.Split(strings.ToLower(models.CleanText(text)), -1)

	counts := map[string]int{}
	order := map[string]int{}
	seen := 0
	for _, token := range tokens {
		if len(token) <= 3 || stopWords[token] || models.IsNumericToken(token) {
			continue
		}
		if _, ok := counts[token]; !ok {
			order[token] = seen
			seen++
		}
		counts[token]++
	}

	ranked := make([]string, 0, len(counts))
	for token := range counts {
		ranked = append(ranked, token)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return order[ranked[i]] < order[ranked[j]]
	})

	if len(ranked) > max {
		ranked = ranked[:max]
	}
	return ranked
}

// InferOffer resolves the working offer line: the explicit offer when given,
// else the artifact's first sentence lowercased and truncated, else a stock
// line.
func InferOffer(offer, artifactText string) string {
	if direct := models.CleanText(offer); direct != "" {
		return direct
	}

	text := models.CleanText(artifactText)
	if text == "" {
		return "qualified leads at predictable CPA"
	}

	sentence := text
	if loc := sentenceSplit.FindStringIndex(text); loc != nil {
		sentence = text[:loc[0]+1]
	}
	return strings.ToLower(models.Truncate(sentence, 90))
}

// parseCustomInputs trims the free-form input and attempts to decode it as a
// JSON object. Non-object JSON and plain prose keep only the raw text.
func parseCustomInputs(value string) (string, map[string]any) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return "", nil
	}

	parsed := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return raw, nil
	}
	return raw, parsed
}

// FlattenArtifactHTML strips markup from an uploaded HTML artifact, keeping
// the visible text so keyword extraction sees words rather than tags. Inputs
// without markup pass through cleaned.
func FlattenArtifactHTML(raw string) string {
	if !strings.Contains(raw, "<") {
		return models.CleanText(raw)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return models.CleanText(raw)
	}
	doc.Find("script, style").Remove()
	return models.CleanText(doc.Text())
}
