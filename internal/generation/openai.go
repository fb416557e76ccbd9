package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lead-insights/backend/internal/models"
)

// ResultKind classifies the outcome of one model call.
type ResultKind string

const (
	ResultSuccess      ResultKind = "success"
	ResultTimeout      ResultKind = "timeout"
	ResultServiceError ResultKind = "service-error"
	ResultBadOutput    ResultKind = "bad-output"
)

// GenerateResult is the outcome of one model call: sanitized options on
// success, otherwise a classified failure with the underlying error.
type GenerateResult struct {
	Kind    ResultKind
	Options []models.AdOption
	Err     error
}

const systemPrompt = "You are an ad operations planner. Output JSON only. Create 2-3 campaign options for Facebook and/or Google based on provided inputs. Use every non-empty input field exactly where relevant. Keep copy concise and practical for direct use in Ads Manager and Google Ads."

const userPromptFormat = `Return strict JSON: {"options":[{"label":"...","rationale":"...","facebook":{"campaignName":"...","objective":"...","adSetAudience":"...","placements":"...","primaryText":"...","headline":"...","description":"...","cta":"...","destinationUrl":"...","creativeType":"image","mediaUrl":"..."},"google":{"campaignName":"...","campaignType":"Search","finalUrl":"...","path1":"...","path2":"...","headlines":["..."],"descriptions":["..."],"keywords":["..."],"audienceSignal":"..."}}]}. Include facebook object only if Facebook is in channels. Include google object only if Google is in channels. Respect platform constraints: Facebook headline <= 40 chars, Facebook description <= 100 chars, Google headlines <= 30 chars, Google descriptions <= 90 chars, path fields <= 15 chars. Use creativeType as image or video. mediaUrl can be blank if no creative URL provided. Input: %s`

// OpenAIClient calls the Responses API and turns model text into sanitized
// ad options.
type OpenAIClient struct {
	baseURL string
	model   string
	apiKey  string
	http    *http.Client
	log     *zap.Logger
}

func NewOpenAIClient(baseURL, model, apiKey string, timeout time.Duration, log *zap.Logger) *OpenAIClient {
	return &OpenAIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Configured reports whether an API key is present.
func (c *OpenAIClient) Configured() bool {
	return c.apiKey != ""
}

type responsesRequest struct {
	Model string            `json:"model"`
	Input []responseMessage `json:"input"`
}

type responseMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responsesPayload struct {
	OutputText string `json:"output_text"`
	Output     []struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

type modelDocument struct {
	Options []rawOption `json:"options"`
}

// Generate asks the model for campaign options built from the brief. The
// returned result is always classified; Options is non-empty only for
// ResultSuccess.
func (c *OpenAIClient) Generate(ctx context.Context, channels []string, brief Context) GenerateResult {
	if !c.Configured() {
		return GenerateResult{
			Kind: ResultServiceError,
			Err:  errors.New("OpenAI API key is missing. Set OPENAI_API_KEY in your environment to generate campaigns."),
		}
	}

	userPayload := map[string]any{
		"customerName": brief.CustomerName,
		"customerProfile": map[string]string{
			"industry": brief.CustomerIndustry,
			"tier":     brief.CustomerTier,
			"location": brief.CustomerLocation,
			"notes":    brief.CustomerNotes,
		},
		"objective":     brief.Objective,
		"cta":           brief.CTA,
		"channels":      channels,
		"artifactName":  brief.ArtifactName,
		"offer":         brief.Offer,
		"landingUrl":    brief.LandingURL,
		"creativeType":  brief.CreativeType,
		"creativeUrl":   brief.CreativeURL,
		"audience":      brief.Audience,
		"strategyNotes": brief.StrategyNotes,
		"customInputs":  customInputsForPrompt(brief),
		"artifactText":  brief.ArtifactText,
	}
	inputJSON, err := json.Marshal(userPayload)
	if err != nil {
		return GenerateResult{Kind: ResultServiceError, Err: err}
	}

	body, err := json.Marshal(responsesRequest{
		Model: c.model,
		Input: []responseMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf(userPromptFormat, inputJSON)},
		},
	})
	if err != nil {
		return GenerateResult{Kind: ResultServiceError, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return GenerateResult{Kind: ResultServiceError, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		kind := ResultServiceError
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			kind = ResultTimeout
		}
		c.log.Warn("openai request failed", zap.Error(err))
		return GenerateResult{Kind: kind, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return GenerateResult{Kind: ResultServiceError, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("OpenAI request failed (%d): %s", resp.StatusCode, models.Truncate(string(raw), 220))
		c.log.Warn("openai non-200 response", zap.Int("status", resp.StatusCode))
		return GenerateResult{Kind: ResultServiceError, Err: err}
	}

	payload := responsesPayload{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return GenerateResult{Kind: ResultBadOutput, Err: err}
	}

	text := extractResponseText(payload)
	doc, err := parseModelJSON(text)
	if err != nil {
		return GenerateResult{Kind: ResultBadOutput, Err: err}
	}
	if len(doc.Options) == 0 {
		return GenerateResult{Kind: ResultBadOutput, Err: errors.New("OpenAI returned no options.")}
	}

	options := SanitizeOptions(doc.Options, channels, brief)
	return GenerateResult{Kind: ResultSuccess, Options: options}
}

func customInputsForPrompt(brief Context) any {
	if brief.CustomInputs != nil {
		return brief.CustomInputs
	}
	return brief.CustomInputsRaw
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

// extractResponseText prefers the aggregated output_text field and falls back
// to joining the per-part text chunks.
func extractResponseText(payload responsesPayload) string {
	if strings.TrimSpace(payload.OutputText) != "" {
		return payload.OutputText
	}

	chunks := []string{}
	for _, entry := range payload.Output {
		for _, part := range entry.Content {
			if part.Text != "" {
				chunks = append(chunks, part.Text)
			}
		}
	}
	return strings.Join(chunks, "\n")
}

var fencedBlock = regexp.MustCompile("(?is)```(?:json)?\\s*(.*?)```")

// parseModelJSON recovers a JSON document from model text that may wrap it in
// a code fence or surround it with prose.
func parseModelJSON(text string) (modelDocument, error) {
	raw := models.CleanText(text)
	if raw == "" {
		return modelDocument{}, errors.New("OpenAI returned empty output.")
	}

	candidate := raw
	if m := fencedBlock.FindStringSubmatch(raw); m != nil {
		candidate = strings.TrimSpace(m[1])
	} else if first, last := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); first >= 0 && last > first {
		candidate = raw[first : last+1]
	}

	doc := modelDocument{}
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
		return modelDocument{}, fmt.Errorf("model output is not valid JSON: %w", err)
	}
	return doc, nil
}
