package generation

import (
	"context"

	"go.uber.org/zap"

	"github.com/lead-insights/backend/internal/models"
)

// Source values recorded on a generation run.
const (
	SourceOpenAI   = "openai"
	SourceTemplate = "template"
)

// Generator runs the model first and, when allowed, falls back to the
// rule-based angles on any failure.
type Generator struct {
	client        *OpenAIClient
	allowFallback bool
	log           *zap.Logger
}

func NewGenerator(client *OpenAIClient, allowFallback bool, log *zap.Logger) *Generator {
	return &Generator{client: client, allowFallback: allowFallback, log: log}
}

// Generate produces sanitized ad options plus the source that produced them.
// Without fallback, model failures surface as errors; with fallback, the
// rule-based angles are re-labeled with fresh ids and a marked rationale.
func (g *Generator) Generate(ctx context.Context, channels []string, brief Context) ([]models.AdOption, string, error) {
	result := g.client.Generate(ctx, channels, brief)
	if result.Kind == ResultSuccess {
		return result.Options, SourceOpenAI, nil
	}

	if !g.allowFallback {
		return nil, "", result.Err
	}

	g.log.Warn("model generation failed, using rule-based fallback",
		zap.String("kind", string(result.Kind)),
		zap.Error(result.Err))

	options := GenerateRuleBased(channels, brief)
	for i := range options {
		options[i].ID = models.NewID("adopt")
		options[i].Rationale = options[i].Rationale + " (Fallback mode)"
	}
	return options, SourceTemplate, nil
}
