package ai

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"portfoliopal/api/internal/config"
)

// TextGenerator produces text for a prompt. Implementations never return an
// error; at worst they degrade to a locally generated template.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) string
}

// New selects the generation strategy once at startup: provider-backed when
// an API key is configured, the deterministic template otherwise.
func New(cfg config.AIConfig, log zerolog.Logger) TextGenerator {
	fallback := TemplateFallback{}
	if cfg.APIKey == "" {
		log.Info().Msg("no ai provider key configured, using template fallback")
		return fallback
	}
	return NewProviderBacked(cfg, fallback, log)
}

const fallbackPromptLimit = 1000

// TemplateFallback echoes a truncated prompt behind a disclaimer. Output is
// deterministic for a given prompt.
type TemplateFallback struct{}

func (TemplateFallback) Generate(_ context.Context, prompt string) string {
	if len(prompt) > fallbackPromptLimit {
		prompt = prompt[:fallbackPromptLimit]
	}
	return "[AI Fallback] " + strings.Join([]string{
		"Thanks for trying PortfolioPal!",
		"This is a locally generated sample response because no AI key was detected.",
		"Add OPENAI_API_KEY to enable real AI results.",
		"\n---\n",
		prompt,
	}, "\n")
}
