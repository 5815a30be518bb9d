// Package ai selects the inference backend from configuration.
package ai

import (
	"context"
	"fmt"

	"github.com/ctrlKshav/feedy-backend/internal/config"
	domai "github.com/ctrlKshav/feedy-backend/internal/domain/ai"
	"github.com/ctrlKshav/feedy-backend/internal/infra/ai/anthropic"
	"github.com/ctrlKshav/feedy-backend/internal/infra/ai/langchain"
	"github.com/ctrlKshav/feedy-backend/internal/infra/ai/openai"
)

// NewProvider returns the Provider named by cfg.Provider.
func NewProvider(ctx context.Context, cfg config.Inference) (domai.Provider, error) {
	switch cfg.Provider {
	case config.ProviderGroq, config.ProviderOpenAI:
		return openai.NewClient(cfg.APIKey, cfg.BaseURL), nil
	case config.ProviderAnthropic:
		return anthropic.NewClient(cfg.APIKey, cfg.BaseURL), nil
	case config.ProviderGemini:
		c, err := langchain.NewGemini(ctx, cfg.APIKey, cfg.TextModel)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.ProviderOllama:
		c, err := langchain.NewOllama(cfg.BaseURL, cfg.TextModel)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown inference provider %q", cfg.Provider)
}
