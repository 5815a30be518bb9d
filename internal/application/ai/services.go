package ai

import (
	"context"
	"fmt"

	"github.com/ctrlKshav/feedy-backend/internal/domain/ai"
	"github.com/ctrlKshav/feedy-backend/internal/domain/analysis"
	"github.com/ctrlKshav/feedy-backend/internal/domain/files"
	"github.com/ctrlKshav/feedy-backend/internal/domain/prompt"
)

// Service is the inference dispatcher: it picks the model for each call and
// forwards it to the configured provider. One synchronous call per item.
type Service struct {
	provider ai.Provider
	cfg      Settings
}

// Settings are the resolved model names and generation parameters.
type Settings struct {
	VisionModel string
	TextModel   string
	RefineModel string

	Temperature       float64
	MaxTokens         int
	RefineTemperature float64
	RefineMaxTokens   int
}

func NewService(provider ai.Provider, cfg Settings) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Analyze sends a built prompt for one item. Images go to the vision model with
// the URL attached; PDFs go to the text model, their text already in the prompt.
func (s *Service) Analyze(ctx context.Context, item analysis.Item, promptText string) (string, error) {
	c := ai.Completion{
		Prompt:      promptText,
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	}
	switch item.FileType {
	case files.FileTypePDF:
		c.Model = s.cfg.TextModel
	case files.FileTypeImage, "":
		if item.URL == "" {
			return "", fmt.Errorf("%w: image_url is required for %q", analysis.ErrInvalidRequest, item.Name)
		}
		c.Model = s.cfg.VisionModel
		c.ImageURL = item.URL
	default:
		return "", fmt.Errorf("%w: %s", files.ErrUnsupportedFormat, item.FileType)
	}
	return s.provider.Complete(ctx, c)
}

// Refine turns a rough persona description into a structured persona.
func (s *Service) Refine(ctx context.Context, initialPersona string) (string, error) {
	return s.provider.Complete(ctx, ai.Completion{
		Model:       s.cfg.RefineModel,
		System:      prompt.RefineSystemPrompt,
		Prompt:      prompt.BuildPersonaRefinementPrompt(initialPersona),
		Temperature: s.cfg.RefineTemperature,
		MaxTokens:   s.cfg.RefineMaxTokens,
	})
}
