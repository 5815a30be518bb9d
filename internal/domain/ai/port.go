package ai

import "context"

// Completion is a single non-streaming generation request.
// ImageURL is only set for vision calls.
type Completion struct {
	Model       string
	System      string
	Prompt      string
	ImageURL    string
	Temperature float64
	MaxTokens   int
}

// Provider is implemented once per inference backend.
type Provider interface {
	Complete(ctx context.Context, c Completion) (string, error)
}
