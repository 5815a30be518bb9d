package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	domai "github.com/ctrlKshav/feedy-backend/internal/domain/ai"
)

// Client implements the inference port on the Anthropic Messages API.
type Client struct {
	api anthropic.Client
}

func NewClient(apiKey, baseURL string) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(baseURL, "/")))
	}
	return &Client{api: anthropic.NewClient(opts...)}
}

func (c *Client) Complete(ctx context.Context, in domai.Completion) (string, error) {
	blocks := []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(in.Prompt)}
	if in.ImageURL != "" {
		blocks = append(blocks, anthropic.NewImageBlock(anthropic.URLImageSourceParam{URL: in.ImageURL}))
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(in.Model),
		MaxTokens:   int64(in.MaxTokens),
		Temperature: anthropic.Float(in.Temperature),
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(blocks...)},
	}
	if in.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: in.System}}
	}

	msg, err := c.api.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
			return "", fmt.Errorf("%w: %v", domai.ErrQuotaExceeded, err)
		}
		return "", fmt.Errorf("%w: anthropic messages: %v", domai.ErrInference, err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", domai.ErrEmptyResponse
	}
	return b.String(), nil
}
