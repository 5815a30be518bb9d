// Package langchain adapts langchaingo models (Gemini, Ollama) to the inference port.
package langchain

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tmc/langchaingo/httputil"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"

	domai "github.com/ctrlKshav/feedy-backend/internal/domain/ai"
)

type Client struct {
	llm llms.Model
	// inlineImages downloads image URLs and sends the bytes instead; the
	// Ollama backend accepts only text and binary parts.
	inlineImages bool
	httpc        *http.Client
}

// New wraps an already constructed model.
func New(llm llms.Model) *Client {
	return &Client{llm: llm, httpc: httputil.DefaultClient}
}

// NewGemini builds a Google AI (Gemini) backed client.
func NewGemini(ctx context.Context, apiKey, defaultModel string) (*Client, error) {
	l, err := googleai.New(ctx, googleai.WithAPIKey(apiKey), googleai.WithDefaultModel(defaultModel))
	if err != nil {
		return nil, fmt.Errorf("failed to init gemini: %w", err)
	}
	return New(l), nil
}

// NewOllama builds a client for a local Ollama server.
func NewOllama(serverURL, defaultModel string) (*Client, error) {
	l, err := ollama.New(ollama.WithModel(defaultModel), ollama.WithServerURL(serverURL))
	if err != nil {
		return nil, fmt.Errorf("failed to init ollama: %w", err)
	}
	c := New(l)
	c.inlineImages = true
	return c, nil
}

func (c *Client) Complete(ctx context.Context, in domai.Completion) (string, error) {
	msgs := make([]llms.MessageContent, 0, 2)
	if in.System != "" {
		msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeSystem, in.System))
	}
	parts := []llms.ContentPart{llms.TextContent{Text: in.Prompt}}
	if in.ImageURL != "" {
		img, err := c.imagePart(ctx, in.ImageURL)
		if err != nil {
			return "", err
		}
		parts = append(parts, img)
	}
	msgs = append(msgs, llms.MessageContent{Role: llms.ChatMessageTypeHuman, Parts: parts})

	opts := []llms.CallOption{llms.WithTemperature(in.Temperature)}
	if in.Model != "" {
		opts = append(opts, llms.WithModel(in.Model))
	}
	if in.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(in.MaxTokens))
	}

	resp, err := c.llm.GenerateContent(ctx, msgs, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domai.ErrInference, err)
	}
	if resp == nil || len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return "", domai.ErrEmptyResponse
	}
	return resp.Choices[0].Content, nil
}

func (c *Client) imagePart(ctx context.Context, url string) (llms.ContentPart, error) {
	if !c.inlineImages {
		return llms.ImageURLContent{URL: url}, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: image request: %v", domai.ErrInference, err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch image from url: %v", domai.ErrInference, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: fetch image %s: status %d", domai.ErrInference, url, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read image bytes: %v", domai.ErrInference, err)
	}
	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = http.DetectContentType(data)
	}
	return llms.BinaryContent{MIMEType: mime, Data: data}, nil
}
