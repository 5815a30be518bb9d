package langchain

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tmc/langchaingo/llms"

	domai "github.com/ctrlKshav/feedy-backend/internal/domain/ai"
)

type fakeModel struct {
	resp     *llms.ContentResponse
	err      error
	messages []llms.MessageContent
	opts     llms.CallOptions
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	for _, o := range options {
		o(&f.opts)
	}
	return f.resp, f.err
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestClient_Complete(t *testing.T) {
	m := &fakeModel{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "## Persona Overview"}}}}
	c := New(m)

	out, err := c.Complete(context.Background(), domai.Completion{
		Model:       "gemini-2.0-flash",
		System:      "architect",
		Prompt:      "refine",
		ImageURL:    "https://cdn.example.com/x.webp",
		Temperature: 0.85,
		MaxTokens:   1024,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "## Persona Overview" {
		t.Fatalf("unexpected output %q", out)
	}
	if len(m.messages) != 2 || m.messages[0].Role != llms.ChatMessageTypeSystem {
		t.Fatalf("expected system then human message: %+v", m.messages)
	}
	human := m.messages[1]
	if len(human.Parts) != 2 {
		t.Fatalf("expected text + image parts, got %d", len(human.Parts))
	}
	if img, ok := human.Parts[1].(llms.ImageURLContent); !ok || img.URL != "https://cdn.example.com/x.webp" {
		t.Fatalf("unexpected image part %#v", human.Parts[1])
	}
	if m.opts.Model != "gemini-2.0-flash" || m.opts.MaxTokens != 1024 || m.opts.Temperature != 0.85 {
		t.Fatalf("unexpected call options %+v", m.opts)
	}
}

func TestClient_Complete_Errors(t *testing.T) {
	_, err := New(&fakeModel{err: errors.New("boom")}).Complete(context.Background(), domai.Completion{Prompt: "p"})
	if !errors.Is(err, domai.ErrInference) {
		t.Fatalf("expected ErrInference, got %v", err)
	}

	_, err = New(&fakeModel{resp: &llms.ContentResponse{}}).Complete(context.Background(), domai.Completion{Prompt: "p"})
	if !errors.Is(err, domai.ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

type ollamaChatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string   `json:"role"`
		Content string   `json:"content"`
		Images  [][]byte `json:"images"`
	} `json:"messages"`
}

func TestOllama_ImageSentAsBytes(t *testing.T) {
	pngBytes := []byte("\x89PNG\r\n\x1a\nfake-image")
	var got ollamaChatRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/design.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(pngBytes)
	})
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode chat request: %v", err)
		}
		w.Header().Set("Content-Type", "application/x-ndjson")
		w.Write([]byte(`{"model":"llava","message":{"role":"assistant","content":"I recommend more contrast"},"done":true}` + "\n"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := NewOllama(srv.URL, "llava")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	out, err := c.Complete(context.Background(), domai.Completion{
		Model:    "llava",
		Prompt:   "critique",
		ImageURL: srv.URL + "/design.png",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "I recommend more contrast" {
		t.Fatalf("unexpected output %q", out)
	}
	if len(got.Messages) != 1 || len(got.Messages[0].Images) != 1 {
		t.Fatalf("expected one user message with one image: %+v", got)
	}
	if string(got.Messages[0].Images[0]) != string(pngBytes) || got.Messages[0].Content != "critique" {
		t.Fatalf("image bytes or prompt not forwarded: %+v", got.Messages[0])
	}
}

func TestOllama_ImageFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/chat" {
			t.Error("chat must not be called when the image cannot be fetched")
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := NewOllama(srv.URL, "llava")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	_, err = c.Complete(context.Background(), domai.Completion{Prompt: "p", ImageURL: srv.URL + "/missing.png"})
	if !errors.Is(err, domai.ErrInference) {
		t.Fatalf("expected ErrInference, got %v", err)
	}
}
