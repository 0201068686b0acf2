package difficulty

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"
	"golang.org/x/exp/slog"
)

// Ollama defaults.
const (
	DefaultOllamaURL   = "http://localhost:11434"
	DefaultOllamaModel = "llama3.1"
)

//go:generate moq -out mock_completer.go . Completer

// Completer answers a single prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Ollama asks the chat endpoint of the ollama server.
type Ollama struct {
	log   *slog.Logger
	cl    *api.Client
	model string
}

// NewOllama makes a new ollama client, base is the address of the server.
func NewOllama(lg *slog.Logger, cl *http.Client, base, model string) (*Ollama, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse ollama url: %w", err)
	}

	return &Ollama{log: lg, cl: api.NewClient(u, cl), model: model}, nil
}

// Complete sends the prompt as a single user message without streaming.
func (o *Ollama) Complete(ctx context.Context, prompt string) (string, error) {
	stream := false
	req := &api.ChatRequest{
		Model:    o.model,
		Stream:   &stream,
		Messages: []api.Message{{Role: "user", Content: prompt}},
	}

	o.log.DebugCtx(ctx, "sending request to ollama", slog.String("model", o.model))

	var (
		content  string
		received bool
	)

	err := o.cl.Chat(ctx, req, func(resp api.ChatResponse) error {
		content += resp.Message.Content
		received = true
		return nil
	})
	if err != nil {
		var statusErr api.StatusError
		if errors.As(err, &statusErr) {
			return "", fmt.Errorf("bad status code: %d: %s", statusErr.StatusCode, statusErr.ErrorMessage)
		}
		return "", fmt.Errorf("chat: %w", err)
	}

	if !received {
		return "", errors.New("empty response from ollama")
	}

	o.log.DebugCtx(ctx, "response received from ollama", slog.String("content", content))

	return content, nil
}
