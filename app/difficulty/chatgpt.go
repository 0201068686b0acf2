package difficulty

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/exp/slog"
)

//go:generate moq -out mock_openai_client.go . OpenAIClient

// OpenAIClient is interface for OpenAI client with the possibility to mock it
type OpenAIClient interface {
	CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ChatGPT asks an OpenAI-compatible chat completion API.
type ChatGPT struct {
	log       *slog.Logger
	cl        OpenAIClient
	model     string
	maxTokens int
}

// ChatGPTParams defines parameters of the OpenAI-compatible client.
type ChatGPTParams struct {
	Token     string
	BaseURL   string // empty means the OpenAI one
	Model     string
	MaxTokens int
}

// NewChatGPT creates new ChatGPT client.
func NewChatGPT(lg *slog.Logger, cl *http.Client, params ChatGPTParams) *ChatGPT {
	config := openai.DefaultConfig(params.Token)
	config.HTTPClient = cl
	if params.BaseURL != "" {
		config.BaseURL = params.BaseURL
	}

	model := params.Model
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}

	return &ChatGPT{
		log:       lg,
		cl:        &loggingClient{log: lg, cl: openai.NewClientWithConfig(config)},
		model:     model,
		maxTokens: params.MaxTokens,
	}
}

// Complete sends the prompt as a single user message.
func (s *ChatGPT) Complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	resp, err := s.cl.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return resp.Choices[0].Message.Content, nil
}

type loggingClient struct {
	log *slog.Logger
	cl  OpenAIClient
}

func (l *loggingClient) CreateChatCompletion(
	ctx context.Context,
	req openai.ChatCompletionRequest,
) (openai.ChatCompletionResponse, error) {
	l.log.DebugCtx(ctx, "sending request to chatGPT", slog.String("model", req.Model))
	resp, err := l.cl.CreateChatCompletion(ctx, req)
	l.log.DebugCtx(ctx, "response received from chatGPT", slog.Any("err", err))
	return resp, err
}
