package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"ragbot/internal/models"
)

const DefaultOpenAIModel = "gpt-4o-mini"

var ErrAPIKeyNotSet = errors.New("OPENAI_API_KEY is not set")

// OpenAIService implements LLMClient on the OpenAI chat completions API
type OpenAIService struct {
	client openai.Client
	model  string
}

// NewOpenAIService creates an OpenAI client. baseURL may point at any
// OpenAI-compatible server; empty uses the public API.
func NewOpenAIService(apiKey, model, baseURL string) (*OpenAIService, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyNotSet
	}
	if model == "" {
		model = DefaultOpenAIModel
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIService{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

func (s *OpenAIService) params(messages []models.ChatMessage, opts models.GenerationOptions) openai.ChatCompletionNewParams {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case models.RoleSystem:
			msgs = append(msgs, openai.SystemMessage(m.Content))
		case models.RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(m.Content))
		default:
			msgs = append(msgs, openai.UserMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(s.model),
		Messages:    msgs,
		Temperature: openai.Float(opts.Temperature),
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}
	return params
}

// Chat returns the first completion choice
func (s *OpenAIService) Chat(ctx context.Context, messages []models.ChatMessage, opts models.GenerationOptions) (string, error) {
	completion, err := s.client.Chat.Completions.New(ctx, s.params(messages, opts))
	if err != nil {
		return "", fmt.Errorf("OpenAI API call failed: %w", describeAPIError(err))
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}
	return completion.Choices[0].Message.Content, nil
}

// ChatStream forwards each content delta of a streamed completion
func (s *OpenAIService) ChatStream(ctx context.Context, messages []models.ChatMessage, opts models.GenerationOptions, onChunk func(string) error) error {
	stream := s.client.Chat.Completions.NewStreaming(ctx, s.params(messages, opts))
	defer stream.Close()

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		if delta := chunk.Choices[0].Delta.Content; delta != "" {
			if err := onChunk(delta); err != nil {
				return err
			}
		}
	}
	if err := stream.Err(); err != nil {
		return fmt.Errorf("OpenAI stream failed: %w", describeAPIError(err))
	}
	return nil
}

// HealthCheck looks up the configured model
func (s *OpenAIService) HealthCheck(ctx context.Context) error {
	if _, err := s.client.Models.Get(ctx, s.model); err != nil {
		return fmt.Errorf("OpenAI not reachable: %w", describeAPIError(err))
	}
	return nil
}

func describeAPIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("status %d: %w", apiErr.StatusCode, err)
	}
	return err
}
