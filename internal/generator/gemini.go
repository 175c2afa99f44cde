package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog"

	"functionallab/coach-os/internal/config"
	"functionallab/coach-os/internal/locale"
)

// Compile-time interface check
var _ Generator = (*Gemini)(nil)

// CompletionsService defines the chat completion call used by Gemini.
// This abstraction enables testing without calling the real API.
type CompletionsService interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Gemini talks to Gemini through its OpenAI-compatible endpoint.
type Gemini struct {
	completions    CompletionsService
	model          openai.ChatModel
	chatModel      openai.ChatModel
	temperature    float64
	thinkingBudget int
	prompts        PromptBuilder
	logger         zerolog.Logger
}

// NewGemini creates a generator from configuration. The SDK's automatic
// retries are disabled: a failed generation is surfaced once and the coach
// re-triggers it.
func NewGemini(cfg config.GeneratorConfig, studio config.StudioConfig, logger zerolog.Logger) *Gemini {
	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(0),
	)
	return newGemini(client.Chat.Completions, cfg, studio, logger)
}

func newGemini(svc CompletionsService, cfg config.GeneratorConfig, studio config.StudioConfig, logger zerolog.Logger) *Gemini {
	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = cfg.Model
	}
	return &Gemini{
		completions:    svc,
		model:          openai.ChatModel(cfg.Model),
		chatModel:      openai.ChatModel(chatModel),
		temperature:    cfg.Temperature,
		thinkingBudget: cfg.ThinkingBudget,
		prompts:        PromptBuilder{Locale: locale.New(studio.Locale), ClassSize: studio.ClassSize},
		logger:         logger.With().Str("component", "generator").Logger(),
	}
}

// GenerateWorkout renders the prompt for req and returns the session markdown.
func (g *Gemini) GenerateWorkout(ctx context.Context, req Request) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemInstruction),
			openai.UserMessage(g.prompts.Build(req)),
		}),
		Model:       openai.F(g.model),
		Temperature: openai.F(g.temperature),
	}

	var opts []option.RequestOption
	if g.thinkingBudget > 0 {
		opts = append(opts, option.WithJSONSet("extra_body", map[string]any{
			"google": map[string]any{
				"thinking_config": map[string]any{"thinking_budget": g.thinkingBudget},
			},
		}))
	}

	return g.complete(ctx, params, opts...)
}

// Chat continues a coach assistant conversation.
func (g *Gemini) Chat(ctx context.Context, history []ChatMessage, message string) (string, error) {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	msgs = append(msgs, openai.SystemMessage(ChatInstruction))
	for _, m := range history {
		if m.Role == RoleModel {
			msgs = append(msgs, openai.AssistantMessage(m.Text))
		} else {
			msgs = append(msgs, openai.UserMessage(m.Text))
		}
	}
	msgs = append(msgs, openai.UserMessage(message))

	return g.complete(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F(msgs),
		Model:    openai.F(g.chatModel),
	})
}

func (g *Gemini) complete(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (string, error) {
	resp, err := g.completions.New(ctx, params, opts...)
	if err != nil {
		gerr := classify(err)
		g.logger.Error().Err(err).Str("kind", gerr.Kind.Error()).Msg("Generation request failed")
		return "", gerr
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", &GenerationError{Kind: ErrEmptyResponse}
	}
	return resp.Choices[0].Message.Content, nil
}

// classify maps an SDK or transport error to a GenerationError.
func classify(err error) *GenerationError {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &GenerationError{Kind: ErrAuth, Err: err}
		case http.StatusTooManyRequests:
			return &GenerationError{Kind: ErrQuota, Err: err}
		default:
			return &GenerationError{Kind: ErrNetwork, Err: fmt.Errorf("status %d: %w", apiErr.StatusCode, err)}
		}
	}
	return &GenerationError{Kind: ErrNetwork, Err: err}
}
